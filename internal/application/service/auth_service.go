package service

import (
	"context"
	"strings"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
	"github.com/lromero86/tacopos-api/internal/domain/repository"
	"github.com/lromero86/tacopos-api/internal/infrastructure/identity"
	"github.com/lromero86/tacopos-api/pkg/apperror"
	"github.com/lromero86/tacopos-api/pkg/utils"
)

// TokenPair holds the API-issued access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is a successful sign-in: the operator profile plus the
// token pair the client uses from here on
type AuthResult struct {
	Operator *entity.Operator
	Tokens   TokenPair
}

// AuthService delegates credential checks to the identity provider,
// then issues its own token pair and opens the operator's till
// session. Password material never reaches our store.
type AuthService struct {
	provider   *identity.Provider
	operators  repository.OperatorRepository
	sessions   *SessionManager
	jwtManager *utils.JWTManager
}

// NewAuthService creates an auth service
func NewAuthService(
	provider *identity.Provider,
	operators repository.OperatorRepository,
	sessions *SessionManager,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		provider:   provider,
		operators:  operators,
		sessions:   sessions,
		jwtManager: jwtManager,
	}
}

// Login signs in with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperror.NewValidationError("Email and password are required")
	}

	cred, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, cred, "")
}

// Register creates a new operator account and signs it in
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperror.NewValidationError("Email and password are required")
	}

	cred, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, cred, strings.TrimSpace(name))
}

// LoginWithIDToken signs in with a provider-issued ID token. The
// Google popup flow runs on the client, the API only verifies the
// resulting token.
func (s *AuthService) LoginWithIDToken(ctx context.Context, idToken string) (*AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperror.NewValidationError("ID token is required")
	}

	cred, err := s.provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, cred, "")
}

// establish ensures the operator profile exists, issues the token
// pair and opens the till session
func (s *AuthService) establish(ctx context.Context, cred *identity.Credential, name string) (*AuthResult, error) {
	operator, err := s.operators.Get(ctx, cred.UID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		operator = &entity.Operator{
			UID:   cred.UID,
			Email: cred.Email,
			Name:  name,
		}
		if err := s.operators.Save(ctx, operator); err != nil {
			return nil, err
		}
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(operator.UID, operator.Email)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(operator.UID)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	if _, err := s.sessions.Open(ctx, operator); err != nil {
		return nil, err
	}

	return &AuthResult{
		Operator: operator,
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	uid, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	operator, err := s.operators.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, apperror.ErrInvalidToken
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(operator.UID, operator.Email)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(operator.UID)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// Logout tears down the operator's till session and its store
// subscriptions. The JWTs simply expire, there is no revocation list.
func (s *AuthService) Logout(uid string) {
	s.sessions.Close(uid)
}

// Profile returns the operator profile
func (s *AuthService) Profile(ctx context.Context, uid string) (*entity.Operator, error) {
	operator, err := s.operators.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, apperror.ErrOperatorNotFound
	}
	return operator, nil
}

// SetPIN stores a new confirmation PIN for the operator. Destructive
// till actions can then require it.
func (s *AuthService) SetPIN(ctx context.Context, uid, pin string) error {
	pin = strings.TrimSpace(pin)
	if len(pin) < 4 {
		return apperror.NewValidationError("PIN must be at least 4 digits")
	}

	operator, err := s.operators.Get(ctx, uid)
	if err != nil {
		return err
	}
	if operator == nil {
		return apperror.ErrOperatorNotFound
	}

	hash, err := utils.HashPIN(pin)
	if err != nil {
		return apperror.ErrInternalServer
	}

	if err := s.operators.SetPINHash(ctx, uid, hash); err != nil {
		return err
	}

	session, err := s.sessions.Get(uid)
	if err == nil {
		session.mu.Lock()
		session.operator.PINHash = hash
		session.mu.Unlock()
	}
	return nil
}
