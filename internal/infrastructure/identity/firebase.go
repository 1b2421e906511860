package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/lromero86/tacopos-api/internal/config"
	"github.com/lromero86/tacopos-api/pkg/apperror"
)

const identityToolkitBase = "https://identitytoolkit.googleapis.com/v1"

// Credential is the result of a successful sign-in or sign-up against
// the identity provider
type Credential struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
}

// Provider wraps Firebase Auth: the Admin SDK for token verification
// and the Identity Toolkit REST API for credential sign-in, which the
// Admin SDK does not expose.
type Provider struct {
	auth       *firebaseauth.Client
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewProvider initializes the Firebase app and auth client
func NewProvider(ctx context.Context, cfg *config.FirebaseConfig) (*Provider, error) {
	var opts []option.ClientOption
	if credFile := strings.TrimSpace(cfg.CredentialsFile); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("identity: init firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("identity: init firebase auth: %w", err)
	}

	return &Provider{
		auth:       authClient,
		apiKey:     cfg.WebAPIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    identityToolkitBase,
	}, nil
}

type toolkitRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type toolkitResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn authenticates an email/password pair against the identity
// provider
func (p *Provider) SignIn(ctx context.Context, email, password string) (*Credential, error) {
	return p.call(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp registers a new operator account with the identity provider
func (p *Provider) SignUp(ctx context.Context, email, password string) (*Credential, error) {
	return p.call(ctx, "accounts:signUp", email, password)
}

func (p *Provider) call(ctx context.Context, endpoint, email, password string) (*Credential, error) {
	body, err := json.Marshal(toolkitRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?key=%s", p.baseURL, endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperror.ErrAuthNetwork
	}
	defer resp.Body.Close()

	var parsed toolkitResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperror.ErrAuthNetwork
	}

	if parsed.Error != nil {
		return nil, mapToolkitError(parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || parsed.LocalID == "" {
		return nil, apperror.ErrAuthNetwork
	}

	return &Credential{
		UID:          parsed.LocalID,
		Email:        parsed.Email,
		IDToken:      parsed.IDToken,
		RefreshToken: parsed.RefreshToken,
	}, nil
}

// VerifyIDToken verifies a provider-issued ID token (used for the
// Google sign-in path, where the popup flow happens on the client)
func (p *Provider) VerifyIDToken(ctx context.Context, idToken string) (*Credential, error) {
	token, err := p.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	email, _ := token.Claims["email"].(string)
	return &Credential{
		UID:   token.UID,
		Email: email,
	}, nil
}

// mapToolkitError translates Identity Toolkit error codes into the
// application taxonomy. Each class carries different operator-facing
// guidance, so they are kept distinct.
func mapToolkitError(code string) error {
	switch {
	case strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_EMAIL"):
		return apperror.ErrInvalidCredentials
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return apperror.ErrAuthRateLimited
	case strings.HasPrefix(code, "USER_DISABLED"),
		strings.HasPrefix(code, "OPERATION_NOT_ALLOWED"):
		return apperror.ErrAuthDisabled
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return apperror.NewBadRequestError("This email is already registered, sign in instead")
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return apperror.NewValidationError("Password must be at least 6 characters")
	default:
		return apperror.ErrAuthNetwork
	}
}
