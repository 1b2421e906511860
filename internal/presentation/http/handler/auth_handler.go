package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/application/service"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/request"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles operator login
// @Summary Login
// @Description Authenticate operator and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", authResultBody(result))
}

// Register handles operator registration
// @Summary Register
// @Description Create a new operator account and sign it in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registration successful", authResultBody(result))
}

// GoogleLogin handles sign-in with a provider ID token
// @Summary Google Login
// @Description Sign in with an ID token from the client-side Google flow
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.GoogleLoginRequest true "Provider ID token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req request.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.LoginWithIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", authResultBody(result))
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Description Refresh access token using refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Logout tears down the operator's till session
// @Summary Logout
// @Description Close the till session; client should discard tokens
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(GetOperatorID(c))
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile handles fetching the current operator profile
// @Summary Get Profile
// @Description Get current operator's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	operator, err := h.authService.Profile(c.Request.Context(), GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{
		"operator": gin.H{
			"uid":     operator.UID,
			"email":   operator.Email,
			"name":    operator.Name,
			"has_pin": operator.HasPIN(),
		},
	})
}

// SetPIN stores a new confirmation PIN
// @Summary Set PIN
// @Description Set the PIN required for destructive till actions
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SetPINRequest true "New PIN"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /profile/pin [put]
func (h *AuthHandler) SetPIN(c *gin.Context) {
	var req request.SetPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.SetPIN(c.Request.Context(), GetOperatorID(c), req.PIN); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "PIN updated successfully", nil)
}

func authResultBody(result *service.AuthResult) gin.H {
	return gin.H{
		"operator": gin.H{
			"uid":     result.Operator.UID,
			"email":   result.Operator.Email,
			"name":    result.Operator.Name,
			"has_pin": result.Operator.HasPIN(),
		},
		"access_token":  result.Tokens.AccessToken,
		"refresh_token": result.Tokens.RefreshToken,
		"token_type":    "Bearer",
	}
}
