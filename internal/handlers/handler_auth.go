package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
	"github.com/Drumblow/modularcompany-sub001/internal/middleware"
	"github.com/Drumblow/modularcompany-sub001/internal/platform/config"
)

// authHandler handles authentication and bootstrap requests.
type authHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	googleService portssvc.GoogleAuthSvcFacade
	cfg           *config.Config
}

func newAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:   services.User,
		tokenService:  services.Token,
		googleService: services.GoogleAuth,
		cfg:           cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(cfg, services)

	// 10 requests per minute per IP on the credential endpoints.
	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limit := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", limit, h.register)
		auth.POST("/login", limit, h.login)
		auth.POST("/google", limit, h.googleLogin)
		auth.GET("/google/login-url", h.googleLoginURL)
		auth.POST("/google/exchange-code", limit, h.googleExchangeCode)
	}

	r.POST("/api/v1/setup", limit, h.setup)
}

// register godoc
// @Summary Self-registration
// @Description Creates an EMPLOYEE account without a company. An administrator assigns the company later.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// login godoc
// @Summary Credentials login
// @Description Authenticates a user and returns a JWT access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// googleLogin godoc
// @Summary Google sign-in
// @Description Validates a Google ID token and returns a JWT, creating the account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid Google token"
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	payload, err := h.googleService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token do Google inválido."})
		return
	}

	h.loginFromGooglePayloadClaims(c, payload.Claims)
}

// googleLoginURL godoc
// @Summary Google OAuth login URL
// @Description Returns the Google consent URL and the CSRF state for the web flow.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/google/login-url [get]
func (h *authHandler) googleLoginURL(c *gin.Context) {
	state, err := h.googleService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":   h.googleService.GetGoogleLoginURL(c.Request.Context(), state),
		"state": state,
	})
}

// exchangeCodeRequest carries the authorization code from the web flow.
type exchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// googleExchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description Exchanges the OAuth code for Google tokens, resolves the user and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body exchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid code"
// @Failure 401 {object} map[string]string "Invalid Google token"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) googleExchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req exchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	token, err := h.googleService.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("Failed to exchange Google authorization code", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Código de autorização inválido ou expirado."})
		return
	}

	// Prefer the ID token from the exchange; fall back to the userinfo
	// endpoint when Google does not include one.
	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		payload, err := h.googleService.ValidateGoogleIDToken(c.Request.Context(), idToken)
		if err != nil {
			logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token do Google inválido."})
			return
		}
		h.loginFromGooglePayloadClaims(c, payload.Claims)
		return
	}

	info, err := h.googleService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	h.loginFromGoogleInfo(c, *info)
}

func (h *authHandler) loginFromGooglePayloadClaims(c *gin.Context, claims map[string]interface{}) {
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	verified, _ := claims["email_verified"].(bool)

	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token do Google sem email."})
		return
	}

	h.loginFromGoogleInfo(c, domain.GoogleUserInfo{
		Email:         email,
		Name:          name,
		VerifiedEmail: verified,
	})
}

func (h *authHandler) loginFromGoogleInfo(c *gin.Context, info domain.GoogleUserInfo) {
	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), info)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

// setup godoc
// @Summary Bootstrap the developer account
// @Description One-time setup: creates the DEVELOPER account from DEVELOPER_EMAIL/DEVELOPER_PASSWORD. Requires the X-Setup-Token header. Idempotent.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Setup-Token header string true "Setup secret token"
// @Param setup body dto.SetupRequest false "Optional account name"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Invalid setup token"
// @Failure 409 {object} map[string]string "Setup disabled"
// @Router /setup [post]
func (h *authHandler) setup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if h.cfg.SetupSecretToken == "" || h.cfg.DeveloperEmail == "" || h.cfg.DeveloperPassword == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Setup não está habilitado nesta instalação."})
		return
	}
	if c.GetHeader("X-Setup-Token") != h.cfg.SetupSecretToken {
		logger.Warn("Setup attempted with wrong token", slog.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token de setup inválido."})
		return
	}

	var req dto.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondBindingError(c, err)
		return
	}
	name := req.Name
	if name == "" {
		name = "Developer"
	}

	dev, err := h.userService.EnsureDeveloper(c.Request.Context(), name, h.cfg.DeveloperEmail, h.cfg.DeveloperPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(dev))
}

func (h *authHandler) respondWithToken(c *gin.Context, status int, user *domain.User) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}
