package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
	"github.com/plotbooks/plotbooks_backend/internal/middleware"
	"github.com/plotbooks/plotbooks_backend/internal/platform/config"
)

// googleOAuthHandler handles Google OAuth related requests.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// newGoogleOAuthHandler creates a new instance of googleOAuthHandler.
func newGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService, cfg)
	googleRoutes := rg.Group("/api/v1/auth/google")
	{
		googleRoutes.POST("/exchange-code", h.exchangeCodeGoogle)
	}
}

// exchangeCodeGoogle handles the POST request from the frontend containing the
// authorization code from Google. It exchanges the code for Google tokens,
// validates the ID token, resolves or creates the local user and returns an
// application token pair.
// @Summary Exchange Google authorization code for application tokens
// @Description Exchange Google authorization code for an access and refresh token pair
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   code body dto.GoogleCodeExchangeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Failure 500 {object} map[string]string "Failed to exchange authorization code"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleCodeExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google.")
		c.JSON(appErr.Code, appErr)
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	providerUserID := payload.Subject

	if email == "" || providerUserID == "" {
		logger.Error("Essential claims missing from Google ID token payload", slog.Any("claims", payload.Claims))
		appErr := apperrors.NewInternalServerError("Essential user information missing from Google token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.GetOrCreateGoogleUser(ctx, domain.GoogleUserInfo{
		ID:            providerUserID,
		Email:         email,
		VerifiedEmail: emailVerified,
		Name:          name,
	})
	if err != nil {
		logger.Error("Failed to resolve Google user", slog.String("error", err.Error()), slog.String("google_user_id", providerUserID))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, appErr)
		} else {
			defaultErr := apperrors.NewInternalServerError("Failed to process user authentication.")
			c.JSON(defaultErr.Code, defaultErr)
		}
		return
	}

	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate application access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		appErr := apperrors.NewInternalServerError("Failed to generate access token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	logger.Info("User authenticated via Google OAuth", slog.String("user_id", user.UserID), slog.String("email", user.Email))
	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:     accessToken,
		AccessExpiresAt: accessExpiry,
		User:            dto.ToUserResponse(user),
	})
}
