package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
	"github.com/plotbooks/plotbooks_backend/internal/middleware"
	"github.com/plotbooks/plotbooks_backend/internal/platform/config"
	"github.com/plotbooks/plotbooks_backend/internal/utils"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.TokenService, cfg)

	// 5 attempts per minute per IP on credential endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/register", h.register)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
	}
}

// issueTokens generates an access and refresh token pair for the user,
// persists the refresh token hash and sets the refresh cookie.
func (h *authHandler) issueTokens(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		return nil, err
	}

	// The cookie carries the user ID alongside the opaque token so the
	// refresh endpoint knows whose stored hash to check. The token itself is
	// hex, so the dot separator is unambiguous.
	cookieValue := user.UserID + "." + refreshToken
	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, cookieValue, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	return &dto.LoginResponse{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     cookieValue,
		RefreshExpiresAt: refreshExpiry,
		User:             dto.ToUserResponse(user),
	}, nil
}

// login godoc
// @Summary User login
// @Description Authenticates a staff user and returns an access and refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens on login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}

// register godoc
// @Summary Register new staff user
// @Description Creates a new staff user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "User with email already exists"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req, "")
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "User with this email already exists"})
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// refresh godoc
// @Summary Refresh access token
// @Description Rotates the refresh token and returns a new token pair. The refresh token is read from the cookie or the request body.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token (when not using the cookie)"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tokenValue, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || tokenValue == "" {
		var req dto.RefreshTokenRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token required"})
			return
		}
		tokenValue = req.RefreshToken
	}

	userID, rawToken, found := strings.Cut(tokenValue, ".")
	if !found || userID == "" || rawToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Malformed refresh token"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token expired"})
			return
		}
		logger.Warn("Refresh token validation failed", slog.String("user_id", userID))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens on refresh", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("Tokens refreshed", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}

// logout godoc
// @Summary Logout
// @Description Invalidates the stored refresh token and clears the refresh cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	tokenValue, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err == nil && tokenValue != "" {
		if userID, _, found := strings.Cut(tokenValue, "."); found && userID != "" {
			// Best effort; an already cleared token is not an error for logout.
			_ = h.userService.ClearRefreshToken(c.Request.Context(), userID)
		}
	}

	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	c.Status(http.StatusNoContent)
}
