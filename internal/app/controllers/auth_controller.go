package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/services"
	"github.com/unihire/unihire/internal/middleware"
	"github.com/unihire/unihire/internal/provider"
	"github.com/unihire/unihire/internal/session"
)

// AuthController exposes the reconciliation layer's auth operations over HTTP.
type AuthController struct {
	sessions        *session.Manager
	authService     *services.AuthService
	sessionProvider provider.SessionProvider
	logger          zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(
	sessions *session.Manager,
	authService *services.AuthService,
	sessionProvider provider.SessionProvider,
	logger zerolog.Logger,
) *AuthController {
	return &AuthController{
		sessions:        sessions,
		authService:     authService,
		sessionProvider: sessionProvider,
		logger:          logger,
	}
}

func sessionResponse(state session.State) dto.SessionResponse {
	return dto.SessionResponse{
		User:             state.User,
		StudentProfile:   state.StudentProfile,
		RecruiterProfile: state.RecruiterProfile,
		Loading:          state.Loading,
		Error:            state.Err,
	}
}

// Login handles POST /auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.sessions.Login(ctx.Request.Context(), req.Email, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	state := c.sessions.State()
	response := dto.AuthResponse{Session: sessionResponse(state)}
	if state.User != nil {
		token, expiresIn, err := c.authService.IssueToken(state.User)
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to issue access token")
			middleware.HandleAPIError(ctx, err)
			return
		}
		response.Token = &dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn}
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response, Timestamp: time.Now()})
}

// Register handles POST /auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	err := c.sessions.Register(ctx.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	state := c.sessions.State()
	response := dto.AuthResponse{Session: sessionResponse(state)}
	if state.User != nil {
		token, expiresIn, err := c.authService.IssueToken(state.User)
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to issue access token")
			middleware.HandleAPIError(ctx, err)
			return
		}
		response.Token = &dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn}
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response, Timestamp: time.Now()})
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessions.Logout(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Logged out successfully", Timestamp: time.Now()})
}

// GetSession handles GET /auth/session
func (c *AuthController) GetSession(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: sessionResponse(c.sessions.State()), Timestamp: time.Now()})
}

// ForgotPassword handles POST /auth/forgot-password. The outcome is reported
// generically so the endpoint does not leak which emails exist.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.sessionProvider.ResetPasswordForEmail(ctx.Request.Context(), req.Email, ""); err != nil {
		c.logger.Warn().Err(err).Msg("Password recovery request failed")
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "If the email exists, a recovery message has been sent",
		Timestamp: time.Now(),
	})
}

// ResendVerification handles POST /auth/resend-verification
func (c *AuthController) ResendVerification(ctx *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.sessionProvider.Resend(ctx.Request.Context(), provider.ResendSignup, req.Email); err != nil {
		c.logger.Warn().Err(err).Msg("Verification resend failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Verification email sent", Timestamp: time.Now()})
}
