package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/identity"
	"github.com/ErlanBelekov/finance-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	VerifySignupOTP(ctx context.Context, email, code string) (*domain.User, error)
	ResendSignupOTP(ctx context.Context, email string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	VerifyLoginOTP(ctx context.Context, email, code string) (*usecase.LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyPasswordResetOTP(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

const (
	statusOTPRequired = "otp_required"
	statusSuccess     = "success"
)

type registerRequest struct {
	Fullname string `json:"fullname" binding:"required,max=100"`
	Email    string `json:"email"    binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type otpRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp"   binding:"required,max=16"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"       binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
	ResetToken  string `json:"resetToken"  binding:"required"`
}

type otpRequiredResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

type loginResponse struct {
	Status string            `json:"status"`
	Token  string            `json:"token"`
	User   domain.PublicUser `json:"user"`
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			respondError(c, http.StatusBadRequest, codeUserExists, errUserExists)
			return
		}
		h.serverError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, otpRequiredResponse{Status: statusOTPRequired, Email: user.Email})
}

// POST /verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	user, err := h.authUsecase.VerifySignupOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.otpError(c, "verify signup otp", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "email": user.Email})
}

// POST /resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	user, err := h.authUsecase.ResendSignupOTP(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyVerified) {
			respondError(c, http.StatusBadRequest, codeAlreadyVerified, errAlreadyVerified)
			return
		}
		h.otpError(c, "resend signup otp", err)
		return
	}

	c.JSON(http.StatusOK, otpRequiredResponse{Status: statusOTPRequired, Email: user.Email})
}

// POST /login
// Success only means a login code was mailed; the token comes from /verify-login-otp.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	user, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, codeInvalidCredentials, errInvalidCredentials)
		case errors.Is(err, domain.ErrUnverifiedAccount):
			respondError(c, http.StatusUnauthorized, codeUnverifiedAccount, errUnverifiedAccount)
		default:
			h.serverError(c, "login", err)
		}
		return
	}

	c.JSON(http.StatusOK, otpRequiredResponse{Status: statusOTPRequired, Email: user.Email})
}

// POST /verify-login-otp
func (h *AuthHandler) VerifyLoginOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	result, err := h.authUsecase.VerifyLoginOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.otpError(c, "verify login otp", err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Status: statusSuccess, Token: result.Token, User: result.User})
}

// POST /password-reset/request
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	if err := h.authUsecase.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, codeNotFound, errUserNotFound)
			return
		}
		h.serverError(c, "request password reset", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /password-reset/verify
// Returns the reset token that /password-reset/reset requires.
func (h *AuthHandler) VerifyPasswordReset(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	resetToken, err := h.authUsecase.VerifyPasswordResetOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(c, http.StatusNotFound, codeNotFound, errUserNotFound)
		case errors.Is(err, domain.ErrInvalidOTP):
			respondError(c, http.StatusBadRequest, codeInvalidOTP, errInvalidOTP)
		default:
			h.serverError(c, "verify password reset otp", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "resetToken": resetToken})
}

// POST /password-reset/reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	err := h.authUsecase.ResetPassword(c.Request.Context(), usecase.ResetPasswordInput{
		Email:       req.Email,
		NewPassword: req.NewPassword,
		ResetToken:  req.ResetToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(c, http.StatusNotFound, codeNotFound, errUserNotFound)
		case errors.Is(err, domain.ErrInvalidResetToken):
			respondError(c, http.StatusUnauthorized, codeInvalidResetToken, errInvalidResetToken)
		default:
			h.serverError(c, "reset password", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /current-user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	caller, ok := identity.FromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, codeUnauthorized, errUnauthorized)
		return
	}

	user, err := h.authUsecase.CurrentUser(c.Request.Context(), caller.UserID())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, codeNotFound, errUserNotFound)
			return
		}
		h.serverError(c, "current user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

// otpError maps the failures shared by the code-verification endpoints.
func (h *AuthHandler) otpError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(c, http.StatusBadRequest, codeUserNotFound, errUserNotFound)
	case errors.Is(err, domain.ErrInvalidOTP):
		respondError(c, http.StatusBadRequest, codeInvalidOTP, errInvalidOTP)
	default:
		h.serverError(c, op, err)
	}
}

func (h *AuthHandler) serverError(c *gin.Context, op string, err error) {
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	respondError(c, http.StatusInternalServerError, codeServerError, errInternalServer)
}
