package handler

import "github.com/gin-gonic/gin"

// Machine-readable error codes returned in the "code" field.
const (
	codeValidation         = "VALIDATION_ERROR"
	codeUserExists         = "USER_EXISTS"
	codeUserNotFound       = "USER_NOT_FOUND"
	codeNotFound           = "NOT_FOUND"
	codeInvalidOTP         = "INVALID_OTP"
	codeAlreadyVerified    = "ALREADY_VERIFIED"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeUnverifiedAccount  = "UNVERIFIED_ACCOUNT"
	codeInvalidResetToken  = "INVALID_RESET_TOKEN"
	codeInvalidID          = "INVALID_ID"
	codeForbidden          = "FORBIDDEN"
	codeConflict           = "CONFLICT"
	codeServerError        = "SERVER_ERROR"
	codeUnauthorized       = "UNAUTHORIZED"
)

const (
	errInternalServer     = "Internal server error"
	errUnauthorized       = "Unauthorized"
	errUserExists         = "User with this email already exists"
	errUserNotFound       = "User not found"
	errInvalidOTP         = "Invalid or expired OTP"
	errAlreadyVerified    = "Account is already verified"
	errInvalidCredentials = "Invalid email or password"
	errUnverifiedAccount  = "Please verify your account before logging in"
	errInvalidResetToken  = "Reset token is invalid or expired"
	errInvalidID          = "Invalid id"
	errInvalidRecurrence  = "Recurrence must be a valid cron expression"
	errInvalidPeriod      = "Period end must not be before period start"
)

func errorBody(code, msg string) gin.H {
	return gin.H{"code": code, "error": msg}
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, errorBody(code, msg))
}
