package dto

import "github.com/unihire/unihire/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	Role      models.RoleType `json:"role" binding:"required"`
}

// TokenResponse represents access token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// SessionResponse is the current auth state as exposed over HTTP
type SessionResponse struct {
	User             *models.User             `json:"user"`
	StudentProfile   *models.StudentProfile   `json:"studentProfile,omitempty"`
	RecruiterProfile *models.RecruiterProfile `json:"recruiterProfile,omitempty"`
	Loading          bool                     `json:"loading"`
	Error            string                   `json:"error,omitempty"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token   *TokenResponse  `json:"token,omitempty"`
	Session SessionResponse `json:"session"`
}

// ForgotPasswordRequest starts the password-recovery flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendVerificationRequest re-sends the verification email
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}
