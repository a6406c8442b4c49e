// Package provider defines the boundary to the remote session provider: a
// hosted identity service issuing sessions, emitting session-change events and
// handling email verification. Every call is fallible; callers own the
// fallback behavior.
package provider

import (
	"context"
	"errors"
	"time"
)

// Provider errors
var (
	// ErrNoSession is returned by GetSession when no session exists.
	ErrNoSession = errors.New("no active session")
	// ErrSignInFailed is returned when the provider rejects the credentials.
	ErrSignInFailed = errors.New("sign-in rejected by provider")
	// ErrUnavailable is returned when the provider cannot be reached at all.
	ErrUnavailable = errors.New("provider unreachable")
)

// AuthEventType identifies a session-change event
type AuthEventType string

const (
	EventSignedIn    AuthEventType = "SIGNED_IN"
	EventSignedOut   AuthEventType = "SIGNED_OUT"
	EventUserUpdated AuthEventType = "USER_UPDATED"
)

// AuthEvent is delivered to OnAuthStateChange handlers.
type AuthEvent struct {
	Type    AuthEventType
	Session *Session
}

// UserMetadata carries the account metadata embedded at sign-up.
type UserMetadata struct {
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SessionUser is the identity the provider reports inside a session.
type SessionUser struct {
	ID               string       `json:"id"`
	Email            string       `json:"email"`
	CreatedAt        time.Time    `json:"created_at"`
	EmailConfirmedAt *time.Time   `json:"email_confirmed_at"`
	Metadata         UserMetadata `json:"user_metadata"`
}

// Session is an authenticated remote session.
type Session struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	User         SessionUser `json:"user"`
}

// ResendType selects what kind of email Resend triggers.
type ResendType string

const (
	ResendSignup ResendType = "signup"
)

// SessionProvider is the remote identity service surface consumed by the
// reconciliation layer.
type SessionProvider interface {
	// GetSession returns the current session, or ErrNoSession.
	GetSession(ctx context.Context) (*Session, error)
	// SignInWithPassword authenticates and establishes a session.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// SignUp creates an account with the metadata attached and, depending on
	// provider policy, an immediate session.
	SignUp(ctx context.Context, email, password string, metadata UserMetadata) (*Session, error)
	// SignOut terminates the current session.
	SignOut(ctx context.Context) error
	// RefreshSession exchanges the refresh token for a fresh session.
	RefreshSession(ctx context.Context) (*Session, error)
	// Resend re-sends a verification email.
	Resend(ctx context.Context, typ ResendType, email string) error
	// ResetPasswordForEmail starts the password-recovery flow.
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	// UpdateUser changes the account password of the current session.
	UpdateUser(ctx context.Context, password string) error
	// OnAuthStateChange registers a session-change handler and returns an
	// unsubscribe function.
	OnAuthStateChange(handler func(AuthEvent)) (unsubscribe func())
}
