package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HTTPConfig holds the connection settings for the hosted identity service.
type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPProvider talks to a GoTrue-style identity endpoint over JSON. It keeps
// the last established session in memory and emits auth events to registered
// handlers as its own calls change that session.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger

	mu       sync.Mutex
	session  *Session
	handlers map[int]func(AuthEvent)
	nextID   int
}

// NewHTTPProvider creates a client for the remote session provider.
func NewHTTPProvider(cfg HTTPConfig, logger zerolog.Logger) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		handlers: make(map[int]func(AuthEvent)),
	}
}

type providerError struct {
	Message     string `json:"msg"`
	Description string `json:"error_description"`
}

func (p *HTTPProvider) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	if p.baseURL == "" {
		return ErrUnavailable
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
	}
	p.mu.Lock()
	if p.session != nil {
		req.Header.Set("Authorization", "Bearer "+p.session.AccessToken)
	}
	p.mu.Unlock()

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var perr providerError
		_ = json.Unmarshal(payload, &perr)
		msg := perr.Message
		if msg == "" {
			msg = perr.Description
		}
		if msg == "" {
			msg = resp.Status
		}
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrSignInFailed, msg)
		}
		return fmt.Errorf("provider error %d: %s", resp.StatusCode, msg)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// setSession swaps the cached session and fans the event out to handlers.
func (p *HTTPProvider) setSession(session *Session, event AuthEventType) {
	p.mu.Lock()
	p.session = session
	handlers := make([]func(AuthEvent), 0, len(p.handlers))
	for _, h := range p.handlers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	p.logger.Debug().Str("event", string(event)).Int("handlers", len(handlers)).Msg("Auth state changed")
	for _, h := range handlers {
		h(AuthEvent{Type: event, Session: session})
	}
}

// GetSession returns the cached session, or ErrNoSession.
func (p *HTTPProvider) GetSession(_ context.Context) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil, ErrNoSession
	}
	return p.session, nil
}

// SignInWithPassword authenticates against the provider's password grant.
func (p *HTTPProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := p.doJSON(ctx, http.MethodPost, "/token?grant_type=password", body, &session); err != nil {
		return nil, err
	}
	p.setSession(&session, EventSignedIn)
	return &session, nil
}

// SignUp creates a remote account with metadata attached.
func (p *HTTPProvider) SignUp(ctx context.Context, email, password string, metadata UserMetadata) (*Session, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     metadata,
	}
	var session Session
	if err := p.doJSON(ctx, http.MethodPost, "/signup", body, &session); err != nil {
		return nil, err
	}
	if session.AccessToken != "" {
		p.setSession(&session, EventSignedIn)
	}
	return &session, nil
}

// SignOut revokes the current session. The cached session is dropped and a
// SIGNED_OUT event emitted even when the remote call fails.
func (p *HTTPProvider) SignOut(ctx context.Context) error {
	err := p.doJSON(ctx, http.MethodPost, "/logout", nil, nil)
	p.setSession(nil, EventSignedOut)
	return err
}

// RefreshSession exchanges the refresh token for a fresh session.
func (p *HTTPProvider) RefreshSession(ctx context.Context) (*Session, error) {
	p.mu.Lock()
	current := p.session
	p.mu.Unlock()
	if current == nil {
		return nil, ErrNoSession
	}

	body := map[string]string{"refresh_token": current.RefreshToken}
	var session Session
	if err := p.doJSON(ctx, http.MethodPost, "/token?grant_type=refresh_token", body, &session); err != nil {
		return nil, err
	}
	p.setSession(&session, EventUserUpdated)
	return &session, nil
}

// Resend re-sends a verification email.
func (p *HTTPProvider) Resend(ctx context.Context, typ ResendType, email string) error {
	body := map[string]string{"type": string(typ), "email": email}
	return p.doJSON(ctx, http.MethodPost, "/resend", body, nil)
}

// ResetPasswordForEmail starts the password-recovery flow.
func (p *HTTPProvider) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	body := map[string]string{"email": email}
	if redirectTo != "" {
		body["redirect_to"] = redirectTo
	}
	return p.doJSON(ctx, http.MethodPost, "/recover", body, nil)
}

// UpdateUser changes the password of the current session's account.
func (p *HTTPProvider) UpdateUser(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	var user SessionUser
	if err := p.doJSON(ctx, http.MethodPut, "/user", body, &user); err != nil {
		return err
	}

	p.mu.Lock()
	session := p.session
	if session != nil {
		updated := *session
		updated.User = user
		session = &updated
	}
	p.mu.Unlock()
	if session != nil {
		p.setSession(session, EventUserUpdated)
	}
	return nil
}

// OnAuthStateChange registers a session-change handler.
func (p *HTTPProvider) OnAuthStateChange(handler func(AuthEvent)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.handlers[id] = handler
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.handlers, id)
		p.mu.Unlock()
	}
}

var _ SessionProvider = (*HTTPProvider)(nil)
