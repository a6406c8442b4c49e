package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/services"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/validation"
	"github.com/unihire/unihire/internal/provider"
)

// Manager owns the single session State. It resolves identity from the remote
// session provider when one exists and falls back to the local mirror
// otherwise, keeping the two in sync. All dependencies are constructor
// injected; there is exactly one Manager per running client.
type Manager struct {
	provider    provider.SessionProvider
	store       kvstore.Store
	authSvc     *services.AuthService
	profileSvc  *services.ProfileService
	notifier    Notifier
	logger      zerolog.Logger
	unsubscribe func()

	mu          sync.Mutex
	state       State
	subscribers map[int]chan State
	nextSubID   int
}

// NewManager wires a Manager and subscribes it to the provider's
// session-change events. The initial state is loading until Resolve runs.
func NewManager(
	sessionProvider provider.SessionProvider,
	store kvstore.Store,
	authSvc *services.AuthService,
	profileSvc *services.ProfileService,
	notifier Notifier,
	logger zerolog.Logger,
) *Manager {
	m := &Manager{
		provider:    sessionProvider,
		store:       store,
		authSvc:     authSvc,
		profileSvc:  profileSvc,
		notifier:    notifier,
		logger:      logger,
		state:       State{Loading: true},
		subscribers: make(map[int]chan State),
	}
	m.unsubscribe = sessionProvider.OnAuthStateChange(m.handleAuthEvent)
	return m
}

// Close tears down the provider subscription and all subscriber channels.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.subscribers {
		close(ch)
		delete(m.subscribers, id)
	}
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe returns a channel that receives every applied state change and a
// cancel function. Slow subscribers miss intermediate states rather than
// blocking the manager.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	ch := make(chan State, 8)
	m.subscribers[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if ch, ok := m.subscribers[id]; ok {
			close(ch)
			delete(m.subscribers, id)
		}
	}
}

// commit applies mutate to the state, bumps the sequence number and fans the
// new state out to subscribers.
func (m *Manager) commit(mutate func(*State)) State {
	m.mu.Lock()
	state, subscribers := m.applyLocked(mutate)
	m.mu.Unlock()

	m.fanOut(state, subscribers)
	return state
}

// applyLocked mutates the state and snapshots the subscriber list. The caller
// holds m.mu.
func (m *Manager) applyLocked(mutate func(*State)) (State, []chan State) {
	mutate(&m.state)
	m.state.Seq++
	state := m.state
	subscribers := make([]chan State, 0, len(m.subscribers))
	for _, ch := range m.subscribers {
		subscribers = append(subscribers, ch)
	}
	return state, subscribers
}

func (m *Manager) fanOut(state State, subscribers []chan State) {
	for _, ch := range subscribers {
		select {
		case ch <- state:
		default:
		}
	}
}

// seq returns the current sequence number, used to detect writes that land
// while a resolution is in flight.
func (m *Manager) seq() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Seq
}

// identityFromSession builds the Identity from a remote session's claims.
// Role metadata defaults to student; verified means the provider recorded an
// email-confirmation timestamp.
func identityFromSession(sess *provider.Session) *models.User {
	role := models.RoleType(sess.User.Metadata.Role)
	if !role.Valid() {
		role = models.RoleStudent
	}
	return &models.User{
		ID:        sess.User.ID,
		Email:     sess.User.Email,
		Role:      role,
		FirstName: sess.User.Metadata.FirstName,
		LastName:  sess.User.Metadata.LastName,
		CreatedAt: sess.User.CreatedAt,
		Verified:  sess.User.EmailConfirmedAt != nil,
	}
}

// mirror writes a record under a mirror key. Mirror failures are non-fatal:
// the session state is already correct in memory and the next resolution
// rewrites the mirror, so the error is only logged.
func (m *Manager) mirror(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		m.logger.Warn().Err(err).Str("key", key).Msg("Failed to encode session mirror record")
		return
	}
	if err := m.store.Set(ctx, key, string(raw)); err != nil {
		m.logger.Warn().Err(err).Str("key", key).Msg("Failed to write session mirror record")
	}
}

func (m *Manager) clearMirror(ctx context.Context) {
	for _, key := range []string{KeyUser, KeyStudentProfile, KeyRecruiterProfile} {
		if err := m.store.Remove(ctx, key); err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("Failed to clear session mirror record")
		}
	}
}

// readMirrorInto decodes the record under key into out. Returns false when the
// key is absent; a decode failure is a real error (corrupt storage).
func (m *Manager) readMirrorInto(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := m.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("corrupt mirror record %q: %w", key, err)
	}
	return true, nil
}

// Resolve performs the initial session resolution: remote session first, local
// mirror as fallback, anonymous otherwise. A resolution that completes after
// another state write has already landed is discarded, the later write wins.
func (m *Manager) Resolve(ctx context.Context) error {
	begin := m.seq()

	sess, err := m.provider.GetSession(ctx)
	switch {
	case err == nil && sess != nil:
		user := identityFromSession(sess)
		// Mirror only when the commit applies. A discarded resolution must
		// not repopulate keys a concurrent sign-out already cleared.
		if m.commitIfFresh(begin, func(s *State) {
			s.User = user
			s.Loading = false
			s.Err = ""
			s.Source = SourceRemote
		}) {
			m.mirror(ctx, KeyUser, user)
		}
		return nil

	case errors.Is(err, provider.ErrNoSession), errors.Is(err, provider.ErrUnavailable):
		// No remote session; fall through to the local mirror.
		var (
			user      models.User
			student   models.StudentProfile
			recruiter models.RecruiterProfile
		)
		hasUser, readErr := m.readMirrorInto(ctx, KeyUser, &user)
		if readErr != nil {
			return m.failResolve(begin, readErr)
		}
		if !hasUser {
			m.commitIfFresh(begin, func(s *State) {
				s.User = nil
				s.StudentProfile = nil
				s.RecruiterProfile = nil
				s.Loading = false
				s.Err = ""
				s.Source = SourceNone
			})
			return nil
		}

		hasStudent, readErr := m.readMirrorInto(ctx, KeyStudentProfile, &student)
		if readErr != nil {
			return m.failResolve(begin, readErr)
		}
		hasRecruiter, readErr := m.readMirrorInto(ctx, KeyRecruiterProfile, &recruiter)
		if readErr != nil {
			return m.failResolve(begin, readErr)
		}

		m.commitIfFresh(begin, func(s *State) {
			s.User = &user
			if hasStudent {
				s.StudentProfile = &student
			}
			if hasRecruiter {
				s.RecruiterProfile = &recruiter
			}
			s.Loading = false
			s.Err = ""
			s.Source = SourceLocal
		})
		return nil

	default:
		return m.failResolve(begin, err)
	}
}

// commitIfFresh applies the mutation only when no other write landed since the
// resolution began. The check and the commit share one critical section so a
// concurrent event cannot slip in between them. Reports whether the commit
// applied.
func (m *Manager) commitIfFresh(begin uint64, mutate func(*State)) bool {
	m.mu.Lock()
	if m.state.Seq != begin {
		current := m.state.Seq
		m.mu.Unlock()
		m.logger.Debug().Uint64("begin", begin).Uint64("current", current).Msg("Discarding stale session resolution")
		return false
	}
	state, subscribers := m.applyLocked(mutate)
	m.mu.Unlock()

	m.fanOut(state, subscribers)
	return true
}

func (m *Manager) failResolve(begin uint64, err error) error {
	m.logger.Error().Err(err).Msg("Session resolution failed")
	m.commitIfFresh(begin, func(s *State) {
		s.User = nil
		s.StudentProfile = nil
		s.RecruiterProfile = nil
		s.Loading = false
		s.Err = "Failed to authenticate"
		s.Source = SourceNone
	})
	return err
}

// handleAuthEvent reacts to remote session-change notifications. These land
// independently of the initial resolution; whichever write completes last
// wins, and Resolve detects that through the sequence number.
func (m *Manager) handleAuthEvent(event provider.AuthEvent) {
	ctx := context.Background()

	switch event.Type {
	case provider.EventSignedIn:
		if event.Session == nil {
			return
		}
		user := identityFromSession(event.Session)
		m.mirror(ctx, KeyUser, user)
		m.commit(func(s *State) {
			s.User = user
			s.Loading = false
			s.Err = ""
			s.Source = SourceRemote
		})
		m.notifier.Success("Logged in successfully")

	case provider.EventSignedOut:
		m.clearMirror(ctx)
		m.commit(func(s *State) {
			s.User = nil
			s.StudentProfile = nil
			s.RecruiterProfile = nil
			s.Loading = false
			s.Err = ""
			s.Source = SourceNone
		})
		m.notifier.Success("Logged out successfully")

	case provider.EventUserUpdated:
		if event.Session == nil {
			return
		}
		user := identityFromSession(event.Session)
		m.mirror(ctx, KeyUser, user)
		m.commit(func(s *State) {
			s.User = user
			s.Loading = false
			s.Err = ""
			s.Source = SourceRemote
		})
	}
}

// Login signs the user in: remote provider first, local mock fallback when the
// provider rejects or cannot be reached.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.commit(func(s *State) {
		s.Loading = true
		s.Err = ""
	})

	sess, remoteErr := m.provider.SignInWithPassword(ctx, email, password)
	if remoteErr == nil && sess != nil {
		user := identityFromSession(sess)
		m.mirror(ctx, KeyUser, user)
		m.commit(func(s *State) {
			s.User = user
			s.StudentProfile = nil
			s.RecruiterProfile = nil
			s.Loading = false
			s.Err = ""
			s.Source = SourceRemote
		})
		m.notifier.Success("Logged in successfully")
		return nil
	}

	m.logger.Warn().Err(remoteErr).Msg("Remote login failed, falling back to local authentication")

	result, err := m.authSvc.Login(ctx, email, password)
	if err != nil {
		m.commit(func(s *State) {
			s.User = nil
			s.Loading = false
			s.Err = err.Error()
		})
		m.notifier.Error(err.Error())
		return err
	}

	m.applyAuthResult(ctx, result)
	m.notifier.Success("Logged in successfully")
	return nil
}

// Register creates an account: remote provider first, local mock fallback.
// The student email-domain policy is enforced before any call is made. An
// unverified account still populates the session; verified-only actions are
// gated elsewhere.
func (m *Manager) Register(ctx context.Context, email, password, firstName, lastName string, role models.RoleType) error {
	if role == models.RoleStudent {
		if err := m.validateStudentDomain(email); err != nil {
			m.notifier.Error(err.Error())
			return err
		}
	}

	m.commit(func(s *State) {
		s.Loading = true
		s.Err = ""
	})

	metadata := provider.UserMetadata{
		Role:      string(role),
		FirstName: firstName,
		LastName:  lastName,
	}
	sess, remoteErr := m.provider.SignUp(ctx, email, password, metadata)
	if remoteErr == nil && sess != nil {
		user := identityFromSession(sess)
		// The provider may not echo names back before confirmation
		user.FirstName = firstName
		user.LastName = lastName
		m.mirror(ctx, KeyUser, user)
		m.commit(func(s *State) {
			s.User = user
			s.StudentProfile = nil
			s.RecruiterProfile = nil
			s.Loading = false
			s.Err = ""
			s.Source = SourceRemote
		})
		if !user.Verified {
			m.notifier.Info("Please check your email to verify your account")
		}
		m.notifier.Success("Registration successful")
		return nil
	}

	m.logger.Warn().Err(remoteErr).Msg("Remote registration failed, falling back to local registration")

	result, err := m.authSvc.Register(ctx, email, password, firstName, lastName, role)
	if err != nil {
		m.commit(func(s *State) {
			s.Loading = false
			s.Err = err.Error()
		})
		m.notifier.Error(err.Error())
		return err
	}

	m.applyAuthResult(ctx, result)
	if !result.User.Verified {
		m.notifier.Info("Please check your email to verify your account")
	}
	m.notifier.Success("Registration successful")
	return nil
}

func (m *Manager) validateStudentDomain(email string) error {
	return validation.StudentEmailDomain(email, m.authSvc.StudentEmailDomain())
}

// applyAuthResult populates the session from a local auth result and mirrors
// everything that came back.
func (m *Manager) applyAuthResult(ctx context.Context, result *services.AuthResult) {
	m.mirror(ctx, KeyUser, result.User)
	if result.StudentProfile != nil {
		m.mirror(ctx, KeyStudentProfile, result.StudentProfile)
	}
	if result.RecruiterProfile != nil {
		m.mirror(ctx, KeyRecruiterProfile, result.RecruiterProfile)
	}
	m.commit(func(s *State) {
		s.User = result.User
		s.StudentProfile = result.StudentProfile
		s.RecruiterProfile = result.RecruiterProfile
		s.Loading = false
		s.Err = ""
		s.Source = SourceLocal
	})
}

// Logout signs the user out. The remote sign-out is best effort; the mirror is
// cleared and the session reset regardless of its outcome.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.provider.SignOut(ctx); err != nil {
		m.logger.Error().Err(err).Msg("Remote sign-out failed")
	}

	m.clearMirror(ctx)
	m.commit(func(s *State) {
		s.User = nil
		s.StudentProfile = nil
		s.RecruiterProfile = nil
		s.Loading = false
		s.Err = ""
		s.Source = SourceNone
	})
	m.notifier.Success("Logged out successfully")
}

// UpdateStudentProfile merges a partial update through the profile service.
// On failure the in-session profile is left untouched.
func (m *Manager) UpdateStudentProfile(ctx context.Context, update *dto.StudentProfileUpdate) error {
	profile, err := m.profileSvc.UpdateStudentProfile(ctx, update)
	if err != nil {
		m.commit(func(s *State) {
			s.Err = err.Error()
		})
		m.notifier.Error("Failed to update profile")
		return err
	}

	m.mirror(ctx, KeyStudentProfile, profile)
	m.commit(func(s *State) {
		s.StudentProfile = profile
		s.Err = ""
	})
	m.notifier.Success("Profile updated successfully")
	return nil
}

// UpdateRecruiterProfile merges a partial update through the profile service.
// On failure the in-session profile is left untouched.
func (m *Manager) UpdateRecruiterProfile(ctx context.Context, update *dto.RecruiterProfileUpdate) error {
	profile, err := m.profileSvc.UpdateRecruiterProfile(ctx, update)
	if err != nil {
		m.commit(func(s *State) {
			s.Err = err.Error()
		})
		m.notifier.Error("Failed to update profile")
		return err
	}

	m.mirror(ctx, KeyRecruiterProfile, profile)
	m.commit(func(s *State) {
		s.RecruiterProfile = profile
		s.Err = ""
	})
	m.notifier.Success("Profile updated successfully")
	return nil
}
