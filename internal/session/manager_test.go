package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/repositories"
	"github.com/unihire/unihire/internal/app/services"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/auth"
	"github.com/unihire/unihire/internal/provider"
)

// fakeProvider is a scriptable SessionProvider.
type fakeProvider struct {
	mu       sync.Mutex
	handlers []func(provider.AuthEvent)

	session      *provider.Session
	sessionErr   error
	onGetSession func()

	signInSession *provider.Session
	signInErr     error
	signUpSession *provider.Session
	signUpErr     error
	signOutErr    error
	signOutCalls  int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessionErr: provider.ErrNoSession}
}

func (f *fakeProvider) GetSession(context.Context) (*provider.Session, error) {
	if f.onGetSession != nil {
		f.onGetSession()
	}
	return f.session, f.sessionErr
}

func (f *fakeProvider) SignInWithPassword(context.Context, string, string) (*provider.Session, error) {
	return f.signInSession, f.signInErr
}

func (f *fakeProvider) SignUp(context.Context, string, string, provider.UserMetadata) (*provider.Session, error) {
	return f.signUpSession, f.signUpErr
}

func (f *fakeProvider) SignOut(context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	f.mu.Unlock()
	return f.signOutErr
}

func (f *fakeProvider) RefreshSession(context.Context) (*provider.Session, error) {
	return f.session, f.sessionErr
}

func (f *fakeProvider) Resend(context.Context, provider.ResendType, string) error { return nil }

func (f *fakeProvider) ResetPasswordForEmail(context.Context, string, string) error { return nil }

func (f *fakeProvider) UpdateUser(context.Context, string) error { return nil }

func (f *fakeProvider) OnAuthStateChange(handler func(provider.AuthEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, handler)
	return func() {}
}

func (f *fakeProvider) emit(event provider.AuthEvent) {
	f.mu.Lock()
	handlers := append([]func(provider.AuthEvent){}, f.handlers...)
	f.mu.Unlock()
	for _, h := range handlers {
		h(event)
	}
}

// recordingNotifier captures notices for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) record(kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, kind+": "+message)
}

func (n *recordingNotifier) Success(message string) { n.record("success", message) }
func (n *recordingNotifier) Info(message string)    { n.record("info", message) }
func (n *recordingNotifier) Error(message string)   { n.record("error", message) }

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.messages...)
}

// failingSetStore wraps a store and fails every write.
type failingSetStore struct {
	kvstore.Store
}

func (s *failingSetStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

type fixture struct {
	provider *fakeProvider
	store    kvstore.Store
	repos    *repositories.Repositories
	authSvc  *services.AuthService
	notifier *recordingNotifier
	manager  *Manager
}

func newFixture(t *testing.T, store kvstore.Store) *fixture {
	t.Helper()
	if store == nil {
		store = kvstore.NewMemoryStore()
	}
	lgr := zerolog.Nop()
	repos := repositories.NewRepositories(store)
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key-0123456789abcdef",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	authSvc := services.NewAuthService(repos, jwtSvc, "@college.edu", 0, lgr)
	profileSvc := services.NewProfileService(repos, 0, lgr)

	fp := newFakeProvider()
	notifier := &recordingNotifier{}
	m := NewManager(fp, store, authSvc, profileSvc, notifier, lgr)
	t.Cleanup(m.Close)

	return &fixture{
		provider: fp,
		store:    store,
		repos:    repos,
		authSvc:  authSvc,
		notifier: notifier,
		manager:  m,
	}
}

func remoteSession(id, email, role string) *provider.Session {
	confirmed := time.Now()
	return &provider.Session{
		AccessToken:  "token",
		RefreshToken: "refresh",
		User: provider.SessionUser{
			ID:               id,
			Email:            email,
			CreatedAt:        time.Now(),
			EmailConfirmedAt: &confirmed,
			Metadata: provider.UserMetadata{
				Role:      role,
				FirstName: "Jamie",
				LastName:  "Doe",
			},
		},
	}
}

func registerLocalStudent(t *testing.T, f *fixture, email, password string) *services.AuthResult {
	t.Helper()
	result, err := f.authSvc.Register(context.Background(), email, password, "Alex", "Johnson", models.RoleStudent)
	require.NoError(t, err)
	return result
}

func TestResolveRemoteSession(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.session = remoteSession("u-1", "jamie@college.edu", "student")
	f.provider.sessionErr = nil

	require.NoError(t, f.manager.Resolve(context.Background()))

	state := f.manager.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "u-1", state.User.ID)
	assert.Equal(t, models.RoleStudent, state.User.Role)
	assert.True(t, state.User.Verified)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.Equal(t, SourceRemote, state.Source)

	// The resolved identity is mirrored for the next offline start
	raw, err := f.store.Get(context.Background(), KeyUser)
	require.NoError(t, err)
	var mirrored models.User
	require.NoError(t, json.Unmarshal([]byte(raw), &mirrored))
	assert.Equal(t, "u-1", mirrored.ID)
}

func TestResolveFallsBackToMirror(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user := models.User{ID: "u-2", Email: "alex@college.edu", Role: models.RoleStudent, Verified: true}
	profile := models.StudentProfile{ID: "p-2", UserID: "u-2", Department: "Physics"}
	for key, value := range map[string]interface{}{KeyUser: user, KeyStudentProfile: profile} {
		raw, err := json.Marshal(value)
		require.NoError(t, err)
		require.NoError(t, f.store.Set(ctx, key, string(raw)))
	}

	require.NoError(t, f.manager.Resolve(ctx))

	state := f.manager.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "u-2", state.User.ID)
	require.NotNil(t, state.StudentProfile)
	assert.Equal(t, "Physics", state.StudentProfile.Department)
	assert.Nil(t, state.RecruiterProfile)
	assert.Equal(t, SourceLocal, state.Source)
}

func TestResolveAnonymous(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.manager.Resolve(context.Background()))

	state := f.manager.State()
	assert.Nil(t, state.User)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.False(t, state.Authenticated())
}

func TestResolveCorruptMirror(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, KeyUser, "{not json"))

	err := f.manager.Resolve(ctx)
	require.Error(t, err)

	state := f.manager.State()
	assert.Nil(t, state.User)
	assert.False(t, state.Loading)
	assert.Equal(t, "Failed to authenticate", state.Err)
}

func TestResolveIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.provider.session = remoteSession("u-3", "sam@college.edu", "student")
	f.provider.sessionErr = nil

	require.NoError(t, f.manager.Resolve(ctx))
	first := f.manager.State()
	require.NoError(t, f.manager.Resolve(ctx))
	second := f.manager.State()

	assert.Equal(t, first.User, second.User)
	assert.Equal(t, first.Source, second.Source)
	assert.Equal(t, first.Err, second.Err)
	assert.Equal(t, first.Loading, second.Loading)
}

func TestResolveDiscardedWhenWriteLandsFirst(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.session = remoteSession("u-4", "kim@college.edu", "student")
	f.provider.sessionErr = nil
	// A sign-out lands while the resolution is reading the provider; the
	// resolution's result is stale and must not be applied.
	f.provider.onGetSession = func() {
		f.provider.emit(provider.AuthEvent{Type: provider.EventSignedOut})
	}

	require.NoError(t, f.manager.Resolve(context.Background()))

	state := f.manager.State()
	assert.Nil(t, state.User)
	assert.Equal(t, SourceNone, state.Source)

	// The discarded resolution must not have repopulated the mirror either,
	// or the next resolution would resurrect the signed-out user from it.
	_, err := f.store.Get(context.Background(), KeyUser)
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)

	f.provider.session = nil
	f.provider.sessionErr = provider.ErrNoSession
	f.provider.onGetSession = nil
	require.NoError(t, f.manager.Resolve(context.Background()))

	state = f.manager.State()
	assert.Nil(t, state.User)
	assert.Equal(t, SourceNone, state.Source)
}

func TestCommitIfFreshIsAtomic(t *testing.T) {
	f := newFixture(t, nil)

	// The freshness check and the mutation must share one critical section:
	// whenever the mutation runs, no other write can have landed since the
	// sequence snapshot. Concurrent commits make a violation observable.
	for i := 0; i < 200; i++ {
		begin := f.manager.seq()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.manager.commit(func(s *State) {
				s.Source = SourceNone
			})
		}()

		var observed uint64
		applied := f.manager.commitIfFresh(begin, func(s *State) {
			observed = s.Seq
		})
		if applied {
			assert.Equal(t, begin, observed)
		}
		wg.Wait()
	}
}

func TestLoginRemote(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.signInSession = remoteSession("u-5", "dana@college.edu", "student")

	require.NoError(t, f.manager.Login(context.Background(), "dana@college.edu", "password1"))

	state := f.manager.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "u-5", state.User.ID)
	assert.Equal(t, SourceRemote, state.Source)
	assert.Contains(t, f.notifier.all(), "success: Logged in successfully")
}

func TestLoginFallsBackToLocal(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.signInErr = provider.ErrUnavailable
	registered := registerLocalStudent(t, f, "alex@college.edu", "password1")

	require.NoError(t, f.manager.Login(context.Background(), "alex@college.edu", "password1"))

	state := f.manager.State()
	require.NotNil(t, state.User)
	assert.Equal(t, registered.User.ID, state.User.ID)
	require.NotNil(t, state.StudentProfile)
	assert.Equal(t, SourceLocal, state.Source)

	// Both the user and the profile are mirrored
	_, err := f.store.Get(context.Background(), KeyUser)
	require.NoError(t, err)
	_, err = f.store.Get(context.Background(), KeyStudentProfile)
	require.NoError(t, err)
}

func TestLoginFailsOnBothPaths(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.signInErr = provider.ErrSignInFailed

	err := f.manager.Login(context.Background(), "nobody@college.edu", "wrong-pass")
	require.Error(t, err)

	state := f.manager.State()
	assert.Nil(t, state.User)
	assert.False(t, state.Loading)
	assert.NotEmpty(t, state.Err)
}

func TestRegisterStudentRejectsForeignDomain(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	before := f.manager.State()

	err := f.manager.Register(ctx, "alex@other.com", "password1", "Alex", "J", models.RoleStudent)
	require.Error(t, err)
	assert.Equal(t, "Students must register with a college email (@college.edu)", err.Error())

	// Nothing was written and the session did not change
	_, getErr := f.store.Get(ctx, repositories.KeyUsers)
	assert.ErrorIs(t, getErr, kvstore.ErrKeyNotFound)
	after := f.manager.State()
	assert.Equal(t, before.Seq, after.Seq)
}

func TestRegisterLocalStudent(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.signUpErr = provider.ErrUnavailable

	err := f.manager.Register(context.Background(), "alex@college.edu", "password1", "Alex", "Johnson", models.RoleStudent)
	require.NoError(t, err)

	state := f.manager.State()
	require.NotNil(t, state.User)
	assert.True(t, state.User.Verified)
	require.NotNil(t, state.StudentProfile)
	assert.Equal(t, models.WorkStatusAvailable, state.StudentProfile.WorkStatus)
	assert.Contains(t, f.notifier.all(), "success: Registration successful")
}

func TestRegisterUnverifiedRemoteAccount(t *testing.T) {
	f := newFixture(t, nil)
	sess := remoteSession("u-6", "new@example.com", "recruiter")
	sess.User.EmailConfirmedAt = nil
	f.provider.signUpSession = sess

	err := f.manager.Register(context.Background(), "new@example.com", "password1", "Morgan", "Lee", models.RoleRecruiter)
	require.NoError(t, err)

	state := f.manager.State()
	require.NotNil(t, state.User)
	assert.False(t, state.User.Verified)
	assert.Contains(t, f.notifier.all(), "info: Please check your email to verify your account")
}

func TestLogoutClearsMirror(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.provider.signInErr = provider.ErrUnavailable
	registerLocalStudent(t, f, "alex@college.edu", "password1")
	require.NoError(t, f.manager.Login(ctx, "alex@college.edu", "password1"))

	f.manager.Logout(ctx)

	for _, key := range []string{KeyUser, KeyStudentProfile, KeyRecruiterProfile} {
		_, err := f.store.Get(ctx, key)
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound, key)
	}
	state := f.manager.State()
	assert.Nil(t, state.User)
	assert.Nil(t, state.StudentProfile)
	assert.Equal(t, 1, f.provider.signOutCalls)
	assert.Contains(t, f.notifier.all(), "success: Logged out successfully")
}

func TestLogoutSurvivesRemoteFailure(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.provider.signOutErr = errors.New("network down")
	f.provider.signInErr = provider.ErrUnavailable
	registerLocalStudent(t, f, "alex@college.edu", "password1")
	require.NoError(t, f.manager.Login(ctx, "alex@college.edu", "password1"))

	f.manager.Logout(ctx)

	_, err := f.store.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	assert.Nil(t, f.manager.State().User)
}

func TestSignedInEvent(t *testing.T) {
	f := newFixture(t, nil)

	f.provider.emit(provider.AuthEvent{
		Type:    provider.EventSignedIn,
		Session: remoteSession("u-7", "eve@college.edu", "student"),
	})

	state := f.manager.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "u-7", state.User.ID)
	assert.Equal(t, SourceRemote, state.Source)
}

func TestSignedOutEvent(t *testing.T) {
	f := newFixture(t, nil)
	f.provider.emit(provider.AuthEvent{
		Type:    provider.EventSignedIn,
		Session: remoteSession("u-8", "eve@college.edu", "student"),
	})

	f.provider.emit(provider.AuthEvent{Type: provider.EventSignedOut})

	state := f.manager.State()
	assert.Nil(t, state.User)
	_, err := f.store.Get(context.Background(), KeyUser)
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestMirrorWriteFailureIsNonFatal(t *testing.T) {
	base := kvstore.NewMemoryStore()
	f := newFixture(t, &failingSetStore{Store: base})
	f.provider.signInSession = remoteSession("u-9", "finn@college.edu", "student")

	// The remote login succeeded, so a broken mirror must not fail it
	require.NoError(t, f.manager.Login(context.Background(), "finn@college.edu", "password1"))

	state := f.manager.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "u-9", state.User.ID)
	assert.Empty(t, state.Err)
}

func TestUpdateStudentProfileSyncsMirror(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.provider.signInErr = provider.ErrUnavailable
	registered := registerLocalStudent(t, f, "alex@college.edu", "password1")
	require.NoError(t, f.manager.Login(ctx, "alex@college.edu", "password1"))

	department := "Mathematics"
	err := f.manager.UpdateStudentProfile(ctx, &dto.StudentProfileUpdate{
		ID:         registered.StudentProfile.ID,
		Department: &department,
	})
	require.NoError(t, err)

	state := f.manager.State()
	require.NotNil(t, state.StudentProfile)
	assert.Equal(t, "Mathematics", state.StudentProfile.Department)
	// Untouched fields survive the merge
	assert.Equal(t, "Alex", state.StudentProfile.FirstName)

	raw, err := f.store.Get(ctx, KeyStudentProfile)
	require.NoError(t, err)
	var mirrored models.StudentProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &mirrored))
	assert.Equal(t, "Mathematics", mirrored.Department)
}

func TestUpdateStudentProfileFailureLeavesSessionProfile(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.provider.signInErr = provider.ErrUnavailable
	registerLocalStudent(t, f, "alex@college.edu", "password1")
	require.NoError(t, f.manager.Login(ctx, "alex@college.edu", "password1"))
	before := f.manager.State().StudentProfile

	department := "Mathematics"
	err := f.manager.UpdateStudentProfile(ctx, &dto.StudentProfileUpdate{
		ID:         "does-not-exist",
		Department: &department,
	})
	require.Error(t, err)

	state := f.manager.State()
	assert.Equal(t, before, state.StudentProfile)
	assert.NotEmpty(t, state.Err)
	assert.Contains(t, f.notifier.all(), "error: Failed to update profile")
}

func TestSubscribeReceivesCommits(t *testing.T) {
	f := newFixture(t, nil)
	ch, cancel := f.manager.Subscribe()
	defer cancel()

	require.NoError(t, f.manager.Resolve(context.Background()))

	select {
	case state := <-ch:
		assert.False(t, state.Loading)
	case <-time.After(time.Second):
		t.Fatal("expected a state notification")
	}
}
