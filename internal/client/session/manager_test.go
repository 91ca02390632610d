package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/client/repositories/kv"
	"github.com/ehimavote/evote/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory LocalStore with per-method error injection.
type fakeStore struct {
	mu        sync.Mutex
	values    map[string]string
	readErr   error
	saveErr   error
	clearErr  error
	flagErr   error
	flagCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return "", false, f.readErr
	}
	v, ok := f.values[key]
	return v, ok && v != "", nil
}

func (f *fakeStore) Token(context.Context) (string, bool, error)  { return f.get(storage.KeyToken) }
func (f *fakeStore) UserID(context.Context) (string, bool, error) { return f.get(storage.KeyUserID) }
func (f *fakeStore) Email(context.Context) (string, bool, error)  { return f.get(storage.KeyEmail) }

func (f *fakeStore) SaveSession(_ context.Context, s models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.values[storage.KeyToken] = s.Token
	f.values[storage.KeyUserID] = s.UserID
	f.values[storage.KeyEmail] = s.Email
	return nil
}

func (f *fakeStore) ClearSession(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	for _, k := range storage.SessionKeys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeStore) SetProfileCompleted(_ context.Context, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flagCalls++
	if f.flagErr != nil {
		return f.flagErr
	}
	if completed {
		f.values[storage.KeyProfileCompleted] = "true"
	} else {
		f.values[storage.KeyProfileCompleted] = "false"
	}
	return nil
}

func (f *fakeStore) value(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key]
}

// fakeProfiles serves profiles by user id and counts lookups.
type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]*models.UserProfile
	err      error
	calls    int
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[userID], nil
}

func (f *fakeProfiles) set(userID string, p *models.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profiles == nil {
		f.profiles = map[string]*models.UserProfile{}
	}
	f.profiles[userID] = p
}

var (
	ada     = &models.UserProfile{Name: "Ada", NIM: 42, StudyProgram: "CS", Batch: 21}
	session = models.Session{Token: "tok", UserID: "u1", Email: "a@b.com"}
)

func loggedIn(complete bool) models.AuthStatus {
	return models.AuthStatus{IsAuthenticated: true, UserID: "u1", UserEmail: "a@b.com", HasCompletedProfile: complete}
}

func TestNewManager_StartsLoading(t *testing.T) {
	m := NewManager(newFakeStore(), &fakeProfiles{}, nil)
	assert.Equal(t, models.InitialStatus(), m.Status())
	assert.Equal(t, models.StateUnknown, m.Status().State())
}

func TestInitialize_NoSession(t *testing.T) {
	profiles := &fakeProfiles{}
	m := NewManager(newFakeStore(), profiles, nil)

	m.Initialize(context.Background())

	assert.Equal(t, models.AuthStatus{IsAuthenticated: false, IsLoading: false, HasCompletedProfile: false}, m.Status())
	assert.Equal(t, models.StateLoggedOut, m.Status().State())
	assert.Zero(t, profiles.calls)
}

func TestInitialize_AnyFieldAbsentIsLoggedOut(t *testing.T) {
	for _, missing := range []string{storage.KeyToken, storage.KeyUserID, storage.KeyEmail} {
		t.Run(missing, func(t *testing.T) {
			store := newFakeStore()
			require.NoError(t, store.SaveSession(context.Background(), session))
			store.values[missing] = ""

			profiles := &fakeProfiles{}
			profiles.set("u1", ada)
			m := NewManager(store, profiles, nil)
			m.Initialize(context.Background())

			assert.Equal(t, models.LoggedOutStatus(), m.Status())
			assert.Zero(t, profiles.calls)
		})
	}
}

func TestInitialize_ReadFailureIsLoggedOut(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveSession(context.Background(), session))
	store.readErr = errors.New("disk gone")

	m := NewManager(store, &fakeProfiles{}, nil)
	m.Initialize(context.Background())

	assert.Equal(t, models.LoggedOutStatus(), m.Status())
}

func TestInitialize_WithSession(t *testing.T) {
	tests := []struct {
		name         string
		profile      *models.UserProfile
		lookupErr    error
		wantComplete bool
		wantFlag     string
	}{
		{"complete profile", ada, nil, true, "true"},
		{"no record", nil, nil, false, ""},
		{"missing nim", &models.UserProfile{Name: "Ada"}, nil, false, ""},
		{"missing name", &models.UserProfile{NIM: 42}, nil, false, ""},
		{"lookup fails", nil, errors.New("offline"), false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			require.NoError(t, store.SaveSession(context.Background(), session))
			profiles := &fakeProfiles{err: tt.lookupErr}
			profiles.set("u1", tt.profile)

			m := NewManager(store, profiles, nil)
			m.Initialize(context.Background())

			st := m.Status()
			assert.False(t, st.IsLoading)
			assert.True(t, st.IsAuthenticated)
			assert.Equal(t, loggedIn(tt.wantComplete), st)
			assert.Equal(t, tt.wantFlag, store.value(storage.KeyProfileCompleted))
			assert.Equal(t, 1, profiles.calls)
		})
	}
}

func TestInitialize_FlagWriteFailureStillComplete(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveSession(context.Background(), session))
	store.flagErr = errors.New("read-only")
	profiles := &fakeProfiles{}
	profiles.set("u1", ada)

	m := NewManager(store, profiles, nil)
	m.Initialize(context.Background())

	assert.Equal(t, loggedIn(true), m.Status())
}

func TestLogin_NoRemoteRecordIsIncomplete(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, &fakeProfiles{}, nil)
	m.Initialize(context.Background())

	require.NoError(t, m.Login(context.Background(), session))

	assert.Equal(t, models.StateLoggedInIncompleteProfile, m.Status().State())
	assert.Equal(t, loggedIn(false), m.Status())
	assert.Equal(t, "tok", store.value(storage.KeyToken))
	assert.Equal(t, "u1", store.value(storage.KeyUserID))
	assert.Equal(t, "a@b.com", store.value(storage.KeyEmail))
}

func TestLogin_CompleteRemoteRecord(t *testing.T) {
	profiles := &fakeProfiles{}
	profiles.set("u1", ada)
	m := NewManager(newFakeStore(), profiles, nil)
	m.Initialize(context.Background())

	require.NoError(t, m.Login(context.Background(), session))
	assert.Equal(t, models.StateLoggedInComplete, m.Status().State())
}

func TestLogin_SaveFailureLeavesStatus(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, &fakeProfiles{}, nil)
	m.Initialize(context.Background())
	before := m.Status()

	boom := errors.New("write failed")
	store.saveErr = boom
	err := m.Login(context.Background(), session)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, m.Status())
}

func TestLogin_IncompleteSessionIsRejected(t *testing.T) {
	ctx := context.Background()
	for name, sess := range map[string]models.Session{
		"email only": {Email: "a@b.com"},
		"no token":   {UserID: "u1", Email: "a@b.com"},
		"no user id": {Token: "tok", Email: "a@b.com"},
	} {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			m := NewManager(store, &fakeProfiles{}, nil)
			m.Initialize(ctx)

			err := m.Login(ctx, sess)
			require.ErrorIs(t, err, ErrIncompleteSession)
			assert.Equal(t, models.LoggedOutStatus(), m.Status())
			assert.Empty(t, store.value(storage.KeyEmail))

			restarted := NewManager(store, &fakeProfiles{}, nil)
			restarted.Initialize(ctx)
			assert.Equal(t, m.Status(), restarted.Status())
		})
	}
}

func TestLogout_FromEveryState(t *testing.T) {
	ctx := context.Background()
	setups := map[string]func(m *Manager){
		"unknown":    func(m *Manager) {},
		"logged out": func(m *Manager) { m.Initialize(ctx) },
		"incomplete": func(m *Manager) { m.Initialize(ctx); _ = m.Login(ctx, session) },
		"complete": func(m *Manager) {
			m.Initialize(ctx)
			_ = m.Login(ctx, session)
			_ = m.CompleteProfile(ctx)
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			m := NewManager(store, &fakeProfiles{}, nil)
			setup(m)

			require.NoError(t, m.Logout(ctx))

			st := m.Status()
			assert.Equal(t, models.LoggedOutStatus(), st)
			assert.Empty(t, st.UserID)
			assert.Empty(t, st.UserEmail)
			for _, k := range storage.SessionKeys {
				assert.Empty(t, store.value(k), k)
			}
		})
	}
}

func TestLogout_ClearFailureLeavesStatus(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := NewManager(store, &fakeProfiles{}, nil)
	m.Initialize(ctx)
	require.NoError(t, m.Login(ctx, session))

	boom := errors.New("locked")
	store.clearErr = boom
	require.ErrorIs(t, m.Logout(ctx), boom)
	assert.Equal(t, loggedIn(false), m.Status())

	store.clearErr = nil
	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, models.LoggedOutStatus(), m.Status())
}

func TestCompleteProfile_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := NewManager(store, &fakeProfiles{}, nil)
	m.Initialize(ctx)
	require.NoError(t, m.Login(ctx, session))

	require.NoError(t, m.CompleteProfile(ctx))
	once := m.Status()
	require.NoError(t, m.CompleteProfile(ctx))

	assert.Equal(t, once, m.Status())
	assert.Equal(t, loggedIn(true), once)
	assert.Equal(t, "true", store.value(storage.KeyProfileCompleted))
}

func TestCompleteProfile_LoggedOutIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := NewManager(store, &fakeProfiles{}, nil)
	m.Initialize(ctx)

	require.NoError(t, m.CompleteProfile(ctx))

	assert.Equal(t, models.LoggedOutStatus(), m.Status())
	assert.Zero(t, store.flagCalls)
}

func TestCompleteProfile_FlagFailurePropagates(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := NewManager(store, &fakeProfiles{}, nil)
	m.Initialize(ctx)
	require.NoError(t, m.Login(ctx, session))

	store.flagErr = errors.New("full")
	require.Error(t, m.CompleteProfile(ctx))
	assert.Equal(t, loggedIn(false), m.Status())
}

func TestLoginCompleteThenRestart(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	profiles := &fakeProfiles{}

	m := NewManager(store, profiles, nil)
	m.Initialize(ctx)
	require.NoError(t, m.Login(ctx, session))
	profiles.set("u1", ada)
	require.NoError(t, m.CompleteProfile(ctx))
	assert.Equal(t, models.StateLoggedInComplete, m.Status().State())

	restarted := NewManager(store, profiles, nil)
	restarted.Initialize(ctx)
	assert.Equal(t, loggedIn(true), restarted.Status())
}

func TestSubscribe_ReceivesEveryStatus(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newFakeStore(), &fakeProfiles{}, nil)

	var got []models.State
	unsubscribe := m.Subscribe(func(s models.AuthStatus) { got = append(got, s.State()) })

	m.Initialize(ctx)
	require.NoError(t, m.Login(ctx, session))
	require.NoError(t, m.CompleteProfile(ctx))
	unsubscribe()
	unsubscribe()
	require.NoError(t, m.Logout(ctx))

	assert.Equal(t, []models.State{
		models.StateLoggedOut,
		models.StateLoggedInIncompleteProfile,
		models.StateLoggedInComplete,
	}, got)
}

func TestInitialize_RerunPublishesLoadingFirst(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newFakeStore(), &fakeProfiles{}, nil)
	m.Initialize(ctx)

	var got []bool
	m.Subscribe(func(s models.AuthStatus) { got = append(got, s.IsLoading) })
	m.Initialize(ctx)

	assert.Equal(t, []bool{true, false}, got)
}

func TestOperations_AreSerialized(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := NewManager(store, &fakeProfiles{}, nil)
	m.Initialize(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.Login(ctx, session)
		}()
		go func() {
			defer wg.Done()
			_ = m.Logout(ctx)
		}()
	}
	wg.Wait()

	st := m.Status()
	if st.IsAuthenticated {
		assert.Equal(t, "tok", store.value(storage.KeyToken))
	} else {
		assert.Empty(t, store.value(storage.KeyToken))
	}
}

func TestManager_WithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	store := storage.New(kv.NewSQLiteRepository(db))
	profiles := &fakeProfiles{}
	profiles.set("u1", ada)

	m := NewManager(store, profiles, nil)
	m.Initialize(ctx)
	require.NoError(t, m.Login(ctx, session))
	assert.Equal(t, loggedIn(true), m.Status())

	flag, err := store.ProfileCompleted(ctx)
	require.NoError(t, err)
	assert.True(t, flag)

	require.NoError(t, m.Logout(ctx))
	flag, err = store.ProfileCompleted(ctx)
	require.NoError(t, err)
	assert.False(t, flag)

	m2 := NewManager(store, profiles, nil)
	m2.Initialize(ctx)
	assert.Equal(t, models.LoggedOutStatus(), m2.Status())
}
