package session

import (
	"context"
	"errors"
	"sync"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrIncompleteSession is returned by Login for a session missing its token,
// user id or email.
var ErrIncompleteSession = errors.New("session is missing token, user id or email")

// LocalStore is the subset of local storage the Manager needs.
type LocalStore interface {
	Token(ctx context.Context) (string, bool, error)
	UserID(ctx context.Context) (string, bool, error)
	Email(ctx context.Context) (string, bool, error)
	SaveSession(ctx context.Context, s models.Session) error
	ClearSession(ctx context.Context) error
	SetProfileCompleted(ctx context.Context, completed bool) error
}

// ProfileFetcher looks up the remote profile record of a user. A nil profile
// with a nil error means the user has no record yet.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// Listener is called with every status the Manager publishes.
type Listener func(models.AuthStatus)

type Manager struct {
	store    LocalStore
	profiles ProfileFetcher
	logger   logging.Logger

	// opMu serializes Initialize, Login, Logout and CompleteProfile.
	opMu sync.Mutex

	mu        sync.RWMutex
	status    models.AuthStatus
	listeners map[int]Listener
	nextID    int
}

func NewManager(store LocalStore, profiles ProfileFetcher, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		store:     store,
		profiles:  profiles,
		logger:    logger,
		status:    models.InitialStatus(),
		listeners: map[int]Listener{},
	}
}

// Status returns the current snapshot.
func (m *Manager) Status() models.AuthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Subscribe registers l for status changes. The returned function removes it.
// Listeners run synchronously on the goroutine of the operation that changed
// the status and must not call back into the Manager's operations.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) publish(s models.AuthStatus) {
	m.mu.Lock()
	m.status = s
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}

func (m *Manager) opLogger(op string) logging.Logger {
	return m.logger.With("op", op, "op_id", uuid.NewString())
}

// Initialize restores the session cached in local storage. It never fails:
// unreadable storage counts as no session and an unreachable profile store
// counts as an incomplete profile. The published status always has
// IsLoading false when Initialize returns.
func (m *Manager) Initialize(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	log := m.opLogger("initialize")
	if !m.Status().IsLoading {
		m.publish(models.InitialStatus())
	}

	sess, err := m.readSession(ctx)
	if err != nil {
		log.Warn(ctx, "cached session unreadable, treating as logged out", "error", err)
	}
	if err != nil || !sess.Complete() {
		log.Debug(ctx, "no cached session")
		m.publish(models.LoggedOutStatus())
		return
	}

	m.publish(m.classifyProfile(ctx, log, sess))
}

// readSession reads the three session keys concurrently. Any failed read
// fails the whole session.
func (m *Manager) readSession(ctx context.Context) (models.Session, error) {
	var s models.Session
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.Token, _, err = m.store.Token(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.UserID, _, err = m.store.UserID(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Email, _, err = m.store.Email(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// Login persists sess and publishes the resulting logged-in status. An
// incomplete session or a storage failure is returned and leaves both the
// store and the status unchanged.
func (m *Manager) Login(ctx context.Context, sess models.Session) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	log := m.opLogger("login")
	if !sess.Complete() {
		log.Warn(ctx, "refusing incomplete session", "has_token", sess.Token != "", "has_user_id", sess.UserID != "")
		return ErrIncompleteSession
	}
	if err := m.store.SaveSession(ctx, sess); err != nil {
		log.Error(ctx, "failed to persist session", "error", err)
		return err
	}

	m.publish(m.classifyProfile(ctx, log, sess))
	return nil
}

// Logout clears the session and every cached profile key in one batch, then
// publishes the logged-out status. If clearing fails the status is unchanged
// and Logout may be retried.
func (m *Manager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	log := m.opLogger("logout")
	if err := m.store.ClearSession(ctx); err != nil {
		log.Error(ctx, "failed to clear session", "error", err)
		return err
	}

	log.Info(ctx, "logged out")
	m.publish(models.LoggedOutStatus())
	return nil
}

// CompleteProfile records a saved profile and moves a logged-in user to the
// complete state. It does nothing while logged out and is idempotent
// otherwise.
func (m *Manager) CompleteProfile(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	cur := m.Status()
	if !cur.IsAuthenticated {
		return nil
	}

	log := m.opLogger("complete_profile")
	if err := m.store.SetProfileCompleted(ctx, true); err != nil {
		log.Error(ctx, "failed to store profile flag", "error", err)
		return err
	}

	cur.HasCompletedProfile = true
	m.publish(cur)
	return nil
}

// classifyProfile builds the logged-in status for sess from a single remote
// profile lookup. Lookup failures classify as an incomplete profile.
func (m *Manager) classifyProfile(ctx context.Context, log logging.Logger, sess models.Session) models.AuthStatus {
	status := models.AuthStatus{
		IsAuthenticated: true,
		UserID:          sess.UserID,
		UserEmail:       sess.Email,
	}

	profile, err := m.profiles.GetProfile(ctx, sess.UserID)
	if err != nil {
		log.Warn(ctx, "profile lookup failed, treating profile as incomplete", "user_id", sess.UserID, "error", err)
		return status
	}
	if !profile.IsComplete() {
		log.Debug(ctx, "profile incomplete", "user_id", sess.UserID, "found", profile != nil)
		return status
	}

	if err := m.store.SetProfileCompleted(ctx, true); err != nil {
		log.Warn(ctx, "failed to cache profile flag", "error", err)
	}
	status.HasCompletedProfile = true
	return status
}
