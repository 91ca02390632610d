package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/ehimavote/evote/internal/client/client"
	"github.com/ehimavote/evote/internal/client/config"
	"github.com/ehimavote/evote/internal/client/identity"
	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/client/profiles"
	"github.com/ehimavote/evote/internal/client/repositories/kv"
	"github.com/ehimavote/evote/internal/client/services"
	"github.com/ehimavote/evote/internal/client/session"
	"github.com/ehimavote/evote/internal/client/storage"
	"github.com/ehimavote/evote/internal/filex"
	"github.com/ehimavote/evote/internal/logging"
)

// statusSource is the read side of the session manager.
type statusSource interface {
	Status() models.AuthStatus
}

// cachedSession exposes what the status command reports from local storage.
type cachedSession interface {
	Token(ctx context.Context) (string, bool, error)
	ProfileCompleted(ctx context.Context) (bool, error)
}

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	manager        *session.Manager
	status         statusSource
	cache          cachedSession
	authService    services.AuthService
	profileService services.ProfileService
	voteService    services.VoteService
	reader         *bufio.Reader
	out            io.Writer

	mu        sync.Mutex
	lastRoute Route
}

// NewApp opens the local database and wires the remote clients, the session
// manager and the flows.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := storage.New(kv.NewSQLiteRepository(db))
	hc := &http.Client{Timeout: c.RequestTimeout}

	idc := identity.New(c.IdentityBaseURL, c.APIKey,
		identity.WithHTTPClient(hc),
		identity.WithLocale(c.Locale),
		identity.WithLogger(logger))
	pc := profiles.New(c.ProfileStoreBaseURL, c.ProjectID, c.APIKey,
		profiles.WithHTTPClient(hc),
		profiles.WithCollection(c.Collection),
		profiles.WithLogger(logger))

	mgr := session.NewManager(store, pc, logger)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		manager:        mgr,
		status:         mgr,
		cache:          store,
		authService:    services.NewAuthService(idc, mgr, logger),
		profileService: services.NewProfileService(mgr, pc, store, logger),
		voteService:    services.NewVoteService(mgr, logger),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		lastRoute:      RouteLoading,
	}, nil
}

// Run reconciles the cached session, then serves the REPL until the user
// exits. A hint is printed whenever the route changes.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	unsubscribe := a.manager.Subscribe(a.onStatus)
	defer unsubscribe()

	a.manager.Initialize(ctx)
	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) onStatus(s models.AuthStatus) {
	r := RouteFor(s)

	a.mu.Lock()
	changed := r != a.lastRoute
	a.lastRoute = r
	a.mu.Unlock()

	if changed {
		a.println(routeHint(r))
	}
}

func (a *App) route() Route {
	return RouteFor(a.status.Status())
}

func (a *App) prompt() string {
	s := a.status.Status()
	if s.UserEmail != "" {
		return s.UserEmail + "@" + RouteFor(s).String()
	}
	return RouteFor(s).String()
}

func (a *App) println(args ...any) {
	if a.out == nil {
		return
	}
	fmt.Fprintln(a.out, args...)
}
