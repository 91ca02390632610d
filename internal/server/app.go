// Package server runs the local emulator of the identity and document
// services the E-Hima Vote client talks to. Accounts and documents live in
// memory and are lost on exit; a YAML seed can pre-populate them.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ehimavote/evote/internal/logging"
	"github.com/ehimavote/evote/internal/server/config"
	"github.com/ehimavote/evote/internal/server/documents"
	"github.com/ehimavote/evote/internal/server/httpserver"
	"github.com/ehimavote/evote/internal/server/users"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	userService     *users.Service
	documentService *documents.Service
	httpServer      *httpserver.HTTPServer
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if c.SecretKey == "" {
		return nil, fmt.Errorf("secret key must not be empty")
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("api key must not be empty")
	}

	us := users.NewService(users.NewMemoryRepository(), c)
	ds := documents.NewService(documents.NewMemoryRepository())
	hs := httpserver.NewHTTPServer(c.EndpointAddrHTTP, logger, us, ds, c.APIKey, c.ProjectID, c.SecretKey)

	app := &App{config: c, logger: logger, userService: us, documentService: ds, httpServer: hs}

	if c.SeedPath != "" {
		seed, err := LoadSeed(c.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("seed load error: %w", err)
		}
		if err := app.ApplySeed(context.Background(), seed); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Handler exposes the HTTP API without listening, for tests.
func (app *App) Handler() http.Handler {
	return app.httpServer.Handler()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or the process is signalled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting emulator...", "project", app.config.ProjectID)

	app.initSignalHandler(cancelFunc)

	return app.httpServer.Run(ctx)
}
