// Package httpserver exposes the emulator over HTTP with the same paths,
// payloads and error bodies as the hosted identity and document services.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ehimavote/evote/internal/logging"
	"github.com/ehimavote/evote/internal/server/documents"
	"github.com/ehimavote/evote/internal/server/users"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type HTTPServer struct {
	address   string
	apiKey    string
	projectID string
	users     *users.Service
	documents *documents.Service
	logger    logging.Logger
	jwtSecret []byte
	router    chi.Router
}

func NewHTTPServer(a string, l logging.Logger, us *users.Service, ds *documents.Service, apiKey, projectID, secretKey string) *HTTPServer {
	s := &HTTPServer{
		address:   a,
		apiKey:    apiKey,
		projectID: projectID,
		users:     us,
		documents: ds,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
	}
	s.router = s.routes()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(s.apiKeyMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Requested entity was not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed.")
	})

	r.Post("/v1/{method}", s.Accounts)

	r.Route("/v1/projects/{project}/databases/{database}/documents/{collection}/{docID}", func(r chi.Router) {
		r.Use(s.accessTokenMiddleware)
		r.Get("/", s.GetDocument)
		r.Patch("/", s.PatchDocument)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
