// Package server serves the intake form over HTTP. Each browser gets an
// in-memory session holding its answers; submitting the form validates the
// answers and streams the generated summary back as a download.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/pkg/document"
	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/renderers/vanilla"
	"github.com/goliatone/go-intake/pkg/session"
)

// SessionCookie names the cookie carrying the session identity.
const SessionCookie = "intake_session"

// Generator turns a completed record into a downloadable artifact.
// *orchestrator.Orchestrator satisfies it.
type Generator interface {
	Submit(ctx context.Context, rec record.IntakeRecord) (document.Artifact, error)
}

// Option customises a Server.
type Option func(*Server)

// WithLogger attaches the access and lifecycle logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGenerator replaces the orchestrator built from the configuration.
func WithGenerator(generator Generator) Option {
	return func(s *Server) {
		s.generator = generator
	}
}

// WithSessionStore replaces the session store built from the configuration.
func WithSessionStore(store *session.Store) Option {
	return func(s *Server) {
		s.sessions = store
	}
}

// WithFormRenderer replaces the vanilla HTML renderer.
func WithFormRenderer(renderer render.FormRenderer) Option {
	return func(s *Server) {
		s.page = renderer
	}
}

// WithForm replaces the embedded form definition.
func WithForm(form model.FormModel) Option {
	return func(s *Server) {
		s.form = &form
	}
}

// WithAssets replaces the static files mounted under /assets/.
func WithAssets(assets fs.FS) Option {
	return func(s *Server) {
		s.assets = assets
	}
}

// Server wires the form renderer, the session store and the generator behind
// a chi router.
type Server struct {
	cfg       config.Config
	form      *model.FormModel
	page      render.FormRenderer
	generator Generator
	sessions  *session.Store
	assets    fs.FS
	logger    zerolog.Logger
	router    chi.Router
}

// New builds a Server from cfg. Collaborators not supplied through options are
// constructed from the configuration.
func New(cfg config.Config, options ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{cfg: cfg, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.form == nil {
		def, err := form.Default()
		if err != nil {
			return nil, fmt.Errorf("server: load form: %w", err)
		}
		s.form = &def
	}
	if s.page == nil {
		page, err := vanilla.New(vanilla.WithTemplatesDir(cfg.Server.TemplatesDir))
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.page = page
	}
	if s.generator == nil {
		s.generator = orchestrator.New(
			orchestrator.WithDocumentOptions(cfg.DocumentOptions()...),
			orchestrator.WithTransformers(orchestrator.TrimSpace),
			orchestrator.WithLogger(s.logger),
		)
	}
	if s.sessions == nil {
		s.sessions = session.NewStore(
			session.WithTTL(cfg.Server.SessionTTL),
			session.WithLogger(s.logger),
		)
	}
	if s.assets == nil {
		s.assets = vanilla.AssetsFS()
	}

	s.router = s.routes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions exposes the session store.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "X-Request-ID"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Get("/", s.handleShow)
	r.Post("/", s.handlePost)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(s.assets)))
	return r
}

// Run serves on the configured address until ctx is cancelled, then drains
// in-flight requests within the shutdown grace period. The session sweeper
// runs for the lifetime of the server.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go func() {
		if err := s.sessions.Run(sweepCtx, s.cfg.Server.SweepInterval); err != nil {
			s.logger.Error().Err(err).Msg("session sweeper stopped")
		}
	}()

	s.logger.Info().Str("addr", s.cfg.Server.Addr).Msg("listening")

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownGrace)
	defer cancel()

	s.logger.Info().Dur("grace", s.cfg.Server.ShutdownGrace).Msg("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
