// Package server serves starfields over HTTP.
//
// Routes:
//
//	GET /            HTML page with a fresh starfield
//	GET /stars/      same page, at the conventional /stars/ page path
//	GET /stars.svg   animated SVG
//	GET /stars.png   PNG frame
//	GET /api/stars   JSON snapshot (CORS enabled)
//	GET /healthz     liveness probe
//
// HEAD is answered on every GET route. Every starfield route accepts ?seed= and ?count=. Seeded responses are
// deterministic and cacheable; unseeded ones are marked no-store.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/matzehuels/starfield/pkg/config"
	"github.com/matzehuels/starfield/pkg/pipeline"
)

// Server is the starfield HTTP server.
type Server struct {
	cfg     *config.Config
	runner  *pipeline.Runner
	logger  *log.Logger
	limiter *RateLimiter
	handler http.Handler
}

// New builds the router. A nil runner renders without a cache.
func New(cfg *config.Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		logger:  logger.WithPrefix("server"),
		limiter: NewRateLimiter(cfg.Server.RateLimit, logger),
	}
	s.limiter.reject = s.writeError
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(s.limiter.Middleware)
	if s.cfg.Server.Compress {
		r.Use(Compress)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound(r.URL.Path))
	})

	r.Get("/", s.handlePage)
	r.Get("/stars", http.RedirectHandler("/stars/", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/stars/", s.handlePage)
	r.Get("/stars.svg", s.handleArtifact(pipeline.FormatSVG))
	r.Get("/stars.png", s.handleArtifact(pipeline.FormatPNG))
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: s.cfg.Server.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{HeaderRequestID, HeaderSeed},
		}).Handler)
		r.Get("/stars", s.handleArtifact(pipeline.FormatJSON))
	})

	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.limiter.Cleanup(cleanupCtx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
