// Package api serves passage lookups, citation resolution, annotation and
// study notes over HTTP and websockets.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/tamilbible/core/books"
	"github.com/FocuswithJustin/tamilbible/core/notes"
	"github.com/FocuswithJustin/tamilbible/internal/config"
	"github.com/FocuswithJustin/tamilbible/internal/locator"
	"github.com/FocuswithJustin/tamilbible/internal/logging"
	"github.com/FocuswithJustin/tamilbible/internal/server"
)

// Deps are the services the handlers read from.
type Deps struct {
	Service  *locator.Service
	Registry *books.Registry
	Notes    *notes.Index // nil serves an empty note list

	// ArticlesDir and BooksDir feed the precache manifest.
	ArticlesDir string
	BooksDir    string

	Version string
}

// Server is the HTTP API.
type Server struct {
	cfg      config.ServerConfig
	deps     Deps
	hub      *Hub
	limiter  *RateLimiter
	upgrader websocket.Upgrader
	started  time.Time
	baseCtx  context.Context
}

// New creates a server. Call Start, or Run, before accepting websocket
// clients.
func New(cfg config.ServerConfig, deps Deps) *Server {
	s := &Server{
		cfg:     cfg,
		deps:    deps,
		started: time.Now(),
		baseCtx: context.Background(),
	}
	if cfg.RateLimitRequests > 0 {
		s.limiter = NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimitRequests,
			BurstSize:         cfg.RateLimitBurst,
		})
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.CORS{AllowedOrigins: cfg.AllowedOrigins}.CheckOrigin,
	}
	return s
}

// Start launches the websocket hub and the rate limiter sweeper. Both stop
// when ctx is done.
func (s *Server) Start(ctx context.Context) {
	s.baseCtx = ctx
	s.hub = NewHub()
	go s.hub.Run(ctx)
	if s.limiter != nil {
		go s.limiter.Run(ctx)
	}
}

// Routes registers every endpoint.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/bible", s.handleBible)
	mux.HandleFunc("/api/resolve", s.handleResolve)
	mux.HandleFunc("/api/annotate", s.handleAnnotate)
	mux.HandleFunc("/api/notes", s.handleNotes)
	mux.HandleFunc("/api/books", s.handleBooks)
	mux.HandleFunc("/api/pwa-precache", s.handlePrecache)
	mux.HandleFunc("/ws", s.handleWebSocket)

	return mux
}

// Handler wraps the routes in the middleware chain: security headers,
// rate limiting, CORS, then request ids and access logging outermost.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = server.SecurityHeaders(server.APIPolicy, s.Routes())

	if s.limiter != nil {
		handler = s.limiter.Middleware(handler)
	}

	handler = server.CORS{AllowedOrigins: s.cfg.AllowedOrigins}.Wrap(handler)

	return logging.CombinedMiddleware(handler)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.Start(ctx)
	s.logStartup()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if s.cfg.TLS.Enabled() {
			errCh <- srv.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down server", "timeout", s.cfg.ShutdownTimeout.String())
	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logStartup() {
	protocol := "http"
	wsProtocol := "ws"
	if s.cfg.TLS.Enabled() {
		protocol = "https"
		wsProtocol = "wss"
		logging.Info("TLS enabled", "cert_file", absPath(s.cfg.TLS.CertFile))
	} else {
		logging.Warn("TLS disabled - using plain HTTP",
			"recommendation", "consider using TLS or reverse proxy for production")
	}

	if len(s.cfg.AllowedOrigins) > 0 {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "restricted",
			"allowed_origins_count", len(s.cfg.AllowedOrigins))
	} else {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "permissive",
			"note", "allowing all origins (*) - consider restricting for production")
	}
	if s.limiter != nil {
		logging.Info("rate limiting enabled",
			"requests_per_minute", s.limiter.config.RequestsPerMinute,
			"burst_size", s.limiter.config.BurstSize)
	}

	logging.ServerStartup("rest_api", protocol, s.cfg.Port,
		"websocket_protocol", wsProtocol,
		"default_source", s.deps.Service.DefaultSource(),
		"sources", s.deps.Service.Sources(),
		"books_dir", absPath(s.deps.BooksDir),
		"articles_dir", absPath(s.deps.ArticlesDir))
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
