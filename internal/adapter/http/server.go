package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/bnema/framer/internal/adapter/http/middleware"
	"github.com/bnema/framer/internal/adapter/http/ratelimit"
	"github.com/bnema/framer/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type ServerConfig struct {
	OutputDir      string
	AllowedOrigins []string
	// SubmitLimiter throttles POST /process per client. Nil disables it.
	SubmitLimiter *ratelimit.Limiter
}

type Dependencies struct {
	Jobs     JobService
	Events   *service.EventBus
	Store    Pinger
	FFmpeg   ToolChecker
	Workload LoadReporter
}

type Server struct {
	router     chi.Router
	handler    http.Handler
	handlers   *Handlers
	sseHandler *SSEHandler
	deps       Dependencies
	cfg        ServerConfig
}

func NewServer(deps Dependencies, cfg ServerConfig) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		handlers:   NewHandlers(deps.Jobs, cfg.OutputDir),
		sseHandler: NewSSEHandler(deps.Events, deps.Jobs),
		deps:       deps,
		cfg:        cfg,
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.RequestLogger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(middleware.SecurityHeaders)
	s.registerRoutes()

	s.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After"},
		MaxAge:         300,
	}).Handler(s.router)

	return s
}

func (s *Server) registerRoutes() {
	if s.cfg.SubmitLimiter != nil {
		s.router.With(limitSubmissions(s.cfg.SubmitLimiter)).Post("/process", s.handlers.Process())
	} else {
		s.router.Post("/process", s.handlers.Process())
	}

	s.router.Get("/process/{id}/status", s.handlers.Status())
	s.router.Get("/process/{id}/events", s.sseHandler.Events())
	s.router.Delete("/process/{id}", s.handlers.Cancel())
	s.router.Get("/jobs", s.handlers.List())
	s.router.Get("/download/{filename}", s.handlers.Download())
	s.router.Get("/health", Health(s.deps.Store, s.deps.FFmpeg, s.deps.Workload))

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func limitSubmissions(l *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, wait := l.Allow(clientID(r))
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "too many submissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientID is the remote host. RealIP has already applied proxy headers.
func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
