package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pathlight-lab/pathlight/pkg/usecase"
	"github.com/pathlight-lab/pathlight/pkg/utils/logging"
)

// Server exposes the assist engine over HTTP for the browser client
type Server struct {
	router       *chi.Mux
	uc           *usecase.UseCases
	systemPrompt string
	sessions     *sessionRegistry
}

// Options configures the server
type Options func(*Server)

// WithSystemPrompt overrides the system prompt seeding new sessions
func WithSystemPrompt(prompt string) Options {
	return func(s *Server) {
		s.systemPrompt = prompt
	}
}

// New creates the HTTP server over the engine use cases
func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		uc:       uc,
		sessions: newSessionRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", s.handleChat)
		r.Post("/reset", s.handleReset)
	})

	return s, nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// accessLogger logs all HTTP requests with status and duration
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
