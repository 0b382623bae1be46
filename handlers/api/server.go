package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lucasbecker/upload-ai/config"
	"github.com/lucasbecker/upload-ai/middleware"
	"github.com/lucasbecker/upload-ai/services/completion"
	"github.com/lucasbecker/upload-ai/services/prompt"
	"github.com/lucasbecker/upload-ai/services/video"
	"github.com/lucasbecker/upload-ai/validation"
)

type Server struct {
	video      *VideoHandler
	prompt     *PromptHandler
	completion *CompletionHandler
	config     *config.Config
	logger     *logrus.Logger
	server     *http.Server
	startTime  time.Time
}

type ServerOption func(*Server)

// NewServer creates the API server with the provided services and options.
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// WithServices sets up the handlers with the provided services.
func WithServices(
	videoSvc video.Service,
	promptSvc prompt.Service,
	completionSvc completion.Service,
) ServerOption {
	return func(s *Server) {
		validator := validation.NewValidator(s.config)
		s.video = NewVideoHandler(videoSvc, validator)
		s.prompt = NewPromptHandler(promptSvc)
		s.completion = NewCompletionHandler(completionSvc, validator)
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /videos", s.video.HandleUpload)
	mux.HandleFunc("POST /videos/{videoId}/transcription", s.video.HandleCreateTranscription)
	mux.HandleFunc("GET /prompts", s.prompt.HandleList)
	mux.HandleFunc("GET /prompts/{promptId}", s.prompt.HandleGet)
	mux.HandleFunc("POST /ai/completion", s.completion.HandleCreate)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.middleware(mux)
}

func (s *Server) middleware(handler http.Handler) http.Handler {
	var rateLimiter middleware.RateLimiter
	if s.config.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(
			s.config.RateLimit.RequestsPerMinute,
			s.config.RateLimit.BurstSize,
		)
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.CORS(s.config.CORS),
		middleware.Timeout(s.config.RequestTimeout),
	}

	if rateLimiter != nil {
		middlewares = append(middlewares, rateLimiter.Middleware)
	}

	return middleware.Chain(handler, middlewares...)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   s.config.Version,
		"uptime":    time.Since(s.startTime).String(),
	}

	if s.config.Debug {
		status["goroutines"] = runtime.NumGoroutine()
	}

	respondJSON(w, http.StatusOK, status)
}
