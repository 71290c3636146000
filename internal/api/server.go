// ABOUTME: HTTP server exposing the coach over a small JSON API
// ABOUTME: gin router with recovery, request ids, request logging and allow-all CORS
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harper/daily-coach/internal/core"
	"github.com/harper/daily-coach/internal/llm"
	"github.com/harper/daily-coach/internal/storage"
)

const (
	// DebugSampleChars bounds the context sample returned by /debug
	DebugSampleChars = 500
	// HealthTimeout bounds the completion-service probe in /health
	HealthTimeout = 3 * time.Second
	// MinWriteTimeout is the write deadline floor for a response
	MinWriteTimeout = 60 * time.Second
	// writeMargin is added to the completion timeout so the fallback reply
	// still fits inside the write deadline
	writeMargin = 30 * time.Second
)

// Options configures the server
type Options struct {
	Addr    string
	Version string
	// LLMTimeout is the coach's completion timeout; the write deadline
	// is stretched past it
	LLMTimeout time.Duration
}

// Server is the coach HTTP API
type Server struct {
	coach     *core.Coach
	store     storage.Store
	completer llm.Completer
	opts      Options
	logger    *log.Logger
	router    *gin.Engine
	server    *http.Server
	startedAt time.Time
	now       func() time.Time
}

// NewServer creates a server. completer may be nil; /health then reports
// the completion service as not configured.
func NewServer(coach *core.Coach, store storage.Store, completer llm.Completer, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		coach:     coach,
		store:     store,
		completer: completer,
		opts:      opts,
		logger:    logger.WithPrefix("api"),
		router:    gin.New(),
		startedAt: time.Now(),
		now:       time.Now,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.banner)
	s.router.GET("/health", s.healthCheck)
	s.router.POST("/chat", s.chat)

	routines := s.router.Group("/routines")
	{
		routines.GET("", s.listRoutines)
		routines.POST("/:id/deactivate", s.deactivateRoutine)
		routines.POST("/purge", s.purgeRoutines)
	}
	s.router.POST("/clean-duplicates", s.cleanDuplicates)

	tasks := s.router.Group("/tasks")
	{
		tasks.GET("", s.listTasks)
		tasks.POST("/:id/done", s.completeTask)
	}

	s.router.GET("/activities", s.listActivities)
	s.router.GET("/debug", s.debug)
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(s.opts.LLMTimeout),
		IdleTimeout:  60 * time.Second,
	}
}

func writeTimeout(llmTimeout time.Duration) time.Duration {
	return max(MinWriteTimeout, llmTimeout+writeMargin)
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.server = s.httpServer()

	s.logger.Info("starting API server", "addr", s.opts.Addr, "mode", gin.Mode())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
