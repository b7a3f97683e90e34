// Package server exposes the removal and vectorization cores over HTTP.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"

	"github.com/ThatsRight-ItsTJ/convec-api/cache"
)

// Config holds server settings. Zero values get sensible defaults in New.
type Config struct {
	// MaxUpload caps the decoded request body size in bytes.
	MaxUpload int64
	// CacheTTL bounds the lifetime of memoized vectorization output.
	CacheTTL time.Duration
	// Parallel is the worker count for batch removal.
	Parallel int
	Logger   *slog.Logger
}

// Server wires the HTTP routes to the pixel-processing cores.
type Server struct {
	cfg    Config
	router *gin.Engine
	svg    *cache.Cache
	log    *slog.Logger
}

// New builds a server with its routes registered. Call Run to serve.
func New(cfg Config) *Server {
	if cfg.MaxUpload <= 0 {
		cfg.MaxUpload = 16 << 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg: cfg,
		svg: cache.New(cfg.CacheTTL),
		log: cfg.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestID())
	router.MaxMultipartMemory = cfg.MaxUpload

	api := router.Group("/api")
	api.POST("/removebg", s.handleRemoveBG)
	api.POST("/removebg/batch", s.handleRemoveBGBatch)
	api.POST("/vectorize", s.handleVectorize)
	api.POST("/convert", s.handleConvert)
	api.POST("/text", s.handleText)
	api.GET("/text/measure", s.handleTextMeasure)
	router.GET("/healthz", s.handleHealth)

	s.router = router
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the cache sweeper and serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	if err := s.svg.Start(); err != nil {
		return err
	}
	defer s.svg.Stop()
	return s.router.Run(addr)
}

// requestID tags every request with a ksuid, echoes it in X-Request-ID and
// logs the request outcome.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ksuid.New().String()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		s.log.Info("request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
