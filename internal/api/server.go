// Package api implements the HTTP surface over the discovery facade.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orchestrarfp/gotender/internal/config"
	"github.com/orchestrarfp/gotender/internal/logger"
)

// Handlers holds the dependencies the HTTP handlers need.
type Handlers struct {
	service   TenderService
	catalog   []string
	basePrice float64
	log       logger.Interface
}

// NewHandlers creates the handler set.
func NewHandlers(service TenderService, catalog []string, basePrice float64, log logger.Interface) *Handlers {
	return &Handlers{
		service:   service,
		catalog:   catalog,
		basePrice: basePrice,
		log:       log,
	}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/tenders", h.GetTenders)
		v1.POST("/refresh", h.Refresh)
		v1.POST("/match", h.Match)
	}

	return router
}

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer *http.Server
	log        logger.Interface
}

// NewServer creates the API server from config.
func NewServer(cfg config.Server, h *Handlers, log logger.Interface) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      NewRouter(h),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log,
	}
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.log.Info("API server starting", "address", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("API server stopping")
	return s.httpServer.Shutdown(ctx)
}
