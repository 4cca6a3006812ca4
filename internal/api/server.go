// Package api exposes a read-only HTTP status endpoint for the daemon.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trafficmon/internal/monitor"
	"trafficmon/internal/store"
)

// shutdownTimeout bounds how long an in-flight request may delay exit.
const shutdownTimeout = 5 * time.Second

// Server serves the monitor's current state over HTTP. It only ever reads
// from the store, so the daemon remains the store's single writer.
type Server struct {
	store  store.Reader
	iface  string
	runID  string
	engine *gin.Engine
}

// statusResponse is the JSON body of GET /api/status.
type statusResponse struct {
	RunID string `json:"run_id"`
	monitor.Snapshot
}

// New creates a status server reading from the given store.
func New(st store.Reader, iface, runID string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		store:  st,
		iface:  iface,
		runID:  runID,
		engine: engine,
	}

	engine.GET("/api/status", s.handleStatus)
	engine.GET("/healthz", s.handleHealth)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("Status API listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down status API: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status API failed: %w", err)
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	snap, err := monitor.LoadSnapshot(s.store, s.iface)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		RunID:    s.runID,
		Snapshot: snap,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
