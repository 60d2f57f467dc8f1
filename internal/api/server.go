// Package api is the Engine Façade: the gin HTTP surface exposing
// cognitive-record and task CRUD, on-demand retention simulation,
// utterance generation, and health, backed by the Cognitive Record
// Store and the Degradation Monitor pool.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madeengine/memoryd/internal/linguistic"
	"github.com/madeengine/memoryd/internal/monitor"
	"github.com/madeengine/memoryd/internal/store"
)

// Server is the HTTP API server for the cognitive degradation engine.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server

	store      *store.Client
	pool       *monitor.Pool
	dispatcher *linguistic.Dispatcher
}

// NewServer wires the façade's handlers to its backing store, monitor
// pool, and linguistic dispatcher, and builds the gin router.
func NewServer(st *store.Client, pool *monitor.Pool, dispatcher *linguistic.Dispatcher) *Server {
	s := &Server{store: st, pool: pool, dispatcher: dispatcher}
	s.router = s.newRouter()
	return s
}

// Router returns the underlying gin engine, primarily so tests can drive
// it directly via httptest without a listening socket.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), securityHeaders(), bodyLimit())

	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/cognitive-records", s.createRecordHandler)
		v1.GET("/cognitive-records", s.listRecordsHandler)
		v1.GET("/cognitive-records/:report_id", s.getRecordHandler)
		v1.DELETE("/cognitive-records/:report_id", s.deleteRecordHandler)
		v1.POST("/cognitive-records/:report_id/simulate", s.simulateRetentionHandler)
		v1.POST("/cognitive-records/:report_id/utterance", s.generateUtteranceHandler)

		v1.POST("/tasks", s.createTaskHandler)
		v1.GET("/tasks", s.listTasksHandler)
	}

	return r
}

// Run starts the HTTP server on addr and blocks until it stops or ctx
// is cancelled, in which case it shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("engine façade listening", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("engine façade shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
