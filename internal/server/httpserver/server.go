// Package httpserver provides the HTTP/WebSocket server for kkokko.
//
// It uses the Go standard library net/http for implementation,
// exposing the matching API, the chat relay, and operational endpoints.
package httpserver

import (
	"context"
	"net/http"

	"github.com/MONGU38/kkokko-project/internal/server/config"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server with timeouts from the configuration.
func New(cfg config.HTTPConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler: handler,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
