package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/systmms/dataseeder/internal/config"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         fmt.Sprintf(":%d", config.DefaultListenPort),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server runs the query API over HTTP.
type Server struct {
	config   ServerConfig
	handler  http.Handler
	server   *http.Server
	listener net.Listener
}

// NewServer creates a server for the given handler.
func NewServer(cfg ServerConfig, handler http.Handler) *Server {
	return &Server{
		config:  cfg,
		handler: handler,
	}
}

// Start binds the listen address and serves in the background.
// Errors from the serve loop other than a clean shutdown are sent on the
// returned channel.
func (s *Server) Start() (<-chan error, error) {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}
	s.listener = ln

	s.server = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	return errc, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.Addr
	}
	return s.listener.Addr().String()
}
