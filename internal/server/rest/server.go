package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/triviaquiz/internal/logging"
)

const defaultShutdownTimeout = 5 * time.Second

// Timeouts bound the HTTP server's connection handling.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// HTTPServer serves a handler until its context is cancelled.
type HTTPServer struct {
	address  string
	handler  http.Handler
	timeouts Timeouts
	logger   logging.Logger

	shutdownTimeout time.Duration
}

// NewHTTPServer constructs an HTTPServer listening on address.
func NewHTTPServer(address string, handler http.Handler, t Timeouts, l logging.Logger) *HTTPServer {
	return &HTTPServer{
		address:  address,
		handler:  handler,
		timeouts: t,
		logger:   l.With("module", "http_server"),

		shutdownTimeout: defaultShutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done, then shuts down gracefully. It
// returns only after in-flight requests have finished or the shutdown
// timeout has passed.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.timeouts.Read,
		WriteTimeout: s.timeouts.Write,
		IdleTimeout:  s.timeouts.Idle,
	}

	stopped := make(chan struct{})
	shutdownErr := make(chan error, 1)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			shutdownErr <- nil
			return
		}
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(stopped)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
