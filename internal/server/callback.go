package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtabs/internal/shared"
	"golang.org/x/oauth2"
)

// CallbackServer serves a single [OAuthHandler] on a local address for the duration of a sign-in.
type CallbackServer struct {
	handler *OAuthHandler
	server  *http.Server
	logger  *log.Logger
	errs    chan error
	addr    string
}

// NewCallbackServer wires handler into a [BasicRouter] with request logging.
func NewCallbackServer(addr string, handler *OAuthHandler, logger *log.Logger) *CallbackServer {
	router := NewBasicRouter()
	router.Use(Recoverer(logger), RequestLogger(logger))
	router.Handler(handler)

	return &CallbackServer{
		handler: handler,
		server:  &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second},
		logger:  logger,
		errs:    make(chan error, 1),
		addr:    addr,
	}
}

// Start binds the listener and serves in the background.
//
// Binding happens before Start returns, so the browser can be opened immediately after.
func (s *CallbackServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.addr = ln.Addr().String()

	go func() {
		s.logger.Infof("starting OAuth callback server at %v", s.addr)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- err
		}
	}()
	return nil
}

// Addr returns the bound address, which differs from the configured one when port 0 was requested.
func (s *CallbackServer) Addr() string {
	return s.addr
}

// Wait blocks until the callback delivers a result, the server fails, ctx ends or timeout elapses.
// The server is shut down before Wait returns.
func (s *CallbackServer) Wait(ctx context.Context, timeout time.Duration) (*oauth2.Token, error) {
	defer s.shutdown()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var result OAuthResult
	select {
	case result = <-s.handler.Result():
	case err := <-s.errs:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timer.C:
		return nil, fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAuthFailed, result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}
	return result.Token, nil
}

func (s *CallbackServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn("error shutting down server", "error", err)
	}
}
