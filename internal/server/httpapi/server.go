// Package httpapi exposes the records service over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fintrack/internal/logging"
	"fintrack/internal/server/services"
)

// Server owns the listener and the route table.
type Server struct {
	addr    string
	log     logging.Logger
	users   *services.UserService
	records *services.RecordService
}

func NewServer(addr string, log logging.Logger, users *services.UserService, records *services.RecordService) *Server {
	return &Server{
		addr:    addr,
		log:     log.With("component", "http"),
		users:   users,
		records: records,
	}
}

// Handler builds the route table. Split from Run so tests can mount it on
// httptest.Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.Handle("GET /financial-records/getAllByUserId/{userId}", s.authenticated(s.handleList))
	mux.Handle("POST /financial-records", s.authenticated(s.handleCreate))
	mux.Handle("PUT /financial-records/{id}", s.authenticated(s.handleUpdate))
	mux.Handle("DELETE /financial-records/{id}", s.authenticated(s.handleDelete))

	return s.requestLogger(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
