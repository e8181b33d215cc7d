// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

// Package web serves a read-only JSON view of the world.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/chott/chott/internal/engine"
	"github.com/chott/chott/internal/environment"
	"github.com/chott/chott/internal/world"
)

// Graph is the location graph the API reads from.
type Graph interface {
	world.Graph
	IDs() []world.LocationID
}

// ActorSource provides the latest population snapshot.
type ActorSource interface {
	Snapshot() *engine.Snapshot
}

// EnvironmentSource provides the environment at a location.
type EnvironmentSource interface {
	EnvironmentFor(ctx context.Context, id world.LocationID) (environment.Environment, error)
}

// RequestRecorder counts served requests.
type RequestRecorder interface {
	RecordRequest(route string, status int)
}

// Option configures a Server.
type Option func(*Server)

// WithNow sets the wall clock used by the clock endpoint.
func WithNow(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithRequestRecorder counts every request on rec.
func WithRequestRecorder(rec RequestRecorder) Option {
	return func(s *Server) {
		s.recorder = rec
	}
}

// Server is the read API. It never mutates the world.
type Server struct {
	addr     string
	graph    Graph
	actors   ActorSource
	env      EnvironmentSource
	now      func() time.Time
	recorder RequestRecorder

	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates a read API server listening on addr once started.
func NewServer(addr string, graph Graph, actors ActorSource, env EnvironmentSource, opts ...Option) *Server {
	s := &Server{
		addr:   addr,
		graph:  graph,
		actors: actors,
		env:    env,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/locations", s.handleLocations)
	mux.HandleFunc("GET /api/v1/locations/{id}", s.handleLocation)
	mux.HandleFunc("GET /api/v1/locations/{id}/exits/{name}", s.handleExit)
	mux.HandleFunc("GET /api/v1/actors", s.handleActors)
	mux.HandleFunc("GET /api/v1/clock", s.handleClock)
	return s.record(mux)
}

// Start begins serving. The returned channel receives any error from the
// HTTP server after it starts and is closed when the server stops.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("web server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("web server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("web server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_web_server").Wrap(err)
		}
	}
	slog.Info("web server stopped")
	return nil
}

// Addr returns the address the server is listening on, or "" if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// record counts each request by matched route pattern and status.
func (s *Server) record(next *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		if s.recorder == nil {
			return
		}
		_, route := next.Handler(r)
		if route == "" {
			route = "unmatched"
		}
		s.recorder.RecordRequest(route, sw.status)
	})
}
