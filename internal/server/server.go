// Package server exposes the HTTP endpoint that triggers a documentation pass.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/readme-bot/internal/usecase"
)

// Dispatcher starts a pass without waiting for it.
type Dispatcher interface {
	Dispatch() error
}

// Response is the JSON acknowledgement returned by every endpoint.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Server wraps the HTTP listener and handlers of the trigger endpoint.
type Server struct {
	addr       string
	dispatcher Dispatcher
	logger     logrus.FieldLogger

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// New prepares a server that listens on addr.
func New(addr string, dispatcher Dispatcher, logger logrus.FieldLogger) *Server {
	return &Server{addr: addr, dispatcher: dispatcher, logger: logger}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/trigger", s.handleTrigger)
	return mux
}

// Start binds the TCP listener and begins serving HTTP traffic.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return errors.New("server already started")
	}
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("Serve error: %v", err)
		}
	}()
	s.logger.Infof("Listening on %s", listener.Addr().String())
	return nil
}

// Addr returns the bound address, empty before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting new connections and waits for in-flight requests.
// A background pass keeps running; callers wait on the dispatcher for it.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.listener = nil
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Status: "error", Message: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, Response{Status: "ok", Message: "ready"})
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, Response{Status: "error", Message: "method not allowed"})
		return
	}
	s.logger.Info("API endpoint /trigger hit. Starting job in background...")
	if err := s.dispatcher.Dispatch(); err != nil {
		if errors.Is(err, usecase.ErrPassInFlight) {
			writeJSON(w, http.StatusConflict, Response{Status: "busy", Message: "Documentation job already running."})
			return
		}
		s.logger.Errorf("Failed to start documentation job: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{Status: "error", Message: "Documentation job could not be started."})
		return
	}
	writeJSON(w, http.StatusAccepted, Response{Status: "success", Message: "Documentation job started."})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
