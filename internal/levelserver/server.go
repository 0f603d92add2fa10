// Package levelserver serves AI level generation over HTTP.
//
// POST /generate-level with {"prompt": "..."} answers
// {"success": true, "level": "<model text>"}. The model text is returned
// untouched; clients parse and normalize it themselves. GET /quick-level
// returns a procedural level as JSON. OPTIONS on any path answers the
// CORS preflight and every other request is a 404.
package levelserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/logging"
)

const (
	maxRequestBody  = 64 << 10
	shutdownTimeout = 5 * time.Second
)

// Generator produces raw level text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QuickSource produces procedural levels by tier name.
type QuickSource interface {
	SynthesizeQuick(tier string) level.Config
}

// Options configure a Server.
type Options struct {
	Generator   Generator
	Quick       QuickSource
	AllowOrigin string
	Logger      *log.Logger
}

// Server handles level generation requests.
type Server struct {
	gen         Generator
	quick       QuickSource
	allowOrigin string
	logger      *log.Logger
}

// New creates a server. Generator is required; Quick may be nil, in which
// case /quick-level is not served.
func New(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, errors.New("levelserver: generator is required")
	}
	if opts.AllowOrigin == "" {
		opts.AllowOrigin = "*"
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Server{
		gen:         opts.Generator,
		quick:       opts.Quick,
		allowOrigin: opts.AllowOrigin,
		logger:      opts.Logger,
	}, nil
}

// Handler returns the server's HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return chain(http.HandlerFunc(s.route), s.withRecover, s.withCORS, s.withAccessLog)
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPost && r.URL.Path == "/generate-level":
		s.handleGenerate(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/quick-level" && s.quick != nil:
		s.handleQuick(w, r)
	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	Level   string `json:"level,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.fail(w, fmt.Errorf("read body: %w", err))
		return
	}

	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.fail(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	s.logger.Info("generating level", "prompt", req.Prompt)
	text, err := s.gen.Generate(r.Context(), req.Prompt)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, generateResponse{Success: true, Level: text})
}

func (s *Server) handleQuick(w http.ResponseWriter, r *http.Request) {
	cfg := s.quick.SynthesizeQuick(r.URL.Query().Get("tier"))
	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("level generation failed", "error", err)
	s.writeJSON(w, http.StatusInternalServerError, generateResponse{Success: false, Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("cannot write response", "error", err)
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("level server listening", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("levelserver: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down level server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("levelserver: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// URL returns the generate endpoint for a listen address such as ":3002".
func URL(addr string) string {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return "http://" + host + "/generate-level"
}
