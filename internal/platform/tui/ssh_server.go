package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/courier-levels/internal/config"
	"github.com/vovakirdan/courier-levels/internal/logging"
	"github.com/vovakirdan/courier-levels/internal/storage"
	"github.com/vovakirdan/courier-levels/internal/synth"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.levelgen/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHConfigFrom converts the ssh section of the levelgen config.
func SSHConfigFrom(c config.SSHConfig) SSHServerConfig {
	cfg := DefaultSSHServerConfig()
	if c.Address != "" {
		cfg.Address = c.Address
	}
	if c.IdleTimeout > 0 {
		cfg.IdleTimeout = c.IdleTimeout
	}
	cfg.HostKeyPath = config.ExpandHome(c.HostKeyPath)
	return cfg
}

// ServiceFactory builds the synthesis service for one session. The observer
// must receive the service's events so the session's studio can follow them.
type ServiceFactory func(observer synth.Observer) *synth.Service

// SSHServer wraps a Wish SSH server that hands every session its own studio.
type SSHServer struct {
	config     SSHServerConfig
	server     *ssh.Server
	newService ServiceFactory
	store      *storage.Store
	logger     *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// sessions run without history. The caller keeps ownership of store.
func NewSSHServer(cfg SSHServerConfig, newService ServiceFactory, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if newService == nil {
		return nil, errors.New("tui: a service factory is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	srv := &SSHServer{
		config:     cfg,
		newService: newService,
		store:      store,
		logger:     logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".levelgen", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a studio for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := s.newSessionModel(sshSession.Context(), sshSession.User(), pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// newSessionModel wires a fresh service to a studio whose lifetime is ctx.
func (s *SSHServer) newSessionModel(ctx context.Context, user string, width, height int) StudioModel {
	events := NewChannelObserver(16)
	svc := s.newService(synth.Observers{
		events,
		synth.LogObserver{Logger: s.logger.With("user", user)},
	})

	go func() {
		<-ctx.Done()
		events.Close()
	}()

	return NewStudioModel(ctx, StudioOptions{
		Service: svc,
		Events:  events,
		Store:   s.store,
		Width:   width,
		Height:  height,
	})
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
