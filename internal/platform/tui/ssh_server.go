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

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the arena SSH server.
type SSHServerConfig struct {
	Address string // listen address, e.g. ":23234"

	// HostKeyPath is created on first start when missing. Empty means
	// ~/.rocket-arcade/host_key.
	HostKeyPath string

	DBPath      string // shared runs database
	IdleTimeout time.Duration
	TickRate    int

	// Logger receives session events. Nil means a stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the settings used by `rocket serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.rocket-arcade/runs.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves the arena over SSH, one Bubble Tea program per session.
// All sessions share one run store.
type SSHServer struct {
	cfg    SSHServerConfig
	srv    *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

func defaultHostKeyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: home directory: %w", err)
	}
	return filepath.Join(home, ".rocket-arcade", "host_key"), nil
}

// NewSSHServer prepares the server without listening yet. A runs database
// that cannot be opened is logged and sessions play without recording.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	s := &SSHServer{cfg: cfg, logger: cfg.Logger}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rocket-ssh",
		})
	}

	keyPath := cfg.HostKeyPath
	if keyPath == "" {
		var err error
		if keyPath, err = defaultHostKeyPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: host key directory: %w", err)
	}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: ssh server: %w", err)
	}
	s.srv = srv

	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		s.logger.Warn("runs will not be recorded", "db", cfg.DBPath, "error", err)
		s.store = nil
	}
	return s, nil
}

// newSession builds the Bubble Tea program for one connection. Sessions
// without a PTY are refused.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("refusing session without a PTY", "user", sess.User())
		return nil, nil
	}

	model := NewSessionModel(s.store, core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
	}, sess.User())
	model.logger = s.logger

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session started", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", remote,
			"duration", time.Since(start).Round(time.Second))
	}
}

// Serve accepts connections until ctx is done or the listener fails, then
// shuts down and closes the run store.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		err := s.srv.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
	case err = <-errCh:
		s.logger.Error("server stopped", "error", err)
	}

	if shutErr := s.shutdown(); err == nil {
		err = shutErr
	}
	return err
}

func (s *SSHServer) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
