package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/skyrunner/internal/assets"
	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/leaderboard"
	"github.com/vovakirdan/skyrunner/internal/logging"
)

// errNoClipboard is returned to SSH players: the server's clipboard is not
// theirs.
var errNoClipboard = errors.New("tui: clipboard is not available over ssh")

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.skyrunner/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Runner config.RunnerConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runner:      config.DefaultRunnerConfig(),
	}
}

// SSHServer serves the full menu flow to every SSH session. All sessions
// share one leaderboard; each gets its own result channel.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	board  leaderboard.Leaderboard
	images *assets.Loader
	logger *log.Logger

	mu       sync.Mutex
	sessions map[ssh.Session]*leaderboard.Async
}

// NewSSHServer creates a new SSH server with the given configuration.
// board may be nil to play without a leaderboard.
func NewSSHServer(cfg SSHServerConfig, board leaderboard.Leaderboard, logger *log.Logger) (*SSHServer, error) {
	logger = logging.OrDiscard(logger)
	if board == nil {
		board = leaderboard.Disabled{}
	}

	timeout := time.Duration(cfg.Runner.Assets.TimeoutMS) * time.Millisecond
	srv := &SSHServer{
		config:   cfg,
		board:    board,
		images:   assets.NewLoader(cfg.Runner.Assets.Enabled, timeout, logger),
		logger:   logger,
		sessions: make(map[ssh.Session]*leaderboard.Async),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".skyrunner", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
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
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates an app for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	logger := s.logger.With("user", sess.User())

	model := NewApp(Options{
		Config:   s.config.Runner,
		Board:    s.sessionBoard(sess, logger),
		Images:   s.images,
		Logger:   logger,
		Renderer: bubbletea.MakeRenderer(sess),
		Name:     playerName(sess.User()),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Copy:     func(string) error { return errNoClipboard },
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func (s *SSHServer) boardTimeout() time.Duration {
	if s.config.Runner.Leaderboard.TimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.config.Runner.Leaderboard.TimeoutMS) * time.Millisecond
}

// sessionBoard gives sess its own result channel over the shared board.
func (s *SSHServer) sessionBoard(sess ssh.Session, logger *log.Logger) *leaderboard.Async {
	board := leaderboard.NewAsync(s.board, s.boardTimeout(), logger)
	s.mu.Lock()
	s.sessions[sess] = board
	s.mu.Unlock()
	return board
}

// drainSession waits for the session's pending board calls and forgets it.
func (s *SSHServer) drainSession(sess ssh.Session) {
	s.mu.Lock()
	board, ok := s.sessions[sess]
	delete(s.sessions, sess)
	s.mu.Unlock()
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.boardTimeout())
	defer cancel()
	board.Wait(ctx)
}

// drainAll drains whatever sessions are still open.
func (s *SSHServer) drainAll(ctx context.Context) {
	s.mu.Lock()
	boards := make([]*leaderboard.Async, 0, len(s.sessions))
	for sess, board := range s.sessions {
		boards = append(boards, board)
		delete(s.sessions, sess)
	}
	s.mu.Unlock()
	for _, board := range boards {
		board.Wait(ctx)
	}
}

// playerName prefills the SSH user, cut to the board's name limit.
func playerName(user string) string {
	if utf8.RuneCountInString(user) <= leaderboard.MaxNameLength {
		return user
	}
	return string([]rune(user)[:leaderboard.MaxNameLength])
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.drainSession(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		return err
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.drainAll(ctx)
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
