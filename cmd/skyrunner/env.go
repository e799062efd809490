package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/skyrunner/internal/assets"
	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/leaderboard"
	"github.com/vovakirdan/skyrunner/internal/logging"
	"github.com/vovakirdan/skyrunner/internal/storage"
)

// env is what every command shares: config, logger and the leaderboard.
type env struct {
	cfg     config.RunnerConfig
	logger  *log.Logger
	board   leaderboard.Leaderboard
	store   *storage.Store // nil when the board is remote or unavailable
	closers []io.Closer
}

// setup loads config, opens the log and picks the leaderboard backend.
// Interactive commands log to a file and keep playing without a board;
// the others log to stderr and fail when the board cannot be opened.
func setup(interactive bool) (*env, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagFPS > 0 {
		cfg.TUI.FPS = flagFPS
	}
	if flagBoardURL != "" {
		cfg.Leaderboard.URL = flagBoardURL
	}
	if flagToken != "" {
		cfg.Leaderboard.Token = flagToken
	}

	logFile := flagLogFile
	if logFile == "" && interactive {
		logFile = config.DataPath("skyrunner.log")
	}
	logger, logCloser, err := logging.New(logging.Options{Level: flagLogLevel, File: logFile})
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	if cfg.Leaderboard.URL != "" {
		e.board = leaderboard.NewClient(cfg.Leaderboard.URL, cfg.Leaderboard.Token)
		logger.Info("using remote leaderboard", "url", cfg.Leaderboard.URL)
		return e, nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		if !interactive {
			e.Close()
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without a leaderboard", "err", err)
		// Continue without storage - the game still works
		e.board = leaderboard.Disabled{}
		return e, nil
	}
	e.store = store
	e.board = store
	e.closers = append(e.closers, store)
	return e, nil
}

// Close releases the store and the log file, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

func (e *env) timeout() time.Duration {
	if e.cfg.Leaderboard.TimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(e.cfg.Leaderboard.TimeoutMS) * time.Millisecond
}

// async wraps the board for a frontend.
func (e *env) async() *leaderboard.Async {
	return leaderboard.NewAsync(e.board, e.timeout(), e.logger)
}

// drain waits for a frontend's pending board calls, so a score submitted
// just before quitting still lands before the store closes.
func (e *env) drain(a *leaderboard.Async) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout())
	defer cancel()
	if err := a.Wait(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: last score may not have been saved")
	}
}

// best returns the local high score, zero for remote or missing boards.
// Remote boards report theirs through the first fetch.
func (e *env) best() int {
	if e.store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout())
	defer cancel()
	high, err := e.store.HighScore(ctx)
	if err != nil {
		e.logger.Warn("cannot read high score", "err", err)
		return 0
	}
	return high
}

func (e *env) images() *assets.Loader {
	return assets.NewLoader(e.cfg.Assets.Enabled, time.Duration(e.cfg.Assets.TimeoutMS)*time.Millisecond, e.logger)
}

// terminalSize returns the terminal size, or 80x24 when stdout is not one.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
