package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/leaderboard"
	"github.com/vovakirdan/skyrunner/internal/logging"
	"github.com/vovakirdan/skyrunner/internal/registry"
)

// Phase is where a session is in its run lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseTerminal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Errors returned by Start.
var (
	ErrEmptyName     = errors.New("runner: player name is empty")
	ErrNameTooLong   = fmt.Errorf("runner: player name is longer than %d characters", leaderboard.MaxNameLength)
	ErrRunInProgress = errors.New("runner: a run is already in progress")
)

// ValidateName trims name and checks it can go on the board.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > leaderboard.MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

// Session drives runs for one player: Idle, Running (optionally Paused),
// then Terminal. A finished run is submitted to the board without waiting.
type Session struct {
	cfg    config.RunnerConfig
	board  *leaderboard.Async
	logger *log.Logger

	phase Phase
	name  string
	game  *Game
	last  core.StepResult
}

// NewSession creates an idle session. board may be nil.
func NewSession(cfg config.RunnerConfig, board *leaderboard.Async, logger *log.Logger) *Session {
	logger = logging.OrDiscard(logger)
	if board == nil {
		board = leaderboard.NewAsync(leaderboard.Disabled{}, 0, logger)
	}
	return &Session{cfg: cfg, board: board, logger: logger}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Name returns the player name of the current or last run.
func (s *Session) Name() string { return s.name }

// Game returns the current run, or nil when idle.
func (s *Session) Game() *Game { return s.game }

// Board returns the asynchronous board the session submits to.
func (s *Session) Board() *leaderboard.Async { return s.board }

// Last returns the result of the most recent tick.
func (s *Session) Last() core.StepResult { return s.last }

// Config returns the session's runner configuration.
func (s *Session) Config() config.RunnerConfig { return s.cfg }

// Start validates name and begins a fresh run on themeID.
// Nothing changes when it returns an error.
func (s *Session) Start(name, themeID string, seed int64) error {
	if s.phase == PhaseRunning || s.phase == PhasePaused {
		return ErrRunInProgress
	}
	name, err := ValidateName(name)
	if err != nil {
		return err
	}
	theme, err := registry.Create(themeID)
	if err != nil {
		return err
	}

	s.name = name
	s.game = New(s.cfg, theme, seed)
	s.last = core.StepResult{State: s.game.Snapshot()}
	s.phase = PhaseRunning
	s.logger.Info("run started", "name", name, "theme", themeID, "seed", seed)
	return nil
}

// Tick advances a running run by one frame. In any other phase it returns
// the last result unchanged.
func (s *Session) Tick(in core.InputFrame) core.StepResult {
	if s.phase != PhaseRunning {
		return s.last
	}

	s.last = s.game.Step(in)
	if s.game.State().Terminal {
		s.finish()
	}
	return s.last
}

func (s *Session) finish() {
	s.phase = PhaseTerminal
	score := s.game.State().FinalScore()
	s.logger.Info("run ended", "name", s.name, "score", score, "combo", s.game.State().Combo,
		"frames", s.game.State().Frame)
	s.board.Submit(s.name, score)
}

// FinalScore returns the floored score of the current or last run.
func (s *Session) FinalScore() int {
	if s.game == nil {
		return 0
	}
	return s.game.State().FinalScore()
}

// Pause suspends a running run. It reports whether the phase changed.
func (s *Session) Pause() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.phase = PhasePaused
	s.last.State.Paused = true
	return true
}

// Resume continues a paused run. It reports whether the phase changed.
func (s *Session) Resume() bool {
	if s.phase != PhasePaused {
		return false
	}
	s.phase = PhaseRunning
	s.last.State.Paused = false
	return true
}

// Exit abandons the current run, unsubmitted if it had not ended, and
// returns to Idle.
func (s *Session) Exit() {
	if s.phase == PhaseRunning || s.phase == PhasePaused {
		s.logger.Info("run abandoned", "name", s.name, "score", s.FinalScore())
	}
	s.phase = PhaseIdle
	s.game = nil
	s.last = core.StepResult{}
}
