// Package gui is the desktop frontend: an ebiten window that plays runs
// with keyboard, mouse and touch input.
package gui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/skyrunner/internal/assets"
	"github.com/vovakirdan/skyrunner/internal/audio"
	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/games/runner"
	"github.com/vovakirdan/skyrunner/internal/input"
	"github.com/vovakirdan/skyrunner/internal/leaderboard"
	"github.com/vovakirdan/skyrunner/internal/logging"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Pause control, top-right, in playfield units.
const (
	pauseSize   = 28
	pauseMargin = 8
)

var (
	hudColor     = core.Hex("#00ffff")
	noticeColor  = core.Hex("#ffaa33")
	overlayColor = core.RGBA(10, 5, 25, 0.7)
	textColor    = core.Hex("#ffffff")
	controlColor = core.RGBA(255, 255, 255, 0.35)
)

// Options configures the window.
type Options struct {
	Config config.RunnerConfig
	Board  *leaderboard.Async
	Images *assets.Loader
	Audio  *audio.Player
	Logger *log.Logger

	Name  string
	Theme string
	Seed  int64   // zero picks a time-based seed per run
	Scale float64 // window pixels per playfield unit
	Best  int     // shown until the first leaderboard fetch lands
}

// frameInput is everything the player did since the last Update.
type frameInput struct {
	events  []input.Event
	pause   bool
	confirm bool
	back    bool
	restart bool
	quit    bool
}

// Game implements ebiten.Game around a run session. Update only steps the
// simulation while the session is Running.
type Game struct {
	cfg     config.RunnerConfig
	session *runner.Session
	board   *leaderboard.Async
	images  *assets.Loader
	audio   *audio.Player
	logger  *log.Logger
	mapper  input.Mapper
	canvas  *Canvas
	scale   float64

	name    string
	themeID string
	seed    int64
	runs    int
	input   core.InputFrame

	best   int
	notice string
	quit   bool
}

// New creates the window game and starts the first run.
func New(opts Options) (*Game, error) {
	logger := logging.OrDiscard(opts.Logger)
	board := opts.Board
	if board == nil {
		board = leaderboard.NewAsync(leaderboard.Disabled{}, 0, logger)
	}
	images := opts.Images
	if images == nil {
		images = assets.NewLoader(false, 0, logger)
	}
	player := opts.Audio
	if player == nil {
		player = audio.Silent()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("gui: load font: %w", err)
	}
	face := &text.GoTextFace{Source: src, Size: 16}

	cfg := opts.Config
	g := &Game{
		cfg:     cfg,
		session: runner.NewSession(cfg, board, logger),
		board:   board,
		images:  images,
		audio:   player,
		logger:  logger,
		mapper:  input.NewMapper(),
		canvas:  NewCanvas(cfg.Playfield.Width, cfg.Playfield.Height(), scale, face),
		scale:   scale,
		name:    opts.Name,
		themeID: opts.Theme,
		seed:    opts.Seed,
		best:    opts.Best,
		input:   core.NewInputFrame(),
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	board.FetchTop(1)
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Sky Runner")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(60)

	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) start() error {
	seed := time.Now().UnixNano()
	if g.seed != 0 {
		seed = g.seed + int64(g.runs)
	}
	if err := g.session.Start(g.name, g.themeID, seed); err != nil {
		return err
	}
	g.runs++
	g.input.Clear()
	g.notice = ""

	ctx := context.Background()
	g.images.Load(ctx, g.session.Game().Theme().Background)
	g.images.Load(ctx, g.cfg.Assets.Sprite)
	return nil
}

// Update reads input, then steps one frame if a run is active.
func (g *Game) Update() error {
	g.advance(g.collect())
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// advance applies one frame of input and board results.
func (g *Game) advance(in frameInput) {
	g.pollResults()
	g.handle(in)
	if g.session.Phase() != runner.PhaseRunning {
		return
	}

	res := g.session.Tick(g.input)
	g.input.Clear()
	g.audio.Play(res.Events...)
	if g.session.Phase() == runner.PhaseTerminal {
		g.notice = "submitting score..."
	}
}

func (g *Game) handle(in frameInput) {
	if in.quit {
		g.quit = true
		return
	}

	control := false
	for _, ev := range in.events {
		if ev.OverControl {
			if ev.Kind == input.KindTouchStart || ev.Button == input.ButtonLeft {
				control = true
			}
			continue
		}
		if g.mapper.Map(ev).Jump && g.session.Phase() == runner.PhaseRunning {
			g.input.Set(core.ActionJump)
		}
	}

	switch g.session.Phase() {
	case runner.PhaseRunning:
		if in.pause || control {
			g.session.Pause()
		}
	case runner.PhasePaused:
		switch {
		case in.pause || in.confirm || control:
			g.session.Resume()
		case in.back:
			g.session.Exit()
		}
	case runner.PhaseTerminal, runner.PhaseIdle:
		switch {
		case in.restart || in.confirm:
			if err := g.start(); err != nil {
				g.notice = err.Error()
			}
		case in.back:
			g.quit = true
		}
	}
}

// collect reads this frame's keyboard, mouse and touch presses.
func (g *Game) collect() frameInput {
	var in frameInput
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		switch k {
		case ebiten.KeySpace:
			in.events = append(in.events, input.Event{Kind: input.KindKey, Key: input.KeySpace})
		case ebiten.KeyArrowUp, ebiten.KeyW:
			in.events = append(in.events, input.Event{Kind: input.KindKey, Key: input.KeyUp})
		case ebiten.KeyP, ebiten.KeyEscape:
			in.pause = true
		case ebiten.KeyEnter:
			in.confirm = true
		case ebiten.KeyX, ebiten.KeyB:
			in.back = true
		case ebiten.KeyR:
			in.restart = true
		case ebiten.KeyQ:
			in.quit = true
		}
	}

	buttons := map[ebiten.MouseButton]input.Button{
		ebiten.MouseButtonLeft:   input.ButtonLeft,
		ebiten.MouseButtonMiddle: input.ButtonMiddle,
		ebiten.MouseButtonRight:  input.ButtonRight,
	}
	for eb, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(eb) {
			x, y := ebiten.CursorPosition()
			in.events = append(in.events, input.Event{Kind: input.KindPointerDown, Button: b, OverControl: g.overPause(x, y)})
		}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		in.events = append(in.events, input.Event{Kind: input.KindTouchStart, OverControl: g.overPause(x, y)})
	}
	return in
}

// pollResults drains finished leaderboard calls without blocking.
func (g *Game) pollResults() {
	for {
		select {
		case r := <-g.board.Results():
			g.applyResult(r)
		default:
			return
		}
	}
}

func (g *Game) applyResult(r leaderboard.Result) {
	switch r.Op {
	case leaderboard.OpFetch:
		if r.Err != nil {
			g.notice = "leaderboard unavailable"
			return
		}
		if len(r.Entries) > 0 {
			g.best = r.Entries[0].Score
		}
	case leaderboard.OpSubmit:
		if r.Err != nil {
			g.notice = fmt.Sprintf("score not saved: %v", r.Err)
			return
		}
		g.notice = fmt.Sprintf("score %d saved", r.Score)
		g.board.FetchTop(1)
	}
}

// overPause reports whether screen point (x, y) hits the pause control.
func (g *Game) overPause(x, y int) bool {
	px, py := float64(x)/g.scale, float64(y)/g.scale
	left := g.cfg.Playfield.Width - pauseMargin - pauseSize
	return px >= left && px <= left+pauseSize && py >= pauseMargin && py <= pauseMargin+pauseSize
}

// Draw renders the run, the HUD and any overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Target(screen)
	w, h := g.canvas.Size()

	if game := g.session.Game(); game != nil {
		game.Render(g.canvas, g.images, g.cfg.Assets.Sprite)
	} else {
		g.canvas.FillRect(0, 0, w, h, core.Hex("#050510"))
	}

	snap := g.session.Last().State
	g.canvas.Text(12, 10, fmt.Sprintf("SCORE %d", snap.Score), hudColor)
	g.canvas.Text(12, 30, fmt.Sprintf("COMBO x%d", snap.Combo), hudColor)
	if g.best > 0 {
		g.canvas.Text(12, 50, fmt.Sprintf("BEST %d", g.best), hudColor)
	}
	g.drawPauseControl()

	switch g.session.Phase() {
	case runner.PhasePaused:
		g.overlay("PAUSED", "P / Enter / click: resume    X: exit")
	case runner.PhaseTerminal:
		g.overlay("GAME OVER", fmt.Sprintf("score %d    R: retry    Q: quit", g.session.FinalScore()))
	case runner.PhaseIdle:
		g.overlay("SKY RUNNER", "Enter: fly    Q: quit")
	}
	if g.notice != "" {
		g.canvas.Text(12, h-28, g.notice, noticeColor)
	}
}

func (g *Game) drawPauseControl() {
	x := g.cfg.Playfield.Width - pauseMargin - pauseSize
	y := float64(pauseMargin)
	g.canvas.FillRect(x, y, pauseSize, pauseSize, controlColor)
	if g.session.Phase() == runner.PhasePaused {
		g.canvas.FillPolygon([]render.Point{
			{X: x + 9, Y: y + 6}, {X: x + 22, Y: y + pauseSize/2}, {X: x + 9, Y: y + pauseSize - 6},
		}, textColor)
		return
	}
	g.canvas.FillRect(x+8, y+6, 4, pauseSize-12, textColor)
	g.canvas.FillRect(x+16, y+6, 4, pauseSize-12, textColor)
}

func (g *Game) overlay(title, hint string) {
	w, h := g.canvas.Size()
	g.canvas.FillRect(0, h/2-40, w, 80, overlayColor)
	g.canvas.Text(w/2-float64(len(title))*5, h/2-30, title, textColor)
	g.canvas.Text(w/2-float64(len(hint))*4, h/2+5, hint, textColor)
}

// Layout keeps the window at the playfield size times the scale.
func (g *Game) Layout(_, _ int) (int, int) {
	w, h := g.canvas.Size()
	return int(w * g.scale), int(h * g.scale)
}
