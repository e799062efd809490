package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/assets"
	"github.com/vovakirdan/skyrunner/internal/audio"
	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/games/runner"
	"github.com/vovakirdan/skyrunner/internal/leaderboard"
	"github.com/vovakirdan/skyrunner/internal/logging"
	"github.com/vovakirdan/skyrunner/internal/registry"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Page is one screen of the app.
type Page int

const (
	PageHome Page = iota
	PageThemes
	PageRun
	PageGameOver
	PageScores
)

// String returns the page name.
func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageThemes:
		return "themes"
	case PageRun:
		return "run"
	case PageGameOver:
		return "game-over"
	case PageScores:
		return "scores"
	default:
		return "unknown"
	}
}

// Rows taken by the HUD above the canvas and the footer below it.
const chromeRows = 2

const pauseLabel = "[ II ]"

// Options configures an App.
type Options struct {
	Config   config.RunnerConfig
	Board    *leaderboard.Async // nil disables the leaderboard
	Images   *assets.Loader     // nil keeps procedural placeholders
	Audio    *audio.Player      // nil is silent
	Logger   *log.Logger
	Renderer *lipgloss.Renderer // nil uses the process stdout

	Name  string // prefilled player name
	Theme string // preselected theme, default when empty or unknown
	// Direct skips the menus and starts a run at once. Name must be valid.
	Direct bool
	// Seed fixes the first run's seed; later runs count up from it.
	// Zero picks a time-based seed per run.
	Seed int64
	// Best is the high score shown until the first leaderboard fetch lands.
	Best int

	Width, Height int

	// Copy writes to the clipboard. Defaults to the system clipboard.
	Copy func(string) error
}

// resultMsg carries a finished leaderboard call into Update.
type resultMsg leaderboard.Result

// App is the Bubble Tea model for the whole flow: home, theme picker, run,
// game over and leaderboard.
type App struct {
	cfg      config.RunnerConfig
	session  *runner.Session
	board    *leaderboard.Async
	images   *assets.Loader
	audio    *audio.Player
	logger   *log.Logger
	renderer *lipgloss.Renderer
	clip     func(string) error
	keys     *KeyMapper
	driver   *Driver
	hud      *HUD

	page          Page
	width, height int
	pendingResize bool // a resize arrived mid-run; applied when it ends
	raster        *render.Raster
	screen        *core.Screen
	input         core.InputFrame

	nameInput   textinput.Model
	themes      []registry.ThemeInfo
	themeCursor int
	themeID     string
	seed        int64
	runs        int

	best       int
	scores     ScoreboardModel
	scoresBack Page

	notice   string
	quitting bool
}

// NewApp builds the app model. With opts.Direct the first run starts
// immediately; a start error leaves the app on the home page with a notice.
func NewApp(opts Options) App {
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
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	cp := opts.Copy
	if cp == nil {
		cp = clipboard.WriteAll
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "your name"
	ti.CharLimit = leaderboard.MaxNameLength
	ti.SetValue(opts.Name)
	ti.Focus()

	themeID := opts.Theme
	if !registry.Exists(themeID) {
		themeID = registry.Default()
	}
	themes := registry.List()
	cursor := 0
	for i, t := range themes {
		if t.ID == themeID {
			cursor = i
		}
	}

	m := App{
		cfg:         opts.Config,
		session:     runner.NewSession(opts.Config, board, logger),
		board:       board,
		images:      images,
		audio:       player,
		logger:      logger,
		renderer:    renderer,
		clip:        cp,
		keys:        NewKeyMapper(),
		driver:      NewDriver(opts.Config.TUI.FPS),
		hud:         NewHUD(opts.Config.TUI.HUDHz),
		width:       width,
		height:      height,
		input:       core.NewInputFrame(),
		nameInput:   ti,
		themes:      themes,
		themeCursor: cursor,
		themeID:     themeID,
		seed:        opts.Seed,
		best:        opts.Best,
		scores:      NewScoreboardModel(width, height),
	}
	m.layout()

	if opts.Direct {
		if err := m.begin(themeID); err != nil {
			m.notice = startError(err)
		}
	}
	return m
}

// Init starts listening for leaderboard results and loads the top scores.
func (m App) Init() tea.Cmd {
	m.board.FetchTop(m.limit())
	cmds := []tea.Cmd{m.listen(), textinput.Blink}
	if m.page == PageRun {
		cmds = append(cmds, m.driver.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case resultMsg:
		return m.handleResult(leaderboard.Result(msg))

	case TickMsg:
		return m.handleTick(msg)

	case tea.MouseMsg:
		if m.page == PageRun {
			return m.handleRunMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.page {
		case PageHome:
			return m.handleHomeKey(msg)
		case PageThemes:
			return m.handleThemesKey(msg)
		case PageRun:
			return m.handleRunKey(msg)
		case PageGameOver:
			return m.handleGameOverKey(msg)
		case PageScores:
			return m.handleScoresKey(msg)
		}
	}

	// Cursor blink and the like
	if m.page == PageHome {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m App) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.scores.Resize(msg.Width, msg.Height)
	if m.runActive() {
		m.pendingResize = true
		return m, nil
	}
	m.layout()
	m.draw()
	return m, nil
}

func (m App) handleResult(r leaderboard.Result) (tea.Model, tea.Cmd) {
	switch r.Op {
	case leaderboard.OpFetch:
		if r.Err != nil {
			m.notice = fmt.Sprintf("leaderboard unavailable: %v", r.Err)
			break
		}
		m.best = 0
		if len(r.Entries) > 0 {
			m.best = r.Entries[0].Score
		}
		m.scores.SetEntries(r.Entries)

	case leaderboard.OpSubmit:
		if r.Err != nil {
			m.notice = fmt.Sprintf("score not saved: %v", r.Err)
			break
		}
		m.notice = fmt.Sprintf("score %d saved", r.Score)
		m.board.FetchTop(m.limit())

	case leaderboard.OpDeleteAll:
		if r.Err != nil {
			if errors.Is(r.Err, leaderboard.ErrUnauthorized) {
				m.notice = "reset refused: an admin token is required"
			} else {
				m.notice = fmt.Sprintf("reset failed: %v", r.Err)
			}
			break
		}
		m.notice = "leaderboard cleared"
		m.board.FetchTop(m.limit())
	}
	return m, m.listen()
}

func (m App) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.driver.Accept(msg) {
		return m, nil
	}

	res := m.session.Tick(m.input)
	m.input.Clear()
	m.audio.Play(res.Events...)
	m.hud.Update(msg.Time, m.session.Name(), res.State, m.session.Game().State().GameSpeed)

	if m.session.Phase() == runner.PhaseTerminal {
		m.driver.Stop()
		m.page = PageGameOver
		m.notice = "submitting score..."
		if m.pendingResize {
			m.pendingResize = false
			m.layout()
		}
		m.draw()
		return m, nil
	}

	m.draw()
	return m, m.driver.Next()
}

func (m App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.openScores(PageHome)
		return m, nil
	case "enter":
		name, err := runner.ValidateName(m.nameInput.Value())
		if err != nil {
			m.notice = startError(err)
			return m, nil
		}
		m.nameInput.SetValue(name)
		m.notice = ""
		m.page = PageThemes
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m App) handleThemesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.themeCursor > 0 {
			m.themeCursor--
		}

	case MenuActionDown:
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
		}

	case MenuActionSelect:
		if len(m.themes) > 0 {
			return m, m.start(m.themes[m.themeCursor].ID)
		}

	case MenuActionBack:
		m.page = PageHome

	case MenuActionScoreboard:
		m.openScores(PageThemes)
	}

	return m, nil
}

func (m App) handleRunKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.driver.Stop()
		m.session.Exit()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.session.Phase() {
	case runner.PhaseRunning:
		switch action {
		case core.ActionJump:
			m.input.Set(core.ActionJump)
		case core.ActionPause:
			m.pause()
		}

	case runner.PhasePaused:
		switch action {
		case core.ActionPause, core.ActionConfirm:
			return m, m.resume()
		case core.ActionBack:
			m.exit()
		}
	}

	return m, nil
}

func (m App) handleRunMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	over := m.overPauseControl(msg.X, msg.Y)
	action := m.keys.MapMouse(msg, over)

	switch m.session.Phase() {
	case runner.PhaseRunning:
		switch action {
		case core.ActionJump:
			m.input.Set(core.ActionJump)
		case core.ActionPause:
			m.pause()
		}
	case runner.PhasePaused:
		if action == core.ActionPause {
			return m, m.resume()
		}
	}
	return m, nil
}

func (m App) handleGameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "r":
		return m, m.start(m.themeID)
	case "enter", "tab", "l":
		m.openScores(PageGameOver)
	case "c":
		m.copyScore()
	case "b", "esc":
		m.exit()
	}
	return m, nil
}

func (m App) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		action ScoreboardAction
		cmd    tea.Cmd
	)
	m.scores, action, cmd = m.scores.Update(msg)

	switch action {
	case ScoreboardBack:
		m.page = m.scoresBack
		if m.page == PageGameOver {
			m.draw()
		}
	case ScoreboardQuit:
		m.quitting = true
		return m, tea.Quit
	case ScoreboardReset:
		m.notice = "clearing leaderboard..."
		m.board.DeleteAll()
	}
	return m, cmd
}

// start begins a run on themeID and schedules its first tick.
func (m *App) start(themeID string) tea.Cmd {
	if err := m.begin(themeID); err != nil {
		m.notice = startError(err)
		return nil
	}
	return m.driver.Start()
}

// begin starts a run without scheduling ticks.
func (m *App) begin(themeID string) error {
	if err := m.session.Start(m.nameInput.Value(), themeID, m.nextSeed()); err != nil {
		return err
	}
	m.runs++
	if m.pendingResize {
		m.pendingResize = false
		m.layout()
	}

	game := m.session.Game()
	ctx := context.Background()
	m.images.Load(ctx, game.Theme().Background)
	m.images.Load(ctx, m.cfg.Assets.Sprite)

	m.themeID = themeID
	m.page = PageRun
	m.notice = ""
	m.input.Clear()
	m.hud.Reset()
	m.hud.Update(time.Now(), m.session.Name(), m.session.Last().State, game.State().GameSpeed)
	m.draw()
	return nil
}

func (m *App) nextSeed() int64 {
	if m.seed == 0 {
		return time.Now().UnixNano()
	}
	return m.seed + int64(m.runs)
}

func (m *App) pause() {
	if m.session.Pause() {
		m.driver.Stop()
		m.draw()
	}
}

func (m *App) resume() tea.Cmd {
	if !m.session.Resume() {
		return nil
	}
	m.draw()
	return m.driver.Start()
}

// exit abandons or leaves the current run and returns home.
func (m *App) exit() {
	m.driver.Stop()
	m.session.Exit()
	m.page = PageHome
	if m.pendingResize {
		m.pendingResize = false
		m.layout()
	}
}

func (m *App) openScores(from Page) {
	m.scoresBack = from
	m.page = PageScores
	m.board.FetchTop(m.limit())
}

func (m *App) copyScore() {
	game := m.session.Game()
	if game == nil {
		return
	}
	text := fmt.Sprintf("%s scored %d in Sky Runner (%s)",
		m.session.Name(), m.session.FinalScore(), game.Theme().Name)
	if err := m.clip(text); err != nil {
		m.logger.Warn("clipboard unavailable", "error", err)
		m.notice = "clipboard unavailable"
		return
	}
	m.notice = "score copied to clipboard"
}

func (m App) runActive() bool {
	p := m.session.Phase()
	return p == runner.PhaseRunning || p == runner.PhasePaused
}

func (m App) limit() int {
	if m.cfg.Leaderboard.Limit > 0 {
		return m.cfg.Leaderboard.Limit
	}
	return leaderboard.DefaultLimit
}

func (m App) listen() tea.Cmd {
	ch := m.board.Results()
	return func() tea.Msg {
		return resultMsg(<-ch)
	}
}

func (m App) overPauseControl(x, y int) bool {
	return y == 0 && x >= m.width-len(pauseLabel) && x < m.width
}

// canvasRows keeps the playfield proportions, two pixels per cell.
func (m App) canvasRows() int {
	w, h := m.cfg.Playfield.Width, m.cfg.Playfield.Height()
	rows := m.height - chromeRows
	if w > 0 && h > 0 {
		if want := int(float64(m.width)*h/w/2 + 0.5); want < rows {
			rows = want
		}
	}
	if rows < 4 {
		rows = 4
	}
	return rows
}

func (m *App) layout() {
	cols, rows := m.width, m.canvasRows()
	if m.raster == nil {
		m.raster = render.NewRaster(cols, rows, m.cfg.Playfield.Width, m.cfg.Playfield.Height())
		m.screen = core.NewScreen(cols, rows)
		return
	}
	m.raster.Resize(cols, rows)
	m.screen.Resize(cols, rows)
}

// draw rasterises the current run into the screen buffer.
func (m *App) draw() {
	game := m.session.Game()
	if game == nil {
		return
	}
	m.raster.Clear(core.ColorBlack)
	game.Render(m.raster, m.images, m.cfg.Assets.Sprite)
	m.raster.Blit(m.screen, 0)

	switch m.session.Phase() {
	case runner.PhasePaused:
		m.overlay("PAUSED", "p: resume   x: exit to home")
	case runner.PhaseTerminal:
		st := game.State()
		m.overlay("GAME OVER", fmt.Sprintf("score %d   combo x%d", st.FinalScore(), st.Combo))
	}
}

var (
	overlayFg = core.Hex("#ffffff")
	overlayBg = core.Hex("#1a1030")
)

// overlay writes a centered box of text lines over the canvas.
func (m *App) overlay(lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4
	box := core.NewRect((m.screen.Width()-width)/2, (m.screen.Height()-len(lines)-2)/2, width, len(lines)+2)

	m.screen.FillRect(box, core.Cell{Rune: ' ', Fg: overlayFg, Bg: overlayBg})
	m.screen.DrawBox(box)
	for i, l := range lines {
		m.screen.DrawText(box.X+(width-len(l))/2, box.Y+1+i, l)
	}
}

func startError(err error) string {
	switch {
	case errors.Is(err, runner.ErrEmptyName):
		return "enter a name to play"
	case errors.Is(err, runner.ErrNameTooLong):
		return fmt.Sprintf("names are at most %d characters", leaderboard.MaxNameLength)
	case errors.Is(err, registry.ErrUnknownTheme):
		return "unknown theme"
	default:
		return err.Error()
	}
}

// Page returns the current page.
func (m App) Page() Page { return m.page }

// Session returns the run session.
func (m App) Session() *runner.Session { return m.session }

// Notice returns the status message shown to the player.
func (m App) Notice() string { return m.notice }

// Best returns the top leaderboard score, zero when unknown.
func (m App) Best() int { return m.best }

// IsQuitting returns true if user requested to quit.
func (m App) IsQuitting() bool { return m.quitting }

// Run starts the Bubble Tea program for the full flow.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
