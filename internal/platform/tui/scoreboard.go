package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyrunner/internal/leaderboard"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Reset   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Reset, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Reset, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "enter"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardAction is what the app should do after a scoreboard key.
type ScoreboardAction int

const (
	ScoreboardNone ScoreboardAction = iota
	ScoreboardBack
	ScoreboardQuit
	ScoreboardReset // the user confirmed clearing every score
)

// ScoreboardModel is the leaderboard screen: a table of the top entries
// and a guarded reset.
type ScoreboardModel struct {
	entries    []leaderboard.Entry
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	confirming bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: leaderboard.MaxNameLength + 2},
		{Title: "Score", Width: 10},
	}

	height := m.height - 10 // Leave room for title, notice and help
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SetEntries replaces the table rows, highest score first.
func (m *ScoreboardModel) SetEntries(entries []leaderboard.Entry) {
	m.entries = entries
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Entries returns the rows currently shown.
func (m ScoreboardModel) Entries() []leaderboard.Entry {
	return m.entries
}

// Confirming reports whether a reset is waiting for confirmation.
func (m ScoreboardModel) Confirming() bool {
	return m.confirming
}

// Resize adapts the table to a new terminal size.
func (m *ScoreboardModel) Resize(width, height int) {
	m.width, m.height = width, height
	m.table = m.createTable()
	m.SetEntries(m.entries)
	m.help.Width = width
}

// Update handles a key and reports what the app should do next.
func (m ScoreboardModel) Update(msg tea.KeyMsg) (ScoreboardModel, ScoreboardAction, tea.Cmd) {
	if m.confirming {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirming = false
			return m, ScoreboardReset, nil
		case key.Matches(msg, m.keys.Cancel):
			m.confirming = false
		}
		return m, ScoreboardNone, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, ScoreboardQuit, nil

	case key.Matches(msg, m.keys.Back):
		return m, ScoreboardBack, nil

	case key.Matches(msg, m.keys.Reset):
		m.confirming = true
		return m, ScoreboardNone, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, ScoreboardNone, cmd
	}

	return m, ScoreboardNone, nil
}

// View renders the scoreboard with an optional status notice.
func (m ScoreboardModel) View(r *lipgloss.Renderer, notice string) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	var b strings.Builder

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	tableStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	if len(m.entries) == 0 {
		content = r.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No scores recorded yet.\nFinish a run to set a high score!")
	} else {
		content = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(content)))
	b.WriteString("\n\n")

	noticeStyle := r.NewStyle().Foreground(lipgloss.Color("214"))
	switch {
	case m.confirming:
		b.WriteString(noticeStyle.Render(centerText("Delete ALL scores? y: yes  n: no", m.width)))
	case notice != "":
		b.WriteString(noticeStyle.Render(centerText(notice, m.width)))
	}
	b.WriteString("\n")

	helpStyle := r.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
