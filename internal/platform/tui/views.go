package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyrunner/internal/games/runner"
)

// View renders the current page.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.page {
	case PageHome:
		return m.viewHome()
	case PageThemes:
		return m.viewThemes()
	case PageScores:
		return m.scores.View(m.renderer, m.notice)
	default:
		return m.viewRun()
	}
}

func (m App) title() string {
	style := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffcc"))
	return style.Render(centerText("S K Y   R U N N E R", m.width))
}

func (m App) footer(text string) string {
	style := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	return style.Render(centerText(text, m.width))
}

func (m App) noticeLine() string {
	if m.notice == "" {
		return ""
	}
	style := m.renderer.NewStyle().Foreground(lipgloss.Color("214"))
	return style.Render(centerText(m.notice, m.width))
}

func (m App) viewHome() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.title())
	b.WriteString("\n\n")

	best := "no scores yet"
	if m.best > 0 {
		best = fmt.Sprintf("best score: %d", m.best)
	}
	b.WriteString(centerText(best, m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText("Who is flying?", m.width))
	b.WriteString("\n")
	input := m.nameInput.View()
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, input))
	b.WriteString("\n\n")

	b.WriteString(m.noticeLine())
	b.WriteString("\n\n")
	b.WriteString(m.footer("Enter: Continue  |  Tab: Scores  |  Esc: Quit"))
	b.WriteString("\n")

	return b.String()
}

func (m App) viewThemes() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.title())
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Pick a sky, %s", m.nameInput.Value()), m.width))
	b.WriteString("\n\n")

	selected := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	for i, t := range m.themes {
		cursor := "  "
		line := t.Name
		if i == m.themeCursor {
			cursor = "> "
			line = selected.Render(line)
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.noticeLine())
	b.WriteString("\n")
	b.WriteString(m.footer("Up/Down: Navigate  |  Enter: Fly  |  Tab: Scores  |  B: Back  |  Q: Quit"))
	b.WriteString("\n")

	return b.String()
}

func (m App) viewRun() string {
	var b strings.Builder

	hudStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	ctrlStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	left := m.hud.Line()
	gap := m.width - lipgloss.Width(left) - len(pauseLabel)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(hudStyle.Render(left))
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(ctrlStyle.Render(pauseLabel))
	b.WriteString("\n")

	b.WriteString(RenderScreen(m.renderer, m.screen))
	b.WriteString("\n")

	switch m.session.Phase() {
	case runner.PhaseRunning:
		b.WriteString(m.footer("Space/Up/Click: Jump  |  P: Pause  |  Ctrl+C: Quit"))
	case runner.PhasePaused:
		b.WriteString(m.footer("P/Enter: Resume  |  X: Exit to home"))
	default:
		if m.notice != "" {
			b.WriteString(m.noticeLine())
			b.WriteString("\n")
		}
		b.WriteString(m.footer("R: Retry  |  Enter: Scores  |  C: Copy score  |  B: Home  |  Q: Quit"))
	}

	return b.String()
}
