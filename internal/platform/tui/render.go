package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyrunner/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(r *lipgloss.Renderer, s *core.Screen) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*8 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(cellStyle(r, start).Render(run.String()))
		}
	}
	return sb.String()
}

func cellStyle(r *lipgloss.Renderer, c core.Cell) lipgloss.Style {
	style := r.NewStyle()
	if !c.Fg.IsZero() {
		style = style.Foreground(lipgloss.Color(c.Fg.Hex()))
	}
	if !c.Bg.IsZero() {
		style = style.Background(lipgloss.Color(c.Bg.Hex()))
	}
	return style
}
