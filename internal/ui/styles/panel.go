package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel draws content in a rounded box with the title set into the top
// border: ╭─ Juan 3 ─────╮. Content is clipped to the box.
func RenderPanel(content, title string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	lines := strings.Split(content, "\n")
	rows := make([]string, innerHeight)
	for i := range rows {
		var line string
		if i < len(lines) {
			line = Truncate(lines[i], innerWidth)
		}
		rows[i] = borderStyle.Render(borderVertical) + PadRight(line, innerWidth) + borderStyle.Render(borderVertical)
	}

	var sb strings.Builder
	sb.WriteString(topBorder(title, innerWidth, borderStyle, TitleStyle))
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(rows, "\n"))
	sb.WriteByte('\n')
	sb.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return sb.String()
}

func topBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// "─ " + title + " " needs at least one cell of title
	if title == "" || innerWidth < 4 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	title = Truncate(title, innerWidth-3)
	rest := max(innerWidth-3-Width(title), 0)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
