package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/easypresenter/easypresenter/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	query := m.queryLine(width)
	status := m.statusLine(width)
	bodyHeight := max(height-lipgloss.Height(query)-lipgloss.Height(status), 3)

	var body string
	if m.mode == modeSongs {
		body = m.songsBody(width, bodyHeight)
	} else {
		title := m.title
		if title == "" {
			title = "Scripture"
		}
		body = styles.RenderPanel(m.slidesContent(width-2, bodyHeight-2), title, width, bodyHeight, true)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, query, body, status)

	switch {
	case m.showHelp:
		view = styles.PlaceCenter(styles.OverlayStyle.Render(m.helpView.View()), view, width, height)
	case m.showLogs:
		view = styles.PlaceCenter(styles.OverlayStyle.Render(m.logView.View()), view, width, height)
	}
	return view
}

func (m *Model) queryLine(width int) string {
	line := m.input.View()
	if m.suggestion != "" {
		line += "  " + styles.SuggestionStyle.Render("tab: "+m.suggestion)
	}
	if m.status != "" {
		style := styles.HintStyle
		if m.statusErr {
			style = styles.ErrorStyle
		}
		line += "  " + style.Render(m.status)
	}
	return styles.Truncate(line, width)
}

func (m *Model) statusLine(width int) string {
	parts := []string{styles.ModeBadge.Render(m.mode.String())}

	if v, ok := m.svc.Selection.Version(); ok {
		parts = append(parts, styles.VersionBadge.Render(v.Alias))
	}

	if m.mode == modeScripture {
		if ref, ok := m.svc.Selection.Passage(); ok {
			info := ref.Title()
			if m.maxChapter > 0 {
				info += fmt.Sprintf(" of %d", m.maxChapter)
			}
			parts = append(parts, styles.ReferenceStyle.Render(info))
		}
	} else if m.song != nil {
		parts = append(parts, styles.ReferenceStyle.Render(m.song.Title))
	}

	if m.live {
		parts = append(parts, styles.SelectionIndicatorStyle.Render("● live"))
	} else {
		parts = append(parts, styles.HintStyle.Render("○ blank"))
	}

	if m.svc.Cache != nil {
		st := m.svc.Cache.Stats()
		parts = append(parts, styles.HintStyle.Render(fmt.Sprintf("cache %d/%d", st.Hits, st.Misses)))
	}
	parts = append(parts, styles.HintStyle.Render("f1 help"))

	return styles.Truncate(styles.StatusBarStyle.Render(strings.Join(parts, " ")), width)
}

// slidesContent renders the slide list so the focused slide stays visible.
func (m *Model) slidesContent(width, height int) string {
	if len(m.slides) == 0 {
		if m.mode == modeScripture && m.title == "" {
			return styles.HintStyle.Render("Type a reference such as \"juan 3 16\" and press enter.")
		}
		return ""
	}

	showNumbers := m.svc.Config.UI.ShowVerseNumbers || m.mode == modeSongs
	wrapWidth := width - 2
	if w := m.svc.Config.UI.WrapWidth; w > 0 && w < wrapWidth {
		wrapWidth = w
	}

	var lines []string
	focusStart, focusEnd := 0, 0
	for i, s := range m.slides {
		marker := "  "
		style := styles.SlideStyle
		if i == m.focus {
			marker = styles.SelectionIndicatorStyle.Render("▸ ")
			style = styles.LiveSlideStyle
			focusStart = len(lines)
		}

		prefix := ""
		if showNumbers {
			prefix = s.Label + " "
		}
		block := styles.Hanging(prefix, s.Text, wrapWidth)
		for j, l := range strings.Split(block, "\n") {
			if j == 0 {
				lines = append(lines, marker+style.Render(l))
			} else {
				lines = append(lines, "  "+style.Render(l))
			}
		}
		if i == m.focus {
			focusEnd = len(lines)
		}
		if m.mode == modeSongs && i < len(m.slides)-1 {
			lines = append(lines, "")
		}
	}

	return strings.Join(window(lines, focusStart, focusEnd, height), "\n")
}

// window returns at most height lines, scrolled so [start, end) is shown
// with a line of context above when there is room.
func window(lines []string, start, end, height int) []string {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	top := max(start-1, 0)
	if end-top > height {
		top = start
	}
	top = min(top, len(lines)-height)
	return lines[top : top+height]
}

func (m *Model) songsBody(width, height int) string {
	listWidth := max(width/3, 20)
	slidesWidth := max(width-listWidth, 20)

	var list []string
	if len(m.songList) == 0 {
		list = append(list, styles.HintStyle.Render("no songs"))
	}
	for i, s := range m.songList {
		marker := "  "
		if i == m.songCursor {
			marker = styles.SelectionIndicatorStyle.Render("▸ ")
		}
		line := s.Title
		if s.Key != "" {
			line += styles.HintStyle.Render(" (" + s.Key + ")")
		}
		list = append(list, marker+line)
	}
	start := m.songCursor
	listContent := strings.Join(window(list, start, start+1, height-2), "\n")

	title := "Slides"
	if m.song != nil {
		title = m.song.Title
	}

	left := styles.RenderPanel(listContent, fmt.Sprintf("Songs (%d)", len(m.songList)), listWidth, height, m.pane == paneList)
	right := styles.RenderPanel(m.slidesContent(slidesWidth-2, height-2), title, slidesWidth, height, m.pane == paneSlides)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func overlaySize(width, height int) (int, int) {
	return max(width*3/4, 20), max(height*3/4, 5)
}
