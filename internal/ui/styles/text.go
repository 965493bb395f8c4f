package styles

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const ellipsis = "…"

// Width returns the display width of s, ignoring ANSI sequences.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to maxWidth cells, ending in an ellipsis when shortened.
// ANSI styling is preserved.
func Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// PadRight pads plain or styled text with spaces to width cells.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Wrap word-wraps text to width cells. Words longer than the width are
// broken. A width below 1 returns text unchanged.
func Wrap(text string, width int) string {
	if width < 1 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}

// Hanging wraps text to width with prefix on the first line and matching
// indentation on the rest, as used for numbered verses.
func Hanging(prefix, text string, width int) string {
	indent := runewidth.StringWidth(prefix)
	body := Wrap(text, width-indent)
	lines := strings.Split(body, "\n")
	pad := strings.Repeat(" ", indent)
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
