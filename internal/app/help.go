package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/easypresenter/easypresenter/internal/keys"
	"github.com/easypresenter/easypresenter/internal/log"
)

// helpStyle drops glamour's document margin so the text fits the overlay.
const helpStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

func helpMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# easypresenter\n\n")
	sb.WriteString("Type a reference such as `juan 3 16` or `1 co 13` and press **enter**. ")
	sb.WriteString("The book may be any prefix of its name; the verse defaults to 1.\n\n")
	sb.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range keys.Console.FullHelp() {
		for _, b := range group {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	sb.WriteString("\nIn songs mode the query line filters by title. **enter** opens the song under the cursor.\n")
	return sb.String()
}

// openHelp renders the help text at the overlay width and shows it.
func (m *Model) openHelp() {
	width := m.helpView.Width
	if width <= 0 {
		width, m.helpView.Height = overlaySize(defaultWidth, defaultHeight)
		m.helpView.Width = width
	}

	content := helpMarkdown()
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithStylesFromJSONBytes([]byte(helpStyle)),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err == nil {
		if rendered, rerr := r.Render(content); rerr == nil {
			content = rendered
		} else {
			err = rerr
		}
	}
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering help failed", err)
	}

	m.helpView.SetContent(content)
	m.helpView.GotoTop()
	m.showHelp = true
}
