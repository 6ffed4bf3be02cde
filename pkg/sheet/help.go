package sheet

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown builds the help screen source from the key map.
func helpMarkdown(keys KeyMap) string {
	var sb strings.Builder
	sb.WriteString("# cellgrid\n\n")
	sb.WriteString("| Key | Action |\n|-----|--------|\n")
	for _, b := range keys.bindings() {
		h := b.Help()
		sb.WriteString(fmt.Sprintf("| `%s` | %s |\n", h.Key, h.Desc))
	}
	sb.WriteString("\n## Drag-fill\n\n")
	sb.WriteString("Press `f` on a cell, move up or down to extend the fill, then `enter` to copy the anchor value ")
	sb.WriteString("into every row of the span. With a mouse, press on the selected cell and drag.\n")
	return sb.String()
}

// renderHelp renders the help markdown for the given width. Rendering
// failures fall back to the raw markdown.
func renderHelp(keys KeyMap, width int) string {
	md := helpMarkdown(keys)
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
