package sheet

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/marcus/cellgrid/internal/grid"
)

// Clipboard is the system clipboard as seen by the sheet.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }

// SystemClipboard uses pbcopy, xclip/xsel or the Windows clipboard.
func SystemClipboard() Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return systemClipboard{}
}

// rowAsMarkdown formats a row as a two-column markdown table of column name
// and rendered value.
func rowAsMarkdown(cols []*grid.Column, row *grid.Row) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Row:** `%s`\n\n", row.ID))
	sb.WriteString("| Column | Value |\n|--------|-------|\n")
	for _, col := range cols {
		v := row.Get(col.Key)
		text := grid.DefaultFormatter{}.Format(v, nil)
		if col.Formatter != nil {
			text = col.Formatter.Format(v, grid.FormatterDependencies(col, row))
		}
		text = strings.ReplaceAll(text, "|", "\\|")
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", col.Name, text))
	}
	return sb.String()
}
