package sheet

import (
	"fmt"
	"strings"

	"github.com/marcus/cellgrid/internal/config"
	"github.com/marcus/cellgrid/internal/grid"
)

// BuildColumns turns configuration and source headers into grid columns.
// Configured columns come first in config order, then any remaining headers.
func BuildColumns(cfg *config.Config, headers []string) []*grid.Column {
	var cols []*grid.Column
	seen := make(map[string]bool)

	for _, cc := range cfg.Columns {
		cols = append(cols, columnFromConfig(cc))
		seen[cc.Key] = true
	}
	for _, h := range headers {
		if !seen[h] {
			cols = append(cols, columnFromConfig(config.ColumnConfig{Key: h}))
			seen[h] = true
		}
	}
	grid.LayoutColumns(cols)
	return cols
}

func columnFromConfig(cc config.ColumnConfig) *grid.Column {
	col := &grid.Column{
		Key:       cc.Key,
		Name:      cc.Name,
		Width:     cc.Width,
		Locked:    cc.Locked,
		CellClass: cc.CellClass,
	}
	if col.Name == "" {
		col.Name = cc.Key
	}
	if col.Width == 0 {
		col.Width = config.DefaultColumnWidth
	}
	if cc.DependsOn != "" {
		dep := cc.DependsOn
		col.RowMetaData = func(row *grid.Row, _ *grid.Column) any {
			return row.Get(dep)
		}
	}
	col.Formatter = formatterFor(cc.Format, cc.DependsOn != "")
	if cc.FlashClass != "" {
		flash := cc.FlashClass
		col.UpdateCellClass = func(_, _ *grid.Column, valueChanging bool) string {
			if valueChanging {
				return flash
			}
			return ""
		}
	}
	return col
}

// formatterFor returns nil for plain text so the grid falls back to its
// default formatter.
func formatterFor(format string, withDeps bool) grid.Formatter {
	var base func(v any) string
	switch format {
	case "upper":
		base = func(v any) string { return strings.ToUpper(plain(v)) }
	case "number":
		base = formatNumber
	case "bool":
		base = formatBool
	default:
		if !withDeps {
			return nil
		}
		base = plain
	}
	if !withDeps {
		return grid.FormatterFunc(func(v, _ any) string { return base(v) })
	}
	return grid.FormatterFunc(func(v, deps any) string {
		if deps == nil {
			return base(v)
		}
		return fmt.Sprintf("%s (%s)", base(v), plain(deps))
	})
}

func plain(v any) string {
	return grid.DefaultFormatter{}.Format(v, nil)
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return fmt.Sprintf("%d", n)
	case int64:
		return fmt.Sprintf("%d", n)
	case float64:
		return fmt.Sprintf("%.2f", n)
	case float32:
		return fmt.Sprintf("%.2f", n)
	default:
		return plain(v)
	}
}

func formatBool(v any) string {
	switch b := v.(type) {
	case bool:
		if b {
			return "\u2713" // ✓
		}
		return "\u2717" // ✗
	default:
		return plain(v)
	}
}
