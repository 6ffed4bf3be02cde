package sheet

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/cellgrid/internal/config"
	"github.com/marcus/cellgrid/internal/grid"
	"github.com/mitchellh/hashstructure/v2"
)

// ClassRowSelected marks cells of a row toggled with the row-select key.
const ClassRowSelected = "row-selected"

// Theme maps class tags onto lipgloss colors.
type Theme struct {
	Header      lipgloss.Color
	Locked      lipgloss.Color
	Selected    lipgloss.Color
	Editing     lipgloss.Color
	Copied      lipgloss.Color
	ActiveDrag  lipgloss.Color
	DragUp      lipgloss.Color
	DragDown    lipgloss.Color
	WasDragged  lipgloss.Color
	Flash       lipgloss.Color
	RowSelected lipgloss.Color
}

// ThemeFromConfig converts the configured color strings.
func ThemeFromConfig(t config.Theme) Theme {
	return Theme{
		Header:      lipgloss.Color(t.Header),
		Locked:      lipgloss.Color(t.Locked),
		Selected:    lipgloss.Color(t.Selected),
		Editing:     lipgloss.Color(t.Editing),
		Copied:      lipgloss.Color(t.Copied),
		ActiveDrag:  lipgloss.Color(t.ActiveDrag),
		DragUp:      lipgloss.Color(t.DragUp),
		DragDown:    lipgloss.Color(t.DragDown),
		WasDragged:  lipgloss.Color(t.WasDragged),
		Flash:       lipgloss.Color(t.Flash),
		RowSelected: lipgloss.Color(t.RowSelected),
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	modeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Padding(0, 1)
)

// styleCache memoizes composed cell styles per class set. The key is a
// structural hash of the tag list, so equal sets share one style.
type styleCache struct {
	theme  Theme
	styles map[uint64]lipgloss.Style
}

func newStyleCache(theme Theme) *styleCache {
	return &styleCache{theme: theme, styles: make(map[uint64]lipgloss.Style)}
}

// For returns the style for the given tags. transient tags (update flashes)
// are not part of the class set and are passed separately.
func (c *styleCache) For(classes grid.ClassSet, transient string) lipgloss.Style {
	tags := classes.Tags()
	if transient != "" {
		tags = append(tags, "flash:"+transient)
	}
	key, err := hashstructure.Hash(tags, hashstructure.FormatV2, nil)
	if err != nil {
		return c.compose(tags)
	}
	if s, ok := c.styles[key]; ok {
		return s
	}
	s := c.compose(tags)
	c.styles[key] = s
	return s
}

// Len reports how many distinct styles were composed.
func (c *styleCache) Len() int {
	return len(c.styles)
}

func (c *styleCache) compose(tags []string) lipgloss.Style {
	t := c.theme
	s := lipgloss.NewStyle()
	for _, tag := range tags {
		switch tag {
		case grid.ClassLocked:
			s = s.Foreground(t.Locked)
		case ClassRowSelected:
			s = s.Background(t.RowSelected)
		case grid.ClassWasDraggedOver:
			s = s.Background(t.WasDragged)
		case grid.ClassActiveDrag:
			s = s.Underline(true)
		case grid.ClassDraggedOverUp:
			s = s.Background(t.DragUp).Foreground(lipgloss.Color("0"))
		case grid.ClassDraggedOverDown:
			s = s.Background(t.DragDown).Foreground(lipgloss.Color("0"))
		case grid.ClassCopied:
			s = s.Foreground(t.Copied).Italic(true)
		case grid.ClassSelected:
			s = s.Background(t.Selected).Bold(true)
		case grid.ClassEditing:
			s = s.Background(t.Editing).Bold(true)
		default:
			if strings.HasPrefix(tag, "flash:") {
				s = s.Background(t.Flash).Foreground(lipgloss.Color("0"))
			}
		}
	}
	return s
}
