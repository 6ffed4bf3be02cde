// Package picker is a filterable list dialog for the sheet. Typing narrows
// the items with fuzzy matching; enter returns the selected item.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Item is one entry of the list.
type Item struct {
	ID    string
	Label string
	Data  any
}

// Action is what a key press did to the picker.
type Action int

const (
	ActionNone Action = iota
	ActionChoose
	ActionCancel
)

// Option configures a Picker.
type Option func(*Picker)

// WithMaxVisible sets how many items are shown at once.
func WithMaxVisible(n int) Option {
	return func(p *Picker) {
		if n > 0 {
			p.maxVisible = n
		}
	}
}

// WithWidth sets the dialog width.
func WithWidth(w int) Option {
	return func(p *Picker) {
		if w > 10 {
			p.width = w
		}
	}
}

// Picker is a titled list with a filter input.
type Picker struct {
	title        string
	items        []Item
	visible      []match
	selected     int
	scrollOffset int
	maxVisible   int
	width        int
	filter       textinput.Model
}

type match struct {
	item    Item
	indexes []int
}

// New returns a picker over items with an empty filter.
func New(title string, items []Item, opts ...Option) *Picker {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.Focus()

	p := &Picker{
		title:      title,
		items:      items,
		maxVisible: 8,
		width:      40,
		filter:     ti,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.refilter()
	return p
}

// Selected returns the highlighted item.
func (p *Picker) Selected() (Item, bool) {
	if p.selected < 0 || p.selected >= len(p.visible) {
		return Item{}, false
	}
	return p.visible[p.selected].item, true
}

// Len is the number of items passing the filter.
func (p *Picker) Len() int { return len(p.visible) }

// SetFilter replaces the filter text.
func (p *Picker) SetFilter(s string) {
	p.filter.SetValue(s)
	p.refilter()
}

func (p *Picker) refilter() {
	q := strings.TrimSpace(p.filter.Value())
	p.visible = p.visible[:0]
	if q == "" {
		for _, it := range p.items {
			p.visible = append(p.visible, match{item: it})
		}
	} else {
		labels := make([]string, len(p.items))
		for i, it := range p.items {
			labels[i] = it.Label
		}
		for _, m := range fuzzy.Find(q, labels) {
			p.visible = append(p.visible, match{item: p.items[m.Index], indexes: m.MatchedIndexes})
		}
	}
	p.selected = 0
	p.scrollOffset = 0
}

// Update handles a key press.
func (p *Picker) Update(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionCancel, nil
	case "enter":
		if _, ok := p.Selected(); ok {
			return ActionChoose, nil
		}
		return ActionNone, nil
	case "up", "ctrl+p", "shift+tab":
		if p.selected > 0 {
			p.selected--
		}
		return ActionNone, nil
	case "down", "ctrl+n", "tab":
		if p.selected < len(p.visible)-1 {
			p.selected++
		}
		return ActionNone, nil
	}

	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.refilter()
	}
	return ActionNone, cmd
}

// View renders the dialog.
func (p *Picker) View() string {
	inner := p.width - 4

	var sb strings.Builder
	sb.WriteString(Title.Render(p.title))
	sb.WriteString("\n")
	p.filter.Width = inner - 2
	sb.WriteString(p.filter.View())
	sb.WriteString("\n\n")
	sb.WriteString(p.renderList())
	sb.WriteString("\n\n")
	sb.WriteString(MutedText.Render("enter jump · esc close"))

	return Frame.Width(p.width).Render(sb.String())
}

func (p *Picker) renderList() string {
	if len(p.visible) == 0 {
		return MutedText.Render("(no matches)")
	}

	visibleCount := min(p.maxVisible, len(p.visible))
	if p.selected < p.scrollOffset {
		p.scrollOffset = p.selected
	} else if p.selected >= p.scrollOffset+visibleCount {
		p.scrollOffset = p.selected - visibleCount + 1
	}
	p.scrollOffset = max(0, min(p.scrollOffset, len(p.visible)-visibleCount))

	var lines []string
	if p.scrollOffset > 0 {
		lines = append(lines, MutedText.Render("↑ more above"))
	}
	for i := 0; i < visibleCount; i++ {
		idx := p.scrollOffset + i
		m := p.visible[idx]
		style := ItemNormal
		cursor := "  "
		if idx == p.selected {
			style = ItemSelected
			cursor = Cursor.Render("> ")
		}
		lines = append(lines, cursor+highlight(m.item.Label, m.indexes, style))
	}
	if p.scrollOffset+visibleCount < len(p.visible) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}
	return strings.Join(lines, "\n")
}

// highlight renders the fuzzy-matched runes of label in the match style.
func highlight(label string, indexes []int, base lipgloss.Style) string {
	if len(indexes) == 0 {
		return base.Render(label)
	}
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i] = true
	}
	var sb strings.Builder
	for i, r := range label {
		if hit[i] {
			sb.WriteString(Match.Render(string(r)))
		} else {
			sb.WriteString(base.Render(string(r)))
		}
	}
	return sb.String()
}
