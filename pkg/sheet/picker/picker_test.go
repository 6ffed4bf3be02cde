package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func items(labels ...string) []Item {
	out := make([]Item, len(labels))
	for i, l := range labels {
		out[i] = Item{ID: l, Label: l, Data: i}
	}
	return out
}

func TestPickerFilter(t *testing.T) {
	p := New("Columns", items("id", "name", "price", "quantity"))
	if p.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", p.Len())
	}

	p.SetFilter("pr")
	if p.Len() != 1 {
		t.Fatalf("Len() after filter = %d, want 1", p.Len())
	}
	it, ok := p.Selected()
	if !ok || it.ID != "price" {
		t.Errorf("Selected() = %v, %v; want price", it, ok)
	}

	p.SetFilter("zzz")
	if _, ok := p.Selected(); ok {
		t.Error("Selected() with no matches should be false")
	}

	p.SetFilter("")
	if p.Len() != 4 {
		t.Errorf("Len() after clearing = %d, want 4", p.Len())
	}
}

func TestPickerTypingFilters(t *testing.T) {
	p := New("Columns", items("id", "name", "price"))
	for _, r := range "nm" {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	it, ok := p.Selected()
	if !ok || it.ID != "name" {
		t.Errorf("Selected() = %v; want name", it)
	}
}

func TestPickerNavigation(t *testing.T) {
	p := New("Columns", items("a", "b", "c"))

	tests := []struct {
		key  tea.KeyMsg
		want string
		act  Action
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, "b", ActionNone},
		{tea.KeyMsg{Type: tea.KeyDown}, "c", ActionNone},
		{tea.KeyMsg{Type: tea.KeyDown}, "c", ActionNone},
		{tea.KeyMsg{Type: tea.KeyUp}, "b", ActionNone},
		{tea.KeyMsg{Type: tea.KeyEnter}, "b", ActionChoose},
	}
	for i, tt := range tests {
		act, _ := p.Update(tt.key)
		if act != tt.act {
			t.Errorf("step %d: action = %d, want %d", i, act, tt.act)
		}
		if it, _ := p.Selected(); it.ID != tt.want {
			t.Errorf("step %d: selected = %q, want %q", i, it.ID, tt.want)
		}
	}

	if act, _ := p.Update(tea.KeyMsg{Type: tea.KeyEsc}); act != ActionCancel {
		t.Errorf("esc action = %d, want cancel", act)
	}
}

func TestPickerEnterWithoutMatches(t *testing.T) {
	p := New("Columns", items("a"))
	p.SetFilter("zzz")
	if act, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); act != ActionNone {
		t.Errorf("enter with no matches = %d, want none", act)
	}
}

func TestPickerViewScrolls(t *testing.T) {
	p := New("Columns", items("c0", "c1", "c2", "c3", "c4", "c5"), WithMaxVisible(3), WithWidth(30))

	view := p.View()
	if !strings.Contains(view, "more below") || strings.Contains(view, "more above") {
		t.Errorf("initial view indicators wrong:\n%s", view)
	}

	for i := 0; i < 5; i++ {
		p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	view = p.View()
	if !strings.Contains(view, "more above") || strings.Contains(view, "more below") {
		t.Errorf("scrolled view indicators wrong:\n%s", view)
	}
	if !strings.Contains(view, "c5") || strings.Contains(view, "c0") {
		t.Errorf("scrolled view should show the tail:\n%s", view)
	}
}
