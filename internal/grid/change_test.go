package grid

import "testing"

func baseProps() Props {
	col := &Column{Key: "name", Width: 100, Left: 0}
	return Props{
		Position: pos(3, 0),
		Column:   col,
		Row:      NewRow("r3", map[string]any{"name": "ada"}),
		Value:    "ada",
		Height:   1,
		Meta:     &Metadata{Selected: &Selection{RowIdx: 0, Idx: 2}},
	}
}

func TestShouldRecomputeEqualProps(t *testing.T) {
	p := baseProps()
	if ShouldRecompute(p, p) {
		t.Error("identical props must not recompute")
	}

	// A fresh but structurally equal snapshot is still the same cell.
	next := p
	next.Meta = &Metadata{Selected: &Selection{RowIdx: 0, Idx: 2}}
	if ShouldRecompute(p, next) {
		t.Error("equal metadata snapshots must not recompute")
	}
}

func TestShouldRecompute(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Props)
		want   bool
	}{
		{"column width", func(p *Props) { p.Column = &Column{Key: "name", Width: 120} }, true},
		{"column left", func(p *Props) { p.Column = &Column{Key: "name", Width: 100, Left: 5} }, true},
		{"same geometry new column", func(p *Props) { p.Column = &Column{Key: "name", Width: 100} }, false},
		{"row reference", func(p *Props) { p.Row = p.Row.With("name", "ada") }, true},
		{"height", func(p *Props) { p.Height = 2 }, true},
		{"row index", func(p *Props) { p.RowIdx = 4 }, true},
		{"row selected flag", func(p *Props) { p.IsRowSelected = true }, true},
		{"value", func(p *Props) { p.Value = "grace" }, true},
		{"value equal", func(p *Props) { p.Value = "ada" }, false},
		{"selection enters column", func(p *Props) {
			p.Meta = &Metadata{Selected: &Selection{RowIdx: 1, Idx: 0}}
		}, true},
		{"selection moves elsewhere", func(p *Props) {
			p.Meta = &Metadata{Selected: &Selection{RowIdx: 1, Idx: 1}}
		}, false},
		{"selection cleared", func(p *Props) { p.Meta = &Metadata{} }, true},
		{"drag starts", func(p *Props) {
			p.Meta = &Metadata{
				Selected: &Selection{RowIdx: 0, Idx: 2},
				Dragged:  &Dragged{RowIdx: 0, Idx: 2, OverRowIdx: 0},
			}
		}, true},
		{"copy starts", func(p *Props) {
			p.Meta = &Metadata{
				Selected: &Selection{RowIdx: 0, Idx: 2},
				Copied:   &Copied{RowIdx: 0, Idx: 2},
			}
		}, true},
		{"cell becomes selected", func(p *Props) {
			p.Meta = &Metadata{Selected: &Selection{RowIdx: 3, Idx: 0}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := baseProps()
			next := prev
			tt.mutate(&next)
			if got := ShouldRecompute(prev, next); got != tt.want {
				t.Errorf("ShouldRecompute = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRecomputeWidthScenario(t *testing.T) {
	prev := baseProps()
	next := prev
	next.Column = &Column{Key: prev.Column.Key, Width: 120, Left: prev.Column.Left}
	if !ShouldRecompute(prev, next) {
		t.Error("width 100 -> 120 must recompute")
	}
}

func TestShouldRecomputeSelectedCellAlways(t *testing.T) {
	p := baseProps()
	p.Meta = &Metadata{Selected: &Selection{RowIdx: 3, Idx: 0}}
	next := p
	next.Meta = &Metadata{Selected: &Selection{RowIdx: 3, Idx: 0}}
	if !ShouldRecompute(p, next) {
		t.Error("the selected cell always re-evaluates")
	}
}

func TestSameValue(t *testing.T) {
	m := map[string]int{"a": 1}
	s := []int{1, 2}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, 0, false},
		{"ints", 3, 3, true},
		{"int vs float", 3, 3.0, false},
		{"strings", "x", "y", false},
		{"same map", m, m, true},
		{"equal maps", map[string]int{"a": 1}, map[string]int{"a": 1}, false},
		{"same slice", s, s, true},
		{"resliced", s, s[:1], false},
		{"equal slices", []int{1, 2}, []int{1, 2}, false},
		{"structs", pos(1, 2), pos(1, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameValue(tt.a, tt.b); got != tt.want {
				t.Errorf("sameValue(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
