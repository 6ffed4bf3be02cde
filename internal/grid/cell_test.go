package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCallbacks struct {
	clicks, doubleClicks []Position
	terminates           int
}

func (r *recordingCallbacks) OnCellClick(p Position)       { r.clicks = append(r.clicks, p) }
func (r *recordingCallbacks) OnCellDoubleClick(p Position) { r.doubleClicks = append(r.doubleClicks, p) }
func (r *recordingCallbacks) HandleTerminateDrag()         { r.terminates++ }

func TestCellEvaluateFirstAndSkip(t *testing.T) {
	var cell Cell
	p := baseProps()

	ev := cell.Evaluate(p, nil)
	require.True(t, ev.Recompute, "first evaluation always renders")
	assert.Equal(t, KindDefault, ev.Dispatch.Kind)
	assert.Equal(t, "ada", ev.Dispatch.Render(p.Value, ev.Deps))

	ev = cell.Evaluate(p, nil)
	assert.False(t, ev.Recompute, "unchanged props skip rendering")

	next := p
	next.Column = &Column{Key: "name", Width: 120}
	ev = cell.Evaluate(next, nil)
	assert.True(t, ev.Recompute, "width change renders")
}

func TestCellEvaluateEditor(t *testing.T) {
	var cell Cell
	p := baseProps()
	p.Meta = &Metadata{Selected: &Selection{RowIdx: 3, Idx: 0, Active: true}}

	ev := cell.Evaluate(p, nil)
	require.Equal(t, KindEditor, ev.Dispatch.Kind)
	require.NotNil(t, ev.Dispatch.Editor)
	assert.Equal(t, p.Position, ev.Dispatch.Editor.Pos)
	assert.Same(t, p.Row, ev.Dispatch.Editor.Row)
	assert.Nil(t, ev.Deps)
	assert.True(t, ev.Classes.Has(ClassEditing))
	assert.False(t, ev.State.RequestFocus)
}

func TestCellCustomFormatterDeps(t *testing.T) {
	col := &Column{
		Key: "owner_id",
		Formatter: FormatterFunc(func(v, deps any) string {
			return deps.(string)
		}),
		RowMetaData: func(row *Row, _ *Column) any {
			return row.Get("owner_name")
		},
	}
	p := baseProps()
	p.Column = col
	p.Row = NewRow("1", map[string]any{"owner_id": 7, "owner_name": "grace"})
	p.Value = 7

	var cell Cell
	ev := cell.Evaluate(p, nil)
	require.Equal(t, KindCustom, ev.Dispatch.Kind)
	assert.Equal(t, "grace", ev.Dispatch.Render(p.Value, ev.Deps))
}

func TestCellTerminatesCompletedDragOnce(t *testing.T) {
	cb := &recordingCallbacks{}
	p := baseProps()
	p.Position = pos(3, 0)
	p.Meta = &Metadata{
		Dragged:   &Dragged{RowIdx: 5, Idx: 0, OverRowIdx: 2, Complete: false},
		Callbacks: cb,
	}

	var cell Cell
	cell.Evaluate(p, nil)
	cell.AfterUpdate()
	assert.Equal(t, 0, cb.terminates, "incomplete drag does not terminate")

	next := p
	next.Meta = &Metadata{
		Dragged:   &Dragged{RowIdx: 5, Idx: 0, OverRowIdx: 2, Complete: true},
		Callbacks: cb,
	}
	ev := cell.Evaluate(next, nil)
	require.True(t, ev.Recompute, "drag completion is a change in the drag column")
	cell.AfterUpdate()
	cell.AfterUpdate()
	assert.Equal(t, 1, cb.terminates)
}

func TestCellTerminateWithController(t *testing.T) {
	c := NewController(nil)
	c.StartDrag(pos(5, 0))
	c.DragOver(2)

	cells := make([]Cell, 6)
	render := func() {
		meta := c.Snapshot()
		for row := range cells {
			p := Props{Position: pos(row, 0), Column: &Column{Width: 10}, Height: 1, Meta: meta}
			cells[row].Evaluate(p, nil)
		}
		for row := range cells {
			cells[row].AfterUpdate()
		}
	}

	render()
	c.CompleteDrag()
	render()
	assert.Equal(t, 1, c.Terminations(), "every cell sees the completed drag, the controller terminates once")
	assert.False(t, c.Dragging())

	render()
	assert.Equal(t, 1, c.Terminations())
}

func TestCellClickForwarding(t *testing.T) {
	var cell Cell
	cell.Click()
	cell.DoubleClick()

	cb := &recordingCallbacks{}
	p := baseProps()
	p.Meta = &Metadata{Callbacks: cb}
	cell.Evaluate(p, nil)
	cell.Click()
	cell.DoubleClick()
	assert.Equal(t, []Position{p.Position}, cb.clicks)
	assert.Equal(t, []Position{p.Position}, cb.doubleClicks)
}

func TestCellFlashOnRowChange(t *testing.T) {
	col := &Column{
		Key:   "qty",
		Width: 10,
		UpdateCellClass: func(_, _ *Column, changing bool) string {
			if changing {
				return "value-changed"
			}
			return ""
		},
	}
	row := NewRow("1", map[string]any{"qty": 1})
	p := Props{Position: pos(0, 0), Column: col, Row: row, Value: 1}

	var cell Cell
	ev := cell.Evaluate(p, col)
	assert.Empty(t, ev.Flash, "first render has nothing to compare with")

	next := p
	next.Row = row.With("qty", 2)
	next.Value = 2
	ev = cell.Evaluate(next, col)
	assert.Equal(t, []FlashEvent{
		{Phase: FlashClear, Tag: "value-changed"},
		{Phase: FlashApply, Tag: "value-changed"},
	}, ev.Flash)
}
