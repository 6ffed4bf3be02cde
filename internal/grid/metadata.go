// Package grid holds the per-cell state classification and change detection
// for the data grid.
//
// Cells never own grid state. Every evaluation receives a read-only *Metadata
// snapshot produced by the Controller, resolves it against the cell's Position,
// and returns plain values (State, ClassSet, Dispatch). Absent metadata is never
// an error: a nil Metadata, or a nil Selected/Copied/Dragged entry, simply means
// "no special visual state".
package grid

import "fmt"

// Position addresses a cell. Idx is the column index.
type Position struct {
	RowIdx int
	Idx    int
}

func (p Position) String() string {
	return fmt.Sprintf("r%d:c%d", p.RowIdx, p.Idx)
}

// Selection is the single selected cell of the grid.
type Selection struct {
	RowIdx int
	Idx    int
	Active bool // editor is open on the selected cell
}

// Copied is the cell currently held as the copy source.
type Copied struct {
	RowIdx int
	Idx    int
}

// Dragged describes an in-progress drag-fill. RowIdx is the anchor row and
// OverRowIdx is the row currently under the pointer; both are in column Idx.
type Dragged struct {
	RowIdx     int
	Idx        int
	OverRowIdx int
	Complete   bool
}

// Callbacks are the grid controller entry points a cell may invoke.
type Callbacks interface {
	OnCellClick(pos Position)
	OnCellDoubleClick(pos Position)
	HandleTerminateDrag()
}

// Metadata is the grid-wide selection snapshot shared by every cell.
type Metadata struct {
	Selected *Selection
	Copied   *Copied
	Dragged  *Dragged

	Callbacks Callbacks
}

func (m *Metadata) selected() *Selection {
	if m == nil {
		return nil
	}
	return m.Selected
}

func (m *Metadata) copied() *Copied {
	if m == nil {
		return nil
	}
	return m.Copied
}

func (m *Metadata) dragged() *Dragged {
	if m == nil {
		return nil
	}
	return m.Dragged
}

func (m *Metadata) callbacks() Callbacks {
	if m == nil {
		return nil
	}
	return m.Callbacks
}

// Span returns the inclusive row range covered by the drag, lowest first.
func (d Dragged) Span() (from, to int) {
	if d.OverRowIdx < d.RowIdx {
		return d.OverRowIdx, d.RowIdx
	}
	return d.RowIdx, d.OverRowIdx
}
