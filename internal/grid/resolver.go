package grid

// Direction is the direction a drag-fill proceeds relative to a dragged-over cell.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUpward
	DirectionDownward
)

func (d Direction) String() string {
	switch d {
	case DirectionUpward:
		return "upward"
	case DirectionDownward:
		return "downward"
	default:
		return "none"
	}
}

// State is the resolved visual state of one cell for one evaluation.
// It is derived from Metadata every time and never stored across renders.
type State struct {
	Selected       bool
	Active         bool
	Copied         bool
	DraggedOver    bool
	OverUpward     bool
	OverDownward   bool
	WasDraggedOver bool

	// RequestFocus asks the host to move input focus to this cell.
	RequestFocus bool
}

// Direction returns the drag direction encoded by OverUpward/OverDownward.
func (s State) Direction() Direction {
	switch {
	case s.OverUpward:
		return DirectionUpward
	case s.OverDownward:
		return DirectionDownward
	default:
		return DirectionNone
	}
}

// IsSelected reports whether the selection is exactly this cell.
func IsSelected(pos Position, meta *Metadata) bool {
	sel := meta.selected()
	return sel != nil && sel.RowIdx == pos.RowIdx && sel.Idx == pos.Idx
}

// IsColumnSelected reports whether the selection lies in this cell's column.
func IsColumnSelected(pos Position, meta *Metadata) bool {
	sel := meta.selected()
	return sel != nil && sel.Idx == pos.Idx
}

// IsActive reports whether this cell is selected and in edit mode.
func IsActive(pos Position, meta *Metadata) bool {
	return IsSelected(pos, meta) && meta.selected().Active
}

// IsCopied reports whether this cell is the copy source.
func IsCopied(pos Position, meta *Metadata) bool {
	c := meta.copied()
	return c != nil && c.RowIdx == pos.RowIdx && c.Idx == pos.Idx
}

// IsDraggedOver reports whether the drag pointer is currently over this cell.
func IsDraggedOver(pos Position, meta *Metadata) bool {
	d := meta.dragged()
	return d != nil && d.OverRowIdx == pos.RowIdx && d.Idx == pos.Idx
}

// DraggedOverDirection returns where the drag target sits relative to its anchor.
// A selected cell, or a target on the anchor row, resolves to DirectionNone.
func DraggedOverDirection(pos Position, meta *Metadata) Direction {
	if IsSelected(pos, meta) || !IsDraggedOver(pos, meta) {
		return DirectionNone
	}
	anchor := meta.dragged().RowIdx
	switch {
	case pos.RowIdx < anchor:
		return DirectionUpward
	case pos.RowIdx > anchor:
		return DirectionDownward
	default:
		return DirectionNone
	}
}

// WasDraggedOver reports whether the cell lies strictly inside the drag span.
// The anchor and target rows themselves are excluded.
func WasDraggedOver(pos Position, meta *Metadata) bool {
	d := meta.dragged()
	if d == nil || d.Idx != pos.Idx {
		return false
	}
	lo, hi := d.OverRowIdx, d.RowIdx
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo < pos.RowIdx && pos.RowIdx < hi
}

// Resolve computes the full State of a cell.
func Resolve(pos Position, meta *Metadata) State {
	st := State{
		Selected:       IsSelected(pos, meta),
		Copied:         IsCopied(pos, meta),
		DraggedOver:    IsDraggedOver(pos, meta),
		WasDraggedOver: WasDraggedOver(pos, meta),
	}
	st.Active = st.Selected && meta.selected().Active
	switch DraggedOverDirection(pos, meta) {
	case DirectionUpward:
		st.OverUpward = true
	case DirectionDownward:
		st.OverDownward = true
	}
	st.RequestFocus = st.Selected && !st.Active
	return st
}

// IsSelectionBoundaryChanging is the column-scoped dirty check for selection.
// A transition to or from "no selection" is always treated as changing, even
// for columns the selection never touched. An unchanged selection is never
// dirty, even in its own column, so equal props never force a recompute.
func IsSelectionBoundaryChanging(pos Position, prev, next *Metadata) bool {
	p, n := prev.selected(), next.selected()
	switch {
	case p == nil && n == nil:
		return false
	case p == nil || n == nil:
		return true
	case *p == *n:
		return false
	}
	return pos.Idx == p.Idx || pos.Idx == n.Idx
}

// IsDraggedCellChanging is the column-scoped dirty check for drag state.
func IsDraggedCellChanging(pos Position, prev, next *Metadata) bool {
	p, n := prev.dragged(), next.dragged()
	switch {
	case p == nil && n == nil:
		return false
	case p == nil || n == nil:
		return true
	case *p == *n:
		return false
	}
	return pos.Idx == p.Idx || pos.Idx == n.Idx
}

// IsCopyCellChanging is the column-scoped dirty check for the copy source.
func IsCopyCellChanging(pos Position, prev, next *Metadata) bool {
	p, n := prev.copied(), next.copied()
	switch {
	case p == nil && n == nil:
		return false
	case p == nil || n == nil:
		return true
	case *p == *n:
		return false
	}
	return pos.Idx == p.Idx || pos.Idx == n.Idx
}
