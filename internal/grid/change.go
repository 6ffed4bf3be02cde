package grid

import "reflect"

// Props are the inputs a cell is rendered from.
type Props struct {
	Position
	Column        *Column
	Row           *Row
	Value         any
	Height        int
	IsRowSelected bool
	Meta          *Metadata
}

// ShouldRecompute reports whether a cell rendered from prev must be rendered
// again for next. A false result guarantees the previous output is still valid.
func ShouldRecompute(prev, next Props) bool {
	return columnWidth(prev.Column) != columnWidth(next.Column) ||
		columnLeft(prev.Column) != columnLeft(next.Column) ||
		prev.Row != next.Row ||
		prev.Height != next.Height ||
		prev.RowIdx != next.RowIdx ||
		prev.IsRowSelected != next.IsRowSelected ||
		IsSelectionBoundaryChanging(next.Position, prev.Meta, next.Meta) ||
		IsDraggedCellChanging(next.Position, prev.Meta, next.Meta) ||
		IsCopyCellChanging(next.Position, prev.Meta, next.Meta) ||
		IsSelected(next.Position, next.Meta) ||
		!sameValue(prev.Value, next.Value)
}

func columnWidth(c *Column) int {
	if c == nil {
		return 0
	}
	return c.Width
}

func columnLeft(c *Column) int {
	if c == nil {
		return 0
	}
	return c.Left
}

// sameValue compares by equality for comparable values and by reference for
// maps, slices, funcs, pointers and channels. It never descends into values.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		if va.Kind() == reflect.Slice && va.Len() != vb.Len() {
			return false
		}
		return va.Pointer() == vb.Pointer()
	}
	if !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}
