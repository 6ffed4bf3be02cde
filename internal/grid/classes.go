package grid

import "strings"

// Class tags emitted for the rendering layer.
const (
	ClassBase            = "grid-cell"
	ClassLocked          = "grid-cell--locked"
	ClassSelected        = "selected"
	ClassEditing         = "editing"
	ClassCopied          = "copied"
	ClassActiveDrag      = "active-drag-cell"
	ClassDraggedOverUp   = "is-dragged-over-up"
	ClassDraggedOverDown = "is-dragged-over-down"
	ClassWasDraggedOver  = "was-dragged-over"
)

// ClassSet is an ordered set of class tags. The first insertion of a tag fixes
// its position; later duplicates and empty strings are ignored.
type ClassSet struct {
	tags []string
}

// Add inserts each tag, splitting space-separated lists.
func (s *ClassSet) Add(tags ...string) {
	for _, t := range tags {
		for _, f := range strings.Fields(t) {
			if !s.Has(f) {
				s.tags = append(s.tags, f)
			}
		}
	}
}

// AddIf inserts tag when cond holds.
func (s *ClassSet) AddIf(cond bool, tag string) {
	if cond {
		s.Add(tag)
	}
}

// Has reports whether tag is in the set.
func (s ClassSet) Has(tag string) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns a copy of the tags in insertion order.
func (s ClassSet) Tags() []string {
	return append([]string(nil), s.tags...)
}

func (s ClassSet) Len() int { return len(s.tags) }

func (s ClassSet) String() string {
	return strings.Join(s.tags, " ")
}

// BuildClasses projects a resolved state and its column onto class tags.
// extra is an optional caller-supplied class list.
func BuildClasses(col *Column, extra string, st State) ClassSet {
	var s ClassSet
	if col != nil {
		s.Add(col.CellClass)
	}
	s.Add(ClassBase, extra)
	s.AddIf(col != nil && col.Locked, ClassLocked)

	s.AddIf(st.Selected && !st.Active, ClassSelected)
	s.AddIf(st.Active, ClassEditing)
	s.AddIf(st.Copied, ClassCopied)
	s.AddIf(st.Selected || st.DraggedOver, ClassActiveDrag)
	s.AddIf(st.OverUpward, ClassDraggedOverUp)
	s.AddIf(st.OverDownward, ClassDraggedOverDown)
	s.AddIf(st.WasDraggedOver, ClassWasDraggedOver)
	return s
}

// FlashPhase is one half of the transient update-class retrigger.
type FlashPhase int

const (
	FlashClear FlashPhase = iota
	FlashApply
)

func (p FlashPhase) String() string {
	if p == FlashApply {
		return "apply"
	}
	return "clear"
}

// FlashEvent tells the host to clear or apply a transient class on a cell.
type FlashEvent struct {
	Phase FlashPhase
	Tag   string
}

// UpdateFlash returns the clear/apply pair for the column's transient update
// class. It fires only when the row reference changed and a selection column
// is known. The pair is emitted every time, so identical consecutive updates
// still retrigger the transition.
func UpdateFlash(prev, next Props, selectedColumn *Column) []FlashEvent {
	col := next.Column
	if col == nil || col.UpdateCellClass == nil || selectedColumn == nil {
		return nil
	}
	if prev.Row == next.Row {
		return nil
	}
	tag := col.UpdateCellClass(selectedColumn, col, !sameValue(prev.Value, next.Value))
	if tag == "" {
		return nil
	}
	return []FlashEvent{
		{Phase: FlashClear, Tag: tag},
		{Phase: FlashApply, Tag: tag},
	}
}
