package grid

// Evaluation is everything the rendering layer needs for one cell update.
type Evaluation struct {
	// Recompute is false when the previously rendered output is still valid.
	// The remaining fields are only filled when it is true.
	Recompute bool

	State    State
	Classes  ClassSet
	Dispatch Dispatch
	Deps     any
	Flash    []FlashEvent
}

// Cell tracks the last props a grid cell was rendered from.
type Cell struct {
	// Class is an extra caller-supplied class list.
	Class string

	prev    Props
	primed  bool
	updated bool
}

// Props returns the props of the last evaluation.
func (c *Cell) Props() (Props, bool) {
	return c.prev, c.primed
}

// Evaluate decides whether next needs rendering and, if so, resolves it.
// selectedColumn is the column holding the selection before this update; it
// gates the transient update class.
func (c *Cell) Evaluate(next Props, selectedColumn *Column) Evaluation {
	if c.primed && !ShouldRecompute(c.prev, next) {
		c.prev = next
		c.updated = false
		return Evaluation{}
	}

	st := Resolve(next.Position, next.Meta)
	ev := Evaluation{
		Recompute: true,
		State:     st,
		Classes:   BuildClasses(next.Column, c.Class, st),
		Dispatch:  DispatchFormatter(next, st),
	}
	if ev.Dispatch.Kind != KindEditor {
		ev.Deps = FormatterDependencies(next.Column, next.Row)
	}
	if c.primed {
		ev.Flash = UpdateFlash(c.prev, next, selectedColumn)
	}
	c.prev = next
	c.primed = true
	c.updated = true
	return ev
}

// AfterUpdate runs the post-render hook of a recomputed cell: a completed
// drag in its metadata is handed back to the controller, once per evaluation.
func (c *Cell) AfterUpdate() {
	if !c.updated {
		return
	}
	c.updated = false
	if d := c.prev.Meta.dragged(); d != nil && d.Complete {
		if cb := c.prev.Meta.callbacks(); cb != nil {
			cb.HandleTerminateDrag()
		}
	}
}

// Click forwards a click on the cell to the grid.
func (c *Cell) Click() {
	if cb := c.prev.Meta.callbacks(); cb != nil {
		cb.OnCellClick(c.prev.Position)
	}
}

// DoubleClick forwards a double click on the cell to the grid.
func (c *Cell) DoubleClick() {
	if cb := c.prev.Meta.callbacks(); cb != nil {
		cb.OnCellDoubleClick(c.prev.Position)
	}
}
