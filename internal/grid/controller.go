package grid

import (
	"io"
	"log/slog"
)

// Controller is the only writer of grid selection state. Cells receive
// read-only snapshots from Snapshot and call back into the controller through
// the Callbacks interface.
type Controller struct {
	selected *Selection
	copied   *Copied
	dragged  *Dragged

	// OnTerminate receives the drag span when a completed drag is terminated.
	OnTerminate func(Dragged)

	log         *slog.Logger
	terminated  int
	rows, cols  int
	boundsKnown bool
}

// NewController returns a controller with no selection. A nil logger discards.
func NewController(log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{log: log}
}

// SetBounds clamps future positions to a rows x cols grid.
func (c *Controller) SetBounds(rows, cols int) {
	c.rows, c.cols = rows, cols
	c.boundsKnown = true
}

func (c *Controller) inBounds(pos Position) bool {
	if !c.boundsKnown {
		return pos.RowIdx >= 0 && pos.Idx >= 0
	}
	return pos.RowIdx >= 0 && pos.RowIdx < c.rows && pos.Idx >= 0 && pos.Idx < c.cols
}

// Snapshot returns a copy of the current metadata with callbacks wired back
// to the controller. Mutating the snapshot does not affect the controller.
func (c *Controller) Snapshot() *Metadata {
	m := &Metadata{Callbacks: c}
	if c.selected != nil {
		s := *c.selected
		m.Selected = &s
	}
	if c.copied != nil {
		cp := *c.copied
		m.Copied = &cp
	}
	if c.dragged != nil {
		d := *c.dragged
		m.Dragged = &d
	}
	return m
}

// Selected returns the selected position, if any.
func (c *Controller) Selected() (Position, bool) {
	if c.selected == nil {
		return Position{}, false
	}
	return Position{RowIdx: c.selected.RowIdx, Idx: c.selected.Idx}, true
}

// Editing reports whether the selected cell is active.
func (c *Controller) Editing() bool {
	return c.selected != nil && c.selected.Active
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragged != nil
}

// Select moves the selection to pos and leaves edit mode. Out-of-bounds
// positions are ignored.
func (c *Controller) Select(pos Position) bool {
	if !c.inBounds(pos) {
		return false
	}
	c.selected = &Selection{RowIdx: pos.RowIdx, Idx: pos.Idx}
	c.log.Debug("select", "pos", pos)
	return true
}

// Move shifts the selection by the given deltas. Without a selection it
// selects the origin.
func (c *Controller) Move(dRow, dCol int) bool {
	pos, ok := c.Selected()
	if !ok {
		return c.Select(Position{})
	}
	return c.Select(Position{RowIdx: pos.RowIdx + dRow, Idx: pos.Idx + dCol})
}

// Activate puts the selected cell into edit mode.
func (c *Controller) Activate() bool {
	if c.selected == nil {
		return false
	}
	c.selected.Active = true
	c.log.Debug("activate", "row", c.selected.RowIdx, "col", c.selected.Idx)
	return true
}

// Deactivate leaves edit mode, keeping the selection.
func (c *Controller) Deactivate() {
	if c.selected != nil && c.selected.Active {
		c.selected.Active = false
		c.log.Debug("deactivate", "row", c.selected.RowIdx, "col", c.selected.Idx)
	}
}

// ClearSelection drops the selection entirely.
func (c *Controller) ClearSelection() {
	c.selected = nil
}

// Copy marks pos as the copy source.
func (c *Controller) Copy(pos Position) bool {
	if !c.inBounds(pos) {
		return false
	}
	c.copied = &Copied{RowIdx: pos.RowIdx, Idx: pos.Idx}
	c.log.Debug("copy", "pos", pos)
	return true
}

// CopySource returns the copy source, if any.
func (c *Controller) CopySource() (Position, bool) {
	if c.copied == nil {
		return Position{}, false
	}
	return Position{RowIdx: c.copied.RowIdx, Idx: c.copied.Idx}, true
}

// ClearCopy drops the copy source.
func (c *Controller) ClearCopy() {
	c.copied = nil
}

// StartDrag anchors a drag-fill at pos.
func (c *Controller) StartDrag(pos Position) bool {
	if !c.inBounds(pos) {
		return false
	}
	c.dragged = &Dragged{RowIdx: pos.RowIdx, Idx: pos.Idx, OverRowIdx: pos.RowIdx}
	c.log.Debug("drag start", "pos", pos)
	return true
}

// DragOver moves the drag pointer to rowIdx within the anchor column.
func (c *Controller) DragOver(rowIdx int) bool {
	if c.dragged == nil || c.dragged.Complete {
		return false
	}
	if !c.inBounds(Position{RowIdx: rowIdx, Idx: c.dragged.Idx}) {
		return false
	}
	c.dragged.OverRowIdx = rowIdx
	return true
}

// DragBy moves the drag pointer by delta rows.
func (c *Controller) DragBy(delta int) bool {
	if c.dragged == nil {
		return false
	}
	return c.DragOver(c.dragged.OverRowIdx + delta)
}

// CompleteDrag marks the drag complete. Cells observing the completed drag
// call HandleTerminateDrag on their next evaluation.
func (c *Controller) CompleteDrag() bool {
	if c.dragged == nil {
		return false
	}
	c.dragged.Complete = true
	c.log.Debug("drag complete", "anchor", c.dragged.RowIdx, "over", c.dragged.OverRowIdx, "col", c.dragged.Idx)
	return true
}

// CancelDrag abandons the drag without terminating it.
func (c *Controller) CancelDrag() {
	if c.dragged != nil {
		c.log.Debug("drag cancel", "col", c.dragged.Idx)
	}
	c.dragged = nil
}

// HandleTerminateDrag resets drag state after completion and hands the span
// to OnTerminate. Without a completed drag it does nothing.
func (c *Controller) HandleTerminateDrag() {
	if c.dragged == nil || !c.dragged.Complete {
		return
	}
	span := *c.dragged
	c.dragged = nil
	c.terminated++
	c.log.Debug("drag terminate", "anchor", span.RowIdx, "over", span.OverRowIdx, "col", span.Idx)
	if c.OnTerminate != nil {
		c.OnTerminate(span)
	}
}

// Terminations counts drags that were terminated.
func (c *Controller) Terminations() int {
	return c.terminated
}

// OnCellClick selects the clicked cell.
func (c *Controller) OnCellClick(pos Position) {
	c.Select(pos)
}

// OnCellDoubleClick selects the cell and opens its editor.
func (c *Controller) OnCellDoubleClick(pos Position) {
	if c.Select(pos) {
		c.Activate()
	}
}
