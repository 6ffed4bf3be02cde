// Package mouse maps terminal mouse events onto rectangular hit regions.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickThreshold is the maximum gap between two clicks on the same
// region for them to count as a double click.
const DoubleClickThreshold = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in registration order. Later regions win on overlap.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (m *HitMap) AddRect(id string, x, y, w, h int, data any) {
	m.regions = append(m.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Test returns the topmost region at (x, y), or nil.
func (m *HitMap) Test(x, y int) *Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			r := m.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all regions. Call it before each render.
func (m *HitMap) Clear() {
	m.regions = m.regions[:0]
}

// Regions returns the registered regions.
func (m *HitMap) Regions() []Region {
	return m.regions
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double-click"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	case ActionDrag:
		return "drag"
	case ActionDragEnd:
		return "drag-end"
	default:
		return "none"
	}
}

// MouseAction is the classified result of one mouse event.
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int

	DragDX, DragDY int
}

// ClickResult is returned by HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks click timing and drag state across events.
type Handler struct {
	HitMap *HitMap

	now func() time.Time

	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragX, dragY   int
	dragRegion     string
	dragStartValue int
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick resolves a click and detects double clicks. A double click
// resets the sequence so a third click is single again.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := h.now()

	res := ClickResult{Region: region}
	if region != nil && region.ID == h.lastClickID && now.Sub(h.lastClickTime) <= DoubleClickThreshold {
		res.IsDoubleClick = true
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
		return res
	}

	h.lastClickID = ""
	if region != nil {
		h.lastClickID = region.ID
	}
	h.lastClickTime = now
	return res
}

// StartDrag begins a drag at (x, y). startValue is caller state captured at
// drag start, e.g. the anchor row.
func (h *Handler) StartDrag(x, y int, regionID string, startValue int) {
	h.dragging = true
	h.dragX, h.dragY = x, y
	h.dragRegion = regionID
	h.dragStartValue = startValue
}

// EndDrag stops the current drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

func (h *Handler) IsDragging() bool   { return h.dragging }
func (h *Handler) DragRegion() string { return h.dragRegion }
func (h *Handler) DragStartValue() int {
	return h.dragStartValue
}

// DragDelta returns the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragX, y - h.dragY
}

// Clear drops all hit regions.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleMouse classifies a bubbletea mouse message.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	action := MouseAction{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			action.Type = ActionScrollUp
			if msg.Shift {
				action.Type = ActionScrollLeft
			}
			return action
		case tea.MouseButtonWheelDown:
			action.Type = ActionScrollDown
			if msg.Shift {
				action.Type = ActionScrollRight
			}
			return action
		case tea.MouseButtonWheelLeft:
			action.Type = ActionScrollLeft
			return action
		case tea.MouseButtonWheelRight:
			action.Type = ActionScrollRight
			return action
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			action.Region = res.Region
			action.Type = ActionClick
			if res.IsDoubleClick {
				action.Type = ActionDoubleClick
			}
			return action
		}

	case tea.MouseActionMotion:
		action.Region = h.HitMap.Test(msg.X, msg.Y)
		if h.dragging {
			action.Type = ActionDrag
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
			return action
		}
		action.Type = ActionHover
		return action

	case tea.MouseActionRelease:
		if h.dragging {
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
			action.Type = ActionDragEnd
			h.EndDrag()
			return action
		}
	}

	return action
}
