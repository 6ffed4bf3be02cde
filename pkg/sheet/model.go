// Package sheet is the bubbletea host for the data grid: it owns the grid
// controller, evaluates every visible cell on each update and reuses the
// rendered output of cells whose evaluation reports no change.
package sheet

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cellgrid/internal/grid"
	"github.com/marcus/cellgrid/internal/source"
	"github.com/marcus/cellgrid/pkg/sheet/mouse"
	"github.com/marcus/cellgrid/pkg/sheet/picker"
)

// flashDuration is how long a transient update class stays applied.
const flashDuration = 600 * time.Millisecond

// Options configure a new Model.
type Options struct {
	Title     string
	Columns   []*grid.Column
	Rows      []*grid.Row
	Theme     Theme
	RowHeight int
	Logger    *slog.Logger
	Clipboard Clipboard
	Keys      *KeyMap
}

// RenderStats counts cell evaluations of the last render pass.
type RenderStats struct {
	Evaluated  int
	Recomputed int
}

// cellView is the host-side cache of one cell.
type cellView struct {
	cell      grid.Cell
	last      grid.Evaluation
	out       string
	transient string
	flashGen  int
	dirty     bool
}

type flashExpiredMsg struct {
	pos grid.Position
	gen int
}

// Model is the sheet tea.Model.
type Model struct {
	Title   string
	Width   int
	Height  int
	Columns []*grid.Column
	Rows    []*grid.Row

	ctrl      *grid.Controller
	keys      KeyMap
	log       *slog.Logger
	clipboard Clipboard
	styles    *styleCache
	mouse     *mouse.Handler
	editor    textinput.Model
	editing   *grid.EditorRequest
	picker    *picker.Picker

	rowHeight int
	rowOffset int
	colOffset int
	rowMarks  map[int]bool
	layout    []visibleColumn
	layoutKey [3]int

	cells   map[grid.Position]*cellView
	lines   []string
	flashes []tea.Cmd
	prevSel *grid.Column
	stats   RenderStats

	ShowHelp bool
	helpText string
	Status   string
}

// New builds a sheet over the given columns and rows.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	rowHeight := opts.RowHeight
	if rowHeight <= 0 {
		rowHeight = 1
	}

	ed := textinput.New()
	ed.Prompt = ""

	m := Model{
		Title:     opts.Title,
		Columns:   opts.Columns,
		Rows:      opts.Rows,
		ctrl:      grid.NewController(log),
		keys:      keys,
		log:       log,
		clipboard: opts.Clipboard,
		styles:    newStyleCache(opts.Theme),
		mouse:     mouse.NewHandler(),
		editor:    ed,
		rowHeight: rowHeight,
		rowMarks:  make(map[int]bool),
		cells:     make(map[grid.Position]*cellView),
		Width:     80,
		Height:    24,
	}
	m.ctrl.SetBounds(len(m.Rows), len(m.Columns))
	if len(m.Rows) > 0 && len(m.Columns) > 0 {
		m.ctrl.Select(grid.Position{})
	}
	m.render()
	return m
}

// Controller exposes the grid controller.
func (m Model) Controller() *grid.Controller { return m.ctrl }

// Stats returns the counters of the last render pass.
func (m Model) Stats() RenderStats { return m.stats }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.prevSel = m.selectedColumn()

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.helpText = ""

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
		if m.ShowHelp && m.helpText == "" {
			m.helpText = renderHelp(m.keys, m.Width)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case flashExpiredMsg:
		if cv, ok := m.cells[msg.pos]; ok && cv.flashGen == msg.gen && cv.transient != "" {
			cv.transient = ""
			cv.dirty = true
		}
	}

	m.render()
	cmds = append(cmds, m.flashes...)
	m.flashes = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.ctrl.Editing() {
		return m.handleEditorKey(msg), false
	}
	if m.picker != nil {
		return m.handlePickerKey(msg), false
	}
	if m.ShowHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
			m.ShowHelp = false
		}
		return nil, key.Matches(msg, m.keys.Quit)
	}
	if m.ctrl.Dragging() {
		m.handleFillKey(msg)
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Up):
		m.ctrl.Move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.ctrl.Move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.ctrl.Move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.ctrl.Move(0, 1)
	case key.Matches(msg, m.keys.Top):
		if pos, ok := m.ctrl.Selected(); ok {
			m.ctrl.Select(grid.Position{RowIdx: 0, Idx: pos.Idx})
		}
	case key.Matches(msg, m.keys.Bottom):
		if pos, ok := m.ctrl.Selected(); ok {
			m.ctrl.Select(grid.Position{RowIdx: len(m.Rows) - 1, Idx: pos.Idx})
		}
	case key.Matches(msg, m.keys.Edit):
		m.ctrl.Activate()
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.ClearCopy()
		m.Status = ""
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	case key.Matches(msg, m.keys.Paste):
		m.pasteCopied()
	case key.Matches(msg, m.keys.PasteSystem):
		m.pasteSystem()
	case key.Matches(msg, m.keys.CopyRow):
		m.copyRow()
	case key.Matches(msg, m.keys.Jump):
		m.openPicker()
	case key.Matches(msg, m.keys.Fill):
		if pos, ok := m.ctrl.Selected(); ok {
			m.ctrl.StartDrag(pos)
			m.Status = "fill: move up/down, enter to apply, esc to cancel"
		}
	case key.Matches(msg, m.keys.SelectRow):
		if pos, ok := m.ctrl.Selected(); ok {
			m.rowMarks[pos.RowIdx] = !m.rowMarks[pos.RowIdx]
		}
	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true
	}
	return nil, false
}

func (m *Model) handleFillKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ctrl.DragBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.ctrl.DragBy(1)
	case key.Matches(msg, m.keys.Edit):
		m.ctrl.CompleteDrag()
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CancelDrag()
		m.Status = "fill cancelled"
	}
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Commit):
		m.commitEdit()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor()
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

// openEditor is the editor collaborator: it loads the cell value into the
// text input when the grid dispatches an editor for a cell.
func (m *Model) openEditor(req *grid.EditorRequest) {
	if m.editing != nil && m.editing.Pos == req.Pos {
		return
	}
	m.editing = req
	m.editor.SetValue(grid.DefaultFormatter{}.Format(req.Row.Get(req.Column.Key), nil))
	m.editor.CursorEnd()
	m.editor.Width = req.Column.Width - 1
	m.editor.Focus()
}

func (m *Model) closeEditor() {
	m.ctrl.Deactivate()
	m.editor.Blur()
	m.editing = nil
}

func (m *Model) commitEdit() {
	if req := m.editing; req != nil {
		m.setValue(req.Pos, source.ParseField(m.editor.Value()))
	}
	m.closeEditor()
}

// setValue replaces the row holding pos with an updated copy.
func (m *Model) setValue(pos grid.Position, v any) bool {
	if pos.RowIdx < 0 || pos.RowIdx >= len(m.Rows) || pos.Idx < 0 || pos.Idx >= len(m.Columns) {
		return false
	}
	col := m.Columns[pos.Idx]
	m.Rows[pos.RowIdx] = m.Rows[pos.RowIdx].With(col.Key, v)
	m.log.Debug("set value", "pos", pos, "column", col.Key)
	return true
}

func (m *Model) valueAt(pos grid.Position) any {
	if pos.RowIdx < 0 || pos.RowIdx >= len(m.Rows) || pos.Idx < 0 || pos.Idx >= len(m.Columns) {
		return nil
	}
	return m.Rows[pos.RowIdx].Get(m.Columns[pos.Idx].Key)
}

func (m *Model) copySelected() {
	pos, ok := m.ctrl.Selected()
	if !ok {
		return
	}
	m.ctrl.Copy(pos)
	m.Status = fmt.Sprintf("copied %s", pos)
	if m.clipboard == nil {
		return
	}
	if err := m.clipboard.WriteAll(grid.DefaultFormatter{}.Format(m.valueAt(pos), nil)); err != nil {
		m.log.Warn("clipboard write", "err", err)
		m.Status = fmt.Sprintf("copied %s (clipboard unavailable)", pos)
	}
}

func (m *Model) pasteCopied() {
	src, ok := m.ctrl.CopySource()
	dst, sel := m.ctrl.Selected()
	if !ok || !sel {
		return
	}
	if m.setValue(dst, m.valueAt(src)) {
		m.Status = fmt.Sprintf("pasted %s into %s", src, dst)
	}
}

func (m *Model) pasteSystem() {
	dst, ok := m.ctrl.Selected()
	if !ok || m.clipboard == nil {
		return
	}
	text, err := m.clipboard.ReadAll()
	if err != nil {
		m.log.Warn("clipboard read", "err", err)
		m.Status = "clipboard unavailable"
		return
	}
	if m.setValue(dst, source.ParseField(text)) {
		m.Status = fmt.Sprintf("pasted clipboard into %s", dst)
	}
}

func (m *Model) copyRow() {
	pos, ok := m.ctrl.Selected()
	if !ok || pos.RowIdx >= len(m.Rows) {
		return
	}
	if m.clipboard == nil {
		m.Status = "clipboard unavailable"
		return
	}
	if err := m.clipboard.WriteAll(rowAsMarkdown(m.Columns, m.Rows[pos.RowIdx])); err != nil {
		m.log.Warn("clipboard write", "err", err)
		m.Status = "clipboard unavailable"
		return
	}
	m.Status = fmt.Sprintf("copied row %d as markdown", pos.RowIdx)
}

func (m *Model) openPicker() {
	items := make([]picker.Item, len(m.Columns))
	for i, c := range m.Columns {
		items[i] = picker.Item{ID: c.Key, Label: c.Name, Data: i}
	}
	m.picker = picker.New("Jump to column", items, picker.WithWidth(min(50, m.Width)))
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.picker.Update(msg)
	switch action {
	case picker.ActionCancel:
		m.picker = nil
	case picker.ActionChoose:
		it, _ := m.picker.Selected()
		m.picker = nil
		row := 0
		if pos, ok := m.ctrl.Selected(); ok {
			row = pos.RowIdx
		}
		if idx, ok := it.Data.(int); ok {
			m.ctrl.Select(grid.Position{RowIdx: row, Idx: idx})
		}
	}
	return cmd
}

// fill copies the anchor value of a terminated drag into every row it spans.
func (m *Model) fill(d grid.Dragged) {
	anchor := grid.Position{RowIdx: d.RowIdx, Idx: d.Idx}
	v := m.valueAt(anchor)
	from, to := d.Span()
	n := 0
	for r := from; r <= to; r++ {
		if r == d.RowIdx {
			continue
		}
		if m.setValue(grid.Position{RowIdx: r, Idx: d.Idx}, v) {
			n++
		}
	}
	m.Status = fmt.Sprintf("filled %d cells", n)
	m.log.Info("drag fill", "column", d.Idx, "from", from, "to", to, "cells", n)
}

func (m *Model) selectedColumn() *grid.Column {
	pos, ok := m.ctrl.Selected()
	if !ok || pos.Idx >= len(m.Columns) {
		return nil
	}
	return m.Columns[pos.Idx]
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.ctrl.Editing() || m.ShowHelp || m.picker != nil {
		return
	}
	action := m.mouse.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionClick:
		pos, ok := regionCell(action.Region)
		if !ok {
			return
		}
		if cur, sel := m.ctrl.Selected(); sel && cur == pos {
			m.ctrl.StartDrag(pos)
			m.mouse.StartDrag(action.X, action.Y, "fill", pos.RowIdx)
			return
		}
		if cv, ok := m.cells[pos]; ok {
			cv.cell.Click()
		}
	case mouse.ActionDoubleClick:
		pos, ok := regionCell(action.Region)
		if !ok {
			return
		}
		m.ctrl.CancelDrag()
		if cv, ok := m.cells[pos]; ok {
			cv.cell.DoubleClick()
		}
	case mouse.ActionDrag:
		if pos, ok := regionCell(action.Region); ok {
			m.ctrl.DragOver(pos.RowIdx)
		}
	case mouse.ActionDragEnd:
		if pos, ok := regionCell(action.Region); ok {
			m.ctrl.DragOver(pos.RowIdx)
		}
		snap := m.ctrl.Snapshot()
		if snap.Dragged != nil && snap.Dragged.OverRowIdx != snap.Dragged.RowIdx {
			m.ctrl.CompleteDrag()
		} else {
			m.ctrl.CancelDrag()
		}
	case mouse.ActionScrollUp:
		m.ctrl.Move(-1, 0)
	case mouse.ActionScrollDown:
		m.ctrl.Move(1, 0)
	case mouse.ActionScrollLeft:
		m.ctrl.Move(0, -1)
	case mouse.ActionScrollRight:
		m.ctrl.Move(0, 1)
	}
}

func regionCell(r *mouse.Region) (grid.Position, bool) {
	if r == nil {
		return grid.Position{}, false
	}
	pos, ok := r.Data.(grid.Position)
	return pos, ok
}
