package sheet

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/cellgrid/internal/grid"
)

const (
	titleLines  = 1
	headerLines = 1
	statusLines = 1
)

// visibleColumn is a laid-out copy of a column. Copies are rebuilt whenever
// the layout changes so width and offset changes reach the change detector.
type visibleColumn struct {
	idx int
	col *grid.Column
}

func (m *Model) bodyRows() int {
	n := (m.Height - titleLines - headerLines - statusLines) / m.rowHeight
	if n < 1 {
		n = 1
	}
	return n
}

// scrollToSelection adjusts the offsets so the selected cell is on screen.
func (m *Model) scrollToSelection() {
	pos, ok := m.ctrl.Selected()
	if !ok {
		return
	}
	body := m.bodyRows()
	if pos.RowIdx < m.rowOffset {
		m.rowOffset = pos.RowIdx
	}
	if pos.RowIdx >= m.rowOffset+body {
		m.rowOffset = pos.RowIdx - body + 1
	}
	if pos.Idx >= len(m.Columns) || m.Columns[pos.Idx].Locked {
		return
	}
	if pos.Idx < m.colOffset {
		m.colOffset = pos.Idx
	}
	for m.colOffset < pos.Idx && !m.columnVisible(pos.Idx) {
		m.colOffset++
	}
}

func (m *Model) columnVisible(idx int) bool {
	for _, vc := range m.visibleColumns() {
		if vc.idx == idx {
			return true
		}
	}
	return false
}

// visibleColumns lays out locked columns first, then unlocked columns from
// the horizontal offset until the width is used up.
func (m *Model) visibleColumns() []visibleColumn {
	key := [3]int{m.Width, m.colOffset, len(m.Columns)}
	if m.layout != nil && key == m.layoutKey {
		return m.layout
	}

	var out []visibleColumn
	left := 0
	place := func(i int) bool {
		src := m.Columns[i]
		if left > 0 && left+src.Width > m.Width {
			return false
		}
		c := *src
		c.Left = left
		left += c.Width
		out = append(out, visibleColumn{idx: i, col: &c})
		return true
	}
	for i, c := range m.Columns {
		if c.Locked {
			place(i)
		}
	}
	for i := m.colOffset; i < len(m.Columns); i++ {
		if m.Columns[i].Locked {
			continue
		}
		if !place(i) {
			break
		}
	}

	m.layout = out
	m.layoutKey = key
	return out
}

// render evaluates every visible cell against the current controller
// snapshot and rebuilds the screen lines, reusing cached cell output.
func (m *Model) render() {
	m.renderPass(true)
}

func (m *Model) renderPass(allowRepeat bool) {
	m.ctrl.OnTerminate = m.fill
	m.ctrl.SetBounds(len(m.Rows), len(m.Columns))
	if m.editing != nil && !m.ctrl.Editing() {
		m.editor.Blur()
		m.editing = nil
	}
	m.scrollToSelection()

	cols := m.visibleColumns()
	meta := m.ctrl.Snapshot()
	body := m.bodyRows()
	m.stats = RenderStats{}
	m.mouse.Clear()

	live := make(map[grid.Position]*cellView, len(cols)*body)
	var touched []*cellView
	var rowLines []string

	for r := m.rowOffset; r < len(m.Rows) && r < m.rowOffset+body; r++ {
		row := m.Rows[r]
		y := titleLines + headerLines + (r-m.rowOffset)*m.rowHeight
		parts := make([]string, 0, len(cols))
		for _, vc := range cols {
			pos := grid.Position{RowIdx: r, Idx: vc.idx}
			cv, ok := m.cells[pos]
			if !ok {
				cv = &cellView{}
			}
			live[pos] = cv

			cv.cell.Class = ""
			if m.rowMarks[r] {
				cv.cell.Class = ClassRowSelected
			}
			props := grid.Props{
				Position:      pos,
				Column:        vc.col,
				Row:           row,
				Value:         row.Get(vc.col.Key),
				Height:        m.rowHeight,
				IsRowSelected: m.rowMarks[r],
				Meta:          meta,
			}
			ev := cv.cell.Evaluate(props, m.prevSel)
			m.stats.Evaluated++
			if ev.Recompute {
				m.stats.Recomputed++
				cv.last = ev
				cv.dirty = true
				m.applyFlash(pos, cv, ev.Flash)
				if ev.Dispatch.Kind == grid.KindEditor {
					m.openEditor(ev.Dispatch.Editor)
				}
			}
			if cv.dirty || cv.last.Dispatch.Kind == grid.KindEditor {
				cv.out = m.renderCell(vc.col, props, cv)
				cv.dirty = false
			}
			parts = append(parts, cv.out)
			touched = append(touched, cv)
			m.mouse.HitMap.AddRect(fmt.Sprintf("cell:%d:%d", r, vc.idx), vc.col.Left, y, vc.col.Width, m.rowHeight, pos)
		}
		rowLines = append(rowLines, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	m.cells = live

	before := m.ctrl.Terminations()
	for _, cv := range touched {
		cv.cell.AfterUpdate()
	}
	if allowRepeat && m.ctrl.Terminations() != before {
		// the fill replaced rows; render them once more
		m.renderPass(false)
		return
	}

	m.lines = make([]string, 0, len(rowLines)+3)
	m.lines = append(m.lines, m.titleLine())
	m.lines = append(m.lines, m.headerLine(cols))
	m.lines = append(m.lines, rowLines...)
	m.lines = append(m.lines, m.statusLine())
}

func (m *Model) applyFlash(pos grid.Position, cv *cellView, events []grid.FlashEvent) {
	for _, e := range events {
		switch e.Phase {
		case grid.FlashClear:
			cv.transient = ""
		case grid.FlashApply:
			cv.transient = e.Tag
			cv.flashGen++
			gen := cv.flashGen
			m.flashes = append(m.flashes, tea.Tick(flashDuration, func(time.Time) tea.Msg {
				return flashExpiredMsg{pos: pos, gen: gen}
			}))
		}
	}
}

func (m *Model) renderCell(col *grid.Column, p grid.Props, cv *cellView) string {
	ev := cv.last
	style := m.styles.For(ev.Classes, cv.transient).
		Width(col.Width).
		MaxWidth(col.Width).
		Height(p.Height)

	var text string
	if ev.Dispatch.Kind == grid.KindEditor {
		text = m.editor.View()
	} else {
		text = ev.Dispatch.Render(p.Value, ev.Deps)
	}
	text = strings.ReplaceAll(text, "\n", " ")
	return style.Render(ansi.Truncate(" "+text, col.Width-1, "…"))
}

func (m *Model) titleLine() string {
	mode := "NORMAL"
	bg := lipgloss.Color("4")
	switch {
	case m.ctrl.Editing():
		mode, bg = "EDIT", lipgloss.Color("3")
	case m.ctrl.Dragging():
		mode, bg = "FILL", lipgloss.Color("5")
	}
	title := m.Title
	if title == "" {
		title = "cellgrid"
	}
	return modeStyle.Background(bg).Render(mode) + " " + headerStyle.Render(title)
}

func (m *Model) headerLine(cols []visibleColumn) string {
	parts := make([]string, 0, len(cols))
	for _, vc := range cols {
		s := headerStyle.Foreground(m.styles.theme.Header).Width(vc.col.Width).MaxWidth(vc.col.Width)
		parts = append(parts, s.Render(ansi.Truncate(" "+vc.col.Name, vc.col.Width-1, "…")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) statusLine() string {
	var sb strings.Builder
	if pos, ok := m.ctrl.Selected(); ok {
		sb.WriteString(pos.String())
		if pos.Idx < len(m.Columns) {
			sb.WriteString(" " + m.Columns[pos.Idx].Key)
		}
	}
	sb.WriteString(fmt.Sprintf("  %d/%d recomputed", m.stats.Recomputed, m.stats.Evaluated))
	if m.Status != "" {
		sb.WriteString("  " + m.Status)
	}
	return statusStyle.Render(ansi.Truncate(sb.String(), m.Width, ""))
}

func (m Model) View() string {
	if m.ShowHelp {
		if m.helpText == "" {
			return renderHelp(m.keys, m.Width)
		}
		return m.helpText
	}
	if m.picker != nil {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.picker.View())
	}
	return strings.Join(m.lines, "\n")
}
