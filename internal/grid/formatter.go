package grid

import "fmt"

// Formatter turns a cell value into display text.
type Formatter interface {
	Format(value any, deps any) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(value any, deps any) string

func (f FormatterFunc) Format(value any, deps any) string { return f(value, deps) }

// DefaultFormatter prints the value and ignores dependent values.
type DefaultFormatter struct{}

func (DefaultFormatter) Format(value any, _ any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// DispatchKind selects how a cell's content is produced.
type DispatchKind int

const (
	KindDefault DispatchKind = iota
	KindCustom
	KindEditor
)

func (k DispatchKind) String() string {
	switch k {
	case KindEditor:
		return "editor"
	case KindCustom:
		return "custom"
	default:
		return "default"
	}
}

// Dispatch is the content decision for one evaluation. Formatter is set for
// KindCustom and KindDefault; Editor is set for KindEditor.
type Dispatch struct {
	Kind      DispatchKind
	Formatter Formatter
	Editor    *EditorRequest
}

// EditorRequest carries what the editor collaborator needs to open on a cell.
type EditorRequest struct {
	Row    *Row
	Pos    Position
	Meta   *Metadata
	Column *Column
	Height int
}

// DispatchFormatter picks editor, custom formatter, or the default formatter.
func DispatchFormatter(p Props, st State) Dispatch {
	if st.Active {
		return Dispatch{
			Kind: KindEditor,
			Editor: &EditorRequest{
				Row:    p.Row,
				Pos:    p.Position,
				Meta:   p.Meta,
				Column: p.Column,
				Height: p.Height,
			},
		}
	}
	if p.Column != nil && p.Column.Formatter != nil {
		return Dispatch{Kind: KindCustom, Formatter: p.Column.Formatter}
	}
	return Dispatch{Kind: KindDefault, Formatter: DefaultFormatter{}}
}

// FormatterDependencies calls the column's row metadata accessor, if any.
func FormatterDependencies(col *Column, row *Row) any {
	if col == nil || col.RowMetaData == nil {
		return nil
	}
	return col.RowMetaData(row, col)
}

// Render formats value for a non-editor dispatch. The default formatter only
// sees the value.
func (d Dispatch) Render(value any, deps any) string {
	switch d.Kind {
	case KindCustom:
		return d.Formatter.Format(value, deps)
	case KindDefault:
		return DefaultFormatter{}.Format(value, nil)
	default:
		return ""
	}
}
