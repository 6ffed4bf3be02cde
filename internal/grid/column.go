package grid

// Row is one record of grid data. Rows are treated as immutable: an edit
// produces a new *Row, so pointer inequality means "row data changed".
type Row struct {
	ID     string
	Values map[string]any
}

// NewRow builds a row from key/value pairs.
func NewRow(id string, values map[string]any) *Row {
	return &Row{ID: id, Values: values}
}

// Get returns the value stored under key, or nil.
func (r *Row) Get(key string) any {
	if r == nil {
		return nil
	}
	return r.Values[key]
}

// With returns a copy of the row with key set to v.
func (r *Row) With(key string, v any) *Row {
	if r == nil {
		return &Row{Values: map[string]any{key: v}}
	}
	next := &Row{ID: r.ID, Values: make(map[string]any, len(r.Values)+1)}
	for k, val := range r.Values {
		next.Values[k] = val
	}
	next.Values[key] = v
	return next
}

// UpdateCellClassFunc returns a transient class for a cell whose row changed.
// prevSelected is the column holding the selection, col the cell's own column.
type UpdateCellClassFunc func(prevSelected *Column, col *Column, valueChanging bool) string

// RowMetaDataFunc returns the dependent values handed to a custom formatter.
type RowMetaDataFunc func(row *Row, col *Column) any

// Column is the read-only configuration of one grid column.
type Column struct {
	Key       string
	Name      string
	Width     int
	Left      int
	Locked    bool
	CellClass string

	UpdateCellClass UpdateCellClassFunc
	RowMetaData     RowMetaDataFunc
	Formatter       Formatter
}

// LayoutColumns assigns Left offsets from the widths, in order.
func LayoutColumns(cols []*Column) {
	left := 0
	for _, c := range cols {
		c.Left = left
		left += c.Width
	}
}
