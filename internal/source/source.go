// Package source loads grid rows from CSV files and SQLite databases.
// Sources are read-only: the grid never writes back.
package source

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/marcus/cellgrid/internal/grid"
	_ "modernc.org/sqlite"
)

// Table is a loaded data set.
type Table struct {
	Name    string
	Headers []string
	Rows    []*grid.Row
}

// LoadError reports a source that could not be read.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrNoHeader is returned for an empty CSV input.
var ErrNoHeader = errors.New("missing header row")

// Load picks a loader from the path extension. query is only used for
// SQLite databases.
func Load(ctx context.Context, path, query string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path, query)
	default:
		return LoadCSV(path)
	}
}

// LoadCSV reads a CSV file whose first record is the header.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return t, nil
}

// ReadCSV parses CSV records into rows. Numeric and boolean cells are typed.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	t := &Table{Headers: header}
	for i := 0; ; i++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		values := make(map[string]any, len(header))
		for j, h := range header {
			if j < len(rec) {
				values[h] = ParseField(rec[j])
			}
		}
		t.Rows = append(t.Rows, grid.NewRow(strconv.Itoa(i), values))
	}
	return t, nil
}

// ParseField types a text field as int64, float64, bool or string, in that
// order of preference. Non-finite numbers such as "inf" and "nan" stay text.
func ParseField(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}

// LoadSQLite runs query against a SQLite database. An empty query selects
// the first user table.
func LoadSQLite(ctx context.Context, path, query string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer db.Close()

	name := ""
	if query == "" {
		if err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT 1`,
		).Scan(&name); err != nil {
			return nil, &LoadError{Source: path, Err: fmt.Errorf("find table: %w", err)}
		}
		query = "SELECT * FROM " + quoteIdent(name)
	}

	t, err := queryTable(ctx, db, query)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	t.Name = name
	return t, nil
}

// quoteIdent quotes a SQL identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func queryTable(ctx context.Context, db *sql.DB, query string) (*Table, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := &Table{Headers: cols}
	for i := 0; rows.Next(); i++ {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for j := range raw {
			ptrs[j] = &raw[j]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		values := make(map[string]any, len(cols))
		for j, c := range cols {
			if b, ok := raw[j].([]byte); ok {
				values[c] = string(b)
			} else {
				values[c] = raw[j]
			}
		}
		t.Rows = append(t.Rows, grid.NewRow(strconv.Itoa(i), values))
	}
	return t, rows.Err()
}
