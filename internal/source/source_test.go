package source

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadCSV(t *testing.T) {
	in := "name,qty,price,active\nada,3,1.5,true\ngrace,x,,false\nshort\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if diff := cmp.Diff([]string{"name", "qty", "price", "active"}, tbl.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tbl.Rows))
	}

	want := []map[string]any{
		{"name": "ada", "qty": int64(3), "price": 1.5, "active": true},
		{"name": "grace", "qty": "x", "price": "", "active": false},
		{"name": "short"},
	}
	for i, w := range want {
		if diff := cmp.Diff(w, tbl.Rows[i].Values); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	if tbl.Rows[1].ID != "1" {
		t.Errorf("row ID = %q, want %q", tbl.Rows[1].ID, "1")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"-1.25", -1.25},
		{"1e3", 1000.0},
		{"true", true},
		{"false", false},
		{"inf", "inf"},
		{"+Inf", "+Inf"},
		{"-infinity", "-infinity"},
		{"NaN", "NaN"},
		{"ada", "ada"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseField(tt.in); got != tt.want {
				t.Errorf("ParseField(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); !errors.Is(err, ErrNoHeader) {
		t.Errorf("ReadCSV(empty) error = %v, want ErrNoHeader", err)
	}
}

func TestLoadCSVMissing(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	var lerr *LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestLoadDispatchesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte("id\n1\n2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Name != "people" || len(tbl.Rows) != 2 {
		t.Errorf("got table %q with %d rows", tbl.Name, len(tbl.Rows))
	}
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, qty INTEGER)`,
		`INSERT INTO items (name, qty) VALUES ('bolt', 10), ('nut', 25)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}
	db.Close()

	ctx := context.Background()

	t.Run("first table", func(t *testing.T) {
		tbl, err := Load(ctx, path, "")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if tbl.Name != "items" {
			t.Errorf("Name = %q, want items", tbl.Name)
		}
		if diff := cmp.Diff([]string{"id", "name", "qty"}, tbl.Headers); diff != "" {
			t.Errorf("headers mismatch (-want +got):\n%s", diff)
		}
		if len(tbl.Rows) != 2 || tbl.Rows[0].Get("name") != "bolt" {
			t.Errorf("unexpected rows %+v", tbl.Rows)
		}
	})

	t.Run("query", func(t *testing.T) {
		tbl, err := LoadSQLite(ctx, path, `SELECT name FROM items WHERE qty > 20`)
		if err != nil {
			t.Fatalf("LoadSQLite: %v", err)
		}
		if len(tbl.Rows) != 1 || tbl.Rows[0].Get("name") != "nut" {
			t.Errorf("unexpected rows %+v", tbl.Rows)
		}
	})

	t.Run("quoted table name", func(t *testing.T) {
		qpath := filepath.Join(t.TempDir(), "quoted.db")
		qdb, err := sql.Open("sqlite", qpath)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		for _, stmt := range []string{
			`CREATE TABLE "odd ""name""" (label TEXT)`,
			`INSERT INTO "odd ""name""" (label) VALUES ('x')`,
		} {
			if _, err := qdb.Exec(stmt); err != nil {
				t.Fatalf("setup %q: %v", stmt, err)
			}
		}
		qdb.Close()

		tbl, err := LoadSQLite(ctx, qpath, "")
		if err != nil {
			t.Fatalf("LoadSQLite: %v", err)
		}
		if tbl.Name != `odd "name"` {
			t.Errorf("Name = %q", tbl.Name)
		}
		if len(tbl.Rows) != 1 || tbl.Rows[0].Get("label") != "x" {
			t.Errorf("unexpected rows %+v", tbl.Rows)
		}
	})

	t.Run("bad query", func(t *testing.T) {
		_, err := LoadSQLite(ctx, path, `SELECT nope FROM items`)
		var lerr *LoadError
		if !errors.As(err, &lerr) {
			t.Errorf("expected LoadError, got %v", err)
		}
	})
}
