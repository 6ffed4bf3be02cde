package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()
		configDir := filepath.Join(dir, ".cellgrid")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			t.Fatalf("setup: mkdir failed: %v", err)
		}

		data := []byte(`
row_height: 2
log_level: debug
columns:
  - key: id
    width: 6
    locked: true
  - key: qty
    name: Quantity
    format: number
    flash_class: updated
theme:
  selected: "99"
`)
		if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0644); err != nil {
			t.Fatalf("setup: write failed: %v", err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.RowHeight != 2 {
			t.Errorf("RowHeight: got %d, want 2", cfg.RowHeight)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
		}
		want := []ColumnConfig{
			{Key: "id", Width: 6, Locked: true},
			{Key: "qty", Name: "Quantity", Format: "number", FlashClass: "updated"},
		}
		if diff := cmp.Diff(want, cfg.Columns); diff != "" {
			t.Errorf("Columns mismatch (-want +got):\n%s", diff)
		}
		if cfg.Theme.Selected != "99" {
			t.Errorf("Theme.Selected: got %q, want %q", cfg.Theme.Selected, "99")
		}
		// Unset theme entries keep their defaults.
		if cfg.Theme.Editing != Default().Theme.Editing {
			t.Errorf("Theme.Editing: got %q, want default %q", cfg.Theme.Editing, Default().Theme.Editing)
		}
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("defaults mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, configFile)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("columns: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(dir); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid columns", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &Config{Columns: []ColumnConfig{{Key: "a"}, {Key: "a", Width: -1}}}
		if err := Save(dir, cfg); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		_, err := Load(dir)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(verr.Errors) != 2 {
			t.Errorf("got %d errors, want 2: %v", len(verr.Errors), verr.Errors)
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Columns = []ColumnConfig{{Key: "name", Width: 20, CellClass: "text"}}

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr int
	}{
		{"empty", Config{}, 0},
		{"missing key", Config{Columns: []ColumnConfig{{Name: "x"}}}, 1},
		{"unknown format", Config{Columns: []ColumnConfig{{Key: "x", Format: "roman"}}}, 1},
		{"negative row height", Config{RowHeight: -1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || len(verr.Errors) != tt.wantErr {
				t.Errorf("Validate() = %v, want %d errors", err, tt.wantErr)
			}
		})
	}
}

func TestColumnLookup(t *testing.T) {
	cfg := &Config{Columns: []ColumnConfig{{Key: "a", Width: 3}}}
	if col, ok := cfg.Column("a"); !ok || col.Width != 3 {
		t.Errorf("Column(a) = %+v, %v", col, ok)
	}
	if _, ok := cfg.Column("b"); ok {
		t.Error("Column(b) should be missing")
	}
	if got := (&Config{}).EffectiveRowHeight(); got != 1 {
		t.Errorf("EffectiveRowHeight() = %d, want 1", got)
	}
}
