package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = ".cellgrid/config.yaml"

// DefaultColumnWidth is used for columns without a configured width.
const DefaultColumnWidth = 14

// ColumnConfig configures one grid column. Columns are matched to source
// fields by Key.
type ColumnConfig struct {
	Key        string `yaml:"key"`
	Name       string `yaml:"name,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	Locked     bool   `yaml:"locked,omitempty"`
	CellClass  string `yaml:"cell_class,omitempty"`
	FlashClass string `yaml:"flash_class,omitempty"`
	Format     string `yaml:"format,omitempty"`
	// DependsOn names the field handed to the formatter as dependent value.
	DependsOn string `yaml:"depends_on,omitempty"`
}

// Theme holds lipgloss color strings per class tag.
type Theme struct {
	Header      string `yaml:"header,omitempty"`
	Locked      string `yaml:"locked,omitempty"`
	Selected    string `yaml:"selected,omitempty"`
	Editing     string `yaml:"editing,omitempty"`
	Copied      string `yaml:"copied,omitempty"`
	ActiveDrag  string `yaml:"active_drag,omitempty"`
	DragUp      string `yaml:"drag_up,omitempty"`
	DragDown    string `yaml:"drag_down,omitempty"`
	WasDragged  string `yaml:"was_dragged,omitempty"`
	Flash       string `yaml:"flash,omitempty"`
	RowSelected string `yaml:"row_selected,omitempty"`
}

// Config is the on-disk cellgrid configuration.
type Config struct {
	Columns   []ColumnConfig `yaml:"columns,omitempty"`
	Theme     Theme          `yaml:"theme,omitempty"`
	RowHeight int            `yaml:"row_height,omitempty"`
	LogLevel  string         `yaml:"log_level,omitempty"`
	LogFile   string         `yaml:"log_file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RowHeight: 1,
		LogLevel:  "info",
		Theme: Theme{
			Header:      "212",
			Locked:      "241",
			Selected:    "237",
			Editing:     "24",
			Copied:      "45",
			ActiveDrag:  "214",
			DragUp:      "214",
			DragDown:    "214",
			WasDragged:  "58",
			Flash:       "42",
			RowSelected: "235",
		},
	}
}

// Load reads the config from disk. A missing file yields the defaults.
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	cfg := Default()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Validate checks column and layout settings.
func (c *Config) Validate() error {
	verr := &ValidationError{}
	seen := make(map[string]bool)
	for i, col := range c.Columns {
		field := fmt.Sprintf("columns[%d]", i)
		if col.Key == "" {
			verr.Add(&FieldError{Field: field + ".key", Reason: "must not be empty"})
		} else if seen[col.Key] {
			verr.Add(&FieldError{Field: field + ".key", Reason: fmt.Sprintf("duplicate key %q", col.Key)})
		}
		seen[col.Key] = true
		if col.Width < 0 {
			verr.Add(&FieldError{Field: field + ".width", Reason: "must not be negative"})
		}
		if !knownFormat(col.Format) {
			verr.Add(&FieldError{Field: field + ".format", Reason: fmt.Sprintf("unknown format %q", col.Format)})
		}
	}
	if c.RowHeight < 0 {
		verr.Add(&FieldError{Field: "row_height", Reason: "must not be negative"})
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Formats understood by the sheet column builder.
var Formats = []string{"", "text", "upper", "number", "bool"}

func knownFormat(f string) bool {
	for _, k := range Formats {
		if f == k {
			return true
		}
	}
	return false
}

// Column returns the configuration for key, if any.
func (c *Config) Column(key string) (ColumnConfig, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnConfig{}, false
}

// EffectiveRowHeight returns RowHeight, defaulting to 1.
func (c *Config) EffectiveRowHeight() int {
	if c.RowHeight <= 0 {
		return 1
	}
	return c.RowHeight
}
