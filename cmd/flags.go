package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/marcus/cellgrid/internal/config"
	"github.com/marcus/cellgrid/internal/grid"
	"github.com/marcus/cellgrid/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// positionValue is a pflag.Value for "row:col" positions.
type positionValue struct {
	pos *grid.Position
	set bool
}

var _ pflag.Value = (*positionValue)(nil)

func newPositionValue(p *grid.Position) *positionValue {
	return &positionValue{pos: p}
}

func (v *positionValue) String() string {
	if v.pos == nil || !v.set {
		return ""
	}
	return fmt.Sprintf("%d:%d", v.pos.RowIdx, v.pos.Idx)
}

func (v *positionValue) Set(s string) error {
	p, err := parsePosition(s)
	if err != nil {
		return err
	}
	*v.pos = p
	v.set = true
	return nil
}

func (v *positionValue) Type() string { return "row:col" }

// parsePosition parses "row:col" into a position.
func parsePosition(s string) (grid.Position, error) {
	r, c, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return grid.Position{}, fmt.Errorf("invalid position %q: want row:col", s)
	}
	row, err := strconv.Atoi(r)
	if err != nil || row < 0 {
		return grid.Position{}, fmt.Errorf("invalid row in %q", s)
	}
	col, err := strconv.Atoi(c)
	if err != nil || col < 0 {
		return grid.Position{}, fmt.Errorf("invalid column in %q", s)
	}
	return grid.Position{RowIdx: row, Idx: col}, nil
}

// setupLogger builds the command logger from config and the persistent
// --log-level/--log-file flags. The returned closer releases the log file.
func setupLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, io.Closer, error) {
	levelName := cfg.LogLevel
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		levelName = f.Value.String()
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	path := cfg.LogFile
	if f := cmd.Flags().Lookup("log-file"); f != nil && f.Changed {
		path = f.Value.String()
	}
	if path == "" {
		return logging.New(logging.Options{Level: level}), nopCloser{}, nil
	}
	file, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(logging.Options{Writer: file, Level: level, Format: logging.FormatJSON}), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
