package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cellgrid/internal/config"
	"github.com/marcus/cellgrid/internal/output"
	"github.com/marcus/cellgrid/internal/source"
	"github.com/marcus/cellgrid/pkg/sheet"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a CSV file or SQLite database in the interactive grid",
	Long: `Open a CSV file or SQLite database in the interactive grid.

Files ending in .db, .sqlite or .sqlite3 are read as SQLite; use --query to
pick the rows, otherwise the first table is shown. Anything else is read as
CSV with a header row. Edits stay in memory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		noMouse, _ := cmd.Flags().GetBool("no-mouse")

		cfg, table, err := loadInputs(cmd.Context(), getBaseDir(), args[0], query)
		if err != nil {
			return err
		}

		log, closer, err := setupLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer closer.Close()
		log.Info("view", "source", args[0], "rows", len(table.Rows), "columns", len(table.Headers))

		cb := sheet.SystemClipboard()
		if cb == nil {
			output.Warning("no system clipboard found; copy and paste stay inside the grid")
		}

		title := table.Name
		if title == "" {
			title = filepath.Base(args[0])
		}
		m := sheet.New(sheet.Options{
			Title:     title,
			Columns:   sheet.BuildColumns(cfg, table.Headers),
			Rows:      table.Rows,
			Theme:     sheet.ThemeFromConfig(cfg.Theme),
			RowHeight: cfg.EffectiveRowHeight(),
			Logger:    log,
			Clipboard: cb,
		})

		opts := []tea.ProgramOption{tea.WithAltScreen()}
		if !noMouse {
			opts = append(opts, tea.WithMouseCellMotion())
		}
		if ctx := cmd.Context(); ctx != nil {
			opts = append(opts, tea.WithContext(ctx))
		}
		if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
			return fmt.Errorf("run grid: %w", err)
		}
		return nil
	},
}

// loadInputs reads the project config and the data source concurrently.
func loadInputs(ctx context.Context, dir, path, query string) (*config.Config, *source.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)

	var cfg *config.Config
	var table *source.Table
	g.Go(func() error {
		c, err := config.Load(dir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	})
	g.Go(func() error {
		t, err := source.Load(ctx, path, query)
		if err != nil {
			return err
		}
		table = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cfg, table, nil
}

func init() {
	viewCmd.Flags().StringP("query", "q", "", "SQL query for SQLite sources")
	viewCmd.Flags().Bool("no-mouse", false, "disable mouse support")
	rootCmd.AddCommand(viewCmd)
}
