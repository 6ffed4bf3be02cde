package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marcus/cellgrid/internal/config"
	"github.com/marcus/cellgrid/internal/grid"
	"github.com/marcus/cellgrid/internal/output"
	"github.com/marcus/cellgrid/internal/source"
	"github.com/marcus/cellgrid/pkg/sheet"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// inspectOptions describe the metadata a cell is resolved against.
type inspectOptions struct {
	cell     grid.Position
	column   string
	sel      grid.Position
	hasSel   bool
	active   bool
	copied   grid.Position
	hasCopy  bool
	drag     grid.Position
	hasDrag  bool
	over     int
	complete bool
	from     grid.Position
	hasFrom  bool
	all      bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print the resolved state and classes of one cell",
	Long: `Print the resolved state, classes and formatter dispatch of one cell under
the given selection, copy and drag metadata.

With a file, the cell value and rendered text are shown and --column may name
a column loosely (fuzzy matched). Without one, columns come from the config.`,
	Example: `  cellgrid inspect --cell 2:1 --select 2:1 --active
  cellgrid inspect data.csv --cell 3:0 --column prce --drag 1:0 --over 5
  cellgrid inspect --cell 4:0 --select 4:0 --from 0:0`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readInspectFlags(cmd)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		query, _ := cmd.Flags().GetString("query")
		cfg, table, err := inspectInputs(cmd, path, query)
		if err != nil {
			return err
		}

		var headers []string
		if table != nil {
			headers = table.Headers
		}
		cols := sheet.BuildColumns(cfg, headers)
		if opts.column != "" {
			idx, err := matchColumn(cols, opts.column)
			if err != nil {
				return err
			}
			opts.cell.Idx = idx
		}

		root := inspectCell(cols, table, opts)
		color := isTerminal(cmd.OutOrStdout())
		if color {
			root.Label = output.Success("%s", root.Label)
		}
		fmt.Fprintln(cmd.OutOrStdout(), output.RenderTree(root, output.TreeRenderOptions{
			ShowMarks: true,
			HideFalse: !opts.all,
		}))
		if color && !opts.hasFrom {
			fmt.Fprintln(cmd.OutOrStdout(), output.Muted("pass --from row:col to report change detection"))
		}
		return nil
	},
}

func inspectInputs(cmd *cobra.Command, path, query string) (*config.Config, *source.Table, error) {
	if path == "" {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil, nil
	}
	return loadInputs(cmd.Context(), getBaseDir(), path, query)
}

func readInspectFlags(cmd *cobra.Command) (inspectOptions, error) {
	var o inspectOptions
	f := cmd.Flags()
	if !f.Changed("cell") {
		return o, errors.New("--cell is required")
	}
	o.cell = inspectCellPos
	o.column, _ = f.GetString("column")
	o.sel, o.hasSel = inspectSelPos, f.Changed("select")
	o.active, _ = f.GetBool("active")
	o.copied, o.hasCopy = inspectCopyPos, f.Changed("copy")
	o.drag, o.hasDrag = inspectDragPos, f.Changed("drag")
	o.over = o.drag.RowIdx
	if f.Changed("over") {
		o.over, _ = f.GetInt("over")
	}
	o.complete, _ = f.GetBool("complete")
	o.from, o.hasFrom = inspectFromPos, f.Changed("from")
	o.all, _ = f.GetBool("all")

	if o.active && !o.hasSel {
		return o, errors.New("--active needs --select")
	}
	if (f.Changed("over") || o.complete) && !o.hasDrag {
		return o, errors.New("--over and --complete need --drag")
	}
	return o, nil
}

// metadata builds the grid metadata described by the options.
func (o inspectOptions) metadata() *grid.Metadata {
	meta := &grid.Metadata{}
	if o.hasSel {
		meta.Selected = &grid.Selection{RowIdx: o.sel.RowIdx, Idx: o.sel.Idx, Active: o.active}
	}
	if o.hasCopy {
		meta.Copied = &grid.Copied{RowIdx: o.copied.RowIdx, Idx: o.copied.Idx}
	}
	if o.hasDrag {
		meta.Dragged = &grid.Dragged{
			RowIdx:     o.drag.RowIdx,
			Idx:        o.drag.Idx,
			OverRowIdx: o.over,
			Complete:   o.complete,
		}
	}
	return meta
}

// inspectCell resolves the cell and describes it as a tree.
func inspectCell(cols []*grid.Column, table *source.Table, o inspectOptions) output.TreeNode {
	pos := o.cell
	var col *grid.Column
	if pos.Idx < len(cols) {
		col = cols[pos.Idx]
	}
	var row *grid.Row
	if table != nil && pos.RowIdx < len(table.Rows) {
		row = table.Rows[pos.RowIdx]
	}

	meta := o.metadata()
	props := grid.Props{Position: pos, Column: col, Row: row, Height: 1, Meta: meta}
	if col != nil {
		props.Value = row.Get(col.Key)
	}
	st := grid.Resolve(pos, meta)
	classes := grid.BuildClasses(col, "", st)
	dispatch := grid.DispatchFormatter(props, st)

	label := pos.String()
	if col != nil {
		label += " (" + col.Key + ")"
	}
	root := output.TreeNode{Label: label}

	if table != nil && col != nil {
		root.Children = append(root.Children,
			output.TreeNode{Label: "value", Value: fmt.Sprintf("%#v", props.Value)},
			output.TreeNode{Label: "rendered", Value: fmt.Sprintf("%q", dispatch.Render(props.Value, grid.FormatterDependencies(col, row)))},
		)
	}
	root.Children = append(root.Children,
		output.TreeNode{Label: "dispatch", Value: dispatch.Kind.String()},
		output.TreeNode{Label: "classes", Value: classes.String()},
		output.TreeNode{Label: "state", Children: []output.TreeNode{
			{Label: "selected", Flag: output.Flag(st.Selected)},
			{Label: "column selected", Flag: output.Flag(grid.IsColumnSelected(pos, meta))},
			{Label: "active", Flag: output.Flag(st.Active)},
			{Label: "copied", Flag: output.Flag(st.Copied)},
			{Label: "dragged over", Flag: output.Flag(st.DraggedOver)},
			{Label: "direction", Value: st.Direction().String(), Flag: output.Flag(st.Direction() != grid.DirectionNone)},
			{Label: "was dragged over", Flag: output.Flag(st.WasDraggedOver)},
			{Label: "request focus", Flag: output.Flag(st.RequestFocus)},
		}},
	)

	if o.hasFrom {
		prevMeta := o.metadata()
		prevMeta.Selected = &grid.Selection{RowIdx: o.from.RowIdx, Idx: o.from.Idx}
		prev := props
		prev.Meta = prevMeta
		root.Children = append(root.Children, output.TreeNode{
			Label: "from " + o.from.String(),
			Children: []output.TreeNode{
				{Label: "selection boundary changing", Flag: output.Flag(grid.IsSelectionBoundaryChanging(pos, prevMeta, meta))},
				{Label: "drag changing", Flag: output.Flag(grid.IsDraggedCellChanging(pos, prevMeta, meta))},
				{Label: "copy changing", Flag: output.Flag(grid.IsCopyCellChanging(pos, prevMeta, meta))},
				{Label: "recompute", Flag: output.Flag(grid.ShouldRecompute(prev, props))},
			},
		})
	}
	return root
}

// matchColumn resolves a loose column name to its index.
func matchColumn(cols []*grid.Column, name string) (int, error) {
	keys := make([]string, len(cols))
	for i, c := range cols {
		if strings.EqualFold(c.Key, name) {
			return i, nil
		}
		keys[i] = c.Key
	}
	matches := fuzzy.Find(name, keys)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no column matches %q (columns: %s)", name, strings.Join(keys, ", "))
	}
	return matches[0].Index, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var (
	inspectCellPos grid.Position
	inspectSelPos  grid.Position
	inspectCopyPos grid.Position
	inspectDragPos grid.Position
	inspectFromPos grid.Position
)

func init() {
	f := inspectCmd.Flags()
	f.Var(newPositionValue(&inspectCellPos), "cell", "cell to inspect")
	f.String("column", "", "column key, fuzzy matched (overrides the column of --cell)")
	f.Var(newPositionValue(&inspectSelPos), "select", "selected cell")
	f.Bool("active", false, "selected cell is in edit mode")
	f.Var(newPositionValue(&inspectCopyPos), "copy", "copied cell")
	f.Var(newPositionValue(&inspectDragPos), "drag", "drag anchor cell")
	f.Int("over", 0, "row the drag pointer is over (default: anchor row)")
	f.Bool("complete", false, "drag is complete")
	f.Var(newPositionValue(&inspectFromPos), "from", "previous selection, to report change detection")
	f.Bool("all", false, "show unset state flags")
	f.StringP("query", "q", "", "SQL query for SQLite sources")
	rootCmd.AddCommand(inspectCmd)
}
