package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcus/cellgrid/internal/output"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "cellgrid",
	Short: "Terminal data grid for CSV files and SQLite databases",
	Long: `cellgrid - An interactive terminal data grid.

Opens CSV files or SQLite tables in a spreadsheet-like view with keyboard and
mouse selection, inline editing, copy/paste and drag-fill.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if name := firstNonFlagArg(os.Args[1:]); name != "" && isUnknownCommand(err) {
			output.Error("unknown command %q", name)
			if s := suggestCommands(name); len(s) > 0 {
				fmt.Fprintf(os.Stderr, "Did you mean: %s\n", strings.Join(s, ", "))
			}
		} else {
			output.Error("%v", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
	rootCmd.PersistentFlags().String("dir", "", "project directory holding .cellgrid/config.yaml (default: working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file (overrides config)")
}

func initBaseDir() {
	if dir, _ := rootCmd.PersistentFlags().GetString("dir"); dir != "" {
		baseDir = dir
		return
	}
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

// firstNonFlagArg returns the first argument that is not a flag.
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

func isUnknownCommand(err error) bool {
	return strings.HasPrefix(err.Error(), "unknown command")
}

// suggestCommands fuzzy-matches name against the registered commands.
func suggestCommands(name string) []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	var out []string
	for _, m := range fuzzy.Find(name, names) {
		out = append(out, m.Str)
	}
	return out
}
