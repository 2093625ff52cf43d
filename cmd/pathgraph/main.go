// SPDX-License-Identifier: MIT

// Command pathgraph labels mesh vertices with places and exports the vertex
// graph as JSON for external pathfinding tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pathgraph:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "pathgraph",
		Short: "Label mesh vertices with places and export the vertex graph",
		Long: `pathgraph attaches a "place" label to vertices of an OBJ mesh and exports
the mesh as a weighted graph: one node per vertex index, one edge per mesh
edge weighted by its length, plus per-vertex coordinates and labels.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ./pathgraph.yaml if present)")
	pf.StringVar(&flags.store, "store", "", "label store driver: sqlite|memory")
	pf.StringVar(&flags.db, "db", "", "SQLite label database path")
	pf.IntVar(&flags.indent, "indent", 0, "JSON indentation width (0 = config)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(newLabelsCommand(flags))
	rootCmd.AddCommand(newExportCommand(flags))
	rootCmd.AddCommand(newPanelCommand(flags))
	rootCmd.AddCommand(newWatchCommand(flags))

	return rootCmd
}
