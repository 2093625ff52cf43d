// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathgraph/ops"
)

func newExportCommand(flags *globalFlags) *cobra.Command {
	var (
		output string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export <mesh.obj|glob>...",
		Short: "Export the vertex graph of one or more meshes as JSON",
		Long: `Export writes {"verts": [...], "graph": {...}} for every mesh. Arguments
may be doublestar globs such as "levels/**/*.obj". Without -o or --out-dir
each mesh is written to "<object name>.json" in the working directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && outDir != "" {
				return errors.New("-o and --out-dir are mutually exclusive")
			}
			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			if output != "" && len(inputs) > 1 {
				return fmt.Errorf("-o needs exactly one mesh, %d matched", len(inputs))
			}

			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
			}

			var failed int
			for _, in := range inputs {
				obj, err := a.op.LoadMesh(in)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", in, err)
					failed++
					continue
				}
				path := output
				if outDir != "" {
					path = filepath.Join(outDir, ops.DefaultExportPath(obj.Name))
				}
				written, err := a.op.ExportGraph(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", in, hint(err))
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "JSON file '%s' has been created.\n", written)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d exports failed", failed, len(inputs))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single mesh only)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for <name>.json outputs")

	return cmd
}
