// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathgraph/labels"
	"github.com/katalvlaran/pathgraph/panel"
	"github.com/katalvlaran/pathgraph/session"
)

func newLabelsCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Create, edit and inspect the place label layer of a mesh",
	}
	cmd.AddCommand(newLabelsInitCommand(flags))
	cmd.AddCommand(newLabelsSetCommand(flags))
	cmd.AddCommand(newLabelsShowCommand(flags))

	return cmd
}

func newLabelsInitCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init <mesh.obj>",
		Short: "Create the label layer (existing labels are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			obj, err := a.op.LoadMesh(args[0])
			if err != nil {
				return err
			}
			if err := a.op.CreateLabelLayer(); err != nil {
				return hint(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "label layer ready for %s (%d labelled vertices)\n", obj.Name, obj.Labels.Len())
			return nil
		},
	}
}

func newLabelsSetCommand(flags *globalFlags) *cobra.Command {
	var (
		selection string
		place     string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "set <mesh.obj>",
		Short: "Set the place label of the selected vertices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("place") {
				place = a.cfg.Place
			}
			indices, err := parseSelection(selection)
			if err != nil {
				return err
			}

			obj, err := a.op.LoadMesh(args[0])
			if err != nil {
				return err
			}
			a.op.Session.SetMode(session.ModeEdit)
			err = a.op.Session.Do(func(v *session.View) error {
				if all {
					obj.Mesh.SelectAll()
					return nil
				}
				return obj.Mesh.SelectIndices(indices...)
			})
			if err != nil {
				return err
			}

			n, err := a.op.SaveLabel(place)
			if err != nil {
				return hint(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved place %q on %d vertices of %s\n", place, n, obj.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&selection, "select", "", "vertex indices to label, e.g. 0,2,5-7")
	cmd.Flags().StringVar(&place, "place", "", "place label (default: config place)")
	cmd.Flags().BoolVar(&all, "all", false, "label every vertex")

	return cmd
}

func newLabelsShowCommand(flags *globalFlags) *cobra.Command {
	var (
		summary   bool
		selection string
	)

	cmd := &cobra.Command{
		Use:   "show <mesh.obj>",
		Short: "Print the labels of a mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			obj, err := a.op.LoadMesh(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if summary {
				indices, err := parseSelection(selection)
				if err != nil {
					return err
				}
				a.op.Session.SetMode(session.ModeEdit)
				return a.op.Session.Do(func(v *session.View) error {
					if err := obj.Mesh.SelectIndices(indices...); err != nil {
						return err
					}
					st, err := panel.Inspect(v, a.cfg.Overlay)
					if err != nil {
						return err
					}
					for _, line := range st.Lines() {
						fmt.Fprintln(w, line)
					}
					return nil
				})
			}

			if obj.Labels == nil {
				return hint(labels.ErrMissingLayer)
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tID\tX\tY\tZ\tPLACE")
			for _, vert := range obj.Mesh.Vertices() {
				fmt.Fprintf(tw, "%d\t%d\t%g\t%g\t%g\t%s\n", vert.Index, vert.ID, vert.Co.X, vert.Co.Y, vert.Co.Z, obj.Labels.Get(vert.ID))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print the panel summary for --select")
	cmd.Flags().StringVar(&selection, "select", "", "vertex indices for --summary")

	return cmd
}
