// SPDX-License-Identifier: MIT

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathgraph/panel"
)

func newPanelCommand(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "panel <mesh.obj>",
		Short: "Open the interactive labelling panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.op.LoadMesh(args[0]); err != nil {
				return err
			}
			m, err := panel.New(a.op, a.cfg.Overlay, a.cfg.Place, output)
			if err != nil {
				return hint(err)
			}
			defer m.Close()

			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "export path (default <object name>.json)")

	return cmd
}
