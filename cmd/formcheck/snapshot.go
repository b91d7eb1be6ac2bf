package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formfeedback/pkg/formspec"
	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

func newSnapshotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot FILE",
		Short: "Print the constraint validity of every field as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := formspec.Load(args[0])
			if err != nil {
				return err
			}
			states := make([]validity.State, 0, len(doc.Fields))
			for _, name := range doc.Names() {
				st, _ := doc.Snapshot(name)
				states = append(states, st)
			}
			a.log.DebugContext(cmd.Context(), "snapshots computed", "count", len(states))
			return writeJSON(cmd.OutOrStdout(), states)
		},
	}
}
