package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hmis/internal/export"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump-hud-data DIR",
		Short: "Write clients, enrollments and assessments as CSV files into DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := export.New(a.store, a.store, export.WithLogger(a.log)).Dump(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "dumped to", args[0])
			return nil
		},
	}
}
