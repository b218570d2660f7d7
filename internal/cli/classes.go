package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClassesCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classes [roster.json...]",
		Short: "List the canonical class codes found in rosters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, err := root.setup(cmd)
			if err != nil {
				return err
			}
			if err := importRosters(cmd, svc, l, args); err != nil {
				return err
			}
			for _, c := range svc.Classes(cmd.Context()) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), c); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
