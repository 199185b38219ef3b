package main

import (
	"fmt"

	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newStashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stash",
		Short: "Record a bookmark object pointing at the current HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.Stash()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "stashed as %s\n", h)
			return nil
		},
	}
}
