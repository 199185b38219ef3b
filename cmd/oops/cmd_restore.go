package main

import (
	"fmt"

	"github.com/odvcencio/oops/pkg/object"
	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newRestoreCmd() *cobra.Command {
	var staged bool
	var source string

	cmd := &cobra.Command{
		Use:   "restore <path>...",
		Short: "Write tracked content back to the working tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			for _, path := range args {
				err := r.Restore(path, repo.RestoreOptions{
					Staged: staged,
					Source: object.Hash(source),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "restore from the staged object")
	cmd.Flags().StringVar(&source, "source", "", "restore relative to the given commit hash")

	return cmd
}
