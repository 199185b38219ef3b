package main

import (
	"fmt"

	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <branch|hash>",
		Short: "Point HEAD at a branch or a raw commit hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if err := r.Checkout(args[0]); err != nil {
				return err
			}

			branch, _ := r.CurrentBranch()
			if branch == "" {
				head, err := r.Head()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "HEAD detached at %s\n", shortHash(string(head)))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "switched to branch '%s'\n", branch)
			}
			return nil
		},
	}
}
