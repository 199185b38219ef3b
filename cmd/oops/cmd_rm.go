package main

import (
	"fmt"

	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	var cached bool
	var recursive bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rm <pattern>...",
		Short: "Remove tracked files from the index and working tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, pattern := range args {
				res, err := r.Remove(pattern, repo.RemoveOptions{
					Cached:    cached,
					Recursive: recursive,
					DryRun:    dryRun,
				})
				if err != nil {
					return err
				}
				for _, diag := range res.Skipped {
					fmt.Fprintln(cmd.ErrOrStderr(), diag)
				}
				total += res.Removed
			}

			if dryRun {
				fmt.Fprintf(out, "would remove %d entries\n", total)
			} else {
				fmt.Fprintf(out, "removed %d entries\n", total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "remove from index only, keep files on disk")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "allow removing directory entries")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be removed")

	return cmd
}
