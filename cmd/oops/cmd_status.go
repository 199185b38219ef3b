package main

import (
	"errors"
	"fmt"

	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working tree status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			report, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if report.Detached {
				head, err := r.Head()
				if err != nil && !errors.Is(err, repo.ErrNoCommits) {
					return err
				}
				fmt.Fprintf(out, "HEAD detached at %s\n", shortHash(string(head)))
			} else if _, err := r.Head(); errors.Is(err, repo.ErrNoCommits) {
				fmt.Fprintf(out, "on %s (no commits yet)\n", report.Branch)
			} else {
				fmt.Fprintf(out, "on %s\n", report.Branch)
			}

			if report.Clean() {
				fmt.Fprintln(out, "nothing to commit, working tree clean")
				return nil
			}

			if len(report.Staged) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "staged:")
				for _, p := range report.Staged {
					fmt.Fprintf(out, "  + %s\n", p)
				}
			}

			if len(report.Modified) > 0 || len(report.Deleted) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "changes not staged:")
				for _, p := range report.Modified {
					fmt.Fprintf(out, "  ~ %s\n", p)
				}
				for _, p := range report.Deleted {
					fmt.Fprintf(out, "  - %s\n", p)
				}
			}

			if len(report.Untracked) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "untracked:")
				for _, p := range report.Untracked {
					fmt.Fprintf(out, "  %s\n", p)
				}
			}

			return nil
		},
	}
}
