package main

import (
	"fmt"
	"strings"

	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path|pattern>...",
		Short: "Stage files for the next commit",
		Long: `Stage files for the next commit.

A "." stages the whole working tree; an argument containing * or ?
is treated as a glob pattern against the full tree; anything else is
staged as a single path.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				if arg == "." || strings.ContainsAny(arg, "*?") {
					ignored, err := r.AddTree(arg)
					if err != nil {
						return err
					}
					for _, p := range ignored {
						fmt.Fprintf(out, "ignored: %s\n", p)
					}
					continue
				}
				if err := r.Stage(arg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
