package main

import (
	"fmt"

	"github.com/odvcencio/oops/pkg/diff"
	"github.com/odvcencio/oops/pkg/object"
	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var patch bool
	var contextLines int

	cmd := &cobra.Command{
		Use:   "diff <hash1> <hash2>",
		Short: "Show line changes between two objects",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			out, err := r.Diff(object.Hash(args[0]), object.Hash(args[1]), diff.Options{
				ContextLines:  contextLines,
				GeneratePatch: patch,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&patch, "patch", "p", false, "emit patch format with context lines and file header")
	cmd.Flags().IntVarP(&contextLines, "context", "U", 3, "context lines (accepted; full diff is always shown)")

	return cmd
}
