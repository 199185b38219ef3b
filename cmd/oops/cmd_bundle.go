package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newBundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bundle <file>",
		Short: "Export all objects and refs to a compressed bundle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create bundle file: %w", err)
			}
			defer f.Close()

			if err := r.WriteBundle(f); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close bundle file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote bundle to %s\n", args[0])
			return nil
		},
	}
}

func newUnbundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unbundle <file>",
		Short: "Import objects and refs from a bundle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open bundle file: %w", err)
			}
			defer f.Close()

			n, err := r.ReadBundle(f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d objects\n", n)
			return nil
		},
	}
}
