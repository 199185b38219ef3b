package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var branch string
	var pageSize int
	var page int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			lp, err := r.Log(branch, pageSize, page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range lp.Entries {
				c := entry.Commit
				fmt.Fprintf(out, "commit %s\n", entry.Hash)
				fmt.Fprintf(out, "Author: %s\n", c.Author)
				fmt.Fprintf(out, "Date:   %s\n", time.Unix(c.Timestamp, 0).Format("2006-01-02 15:04:05"))
				if len(c.Metadata) > 0 {
					keys := make([]string, 0, len(c.Metadata))
					for k := range c.Metadata {
						keys = append(keys, k)
					}
					sort.Strings(keys)
					for _, k := range keys {
						fmt.Fprintf(out, "%s: %s\n", k, c.Metadata[k])
					}
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "    %s\n", strings.TrimRight(c.Message, "\n"))
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "page %d of %d (%d commits)\n", lp.Page, lp.PageCount, lp.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "start from the named branch instead of HEAD")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "commits per page")
	cmd.Flags().IntVar(&page, "page", 1, "page number to show")

	return cmd
}
