package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/odvcencio/oops/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string
	var author string
	var metaFlags []string
	var sign bool
	var signKey string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record changes to the repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			cfg, err := r.ReadConfig()
			if err != nil {
				return err
			}

			if author == "" {
				author = cfg.User.Name
			}
			if author == "" {
				author = os.Getenv("USER")
			}
			if author == "" {
				author = "unknown"
			}

			metadata := make(map[string]string, len(metaFlags))
			for _, kv := range metaFlags {
				key, val, ok := strings.Cut(kv, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid --meta %q; expected key=value", kv)
				}
				metadata[key] = val
			}

			var signer repo.CommitSigner
			if sign {
				keyPath := signKey
				if keyPath == "" {
					keyPath = cfg.Commit.SigningKey
				}
				s, resolved, err := newSSHCommitSigner(keyPath)
				if err != nil {
					return err
				}
				signer = s
				fmt.Fprintf(cmd.OutOrStdout(), "signing with %s\n", resolved)
			}

			h, err := r.CommitWithSigner(message, author, metadata, signer)
			if err != nil {
				return err
			}

			branch, _ := r.CurrentBranch()
			if branch == "" {
				branch = "HEAD"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "[%s %s] %s\n", branch, shortHash(string(h)), strings.TrimRight(message, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&author, "author", "", "override author (default: config user.name, then $USER)")
	cmd.Flags().StringArrayVar(&metaFlags, "meta", nil, "attach a key=value metadata header (repeatable)")
	cmd.Flags().BoolVarP(&sign, "sign", "S", false, "sign the commit with an SSH key")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "path to the SSH private key used for signing")

	return cmd
}
