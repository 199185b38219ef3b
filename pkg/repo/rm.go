package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/oops/pkg/glob"
)

// RemoveOptions controls Remove behavior.
type RemoveOptions struct {
	Cached    bool // remove from index only, keep working tree intact
	Recursive bool // allow removing directory entries
	DryRun    bool // report what would happen without touching index or tree
}

// RemoveResult reports what Remove did.
type RemoveResult struct {
	Removed int      // index entries affected
	Skipped []string // per-entry diagnostics for skipped entries
}

// Remove deletes index entries whose path matches pattern (glob semantics).
// Directory entries need Recursive. Unless Cached, the working-tree path is
// deleted too; a delete failure skips that entry and the loop continues.
// The index is persisted unless DryRun. A pattern matching no entry at all
// is ErrFileNotTracked.
func (r *Repository) Remove(pattern string, opts RemoveOptions) (*RemoveResult, error) {
	entries, err := r.LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("rm: %w", err)
	}

	res := &RemoveResult{}
	matched := false
	kept := entries[:0:0]

	for _, e := range entries {
		if !glob.Match(pattern, e.Path) {
			kept = append(kept, e)
			continue
		}
		matched = true

		if e.Type == TypeDirectory && !opts.Recursive {
			res.Skipped = append(res.Skipped, fmt.Sprintf("not removing %q: is a directory (use -r)", e.Path))
			kept = append(kept, e)
			continue
		}

		if !opts.Cached && !opts.DryRun {
			abs := filepath.Join(r.RootDir, filepath.FromSlash(e.Path))
			var delErr error
			if e.Type == TypeDirectory {
				delErr = os.RemoveAll(abs)
			} else {
				delErr = os.Remove(abs)
				if os.IsNotExist(delErr) {
					delErr = nil
				}
			}
			if delErr != nil {
				res.Skipped = append(res.Skipped, fmt.Sprintf("cannot remove %q: %v", e.Path, delErr))
				kept = append(kept, e)
				continue
			}
		}

		res.Removed++
		if opts.DryRun {
			kept = append(kept, e)
		}
	}

	if !matched {
		return nil, fmt.Errorf("rm %q: %w", pattern, ErrFileNotTracked)
	}

	if !opts.DryRun {
		if err := r.SaveIndex(kept); err != nil {
			return nil, fmt.Errorf("rm: %w", err)
		}
	}
	return res, nil
}
