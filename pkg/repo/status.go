package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/odvcencio/oops/pkg/object"
)

// FileState classifies a single path against the index and working tree.
type FileState int

const (
	StateUnmodified FileState = iota
	StateModified
	StateDeleted
	StateUntracked
	StateDirectory
)

// FileState classifies path. entry is the path's index entry, or nil when
// the path is not tracked.
//
// A missing path is Deleted when indexed, Untracked otherwise. A directory
// on disk is Directory. For an indexed regular file or symlink, an equal
// mtime short-circuits to Unmodified without reading content; an unequal
// mtime forces a re-hash and compare against the stored hash.
func (r *Repository) FileState(path string, entry *IndexEntry) (FileState, error) {
	abs := filepath.Join(r.RootDir, filepath.FromSlash(path))

	info, err := os.Lstat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			if entry != nil {
				return StateDeleted, nil
			}
			return StateUntracked, nil
		}
		return 0, fmt.Errorf("status %q: %w", path, err)
	}

	if info.IsDir() {
		return StateDirectory, nil
	}
	if entry == nil {
		return StateUntracked, nil
	}

	if info.ModTime().UnixNano() == entry.ModTime {
		return StateUnmodified, nil
	}

	content, err := r.pathContent(abs, info)
	if err != nil {
		return 0, fmt.Errorf("status %q: %w", path, err)
	}
	if object.HashBytes(content) != entry.Hash {
		return StateModified, nil
	}
	return StateUnmodified, nil
}

// pathContent reads the comparable content for a working-tree path: file
// bytes for a regular file, the link target for a symlink.
func (r *Repository) pathContent(abs string, info os.FileInfo) ([]byte, error) {
	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := os.Readlink(abs)
		if err != nil {
			return nil, err
		}
		return []byte(target), nil
	}
	return os.ReadFile(abs)
}

// StatusReport is the classified view of the repository.
type StatusReport struct {
	Branch    string // current branch name; empty when detached
	Detached  bool
	Staged    []string // indexed, unchanged since staging (directories included)
	Modified  []string
	Deleted   []string
	Untracked []string
}

// Clean reports whether nothing changed relative to the index.
func (s *StatusReport) Clean() bool {
	return len(s.Modified) == 0 && len(s.Deleted) == 0 && len(s.Untracked) == 0
}

// Status classifies every index entry, then the immediate working-directory
// entries (non-recursive), skipping the metadata directory and ignored
// paths. Top-level entries absent from the index are untracked.
func (r *Repository) Status() (*StatusReport, error) {
	entries, err := r.LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	patterns, err := r.LoadIgnorePatterns()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	branch, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	report := &StatusReport{Branch: branch, Detached: branch == ""}

	indexed := make(map[string]bool, len(entries))
	for i := range entries {
		e := &entries[i]
		indexed[e.Path] = true

		state, err := r.FileState(e.Path, e)
		if err != nil {
			return nil, err
		}
		switch state {
		case StateModified:
			report.Modified = append(report.Modified, e.Path)
		case StateDeleted:
			report.Deleted = append(report.Deleted, e.Path)
		default:
			report.Staged = append(report.Staged, e.Path)
		}
	}

	dirents, err := os.ReadDir(r.RootDir)
	if err != nil {
		return nil, fmt.Errorf("status: read working directory: %w", err)
	}
	for _, d := range dirents {
		name := d.Name()
		if name == MetaDir {
			continue
		}
		if IsIgnored(name, patterns) {
			continue
		}
		if !indexed[name] {
			report.Untracked = append(report.Untracked, name)
		}
	}

	sort.Strings(report.Untracked)
	return report, nil
}
