package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/oops/pkg/object"
)

// RestoreOptions selects where restored content comes from. Source wins over
// Staged; with neither set, the HEAD commit is the reference point.
type RestoreOptions struct {
	Staged bool
	Source object.Hash
}

// Restore writes a tracked path's stored content back to the working tree.
// The path must exist in the index. When a source commit is named (or HEAD
// is used by default), that commit is parsed first so a bad hash or a
// corrupted record surfaces before anything is written; the content itself
// is the index entry's stored object, the only per-file reference this
// model carries.
func (r *Repository) Restore(path string, opts RestoreOptions) error {
	rel := filepath.ToSlash(filepath.Clean(path))

	entries, err := r.LoadIndex()
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	entry := findEntry(entries, rel)
	if entry == nil {
		return fmt.Errorf("restore %q: %w", rel, ErrFileNotTracked)
	}

	switch {
	case opts.Source != "":
		if _, err := r.ReadCommit(opts.Source); err != nil {
			return fmt.Errorf("restore %q: source: %w", rel, err)
		}
	case opts.Staged:
		// Content comes straight from the staged object.
	default:
		head, err := r.Head()
		if err != nil {
			return fmt.Errorf("restore %q: %w", rel, err)
		}
		if _, err := r.ReadCommit(head); err != nil {
			return fmt.Errorf("restore %q: %w", rel, err)
		}
	}

	content, err := r.Store.Read(entry.Hash)
	if err != nil {
		return fmt.Errorf("restore %q: %w", rel, err)
	}

	abs := filepath.Join(r.RootDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("restore %q: mkdir: %w", rel, err)
	}

	switch entry.Type {
	case TypeRegular:
		if err := os.WriteFile(abs, content, os.FileMode(entry.Mode)); err != nil {
			return fmt.Errorf("restore %q: %w", rel, err)
		}
	case TypeSymlink:
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("restore %q: %w", rel, err)
		}
		if err := os.Symlink(string(content), abs); err != nil {
			return fmt.Errorf("restore %q: %w", rel, err)
		}
	case TypeDirectory:
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf("restore %q: %w", rel, err)
		}
	default:
		return fmt.Errorf("restore %q: unsupported file type", rel)
	}

	return nil
}
