// Package repo implements the repository model: the .oops/ directory layout,
// the staging index, refs and commit history, ignore handling, and the
// status/restore/rm orchestration built on them.
package repo

import (
	"errors"

	"github.com/odvcencio/oops/pkg/object"
)

// MetaDir is the repository metadata directory name. It is always excluded
// from tracking.
const MetaDir = ".oops"

// IgnoreFile is the optional ignore file at the working tree root.
const IgnoreFile = ".oopsignore"

// DefaultBranch is the branch name a fresh repository starts on.
const DefaultBranch = "main"

var (
	// ErrNoCommits is returned by operations that require history when the
	// repository has none yet.
	ErrNoCommits = errors.New("no commits yet")

	// ErrFileNotTracked is returned when a restore or rm target has no
	// matching index entry.
	ErrFileNotTracked = errors.New("file is not tracked")
)

// Repository is an opened oops repository.
type Repository struct {
	RootDir string        // working tree root
	OopsDir string        // .oops/ directory
	Store   *object.Store // content-addressed object store
}
