package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/oops/pkg/object"
)

// Init creates a new repository at path. It creates the .oops/ directory
// structure (objects/, refs/) and the branch name file. Returns an error if
// a .oops/ directory already exists.
func Init(path string) (*Repository, error) {
	oopsDir := filepath.Join(path, MetaDir)

	if _, err := os.Stat(oopsDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", oopsDir)
	}

	dirs := []string{
		filepath.Join(oopsDir, "objects"),
		filepath.Join(oopsDir, "refs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	// HEAD does not exist until the first commit; only the display branch
	// name is seeded.
	branchPath := filepath.Join(oopsDir, "branch")
	if err := os.WriteFile(branchPath, []byte(DefaultBranch+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write branch file: %w", err)
	}

	return &Repository{
		RootDir: path,
		OopsDir: oopsDir,
		Store:   object.NewStore(oopsDir),
	}, nil
}

// Open searches upward from path for a .oops/ directory and opens the
// repository. Returns an error if none is found.
func Open(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		oopsDir := filepath.Join(cur, MetaDir)
		info, err := os.Stat(oopsDir)
		if err == nil && info.IsDir() {
			return &Repository{
				RootDir: cur,
				OopsDir: oopsDir,
				Store:   object.NewStore(oopsDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not an oops repository (or any parent up to /)")
		}
		cur = parent
	}
}
