package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/odvcencio/oops/pkg/object"
)

const (
	headRef = "HEAD"

	refLockRetryDelay = 5 * time.Millisecond
	refLockWaitLimit  = 2 * time.Second
)

func (r *Repository) refPath(name string) string {
	return filepath.Join(r.OopsDir, "refs", name)
}

func (r *Repository) branchFilePath() string {
	return filepath.Join(r.OopsDir, "branch")
}

// Head returns the commit hash HEAD points at. A repository with no commits
// has no HEAD file and yields ErrNoCommits.
func (r *Repository) Head() (object.Hash, error) {
	h, err := r.ReadRef(headRef)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoCommits
		}
		return "", err
	}
	return h, nil
}

// ReadRef reads the hash stored in the named ref file.
func (r *Repository) ReadRef(name string) (object.Hash, error) {
	data, err := os.ReadFile(r.refPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("ref %q: %w", name, err)
		}
		return "", fmt.Errorf("read ref %q: %w", name, err)
	}
	return object.Hash(strings.TrimSpace(string(data))), nil
}

// WriteRef writes a hash to the named ref file using lockfile + rename
// atomic semantics.
func (r *Repository) WriteRef(name string, h object.Hash) error {
	refPath := r.refPath(name)
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}

	lockPath := refPath + ".lock"
	lockFile, err := acquireRefLock(lockPath)
	if err != nil {
		return fmt.Errorf("update ref %q: lock: %w", name, err)
	}
	cleanupLock := true
	defer func() {
		if lockFile != nil {
			_ = lockFile.Close()
		}
		if cleanupLock {
			_ = os.Remove(lockPath)
		}
	}()

	if _, err := lockFile.WriteString(string(h) + "\n"); err != nil {
		return fmt.Errorf("update ref %q: write: %w", name, err)
	}
	if err := lockFile.Sync(); err != nil {
		return fmt.Errorf("update ref %q: sync: %w", name, err)
	}
	if err := lockFile.Close(); err != nil {
		lockFile = nil
		return fmt.Errorf("update ref %q: close: %w", name, err)
	}
	lockFile = nil

	if err := os.Rename(lockPath, refPath); err != nil {
		return fmt.Errorf("update ref %q: rename: %w", name, err)
	}
	cleanupLock = false
	return nil
}

func acquireRefLock(lockPath string) (*os.File, error) {
	deadline := time.Now().Add(refLockWaitLimit)
	for {
		f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if os.IsExist(err) {
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("timeout waiting for lock %q", lockPath)
			}
			time.Sleep(refLockRetryDelay)
			continue
		}
		return nil, err
	}
}

// CurrentBranch reads the display branch name. An empty name means HEAD is
// detached.
func (r *Repository) CurrentBranch() (string, error) {
	data, err := os.ReadFile(r.branchFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("current branch: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// setCurrentBranch updates the display branch name file. An empty name
// records detached state.
func (r *Repository) setCurrentBranch(name string) error {
	content := ""
	if name != "" {
		content = name + "\n"
	}
	if err := os.WriteFile(r.branchFilePath(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("set current branch: %w", err)
	}
	return nil
}

// ListBranches returns the branch names under .oops/refs/, sorted, with
// HEAD excluded.
func (r *Repository) ListBranches() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.OopsDir, "refs"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == headRef {
			continue
		}
		if strings.HasSuffix(e.Name(), ".lock") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ListRefs returns every ref (HEAD included, when present) as name → hash.
func (r *Repository) ListRefs() (map[string]object.Hash, error) {
	refs := make(map[string]object.Hash)

	entries, err := os.ReadDir(filepath.Join(r.OopsDir, "refs"))
	if err != nil {
		if os.IsNotExist(err) {
			return refs, nil
		}
		return nil, fmt.Errorf("list refs: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".lock") {
			continue
		}
		h, err := r.ReadRef(e.Name())
		if err != nil {
			return nil, err
		}
		refs[e.Name()] = h
	}
	return refs, nil
}
