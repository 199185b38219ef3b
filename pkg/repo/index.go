package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odvcencio/oops/pkg/glob"
	"github.com/odvcencio/oops/pkg/object"
)

// EntryType is the kind of working-tree path an index entry records.
type EntryType int

const (
	TypeRegular EntryType = iota
	TypeSymlink
	TypeDirectory
	TypeOther
)

// entryTypeFromCode decodes an on-disk type code, rejecting out-of-range
// values rather than carrying them.
func entryTypeFromCode(code int) (EntryType, error) {
	if code < int(TypeRegular) || code > int(TypeOther) {
		return 0, fmt.Errorf("invalid file type code %d", code)
	}
	return EntryType(code), nil
}

// IndexEntry records the staged state of a single tracked path.
type IndexEntry struct {
	Path    string      // working-tree-relative, forward slashes
	Hash    object.Hash // content object in the store
	ModTime int64       // nanosecond-resolution mtime at staging
	Mode    uint32      // permission bits
	Type    EntryType
}

func (r *Repository) indexPath() string {
	return filepath.Join(r.OopsDir, "index")
}

// LoadIndex parses .oops/index. A missing index file yields an empty
// sequence, not an error.
func (r *Repository) LoadIndex() ([]IndexEntry, error) {
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load index: %w", err)
	}

	var entries []IndexEntry
	for lineNo, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			return nil, fmt.Errorf("load index: line %d: want 5 fields, got %d", lineNo+1, len(fields))
		}

		mtime, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("load index: line %d: bad mtime %q: %w", lineNo+1, fields[2], err)
		}
		mode, err := strconv.ParseUint(fields[3], 8, 32)
		if err != nil {
			return nil, fmt.Errorf("load index: line %d: bad mode %q: %w", lineNo+1, fields[3], err)
		}
		code, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("load index: line %d: bad type %q: %w", lineNo+1, fields[4], err)
		}
		typ, err := entryTypeFromCode(code)
		if err != nil {
			return nil, fmt.Errorf("load index: line %d: %w", lineNo+1, err)
		}

		entries = append(entries, IndexEntry{
			Path:    fields[0],
			Hash:    object.Hash(fields[1]),
			ModTime: mtime,
			Mode:    uint32(mode),
			Type:    typ,
		})
	}
	return entries, nil
}

// SaveIndex writes the full entry sequence to .oops/index, one tab-separated
// record per line with the mode in octal. The file is replaced wholesale via
// temp + rename.
func (r *Repository) SaveIndex(entries []IndexEntry) error {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s\t%s\t%d\t%s\t%d\n",
			e.Path, e.Hash, e.ModTime, strconv.FormatUint(uint64(e.Mode), 8), int(e.Type))
	}

	tmp, err := os.CreateTemp(r.OopsDir, ".index-tmp-*")
	if err != nil {
		return fmt.Errorf("save index: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save index: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save index: close: %w", err)
	}
	if err := os.Rename(tmpName, r.indexPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save index: rename: %w", err)
	}
	return nil
}

// Stage stages a single path: content goes to the object store and the
// index entry for the path is updated in place or appended.
func (r *Repository) Stage(path string) error {
	entries, err := r.LoadIndex()
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}
	entries, err = r.stageInto(entries, path)
	if err != nil {
		return err
	}
	if err := r.SaveIndex(entries); err != nil {
		return fmt.Errorf("stage: %w", err)
	}
	return nil
}

// stageInto resolves the path's on-disk kind, writes its content to the
// store, and performs find-or-append on the entry sequence. Regular file
// content is its bytes, symlink content is the link target, directory and
// other kinds store empty content.
func (r *Repository) stageInto(entries []IndexEntry, path string) ([]IndexEntry, error) {
	rel := filepath.ToSlash(filepath.Clean(path))
	abs := filepath.Join(r.RootDir, filepath.FromSlash(rel))

	info, err := os.Lstat(abs)
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", rel, err)
	}

	var typ EntryType
	var content []byte
	switch {
	case info.Mode().IsRegular():
		typ = TypeRegular
		content, err = os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", rel, err)
		}
	case info.Mode()&fs.ModeSymlink != 0:
		typ = TypeSymlink
		target, err := os.Readlink(abs)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", rel, err)
		}
		content = []byte(target)
	case info.IsDir():
		typ = TypeDirectory
	default:
		typ = TypeOther
	}

	h, err := r.Store.Write(content)
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", rel, err)
	}

	entry := IndexEntry{
		Path:    rel,
		Hash:    h,
		ModTime: info.ModTime().UnixNano(),
		Mode:    uint32(info.Mode().Perm()),
		Type:    typ,
	}

	for i := range entries {
		if entries[i].Path == rel {
			entries[i] = entry
			return entries, nil
		}
	}
	return append(entries, entry), nil
}

// AddTree stages a subtree. Two modes:
//
//   - "." stages every non-ignored file and directory under the working
//     tree, pruning ignored directories without descending.
//   - anything else is a glob pattern matched against every path of a full
//     recursive walk; matches are staged (descending into matched
//     directories), and ignored matches are reported back without staging.
//
// The returned slice holds the paths that matched but were ignored.
func (r *Repository) AddTree(pattern string) ([]string, error) {
	entries, err := r.LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	patterns, err := r.LoadIgnorePatterns()
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	exact := pattern == "."
	var ignored []string
	var matchedDirs []string

	underMatchedDir := func(rel string) bool {
		for _, d := range matchedDirs {
			if strings.HasPrefix(rel, d+"/") {
				return true
			}
		}
		return false
	}

	err = filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if rel == MetaDir || strings.HasPrefix(rel, MetaDir+"/") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if exact {
			if IsIgnored(rel, patterns) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			entries, err = r.stageInto(entries, rel)
			return err
		}

		if !glob.Match(pattern, rel) && !underMatchedDir(rel) {
			return nil
		}
		if IsIgnored(rel, patterns) {
			ignored = append(ignored, rel)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			matchedDirs = append(matchedDirs, rel)
		}
		entries, err = r.stageInto(entries, rel)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("add: walk: %w", err)
	}

	if err := r.SaveIndex(entries); err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	return ignored, nil
}

// findEntry returns a pointer into entries for the given path, or nil.
func findEntry(entries []IndexEntry, path string) *IndexEntry {
	for i := range entries {
		if entries[i].Path == path {
			return &entries[i]
		}
	}
	return nil
}
