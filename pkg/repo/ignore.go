package repo

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadIgnorePatterns returns the ignore pattern list: the repository
// metadata directory is always present, followed by every non-blank,
// non-comment trimmed line of .oopsignore. A missing ignore file is fine.
func (r *Repository) LoadIgnorePatterns() ([]string, error) {
	patterns := []string{MetaDir}

	f, err := os.Open(filepath.Join(r.RootDir, IgnoreFile))
	if err != nil {
		if os.IsNotExist(err) {
			return patterns, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// IsIgnored reports whether any pattern matches path. Patterns use
// segment/anchor matching:
//
//   - a pattern with no slash matches if it equals any path component;
//   - a pattern starting with "/" matches if the path starts with the
//     pattern minus the leading slash;
//   - any other pattern with internal slashes matches component-by-component:
//     some path component must equal the pattern's first component and the
//     following components must line up until the pattern is consumed.
//
// Matching a directory pattern implies everything below it is ignored, so
// walks can prune matched directories without descending.
func IsIgnored(path string, patterns []string) bool {
	path = filepath.ToSlash(path)
	for _, p := range patterns {
		if matchSegments(p, path) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, path string) bool {
	if strings.HasPrefix(pattern, "/") {
		return strings.HasPrefix(path, pattern[1:])
	}

	segs := strings.Split(path, "/")
	if !strings.Contains(pattern, "/") {
		for _, s := range segs {
			if s == pattern {
				return true
			}
		}
		return false
	}

	psegs := strings.Split(pattern, "/")
	for i := range segs {
		if segs[i] != psegs[0] {
			continue
		}
		// Anchor found; the rest of the pattern chain must follow.
		if len(psegs) <= len(segs)-i {
			ok := true
			for j := 1; j < len(psegs); j++ {
				if segs[i+j] != psegs[j] {
					ok = false
					break
				}
			}
			if ok {
				return true
			}
		}
	}
	return false
}
