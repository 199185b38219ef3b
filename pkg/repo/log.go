package repo

import (
	"fmt"

	"github.com/odvcencio/oops/pkg/object"
)

// LogEntry pairs a commit with the hash it is stored under.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.Commit
}

// LogPage is one page of history, newest first.
type LogPage struct {
	Entries   []LogEntry
	Page      int
	PageCount int
	Total     int
}

// Log walks the parent chain from the named branch (or HEAD when branch is
// empty) to the root and returns the requested page. Page numbering starts
// at 1; PageCount is ceil(total / pageSize).
//
// A negative commit timestamp means the repository data is corrupted and
// aborts the walk.
func (r *Repository) Log(branch string, pageSize, pageNumber int) (*LogPage, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("log: page size %d out of range", pageSize)
	}
	if pageNumber < 1 {
		return nil, fmt.Errorf("log: page number %d out of range", pageNumber)
	}

	var start object.Hash
	if branch != "" {
		h, err := r.ReadRef(branch)
		if err != nil {
			return nil, fmt.Errorf("log: %w", ErrNoCommits)
		}
		start = h
	} else {
		h, err := r.Head()
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		start = h
	}

	var all []LogEntry
	for current := start; current != ""; {
		c, err := r.ReadCommit(current)
		if err != nil {
			return nil, fmt.Errorf("log: read commit %s: %w", current, err)
		}
		if c.Timestamp < 0 {
			return nil, fmt.Errorf("log: commit %s: negative timestamp %d: repository data is corrupted", current, c.Timestamp)
		}
		all = append(all, LogEntry{Hash: current, Commit: c})
		current = c.Parent
	}

	total := len(all)
	startIdx := pageSize * (pageNumber - 1)
	endIdx := startIdx + pageSize
	if endIdx > total {
		endIdx = total
	}
	if startIdx > total {
		startIdx = total
	}

	return &LogPage{
		Entries:   all[startIdx:endIdx],
		Page:      pageNumber,
		PageCount: (total + pageSize - 1) / pageSize,
		Total:     total,
	}, nil
}
