package repo

import (
	"fmt"

	"github.com/odvcencio/oops/pkg/diff"
	"github.com/odvcencio/oops/pkg/object"
)

// Diff reads two objects, computes the line-level edit script between them,
// and renders it. With GeneratePatch, context lines are included and the
// file header naming both hashes follows the body.
func (r *Repository) Diff(h1, h2 object.Hash, opts diff.Options) (string, error) {
	d1, err := r.Store.Read(h1)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	d2, err := r.Store.Read(h2)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}

	script := diff.Lines(diff.SplitLines(string(d1)), diff.SplitLines(string(d2)))
	return diff.Format(script, string(h1), string(h2), opts), nil
}
