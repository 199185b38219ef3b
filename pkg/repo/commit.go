package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/oops/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an encoded
// signature string, carried as a "signature" metadata header.
type CommitSigner func(payload []byte) (string, error)

// Commit records a new commit from the current HEAD.
//
//  1. Resolve HEAD as parent (absent for the first commit).
//  2. Build the commit with the wall clock and the given author/metadata.
//  3. Write the serialized record to the object store.
//  4. The returned hash becomes the new HEAD.
func (r *Repository) Commit(message, author string, metadata map[string]string) (object.Hash, error) {
	return r.CommitWithSigner(message, author, metadata, nil)
}

// CommitWithSigner records a commit and signs it when signer is non-nil.
func (r *Repository) CommitWithSigner(message, author string, metadata map[string]string, signer CommitSigner) (object.Hash, error) {
	var parent object.Hash
	if head, err := r.Head(); err == nil {
		parent = head
	} else if !errors.Is(err, ErrNoCommits) {
		return "", fmt.Errorf("commit: %w", err)
	}

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}

	c := &object.Commit{
		Parent:    parent,
		Timestamp: time.Now().Unix(),
		Author:    author,
		Metadata:  meta,
		Message:   message,
	}

	if signer != nil {
		sig, err := signer(object.SigningPayload(c))
		if err != nil {
			return "", fmt.Errorf("commit: sign: %w", err)
		}
		c.Metadata["signature"] = sig
	}

	h, err := r.Store.Write(object.MarshalCommit(c))
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	if err := r.WriteRef(headRef, h); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return h, nil
}

// ReadCommit reads and parses the commit stored at hash.
func (r *Repository) ReadCommit(h object.Hash) (*object.Commit, error) {
	data, err := r.Store.Read(h)
	if err != nil {
		return nil, err
	}
	return object.UnmarshalCommit(data)
}

// CreateBranch writes a ref file pointing at the current HEAD commit.
// A repository without commits has nothing to branch from.
func (r *Repository) CreateBranch(name string) error {
	head, err := r.Head()
	if err != nil {
		return fmt.Errorf("branch %q: %w", name, err)
	}
	if err := r.WriteRef(name, head); err != nil {
		return fmt.Errorf("branch %q: %w", name, err)
	}
	return nil
}

// Checkout moves HEAD. If a branch ref named target exists, HEAD takes that
// ref's hash and the display branch name becomes target. Otherwise target is
// treated as a raw commit hash: HEAD takes it verbatim and the branch name
// is cleared, leaving the repository in detached state.
func (r *Repository) Checkout(target string) error {
	if h, err := r.ReadRef(target); err == nil {
		if err := r.WriteRef(headRef, h); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		if err := r.setCurrentBranch(target); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		return nil
	}

	h := object.Hash(target)
	if !r.Store.Has(h) {
		return fmt.Errorf("checkout %q: %w", target, object.ErrNotFound)
	}
	if err := r.WriteRef(headRef, h); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.setCurrentBranch(""); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}

// Stash writes a one-way bookmark object recording the current HEAD and the
// wall clock, and returns its hash. Nothing restores a stash.
func (r *Repository) Stash() (object.Hash, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("stash: %w", err)
	}

	record := fmt.Sprintf("stash: %s\ntimestamp: %d\n", head, time.Now().Unix())
	h, err := r.Store.Write([]byte(record))
	if err != nil {
		return "", fmt.Errorf("stash: %w", err)
	}
	return h, nil
}
