package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRestore_StagedContent(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "file.txt", "staged")
	if err := r.Stage("file.txt"); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	// Clobber, then restore from the staged object.
	writeWorkFile(t, r, "file.txt", "dirty edit")
	if err := r.Restore("file.txt", RestoreOptions{Staged: true}); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(r.RootDir, "file.txt"))
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if string(data) != "staged" {
		t.Errorf("content = %q, want staged version", data)
	}
}

func TestRestore_DefaultNeedsHeadCommit(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "file.txt", "v1")
	if err := r.Stage("file.txt"); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	err := r.Restore("file.txt", RestoreOptions{})
	if !errors.Is(err, ErrNoCommits) {
		t.Errorf("err = %v, want ErrNoCommits before any commit", err)
	}

	if _, err := r.Commit("first", "tester", nil); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeWorkFile(t, r, "file.txt", "dirty")
	if err := r.Restore("file.txt", RestoreOptions{}); err != nil {
		t.Fatalf("Restore after commit: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(r.RootDir, "file.txt"))
	if string(data) != "v1" {
		t.Errorf("content = %q, want v1", data)
	}
}

func TestRestore_SourceCommitValidated(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "file.txt", "v1")
	if err := r.Stage("file.txt"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	h, err := r.Commit("first", "tester", nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	writeWorkFile(t, r, "file.txt", "dirty")
	if err := r.Restore("file.txt", RestoreOptions{Source: h}); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(r.RootDir, "file.txt"))
	if string(data) != "v1" {
		t.Errorf("content = %q, want v1", data)
	}

	// A bogus source aborts before anything is written.
	writeWorkFile(t, r, "file.txt", "dirty again")
	bad := r.Restore("file.txt", RestoreOptions{Source: "0000000000000000000000000000000000000000"})
	if bad == nil {
		t.Fatal("Restore accepted unknown source commit")
	}
	data, _ = os.ReadFile(filepath.Join(r.RootDir, "file.txt"))
	if string(data) != "dirty again" {
		t.Errorf("failed restore modified the working tree: %q", data)
	}
}

func TestRestore_UntrackedPath(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "loose.txt", "x")

	err := r.Restore("loose.txt", RestoreOptions{Staged: true})
	if !errors.Is(err, ErrFileNotTracked) {
		t.Errorf("err = %v, want ErrFileNotTracked", err)
	}
}

func TestRestore_Symlink(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "target.txt", "t")
	link := filepath.Join(r.RootDir, "link")
	if err := os.Symlink("target.txt", link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := r.Stage("link"); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	// Repoint the link, then restore the staged target.
	if err := os.Remove(link); err != nil {
		t.Fatalf("remove link: %v", err)
	}
	if err := os.Symlink("elsewhere", link); err != nil {
		t.Fatalf("repoint link: %v", err)
	}

	if err := r.Restore("link", RestoreOptions{Staged: true}); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	got, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if got != "target.txt" {
		t.Errorf("link target = %q, want target.txt", got)
	}
}

func TestRestore_DeletedFileRecreated(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "file.txt", "keep me")
	if err := r.Stage("file.txt"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := os.Remove(filepath.Join(r.RootDir, "file.txt")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := r.Restore("file.txt", RestoreOptions{Staged: true}); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(r.RootDir, "file.txt"))
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if string(data) != "keep me" {
		t.Errorf("content = %q", data)
	}
}
