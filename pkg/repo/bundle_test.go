package repo

import (
	"bytes"
	"testing"
)

func TestBundle_RoundTrip(t *testing.T) {
	src := mustInit(t)
	writeWorkFile(t, src, "file.txt", "payload")
	if err := src.Stage("file.txt"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	h1, err := src.Commit("one", "tester", nil)
	if err != nil {
		t.Fatalf("commit one: %v", err)
	}
	if err := src.CreateBranch("release"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	h2, err := src.Commit("two", "tester", nil)
	if err != nil {
		t.Fatalf("commit two: %v", err)
	}

	var buf bytes.Buffer
	if err := src.WriteBundle(&buf); err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}

	dst := mustInit(t)
	imported, err := dst.ReadBundle(&buf)
	if err != nil {
		t.Fatalf("ReadBundle: %v", err)
	}

	srcObjects, _ := src.Store.List()
	if imported != len(srcObjects) {
		t.Errorf("imported = %d, want %d", imported, len(srcObjects))
	}

	head, err := dst.Head()
	if err != nil {
		t.Fatalf("dst Head: %v", err)
	}
	if head != h2 {
		t.Errorf("dst HEAD = %s, want %s", head, h2)
	}
	release, err := dst.ReadRef("release")
	if err != nil {
		t.Fatalf("dst release ref: %v", err)
	}
	if release != h1 {
		t.Errorf("dst release = %s, want %s", release, h1)
	}

	// History walks normally in the imported repository.
	page, err := dst.Log("", 10, 1)
	if err != nil {
		t.Fatalf("dst Log: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("dst history length = %d, want 2", page.Total)
	}

	// Content objects arrived intact.
	entries, _ := src.LoadIndex()
	e := findEntry(entries, "file.txt")
	data, err := dst.Store.Read(e.Hash)
	if err != nil {
		t.Fatalf("dst Store.Read: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want payload", data)
	}
}

func TestBundle_EmptyRepository(t *testing.T) {
	src := mustInit(t)

	var buf bytes.Buffer
	if err := src.WriteBundle(&buf); err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}

	dst := mustInit(t)
	imported, err := dst.ReadBundle(&buf)
	if err != nil {
		t.Fatalf("ReadBundle: %v", err)
	}
	if imported != 0 {
		t.Errorf("imported = %d, want 0", imported)
	}
}

func TestReadBundle_RejectsGarbage(t *testing.T) {
	dst := mustInit(t)

	if _, err := dst.ReadBundle(bytes.NewReader([]byte("not a bundle"))); err == nil {
		t.Fatal("ReadBundle accepted uncompressed garbage")
	}
}
