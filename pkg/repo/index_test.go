package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustInit(t *testing.T) *Repository {
	t.Helper()
	r, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

func writeWorkFile(t *testing.T, r *Repository, rel, content string) {
	t.Helper()
	abs := filepath.Join(r.RootDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestStage_RegularFile(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "file.txt", "hello")

	if err := r.Stage("file.txt"); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	entries, err := r.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.Path != "file.txt" {
		t.Errorf("Path = %q", e.Path)
	}
	if e.Type != TypeRegular {
		t.Errorf("Type = %d, want TypeRegular", e.Type)
	}
	if len(e.Hash) != 40 {
		t.Errorf("Hash = %q, want 40 hex chars", e.Hash)
	}

	content, err := r.Store.Read(e.Hash)
	if err != nil {
		t.Fatalf("Store.Read: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("stored content = %q, want %q", content, "hello")
	}
}

func TestStage_UpdateInPlaceKeepsOrder(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "a.txt", "a")
	writeWorkFile(t, r, "b.txt", "b")

	if err := r.Stage("a.txt"); err != nil {
		t.Fatalf("Stage a: %v", err)
	}
	if err := r.Stage("b.txt"); err != nil {
		t.Fatalf("Stage b: %v", err)
	}

	// Restage the first path with new content; it must update in place,
	// not append.
	writeWorkFile(t, r, "a.txt", "a-v2")
	if err := r.Stage("a.txt"); err != nil {
		t.Fatalf("restage a: %v", err)
	}

	entries, err := r.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entry count = %d, want 2", len(entries))
	}
	if entries[0].Path != "a.txt" || entries[1].Path != "b.txt" {
		t.Errorf("order = %s, %s; want a.txt, b.txt", entries[0].Path, entries[1].Path)
	}

	content, _ := r.Store.Read(entries[0].Hash)
	if string(content) != "a-v2" {
		t.Errorf("a.txt content = %q, want a-v2", content)
	}
}

func TestStage_Symlink(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "target.txt", "data")
	if err := os.Symlink("target.txt", filepath.Join(r.RootDir, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if err := r.Stage("link"); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	entries, _ := r.LoadIndex()
	e := findEntry(entries, "link")
	if e == nil {
		t.Fatal("no entry for link")
	}
	if e.Type != TypeSymlink {
		t.Errorf("Type = %d, want TypeSymlink", e.Type)
	}

	content, _ := r.Store.Read(e.Hash)
	if string(content) != "target.txt" {
		t.Errorf("symlink content = %q, want link target", content)
	}
}

func TestStage_Directory(t *testing.T) {
	r := mustInit(t)
	if err := os.Mkdir(filepath.Join(r.RootDir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := r.Stage("sub"); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	entries, _ := r.LoadIndex()
	e := findEntry(entries, "sub")
	if e == nil || e.Type != TypeDirectory {
		t.Fatalf("directory entry missing or wrong type: %+v", e)
	}

	content, err := r.Store.Read(e.Hash)
	if err != nil {
		t.Fatalf("Store.Read: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("directory content = %q, want empty", content)
	}
}

func TestStage_MissingPath(t *testing.T) {
	r := mustInit(t)
	if err := r.Stage("nope.txt"); err == nil {
		t.Fatal("Stage on missing path succeeded, want error")
	}
}

func TestIndex_SaveLoadRoundTrip(t *testing.T) {
	r := mustInit(t)

	in := []IndexEntry{
		{Path: "x/y.txt", Hash: "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d", ModTime: 1234567890123456789, Mode: 0o644, Type: TypeRegular},
		{Path: "ln", Hash: "da39a3ee5e6b4b0d3255bfef95601890afd80709", ModTime: 42, Mode: 0o777, Type: TypeSymlink},
	}
	if err := r.SaveIndex(in); err != nil {
		t.Fatalf("SaveIndex: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(r.OopsDir, "index"))
	if err != nil {
		t.Fatalf("read index file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
	// Fixed field order: path, hash, mtime, mode (octal), type code.
	if lines[0] != "x/y.txt\taaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d\t1234567890123456789\t644\t0" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "ln\tda39a3ee5e6b4b0d3255bfef95601890afd80709\t42\t777\t1" {
		t.Errorf("line 2 = %q", lines[1])
	}

	out, err := r.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestIndex_LoadMissingFileIsEmpty(t *testing.T) {
	r := mustInit(t)

	entries, err := r.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want empty", entries)
	}
}

func TestIndex_RejectsBadTypeCode(t *testing.T) {
	r := mustInit(t)

	line := "f.txt\tda39a3ee5e6b4b0d3255bfef95601890afd80709\t1\t644\t9\n"
	if err := os.WriteFile(filepath.Join(r.OopsDir, "index"), []byte(line), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	if _, err := r.LoadIndex(); err == nil {
		t.Fatal("LoadIndex accepted out-of-range type code, want error")
	}
}

func TestAddTree_DotStagesEverythingExceptIgnored(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "keep.txt", "k")
	writeWorkFile(t, r, "sub/inner.txt", "i")
	writeWorkFile(t, r, "build/out.bin", "o")
	writeWorkFile(t, r, IgnoreFile, "build\n")

	if _, err := r.AddTree("."); err != nil {
		t.Fatalf("AddTree: %v", err)
	}

	entries, _ := r.LoadIndex()
	paths := make(map[string]bool)
	for _, e := range entries {
		paths[e.Path] = true
	}

	for _, want := range []string{"keep.txt", "sub", "sub/inner.txt", IgnoreFile} {
		if !paths[want] {
			t.Errorf("missing staged path %q; staged: %v", want, paths)
		}
	}
	if paths["build"] || paths["build/out.bin"] {
		t.Errorf("ignored build/ was staged: %v", paths)
	}
}

func TestAddTree_GlobPattern(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "a.go", "a")
	writeWorkFile(t, r, "b.go", "b")
	writeWorkFile(t, r, "c.txt", "c")

	if _, err := r.AddTree("*.go"); err != nil {
		t.Fatalf("AddTree: %v", err)
	}

	entries, _ := r.LoadIndex()
	paths := make(map[string]bool)
	for _, e := range entries {
		paths[e.Path] = true
	}
	if !paths["a.go"] || !paths["b.go"] {
		t.Errorf("glob matches not staged: %v", paths)
	}
	if paths["c.txt"] {
		t.Errorf("non-match c.txt staged: %v", paths)
	}
}

func TestAddTree_GlobReportsIgnoredMatches(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "note.tmp", "n")
	writeWorkFile(t, r, "note.txt", "n")
	writeWorkFile(t, r, IgnoreFile, "note.tmp\n")

	ignored, err := r.AddTree("note.*")
	if err != nil {
		t.Fatalf("AddTree: %v", err)
	}

	if len(ignored) != 1 || ignored[0] != "note.tmp" {
		t.Errorf("ignored = %v, want [note.tmp]", ignored)
	}

	entries, _ := r.LoadIndex()
	if findEntry(entries, "note.tmp") != nil {
		t.Error("ignored match was staged")
	}
	if findEntry(entries, "note.txt") == nil {
		t.Error("note.txt not staged")
	}
}

func TestAddTree_GlobRecursesIntoMatchedDirectory(t *testing.T) {
	r := mustInit(t)
	writeWorkFile(t, r, "src/main.go", "m")
	writeWorkFile(t, r, "src/util/helper.go", "h")
	writeWorkFile(t, r, "docs/readme.md", "d")

	if _, err := r.AddTree("src"); err != nil {
		t.Fatalf("AddTree: %v", err)
	}

	entries, _ := r.LoadIndex()
	for _, want := range []string{"src", "src/main.go", "src/util", "src/util/helper.go"} {
		if findEntry(entries, want) == nil {
			t.Errorf("missing %q", want)
		}
	}
	if findEntry(entries, "docs/readme.md") != nil {
		t.Error("docs/readme.md staged, want only src subtree")
	}
}
