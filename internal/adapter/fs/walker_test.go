package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalk_IncludesAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "report.pdf")
	writeFile(t, root, "notes.txt")
	writeFile(t, root, "sub/brief.pdf")
	writeFile(t, root, ".git/objects/blob.pdf")

	w := NewWalker([]string{"**/*.pdf"}, []string{"**/.git/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f) != ".pdf" {
			t.Errorf("unexpected file: %s", f)
		}
	}
}

func TestWalk_DefaultIncludesEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt")
	writeFile(t, root, "sub/b.md")

	w := NewWalker(nil, nil)
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d: %v", len(files), files)
	}
}

func TestWalk_SkipsExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep/doc.pdf")
	writeFile(t, root, "node_modules/dep/doc.pdf")

	w := NewWalker([]string{"**/*.pdf"}, []string{"node_modules/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d: %v", len(files), files)
	}
}
