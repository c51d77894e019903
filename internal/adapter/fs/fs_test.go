package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWalkerIncludesAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"stdlib/abs.c":       "x",
		"stdlib/abs.h":       "x",
		"string/strlen.c":    "x",
		"build/generated.c":  "x",
		"string/README.md":   "x",
		"string/deep/memx.c": "x",
	})

	w := NewWalker([]string{"**/*.c"}, []string{"build/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.RelPath)
	}
	want := []string{"stdlib/abs.c", "string/deep/memx.c", "string/strlen.c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, got[i])
		}
	}
	if !filepath.IsAbs(files[0].Path) {
		t.Errorf("expected absolute path, got %s", files[0].Path)
	}
}

func TestWalkerDefaultsToCSources(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.c": "x", "b.txt": "x"})

	files, err := NewWalker(nil, nil).Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].RelPath != "a.c" {
		t.Errorf("expected only a.c, got %+v", files)
	}
}

func TestOSWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "abs.rst")

	if err := (OS{}).WriteFile(path, "content"); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "content" {
		t.Errorf("expected 'content', got %q", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected temp file to be renamed away, found %d entries", len(entries))
	}
}

func TestOSRemoveMissingIsNotAnError(t *testing.T) {
	fsys := OS{}
	path := filepath.Join(t.TempDir(), "missing.rst")

	if err := fsys.Remove(path); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if fsys.Exists(path) {
		t.Error("expected missing file to not exist")
	}
}
