package media

import (
	"os"
	"path/filepath"
	"testing"
)

func populateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.gpr", "b.GPR", "c.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "nested.gpr"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCollectFilesDirectory(t *testing.T) {
	dir := populateDir(t)

	files, err := CollectFiles(dir, false)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	// Non-recursive: the four top-level files, no nested entry.
	if len(files) != 4 {
		t.Fatalf("got %d files, want 4: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Base(f) == "nested.gpr" {
			t.Error("non-recursive collection descended into subdirectory")
		}
	}
}

func TestCollectFilesRecursive(t *testing.T) {
	dir := populateDir(t)

	files, err := CollectFiles(dir, true)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	if len(files) != 5 {
		t.Fatalf("got %d files, want 5: %v", len(files), files)
	}
}

func TestCollectFilesGlob(t *testing.T) {
	dir := populateDir(t)

	files, err := CollectFiles(filepath.Join(dir, "*.gpr"), false)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a.gpr" {
		t.Errorf("glob matched %v, want [a.gpr]", files)
	}
}

func TestCollectFilesNoMatch(t *testing.T) {
	if _, err := CollectFiles(filepath.Join(t.TempDir(), "*.gpr"), false); err == nil {
		t.Error("expected an error for a glob with no matches")
	}
}

func TestCollectFilesEmptyInput(t *testing.T) {
	if _, err := CollectFiles("   ", false); err == nil {
		t.Error("expected an error for empty input")
	}
}

func TestListDirectory(t *testing.T) {
	dir := populateDir(t)

	entries, err := ListDirectory(dir)
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, filepath.Base(e))
	}
	// Directories first, then supported raw files only.
	want := []string{"sub", "a.gpr", "b.GPR"}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
}
