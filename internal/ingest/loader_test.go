package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBookLoader_LoadBook(t *testing.T) {
	dir := t.TempDir()
	content := "Call me Ishmael. Some years ago"
	if err := os.WriteFile(filepath.Join(dir, "Moby Dick.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewBookLoader(dir)

	got, err := loader.LoadBook("Moby Dick.txt")
	if err != nil {
		t.Fatalf("LoadBook failed: %v", err)
	}
	if got != content {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestBookLoader_MissingFile(t *testing.T) {
	loader := NewBookLoader(t.TempDir())

	_, err := loader.LoadBook("nope.txt")
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookLoader_ProcessAllBooks(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"Moby Dick.txt": "one two three four five six",
		"Dracula.TXT":   "seven eight nine",
		"notes.md":      "should be ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	loader := NewBookLoader(dir)

	chunks, err := loader.ProcessAllBooks(4, 1)
	if err != nil {
		t.Fatalf("ProcessAllBooks failed: %v", err)
	}

	titles := map[string]bool{}
	for _, c := range chunks {
		titles[c.Book] = true
	}

	if !titles["Moby Dick"] || !titles["Dracula"] {
		t.Errorf("expected both book titles, got %v", titles)
	}
	if titles["notes"] {
		t.Error("non-txt file should not be chunked")
	}
}

func TestBookLoader_MissingDirectory(t *testing.T) {
	loader := NewBookLoader(filepath.Join(t.TempDir(), "does-not-exist"))

	if _, err := loader.ProcessAllBooks(800, 100); err == nil {
		t.Error("expected error for missing books directory")
	}
}
