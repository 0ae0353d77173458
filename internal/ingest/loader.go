// Package ingest loads plain-text books from disk and splits them into
// overlapping token windows suitable for embedding and similarity search.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrBookNotFound = errors.New("book file not found")
)

// BookLoader reads book texts from a directory. One .txt file per book;
// the filename without extension is the book title.
type BookLoader struct {
	booksDir string
}

// NewBookLoader creates a loader rooted at booksDir.
func NewBookLoader(booksDir string) *BookLoader {
	return &BookLoader{booksDir: booksDir}
}

// LoadBook reads the full content of a single book file.
// A missing file is a fatal error for the caller, not retried.
func (l *BookLoader) LoadBook(filename string) (string, error) {
	path := filepath.Join(l.booksDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrBookNotFound, path)
		}
		return "", fmt.Errorf("failed to read book %s: %w", path, err)
	}

	return string(data), nil
}

// ProcessAllBooks loads and chunks every .txt file in the books directory.
func (l *BookLoader) ProcessAllBooks(chunkSize, overlap int) ([]Chunk, error) {
	entries, err := os.ReadDir(l.booksDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read books directory %s: %w", l.booksDir, err)
	}

	var allChunks []Chunk
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".txt") {
			continue
		}

		title := strings.TrimSuffix(name, filepath.Ext(name))

		text, err := l.LoadBook(name)
		if err != nil {
			return nil, err
		}

		allChunks = append(allChunks, ChunkText(text, title, chunkSize, overlap)...)
	}

	return allChunks, nil
}
