// Package dataset loads claim CSV files and normalizes them at the
// system boundary so the core only ever sees exact fields.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrInputNotFound = errors.New("input dataset not found")
	ErrMissingColumn = errors.New("missing required column")
	ErrUnknownLabel  = errors.New("unrecognized label value")
)

// Claim is one row of a claims dataset. RawLabel is empty when the
// dataset carries no ground truth.
type Claim struct {
	ID        string
	Book      string
	Character string
	Text      string
	RawLabel  string
}

// Ground-truth label strings mapped to verdicts.
var labelMap = map[string]int{
	"consistent": 1,
	"contradict": 0,
}

// ParseLabel maps a ground-truth label string to a verdict.
// Unrecognized values return ErrUnknownLabel; the caller skips the row
// and excludes it from accuracy accounting.
func ParseLabel(raw string) (int, error) {
	v, ok := labelMap[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, raw)
	}
	return v, nil
}

// LoadClaims reads a claims CSV. Required columns: id, book_name, char,
// and content; a text column is accepted as an alias for content, and
// the alias is resolved here so downstream types stay exact. A label
// column is optional.
func LoadClaims(path string) ([]Claim, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open claims file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; column lookup is by header index

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse claims CSV %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("claims file %s is empty", path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(strings.ToLower(name))] = i
	}

	contentCol, ok := header["content"]
	if !ok {
		// Accepted alias at the boundary only.
		contentCol, ok = header["text"]
		if !ok {
			return nil, fmt.Errorf("%w: content", ErrMissingColumn)
		}
	}

	for _, col := range []string{"id", "book_name", "char"} {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	labelCol, hasLabel := header["label"]

	cell := func(row []string, col int) string {
		if col < len(row) {
			return strings.TrimSpace(row[col])
		}
		return ""
	}

	claims := make([]Claim, 0, len(rows)-1)
	for _, row := range rows[1:] {
		c := Claim{
			ID:        cell(row, header["id"]),
			Book:      cell(row, header["book_name"]),
			Character: cell(row, header["char"]),
			Text:      cell(row, contentCol),
		}
		if hasLabel {
			c.RawLabel = cell(row, labelCol)
		}
		claims = append(claims, c)
	}

	return claims, nil
}
