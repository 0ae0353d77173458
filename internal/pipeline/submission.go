package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteSubmission writes predictions as a two-column CSV (id,prediction),
// creating the output directory if needed.
func WriteSubmission(path string, predictions []Prediction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create submission file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"id", "prediction"}); err != nil {
		return fmt.Errorf("failed to write submission header: %w", err)
	}

	for _, p := range predictions {
		if err := w.Write([]string{p.ID, strconv.Itoa(p.Verdict)}); err != nil {
			return fmt.Errorf("failed to write prediction for %s: %w", p.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush submission file: %w", err)
	}

	return nil
}
