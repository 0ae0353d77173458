// Package eval computes binary classification metrics for labeled
// verification runs: overall accuracy plus a per-class
// precision/recall/F1 report.
package eval

import (
	"fmt"
	"strings"
)

// ClassMetrics holds per-class classification metrics.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarizes a labeled run over the two verdict classes.
type Report struct {
	Accuracy     float64
	Contradicted ClassMetrics // class 0
	Consistent   ClassMetrics // class 1
	Total        int
}

// Compute builds a classification report from parallel slices of
// ground-truth labels and predictions, both in {0,1}.
func Compute(actuals, predictions []int) (Report, error) {
	if len(actuals) != len(predictions) {
		return Report{}, fmt.Errorf("actuals and predictions length mismatch: %d vs %d", len(actuals), len(predictions))
	}
	if len(actuals) == 0 {
		return Report{}, fmt.Errorf("no labeled rows to evaluate")
	}

	correct := 0
	for i := range actuals {
		if actuals[i] == predictions[i] {
			correct++
		}
	}

	return Report{
		Accuracy:     float64(correct) / float64(len(actuals)),
		Contradicted: classMetrics(actuals, predictions, 0),
		Consistent:   classMetrics(actuals, predictions, 1),
		Total:        len(actuals),
	}, nil
}

func classMetrics(actuals, predictions []int, class int) ClassMetrics {
	var tp, fp, fn, support int
	for i := range actuals {
		switch {
		case actuals[i] == class && predictions[i] == class:
			tp++
		case actuals[i] != class && predictions[i] == class:
			fp++
		case actuals[i] == class && predictions[i] != class:
			fn++
		}
		if actuals[i] == class {
			support++
		}
	}

	m := ClassMetrics{Support: support}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// Format renders the report as an aligned table.
func (r Report) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Rows evaluated: %d\n", r.Total)
	fmt.Fprintf(&b, "Accuracy: %.4f\n\n", r.Accuracy)
	fmt.Fprintf(&b, "%-16s %9s %9s %9s %9s\n", "", "precision", "recall", "f1-score", "support")
	writeClassRow(&b, "Contradict (0)", r.Contradicted)
	writeClassRow(&b, "Consistent (1)", r.Consistent)

	return b.String()
}

func writeClassRow(b *strings.Builder, name string, m ClassMetrics) {
	fmt.Fprintf(b, "%-16s %9.4f %9.4f %9.4f %9d\n", name, m.Precision, m.Recall, m.F1, m.Support)
}
