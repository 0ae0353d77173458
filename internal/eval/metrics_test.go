package eval

import (
	"math"
	"strings"
	"testing"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestCompute(t *testing.T) {
	actuals := []int{1, 1, 0, 0}
	predictions := []int{1, 0, 0, 0}

	report, err := Compute(actuals, predictions)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if !approx(report.Accuracy, 0.75) {
		t.Errorf("Accuracy = %f, want 0.75", report.Accuracy)
	}
	if report.Total != 4 {
		t.Errorf("Total = %d, want 4", report.Total)
	}

	// Class 1: tp=1, fp=0, fn=1
	if !approx(report.Consistent.Precision, 1.0) {
		t.Errorf("Consistent.Precision = %f, want 1.0", report.Consistent.Precision)
	}
	if !approx(report.Consistent.Recall, 0.5) {
		t.Errorf("Consistent.Recall = %f, want 0.5", report.Consistent.Recall)
	}
	if !approx(report.Consistent.F1, 2.0/3.0) {
		t.Errorf("Consistent.F1 = %f, want 2/3", report.Consistent.F1)
	}
	if report.Consistent.Support != 2 {
		t.Errorf("Consistent.Support = %d, want 2", report.Consistent.Support)
	}

	// Class 0: tp=2, fp=1, fn=0
	if !approx(report.Contradicted.Precision, 2.0/3.0) {
		t.Errorf("Contradicted.Precision = %f, want 2/3", report.Contradicted.Precision)
	}
	if !approx(report.Contradicted.Recall, 1.0) {
		t.Errorf("Contradicted.Recall = %f, want 1.0", report.Contradicted.Recall)
	}
	if !approx(report.Contradicted.F1, 0.8) {
		t.Errorf("Contradicted.F1 = %f, want 0.8", report.Contradicted.F1)
	}
}

func TestCompute_DegenerateCases(t *testing.T) {
	// All one class, all predicted wrong: metrics stay defined (zero).
	report, err := Compute([]int{1, 1}, []int{0, 0})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !approx(report.Accuracy, 0) {
		t.Errorf("Accuracy = %f, want 0", report.Accuracy)
	}
	if !approx(report.Consistent.F1, 0) {
		t.Errorf("Consistent.F1 = %f, want 0", report.Consistent.F1)
	}
}

func TestCompute_Errors(t *testing.T) {
	if _, err := Compute([]int{1}, []int{1, 0}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := Compute(nil, nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestReport_Format(t *testing.T) {
	report, _ := Compute([]int{1, 1, 0, 0}, []int{1, 0, 0, 0})
	out := report.Format()

	for _, want := range []string{"Accuracy: 0.7500", "Contradict (0)", "Consistent (1)", "Rows evaluated: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted report missing %q:\n%s", want, out)
		}
	}
}
