package ml

import (
	"math"
	"testing"
)

func TestCalculateMetrics(t *testing.T) {
	predictions := []int{1, 0, 1, 1}
	labels := []int{1, 0, 0, 1}

	m := CalculateMetrics(predictions, labels)

	if m.Accuracy != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", m.Accuracy)
	}
	if math.Abs(m.Precision-2.0/3.0) > 1e-12 {
		t.Errorf("precision = %v, want 2/3", m.Precision)
	}
	if m.Recall != 1 {
		t.Errorf("recall = %v, want 1", m.Recall)
	}
	if math.Abs(m.F1-0.8) > 1e-12 {
		t.Errorf("f1 = %v, want 0.8", m.F1)
	}
}

func TestCalculateMetricsZeroDenominators(t *testing.T) {
	// No positive predictions and no positive labels.
	m := CalculateMetrics([]int{0, 0}, []int{0, 0})

	if m.Accuracy != 1 {
		t.Errorf("accuracy = %v, want 1", m.Accuracy)
	}
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Errorf("undefined ratios should be 0, got precision=%v recall=%v f1=%v", m.Precision, m.Recall, m.F1)
	}
}

func TestRocAUC(t *testing.T) {
	scores := []float64{0.1, 0.4, 0.35, 0.8}
	labels := []int{0, 0, 1, 1}

	auc := RocAUC(scores, labels)

	if math.Abs(auc-0.75) > 1e-12 {
		t.Errorf("auc = %v, want 0.75", auc)
	}
}

func TestRocAUCPerfectRanking(t *testing.T) {
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	labels := []int{0, 0, 1, 1}

	if auc := RocAUC(scores, labels); auc != 1 {
		t.Errorf("auc = %v, want 1", auc)
	}

	// Inverted ranking.
	labels = []int{1, 1, 0, 0}
	if auc := RocAUC(scores, labels); auc != 0 {
		t.Errorf("auc = %v, want 0", auc)
	}
}

func TestRocAUCTies(t *testing.T) {
	// All scores tied: AUC must be exactly 0.5 under tie-averaged ranks.
	scores := []float64{0.5, 0.5, 0.5, 0.5}
	labels := []int{0, 1, 0, 1}

	if auc := RocAUC(scores, labels); auc != 0.5 {
		t.Errorf("auc = %v, want 0.5", auc)
	}
}

func TestRocAUCSingleClass(t *testing.T) {
	if auc := RocAUC([]float64{0.2, 0.8}, []int{1, 1}); !math.IsNaN(auc) {
		t.Errorf("auc = %v, want NaN for single-class labels", auc)
	}
}
