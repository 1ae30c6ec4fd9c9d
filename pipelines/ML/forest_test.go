package ml

import (
	"path/filepath"
	"testing"
)

func TestDecisionTreeSeparableData(t *testing.T) {
	X, y := syntheticData(40)
	tree := NewDecisionTree(5, 2)
	if err := tree.Fit(X, y, nil); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	correct := 0
	for i, x := range X {
		if tree.Predict(x) == y[i] {
			correct++
		}
	}
	if correct != len(X) {
		t.Errorf("tree misclassified %d/%d separable training samples", len(X)-correct, len(X))
	}
}

func TestDecisionTreePureNode(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}}
	y := []int{1, 1, 1}
	tree := NewDecisionTree(0, 2)
	if err := tree.Fit(X, y, nil); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if !tree.Root.IsLeaf {
		t.Error("pure node should not split")
	}
	if p := tree.PredictProba([]float64{10}); p != 1 {
		t.Errorf("proba = %v, want 1 for pure positive node", p)
	}
}

func TestRandomForestSeparableData(t *testing.T) {
	X, y := syntheticData(60)
	forest := NewRandomForest(20, 5, 2, 42)
	if err := forest.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	correct := 0
	for i, x := range X {
		if forest.Predict(x) == y[i] {
			correct++
		}
	}
	if float64(correct)/float64(len(X)) < 0.95 {
		t.Errorf("forest accuracy %d/%d below expectation on separable data", correct, len(X))
	}

	for _, x := range X {
		p := forest.PredictProba(x)
		if p < 0 || p > 1 {
			t.Errorf("proba %v outside [0,1]", p)
		}
	}
}

func TestRandomForestReproducible(t *testing.T) {
	X, y := syntheticData(60)

	a := NewRandomForest(15, 10, 2, 7)
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	b := NewRandomForest(15, 10, 2, 7)
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Concurrent tree construction must not change the result for a fixed seed.
	for i, x := range X {
		if a.PredictProba(x) != b.PredictProba(x) {
			t.Fatalf("same-seed forests disagree on sample %d: %v vs %v", i, a.PredictProba(x), b.PredictProba(x))
		}
	}
}

func TestRandomForestSaveLoad(t *testing.T) {
	X, y := syntheticData(40)
	forest := NewRandomForest(10, 5, 2, 42)
	if err := forest.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "forest.json")
	if err := forest.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadRandomForest(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for i, x := range X {
		if loaded.PredictProba(x) != forest.PredictProba(x) {
			t.Fatalf("loaded forest disagrees on sample %d", i)
		}
	}
}

func TestRandomForestRejectsEmptyData(t *testing.T) {
	forest := NewRandomForest(5, 3, 2, 1)
	if err := forest.Fit(nil, nil); err == nil {
		t.Fatal("expected error on empty training data")
	}
}

func TestLogisticRegressionSeparableData(t *testing.T) {
	X, y := syntheticData(60)
	lr := NewLogisticRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	correct := 0
	for i, x := range X {
		if lr.Predict(x) == y[i] {
			correct++
		}
	}
	if float64(correct)/float64(len(X)) < 0.95 {
		t.Errorf("logistic regression accuracy %d/%d below expectation", correct, len(X))
	}
}
