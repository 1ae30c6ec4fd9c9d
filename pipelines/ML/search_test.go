package ml

import (
	"testing"
)

func TestDefaultParamGridSize(t *testing.T) {
	combos := DefaultParamGrid().enumerate()
	if len(combos) != 36 {
		t.Fatalf("grid has %d combinations, want 36", len(combos))
	}
}

func inGrid(grid ParamGrid, result *SearchResult) bool {
	contains := func(vals []int, v int) bool {
		for _, x := range vals {
			if x == v {
				return true
			}
		}
		return false
	}
	return contains(grid.NumTrees, result.NumTrees) &&
		contains(grid.MaxDepths, result.MaxDepth) &&
		contains(grid.MinSamplesSplits, result.MinSamplesSplit)
}

func TestRandomizedSearchFindsGridCombination(t *testing.T) {
	X, y := syntheticData(48)

	search := NewRandomizedSearch(42)
	search.Grid = ParamGrid{
		NumTrees:         []int{5, 10},
		MaxDepths:        []int{3, 0},
		MinSamplesSplits: []int{2, 5},
	}
	search.Iterations = 4
	search.Folds = 3

	best, err := search.Run(X, y)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !inGrid(search.Grid, best) {
		t.Errorf("winner %+v not in grid", best)
	}
	if best.MeanAUC < 0.9 {
		t.Errorf("CV AUC = %v, expected near-perfect on separable data", best.MeanAUC)
	}
}

func TestRandomizedSearchDeterministic(t *testing.T) {
	X, y := syntheticData(48)

	run := func() *SearchResult {
		search := NewRandomizedSearch(11)
		search.Grid = ParamGrid{
			NumTrees:         []int{5, 10},
			MaxDepths:        []int{3, 5},
			MinSamplesSplits: []int{2, 5},
		}
		search.Iterations = 4
		search.Folds = 2
		best, err := search.Run(X, y)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		return best
	}

	a, b := run(), run()
	if *a != *b {
		t.Fatalf("same-seed searches disagree: %+v vs %+v", a, b)
	}
}

func TestRandomizedSearchSingleClass(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}}
	y := []int{0, 0, 0, 0, 0, 0}

	search := NewRandomizedSearch(1)
	search.Iterations = 2
	search.Folds = 2
	if _, err := search.Run(X, y); err == nil {
		t.Fatal("expected error when no combination has a defined CV score")
	}
}
