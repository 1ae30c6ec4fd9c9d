package ml

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// ParamGrid enumerates the hyperparameter space for forest tuning. A max
// depth of 0 means unbounded.
type ParamGrid struct {
	NumTrees         []int
	MaxDepths        []int
	MinSamplesSplits []int
}

// DefaultParamGrid returns the tuning grid used by the training entry point.
func DefaultParamGrid() ParamGrid {
	return ParamGrid{
		NumTrees:         []int{50, 100, 200},
		MaxDepths:        []int{5, 10, 20, 0},
		MinSamplesSplits: []int{2, 5, 10},
	}
}

type paramCombo struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
}

func (g ParamGrid) enumerate() []paramCombo {
	var combos []paramCombo
	for _, n := range g.NumTrees {
		for _, d := range g.MaxDepths {
			for _, s := range g.MinSamplesSplits {
				combos = append(combos, paramCombo{NumTrees: n, MaxDepth: d, MinSamplesSplit: s})
			}
		}
	}
	return combos
}

// SearchResult is the winning hyperparameter combination and its CV score.
type SearchResult struct {
	NumTrees        int     `json:"num_trees"`
	MaxDepth        int     `json:"max_depth"`
	MinSamplesSplit int     `json:"min_samples_split"`
	MeanAUC         float64 `json:"mean_auc"`
}

// RandomizedSearch evaluates a seeded sample of distinct grid combinations
// with stratified k-fold cross-validation, optimizing mean ROC-AUC. With a
// fixed seed the sampled order, every trial and therefore the winner are
// deterministic; fold evaluations within a trial run concurrently but their
// scores are combined by index.
type RandomizedSearch struct {
	Grid       ParamGrid
	Iterations int
	Folds      int
	Seed       int64
}

// NewRandomizedSearch returns a search over the default grid with 10
// iterations and 3-fold CV.
func NewRandomizedSearch(seed int64) *RandomizedSearch {
	return &RandomizedSearch{
		Grid:       DefaultParamGrid(),
		Iterations: 10,
		Folds:      3,
		Seed:       seed,
	}
}

// Run executes the search on X/y and returns the best combination. A trial
// whose CV score is undefined (a fold without both classes) is skipped.
func (rs *RandomizedSearch) Run(X [][]float64, y []int) (*SearchResult, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("invalid data: %d samples, %d labels", len(X), len(y))
	}

	combos := rs.Grid.enumerate()
	rng := rand.New(rand.NewSource(rs.Seed))
	rng.Shuffle(len(combos), func(a, b int) {
		combos[a], combos[b] = combos[b], combos[a]
	})
	n := rs.Iterations
	if n > len(combos) {
		n = len(combos)
	}

	folds := stratifiedKFold(y, rs.Folds, rs.Seed)

	var best *SearchResult
	for _, combo := range combos[:n] {
		score := rs.crossValidate(X, y, folds, combo)
		if math.IsNaN(score) {
			continue
		}
		if best == nil || score > best.MeanAUC {
			best = &SearchResult{
				NumTrees:        combo.NumTrees,
				MaxDepth:        combo.MaxDepth,
				MinSamplesSplit: combo.MinSamplesSplit,
				MeanAUC:         score,
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no hyperparameter combination produced a defined CV score")
	}
	return best, nil
}

func (rs *RandomizedSearch) crossValidate(X [][]float64, y []int, folds [][]int, combo paramCombo) float64 {
	scores := make([]float64, len(folds))
	var wg sync.WaitGroup
	for f := range folds {
		wg.Add(1)
		go func(f int) {
			defer wg.Done()
			var trainIdx []int
			for other, fold := range folds {
				if other != f {
					trainIdx = append(trainIdx, fold...)
				}
			}
			trainX, trainY := selectByIndices(X, y, trainIdx)
			valX, valY := selectByIndices(X, y, folds[f])

			forest := NewRandomForest(combo.NumTrees, combo.MaxDepth, combo.MinSamplesSplit, rs.Seed)
			if err := forest.Fit(trainX, trainY); err != nil {
				scores[f] = math.NaN()
				return
			}
			valScores := make([]float64, len(valX))
			for i, x := range valX {
				valScores[i] = forest.PredictProba(x)
			}
			scores[f] = RocAUC(valScores, valY)
		}(f)
	}
	wg.Wait()

	sum := 0.0
	for _, s := range scores {
		if math.IsNaN(s) {
			return math.NaN()
		}
		sum += s
	}
	return sum / float64(len(scores))
}
