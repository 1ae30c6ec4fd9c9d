package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"sync"
)

// RandomForest is an ensemble of Gini decision trees trained on bootstrap
// samples with sqrt-feature subsetting. Trees train concurrently, but each
// tree owns a rand.Rand seeded from (Seed, tree index), so a fixed seed gives
// identical forests regardless of goroutine scheduling.
type RandomForest struct {
	NumTrees        int             `json:"num_trees"`
	MaxDepth        int             `json:"max_depth"`
	MinSamplesSplit int             `json:"min_samples_split"`
	Seed            int64           `json:"seed"`
	Trees           []*DecisionTree `json:"trees"`
	NumFeatures     int             `json:"num_features"`
}

// NewRandomForest creates a random forest. maxDepth <= 0 means unbounded.
func NewRandomForest(numTrees, maxDepth, minSamplesSplit int, seed int64) *RandomForest {
	if numTrees <= 0 {
		numTrees = 100
	}
	if minSamplesSplit < 2 {
		minSamplesSplit = 2
	}
	return &RandomForest{
		NumTrees:        numTrees,
		MaxDepth:        maxDepth,
		MinSamplesSplit: minSamplesSplit,
		Seed:            seed,
	}
}

// Fit trains the forest on X/y.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("invalid training data: %d samples, %d labels", len(X), len(y))
	}
	rf.NumFeatures = len(X[0])
	maxFeatures := int(math.Sqrt(float64(rf.NumFeatures)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	rf.Trees = make([]*DecisionTree, rf.NumTrees)
	var wg sync.WaitGroup
	errs := make([]error, rf.NumTrees)
	for i := 0; i < rf.NumTrees; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(rf.Seed + int64(i) + 1))

			sampleIdx := make([]int, len(X))
			for j := range sampleIdx {
				sampleIdx[j] = rng.Intn(len(X))
			}
			sampleX := make([][]float64, len(X))
			sampleY := make([]int, len(X))
			for j, idx := range sampleIdx {
				sampleX[j] = X[idx]
				sampleY[j] = y[idx]
			}

			features := rng.Perm(rf.NumFeatures)[:maxFeatures]
			sort.Ints(features)

			tree := NewDecisionTree(rf.MaxDepth, rf.MinSamplesSplit)
			errs[i] = tree.Fit(sampleX, sampleY, features)
			rf.Trees[i] = tree
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("tree training failed: %w", err)
		}
	}
	return nil
}

// PredictProba returns the mean positive-class probability across trees.
func (rf *RandomForest) PredictProba(x []float64) float64 {
	if len(rf.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, tree := range rf.Trees {
		sum += tree.PredictProba(x)
	}
	return sum / float64(len(rf.Trees))
}

// Predict returns the class label for x.
func (rf *RandomForest) Predict(x []float64) int {
	if rf.PredictProba(x) >= 0.5 {
		return 1
	}
	return 0
}

// Save writes the forest to a JSON file.
func (rf *RandomForest) Save(path string) error {
	data, err := json.Marshal(rf)
	if err != nil {
		return fmt.Errorf("failed to marshal forest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write forest to %s: %w", path, err)
	}
	return nil
}

// LoadRandomForest reads a forest from a JSON file.
func LoadRandomForest(path string) (*RandomForest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forest from %s: %w", path, err)
	}
	var rf RandomForest
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal forest: %w", err)
	}
	return &rf, nil
}
