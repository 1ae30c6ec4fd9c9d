package ml

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// StratifiedSplit partitions X/y into train and test sets preserving the
// label proportions, with a seeded shuffle inside each class.
func StratifiedSplit(X [][]float64, y []int, testFraction float64, seed int64) (XTrain, XTest [][]float64, yTrain, yTest []int, err error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("invalid data: %d samples, %d labels", len(X), len(y))
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}

	rng := rand.New(rand.NewSource(seed))
	for _, class := range []int{0, 1} {
		var indices []int
		for i, label := range y {
			if label == class {
				indices = append(indices, i)
			}
		}
		rng.Shuffle(len(indices), func(a, b int) {
			indices[a], indices[b] = indices[b], indices[a]
		})
		nTest := int(math.Round(float64(len(indices)) * testFraction))
		for pos, idx := range indices {
			if pos < nTest {
				XTest = append(XTest, X[idx])
				yTest = append(yTest, y[idx])
			} else {
				XTrain = append(XTrain, X[idx])
				yTrain = append(yTrain, y[idx])
			}
		}
	}

	if len(XTrain) == 0 || len(XTest) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("split produced an empty partition (%d train, %d test)", len(XTrain), len(XTest))
	}
	return XTrain, XTest, yTrain, yTest, nil
}

// stratifiedKFold assigns every sample to one of k folds, dealing each
// class's shuffled indices round-robin so label proportions are preserved.
func stratifiedKFold(y []int, k int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	folds := make([][]int, k)
	for _, class := range []int{0, 1} {
		var indices []int
		for i, label := range y {
			if label == class {
				indices = append(indices, i)
			}
		}
		rng.Shuffle(len(indices), func(a, b int) {
			indices[a], indices[b] = indices[b], indices[a]
		})
		for pos, idx := range indices {
			folds[pos%k] = append(folds[pos%k], idx)
		}
	}
	for _, fold := range folds {
		sort.Ints(fold)
	}
	return folds
}

func selectByIndices(X [][]float64, y []int, indices []int) ([][]float64, []int) {
	subX := make([][]float64, len(indices))
	subY := make([]int, len(indices))
	for i, idx := range indices {
		subX[i] = X[idx]
		subY[i] = y[idx]
	}
	return subX, subY
}
