package ml

import (
	"fmt"
	"math"
	"sort"
)

// TreeNode represents a node in a decision tree
type TreeNode struct {
	FeatureIndex int       `json:"feature_index"`
	Threshold    float64   `json:"threshold"`
	Left         *TreeNode `json:"left,omitempty"`
	Right        *TreeNode `json:"right,omitempty"`
	IsLeaf       bool      `json:"is_leaf"`
	Prediction   int       `json:"prediction"`
	Proba        float64   `json:"proba"`
	Samples      int       `json:"samples"`
}

// DecisionTree is a binary CART classifier using Gini impurity. MaxDepth <= 0
// means unbounded depth.
type DecisionTree struct {
	Root            *TreeNode `json:"root"`
	MaxDepth        int       `json:"max_depth"`
	MinSamplesSplit int       `json:"min_samples_split"`
}

// NewDecisionTree creates a decision tree with the given stopping parameters.
func NewDecisionTree(maxDepth, minSamplesSplit int) *DecisionTree {
	if minSamplesSplit < 2 {
		minSamplesSplit = 2
	}
	return &DecisionTree{
		MaxDepth:        maxDepth,
		MinSamplesSplit: minSamplesSplit,
	}
}

// Fit trains the tree on X/y, considering only the given feature indices at
// splits. A nil features slice means all features.
func (dt *DecisionTree) Fit(X [][]float64, y []int, features []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("invalid training data: %d samples, %d labels", len(X), len(y))
	}
	if features == nil {
		features = make([]int, len(X[0]))
		for i := range features {
			features[i] = i
		}
	}
	indices := make([]int, len(X))
	for i := range indices {
		indices[i] = i
	}
	dt.Root = dt.buildTree(X, y, indices, features, 0)
	return nil
}

func (dt *DecisionTree) buildTree(X [][]float64, y []int, indices, features []int, depth int) *TreeNode {
	positives := 0
	for _, idx := range indices {
		positives += y[idx]
	}
	proba := float64(positives) / float64(len(indices))

	leaf := &TreeNode{
		IsLeaf:  true,
		Proba:   proba,
		Samples: len(indices),
	}
	if proba >= 0.5 {
		leaf.Prediction = 1
	}

	if positives == 0 || positives == len(indices) {
		return leaf
	}
	if dt.MaxDepth > 0 && depth >= dt.MaxDepth {
		return leaf
	}
	if len(indices) < dt.MinSamplesSplit {
		return leaf
	}

	feature, threshold, ok := dt.bestSplit(X, y, indices, features)
	if !ok {
		return leaf
	}

	var left, right []int
	for _, idx := range indices {
		if X[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	return &TreeNode{
		FeatureIndex: feature,
		Threshold:    threshold,
		Samples:      len(indices),
		Proba:        proba,
		Left:         dt.buildTree(X, y, left, features, depth+1),
		Right:        dt.buildTree(X, y, right, features, depth+1),
	}
}

// bestSplit finds the feature/threshold pair with the lowest weighted Gini
// impurity over the candidate features.
func (dt *DecisionTree) bestSplit(X [][]float64, y []int, indices, features []int) (int, float64, bool) {
	bestGini := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0

	for _, feature := range features {
		thresholds := candidateThresholds(X, indices, feature)
		for _, threshold := range thresholds {
			gini := weightedGini(X, y, indices, feature, threshold)
			if gini < bestGini {
				bestGini = gini
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// candidateThresholds returns midpoints between consecutive distinct values.
func candidateThresholds(X [][]float64, indices []int, feature int) []float64 {
	values := make([]float64, 0, len(indices))
	for _, idx := range indices {
		values = append(values, X[idx][feature])
	}
	sort.Float64s(values)

	var thresholds []float64
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			thresholds = append(thresholds, (values[i]+values[i-1])/2)
		}
	}
	return thresholds
}

func weightedGini(X [][]float64, y []int, indices []int, feature int, threshold float64) float64 {
	var leftTotal, leftPos, rightTotal, rightPos int
	for _, idx := range indices {
		if X[idx][feature] <= threshold {
			leftTotal++
			leftPos += y[idx]
		} else {
			rightTotal++
			rightPos += y[idx]
		}
	}
	if leftTotal == 0 || rightTotal == 0 {
		return math.Inf(1)
	}
	total := float64(leftTotal + rightTotal)
	return float64(leftTotal)/total*giniImpurity(leftPos, leftTotal) +
		float64(rightTotal)/total*giniImpurity(rightPos, rightTotal)
}

func giniImpurity(positives, total int) float64 {
	p := float64(positives) / float64(total)
	return 1 - p*p - (1-p)*(1-p)
}

// PredictProba returns the positive-class fraction at the leaf x falls into.
func (dt *DecisionTree) PredictProba(x []float64) float64 {
	node := dt.Root
	for node != nil && !node.IsLeaf {
		if x[node.FeatureIndex] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	return node.Proba
}

// Predict returns the class label for x.
func (dt *DecisionTree) Predict(x []float64) int {
	if dt.PredictProba(x) >= 0.5 {
		return 1
	}
	return 0
}
