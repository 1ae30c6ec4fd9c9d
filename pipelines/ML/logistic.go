package ml

import (
	"fmt"
	"math"
)

// LogisticRegression is a binary classifier trained with full-batch gradient
// descent. Inputs are expected standardized; weights start at zero, so
// training is deterministic.
type LogisticRegression struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	LearningRate float64   `json:"learning_rate"`
	Epochs       int       `json:"epochs"`
}

// NewLogisticRegression creates a logistic regression with default training
// parameters.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 0.1,
		Epochs:       300,
	}
}

// Fit trains the model on X/y.
func (lr *LogisticRegression) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("invalid training data: %d samples, %d labels", len(X), len(y))
	}
	numFeatures := len(X[0])
	lr.Weights = make([]float64, numFeatures)
	lr.Bias = 0

	n := float64(len(X))
	gradW := make([]float64, numFeatures)
	for epoch := 0; epoch < lr.Epochs; epoch++ {
		for j := range gradW {
			gradW[j] = 0
		}
		gradB := 0.0
		for i, x := range X {
			err := sigmoid(lr.decision(x)) - float64(y[i])
			for j, v := range x {
				gradW[j] += err * v
			}
			gradB += err
		}
		for j := range lr.Weights {
			lr.Weights[j] -= lr.LearningRate * gradW[j] / n
		}
		lr.Bias -= lr.LearningRate * gradB / n
	}
	return nil
}

func (lr *LogisticRegression) decision(x []float64) float64 {
	z := lr.Bias
	for j, w := range lr.Weights {
		z += w * x[j]
	}
	return z
}

// PredictProba returns the positive-class probability for x.
func (lr *LogisticRegression) PredictProba(x []float64) float64 {
	return sigmoid(lr.decision(x))
}

// Predict returns the class label for x.
func (lr *LogisticRegression) Predict(x []float64) int {
	if lr.PredictProba(x) >= 0.5 {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
