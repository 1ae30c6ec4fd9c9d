package ml

import (
	"math"
	"sort"
)

// Classifier is the common prediction surface of the models in this package.
type Classifier interface {
	Predict(x []float64) int
	PredictProba(x []float64) float64
}

// Metrics holds binary classification evaluation results
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	ROCAUC    float64 `json:"roc_auc"`
}

// Evaluate computes all metrics for the model on X/y.
func Evaluate(model Classifier, X [][]float64, y []int) Metrics {
	predictions := make([]int, len(X))
	scores := make([]float64, len(X))
	for i, x := range X {
		predictions[i] = model.Predict(x)
		scores[i] = model.PredictProba(x)
	}
	m := CalculateMetrics(predictions, y)
	m.ROCAUC = RocAUC(scores, y)
	return m
}

// CalculateMetrics computes the confusion-matrix metrics. Undefined ratios
// (zero denominator) are reported as 0.
func CalculateMetrics(predictions, labels []int) Metrics {
	var tp, fp, tn, fn int
	for i, p := range predictions {
		switch {
		case p == 1 && labels[i] == 1:
			tp++
		case p == 1 && labels[i] == 0:
			fp++
		case p == 0 && labels[i] == 0:
			tn++
		default:
			fn++
		}
	}

	var m Metrics
	total := tp + fp + tn + fn
	if total > 0 {
		m.Accuracy = float64(tp+tn) / float64(total)
	}
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

// RocAUC computes the area under the ROC curve via the rank-sum
// (Mann-Whitney) statistic with tie-averaged ranks. Returns NaN when either
// class is absent.
func RocAUC(scores []float64, labels []int) float64 {
	nPos := 0
	for _, label := range labels {
		nPos += label
	}
	nNeg := len(labels) - nPos
	if nPos == 0 || nNeg == 0 {
		return math.NaN()
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})

	ranks := make([]float64, len(scores))
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			j++
		}
		// average rank over the tie group; ranks are 1-based
		avgRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avgRank
		}
		i = j
	}

	sumRanksPos := 0.0
	for i, label := range labels {
		if label == 1 {
			sumRanksPos += ranks[i]
		}
	}
	return (sumRanksPos - float64(nPos)*float64(nPos+1)/2) / (float64(nPos) * float64(nNeg))
}
