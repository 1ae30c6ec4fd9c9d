package features

import (
	"fmt"
	"math"
	"sort"
)

// NumericStats holds the fitted state for one numeric column: the imputation
// mean for missing values and the standardization mean/std.
type NumericStats struct {
	ImputeMean float64 `json:"impute_mean"`
	ScaleMean  float64 `json:"scale_mean"`
	ScaleStd   float64 `json:"scale_std"`
}

// CategoryStats holds the fitted state for one categorical column: the
// imputation value and the one-hot vocabulary in encoding order.
type CategoryStats struct {
	MostFrequent string   `json:"most_frequent"`
	Vocabulary   []string `json:"vocabulary"`
}

// Preprocessor turns FeatureRows into fixed-width numeric vectors:
// impute-mean + standardize for the numeric block, impute-most-frequent +
// one-hot for the categorical block. Fit learns the state once from training
// data; Transform applies it without refitting. The whole struct serializes
// to JSON inside the model bundle.
type Preprocessor struct {
	NumericCols     []string                  `json:"numeric_cols"`
	CategoricalCols []string                  `json:"categorical_cols"`
	Numeric         map[string]*NumericStats  `json:"numeric"`
	Categorical     map[string]*CategoryStats `json:"categorical"`
	IsFitted        bool                      `json:"is_fitted"`
}

// NewPreprocessor returns an unfitted preprocessor over the model's fixed
// column groups.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		NumericCols:     NumericColumns(),
		CategoricalCols: CategoricalColumns(),
		Numeric:         make(map[string]*NumericStats),
		Categorical:     make(map[string]*CategoryStats),
	}
}

// Fit learns imputation and scaling state from the training rows.
func (p *Preprocessor) Fit(rows []FeatureRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("cannot fit preprocessor on empty data")
	}

	for _, col := range p.NumericCols {
		values := make([]float64, 0, len(rows))
		for i := range rows {
			v, ok := rows[i].NumericValue(col)
			if !ok {
				return fmt.Errorf("unknown numeric column %q", col)
			}
			if !math.IsNaN(v) {
				values = append(values, v)
			}
		}
		imputeMean := 0.0
		if len(values) > 0 {
			imputeMean = mean(values)
		}
		// Scaling statistics are computed over the imputed column, the way a
		// fitted impute-then-scale chain sees it.
		imputed := make([]float64, len(rows))
		for i := range rows {
			v, _ := rows[i].NumericValue(col)
			if math.IsNaN(v) {
				v = imputeMean
			}
			imputed[i] = v
		}
		scaleMean := mean(imputed)
		scaleStd := populationStd(imputed, scaleMean)
		if scaleStd == 0 {
			scaleStd = 1
		}
		p.Numeric[col] = &NumericStats{
			ImputeMean: imputeMean,
			ScaleMean:  scaleMean,
			ScaleStd:   scaleStd,
		}
	}

	for _, col := range p.CategoricalCols {
		counts := make(map[string]int)
		for i := range rows {
			v, ok := rows[i].CategoricalValue(col)
			if !ok {
				return fmt.Errorf("unknown categorical column %q", col)
			}
			if v != "" {
				counts[v]++
			}
		}
		mostFrequent := mostFrequentValue(counts)
		vocab := make([]string, 0, len(counts))
		for v := range counts {
			vocab = append(vocab, v)
		}
		sort.Strings(vocab)
		p.Categorical[col] = &CategoryStats{
			MostFrequent: mostFrequent,
			Vocabulary:   vocab,
		}
	}

	p.IsFitted = true
	return nil
}

// Transform encodes rows with the fitted state. Categories unseen at fit time
// encode as an all-zero block, never an error.
func (p *Preprocessor) Transform(rows []FeatureRow) ([][]float64, error) {
	if !p.IsFitted {
		return nil, fmt.Errorf("preprocessor is not fitted")
	}

	width := p.Width()
	out := make([][]float64, len(rows))
	for i := range rows {
		vector := make([]float64, 0, width)
		for _, col := range p.NumericCols {
			v, _ := rows[i].NumericValue(col)
			ns := p.Numeric[col]
			if math.IsNaN(v) {
				v = ns.ImputeMean
			}
			vector = append(vector, (v-ns.ScaleMean)/ns.ScaleStd)
		}
		for _, col := range p.CategoricalCols {
			v, _ := rows[i].CategoricalValue(col)
			cs := p.Categorical[col]
			if v == "" {
				v = cs.MostFrequent
			}
			block := make([]float64, len(cs.Vocabulary))
			for j, category := range cs.Vocabulary {
				if category == v {
					block[j] = 1
					break
				}
			}
			vector = append(vector, block...)
		}
		out[i] = vector
	}
	return out, nil
}

// FeatureNames returns the exact ordered output schema: the numeric columns
// followed by one `<Column>_<Value>` name per vocabulary entry.
func (p *Preprocessor) FeatureNames() []string {
	names := make([]string, 0, p.Width())
	names = append(names, p.NumericCols...)
	for _, col := range p.CategoricalCols {
		if cs, ok := p.Categorical[col]; ok {
			for _, v := range cs.Vocabulary {
				names = append(names, col+"_"+v)
			}
		}
	}
	return names
}

// Width returns the length of the encoded vectors.
func (p *Preprocessor) Width() int {
	width := len(p.NumericCols)
	for _, col := range p.CategoricalCols {
		if cs, ok := p.Categorical[col]; ok {
			width += len(cs.Vocabulary)
		}
	}
	return width
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStd(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

func mostFrequentValue(counts map[string]int) string {
	best := ""
	bestCount := -1
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}
