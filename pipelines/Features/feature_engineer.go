package features

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// timestampLayouts are tried in order when parsing TransactionStartTime.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FeatureEngineer derives per-transaction features: calendar fields from the
// timestamp, outlier-capped monetary columns and their log transforms.
// Capping bounds are the batch's own percentiles, so the transform carries no
// state between batches.
type FeatureEngineer struct {
	LowerPercentile float64
	UpperPercentile float64
}

// NewFeatureEngineer returns an engineer capping at the 1st and 99th percentiles.
func NewFeatureEngineer() *FeatureEngineer {
	return &FeatureEngineer{
		LowerPercentile: 0.01,
		UpperPercentile: 0.99,
	}
}

// Transform derives features for every transaction in the batch. Rows are
// never dropped: an unparsable timestamp yields NaN calendar fields.
func (fe *FeatureEngineer) Transform(transactions []Transaction) []FeatureRow {
	rows := make([]FeatureRow, len(transactions))
	if len(transactions) == 0 {
		return rows
	}

	amounts := make([]float64, len(transactions))
	values := make([]float64, len(transactions))
	for i, tx := range transactions {
		amounts[i] = tx.Amount
		values[i] = tx.Value
	}
	amountLo, amountHi := fe.percentileBounds(amounts)
	valueLo, valueHi := fe.percentileBounds(values)

	for i, tx := range transactions {
		row := FeatureRow{Transaction: tx}

		hour, day, month, year := parseTimeFields(tx.TransactionStartTime)
		row.TransactionHour = hour
		row.TransactionDay = day
		row.TransactionMonth = month
		row.TransactionYear = year

		row.AmountCapped = clamp(tx.Amount, amountLo, amountHi)
		row.ValueCapped = clamp(tx.Value, valueLo, valueHi)
		row.LogAmount = math.Log1p(math.Abs(row.AmountCapped))
		row.LogValue = math.Log1p(row.ValueCapped)

		// Aggregates are filled in by the CustomerAggregator.
		row.AmountSum = math.NaN()
		row.AmountMean = math.NaN()
		row.AmountStd = math.NaN()
		row.AmountCount = math.NaN()
		row.ValueSum = math.NaN()
		row.ValueMean = math.NaN()
		row.ValueStd = math.NaN()

		rows[i] = row
	}
	return rows
}

func (fe *FeatureEngineer) percentileBounds(values []float64) (float64, float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	lo := stat.Quantile(fe.LowerPercentile, stat.Empirical, sorted, nil)
	hi := stat.Quantile(fe.UpperPercentile, stat.Empirical, sorted, nil)
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseTimeFields(value string) (hour, day, month, year float64) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return float64(ts.Hour()), float64(ts.Day()), float64(ts.Month()), float64(ts.Year())
		}
	}
	nan := math.NaN()
	return nan, nan, nan, nan
}
