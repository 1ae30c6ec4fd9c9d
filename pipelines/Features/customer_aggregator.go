package features

import (
	"math"

	"github.com/montanaflynn/stats"
)

// CustomerAggregator computes per-customer summary statistics over the raw
// Amount and Value columns and joins them back onto every row of the
// customer. Aggregates are recomputed in full for each batch.
type CustomerAggregator struct{}

// NewCustomerAggregator returns a CustomerAggregator.
func NewCustomerAggregator() *CustomerAggregator {
	return &CustomerAggregator{}
}

type customerStats struct {
	amountSum, amountMean, amountStd float64
	amountCount                      float64
	valueSum, valueMean, valueStd    float64
}

// Transform fills in the seven aggregate columns on every row. Customers with
// a single transaction get NaN standard deviations; downstream imputation
// handles them.
func (ca *CustomerAggregator) Transform(rows []FeatureRow) []FeatureRow {
	amountsByCustomer := make(map[string][]float64)
	valuesByCustomer := make(map[string][]float64)
	for _, row := range rows {
		amountsByCustomer[row.CustomerId] = append(amountsByCustomer[row.CustomerId], row.Amount)
		valuesByCustomer[row.CustomerId] = append(valuesByCustomer[row.CustomerId], row.Value)
	}

	statsByCustomer := make(map[string]customerStats, len(amountsByCustomer))
	for customer, amounts := range amountsByCustomer {
		values := valuesByCustomer[customer]
		statsByCustomer[customer] = customerStats{
			amountSum:   mustSum(amounts),
			amountMean:  mustMean(amounts),
			amountStd:   sampleStd(amounts),
			amountCount: float64(len(amounts)),
			valueSum:    mustSum(values),
			valueMean:   mustMean(values),
			valueStd:    sampleStd(values),
		}
	}

	out := make([]FeatureRow, len(rows))
	for i, row := range rows {
		cs := statsByCustomer[row.CustomerId]
		row.AmountSum = cs.amountSum
		row.AmountMean = cs.amountMean
		row.AmountStd = cs.amountStd
		row.AmountCount = cs.amountCount
		row.ValueSum = cs.valueSum
		row.ValueMean = cs.valueMean
		row.ValueStd = cs.valueStd
		out[i] = row
	}
	return out
}

func mustSum(data []float64) float64 {
	sum, err := stats.Sum(data)
	if err != nil {
		return math.NaN()
	}
	return sum
}

func mustMean(data []float64) float64 {
	mean, err := stats.Mean(data)
	if err != nil {
		return math.NaN()
	}
	return mean
}

func sampleStd(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	std, err := stats.StandardDeviationSample(data)
	if err != nil {
		return math.NaN()
	}
	return std
}
