package features

import "math"

// Transaction is a single raw transaction record. Amount is signed (debits are
// negative), Value is the unsigned magnitude.
type Transaction struct {
	TransactionId        string  `json:"TransactionId"`
	CustomerId           string  `json:"CustomerId"`
	Amount               float64 `json:"Amount"`
	Value                float64 `json:"Value"`
	ProductCategory      string  `json:"ProductCategory"`
	ChannelId            string  `json:"ChannelId"`
	ProviderId           string  `json:"ProviderId"`
	PricingStrategy      string  `json:"PricingStrategy"`
	TransactionStartTime string  `json:"TransactionStartTime"`
}

// FeatureRow is a transaction enriched with engineered and aggregated
// features. Missing values are represented as NaN.
type FeatureRow struct {
	Transaction

	TransactionHour  float64
	TransactionDay   float64
	TransactionMonth float64
	TransactionYear  float64

	AmountCapped float64
	ValueCapped  float64
	LogAmount    float64
	LogValue     float64

	AmountSum   float64
	AmountMean  float64
	AmountStd   float64
	AmountCount float64
	ValueSum    float64
	ValueMean   float64
	ValueStd    float64
}

// Numeric column names, in model order.
const (
	ColLogAmount        = "log_amount"
	ColLogValue         = "log_value"
	ColTransactionHour  = "TransactionHour"
	ColTransactionDay   = "TransactionDay"
	ColTransactionMonth = "TransactionMonth"
	ColTransactionYear  = "TransactionYear"
	ColAmountSum        = "amount_sum"
	ColAmountMean       = "amount_mean"
	ColAmountStd        = "amount_std"
	ColAmountCount      = "amount_count"
	ColValueSum         = "value_sum"
	ColValueMean        = "value_mean"
	ColValueStd         = "value_std"
)

// Categorical column names, in model order.
const (
	ColProductCategory = "ProductCategory"
	ColChannelId       = "ChannelId"
	ColProviderId      = "ProviderId"
	ColPricingStrategy = "PricingStrategy"
)

// NumericColumns returns the numeric model columns in their fixed order.
func NumericColumns() []string {
	return []string{
		ColLogAmount, ColLogValue,
		ColTransactionHour, ColTransactionDay, ColTransactionMonth, ColTransactionYear,
		ColAmountSum, ColAmountMean, ColAmountStd, ColAmountCount,
		ColValueSum, ColValueMean, ColValueStd,
	}
}

// CategoricalColumns returns the categorical model columns in their fixed order.
func CategoricalColumns() []string {
	return []string{ColProductCategory, ColChannelId, ColProviderId, ColPricingStrategy}
}

// NumericValue returns the named numeric feature of the row. The second
// return value is false for unknown column names.
func (r *FeatureRow) NumericValue(column string) (float64, bool) {
	switch column {
	case ColLogAmount:
		return r.LogAmount, true
	case ColLogValue:
		return r.LogValue, true
	case ColTransactionHour:
		return r.TransactionHour, true
	case ColTransactionDay:
		return r.TransactionDay, true
	case ColTransactionMonth:
		return r.TransactionMonth, true
	case ColTransactionYear:
		return r.TransactionYear, true
	case ColAmountSum:
		return r.AmountSum, true
	case ColAmountMean:
		return r.AmountMean, true
	case ColAmountStd:
		return r.AmountStd, true
	case ColAmountCount:
		return r.AmountCount, true
	case ColValueSum:
		return r.ValueSum, true
	case ColValueMean:
		return r.ValueMean, true
	case ColValueStd:
		return r.ValueStd, true
	default:
		return math.NaN(), false
	}
}

// CategoricalValue returns the named categorical feature of the row. The
// second return value is false for unknown column names.
func (r *FeatureRow) CategoricalValue(column string) (string, bool) {
	switch column {
	case ColProductCategory:
		return r.ProductCategory, true
	case ColChannelId:
		return r.ChannelId, true
	case ColProviderId:
		return r.ProviderId, true
	case ColPricingStrategy:
		return r.PricingStrategy, true
	default:
		return "", false
	}
}
