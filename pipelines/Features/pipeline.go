package features

// Pipeline composes the three feature stages into a single fit/transform
// unit: engineer per-transaction features, join per-customer aggregates, then
// encode to fixed-width vectors. Only the preprocessor carries fitted state;
// it travels inside the model bundle so serving uses the exact training
// encoding.
type Pipeline struct {
	Engineer     *FeatureEngineer    `json:"-"`
	Aggregator   *CustomerAggregator `json:"-"`
	Preprocessor *Preprocessor       `json:"preprocessor"`
}

// NewPipeline returns an unfitted pipeline with default stages.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Engineer:     NewFeatureEngineer(),
		Aggregator:   NewCustomerAggregator(),
		Preprocessor: NewPreprocessor(),
	}
}

// Fit learns preprocessing state from a batch of raw transactions.
func (p *Pipeline) Fit(transactions []Transaction) error {
	rows := p.Aggregator.Transform(p.Engineer.Transform(transactions))
	return p.Preprocessor.Fit(rows)
}

// Transform encodes a batch of raw transactions with the fitted state.
func (p *Pipeline) Transform(transactions []Transaction) ([][]float64, error) {
	rows := p.Aggregator.Transform(p.Engineer.Transform(transactions))
	return p.Preprocessor.Transform(rows)
}

// FitTransform fits on the batch and returns its encoding.
func (p *Pipeline) FitTransform(transactions []Transaction) ([][]float64, error) {
	if err := p.Fit(transactions); err != nil {
		return nil, err
	}
	return p.Transform(transactions)
}

// FeatureNames returns the encoded output schema.
func (p *Pipeline) FeatureNames() []string {
	return p.Preprocessor.FeatureNames()
}
