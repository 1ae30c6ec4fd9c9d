package ml

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/CreditScope/CreditScope-Go/utils"
)

// TrainingConfig holds the knobs of a training run.
type TrainingConfig struct {
	Seed             int64
	TestFraction     float64
	SearchIterations int
	CVFolds          int
}

// DefaultTrainingConfig returns the standard 80/20 run with seed 42.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Seed:             42,
		TestFraction:     0.2,
		SearchIterations: 10,
		CVFolds:          3,
	}
}

// TrainingResult carries everything a run produced: the baselines, the
// search winner, its held-out metrics, and the tuned model itself. The tuned
// model is what gets persisted, whether or not it beat the baselines.
type TrainingResult struct {
	RunID           string       `json:"run_id"`
	BaselineLR      Metrics      `json:"baseline_lr"`
	BaselineRF      Metrics      `json:"baseline_rf"`
	BestParams      SearchResult `json:"best_params"`
	TunedMetrics    Metrics      `json:"tuned_metrics"`
	Model           *RandomForest
	Baseline        *LogisticRegression
	TrainSamples    int `json:"train_samples"`
	TestSamples     int `json:"test_samples"`
	FeatureCount    int `json:"feature_count"`
	PositiveSamples int `json:"positive_samples"`
}

// Trainer runs the full training procedure: stratified split, logistic
// regression and default-forest baselines, randomized hyperparameter search,
// and a final held-out evaluation of the tuned forest.
type Trainer struct {
	config TrainingConfig
	logger *utils.Logger
}

// NewTrainer creates a trainer with the given configuration.
func NewTrainer(config TrainingConfig) *Trainer {
	if config.TestFraction <= 0 || config.TestFraction >= 1 {
		config.TestFraction = 0.2
	}
	if config.SearchIterations <= 0 {
		config.SearchIterations = 10
	}
	if config.CVFolds < 2 {
		config.CVFolds = 3
	}
	return &Trainer{
		config: config,
		logger: utils.GetLogger(),
	}
}

// Run executes the procedure on the full labeled matrix.
func (t *Trainer) Run(X [][]float64, y []int) (*TrainingResult, error) {
	runID := uuid.New().String()
	t.logger.Info("training run started",
		utils.Component("trainer"),
		utils.String("run_id", runID),
		utils.Int("samples", len(X)))

	trainX, testX, trainY, testY, err := StratifiedSplit(X, y, t.config.TestFraction, t.config.Seed)
	if err != nil {
		return nil, fmt.Errorf("stratified split failed: %w", err)
	}

	positives := 0
	for _, label := range y {
		positives += label
	}

	result := &TrainingResult{
		RunID:           runID,
		TrainSamples:    len(trainX),
		TestSamples:     len(testX),
		FeatureCount:    len(X[0]),
		PositiveSamples: positives,
	}

	baseline := NewLogisticRegression()
	if err := baseline.Fit(trainX, trainY); err != nil {
		return nil, fmt.Errorf("logistic regression baseline failed: %w", err)
	}
	result.Baseline = baseline
	result.BaselineLR = Evaluate(baseline, testX, testY)
	t.logger.Info("logistic regression baseline evaluated",
		utils.Component("trainer"),
		utils.Float("roc_auc", result.BaselineLR.ROCAUC),
		utils.Float("f1", result.BaselineLR.F1))

	defaultForest := NewRandomForest(100, 0, 2, t.config.Seed)
	if err := defaultForest.Fit(trainX, trainY); err != nil {
		return nil, fmt.Errorf("default forest baseline failed: %w", err)
	}
	result.BaselineRF = Evaluate(defaultForest, testX, testY)
	t.logger.Info("default forest baseline evaluated",
		utils.Component("trainer"),
		utils.Float("roc_auc", result.BaselineRF.ROCAUC),
		utils.Float("f1", result.BaselineRF.F1))

	search := NewRandomizedSearch(t.config.Seed)
	search.Iterations = t.config.SearchIterations
	search.Folds = t.config.CVFolds
	best, err := search.Run(trainX, trainY)
	if err != nil {
		return nil, fmt.Errorf("hyperparameter search failed: %w", err)
	}
	result.BestParams = *best
	t.logger.Info("hyperparameter search finished",
		utils.Component("trainer"),
		utils.Int("num_trees", best.NumTrees),
		utils.Int("max_depth", best.MaxDepth),
		utils.Int("min_samples_split", best.MinSamplesSplit),
		utils.Float("cv_auc", best.MeanAUC))

	tuned := NewRandomForest(best.NumTrees, best.MaxDepth, best.MinSamplesSplit, t.config.Seed)
	if err := tuned.Fit(trainX, trainY); err != nil {
		return nil, fmt.Errorf("tuned forest training failed: %w", err)
	}
	result.Model = tuned
	result.TunedMetrics = Evaluate(tuned, testX, testY)
	t.logger.Info("tuned forest evaluated",
		utils.Component("trainer"),
		utils.Float("roc_auc", result.TunedMetrics.ROCAUC),
		utils.Float("f1", result.TunedMetrics.F1))

	return result, nil
}
