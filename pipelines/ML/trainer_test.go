package ml

import "testing"

func trainerTestConfig() TrainingConfig {
	return TrainingConfig{
		Seed:             42,
		TestFraction:     0.2,
		SearchIterations: 3,
		CVFolds:          2,
	}
}

func TestTrainerRun(t *testing.T) {
	X, y := syntheticData(80)

	trainer := NewTrainer(trainerTestConfig())
	result, err := trainer.Run(X, y)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.RunID == "" {
		t.Error("missing run id")
	}
	if result.Model == nil {
		t.Fatal("missing tuned model")
	}
	if result.Baseline == nil {
		t.Fatal("missing baseline model")
	}
	if result.TrainSamples != 64 || result.TestSamples != 16 {
		t.Errorf("split sizes = %d/%d, want 64/16", result.TrainSamples, result.TestSamples)
	}
	if result.FeatureCount != 3 {
		t.Errorf("feature count = %d, want 3", result.FeatureCount)
	}

	// Separable data: the tuned forest should rank the held-out set well.
	if result.TunedMetrics.ROCAUC < 0.9 {
		t.Errorf("tuned ROC-AUC = %v, expected near-perfect", result.TunedMetrics.ROCAUC)
	}
}

func TestTrainerRunReproducible(t *testing.T) {
	X, y := syntheticData(80)

	a, err := NewTrainer(trainerTestConfig()).Run(X, y)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := NewTrainer(trainerTestConfig()).Run(X, y)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if a.BestParams != b.BestParams {
		t.Errorf("same-seed runs selected different params: %+v vs %+v", a.BestParams, b.BestParams)
	}
	if a.TunedMetrics != b.TunedMetrics {
		t.Errorf("same-seed runs produced different metrics: %+v vs %+v", a.TunedMetrics, b.TunedMetrics)
	}
}

func TestTrainerRunEmptyData(t *testing.T) {
	trainer := NewTrainer(trainerTestConfig())
	if _, err := trainer.Run(nil, nil); err == nil {
		t.Fatal("expected error on empty data")
	}
}
