package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ml "github.com/CreditScope/CreditScope-Go/pipelines/ML"
)

func trainedBundle(t *testing.T) (*ModelBundle, [][]float64) {
	t.Helper()
	X := make([][]float64, 40)
	y := make([]int, 40)
	for i := range X {
		if i%2 == 0 {
			X[i] = []float64{2 + float64(i)*0.01, 1}
			y[i] = 1
		} else {
			X[i] = []float64{-2 - float64(i)*0.01, 0}
		}
	}

	forest := ml.NewRandomForest(10, 5, 2, 42)
	require.NoError(t, forest.Fit(X, y))

	bundle := NewForestBundle(forest, []string{"log_amount", "amount_mean"},
		map[string]any{"num_trees": 10}, ml.Metrics{Accuracy: 1, ROCAUC: 1})
	return bundle, X
}

func TestBundleSaveLoadRoundTrip(t *testing.T) {
	bundle, X := trainedBundle(t)
	path := filepath.Join(t.TempDir(), "models", "bundle.json")

	require.NoError(t, SaveBundle(bundle, path))

	loaded, err := LoadBundle(path)
	require.NoError(t, err)
	assert.Equal(t, bundle.ID, loaded.ID)
	assert.Equal(t, AlgorithmRandomForest, loaded.Algorithm)
	assert.Equal(t, bundle.FeatureNames, loaded.FeatureNames)
	assert.Equal(t, BundleSchemaVersion, loaded.SchemaVersion)

	model, err := loaded.Classifier()
	require.NoError(t, err)
	for _, x := range X {
		assert.Equal(t, bundle.Forest.PredictProba(x), model.PredictProba(x))
	}
}

func TestLoadBundleMissingFile(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadBundleSchemaMismatch(t *testing.T) {
	bundle, _ := trainedBundle(t)
	bundle.SchemaVersion = 99
	path := filepath.Join(t.TempDir(), "bundle.json")

	// Save normalizes a zero version but keeps an explicit one.
	require.NoError(t, SaveBundle(bundle, path))

	_, err := LoadBundle(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestVectorFromFields(t *testing.T) {
	bundle, _ := trainedBundle(t)

	vector, err := bundle.VectorFromFields(map[string]float64{
		"amount_mean": 2.0,
		"log_amount":  1.0,
	})
	require.NoError(t, err)
	// Order follows the stored schema, not the request.
	assert.Equal(t, []float64{1.0, 2.0}, vector)
}

func TestVectorFromFieldsMissingFeature(t *testing.T) {
	bundle, _ := trainedBundle(t)

	_, err := bundle.VectorFromFields(map[string]float64{"log_amount": 1.0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFeature)
	assert.Contains(t, err.Error(), "amount_mean")
}

func TestVectorFromFieldsUnknownFeature(t *testing.T) {
	bundle, _ := trainedBundle(t)

	_, err := bundle.VectorFromFields(map[string]float64{
		"log_amount":  1.0,
		"amount_mean": 2.0,
		"mystery":     3.0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestClassifierUnknownAlgorithm(t *testing.T) {
	bundle := &ModelBundle{SchemaVersion: BundleSchemaVersion, Algorithm: "neural_net"}
	_, err := bundle.Classifier()
	assert.Error(t, err)
}
