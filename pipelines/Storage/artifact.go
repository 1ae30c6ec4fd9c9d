package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	features "github.com/CreditScope/CreditScope-Go/pipelines/Features"
	ml "github.com/CreditScope/CreditScope-Go/pipelines/ML"
)

// BundleSchemaVersion is the on-disk format version. Load rejects bundles
// written with a different version.
const BundleSchemaVersion = 1

var (
	// ErrSchemaMismatch is returned when a bundle's schema version differs
	// from BundleSchemaVersion.
	ErrSchemaMismatch = errors.New("model bundle schema version mismatch")
	// ErrMissingFeature is returned when a prediction request lacks a
	// feature the model expects.
	ErrMissingFeature = errors.New("missing feature")
	// ErrUnknownFeature is returned when a prediction request carries a
	// feature the model does not know.
	ErrUnknownFeature = errors.New("unknown feature")
)

// Algorithm names stored in bundles.
const (
	AlgorithmRandomForest       = "random_forest"
	AlgorithmLogisticRegression = "logistic_regression"
)

// ModelBundle is the single serving artifact: the trained model, the ordered
// feature schema it expects, the fitted preprocessing state and the run
// metadata. Everything needed to score a request travels in this one file.
type ModelBundle struct {
	SchemaVersion int                    `json:"schema_version"`
	ID            string                 `json:"id"`
	Algorithm     string                 `json:"algorithm"`
	FeatureNames  []string               `json:"feature_names"`
	Forest        *ml.RandomForest       `json:"forest,omitempty"`
	Logistic      *ml.LogisticRegression `json:"logistic,omitempty"`
	Preprocessor  *features.Preprocessor `json:"preprocessor,omitempty"`
	Params        map[string]any         `json:"params,omitempty"`
	Metrics       ml.Metrics             `json:"metrics"`
	TrainedAt     time.Time              `json:"trained_at"`
}

// NewForestBundle wraps a trained forest into a bundle.
func NewForestBundle(forest *ml.RandomForest, featureNames []string, params map[string]any, metrics ml.Metrics) *ModelBundle {
	return &ModelBundle{
		SchemaVersion: BundleSchemaVersion,
		ID:            uuid.New().String(),
		Algorithm:     AlgorithmRandomForest,
		FeatureNames:  featureNames,
		Forest:        forest,
		Params:        params,
		Metrics:       metrics,
		TrainedAt:     time.Now().UTC(),
	}
}

// Classifier returns the bundle's model behind the common prediction surface.
func (b *ModelBundle) Classifier() (ml.Classifier, error) {
	switch b.Algorithm {
	case AlgorithmRandomForest:
		if b.Forest == nil {
			return nil, fmt.Errorf("bundle %s declares %s but carries no forest", b.ID, b.Algorithm)
		}
		return b.Forest, nil
	case AlgorithmLogisticRegression:
		if b.Logistic == nil {
			return nil, fmt.Errorf("bundle %s declares %s but carries no model", b.ID, b.Algorithm)
		}
		return b.Logistic, nil
	default:
		return nil, fmt.Errorf("bundle %s has unknown algorithm %q", b.ID, b.Algorithm)
	}
}

// VectorFromFields assembles the model input vector from named request
// fields, in the bundle's stored feature order. Every expected feature must
// be present and no extra fields are allowed, so schema drift surfaces as an
// error instead of silently shifting columns.
func (b *ModelBundle) VectorFromFields(fields map[string]float64) ([]float64, error) {
	expected := make(map[string]bool, len(b.FeatureNames))
	for _, name := range b.FeatureNames {
		expected[name] = true
	}
	for name := range fields {
		if !expected[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
		}
	}

	vector := make([]float64, len(b.FeatureNames))
	for i, name := range b.FeatureNames {
		v, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingFeature, name)
		}
		vector[i] = v
	}
	return vector, nil
}

// SaveBundle writes the bundle as JSON, creating parent directories.
func SaveBundle(b *ModelBundle, path string) error {
	if b.SchemaVersion == 0 {
		b.SchemaVersion = BundleSchemaVersion
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bundle to %s: %w", path, err)
	}
	return nil
}

// LoadBundle reads and validates a bundle. A missing file fails fast; a
// schema version other than BundleSchemaVersion is rejected.
func LoadBundle(path string) (*ModelBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model bundle not found at %s: %w", path, err)
	}
	var bundle ModelBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse bundle at %s: %w", path, err)
	}
	if bundle.SchemaVersion != BundleSchemaVersion {
		return nil, fmt.Errorf("%w: bundle has version %d, expected %d",
			ErrSchemaMismatch, bundle.SchemaVersion, BundleSchemaVersion)
	}
	if _, err := bundle.Classifier(); err != nil {
		return nil, err
	}
	return &bundle, nil
}
