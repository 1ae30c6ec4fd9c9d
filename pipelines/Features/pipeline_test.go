package features

import (
	"math"
	"testing"
)

func TestPipelineFitTransform(t *testing.T) {
	p := NewPipeline()
	vectors, err := p.FitTransform(sampleTransactions())
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	names := p.FeatureNames()
	if len(vectors) != 4 {
		t.Fatalf("expected 4 vectors, got %d", len(vectors))
	}
	for i, v := range vectors {
		if len(v) != len(names) {
			t.Errorf("vector %d width %d != schema width %d", i, len(v), len(names))
		}
		for j, x := range v {
			if math.IsNaN(x) {
				t.Errorf("vector %d column %d (%s) is NaN", i, j, names[j])
			}
		}
	}
}

func TestPipelineTransformBeforeFit(t *testing.T) {
	p := NewPipeline()
	if _, err := p.Transform(sampleTransactions()); err == nil {
		t.Fatal("expected error when transforming before fit")
	}
}
