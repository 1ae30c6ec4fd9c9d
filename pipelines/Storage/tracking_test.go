package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ml "github.com/CreditScope/CreditScope-Go/pipelines/ML"
)

func newTestTracker(t *testing.T) *RunTracker {
	t.Helper()
	tracker, err := NewRunTracker(filepath.Join(t.TempDir(), "data", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { tracker.Close() })
	return tracker
}

func TestRunTrackerLogAndGet(t *testing.T) {
	tracker := newTestTracker(t)

	run := &TrainingRun{
		Name: "credit-risk-tuned",
		Params: map[string]any{
			"num_trees": float64(100),
			"max_depth": float64(10),
		},
		Metrics:      ml.Metrics{Accuracy: 0.9, Precision: 0.8, Recall: 0.7, F1: 0.75, ROCAUC: 0.95},
		ArtifactPath: "/models/bundle.json",
	}
	require.NoError(t, tracker.LogRun(run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := tracker.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Name, got.Name)
	assert.Equal(t, run.Params, got.Params)
	assert.Equal(t, run.Metrics, got.Metrics)
	assert.Equal(t, run.ArtifactPath, got.ArtifactPath)
}

func TestRunTrackerGetMissingRun(t *testing.T) {
	tracker := newTestTracker(t)

	_, err := tracker.GetRun("does-not-exist")
	assert.Error(t, err)
}

func TestRunTrackerListRunsNewestFirst(t *testing.T) {
	tracker := newTestTracker(t)

	older := &TrainingRun{
		Name:      "first",
		Params:    map[string]any{},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &TrainingRun{
		Name:      "second",
		Params:    map[string]any{},
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, tracker.LogRun(older))
	require.NoError(t, tracker.LogRun(newer))

	runs, err := tracker.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].Name)
	assert.Equal(t, "first", runs[1].Name)
}

func TestRunTrackerPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	tracker, err := NewRunTracker(path)
	require.NoError(t, err)
	run := &TrainingRun{Name: "persisted", Params: map[string]any{}}
	require.NoError(t, tracker.LogRun(run))
	require.NoError(t, tracker.Close())

	reopened, err := NewRunTracker(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Name)
}
