package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/debtscan/internal/metrics"
	"github.com/blackwell-systems/debtscan/internal/scoring"
)

var testOptions = Options{
	Weights:    scoring.WeightVector{CodeQuality: 0.25, Architecture: 0.30, Infrastructure: 0.25, Operations: 0.20},
	Thresholds: scoring.RiskThresholds{Low: 1, Medium: 2, High: 3, Critical: 4},
	Parallel:   4,
	Timeout:    time.Second,
}

// collectorFunc adapts a function to the Collector interface.
type collectorFunc func(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error)

func (f collectorFunc) Collect(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
	return f(ctx, p)
}

func testProjects(n int) []ProjectInfo {
	projects := make([]ProjectInfo, n)
	for i := range projects {
		projects[i] = ProjectInfo{ID: i + 1, Name: fmt.Sprintf("project-%d", i+1)}
	}
	return projects
}

func healthyMetrics() *metrics.RawMetrics {
	return &metrics.RawMetrics{
		CodeAnalysis:           map[string]any{"test_to_code_ratio": 0.6, "code_documentation_ratio": 0.7},
		ArchitectureAnalysis:   map[string]any{"has_readme": true},
		InfrastructureAnalysis: map[string]any{"has_cicd_config": true, "is_containerized": true},
		OperationsAnalysis:     map[string]any{"commits_per_week": 5.0, "unique_contributors": 3},
	}
}

func TestRun_ConfigErrorAbortsBatch(t *testing.T) {
	var calls atomic.Int32
	collector := collectorFunc(func(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
		calls.Add(1)
		return healthyMetrics(), nil
	})

	opts := testOptions
	opts.Weights = scoring.WeightVector{CodeQuality: 0.5, Architecture: 0.5, Infrastructure: 0.5, Operations: 0.5}
	_, err := New(collector, opts).Run(context.Background(), testProjects(3))
	require.ErrorIs(t, err, scoring.ErrBadWeights)
	assert.Zero(t, calls.Load(), "no project should be collected after a config error")

	opts = testOptions
	opts.Thresholds = scoring.RiskThresholds{Low: 3, Medium: 2, High: 1, Critical: 0}
	_, err = New(collector, opts).Run(context.Background(), testProjects(3))
	require.ErrorIs(t, err, scoring.ErrBadThresholds)
	assert.Zero(t, calls.Load())
}

func TestRun_SuccessfulBatch(t *testing.T) {
	collector := collectorFunc(func(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
		return healthyMetrics(), nil
	})
	results, err := New(collector, testOptions).Run(context.Background(), testProjects(5))
	require.NoError(t, err)
	require.Len(t, results, 5)

	for _, r := range results {
		assert.False(t, r.Failed())
		require.NotNil(t, r.Metrics)
		assert.NotEmpty(t, r.RiskLevel)
		assert.False(t, r.ScanTimestamp.IsZero())
		assert.GreaterOrEqual(t, r.Metrics.OverallScore, 0.0)
		assert.LessOrEqual(t, r.Metrics.OverallScore, scoring.MaxScore)
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	collector := collectorFunc(func(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
		if p.ID == 2 {
			return nil, errors.New("clone failed: permission denied")
		}
		return healthyMetrics(), nil
	})
	results, err := New(collector, testOptions).Run(context.Background(), testProjects(4))
	require.NoError(t, err, "a batch never fails on per-project errors")
	require.Len(t, results, 4)

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
			assert.Equal(t, 2, r.Project.ID)
			assert.Contains(t, r.Error, "clone failed")
			assert.Nil(t, r.Metrics, "a failed result carries no metrics")
			assert.Empty(t, r.Recommendations)
		} else {
			assert.NotNil(t, r.Metrics)
			assert.Empty(t, r.Error)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestRun_TimeoutIsPerProject(t *testing.T) {
	collector := collectorFunc(func(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
		if p.ID == 1 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return healthyMetrics(), nil
	})
	opts := testOptions
	opts.Timeout = 20 * time.Millisecond

	start := time.Now()
	results, err := New(collector, opts).Run(context.Background(), testProjects(3))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Less(t, time.Since(start), 5*time.Second)

	slow := results[0]
	require.Equal(t, 1, slow.Project.ID)
	assert.True(t, slow.Failed())
	assert.Contains(t, slow.Error, ErrCollectTimeout.Error())
	for _, r := range results[1:] {
		assert.False(t, r.Failed(), "a sibling timeout must not fail project %d", r.Project.ID)
	}
}

func TestRun_ConcurrencyBound(t *testing.T) {
	const parallel = 3
	var mu sync.Mutex
	inFlight, peak := 0, 0

	collector := collectorFunc(func(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return healthyMetrics(), nil
	})

	opts := testOptions
	opts.Parallel = parallel
	results, err := New(collector, opts).Run(context.Background(), testProjects(12))
	require.NoError(t, err)
	require.Len(t, results, 12)
	assert.LessOrEqual(t, peak, parallel, "observed %d concurrent scans", peak)
	assert.Positive(t, peak)
}

func TestRun_ResultsOrderedByProjectID(t *testing.T) {
	// Later projects finish first; output order must not follow completion.
	collector := collectorFunc(func(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
		time.Sleep(time.Duration(40-p.ID*10) * time.Millisecond)
		return healthyMetrics(), nil
	})
	projects := []ProjectInfo{
		{ID: 3, Name: "gamma"},
		{ID: 1, Name: "alpha"},
		{ID: 2, Name: "beta"},
	}
	results, err := New(collector, testOptions).Run(context.Background(), projects)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, want := range []int{1, 2, 3} {
		assert.Equal(t, want, results[i].Project.ID)
	}
}

func TestRun_Idempotent(t *testing.T) {
	collector := collectorFunc(func(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
		return healthyMetrics(), nil
	})
	o := New(collector, testOptions)
	first, err := o.Run(context.Background(), testProjects(3))
	require.NoError(t, err)
	second, err := o.Run(context.Background(), testProjects(3))
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Metrics.OverallScore, second[i].Metrics.OverallScore)
		assert.Equal(t, first[i].RiskLevel, second[i].RiskLevel)
		assert.Equal(t, first[i].Recommendations, second[i].Recommendations)
	}
}

func TestManifestCollector(t *testing.T) {
	m := &Manifest{Projects: []ManifestEntry{
		{ProjectInfo: ProjectInfo{ID: 1, Name: "alpha"}, RawMetrics: healthyMetrics()},
		{ProjectInfo: ProjectInfo{ID: 2, Name: "beta"}}, // analyzer never ran
	}}
	c := NewManifestCollector(m)

	raw, err := c.Collect(context.Background(), ProjectInfo{ID: 1, Name: "alpha"})
	require.NoError(t, err)
	assert.NotNil(t, raw)

	_, err = c.Collect(context.Background(), ProjectInfo{ID: 2, Name: "beta"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no analyzer output")
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err := LoadManifest(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding manifest")

	good := filepath.Join(dir, "good.json")
	payload := `{"projects":[{"id":7,"name":"alpha","raw_metrics":{"code_analysis":{"test_to_code_ratio":0.4}}}]}`
	require.NoError(t, os.WriteFile(good, []byte(payload), 0o644))
	m, err := LoadManifest(good)
	require.NoError(t, err)
	require.Len(t, m.Projects, 1)
	assert.Equal(t, "alpha", m.Projects[0].Name)
	assert.Equal(t, []ProjectInfo{{ID: 7, Name: "alpha"}}, m.ProjectList())
}
