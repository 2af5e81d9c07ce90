package scan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/blackwell-systems/debtscan/internal/recommend"
	"github.com/blackwell-systems/debtscan/internal/scoring"
)

// Orchestrator runs the scoring pipeline across a batch of projects.
type Orchestrator struct {
	collector Collector
	engine    *recommend.Engine
	opts      Options
}

// New creates an orchestrator using the given collector and a frozen
// options snapshot.
func New(collector Collector, opts Options) *Orchestrator {
	if opts.Parallel <= 0 {
		opts.Parallel = DefaultParallel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Orchestrator{
		collector: collector,
		engine:    recommend.NewEngine(),
		opts:      opts,
	}
}

// Run scans all projects and returns one result per project, ordered by
// ascending project ID regardless of completion order. Configuration errors
// (invalid weights or thresholds) fail the whole batch before any project
// scan starts; after that the call always returns a full batch, with
// per-project failures recorded on their results.
func (o *Orchestrator) Run(ctx context.Context, projects []ProjectInfo) ([]ScanResult, error) {
	if err := o.opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if err := o.opts.Thresholds.Validate(); err != nil {
		return nil, err
	}

	results := make([]ScanResult, len(projects))
	sem := semaphore.NewWeighted(int64(o.opts.Parallel))
	var wg sync.WaitGroup

	for i := range projects {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Parent context canceled: the remaining projects never ran.
			results[i] = failedResult(projects[i], err)
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = o.scanOne(ctx, projects[i])
		}(i)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Project.ID < results[j].Project.ID
	})
	return results, nil
}

// scanOne runs the full pipeline for a single project: collect, normalize,
// score, classify, recommend. Stages after collection are pure and
// non-blocking. Any failure stays local to this result.
func (o *Orchestrator) scanOne(ctx context.Context, p ProjectInfo) ScanResult {
	res := ScanResult{Project: p, ScanTimestamp: time.Now().UTC()}

	cctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	raw, err := o.collector.Collect(cctx, p)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %v", ErrCollectTimeout, o.opts.Timeout, err)
		}
		res.Error = err.Error()
		return res
	}

	debt := scoring.Compute(raw, o.opts.Weights)
	res.Metrics = debt
	res.RiskLevel = scoring.Classify(debt.OverallScore, o.opts.Thresholds)
	res.Findings = o.engine.Run(&recommend.ProjectContext{Name: p.Name, Debt: debt})
	res.Recommendations = recommend.Messages(res.Findings)
	return res
}

func failedResult(p ProjectInfo, err error) ScanResult {
	return ScanResult{
		Project:       p,
		ScanTimestamp: time.Now().UTC(),
		Error:         err.Error(),
	}
}
