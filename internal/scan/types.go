// Package scan orchestrates debt scoring across a fleet of projects under a
// bounded worker pool with per-project timeouts and failure isolation.
package scan

import (
	"context"
	"errors"
	"time"

	"github.com/blackwell-systems/debtscan/internal/metrics"
	"github.com/blackwell-systems/debtscan/internal/recommend"
	"github.com/blackwell-systems/debtscan/internal/scoring"
)

// ErrCollectTimeout marks a per-project collection that ran past its
// timeout. It is recorded on the result, never propagated.
var ErrCollectTimeout = errors.New("scan: metric collection timed out")

// ProjectInfo is an immutable snapshot of a project's identity taken at
// scan time.
type ProjectInfo struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Path           string             `json:"path"`
	WebURL         string             `json:"web_url"`
	DefaultBranch  string             `json:"default_branch"`
	LastActivityAt time.Time          `json:"last_activity_at"`
	Languages      map[string]float64 `json:"languages,omitempty"`
}

// Collector produces raw metrics for one project. Implementations are the
// external analyzer boundary; collection is the only stage allowed to block
// and must honor ctx cancellation.
type Collector interface {
	Collect(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error)
}

// ScanResult is the outcome of one project scan. Exactly one of Metrics and
// Error is set: a successful result carries computed metrics, risk level,
// and recommendations, a failed result carries only the error message.
type ScanResult struct {
	Project         ProjectInfo          `json:"project_info"`
	Metrics         *scoring.DebtMetrics `json:"debt_metrics,omitempty"`
	RiskLevel       scoring.RiskLevel    `json:"risk_level,omitempty"`
	ScanTimestamp   time.Time            `json:"scan_timestamp"`
	Recommendations []string             `json:"recommendations,omitempty"`
	Error           string               `json:"error,omitempty"`

	// Findings keeps the structured recommendations for fleet-level
	// aggregation; the wire format only carries the rendered strings.
	Findings []recommend.Recommendation `json:"-"`
}

// Failed reports whether this project's scan failed.
func (r *ScanResult) Failed() bool {
	return r.Error != ""
}

// Options is the frozen per-batch configuration. It is shared read-only by
// all workers; a new batch may carry a new snapshot but an in-flight batch
// never sees changes.
type Options struct {
	Weights    scoring.WeightVector
	Thresholds scoring.RiskThresholds
	// Parallel caps concurrent project scans; defaults to DefaultParallel.
	Parallel int
	// Timeout bounds one project's metric collection; defaults to
	// DefaultTimeout.
	Timeout time.Duration
}

// Defaults for unset orchestration options.
const (
	DefaultParallel = 4
	DefaultTimeout  = 300 * time.Second
)
