package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/blackwell-systems/debtscan/internal/metrics"
)

// Manifest is the file-based collector input: the project list together
// with the analyzer output for each project, as produced by the external
// language analyzers. Entries without raw metrics are still scanned and
// fail with a collection error.
type Manifest struct {
	Projects []ManifestEntry `json:"projects"`
}

// ManifestEntry pairs one project with its analyzer output.
type ManifestEntry struct {
	ProjectInfo
	RawMetrics *metrics.RawMetrics `json:"raw_metrics"`
}

// LoadManifest reads and decodes a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}

// ProjectList returns the project snapshots in manifest order.
func (m *Manifest) ProjectList() []ProjectInfo {
	projects := make([]ProjectInfo, len(m.Projects))
	for i, e := range m.Projects {
		projects[i] = e.ProjectInfo
	}
	return projects
}

// ManifestCollector serves raw metrics from a loaded manifest, keyed by
// project ID.
type ManifestCollector struct {
	byID map[int]*metrics.RawMetrics
}

// NewManifestCollector indexes the manifest for lookup by project ID.
func NewManifestCollector(m *Manifest) *ManifestCollector {
	byID := make(map[int]*metrics.RawMetrics, len(m.Projects))
	for _, e := range m.Projects {
		byID[e.ID] = e.RawMetrics
	}
	return &ManifestCollector{byID: byID}
}

// Collect returns the manifest metrics for p, or a collection error when
// the manifest has no analyzer output for it.
func (c *ManifestCollector) Collect(ctx context.Context, p ProjectInfo) (*metrics.RawMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := c.byID[p.ID]
	if raw == nil {
		return nil, fmt.Errorf("no analyzer output for project %q (id %d)", p.Name, p.ID)
	}
	return raw, nil
}
