package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/debtscan/internal/report"
	"github.com/blackwell-systems/debtscan/internal/scan"
)

// ScanRecord is a persisted scan: the fleet summary plus bookkeeping.
type ScanRecord struct {
	ID        int64
	ScannedAt time.Time
	Version   string
	Summary   report.Summary
}

// SaveScan persists a completed batch: the fleet summary, every per-project
// result, and (when the batch produced one) a trend point. The whole write
// is transactional. Returns the new scan's ID.
func (db *DB) SaveScan(summary report.Summary, results []scan.ScanResult, version string) (int64, error) {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return 0, fmt.Errorf("encoding summary: %w", err)
	}
	var filtersJSON any
	if summary.Filters != nil {
		b, err := json.Marshal(summary.Filters)
		if err != nil {
			return 0, fmt.Errorf("encoding filters: %w", err)
		}
		filtersJSON = string(b)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO scans (scanned_at, version, filters_json, summary_json) VALUES (?, ?, ?, ?)",
		summary.ScanDate.UTC().Format(time.RFC3339), version, filtersJSON, string(summaryJSON),
	)
	if err != nil {
		return 0, err
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i := range results {
		r := &results[i]
		resultJSON, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("encoding result for project %d: %w", r.Project.ID, err)
		}

		var overall, cq, arch, infra, ops any
		if r.Metrics != nil {
			overall = r.Metrics.OverallScore
			cq = r.Metrics.CodeQualityScore
			arch = r.Metrics.ArchitectureScore
			infra = r.Metrics.InfrastructureScore
			ops = r.Metrics.OperationsScore
		}
		var errText any
		if r.Error != "" {
			errText = r.Error
		}

		if _, err := tx.Exec(
			`INSERT INTO scan_results
			(scan_id, project_id, project_name, project_path, overall_score,
			 code_quality_score, architecture_score, infrastructure_score, operations_score,
			 risk_level, error, result_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			scanID, r.Project.ID, r.Project.Name, r.Project.Path,
			overall, cq, arch, infra, ops,
			string(r.RiskLevel), errText, string(resultJSON),
		); err != nil {
			return 0, err
		}
	}

	if tp, ok := report.BuildTrendPoint(results, summary.ScanDate); ok {
		if _, err := tx.Exec(
			`INSERT INTO trend_points
			(scan_id, recorded_at, overall, code_quality, architecture, infrastructure, operations)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			scanID, tp.Date.UTC().Format(time.RFC3339),
			tp.OverallScore, tp.CodeQuality, tp.Architecture, tp.Infrastructure, tp.Operations,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return scanID, nil
}

// GetLatestScan returns the most recent scan, or nil if none exist.
func (db *DB) GetLatestScan() (*ScanRecord, error) {
	row := db.conn.QueryRow(
		"SELECT id, scanned_at, version, summary_json FROM scans ORDER BY id DESC LIMIT 1")
	return scanRecord(row)
}

// GetScanN returns the Nth most recent scan (1 = latest, 2 = previous, etc.).
func (db *DB) GetScanN(n int) (*ScanRecord, error) {
	row := db.conn.QueryRow(
		"SELECT id, scanned_at, version, summary_json FROM scans ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanRecord(row)
}

func scanRecord(row *sql.Row) (*ScanRecord, error) {
	var rec ScanRecord
	var scannedAt, summaryJSON string
	err := row.Scan(&rec.ID, &scannedAt, &rec.Version, &summaryJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.ScannedAt, _ = time.Parse(time.RFC3339, scannedAt)
	if err := json.Unmarshal([]byte(summaryJSON), &rec.Summary); err != nil {
		return nil, fmt.Errorf("decoding summary for scan %d: %w", rec.ID, err)
	}
	return &rec, nil
}

// GetScanResults returns the per-project results stored for a scan,
// ordered by project ID.
func (db *DB) GetScanResults(scanID int64) ([]scan.ScanResult, error) {
	rows, err := db.conn.Query(
		"SELECT result_json FROM scan_results WHERE scan_id = ? ORDER BY project_id",
		scanID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []scan.ScanResult
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r scan.ScanResult
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decoding stored result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListTrendPoints returns up to limit trend points, oldest first.
// A limit of 0 or less returns all of them.
func (db *DB) ListTrendPoints(limit int) ([]report.TrendPoint, error) {
	q := `SELECT recorded_at, overall, code_quality, architecture, infrastructure, operations
	 FROM trend_points ORDER BY id`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		// Keep the newest points when truncating.
		q = `SELECT recorded_at, overall, code_quality, architecture, infrastructure, operations
		 FROM (SELECT * FROM trend_points ORDER BY id DESC LIMIT ?) ORDER BY id`
		rows, err = db.conn.Query(q, limit)
	} else {
		rows, err = db.conn.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var points []report.TrendPoint
	for rows.Next() {
		var tp report.TrendPoint
		var recordedAt string
		if err := rows.Scan(&recordedAt, &tp.OverallScore,
			&tp.CodeQuality, &tp.Architecture, &tp.Infrastructure, &tp.Operations); err != nil {
			return nil, err
		}
		tp.Date, _ = time.Parse(time.RFC3339, recordedAt)
		points = append(points, tp)
	}
	return points, rows.Err()
}
