package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			scanned_at   TEXT NOT NULL,
			version      TEXT NOT NULL,
			filters_json TEXT,
			summary_json TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS scan_results (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id              INTEGER NOT NULL REFERENCES scans(id),
			project_id           INTEGER NOT NULL,
			project_name         TEXT NOT NULL,
			project_path         TEXT,
			overall_score        REAL,
			code_quality_score   REAL,
			architecture_score   REAL,
			infrastructure_score REAL,
			operations_score     REAL,
			risk_level           TEXT,
			error                TEXT,
			result_json          TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS trend_points (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id        INTEGER NOT NULL REFERENCES scans(id),
			recorded_at    TEXT NOT NULL,
			overall        REAL NOT NULL,
			code_quality   REAL NOT NULL,
			architecture   REAL NOT NULL,
			infrastructure REAL NOT NULL,
			operations     REAL NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_scan_results_scan ON scan_results(scan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_results_project ON scan_results(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trend_points_recorded ON trend_points(recorded_at)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
