package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in order and tracked in the migrations table.
// The per-resolution cell columns are precomputed at ingest time because
// SQLite has no spatial indexing functions to derive them at query time.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_demand_observations",
		SQL: `
			CREATE TABLE IF NOT EXISTS demand_observations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				observed_at TEXT NOT NULL,
				cell_id TEXT NOT NULL,
				actual REAL NOT NULL DEFAULT 0,
				forecast REAL NOT NULL DEFAULT 0,
				score REAL,
				pickup_cell_r6 TEXT NOT NULL,
				pickup_cell_r7 TEXT NOT NULL,
				pickup_cell_r8 TEXT NOT NULL,
				pickup_cell_r9 TEXT NOT NULL,
				dropoff_cell_r6 TEXT NOT NULL,
				dropoff_cell_r7 TEXT NOT NULL,
				dropoff_cell_r8 TEXT NOT NULL,
				dropoff_cell_r9 TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_observations_observed_at ON demand_observations(observed_at);
			CREATE INDEX IF NOT EXISTS idx_observations_cell ON demand_observations(cell_id);
		`,
	},
	{
		Version: 2,
		Name:    "create_cell_accuracy",
		SQL: `
			CREATE TABLE IF NOT EXISTS cell_accuracy (
				cell_id TEXT PRIMARY KEY,
				smape REAL NOT NULL
			);
		`,
	},
}

// Migrate applies all pending migrations.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
