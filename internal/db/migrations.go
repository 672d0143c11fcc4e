package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_skirting_installation_date",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_order_workflow_discriminator",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_montage_soft_delete",
		Up:      migrationV3,
	},
}

// RunMigrations applies all pending migrations in order.
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", m.Version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.Version, err)
		}
		if applied > 0 {
			continue
		}

		if err := m.Up(db); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func migrationV1(db *sql.DB) error {
	_, err := db.Exec("ALTER TABLE montages ADD COLUMN scheduled_skirting_installation_at DATETIME")
	return err
}

func migrationV2(db *sql.DB) error {
	_, err := db.Exec("ALTER TABLE orders ADD COLUMN workflow TEXT NOT NULL DEFAULT 'order'")
	return err
}

func migrationV3(db *sql.DB) error {
	_, err := db.Exec("ALTER TABLE montages ADD COLUMN deleted_at DATETIME")
	return err
}
