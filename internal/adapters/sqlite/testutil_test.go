package sqlite

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/montage/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := database.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return database
}

func seedMontage(t *testing.T, database *sql.DB, id, customer, status string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO montages (id, customer_name, status, material_status, installer_status) VALUES (?, ?, ?, 'none', 'none')",
		id, customer, status,
	)
	if err != nil {
		t.Fatalf("failed to seed montage %s: %v", id, err)
	}
}

func seedChecklistItem(t *testing.T, database *sql.DB, id, montageID, templateID, label string, completed bool) {
	t.Helper()
	var tpl sql.NullString
	if templateID != "" {
		tpl = sql.NullString{String: templateID, Valid: true}
	}
	c := 0
	if completed {
		c = 1
	}
	_, err := database.Exec(
		"INSERT INTO checklist_items (id, montage_id, template_id, label, completed) VALUES (?, ?, ?, ?, ?)",
		id, montageID, tpl, label, c,
	)
	if err != nil {
		t.Fatalf("failed to seed checklist item %s: %v", id, err)
	}
}

func seedOrder(t *testing.T, database *sql.DB, id, workflow, customer, stage, mode string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO orders (id, workflow, customer_name, stage, execution_mode) VALUES (?, ?, ?, ?, ?)",
		id, workflow, customer, stage, mode,
	)
	if err != nil {
		t.Fatalf("failed to seed order %s: %v", id, err)
	}
}
