package db

// SchemaSQL is the complete modern schema for fresh installs.
//
// This is the single source of truth for the database schema. All tests load
// it via GetSchemaSQL(); repository code that references a column missing
// here fails immediately with "no such column" instead of drifting.
//
// When adding columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Montages (installation processes)
CREATE TABLE IF NOT EXISTS montages (
	id TEXT PRIMARY KEY,
	customer_name TEXT NOT NULL,
	address TEXT,
	status TEXT NOT NULL CHECK(status IN ('lead', 'measurement', 'offer', 'contract', 'preparation', 'scheduled', 'installation', 'completed')) DEFAULT 'lead',
	material_status TEXT NOT NULL CHECK(material_status IN ('none', 'ordered', 'in_stock', 'delivered')) DEFAULT 'none',
	installer_status TEXT NOT NULL CHECK(installer_status IN ('none', 'informed', 'confirmed')) DEFAULT 'none',
	installer_id TEXT,
	measurer_id TEXT,
	scheduled_installation_at DATETIME,
	scheduled_installation_end_at DATETIME,
	scheduled_skirting_installation_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME,
	deleted_at DATETIME
);

-- Checklist items (per-montage instances of templates, plus custom items)
CREATE TABLE IF NOT EXISTS checklist_items (
	id TEXT PRIMARY KEY,
	montage_id TEXT NOT NULL,
	template_id TEXT,
	label TEXT NOT NULL,
	completed INTEGER DEFAULT 0,
	completed_at DATETIME,
	attachment TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (montage_id) REFERENCES montages(id) ON DELETE CASCADE
);

-- Orders (fulfillment and dropshipping, discriminated by workflow)
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	workflow TEXT NOT NULL CHECK(workflow IN ('order', 'dropshipping')) DEFAULT 'order',
	customer_name TEXT NOT NULL,
	stage TEXT NOT NULL,
	stage_notes TEXT,
	requires_admin_attention INTEGER DEFAULT 0,
	has_quote INTEGER DEFAULT 0,
	has_invoice INTEGER DEFAULT 0,
	execution_mode TEXT CHECK(execution_mode IN ('INSTALLATION_ONLY', 'DELIVERY_ONLY', '')),
	expected_ship_date DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_montages_status ON montages(status);
CREATE INDEX IF NOT EXISTS idx_montages_installer ON montages(installer_id);
CREATE INDEX IF NOT EXISTS idx_checklist_items_montage ON checklist_items(montage_id);
CREATE INDEX IF NOT EXISTS idx_orders_workflow ON orders(workflow);
CREATE INDEX IF NOT EXISTS idx_orders_stage ON orders(stage);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version exists to decide fresh install vs upgrade
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - create the modern schema and mark every
		// migration as applied so they never re-run.
		if _, err = db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
