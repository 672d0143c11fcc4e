package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures exercising
// every workflow: a montage mid-process with an initialized checklist, a
// fulfillment order and a dropshipping order.
func SeedFixtures(database *sql.DB) error {
	now := time.Now()
	installAt := now.AddDate(0, 0, 7).Format(time.RFC3339)

	montages := []struct {
		id, customer, address, status, material, installer string
		scheduledAt                                        string
	}{
		{"MON-001", "Jan Kowalski", "ul. Długa 12, Kraków", "preparation", "ordered", "informed", installAt},
		{"MON-002", "Anna Nowak", "ul. Krótka 3, Warszawa", "lead", "none", "none", ""},
	}
	for _, m := range montages {
		var scheduled sql.NullString
		if m.scheduledAt != "" {
			scheduled = sql.NullString{String: m.scheduledAt, Valid: true}
		}
		if _, err := database.Exec(
			"INSERT INTO montages (id, customer_name, address, status, material_status, installer_status, scheduled_installation_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			m.id, m.customer, m.address, m.status, m.material, m.installer, scheduled,
		); err != nil {
			return fmt.Errorf("seed montages: %w", err)
		}
	}

	items := []struct {
		id, montageID, templateID, label string
		completed                        bool
	}{
		{"CHK-001", "MON-001", "TPL-001", "Pomiar wykonany", true},
		{"CHK-002", "MON-001", "TPL-002", "Oferta zaakceptowana", true},
		{"CHK-003", "MON-001", "TPL-003", "Umowa podpisana", true},
		{"CHK-004", "MON-001", "TPL-004", "Zaliczka opłacona", true},
		{"CHK-005", "MON-001", "TPL-005", "Materiał zamówiony", true},
		{"CHK-006", "MON-001", "TPL-006", "Materiał dostarczony", false},
		{"CHK-007", "MON-001", "TPL-007", "Montażysta potwierdzony", false},
		{"CHK-008", "MON-001", "", "Sprawdzić wilgotność wylewki", false},
	}
	for _, it := range items {
		var tpl sql.NullString
		if it.templateID != "" {
			tpl = sql.NullString{String: it.templateID, Valid: true}
		}
		completed := 0
		var completedAt sql.NullString
		if it.completed {
			completed = 1
			completedAt = sql.NullString{String: now.Format(time.RFC3339), Valid: true}
		}
		if _, err := database.Exec(
			"INSERT INTO checklist_items (id, montage_id, template_id, label, completed, completed_at) VALUES (?, ?, ?, ?, ?, ?)",
			it.id, it.montageID, tpl, it.label, completed, completedAt,
		); err != nil {
			return fmt.Errorf("seed checklist items: %w", err)
		}
	}

	orders := []struct {
		id, workflow, customer, stage, mode string
	}{
		{"ORD-001", "order", "Piotr Wiśniewski", "CONFIRMED", "DELIVERY_ONLY"},
		{"ORD-002", "order", "Maria Zielińska", "MATERIALS_ORDERED", "INSTALLATION_ONLY"},
		{"ORD-003", "dropshipping", "Tomasz Lewandowski", "ZALICZKA", ""},
	}
	for _, o := range orders {
		if _, err := database.Exec(
			"INSERT INTO orders (id, workflow, customer_name, stage, execution_mode) VALUES (?, ?, ?, ?, ?)",
			o.id, o.workflow, o.customer, o.stage, o.mode,
		); err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
	}

	return nil
}
