package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/montage/internal/ports/secondary"
)

const orderColumns = "id, workflow, customer_name, stage, stage_notes, requires_admin_attention, has_quote, has_invoice, execution_mode, expected_ship_date, created_at, updated_at"

// OrderRepository implements secondary.OrderRepository with SQLite. Fulfillment
// and dropshipping orders share the table, discriminated by workflow.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new SQLite order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *secondary.OrderRecord) error {
	var mode sql.NullString
	if order.ExecutionMode != "" {
		mode = sql.NullString{String: order.ExecutionMode, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO orders (id, workflow, customer_name, stage, execution_mode) VALUES (?, ?, ?, ?, ?)",
		order.ID, order.Workflow, order.CustomerName, order.Stage, mode,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*secondary.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = ?",
		id,
	)

	record, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return record, nil
}

// List retrieves orders matching the given filters.
func (r *OrderRepository) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE 1=1"
	args := []any{}

	if filters.Workflow != "" {
		query += " AND workflow = ?"
		args = append(args, filters.Workflow)
	}
	if filters.Stage != "" {
		query += " AND stage = ?"
		args = append(args, filters.Stage)
	}
	if filters.AdminAttention {
		query += " AND requires_admin_attention = 1"
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*secondary.OrderRecord
	for rows.Next() {
		record, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, record)
	}

	return orders, nil
}

// UpdateStage updates the stage and appends a stage note when one is given.
func (r *OrderRepository) UpdateStage(ctx context.Context, id, stageValue, note string) error {
	var result sql.Result
	var err error
	if note == "" {
		result, err = r.db.ExecContext(ctx,
			"UPDATE orders SET stage = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			stageValue, id,
		)
	} else {
		result, err = r.db.ExecContext(ctx,
			`UPDATE orders SET stage = ?,
				stage_notes = CASE WHEN stage_notes IS NULL OR stage_notes = '' THEN ? ELSE stage_notes || char(10) || ? END,
				updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			stageValue, note, note, id,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update order stage: %w", err)
	}
	return requireOrderRow(result, id)
}

// SetAdminAttention flips the requires-admin-attention flag.
func (r *OrderRepository) SetAdminAttention(ctx context.Context, id string, v bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET requires_admin_attention = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		boolToInt(v), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set admin attention: %w", err)
	}
	return requireOrderRow(result, id)
}

// SetQuoteFlag sets the quote-issued document flag.
func (r *OrderRepository) SetQuoteFlag(ctx context.Context, id string, v bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET has_quote = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		boolToInt(v), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set quote flag: %w", err)
	}
	return requireOrderRow(result, id)
}

// SetInvoiceFlag sets the invoice-issued document flag.
func (r *OrderRepository) SetInvoiceFlag(ctx context.Context, id string, v bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET has_invoice = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		boolToInt(v), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set invoice flag: %w", err)
	}
	return requireOrderRow(result, id)
}

// SetExpectedShipDate sets or clears the expected ship date.
func (r *OrderRepository) SetExpectedShipDate(ctx context.Context, id, date string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET expected_ship_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		nullableDate(date), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set expected ship date: %w", err)
	}
	return requireOrderRow(result, id)
}

// GetNextID returns the next available order ID.
func (r *OrderRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM orders",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next order ID: %w", err)
	}

	return fmt.Sprintf("ORD-%03d", maxID+1), nil
}

func scanOrder(row rowScanner) (*secondary.OrderRecord, error) {
	var (
		stageNotes     sql.NullString
		adminAttention int
		hasQuote       int
		hasInvoice     int
		mode           sql.NullString
		shipDate       sql.NullTime
		createdAt      time.Time
		updatedAt      time.Time
	)

	record := &secondary.OrderRecord{}
	err := row.Scan(&record.ID, &record.Workflow, &record.CustomerName, &record.Stage, &stageNotes,
		&adminAttention, &hasQuote, &hasInvoice, &mode, &shipDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.StageNotes = stageNotes.String
	record.RequiresAdminAttention = adminAttention != 0
	record.HasQuote = hasQuote != 0
	record.HasInvoice = hasInvoice != 0
	record.ExecutionMode = mode.String
	record.ExpectedShipDate = formatNullTime(shipDate)
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func requireOrderRow(result sql.Result, id string) error {
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

// Ensure OrderRepository implements the interface
var _ secondary.OrderRepository = (*OrderRepository)(nil)
