package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/montage/internal/ports/secondary"
)

const checklistColumns = "id, montage_id, template_id, label, completed, completed_at, attachment, created_at, updated_at"

// ChecklistItemRepository implements secondary.ChecklistItemRepository with SQLite.
type ChecklistItemRepository struct {
	db *sql.DB
}

// NewChecklistItemRepository creates a new SQLite checklist item repository.
func NewChecklistItemRepository(db *sql.DB) *ChecklistItemRepository {
	return &ChecklistItemRepository{db: db}
}

// Create persists a new checklist item.
func (r *ChecklistItemRepository) Create(ctx context.Context, item *secondary.ChecklistItemRecord) error {
	var templateID sql.NullString
	if item.TemplateID != "" {
		templateID = sql.NullString{String: item.TemplateID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO checklist_items (id, montage_id, template_id, label, completed) VALUES (?, ?, ?, ?, ?)",
		item.ID, item.MontageID, templateID, item.Label, item.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to create checklist item: %w", err)
	}

	return nil
}

// GetByID retrieves a checklist item by its ID.
func (r *ChecklistItemRepository) GetByID(ctx context.Context, id string) (*secondary.ChecklistItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+checklistColumns+" FROM checklist_items WHERE id = ?",
		id,
	)

	record, err := scanChecklistItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("checklist item %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item: %w", err)
	}
	return record, nil
}

// ListByMontage retrieves all items belonging to a montage, oldest first so
// template order from initialization is preserved.
func (r *ChecklistItemRepository) ListByMontage(ctx context.Context, montageID string) ([]*secondary.ChecklistItemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+checklistColumns+" FROM checklist_items WHERE montage_id = ? ORDER BY created_at ASC, id ASC",
		montageID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	var items []*secondary.ChecklistItemRecord
	for rows.Next() {
		record, err := scanChecklistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, record)
	}

	return items, nil
}

// SetCompleted toggles completion and sets or clears completed_at.
func (r *ChecklistItemRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	var query string
	if completed {
		query = "UPDATE checklist_items SET completed = 1, completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	} else {
		query = "UPDATE checklist_items SET completed = 0, completed_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	}

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	return requireChecklistRow(result, id)
}

// SetAttachment stores a file reference on the item.
func (r *ChecklistItemRepository) SetAttachment(ctx context.Context, id, reference string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE checklist_items SET attachment = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		reference, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set attachment: %w", err)
	}
	return requireChecklistRow(result, id)
}

// UpdateLabel edits the item label.
func (r *ChecklistItemRepository) UpdateLabel(ctx context.Context, id, label string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE checklist_items SET label = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		label, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update label: %w", err)
	}
	return requireChecklistRow(result, id)
}

// Delete removes a checklist item.
func (r *ChecklistItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM checklist_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	return requireChecklistRow(result, id)
}

// GetNextID returns the next available checklist item ID.
func (r *ChecklistItemRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM checklist_items",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next checklist item ID: %w", err)
	}

	return fmt.Sprintf("CHK-%03d", maxID+1), nil
}

// MontageExists checks if a montage exists (for validation).
func (r *ChecklistItemRepository) MontageExists(ctx context.Context, montageID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM montages WHERE id = ? AND deleted_at IS NULL",
		montageID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check montage existence: %w", err)
	}
	return count > 0, nil
}

func scanChecklistItem(row rowScanner) (*secondary.ChecklistItemRecord, error) {
	var (
		templateID  sql.NullString
		completed   int
		completedAt sql.NullTime
		attachment  sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)

	record := &secondary.ChecklistItemRecord{}
	err := row.Scan(&record.ID, &record.MontageID, &templateID, &record.Label, &completed, &completedAt, &attachment, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.TemplateID = templateID.String
	record.Completed = completed != 0
	record.CompletedAt = formatNullTime(completedAt)
	record.Attachment = attachment.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

func requireChecklistRow(result sql.Result, id string) error {
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("checklist item %s not found", id)
	}
	return nil
}

// Ensure ChecklistItemRepository implements the interface
var _ secondary.ChecklistItemRepository = (*ChecklistItemRepository)(nil)
