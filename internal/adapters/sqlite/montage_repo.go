// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/montage/internal/ports/secondary"
)

const montageColumns = "id, customer_name, address, status, material_status, installer_status, installer_id, measurer_id, scheduled_installation_at, scheduled_installation_end_at, scheduled_skirting_installation_at, created_at, updated_at, completed_at, deleted_at"

// MontageRepository implements secondary.MontageRepository with SQLite.
type MontageRepository struct {
	db *sql.DB
}

// NewMontageRepository creates a new SQLite montage repository.
func NewMontageRepository(db *sql.DB) *MontageRepository {
	return &MontageRepository{db: db}
}

// Create persists a new montage.
func (r *MontageRepository) Create(ctx context.Context, montage *secondary.MontageRecord) error {
	var address, installerID, measurerID sql.NullString
	if montage.Address != "" {
		address = sql.NullString{String: montage.Address, Valid: true}
	}
	if montage.InstallerID != "" {
		installerID = sql.NullString{String: montage.InstallerID, Valid: true}
	}
	if montage.MeasurerID != "" {
		measurerID = sql.NullString{String: montage.MeasurerID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO montages (id, customer_name, address, status, material_status, installer_status, installer_id, measurer_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		montage.ID, montage.CustomerName, address, montage.Status, montage.MaterialStatus, montage.InstallerStatus, installerID, measurerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create montage: %w", err)
	}

	return nil
}

// GetByID retrieves a montage by its ID. Soft-deleted rows are not returned.
func (r *MontageRepository) GetByID(ctx context.Context, id string) (*secondary.MontageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+montageColumns+" FROM montages WHERE id = ? AND deleted_at IS NULL",
		id,
	)

	record, err := scanMontage(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("montage %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get montage: %w", err)
	}
	return record, nil
}

// List retrieves montages matching the given filters.
func (r *MontageRepository) List(ctx context.Context, filters secondary.MontageFilters) ([]*secondary.MontageRecord, error) {
	query := "SELECT " + montageColumns + " FROM montages WHERE 1=1"
	args := []any{}

	if !filters.IncludeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.InstallerID != "" {
		query += " AND installer_id = ?"
		args = append(args, filters.InstallerID)
	}
	if filters.MeasurerID != "" {
		query += " AND measurer_id = ?"
		args = append(args, filters.MeasurerID)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list montages: %w", err)
	}
	defer rows.Close()

	var montages []*secondary.MontageRecord
	for rows.Next() {
		record, err := scanMontage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan montage: %w", err)
		}
		montages = append(montages, record)
	}

	return montages, nil
}

// UpdateStatus updates the status and optionally completed_at timestamp.
func (r *MontageRepository) UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error {
	var query string
	if setCompleted {
		query = "UPDATE montages SET status = ?, completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL"
	} else {
		query = "UPDATE montages SET status = ?, completed_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL"
	}

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update montage status: %w", err)
	}
	return requireRow(result, id)
}

// SetMaterialStatus updates the material readiness status.
func (r *MontageRepository) SetMaterialStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE montages SET material_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set material status: %w", err)
	}
	return requireRow(result, id)
}

// SetInstallerStatus updates the installer readiness status.
func (r *MontageRepository) SetInstallerStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE montages SET installer_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set installer status: %w", err)
	}
	return requireRow(result, id)
}

// Schedule sets the installation window. Empty endAt clears the end date.
func (r *MontageRepository) Schedule(ctx context.Context, id, startAt, endAt string) error {
	var end sql.NullString
	if endAt != "" {
		end = sql.NullString{String: endAt, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE montages SET scheduled_installation_at = ?, scheduled_installation_end_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		nullableDate(startAt), end, id,
	)
	if err != nil {
		return fmt.Errorf("failed to schedule montage: %w", err)
	}
	return requireRow(result, id)
}

// SetSkirtingDate sets the skirting installation date.
func (r *MontageRepository) SetSkirtingDate(ctx context.Context, id, at string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE montages SET scheduled_skirting_installation_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		nullableDate(at), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set skirting date: %w", err)
	}
	return requireRow(result, id)
}

// AssignInstaller assigns an installer to the montage.
func (r *MontageRepository) AssignInstaller(ctx context.Context, id, installerID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE montages SET installer_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		installerID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to assign installer: %w", err)
	}
	return requireRow(result, id)
}

// AssignMeasurer assigns a measurer to the montage.
func (r *MontageRepository) AssignMeasurer(ctx context.Context, id, measurerID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE montages SET measurer_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		measurerID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to assign measurer: %w", err)
	}
	return requireRow(result, id)
}

// SoftDelete marks a montage as deleted without removing its rows.
func (r *MontageRepository) SoftDelete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE montages SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete montage: %w", err)
	}
	return requireRow(result, id)
}

// GetNextID returns the next available montage ID.
func (r *MontageRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM montages",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next montage ID: %w", err)
	}

	return fmt.Sprintf("MON-%03d", maxID+1), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMontage(row rowScanner) (*secondary.MontageRecord, error) {
	var (
		address      sql.NullString
		installerID  sql.NullString
		measurerID   sql.NullString
		scheduledAt  sql.NullTime
		scheduledEnd sql.NullTime
		skirtingAt   sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		completedAt  sql.NullTime
		deletedAt    sql.NullTime
	)

	record := &secondary.MontageRecord{}
	err := row.Scan(&record.ID, &record.CustomerName, &address, &record.Status, &record.MaterialStatus, &record.InstallerStatus,
		&installerID, &measurerID, &scheduledAt, &scheduledEnd, &skirtingAt, &createdAt, &updatedAt, &completedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	record.Address = address.String
	record.InstallerID = installerID.String
	record.MeasurerID = measurerID.String
	record.ScheduledInstallationAt = formatNullTime(scheduledAt)
	record.ScheduledInstallationEndAt = formatNullTime(scheduledEnd)
	record.ScheduledSkirtingInstallationAt = formatNullTime(skirtingAt)
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	record.CompletedAt = formatNullTime(completedAt)
	record.DeletedAt = formatNullTime(deletedAt)

	return record, nil
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(time.RFC3339)
}

func nullableDate(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func requireRow(result sql.Result, id string) error {
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("montage %s not found", id)
	}
	return nil
}

// Ensure MontageRepository implements the interface
var _ secondary.MontageRepository = (*MontageRepository)(nil)
