// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import "context"

// MontageRepository defines the secondary port for montage persistence.
type MontageRepository interface {
	// Create persists a new montage.
	Create(ctx context.Context, montage *MontageRecord) error

	// GetByID retrieves a montage by its ID. Soft-deleted rows are not returned.
	GetByID(ctx context.Context, id string) (*MontageRecord, error)

	// List retrieves montages matching the given filters.
	List(ctx context.Context, filters MontageFilters) ([]*MontageRecord, error)

	// UpdateStatus updates the status and optionally the completed_at timestamp.
	UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error

	// SetMaterialStatus updates the material readiness status.
	SetMaterialStatus(ctx context.Context, id, status string) error

	// SetInstallerStatus updates the installer readiness status.
	SetInstallerStatus(ctx context.Context, id, status string) error

	// Schedule sets the installation window. Empty endAt clears the end date.
	Schedule(ctx context.Context, id, startAt, endAt string) error

	// SetSkirtingDate sets the skirting installation date.
	SetSkirtingDate(ctx context.Context, id, at string) error

	// AssignInstaller assigns an installer to the montage.
	AssignInstaller(ctx context.Context, id, installerID string) error

	// AssignMeasurer assigns a measurer to the montage.
	AssignMeasurer(ctx context.Context, id, measurerID string) error

	// SoftDelete marks a montage as deleted without removing its rows.
	SoftDelete(ctx context.Context, id string) error

	// GetNextID returns the next available montage ID.
	GetNextID(ctx context.Context) (string, error)
}

// MontageRecord represents a montage as stored in persistence.
// Timestamps are RFC3339 strings; empty means unset.
type MontageRecord struct {
	ID                              string
	CustomerName                    string
	Address                         string
	Status                          string
	MaterialStatus                  string
	InstallerStatus                 string
	InstallerID                     string
	MeasurerID                      string
	ScheduledInstallationAt         string
	ScheduledInstallationEndAt      string
	ScheduledSkirtingInstallationAt string
	CreatedAt                       string
	UpdatedAt                       string
	CompletedAt                     string
	DeletedAt                       string
}

// MontageFilters contains filter options for querying montages.
type MontageFilters struct {
	Status         string
	InstallerID    string
	MeasurerID     string
	IncludeDeleted bool
}

// ChecklistItemRepository defines the secondary port for checklist item
// persistence.
type ChecklistItemRepository interface {
	// Create persists a new checklist item.
	Create(ctx context.Context, item *ChecklistItemRecord) error

	// GetByID retrieves a checklist item by its ID.
	GetByID(ctx context.Context, id string) (*ChecklistItemRecord, error)

	// ListByMontage retrieves all items belonging to a montage.
	ListByMontage(ctx context.Context, montageID string) ([]*ChecklistItemRecord, error)

	// SetCompleted toggles completion and sets or clears completed_at.
	SetCompleted(ctx context.Context, id string, completed bool) error

	// SetAttachment stores a file reference on the item.
	SetAttachment(ctx context.Context, id, reference string) error

	// UpdateLabel edits the item label.
	UpdateLabel(ctx context.Context, id, label string) error

	// Delete removes a checklist item.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available checklist item ID.
	GetNextID(ctx context.Context) (string, error)

	// MontageExists checks if a montage exists (for validation).
	MontageExists(ctx context.Context, montageID string) (bool, error)
}

// ChecklistItemRecord represents a checklist item as stored in persistence.
type ChecklistItemRecord struct {
	ID          string
	MontageID   string
	TemplateID  string // empty for custom items
	Label       string
	Completed   bool
	CompletedAt string
	Attachment  string
	CreatedAt   string
	UpdatedAt   string
}

// OrderRepository defines the secondary port for order persistence. Both
// fulfillment and dropshipping orders share the table, discriminated by
// workflow.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *OrderRecord) error

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id string) (*OrderRecord, error)

	// List retrieves orders matching the given filters.
	List(ctx context.Context, filters OrderFilters) ([]*OrderRecord, error)

	// UpdateStage updates the stage and appends a stage note.
	UpdateStage(ctx context.Context, id, stageValue, note string) error

	// SetAdminAttention flips the requires-admin-attention flag.
	SetAdminAttention(ctx context.Context, id string, v bool) error

	// SetQuoteFlag sets the quote-issued document flag.
	SetQuoteFlag(ctx context.Context, id string, v bool) error

	// SetInvoiceFlag sets the invoice-issued document flag.
	SetInvoiceFlag(ctx context.Context, id string, v bool) error

	// SetExpectedShipDate sets or clears the expected ship date.
	SetExpectedShipDate(ctx context.Context, id, date string) error

	// GetNextID returns the next available order ID.
	GetNextID(ctx context.Context) (string, error)
}

// OrderRecord represents an order as stored in persistence.
type OrderRecord struct {
	ID                     string
	Workflow               string // "order" or "dropshipping"
	CustomerName           string
	Stage                  string
	StageNotes             string
	RequiresAdminAttention bool
	HasQuote               bool
	HasInvoice             bool
	ExecutionMode          string
	ExpectedShipDate       string
	CreatedAt              string
	UpdatedAt              string
}

// OrderFilters contains filter options for querying orders.
type OrderFilters struct {
	Workflow       string
	Stage          string
	AdminAttention bool // only orders flagged for admin attention
}
