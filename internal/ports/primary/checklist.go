package primary

import "context"

// ChecklistService defines the primary port for checklist operations.
type ChecklistService interface {
	// InitializeChecklist bulk-creates items from the template catalog.
	// Idempotent: re-running only adds templates missing from the montage.
	InitializeChecklist(ctx context.Context, montageID string) (*InitializeChecklistResponse, error)

	// ListItems retrieves all checklist items for a montage.
	ListItems(ctx context.Context, montageID string) ([]*ChecklistItem, error)

	// AddCustomItem creates a user-defined item with no template.
	AddCustomItem(ctx context.Context, req AddCustomItemRequest) (*ChecklistItem, error)

	// ToggleItem flips completion and stamps or clears completed_at.
	ToggleItem(ctx context.Context, itemID string) (*ChecklistItem, error)

	// AttachFile stores a file reference on an item, if its template allows
	// attachments. Returns the generated attachment reference.
	AttachFile(ctx context.Context, itemID, filename string) (string, error)

	// RenameItem edits an unlocked item's label.
	RenameItem(ctx context.Context, itemID, label string) error

	// RemoveItem deletes an unlocked item.
	RemoveItem(ctx context.Context, itemID string) error
}

// InitializeChecklistResponse reports how many items initialization added.
type InitializeChecklistResponse struct {
	MontageID string
	Added     int
	Total     int
}

// AddCustomItemRequest contains parameters for adding a custom item.
type AddCustomItemRequest struct {
	MontageID string
	Label     string
}

// ChecklistItem represents a checklist item at the port boundary.
type ChecklistItem struct {
	ID              string
	MontageID       string
	TemplateID      string
	Label           string
	Stage           string // associated stage value, empty for custom items
	Completed       bool
	CompletedAt     string
	Attachment      string
	Locked          bool
	AllowAttachment bool
}
