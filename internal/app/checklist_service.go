package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/example/montage/internal/core/checklist"
	"github.com/example/montage/internal/ports/primary"
	"github.com/example/montage/internal/ports/secondary"
)

// ChecklistServiceImpl implements the ChecklistService interface.
type ChecklistServiceImpl struct {
	itemRepo secondary.ChecklistItemRepository
	registry *checklist.Registry
}

// NewChecklistService creates a new ChecklistService with injected dependencies.
func NewChecklistService(itemRepo secondary.ChecklistItemRepository, registry *checklist.Registry) *ChecklistServiceImpl {
	return &ChecklistServiceImpl{
		itemRepo: itemRepo,
		registry: registry,
	}
}

// InitializeChecklist bulk-creates items from the template catalog.
// Idempotent: templates already instantiated for the montage are skipped.
func (s *ChecklistServiceImpl) InitializeChecklist(ctx context.Context, montageID string) (*primary.InitializeChecklistResponse, error) {
	exists, err := s.itemRepo.MontageExists(ctx, montageID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate montage: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("montage %s not found", montageID)
	}

	existing, err := s.itemRepo.ListByMontage(ctx, montageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}

	have := make(map[string]bool, len(existing))
	for _, item := range existing {
		if item.TemplateID != "" {
			have[item.TemplateID] = true
		}
	}

	added := 0
	for _, tpl := range s.registry.Templates() {
		if have[tpl.ID] {
			continue
		}
		nextID, err := s.itemRepo.GetNextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate checklist item ID: %w", err)
		}
		record := &secondary.ChecklistItemRecord{
			ID:         nextID,
			MontageID:  montageID,
			TemplateID: tpl.ID,
			Label:      tpl.Label,
		}
		if err := s.itemRepo.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create checklist item: %w", err)
		}
		added++
	}

	return &primary.InitializeChecklistResponse{
		MontageID: montageID,
		Added:     added,
		Total:     len(existing) + added,
	}, nil
}

// ListItems retrieves all checklist items for a montage.
func (s *ChecklistServiceImpl) ListItems(ctx context.Context, montageID string) ([]*primary.ChecklistItem, error) {
	records, err := s.itemRepo.ListByMontage(ctx, montageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}

	items := make([]*primary.ChecklistItem, len(records))
	for i, r := range records {
		items[i] = s.recordToItem(r)
	}
	return items, nil
}

// AddCustomItem creates a user-defined item with no template.
func (s *ChecklistServiceImpl) AddCustomItem(ctx context.Context, req primary.AddCustomItemRequest) (*primary.ChecklistItem, error) {
	if req.Label == "" {
		return nil, fmt.Errorf("checklist item label is required")
	}

	exists, err := s.itemRepo.MontageExists(ctx, req.MontageID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate montage: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("montage %s not found", req.MontageID)
	}

	nextID, err := s.itemRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate checklist item ID: %w", err)
	}

	record := &secondary.ChecklistItemRecord{
		ID:        nextID,
		MontageID: req.MontageID,
		Label:     req.Label,
	}
	if err := s.itemRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	created, err := s.itemRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created checklist item: %w", err)
	}
	return s.recordToItem(created), nil
}

// ToggleItem flips completion and stamps or clears completed_at.
func (s *ChecklistServiceImpl) ToggleItem(ctx context.Context, itemID string) (*primary.ChecklistItem, error) {
	record, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.SetCompleted(ctx, itemID, !record.Completed); err != nil {
		return nil, fmt.Errorf("failed to toggle checklist item: %w", err)
	}

	updated, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated checklist item: %w", err)
	}
	return s.recordToItem(updated), nil
}

// AttachFile stores a file reference on an item when its template allows it.
// The returned reference is the storage key for the uploaded file.
func (s *ChecklistServiceImpl) AttachFile(ctx context.Context, itemID, filename string) (string, error) {
	record, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return "", err
	}

	result := checklist.CanAttachFile(checklist.AttachContext{
		Registry: s.registry,
		Item:     recordToCoreItem(record),
	})
	if err := result.Error(); err != nil {
		return "", err
	}

	reference := uuid.NewString()
	if base := filepath.Base(filename); base != "" && base != "." {
		reference = reference + "-" + base
	}

	if err := s.itemRepo.SetAttachment(ctx, itemID, reference); err != nil {
		return "", fmt.Errorf("failed to attach file: %w", err)
	}
	return reference, nil
}

// RenameItem edits an unlocked item's label.
func (s *ChecklistServiceImpl) RenameItem(ctx context.Context, itemID, label string) error {
	record, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	result := checklist.CanRenameItem(checklist.RenameItemContext{
		Registry: s.registry,
		Item:     recordToCoreItem(record),
		NewLabel: label,
	})
	if err := result.Error(); err != nil {
		return err
	}

	if err := s.itemRepo.UpdateLabel(ctx, itemID, label); err != nil {
		return fmt.Errorf("failed to rename checklist item: %w", err)
	}
	return nil
}

// RemoveItem deletes an unlocked item.
func (s *ChecklistServiceImpl) RemoveItem(ctx context.Context, itemID string) error {
	record, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	result := checklist.CanRemoveItem(checklist.RemoveItemContext{
		Registry: s.registry,
		Item:     recordToCoreItem(record),
	})
	if err := result.Error(); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to remove checklist item: %w", err)
	}
	return nil
}

// Helper methods

func recordToCoreItem(r *secondary.ChecklistItemRecord) checklist.Item {
	return checklist.Item{
		ID:          r.ID,
		TemplateID:  r.TemplateID,
		Label:       r.Label,
		Completed:   r.Completed,
		CompletedAt: r.CompletedAt,
		Attachment:  r.Attachment,
	}
}

func (s *ChecklistServiceImpl) recordToItem(r *secondary.ChecklistItemRecord) *primary.ChecklistItem {
	core := recordToCoreItem(r)
	stageValue, _ := s.registry.AssociatedStage(core)
	return &primary.ChecklistItem{
		ID:              r.ID,
		MontageID:       r.MontageID,
		TemplateID:      r.TemplateID,
		Label:           r.Label,
		Stage:           stageValue,
		Completed:       r.Completed,
		CompletedAt:     r.CompletedAt,
		Attachment:      r.Attachment,
		Locked:          s.registry.Locked(core),
		AllowAttachment: s.registry.AllowsAttachment(core),
	}
}

// Ensure ChecklistServiceImpl implements the interface
var _ primary.ChecklistService = (*ChecklistServiceImpl)(nil)
