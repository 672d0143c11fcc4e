package checklist

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RemoveItemContext provides context for item removal guards.
type RemoveItemContext struct {
	Registry *Registry
	Item     Item
}

// CanRemoveItem evaluates whether a checklist item can be deleted.
// Rules:
// - Locked template items may not be deleted.
func CanRemoveItem(ctx RemoveItemContext) GuardResult {
	if ctx.Registry.Locked(ctx.Item) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("checklist item %s is locked and cannot be removed", ctx.Item.ID),
		}
	}
	return GuardResult{Allowed: true}
}

// RenameItemContext provides context for item rename guards.
type RenameItemContext struct {
	Registry *Registry
	Item     Item
	NewLabel string
}

// CanRenameItem evaluates whether a checklist item label can be edited.
// Rules:
// - Locked template items may not be renamed.
// - The new label must be non-empty.
func CanRenameItem(ctx RenameItemContext) GuardResult {
	if ctx.Registry.Locked(ctx.Item) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("checklist item %s is locked and cannot be renamed", ctx.Item.ID),
		}
	}
	if ctx.NewLabel == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "checklist item label cannot be empty",
		}
	}
	return GuardResult{Allowed: true}
}

// AttachContext provides context for attachment guards.
type AttachContext struct {
	Registry *Registry
	Item     Item
}

// CanAttachFile evaluates whether a file can be attached to an item.
// Rules:
// - The item's template must allow attachments. Custom items always do.
func CanAttachFile(ctx AttachContext) GuardResult {
	if !ctx.Registry.AllowsAttachment(ctx.Item) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("checklist item %s does not accept attachments", ctx.Item.ID),
		}
	}
	return GuardResult{Allowed: true}
}
