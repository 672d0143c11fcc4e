// Package gate contains the pure business logic for stage transitions.
// Guards are pure functions that evaluate preconditions without side effects.
package gate

import (
	"fmt"
	"strings"

	"github.com/example/montage/internal/core/checklist"
	"github.com/example/montage/internal/core/stage"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed       bool
	Reason        string
	BlockingStage string   // stage value that blocked a forward transition
	MissingItems  []string // labels of incomplete checklist items on the blocking stage
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AdvanceContext provides context for stage advance guards.
type AdvanceContext struct {
	Catalog      *stage.Catalog
	Registry     *checklist.Registry
	CurrentStage string
	TargetStage  string
	Items        []checklist.Item
}

// CanAdvance evaluates whether a stage transition is permitted.
// Rules:
// - Backward and lateral moves are allowed unconditionally.
// - A forward move requires every stage in [current, target) to have all of
//   its associated checklist items completed. The first stage with an
//   incomplete item rejects the transition, naming the missing items.
func CanAdvance(ctx AdvanceContext) GuardResult {
	cur := ctx.Catalog.IndexOf(ctx.CurrentStage)
	tgt := ctx.Catalog.IndexOf(ctx.TargetStage)

	if tgt <= cur {
		return GuardResult{Allowed: true}
	}

	groups := ctx.Registry.GroupByStage(ctx.Items)
	stages := ctx.Catalog.Stages()

	for i := cur; i < tgt; i++ {
		var missing []string
		for _, item := range groups.ByStage[stages[i].Value] {
			if !item.Completed {
				missing = append(missing, item.Label)
			}
		}
		if len(missing) > 0 {
			return GuardResult{
				Allowed:       false,
				BlockingStage: stages[i].Value,
				MissingItems:  missing,
				Reason: fmt.Sprintf("cannot advance to %s: stage %s has incomplete checklist items: %s",
					ctx.TargetStage, stages[i].Value, strings.Join(missing, ", ")),
			}
		}
	}

	return GuardResult{Allowed: true}
}

// OrderStageContext provides context for order stage guards.
type OrderStageContext struct {
	OrderID       string
	ExecutionMode string
	TargetStage   string
}

// CanSetOrderStage evaluates whether an order stage can be set.
// Rules:
// - Target must be a member of the full order catalog.
// - Target must be visible under the order's execution mode.
func CanSetOrderStage(ctx OrderStageContext) GuardResult {
	if !stage.OrderCatalog().Contains(ctx.TargetStage) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown order stage %s", ctx.TargetStage),
		}
	}

	if !stage.OrderCatalogForMode(ctx.ExecutionMode).Contains(ctx.TargetStage) {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("stage %s is not available for %s orders",
				ctx.TargetStage, ctx.ExecutionMode),
		}
	}

	return GuardResult{Allowed: true}
}

// DropshippingStageContext provides context for dropshipping stage guards.
type DropshippingStageContext struct {
	OrderID     string
	TargetStage string
}

// CanSetDropshippingStage evaluates whether a dropshipping stage can be set.
// Rules:
// - Target must be a member of the dropshipping catalog. Dropshipping moves
//   carry no checklist gating.
func CanSetDropshippingStage(ctx DropshippingStageContext) GuardResult {
	if !stage.DropshippingCatalog().Contains(ctx.TargetStage) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown dropshipping stage %s", ctx.TargetStage),
		}
	}
	return GuardResult{Allowed: true}
}
