package gate

import (
	"testing"

	"github.com/example/montage/internal/core/checklist"
	"github.com/example/montage/internal/core/stage"
)

func testCatalog() *stage.Catalog {
	return stage.NewCatalog(stage.WorkflowMontage, []stage.Stage{
		{Value: "A", Label: "A"},
		{Value: "B", Label: "B"},
		{Value: "C", Label: "C"},
		{Value: "D", Label: "D"},
	})
}

func testRegistry() *checklist.Registry {
	return checklist.NewRegistry([]checklist.Template{
		{ID: "TPL-A", Label: "Item A", Stage: "A"},
		{ID: "TPL-B", Label: "Item B", Stage: "B"},
		{ID: "TPL-C", Label: "Item C", Stage: "C"},
	})
}

func TestCanAdvance(t *testing.T) {
	catalog := testCatalog()
	registry := testRegistry()

	items := []checklist.Item{
		{ID: "CHK-1", TemplateID: "TPL-A", Label: "Item A", Completed: true},
		{ID: "CHK-2", TemplateID: "TPL-B", Label: "Item B", Completed: false},
	}

	tests := []struct {
		name         string
		current      string
		target       string
		items        []checklist.Item
		wantAllowed  bool
		wantBlocking string
		wantMissing  []string
	}{
		{
			name:         "forward move blocked by current stage item",
			current:      "B",
			target:       "D",
			items:        items,
			wantAllowed:  false,
			wantBlocking: "B",
			wantMissing:  []string{"Item B"},
		},
		{
			name:         "single step forward still scans the current stage",
			current:      "B",
			target:       "C",
			items:        items,
			wantAllowed:  false,
			wantBlocking: "B",
			wantMissing:  []string{"Item B"},
		},
		{
			name:        "backward move is not gated",
			current:     "B",
			target:      "A",
			items:       items,
			wantAllowed: true,
		},
		{
			name:        "lateral move is not gated",
			current:     "B",
			target:      "B",
			items:       items,
			wantAllowed: true,
		},
		{
			name:    "forward move allowed when range items complete",
			current: "B",
			target:  "C",
			items: []checklist.Item{
				{ID: "CHK-2", TemplateID: "TPL-B", Label: "Item B", Completed: true},
			},
			wantAllowed: true,
		},
		{
			name:        "forward move allowed when range has no items",
			current:     "C",
			target:      "D",
			items:       nil,
			wantAllowed: true,
		},
		{
			name:    "multi-step forward blocked by later intermediate stage",
			current: "A",
			target:  "D",
			items: []checklist.Item{
				{ID: "CHK-1", TemplateID: "TPL-A", Label: "Item A", Completed: true},
				{ID: "CHK-2", TemplateID: "TPL-B", Label: "Item B", Completed: true},
				{ID: "CHK-3", TemplateID: "TPL-C", Label: "Item C", Completed: false},
			},
			wantAllowed:  false,
			wantBlocking: "C",
			wantMissing:  []string{"Item C"},
		},
		{
			name:    "custom items never gate",
			current: "B",
			target:  "C",
			items: []checklist.Item{
				{ID: "CHK-2", TemplateID: "TPL-B", Label: "Item B", Completed: true},
				{ID: "CHK-9", Label: "Handwritten", Completed: false},
			},
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanAdvance(AdvanceContext{
				Catalog:      catalog,
				Registry:     registry,
				CurrentStage: tt.current,
				TargetStage:  tt.target,
				Items:        tt.items,
			})

			if result.Allowed != tt.wantAllowed {
				t.Fatalf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
			if result.BlockingStage != tt.wantBlocking {
				t.Errorf("BlockingStage = %q, want %q", result.BlockingStage, tt.wantBlocking)
			}
			if len(result.MissingItems) != len(tt.wantMissing) {
				t.Fatalf("MissingItems = %v, want %v", result.MissingItems, tt.wantMissing)
			}
			for i, label := range tt.wantMissing {
				if result.MissingItems[i] != label {
					t.Errorf("MissingItems[%d] = %q, want %q", i, result.MissingItems[i], label)
				}
			}
		})
	}
}

func TestCanSetOrderStage(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		target      string
		wantAllowed bool
	}{
		{
			name:        "stage in mode subset",
			mode:        stage.ExecutionDeliveryOnly,
			target:      "SHIPPED",
			wantAllowed: true,
		},
		{
			name:        "stage outside mode subset",
			mode:        stage.ExecutionDeliveryOnly,
			target:      "INSTALLATION",
			wantAllowed: false,
		},
		{
			name:        "installation stage for installation mode",
			mode:        stage.ExecutionInstallationOnly,
			target:      "INSTALLATION",
			wantAllowed: true,
		},
		{
			name:        "unknown stage",
			mode:        stage.ExecutionInstallationOnly,
			target:      "TELEPORTED",
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanSetOrderStage(OrderStageContext{
				OrderID:       "ORD-001",
				ExecutionMode: tt.mode,
				TargetStage:   tt.target,
			})
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}
}

func TestCanSetDropshippingStage(t *testing.T) {
	if r := CanSetDropshippingStage(DropshippingStageContext{OrderID: "ORD-001", TargetStage: "FAKTURA_KONCOWA"}); !r.Allowed {
		t.Errorf("expected FAKTURA_KONCOWA to be allowed: %s", r.Reason)
	}
	if r := CanSetDropshippingStage(DropshippingStageContext{OrderID: "ORD-001", TargetStage: "RECEIVED"}); r.Allowed {
		t.Error("expected order-workflow stage to be rejected for dropshipping")
	}
}

func TestGuardResult_Error(t *testing.T) {
	t.Run("allowed result returns nil error", func(t *testing.T) {
		result := GuardResult{Allowed: true}
		if err := result.Error(); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("not allowed result returns error with reason", func(t *testing.T) {
		result := GuardResult{Allowed: false, Reason: "test reason"}
		err := result.Error()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if err.Error() != "test reason" {
			t.Errorf("error = %q, want %q", err.Error(), "test reason")
		}
	})
}
