package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/example/montage/internal/ports/secondary"
)

func TestOrderRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := NewOrderRepository(database)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.OrderRecord{
		ID:            "ORD-001",
		Workflow:      "order",
		CustomerName:  "Piotr Wiśniewski",
		Stage:         "RECEIVED",
		ExecutionMode: "DELIVERY_ONLY",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "ORD-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Workflow != "order" {
		t.Errorf("Workflow = %q, want order", got.Workflow)
	}
	if got.ExecutionMode != "DELIVERY_ONLY" {
		t.Errorf("ExecutionMode = %q, want DELIVERY_ONLY", got.ExecutionMode)
	}
	if got.RequiresAdminAttention || got.HasQuote || got.HasInvoice {
		t.Error("flags should default to false")
	}
}

func TestOrderRepository_Create_Dropshipping(t *testing.T) {
	database := setupTestDB(t)
	repo := NewOrderRepository(database)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.OrderRecord{
		ID:           "ORD-001",
		Workflow:     "dropshipping",
		CustomerName: "Tomasz Lewandowski",
		Stage:        "LEAD",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, _ := repo.GetByID(ctx, "ORD-001")
	if got.ExecutionMode != "" {
		t.Errorf("dropshipping ExecutionMode = %q, want empty", got.ExecutionMode)
	}
}

func TestOrderRepository_List_Filters(t *testing.T) {
	database := setupTestDB(t)
	repo := NewOrderRepository(database)
	ctx := context.Background()

	seedOrder(t, database, "ORD-001", "order", "Piotr Wiśniewski", "CONFIRMED", "DELIVERY_ONLY")
	seedOrder(t, database, "ORD-002", "order", "Maria Zielińska", "SHIPPED", "DELIVERY_ONLY")
	seedOrder(t, database, "ORD-003", "dropshipping", "Tomasz Lewandowski", "ZALICZKA", "")
	if err := repo.SetAdminAttention(ctx, "ORD-002", true); err != nil {
		t.Fatalf("SetAdminAttention failed: %v", err)
	}

	orders, err := repo.List(ctx, secondary.OrderFilters{Workflow: "order"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 fulfillment orders, got %d", len(orders))
	}

	drops, err := repo.List(ctx, secondary.OrderFilters{Workflow: "dropshipping"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(drops) != 1 || drops[0].ID != "ORD-003" {
		t.Errorf("expected only ORD-003, got %v", drops)
	}

	flagged, err := repo.List(ctx, secondary.OrderFilters{AdminAttention: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(flagged) != 1 || flagged[0].ID != "ORD-002" {
		t.Errorf("expected only ORD-002 flagged, got %v", flagged)
	}

	byStage, err := repo.List(ctx, secondary.OrderFilters{Stage: "CONFIRMED"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byStage) != 1 || byStage[0].ID != "ORD-001" {
		t.Errorf("expected only ORD-001 at CONFIRMED, got %v", byStage)
	}
}

func TestOrderRepository_UpdateStage(t *testing.T) {
	database := setupTestDB(t)
	repo := NewOrderRepository(database)
	ctx := context.Background()

	seedOrder(t, database, "ORD-001", "order", "Piotr Wiśniewski", "CONFIRMED", "DELIVERY_ONLY")

	if err := repo.UpdateStage(ctx, "ORD-001", "MATERIALS_ORDERED", ""); err != nil {
		t.Fatalf("UpdateStage failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, "ORD-001")
	if got.Stage != "MATERIALS_ORDERED" {
		t.Errorf("Stage = %q, want MATERIALS_ORDERED", got.Stage)
	}
	if got.StageNotes != "" {
		t.Errorf("expected no notes, got %q", got.StageNotes)
	}

	if err := repo.UpdateStage(ctx, "ORD-001", "CONFIRMED", "moved back from MATERIALS_ORDERED to CONFIRMED"); err != nil {
		t.Fatalf("UpdateStage failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, "ORD-001")
	if !strings.Contains(got.StageNotes, "moved back from MATERIALS_ORDERED") {
		t.Errorf("StageNotes = %q, missing regression note", got.StageNotes)
	}

	// A second note appends on its own line.
	if err := repo.UpdateStage(ctx, "ORD-001", "RECEIVED", "moved back from CONFIRMED to RECEIVED"); err != nil {
		t.Fatalf("UpdateStage failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, "ORD-001")
	lines := strings.Split(got.StageNotes, "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 note lines, got %d: %q", len(lines), got.StageNotes)
	}
}

func TestOrderRepository_DocumentFlags(t *testing.T) {
	database := setupTestDB(t)
	repo := NewOrderRepository(database)
	ctx := context.Background()

	seedOrder(t, database, "ORD-001", "dropshipping", "Tomasz Lewandowski", "OFERTA", "")

	if err := repo.SetQuoteFlag(ctx, "ORD-001", true); err != nil {
		t.Fatalf("SetQuoteFlag failed: %v", err)
	}
	if err := repo.SetInvoiceFlag(ctx, "ORD-001", true); err != nil {
		t.Fatalf("SetInvoiceFlag failed: %v", err)
	}

	got, _ := repo.GetByID(ctx, "ORD-001")
	if !got.HasQuote || !got.HasInvoice {
		t.Errorf("expected both flags set, got quote=%v invoice=%v", got.HasQuote, got.HasInvoice)
	}

	if err := repo.SetInvoiceFlag(ctx, "ORD-001", false); err != nil {
		t.Fatalf("SetInvoiceFlag failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, "ORD-001")
	if got.HasInvoice {
		t.Error("expected invoice flag cleared")
	}
}

func TestOrderRepository_SetExpectedShipDate(t *testing.T) {
	database := setupTestDB(t)
	repo := NewOrderRepository(database)
	ctx := context.Background()

	seedOrder(t, database, "ORD-001", "order", "Piotr Wiśniewski", "READY_TO_SHIP", "DELIVERY_ONLY")

	if err := repo.SetExpectedShipDate(ctx, "ORD-001", "2026-09-10T00:00:00Z"); err != nil {
		t.Fatalf("SetExpectedShipDate failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, "ORD-001")
	if got.ExpectedShipDate == "" {
		t.Error("expected ship date set")
	}

	if err := repo.SetExpectedShipDate(ctx, "ORD-001", ""); err != nil {
		t.Fatalf("SetExpectedShipDate failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, "ORD-001")
	if got.ExpectedShipDate != "" {
		t.Errorf("expected ship date cleared, got %q", got.ExpectedShipDate)
	}
}

func TestOrderRepository_GetNextID(t *testing.T) {
	database := setupTestDB(t)
	repo := NewOrderRepository(database)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "ORD-001" {
		t.Errorf("GetNextID = %q, want ORD-001", id)
	}

	seedOrder(t, database, "ORD-041", "order", "Piotr Wiśniewski", "RECEIVED", "DELIVERY_ONLY")
	id, _ = repo.GetNextID(ctx)
	if id != "ORD-042" {
		t.Errorf("GetNextID = %q, want ORD-042", id)
	}
}

func TestOrderRepository_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := NewOrderRepository(database)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "ORD-999"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found, got %v", err)
	}
	if err := repo.UpdateStage(ctx, "ORD-999", "CONFIRMED", ""); err == nil {
		t.Error("expected error updating missing order")
	}
	if err := repo.SetAdminAttention(ctx, "ORD-999", true); err == nil {
		t.Error("expected error flagging missing order")
	}
}
