package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/example/montage/internal/ports/secondary"
)

func TestMontageRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.MontageRecord{
		ID:              "MON-001",
		CustomerName:    "Jan Kowalski",
		Address:         "ul. Długa 12, Kraków",
		Status:          "lead",
		MaterialStatus:  "none",
		InstallerStatus: "none",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "MON-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CustomerName != "Jan Kowalski" {
		t.Errorf("CustomerName = %q, want %q", got.CustomerName, "Jan Kowalski")
	}
	if got.Address != "ul. Długa 12, Kraków" {
		t.Errorf("Address = %q", got.Address)
	}
	if got.Status != "lead" {
		t.Errorf("Status = %q, want lead", got.Status)
	}
	if got.CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}
	if got.ScheduledInstallationAt != "" {
		t.Errorf("expected empty scheduled date, got %q", got.ScheduledInstallationAt)
	}
}

func TestMontageRepository_GetByID_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)

	_, err := repo.GetByID(context.Background(), "MON-999")
	if err == nil {
		t.Fatal("expected error for missing montage")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestMontageRepository_List_Filters(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	seedMontage(t, database, "MON-001", "Jan Kowalski", "lead")
	seedMontage(t, database, "MON-002", "Anna Nowak", "preparation")
	seedMontage(t, database, "MON-003", "Piotr Wiśniewski", "preparation")
	if err := repo.AssignInstaller(ctx, "MON-002", "INST-1"); err != nil {
		t.Fatalf("AssignInstaller failed: %v", err)
	}

	all, err := repo.List(ctx, secondary.MontageFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 montages, got %d", len(all))
	}

	prep, err := repo.List(ctx, secondary.MontageFilters{Status: "preparation"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(prep) != 2 {
		t.Errorf("expected 2 preparation montages, got %d", len(prep))
	}

	byInstaller, err := repo.List(ctx, secondary.MontageFilters{InstallerID: "INST-1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byInstaller) != 1 || byInstaller[0].ID != "MON-002" {
		t.Errorf("expected only MON-002 for INST-1, got %v", byInstaller)
	}
}

func TestMontageRepository_UpdateStatus(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	seedMontage(t, database, "MON-001", "Jan Kowalski", "installation")

	if err := repo.UpdateStatus(ctx, "MON-001", "completed", true); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, err := repo.GetByID(ctx, "MON-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "completed" {
		t.Errorf("Status = %q, want completed", got.Status)
	}
	if got.CompletedAt == "" {
		t.Error("expected CompletedAt to be set")
	}

	// Moving back out of completed clears the completion timestamp.
	if err := repo.UpdateStatus(ctx, "MON-001", "installation", false); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, err = repo.GetByID(ctx, "MON-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CompletedAt != "" {
		t.Errorf("expected CompletedAt cleared, got %q", got.CompletedAt)
	}
}

func TestMontageRepository_UpdateStatus_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)

	err := repo.UpdateStatus(context.Background(), "MON-999", "offer", false)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestMontageRepository_Schedule(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	seedMontage(t, database, "MON-001", "Jan Kowalski", "preparation")

	if err := repo.Schedule(ctx, "MON-001", "2026-09-15T08:00:00Z", "2026-09-17T16:00:00Z"); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	got, err := repo.GetByID(ctx, "MON-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ScheduledInstallationAt == "" {
		t.Error("expected start date set")
	}
	if got.ScheduledInstallationEndAt == "" {
		t.Error("expected end date set")
	}

	// Rescheduling without an end date clears the window end.
	if err := repo.Schedule(ctx, "MON-001", "2026-09-20T08:00:00Z", ""); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	got, err = repo.GetByID(ctx, "MON-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ScheduledInstallationEndAt != "" {
		t.Errorf("expected end date cleared, got %q", got.ScheduledInstallationEndAt)
	}
}

func TestMontageRepository_SetSkirtingDate(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	seedMontage(t, database, "MON-001", "Jan Kowalski", "scheduled")

	if err := repo.SetSkirtingDate(ctx, "MON-001", "2026-10-01T08:00:00Z"); err != nil {
		t.Fatalf("SetSkirtingDate failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, "MON-001")
	if got.ScheduledSkirtingInstallationAt == "" {
		t.Error("expected skirting date set")
	}

	if err := repo.SetSkirtingDate(ctx, "MON-001", ""); err != nil {
		t.Fatalf("SetSkirtingDate failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, "MON-001")
	if got.ScheduledSkirtingInstallationAt != "" {
		t.Errorf("expected skirting date cleared, got %q", got.ScheduledSkirtingInstallationAt)
	}
}

func TestMontageRepository_SoftDelete(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	seedMontage(t, database, "MON-001", "Jan Kowalski", "lead")
	seedMontage(t, database, "MON-002", "Anna Nowak", "lead")

	if err := repo.SoftDelete(ctx, "MON-001"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	if _, err := repo.GetByID(ctx, "MON-001"); err == nil {
		t.Error("expected GetByID to miss soft-deleted montage")
	}

	visible, err := repo.List(ctx, secondary.MontageFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != "MON-002" {
		t.Errorf("expected only MON-002 visible, got %v", visible)
	}

	all, err := repo.List(ctx, secondary.MontageFilters{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 montages with IncludeDeleted, got %d", len(all))
	}

	// Double delete is a not-found, the row is already gone from view.
	if err := repo.SoftDelete(ctx, "MON-001"); err == nil {
		t.Error("expected error deleting an already deleted montage")
	}
}

func TestMontageRepository_GetNextID(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "MON-001" {
		t.Errorf("GetNextID = %q, want MON-001", id)
	}

	seedMontage(t, database, "MON-007", "Jan Kowalski", "lead")
	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "MON-008" {
		t.Errorf("GetNextID = %q, want MON-008", id)
	}
}

func TestMontageRepository_AssignMeasurer(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	seedMontage(t, database, "MON-001", "Jan Kowalski", "lead")

	if err := repo.AssignMeasurer(ctx, "MON-001", "MEAS-1"); err != nil {
		t.Fatalf("AssignMeasurer failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, "MON-001")
	if got.MeasurerID != "MEAS-1" {
		t.Errorf("MeasurerID = %q, want MEAS-1", got.MeasurerID)
	}
}

func TestMontageRepository_MaterialAndInstallerStatus(t *testing.T) {
	database := setupTestDB(t)
	repo := NewMontageRepository(database)
	ctx := context.Background()

	seedMontage(t, database, "MON-001", "Jan Kowalski", "preparation")

	if err := repo.SetMaterialStatus(ctx, "MON-001", "ordered"); err != nil {
		t.Fatalf("SetMaterialStatus failed: %v", err)
	}
	if err := repo.SetInstallerStatus(ctx, "MON-001", "informed"); err != nil {
		t.Fatalf("SetInstallerStatus failed: %v", err)
	}

	got, _ := repo.GetByID(ctx, "MON-001")
	if got.MaterialStatus != "ordered" {
		t.Errorf("MaterialStatus = %q, want ordered", got.MaterialStatus)
	}
	if got.InstallerStatus != "informed" {
		t.Errorf("InstallerStatus = %q, want informed", got.InstallerStatus)
	}
}
