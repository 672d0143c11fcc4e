package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/montage/internal/core/alert"
	"github.com/example/montage/internal/core/checklist"
	"github.com/example/montage/internal/core/gate"
	"github.com/example/montage/internal/core/process"
	"github.com/example/montage/internal/core/stage"
	"github.com/example/montage/internal/ports/primary"
	"github.com/example/montage/internal/ports/secondary"
)

// MontageServiceImpl implements the MontageService interface.
type MontageServiceImpl struct {
	montageRepo secondary.MontageRepository
	itemRepo    secondary.ChecklistItemRepository
	catalog     *stage.Catalog
	registry    *checklist.Registry
	windows     alert.Windows
	now         func() time.Time
}

// NewMontageService creates a new MontageService with injected dependencies.
// The alert windows come from configuration; pass alert.DefaultWindows when
// nothing overrides them.
func NewMontageService(
	montageRepo secondary.MontageRepository,
	itemRepo secondary.ChecklistItemRepository,
	registry *checklist.Registry,
	windows alert.Windows,
) *MontageServiceImpl {
	return &MontageServiceImpl{
		montageRepo: montageRepo,
		itemRepo:    itemRepo,
		catalog:     stage.MontageCatalog(),
		registry:    registry,
		windows:     windows,
		now:         time.Now,
	}
}

// CreateMontage creates a new montage in the initial stage.
func (s *MontageServiceImpl) CreateMontage(ctx context.Context, req primary.CreateMontageRequest) (*primary.CreateMontageResponse, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}

	nextID, err := s.montageRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate montage ID: %w", err)
	}

	record := &secondary.MontageRecord{
		ID:              nextID,
		CustomerName:    req.CustomerName,
		Address:         req.Address,
		Status:          s.catalog.First().Value,
		MaterialStatus:  alert.MaterialNone,
		InstallerStatus: alert.InstallerNone,
		InstallerID:     req.InstallerID,
		MeasurerID:      req.MeasurerID,
	}

	if err := s.montageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create montage: %w", err)
	}

	created, err := s.montageRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created montage: %w", err)
	}

	return &primary.CreateMontageResponse{
		MontageID: created.ID,
		Montage:   s.recordToMontage(created),
	}, nil
}

// GetMontage retrieves a montage by ID.
func (s *MontageServiceImpl) GetMontage(ctx context.Context, montageID string) (*primary.Montage, error) {
	record, err := s.montageRepo.GetByID(ctx, montageID)
	if err != nil {
		return nil, err
	}
	return s.recordToMontage(record), nil
}

// ListMontages lists montages with optional filters.
func (s *MontageServiceImpl) ListMontages(ctx context.Context, filters primary.MontageFilters) ([]*primary.Montage, error) {
	records, err := s.montageRepo.List(ctx, secondary.MontageFilters{
		Status:      filters.Status,
		InstallerID: filters.InstallerID,
		MeasurerID:  filters.MeasurerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list montages: %w", err)
	}

	montages := make([]*primary.Montage, len(records))
	for i, r := range records {
		montages[i] = s.recordToMontage(r)
	}
	return montages, nil
}

// GetProcessState derives the timeline view for a montage. The projection is
// recomputed on every call; nothing is persisted.
func (s *MontageServiceImpl) GetProcessState(ctx context.Context, montageID string) (*primary.ProcessState, error) {
	record, err := s.montageRepo.GetByID(ctx, montageID)
	if err != nil {
		return nil, err
	}

	items, err := s.loadCoreItems(ctx, montageID)
	if err != nil {
		return nil, err
	}

	state := process.Compute(s.catalog, s.registry, process.Montage{
		Status:                  record.Status,
		ScheduledInstallationAt: record.ScheduledInstallationAt,
		CompletedAt:             record.CompletedAt,
	}, items)

	steps := make([]primary.ProcessStep, len(state.Steps))
	for i, st := range state.Steps {
		steps[i] = primary.ProcessStep{
			Stage:         st.Stage.Value,
			Label:         st.Stage.Label,
			Status:        string(st.Status),
			Checkpoints:   checkpointsToPrimary(st.Checkpoints),
			ScheduledDate: st.ScheduledDate,
			CompletedDate: st.CompletedDate,
		}
	}

	return &primary.ProcessState{
		MontageID:         montageID,
		Steps:             steps,
		CustomCheckpoints: checkpointsToPrimary(state.CustomCheckpoints),
		Progress:          state.Progress,
		CurrentStepIndex:  state.CurrentStepIndex,
	}, nil
}

// AdvanceStage requests a stage transition. The gate re-reads checklist
// state within this call; rejections come back in the response rather than
// as errors.
func (s *MontageServiceImpl) AdvanceStage(ctx context.Context, req primary.AdvanceStageRequest) (*primary.AdvanceStageResponse, error) {
	record, err := s.montageRepo.GetByID(ctx, req.MontageID)
	if err != nil {
		return nil, err
	}

	if !s.catalog.Contains(req.TargetStage) {
		return nil, fmt.Errorf("unknown montage stage %s", req.TargetStage)
	}

	items, err := s.loadCoreItems(ctx, req.MontageID)
	if err != nil {
		return nil, err
	}

	result := gate.CanAdvance(gate.AdvanceContext{
		Catalog:      s.catalog,
		Registry:     s.registry,
		CurrentStage: record.Status,
		TargetStage:  req.TargetStage,
		Items:        items,
	})
	if !result.Allowed {
		return &primary.AdvanceStageResponse{
			Advanced:      false,
			BlockingStage: result.BlockingStage,
			MissingItems:  result.MissingItems,
			Montage:       s.recordToMontage(record),
		}, nil
	}

	setCompleted := req.TargetStage == "completed"
	if err := s.montageRepo.UpdateStatus(ctx, req.MontageID, req.TargetStage, setCompleted); err != nil {
		return nil, fmt.Errorf("failed to update montage status: %w", err)
	}

	updated, err := s.montageRepo.GetByID(ctx, req.MontageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated montage: %w", err)
	}

	return &primary.AdvanceStageResponse{
		Advanced:  true,
		Regressed: s.catalog.IndexOf(req.TargetStage) < s.catalog.IndexOf(record.Status),
		Montage:   s.recordToMontage(updated),
	}, nil
}

// ScheduleInstallation sets the installation window and optional skirting date.
func (s *MontageServiceImpl) ScheduleInstallation(ctx context.Context, req primary.ScheduleRequest) error {
	for _, d := range []string{req.StartAt, req.EndAt, req.SkirtingAt} {
		if err := validateDate(d); err != nil {
			return err
		}
	}

	if _, err := s.montageRepo.GetByID(ctx, req.MontageID); err != nil {
		return err
	}

	if req.StartAt != "" {
		if err := s.montageRepo.Schedule(ctx, req.MontageID, req.StartAt, req.EndAt); err != nil {
			return fmt.Errorf("failed to schedule installation: %w", err)
		}
	}
	if req.SkirtingAt != "" {
		if err := s.montageRepo.SetSkirtingDate(ctx, req.MontageID, req.SkirtingAt); err != nil {
			return fmt.Errorf("failed to set skirting date: %w", err)
		}
	}
	return nil
}

// SetMaterialStatus updates material readiness.
func (s *MontageServiceImpl) SetMaterialStatus(ctx context.Context, montageID, status string) error {
	switch status {
	case alert.MaterialNone, alert.MaterialOrdered, alert.MaterialInStock, alert.MaterialDelivered:
	default:
		return fmt.Errorf("invalid material status %s (must be none, ordered, in_stock or delivered)", status)
	}
	if err := s.montageRepo.SetMaterialStatus(ctx, montageID, status); err != nil {
		return fmt.Errorf("failed to set material status: %w", err)
	}
	return nil
}

// SetInstallerStatus updates installer readiness.
func (s *MontageServiceImpl) SetInstallerStatus(ctx context.Context, montageID, status string) error {
	switch status {
	case alert.InstallerNone, alert.InstallerInformed, alert.InstallerConfirmed:
	default:
		return fmt.Errorf("invalid installer status %s (must be none, informed or confirmed)", status)
	}
	if err := s.montageRepo.SetInstallerStatus(ctx, montageID, status); err != nil {
		return fmt.Errorf("failed to set installer status: %w", err)
	}
	return nil
}

// AssignInstaller assigns an installer.
func (s *MontageServiceImpl) AssignInstaller(ctx context.Context, montageID, installerID string) error {
	if err := s.montageRepo.AssignInstaller(ctx, montageID, installerID); err != nil {
		return fmt.Errorf("failed to assign installer: %w", err)
	}
	return nil
}

// AssignMeasurer assigns a measurer.
func (s *MontageServiceImpl) AssignMeasurer(ctx context.Context, montageID, measurerID string) error {
	if err := s.montageRepo.AssignMeasurer(ctx, montageID, measurerID); err != nil {
		return fmt.Errorf("failed to assign measurer: %w", err)
	}
	return nil
}

// GetAlerts evaluates material and installer readiness alerts for a montage.
func (s *MontageServiceImpl) GetAlerts(ctx context.Context, montageID string) (*primary.MontageAlerts, error) {
	record, err := s.montageRepo.GetByID(ctx, montageID)
	if err != nil {
		return nil, err
	}

	var scheduledAt *time.Time
	if record.ScheduledInstallationAt != "" {
		t, err := time.Parse(time.RFC3339, record.ScheduledInstallationAt)
		if err != nil {
			return nil, fmt.Errorf("montage %s has malformed scheduled date: %w", montageID, err)
		}
		scheduledAt = &t
	}

	now := s.now()
	return &primary.MontageAlerts{
		Material:  alertToPrimary(alert.EvaluateMaterialAlert(now, scheduledAt, record.MaterialStatus, s.windows)),
		Installer: alertToPrimary(alert.EvaluateInstallerAlert(now, scheduledAt, record.InstallerStatus, s.windows)),
	}, nil
}

// DeleteMontage soft-deletes a montage. Its checklist items survive until
// the row is purged.
func (s *MontageServiceImpl) DeleteMontage(ctx context.Context, montageID string) error {
	if err := s.montageRepo.SoftDelete(ctx, montageID); err != nil {
		return fmt.Errorf("failed to delete montage: %w", err)
	}
	return nil
}

// Helper methods

func (s *MontageServiceImpl) loadCoreItems(ctx context.Context, montageID string) ([]checklist.Item, error) {
	records, err := s.itemRepo.ListByMontage(ctx, montageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	items := make([]checklist.Item, len(records))
	for i, r := range records {
		items[i] = checklist.Item{
			ID:          r.ID,
			TemplateID:  r.TemplateID,
			Label:       r.Label,
			Completed:   r.Completed,
			CompletedAt: r.CompletedAt,
			Attachment:  r.Attachment,
		}
	}
	return items, nil
}

func (s *MontageServiceImpl) recordToMontage(r *secondary.MontageRecord) *primary.Montage {
	return &primary.Montage{
		ID:                              r.ID,
		CustomerName:                    r.CustomerName,
		Address:                         r.Address,
		Status:                          r.Status,
		StatusLabel:                     s.catalog.Label(r.Status),
		MaterialStatus:                  r.MaterialStatus,
		InstallerStatus:                 r.InstallerStatus,
		InstallerID:                     r.InstallerID,
		MeasurerID:                      r.MeasurerID,
		ScheduledInstallationAt:         r.ScheduledInstallationAt,
		ScheduledInstallationEndAt:      r.ScheduledInstallationEndAt,
		ScheduledSkirtingInstallationAt: r.ScheduledSkirtingInstallationAt,
		CreatedAt:                       r.CreatedAt,
		UpdatedAt:                       r.UpdatedAt,
		CompletedAt:                     r.CompletedAt,
	}
}

func checkpointsToPrimary(in []process.Checkpoint) []primary.Checkpoint {
	out := make([]primary.Checkpoint, len(in))
	for i, c := range in {
		out[i] = primary.Checkpoint{Label: c.Label, IsMet: c.IsMet}
	}
	return out
}

func alertToPrimary(a *alert.Alert) *primary.Alert {
	if a == nil {
		return nil
	}
	return &primary.Alert{Level: string(a.Level), Message: a.Message}
}

func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return fmt.Errorf("invalid date %q (expected RFC3339): %w", s, err)
	}
	return nil
}

// Ensure MontageServiceImpl implements the interface
var _ primary.MontageService = (*MontageServiceImpl)(nil)
