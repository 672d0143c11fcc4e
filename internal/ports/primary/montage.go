// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the CLI layer calls and the view types
// crossing that boundary.
package primary

import "context"

// MontageService defines the primary port for montage operations.
type MontageService interface {
	// CreateMontage creates a new montage in the initial stage.
	CreateMontage(ctx context.Context, req CreateMontageRequest) (*CreateMontageResponse, error)

	// GetMontage retrieves a montage by ID.
	GetMontage(ctx context.Context, montageID string) (*Montage, error)

	// ListMontages lists montages with optional filters.
	ListMontages(ctx context.Context, filters MontageFilters) ([]*Montage, error)

	// GetProcessState derives the timeline view for a montage.
	GetProcessState(ctx context.Context, montageID string) (*ProcessState, error)

	// AdvanceStage requests a stage transition. A gate rejection is reported
	// in the response, not as an error.
	AdvanceStage(ctx context.Context, req AdvanceStageRequest) (*AdvanceStageResponse, error)

	// ScheduleInstallation sets the installation window and optional
	// skirting date.
	ScheduleInstallation(ctx context.Context, req ScheduleRequest) error

	// SetMaterialStatus updates material readiness.
	SetMaterialStatus(ctx context.Context, montageID, status string) error

	// SetInstallerStatus updates installer readiness.
	SetInstallerStatus(ctx context.Context, montageID, status string) error

	// AssignInstaller assigns an installer.
	AssignInstaller(ctx context.Context, montageID, installerID string) error

	// AssignMeasurer assigns a measurer.
	AssignMeasurer(ctx context.Context, montageID, measurerID string) error

	// GetAlerts evaluates material and installer readiness alerts.
	GetAlerts(ctx context.Context, montageID string) (*MontageAlerts, error)

	// DeleteMontage soft-deletes a montage.
	DeleteMontage(ctx context.Context, montageID string) error
}

// CreateMontageRequest contains parameters for creating a montage.
type CreateMontageRequest struct {
	CustomerName string
	Address      string
	InstallerID  string // optional
	MeasurerID   string // optional
}

// CreateMontageResponse contains the result of creating a montage.
type CreateMontageResponse struct {
	MontageID string
	Montage   *Montage
}

// Montage represents a montage entity at the port boundary.
// Status follows the montage stage catalog: lead → … → completed.
type Montage struct {
	ID                              string
	CustomerName                    string
	Address                         string
	Status                          string
	StatusLabel                     string
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
}

// MontageFilters contains filter options for listing montages.
type MontageFilters struct {
	Status      string
	InstallerID string
	MeasurerID  string
}

// AdvanceStageRequest contains parameters for a stage transition.
type AdvanceStageRequest struct {
	MontageID   string
	TargetStage string
}

// AdvanceStageResponse reports the outcome of a stage transition request.
// When the gate rejects the move, Advanced is false and BlockingStage and
// MissingItems name the unmet checkpoints.
type AdvanceStageResponse struct {
	Advanced      bool
	Regressed     bool // target was at or before the previous stage
	BlockingStage string
	MissingItems  []string
	Montage       *Montage
}

// ScheduleRequest contains parameters for scheduling an installation.
// Dates are RFC3339; empty fields are left unchanged.
type ScheduleRequest struct {
	MontageID  string
	StartAt    string
	EndAt      string
	SkirtingAt string
}

// ProcessStep is one stage of the derived montage timeline.
type ProcessStep struct {
	Stage         string
	Label         string
	Status        string // completed, current, locked
	Checkpoints   []Checkpoint
	ScheduledDate string
	CompletedDate string
}

// Checkpoint is a checklist item's completion state on a step.
type Checkpoint struct {
	Label string
	IsMet bool
}

// ProcessState is the full derived timeline for a montage.
type ProcessState struct {
	MontageID         string
	Steps             []ProcessStep
	CustomCheckpoints []Checkpoint
	Progress          int
	CurrentStepIndex  int
}

// MontageAlerts carries the readiness alerts for a montage. Nil fields mean
// no alert at the current time.
type MontageAlerts struct {
	Material  *Alert
	Installer *Alert
}

// Alert is an urgency-leveled readiness warning.
type Alert struct {
	Level   string // warning, error, critical
	Message string
}
