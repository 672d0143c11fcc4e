// Package process computes the derived timeline view of a montage: per-stage
// step status, checkpoint completion, and overall progress. The computation
// is a pure projection re-derived on every read; nothing here is persisted.
package process

import (
	"github.com/example/montage/internal/core/checklist"
	"github.com/example/montage/internal/core/stage"
)

// StepStatus is the derived status of one stage in the timeline.
type StepStatus string

const (
	// StepCompleted marks stages before the current one.
	StepCompleted StepStatus = "completed"
	// StepCurrent marks the stage the montage currently sits in.
	StepCurrent StepStatus = "current"
	// StepLocked marks stages after the current one.
	StepLocked StepStatus = "locked"
)

// Checkpoint is a checklist item's completion state as shown on a step.
type Checkpoint struct {
	Label string
	IsMet bool
}

// StepState is the derived view of one stage in the process timeline.
type StepState struct {
	Stage         stage.Stage
	Status        StepStatus
	Checkpoints   []Checkpoint
	ScheduledDate string // RFC3339, only on the stage that owns a schedule field
	CompletedDate string
}

// Montage carries the montage-level fields the projection reads.
type Montage struct {
	Status                  string
	ScheduledInstallationAt string // RFC3339, empty when unscheduled
	CompletedAt             string
}

// State is the full derived view model for a montage timeline.
type State struct {
	Steps             []StepState
	CustomCheckpoints []Checkpoint // items without a resolvable stage
	Progress          int
	CurrentStepIndex  int
}

// Compute derives the timeline state for a montage and its checklist items.
func Compute(catalog *stage.Catalog, registry *checklist.Registry, m Montage, items []checklist.Item) State {
	currentIndex := catalog.IndexOf(m.Status)
	groups := registry.GroupByStage(items)

	stages := catalog.Stages()
	steps := make([]StepState, len(stages))
	for i, s := range stages {
		step := StepState{Stage: s}

		switch {
		case i < currentIndex:
			step.Status = StepCompleted
		case i == currentIndex:
			step.Status = StepCurrent
		default:
			step.Status = StepLocked
		}

		for _, item := range groups.ByStage[s.Value] {
			step.Checkpoints = append(step.Checkpoints, Checkpoint{
				Label: item.Label,
				IsMet: item.Completed,
			})
		}

		// Montage-level dates surface on the stages they belong to.
		switch s.Value {
		case "scheduled":
			step.ScheduledDate = m.ScheduledInstallationAt
		case "completed":
			step.CompletedDate = m.CompletedAt
		}

		steps[i] = step
	}

	var custom []Checkpoint
	for _, item := range groups.Custom {
		custom = append(custom, Checkpoint{Label: item.Label, IsMet: item.Completed})
	}

	return State{
		Steps:             steps,
		CustomCheckpoints: custom,
		Progress:          catalog.Progress(m.Status),
		CurrentStepIndex:  currentIndex,
	}
}

// UnmetCheckpoints returns the labels of unmet checkpoints on a single step.
func (s StepState) UnmetCheckpoints() []string {
	var out []string
	for _, c := range s.Checkpoints {
		if !c.IsMet {
			out = append(out, c.Label)
		}
	}
	return out
}
