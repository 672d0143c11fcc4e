package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/montage/internal/ports/primary"
	"github.com/example/montage/internal/ports/secondary"
)

// CalendarServiceImpl implements the CalendarService interface.
type CalendarServiceImpl struct {
	montageRepo secondary.MontageRepository
	orderRepo   secondary.OrderRepository
}

// NewCalendarService creates a new CalendarService with injected dependencies.
func NewCalendarService(montageRepo secondary.MontageRepository, orderRepo secondary.OrderRepository) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		montageRepo: montageRepo,
		orderRepo:   orderRepo,
	}
}

// ListEvents projects orders and montages into a unified event view.
// Orders appear only for admins; montages are filtered to the caller's
// assignments unless admin.
func (s *CalendarServiceImpl) ListEvents(ctx context.Context, role primary.Role) (*primary.EventList, error) {
	var events []*primary.CalendarEvent

	if role.Admin {
		orders, err := s.orderRepo.List(ctx, secondary.OrderFilters{Workflow: WorkflowOrder})
		if err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}
		for _, o := range orders {
			events = append(events, &primary.CalendarEvent{
				ID:     o.ID,
				Type:   primary.EventTypeOrder,
				Date:   o.ExpectedShipDate,
				Title:  o.CustomerName,
				Status: o.Stage,
			})
		}
	}

	montages, err := s.montageRepo.List(ctx, secondary.MontageFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list montages: %w", err)
	}
	for _, m := range montages {
		if !role.Admin && !assignedTo(m, role) {
			continue
		}
		events = append(events, &primary.CalendarEvent{
			ID:     m.ID,
			Type:   primary.EventTypeMontage,
			Date:   m.ScheduledInstallationAt,
			Title:  m.CustomerName,
			Status: m.Status,
		})
		if m.ScheduledSkirtingInstallationAt != "" {
			events = append(events, &primary.CalendarEvent{
				ID:     m.ID + primary.SkirtingSuffix,
				Type:   primary.EventTypeMontage,
				Date:   m.ScheduledSkirtingInstallationAt,
				Title:  m.CustomerName + " (listwy)",
				Status: m.Status,
			})
		}
	}

	list := &primary.EventList{}
	for _, e := range events {
		if e.Date != "" {
			list.Scheduled = append(list.Scheduled, e)
		} else {
			list.Unscheduled = append(list.Unscheduled, e)
		}
	}
	return list, nil
}

// assignedTo reports whether the montage belongs to the caller's calendar.
// An empty role ID never matches; unassigned montages stay admin-only.
func assignedTo(m *secondary.MontageRecord, role primary.Role) bool {
	if role.InstallerID != "" && m.InstallerID == role.InstallerID {
		return true
	}
	if role.MeasurerID != "" && m.MeasurerID == role.MeasurerID {
		return true
	}
	return false
}

// UpdateEventDate writes a new date back to the single field owned by the
// event. Errors surface unchanged; the caller owns any optimistic revert.
func (s *CalendarServiceImpl) UpdateEventDate(ctx context.Context, req primary.UpdateEventDateRequest) error {
	if err := validateDate(req.NewDate); err != nil {
		return err
	}

	switch req.Type {
	case primary.EventTypeOrder:
		return s.orderRepo.SetExpectedShipDate(ctx, req.EventID, req.NewDate)
	case primary.EventTypeMontage:
		if strings.HasSuffix(req.EventID, primary.SkirtingSuffix) {
			montageID := strings.TrimSuffix(req.EventID, primary.SkirtingSuffix)
			return s.montageRepo.SetSkirtingDate(ctx, montageID, req.NewDate)
		}
		// Moving the installation resets the end of the window; the
		// operator re-enters it when rescheduling multi-day jobs.
		return s.montageRepo.Schedule(ctx, req.EventID, req.NewDate, "")
	default:
		return fmt.Errorf("unknown event type %s", req.Type)
	}
}

// Ensure CalendarServiceImpl implements the interface
var _ primary.CalendarService = (*CalendarServiceImpl)(nil)
