package primary

import "context"

// Event types for calendar projections.
const (
	EventTypeOrder   = "order"
	EventTypeMontage = "montage"
)

// SkirtingSuffix marks the secondary montage event projected from the
// skirting installation date.
const SkirtingSuffix = "-skirting"

// CalendarService defines the primary port for the unified scheduling view.
type CalendarService interface {
	// ListEvents projects orders and montages into a uniform event shape,
	// partitioned by whether a date is set. Orders appear only for admins;
	// montages are filtered to the caller's assignments unless admin.
	ListEvents(ctx context.Context, role Role) (*EventList, error)

	// UpdateEventDate writes a new date back to the one field owned by the
	// event. The "-skirting" id suffix routes montage events to the
	// skirting installation date.
	UpdateEventDate(ctx context.Context, req UpdateEventDateRequest) error
}

// Role describes the caller's capabilities for calendar filtering.
type Role struct {
	Admin       bool
	InstallerID string
	MeasurerID  string
}

// CalendarEvent is the uniform projection of an order or montage date.
// It is derived on every read and never persisted as its own entity.
type CalendarEvent struct {
	ID     string // source id, optionally with the -skirting suffix
	Type   string // order or montage
	Date   string // RFC3339, empty for unscheduled events
	Title  string
	Status string // source stage/status value
}

// EventList partitions events by date presence.
type EventList struct {
	Scheduled   []*CalendarEvent
	Unscheduled []*CalendarEvent
}

// UpdateEventDateRequest contains parameters for moving an event.
type UpdateEventDateRequest struct {
	EventID string
	Type    string
	NewDate string // RFC3339; empty clears the date
}
