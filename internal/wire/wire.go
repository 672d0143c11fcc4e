// Package wire provides dependency injection for the montage application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/montage/internal/adapters/sqlite"
	"github.com/example/montage/internal/app"
	"github.com/example/montage/internal/core/alert"
	"github.com/example/montage/internal/core/checklist"
	"github.com/example/montage/internal/db"
	"github.com/example/montage/internal/ports/primary"
)

var (
	montageService   primary.MontageService
	checklistService primary.ChecklistService
	orderService     primary.OrderService
	calendarService  primary.CalendarService
	alertWindows     = alert.DefaultWindows
	once             sync.Once
)

// SetAlertWindows overrides the alert windows before the services are
// built. Called from CLI bootstrap with the configured day counts; has no
// effect once initServices has run.
func SetAlertWindows(w alert.Windows) {
	alertWindows = w
}

// MontageService returns the singleton MontageService instance.
func MontageService() primary.MontageService {
	once.Do(initServices)
	return montageService
}

// ChecklistService returns the singleton ChecklistService instance.
func ChecklistService() primary.ChecklistService {
	once.Do(initServices)
	return checklistService
}

// OrderService returns the singleton OrderService instance.
func OrderService() primary.OrderService {
	once.Do(initServices)
	return orderService
}

// CalendarService returns the singleton CalendarService instance.
func CalendarService() primary.CalendarService {
	once.Do(initServices)
	return calendarService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	montageRepo := sqlite.NewMontageRepository(database)
	itemRepo := sqlite.NewChecklistItemRepository(database)
	orderRepo := sqlite.NewOrderRepository(database)

	registry := checklist.DefaultRegistry()

	// Services (primary ports implementation)
	montageService = app.NewMontageService(montageRepo, itemRepo, registry, alertWindows)
	checklistService = app.NewChecklistService(itemRepo, registry)
	orderService = app.NewOrderService(orderRepo)
	calendarService = app.NewCalendarService(montageRepo, orderRepo)
}
