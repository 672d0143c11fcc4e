package app

import (
	"context"
	"fmt"

	"github.com/example/montage/internal/core/gate"
	"github.com/example/montage/internal/core/stage"
	"github.com/example/montage/internal/ports/primary"
	"github.com/example/montage/internal/ports/secondary"
)

// Order workflow discriminators, stored on the order row.
const (
	WorkflowOrder        = "order"
	WorkflowDropshipping = "dropshipping"
)

// OrderServiceImpl implements the OrderService interface.
type OrderServiceImpl struct {
	orderRepo secondary.OrderRepository
}

// NewOrderService creates a new OrderService with injected dependencies.
func NewOrderService(orderRepo secondary.OrderRepository) *OrderServiceImpl {
	return &OrderServiceImpl{orderRepo: orderRepo}
}

// CreateOrder creates a new order in the initial stage of its workflow.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, req primary.CreateOrderRequest) (*primary.CreateOrderResponse, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}

	workflow := req.Workflow
	if workflow == "" {
		workflow = WorkflowOrder
	}
	if workflow != WorkflowOrder && workflow != WorkflowDropshipping {
		return nil, fmt.Errorf("invalid workflow %s (must be order or dropshipping)", workflow)
	}

	mode := req.ExecutionMode
	if workflow == WorkflowOrder {
		if mode == "" {
			mode = stage.ExecutionDeliveryOnly
		}
		if mode != stage.ExecutionInstallationOnly && mode != stage.ExecutionDeliveryOnly {
			return nil, fmt.Errorf("invalid execution mode %s", mode)
		}
	} else if mode != "" {
		return nil, fmt.Errorf("execution mode does not apply to dropshipping orders")
	}

	nextID, err := s.orderRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	record := &secondary.OrderRecord{
		ID:            nextID,
		Workflow:      workflow,
		CustomerName:  req.CustomerName,
		Stage:         s.catalogFor(workflow, mode).First().Value,
		ExecutionMode: mode,
	}
	if err := s.orderRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	created, err := s.orderRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created order: %w", err)
	}

	return &primary.CreateOrderResponse{
		OrderID: created.ID,
		Order:   s.recordToOrder(created),
	}, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, orderID string) (*primary.Order, error) {
	record, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.recordToOrder(record), nil
}

// ListOrders lists orders with optional filters.
func (s *OrderServiceImpl) ListOrders(ctx context.Context, filters primary.OrderFilters) ([]*primary.Order, error) {
	records, err := s.orderRepo.List(ctx, secondary.OrderFilters{
		Workflow:       filters.Workflow,
		Stage:          filters.Stage,
		AdminAttention: filters.AdminAttention,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*primary.Order, len(records))
	for i, r := range records {
		orders[i] = s.recordToOrder(r)
	}
	return orders, nil
}

// SetStage moves an order to a stage within its workflow and execution mode.
// Backward moves are allowed; they are recorded in the stage notes so the
// regression leaves a trace.
func (s *OrderServiceImpl) SetStage(ctx context.Context, req primary.SetStageRequest) (*primary.Order, error) {
	record, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	var result gate.GuardResult
	if record.Workflow == WorkflowDropshipping {
		result = gate.CanSetDropshippingStage(gate.DropshippingStageContext{
			OrderID:     req.OrderID,
			TargetStage: req.Stage,
		})
	} else {
		result = gate.CanSetOrderStage(gate.OrderStageContext{
			OrderID:       req.OrderID,
			ExecutionMode: record.ExecutionMode,
			TargetStage:   req.Stage,
		})
	}
	if err := result.Error(); err != nil {
		return nil, err
	}

	catalog := s.catalogFor(record.Workflow, record.ExecutionMode)
	note := req.Note
	if catalog.IndexOf(req.Stage) < catalog.IndexOf(record.Stage) {
		regression := fmt.Sprintf("moved back from %s to %s", record.Stage, req.Stage)
		if note != "" {
			note = regression + ": " + note
		} else {
			note = regression
		}
	}

	if err := s.orderRepo.UpdateStage(ctx, req.OrderID, req.Stage, note); err != nil {
		return nil, fmt.Errorf("failed to update order stage: %w", err)
	}

	updated, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated order: %w", err)
	}
	return s.recordToOrder(updated), nil
}

// SetAdminAttention flips the requires-admin-attention flag.
func (s *OrderServiceImpl) SetAdminAttention(ctx context.Context, orderID string, v bool) error {
	if err := s.orderRepo.SetAdminAttention(ctx, orderID, v); err != nil {
		return fmt.Errorf("failed to set admin attention flag: %w", err)
	}
	return nil
}

// SetDocumentFlags updates the quote/invoice document flags.
func (s *OrderServiceImpl) SetDocumentFlags(ctx context.Context, req primary.SetDocumentFlagsRequest) error {
	if req.Quote != nil {
		if err := s.orderRepo.SetQuoteFlag(ctx, req.OrderID, *req.Quote); err != nil {
			return fmt.Errorf("failed to set quote flag: %w", err)
		}
	}
	if req.Invoice != nil {
		if err := s.orderRepo.SetInvoiceFlag(ctx, req.OrderID, *req.Invoice); err != nil {
			return fmt.Errorf("failed to set invoice flag: %w", err)
		}
	}
	return nil
}

// SetExpectedShipDate sets or clears the expected ship date.
func (s *OrderServiceImpl) SetExpectedShipDate(ctx context.Context, orderID, date string) error {
	if err := validateDate(date); err != nil {
		return err
	}
	if err := s.orderRepo.SetExpectedShipDate(ctx, orderID, date); err != nil {
		return fmt.Errorf("failed to set expected ship date: %w", err)
	}
	return nil
}

// VisibleStages returns the stage values valid for an order, in order.
func (s *OrderServiceImpl) VisibleStages(ctx context.Context, orderID string) ([]string, error) {
	record, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	catalog := s.catalogFor(record.Workflow, record.ExecutionMode)
	stages := catalog.Stages()
	out := make([]string, len(stages))
	for i, st := range stages {
		out[i] = st.Value
	}
	return out, nil
}

// Helper methods

func (s *OrderServiceImpl) catalogFor(workflow, mode string) *stage.Catalog {
	if workflow == WorkflowDropshipping {
		return stage.DropshippingCatalog()
	}
	return stage.OrderCatalogForMode(mode)
}

func (s *OrderServiceImpl) recordToOrder(r *secondary.OrderRecord) *primary.Order {
	catalog := s.catalogFor(r.Workflow, r.ExecutionMode)
	return &primary.Order{
		ID:                     r.ID,
		Workflow:               r.Workflow,
		CustomerName:           r.CustomerName,
		Stage:                  r.Stage,
		StageLabel:             catalog.Label(r.Stage),
		StageNotes:             r.StageNotes,
		Progress:               catalog.Progress(r.Stage),
		RequiresAdminAttention: r.RequiresAdminAttention,
		HasQuote:               r.HasQuote,
		HasInvoice:             r.HasInvoice,
		ExecutionMode:          r.ExecutionMode,
		ExpectedShipDate:       r.ExpectedShipDate,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

// Ensure OrderServiceImpl implements the interface
var _ primary.OrderService = (*OrderServiceImpl)(nil)
