package primary

import "context"

// OrderService defines the primary port for order operations, covering both
// fulfillment orders and the dropshipping sub-ledger.
type OrderService interface {
	// CreateOrder creates a new order in the initial stage of its workflow.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)

	// GetOrder retrieves an order by ID.
	GetOrder(ctx context.Context, orderID string) (*Order, error)

	// ListOrders lists orders with optional filters.
	ListOrders(ctx context.Context, filters OrderFilters) ([]*Order, error)

	// SetStage moves an order to a stage within its workflow and execution
	// mode. Backward moves are allowed and recorded in the stage notes.
	SetStage(ctx context.Context, req SetStageRequest) (*Order, error)

	// SetAdminAttention flips the requires-admin-attention flag.
	SetAdminAttention(ctx context.Context, orderID string, v bool) error

	// SetDocumentFlags updates the quote/invoice document flags. Nil fields
	// are left unchanged.
	SetDocumentFlags(ctx context.Context, req SetDocumentFlagsRequest) error

	// SetExpectedShipDate sets or clears the expected ship date.
	SetExpectedShipDate(ctx context.Context, orderID, date string) error

	// VisibleStages returns the stage values valid for an order's workflow
	// and execution mode, in sequence order.
	VisibleStages(ctx context.Context, orderID string) ([]string, error)
}

// CreateOrderRequest contains parameters for creating an order.
type CreateOrderRequest struct {
	CustomerName  string
	Workflow      string // "order" (default) or "dropshipping"
	ExecutionMode string // INSTALLATION_ONLY or DELIVERY_ONLY, orders only
}

// CreateOrderResponse contains the result of creating an order.
type CreateOrderResponse struct {
	OrderID string
	Order   *Order
}

// Order represents an order entity at the port boundary.
type Order struct {
	ID                     string
	Workflow               string
	CustomerName           string
	Stage                  string
	StageLabel             string
	StageNotes             string
	Progress               int
	RequiresAdminAttention bool
	HasQuote               bool
	HasInvoice             bool
	ExecutionMode          string
	ExpectedShipDate       string
	CreatedAt              string
	UpdatedAt              string
}

// OrderFilters contains filter options for listing orders.
type OrderFilters struct {
	Workflow       string
	Stage          string
	AdminAttention bool
}

// SetStageRequest contains parameters for an order stage change.
type SetStageRequest struct {
	OrderID string
	Stage   string
	Note    string // optional operator note recorded with the change
}

// SetDocumentFlagsRequest updates the document flags on an order.
type SetDocumentFlagsRequest struct {
	OrderID string
	Quote   *bool
	Invoice *bool
}
