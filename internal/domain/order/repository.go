package order

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/types"
)

// Filter defines query parameters for listing orders.
type Filter struct {
	QueryFilter *types.QueryFilter

	// OrderStatus filters by processing stage
	OrderStatus types.OrderStatus `form:"order_status"`

	// PaymentState filters by payment state
	PaymentState types.PaymentState `form:"payment_state"`

	// CustomerID filters by customer
	CustomerID string `form:"customer_id"`
}

// Repository defines the interface for order persistence operations
type Repository interface {
	// CreateWithItems inserts the order and its line items in one
	// transactional unit. A non-empty voucherID consumes one redemption of
	// that voucher inside the same unit: an insert failure leaves the quota
	// untouched, and an exhausted quota (ErrAlreadyExists) inserts nothing.
	CreateWithItems(ctx context.Context, o *Order, items []*LineItem, voucherID string) error

	// Get retrieves an order by ID, line items included
	Get(ctx context.Context, id string) (*Order, error)

	// GetByCode retrieves an order by its human readable code / barcode value
	GetByCode(ctx context.Context, code string) (*Order, error)

	// List retrieves orders matching the filter, newest first
	List(ctx context.Context, filter *Filter) ([]*Order, error)

	// Count returns the count of orders matching the filter
	Count(ctx context.Context, filter *Filter) (int, error)

	// Update writes administrative edits (payment fields, note). It must
	// not be used for stage transitions.
	Update(ctx context.Context, o *Order) error

	// TransitionStatus updates the order's stage from expected to next and
	// appends the history entry in one transactional unit. The update is
	// conditional on the current stage still being expected; if another
	// writer advanced the order first, ErrAlreadyExists is returned and no
	// history entry is written.
	TransitionStatus(ctx context.Context, id string, expected, next types.OrderStatus, note string) (*Order, error)

	// Delete removes the order row and its line items
	Delete(ctx context.Context, id string) error

	// ListHistory returns the order's transition history, oldest first
	ListHistory(ctx context.Context, orderID string) ([]*StatusHistory, error)
}
