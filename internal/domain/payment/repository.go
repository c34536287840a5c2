package payment

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/types"
)

// Repository defines the interface for renewal payment persistence operations
type Repository interface {
	// Create inserts a new pending renewal request
	Create(ctx context.Context, p *Payment) error

	// Get retrieves a payment by ID
	Get(ctx context.Context, id string) (*Payment, error)

	// ListByTenant returns the tenant's renewal requests, newest first
	ListByTenant(ctx context.Context, tenantID string) ([]*Payment, error)

	// ListByStatus returns payments in the given verification state across
	// tenants, newest first. Used by the admin approval queue.
	ListByStatus(ctx context.Context, status types.RenewalStatus) ([]*Payment, error)

	// UpdateStatus moves the payment out of pending verification. The
	// update is conditional on the row still being pending; a terminal row
	// returns ErrAlreadyExists.
	UpdateStatus(ctx context.Context, p *Payment) error
}
