package license

import (
	"context"
)

// Repository defines the interface for license persistence operations
type Repository interface {
	// Create inserts a new license row
	Create(ctx context.Context, l *License) error

	// GetCurrentActive returns the tenant's most recent active license,
	// ordered by end timestamp descending. Returns ErrNotFound when the
	// tenant has no active row.
	GetCurrentActive(ctx context.Context, tenantID string) (*License, error)

	// ListByTenant returns all license rows for a tenant, newest first
	ListByTenant(ctx context.Context, tenantID string) ([]*License, error)

	// Supersede atomically deactivates every license row of the tenant and
	// inserts the replacement with IsActive=true. A concurrent entitlement
	// evaluation must never observe a window with zero active rows if an
	// unexpired one existed before the call.
	Supersede(ctx context.Context, tenantID string, replacement *License) error
}
