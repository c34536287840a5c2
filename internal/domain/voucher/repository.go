package voucher

import (
	"context"
)

// Repository defines the interface for voucher persistence operations
type Repository interface {
	// Create inserts a new voucher
	Create(ctx context.Context, v *Voucher) error

	// Get retrieves a voucher by ID
	Get(ctx context.Context, id string) (*Voucher, error)

	// GetByCode retrieves a voucher by its code within the tenant
	GetByCode(ctx context.Context, code string) (*Voucher, error)

	// Update writes voucher edits
	Update(ctx context.Context, v *Voucher) error

	// List returns the tenant's vouchers, newest first
	List(ctx context.Context) ([]*Voucher, error)

	// Delete removes a voucher
	Delete(ctx context.Context, id string) error
}
