package customer

import (
	"context"
)

// Repository defines the interface for customer persistence operations
type Repository interface {
	// Create inserts a new customer
	Create(ctx context.Context, c *Customer) error

	// Get retrieves a customer by ID
	Get(ctx context.Context, id string) (*Customer, error)

	// GetByPhone retrieves a customer by phone within the tenant
	GetByPhone(ctx context.Context, phone string) (*Customer, error)

	// UpsertByPhone inserts the customer, or returns the existing row when
	// the (tenant, phone) pair already exists
	UpsertByPhone(ctx context.Context, c *Customer) (*Customer, error)

	// AddPoints atomically increments the customer's point balance
	AddPoints(ctx context.Context, id string, delta int64) error

	// List returns the tenant's customers ordered by name
	List(ctx context.Context) ([]*Customer, error)
}
