package auditlog

import (
	"context"
)

// Repository defines the interface for the append-only audit sink
type Repository interface {
	// Append writes one audit entry
	Append(ctx context.Context, e *Entry) error

	// ListByEntity returns entries for an entity, newest first
	ListByEntity(ctx context.Context, entity string, entityID string) ([]*Entry, error)

	// List returns the tenant's entries, newest first
	List(ctx context.Context) ([]*Entry, error)
}
