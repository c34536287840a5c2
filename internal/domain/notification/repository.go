package notification

import (
	"context"
)

// LogRepository defines the interface for notification delivery log persistence
type LogRepository interface {
	// Append writes one delivery log entry
	Append(ctx context.Context, l *Log) error

	// List returns the tenant's delivery log, newest first
	List(ctx context.Context) ([]*Log, error)
}
