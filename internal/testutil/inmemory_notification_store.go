package testutil

import (
	"context"
	"sync"

	"github.com/lordbyaku/lbpos/internal/domain/notification"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// InMemoryNotificationLogStore implements notification.LogRepository
type InMemoryNotificationLogStore struct {
	mu   sync.RWMutex
	logs []*notification.Log
}

// NewInMemoryNotificationLogStore creates a new in-memory delivery log store
func NewInMemoryNotificationLogStore() *InMemoryNotificationLogStore {
	return &InMemoryNotificationLogStore{}
}

func (s *InMemoryNotificationLogStore) Append(ctx context.Context, l *notification.Log) error {
	if l == nil {
		return ierr.NewError("notification log cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *l
	s.logs = append(s.logs, &copied)
	return nil
}

func (s *InMemoryNotificationLogStore) List(ctx context.Context) ([]*notification.Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantID := types.GetTenantID(ctx)
	var result []*notification.Log
	for i := len(s.logs) - 1; i >= 0; i-- {
		if s.logs[i].TenantID == tenantID {
			copied := *s.logs[i]
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all log entries
func (s *InMemoryNotificationLogStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = nil
}
