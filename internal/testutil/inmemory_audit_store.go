package testutil

import (
	"context"
	"sync"

	"github.com/lordbyaku/lbpos/internal/domain/auditlog"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// InMemoryAuditStore implements auditlog.Repository
type InMemoryAuditStore struct {
	mu      sync.RWMutex
	entries []*auditlog.Entry
}

// NewInMemoryAuditStore creates a new in-memory audit store
func NewInMemoryAuditStore() *InMemoryAuditStore {
	return &InMemoryAuditStore{}
}

func (s *InMemoryAuditStore) Append(ctx context.Context, e *auditlog.Entry) error {
	if e == nil {
		return ierr.NewError("audit entry cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *e
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *InMemoryAuditStore) ListByEntity(ctx context.Context, entity string, entityID string) ([]*auditlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*auditlog.Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if string(e.Entity) == entity && e.EntityID == entityID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *InMemoryAuditStore) List(ctx context.Context) ([]*auditlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantID := types.GetTenantID(ctx)
	var result []*auditlog.Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].TenantID == tenantID {
			copied := *s.entries[i]
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all entries
func (s *InMemoryAuditStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
