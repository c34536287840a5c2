package testutil

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/domain/license"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
)

// InMemoryLicenseStore implements license.Repository
type InMemoryLicenseStore struct {
	*InMemoryStore[*license.License]
}

// NewInMemoryLicenseStore creates a new in-memory license store
func NewInMemoryLicenseStore() *InMemoryLicenseStore {
	return &InMemoryLicenseStore{
		InMemoryStore: NewInMemoryStore[*license.License](),
	}
}

func copyLicense(l *license.License) *license.License {
	if l == nil {
		return nil
	}
	copied := *l
	return &copied
}

func (s *InMemoryLicenseStore) Create(ctx context.Context, l *license.License) error {
	if l == nil {
		return ierr.NewError("license cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, l.ID, copyLicense(l))
}

func (s *InMemoryLicenseStore) GetCurrentActive(ctx context.Context, tenantID string) (*license.License, error) {
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, l *license.License) bool {
			return l.TenantID == tenantID && l.IsActive
		},
		func(a, b *license.License) bool {
			return a.EndAt.After(b.EndAt)
		})
	if len(rows) == 0 {
		return nil, ierr.NewError("no active license").
			WithReportableDetails(map[string]interface{}{"tenant_id": tenantID}).
			Mark(ierr.ErrNotFound)
	}
	return copyLicense(rows[0]), nil
}

func (s *InMemoryLicenseStore) ListByTenant(ctx context.Context, tenantID string) ([]*license.License, error) {
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, l *license.License) bool {
			return l.TenantID == tenantID
		},
		func(a, b *license.License) bool {
			return a.CreatedAt.After(b.CreatedAt)
		})
	copied := make([]*license.License, len(rows))
	for i, l := range rows {
		copied[i] = copyLicense(l)
	}
	return copied, nil
}

func (s *InMemoryLicenseStore) Supersede(ctx context.Context, tenantID string, replacement *license.License) error {
	if replacement == nil {
		return ierr.NewError("replacement license cannot be nil").
			Mark(ierr.ErrValidation)
	}

	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, l *license.License) bool {
			return l.TenantID == tenantID && l.IsActive
		}, nil)
	for _, l := range rows {
		deactivated := copyLicense(l)
		deactivated.IsActive = false
		if err := s.InMemoryStore.Update(ctx, deactivated.ID, deactivated); err != nil {
			return err
		}
	}

	replacement.IsActive = true
	return s.InMemoryStore.Create(ctx, replacement.ID, copyLicense(replacement))
}
