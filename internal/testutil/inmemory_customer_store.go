package testutil

import (
	"context"
	"sync"

	"github.com/lordbyaku/lbpos/internal/domain/customer"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]

	mu sync.Mutex
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ierr.NewError("customer cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("customer not found").
			WithHint("Pelanggan tidak ditemukan").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	tenantID := types.GetTenantID(ctx)
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, c *customer.Customer) bool {
			return c.TenantID == tenantID && c.Phone == phone
		}, nil)
	if len(rows) == 0 {
		return nil, ierr.NewError("customer not found").
			WithHint("Pelanggan tidak ditemukan").
			WithReportableDetails(map[string]interface{}{"phone": phone}).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(rows[0]), nil
}

func (s *InMemoryCustomerStore) UpsertByPhone(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	if c == nil {
		return nil, ierr.NewError("customer cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.GetByPhone(ctx, c.Phone)
	if err == nil {
		return existing, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}
	if err := s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c)); err != nil {
		return nil, err
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) AddPoints(ctx context.Context, id string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	c.PointBalance += delta
	return s.InMemoryStore.Update(ctx, c.ID, c)
}

func (s *InMemoryCustomerStore) List(ctx context.Context) ([]*customer.Customer, error) {
	tenantID := types.GetTenantID(ctx)
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, c *customer.Customer) bool {
			return c.TenantID == tenantID
		},
		func(a, b *customer.Customer) bool {
			return a.Name < b.Name
		})
	copied := make([]*customer.Customer, len(rows))
	for i, c := range rows {
		copied[i] = copyCustomer(c)
	}
	return copied, nil
}
