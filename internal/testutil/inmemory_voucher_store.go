package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/lordbyaku/lbpos/internal/domain/voucher"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// InMemoryVoucherStore implements voucher.Repository
type InMemoryVoucherStore struct {
	*InMemoryStore[*voucher.Voucher]

	mu sync.Mutex
}

// NewInMemoryVoucherStore creates a new in-memory voucher store
func NewInMemoryVoucherStore() *InMemoryVoucherStore {
	return &InMemoryVoucherStore{
		InMemoryStore: NewInMemoryStore[*voucher.Voucher](),
	}
}

func copyVoucher(v *voucher.Voucher) *voucher.Voucher {
	if v == nil {
		return nil
	}
	copied := *v
	if v.ExpiresAt != nil {
		t := *v.ExpiresAt
		copied.ExpiresAt = &t
	}
	if v.MaxRedemptions != nil {
		n := *v.MaxRedemptions
		copied.MaxRedemptions = &n
	}
	return &copied
}

func (s *InMemoryVoucherStore) Create(ctx context.Context, v *voucher.Voucher) error {
	if v == nil {
		return ierr.NewError("voucher cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, v.ID, copyVoucher(v))
}

func (s *InMemoryVoucherStore) Get(ctx context.Context, id string) (*voucher.Voucher, error) {
	v, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("voucher not found").
			WithHint("Voucher tidak ditemukan").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyVoucher(v), nil
}

func (s *InMemoryVoucherStore) GetByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	tenantID := types.GetTenantID(ctx)
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, v *voucher.Voucher) bool {
			return v.TenantID == tenantID && strings.EqualFold(v.Code, code)
		}, nil)
	if len(rows) == 0 {
		return nil, ierr.NewError("voucher not found").
			WithHint("Voucher tidak ditemukan").
			WithReportableDetails(map[string]interface{}{"code": code}).
			Mark(ierr.ErrNotFound)
	}
	return copyVoucher(rows[0]), nil
}

func (s *InMemoryVoucherStore) Update(ctx context.Context, v *voucher.Voucher) error {
	if v == nil {
		return ierr.NewError("voucher cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, v.ID, copyVoucher(v))
}

func (s *InMemoryVoucherStore) incrementRedemptions(ctx context.Context, id string) error {
	// Conditional bump under one lock: the last remaining slot only goes
	// to one caller.
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if v.MaxRedemptions != nil && v.TotalRedemptions >= *v.MaxRedemptions {
		return ierr.NewError("voucher quota exhausted").
			WithHint("Kuota voucher sudah habis").
			WithReportableDetails(map[string]interface{}{"code": v.Code}).
			Mark(ierr.ErrAlreadyExists)
	}
	v.TotalRedemptions++
	return s.InMemoryStore.Update(ctx, v.ID, v)
}

// releaseRedemption gives a consumed slot back when the operation that took
// it could not complete.
func (s *InMemoryVoucherStore) releaseRedemption(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.Get(ctx, id)
	if err != nil {
		return
	}
	if v.TotalRedemptions > 0 {
		v.TotalRedemptions--
		_ = s.InMemoryStore.Update(ctx, v.ID, v)
	}
}

func (s *InMemoryVoucherStore) List(ctx context.Context) ([]*voucher.Voucher, error) {
	tenantID := types.GetTenantID(ctx)
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, v *voucher.Voucher) bool {
			return v.TenantID == tenantID
		},
		func(a, b *voucher.Voucher) bool {
			return a.CreatedAt.After(b.CreatedAt)
		})
	copied := make([]*voucher.Voucher, len(rows))
	for i, v := range rows {
		copied[i] = copyVoucher(v)
	}
	return copied, nil
}

func (s *InMemoryVoucherStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}
