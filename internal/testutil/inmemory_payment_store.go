package testutil

import (
	"context"
	"sync"

	"github.com/lordbyaku/lbpos/internal/domain/payment"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]

	mu sync.Mutex
}

// NewInMemoryPaymentStore creates a new in-memory payment store
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	copied := *p
	if p.PaidAt != nil {
		t := *p.PaidAt
		copied.PaidAt = &t
	}
	return &copied
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyPayment(p))
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("payment not found").
			WithHint("Pengajuan pembayaran tidak ditemukan").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyPayment(p), nil
}

func (s *InMemoryPaymentStore) ListByTenant(ctx context.Context, tenantID string) ([]*payment.Payment, error) {
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, p *payment.Payment) bool {
			return p.TenantID == tenantID
		},
		func(a, b *payment.Payment) bool {
			return a.CreatedAt.After(b.CreatedAt)
		})
	copied := make([]*payment.Payment, len(rows))
	for i, p := range rows {
		copied[i] = copyPayment(p)
	}
	return copied, nil
}

func (s *InMemoryPaymentStore) ListByStatus(ctx context.Context, status types.RenewalStatus) ([]*payment.Payment, error) {
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, p *payment.Payment) bool {
			return p.RenewalStatus == status
		},
		func(a, b *payment.Payment) bool {
			return a.CreatedAt.After(b.CreatedAt)
		})
	copied := make([]*payment.Payment, len(rows))
	for i, p := range rows {
		copied[i] = copyPayment(p)
	}
	return copied, nil
}

func (s *InMemoryPaymentStore) UpdateStatus(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if current.RenewalStatus.IsTerminal() {
		return ierr.NewError("payment already verified").
			WithHint("Pengajuan sudah diproses").
			WithReportableDetails(map[string]interface{}{
				"id":     p.ID,
				"status": current.RenewalStatus,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyPayment(p))
}
