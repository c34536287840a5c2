package testutil

import (
	"context"
	"sync"

	"github.com/lordbyaku/lbpos/internal/domain/order"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// InMemoryOrderStore implements order.Repository
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]

	vouchers *InMemoryVoucherStore

	mu      sync.Mutex
	history []*order.StatusHistory
}

// NewInMemoryOrderStore creates a new in-memory order store. The voucher
// store backs the redemption half of CreateWithItems.
func NewInMemoryOrderStore(vouchers *InMemoryVoucherStore) *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
		vouchers:      vouchers,
	}
}

func copyOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	copied := *o
	if o.Items != nil {
		copied.Items = make([]*order.LineItem, len(o.Items))
		for i, it := range o.Items {
			item := *it
			copied.Items[i] = &item
		}
	}
	return &copied
}

func (s *InMemoryOrderStore) CreateWithItems(ctx context.Context, o *order.Order, items []*order.LineItem, voucherID string) error {
	if o == nil {
		return ierr.NewError("order cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if voucherID != "" {
		if err := s.vouchers.incrementRedemptions(ctx, voucherID); err != nil {
			return err
		}
	}
	stored := copyOrder(o)
	stored.Items = items
	stored = copyOrder(stored)
	if err := s.InMemoryStore.Create(ctx, o.ID, stored); err != nil {
		if voucherID != "" {
			// Undo the bump so the unit behaves atomically.
			s.vouchers.releaseRedemption(ctx, voucherID)
		}
		return err
	}
	return nil
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("order not found").
			WithHint("Pesanan tidak ditemukan").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyOrder(o), nil
}

func (s *InMemoryOrderStore) GetByCode(ctx context.Context, code string) (*order.Order, error) {
	tenantID := types.GetTenantID(ctx)
	rows, _ := s.InMemoryStore.List(ctx,
		func(_ context.Context, o *order.Order) bool {
			return o.TenantID == tenantID && o.Code == code
		}, nil)
	if len(rows) == 0 {
		return nil, ierr.NewError("order not found").
			WithHint("Pesanan tidak ditemukan").
			WithReportableDetails(map[string]interface{}{"code": code}).
			Mark(ierr.ErrNotFound)
	}
	return copyOrder(rows[0]), nil
}

func orderFilterFn(filter *order.Filter) func(ctx context.Context, o *order.Order) bool {
	return func(ctx context.Context, o *order.Order) bool {
		if o.TenantID != types.GetTenantID(ctx) {
			return false
		}
		if filter == nil {
			return true
		}
		if filter.OrderStatus != "" && o.OrderStatus != filter.OrderStatus {
			return false
		}
		if filter.PaymentState != "" && o.PaymentState != filter.PaymentState {
			return false
		}
		if filter.CustomerID != "" && o.CustomerID != filter.CustomerID {
			return false
		}
		return true
	}
}

func (s *InMemoryOrderStore) List(ctx context.Context, filter *order.Filter) ([]*order.Order, error) {
	rows, _ := s.InMemoryStore.List(ctx, orderFilterFn(filter),
		func(a, b *order.Order) bool {
			return a.CreatedAt.After(b.CreatedAt)
		})

	if filter != nil && filter.QueryFilter != nil {
		offset := filter.QueryFilter.GetOffset()
		limit := filter.QueryFilter.GetLimit()
		if offset > len(rows) {
			offset = len(rows)
		}
		rows = rows[offset:]
		if limit < len(rows) {
			rows = rows[:limit]
		}
	}

	copied := make([]*order.Order, len(rows))
	for i, o := range rows {
		copied[i] = copyOrder(o)
	}
	return copied, nil
}

func (s *InMemoryOrderStore) Count(ctx context.Context, filter *order.Filter) (int, error) {
	rows, _ := s.InMemoryStore.List(ctx, orderFilterFn(filter), nil)
	return len(rows), nil
}

func (s *InMemoryOrderStore) Update(ctx context.Context, o *order.Order) error {
	if o == nil {
		return ierr.NewError("order cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, o.ID, copyOrder(o))
}

func (s *InMemoryOrderStore) TransitionStatus(ctx context.Context, id string, expected, next types.OrderStatus, note string) (*order.Order, error) {
	// The conditional check and the write happen under one lock so two
	// racing transitions cannot both observe the expected stage.
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.OrderStatus != expected {
		return nil, ierr.NewError("order status changed concurrently").
			WithHint("Status pesanan sudah berubah, muat ulang halaman").
			WithReportableDetails(map[string]interface{}{
				"order_id": id,
				"expected": expected,
				"actual":   o.OrderStatus,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	o.OrderStatus = next
	if err := s.InMemoryStore.Update(ctx, o.ID, copyOrder(o)); err != nil {
		return nil, err
	}
	s.history = append(s.history, order.NewHistoryEntry(o.TenantID, o.ID, expected, next, note))
	return copyOrder(o), nil
}

func (s *InMemoryOrderStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

// Clear removes all orders and history
func (s *InMemoryOrderStore) Clear() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
	s.InMemoryStore.Clear()
}

func (s *InMemoryOrderStore) ListHistory(ctx context.Context, orderID string) ([]*order.StatusHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []*order.StatusHistory
	for _, h := range s.history {
		if h.OrderID == orderID {
			entry := *h
			entries = append(entries, &entry)
		}
	}
	return entries, nil
}
