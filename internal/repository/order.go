package repository

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/domain/order"
	"github.com/lordbyaku/lbpos/internal/domain/voucher"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/types"
	"gorm.io/gorm"
)

type orderRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewOrderRepository creates a postgres-backed order repository
func NewOrderRepository(db *gorm.DB, log *logger.Logger) order.Repository {
	return &orderRepository{db: db, log: log}
}

func (r *orderRepository) CreateWithItems(ctx context.Context, o *order.Order, items []*order.LineItem, voucherID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if voucherID != "" {
			// The quota guard lives in the WHERE clause; a failed insert
			// below rolls the redemption back with the rest of the unit.
			res := tx.Model(&voucher.Voucher{}).
				Where("id = ? AND (max_redemptions IS NULL OR total_redemptions < max_redemptions)", voucherID).
				Update("total_redemptions", gorm.Expr("total_redemptions + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ierr.NewError("voucher quota exhausted").
					WithHint("Kuota voucher sudah habis").
					WithReportableDetails(map[string]interface{}{"voucher_id": voucherID}).
					Mark(ierr.ErrAlreadyExists)
			}
		}
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if ierr.IsAlreadyExists(err) {
			return err
		}
		return dbError(err, map[string]interface{}{
			"order_id":   o.ID,
			"order_code": o.Code,
		})
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND tenant_id = ?", id, types.GetTenantID(ctx)).
		First(&o).Error
	if err != nil {
		return nil, notFound(err, "order not found", "Pesanan tidak ditemukan",
			map[string]interface{}{"id": id})
	}
	return &o, nil
}

func (r *orderRepository) GetByCode(ctx context.Context, code string) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("code = ? AND tenant_id = ?", code, types.GetTenantID(ctx)).
		First(&o).Error
	if err != nil {
		return nil, notFound(err, "order not found", "Pesanan tidak ditemukan",
			map[string]interface{}{"code": code})
	}
	return &o, nil
}

func (r *orderRepository) buildFilterQuery(ctx context.Context, filter *order.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("tenant_id = ?", types.GetTenantID(ctx))
	if filter == nil {
		return q
	}
	if filter.OrderStatus != "" {
		q = q.Where("order_status = ?", filter.OrderStatus)
	}
	if filter.PaymentState != "" {
		q = q.Where("payment_state = ?", filter.PaymentState)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	return q
}

func (r *orderRepository) List(ctx context.Context, filter *order.Filter) ([]*order.Order, error) {
	q := r.buildFilterQuery(ctx, filter).Preload("Items").Order("created_at DESC")
	if filter != nil && filter.QueryFilter != nil {
		q = q.Limit(filter.QueryFilter.GetLimit()).Offset(filter.QueryFilter.GetOffset())
	}

	var orders []*order.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, dbError(err, nil)
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, filter *order.Filter) (int, error) {
	var count int64
	if err := r.buildFilterQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, dbError(err, nil)
	}
	return int(count), nil
}

func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND tenant_id = ?", o.ID, o.TenantID).
		Select("payment_state", "payment_method", "paid_idr", "note", "updated_at", "updated_by").
		Updates(o).Error
	if err != nil {
		return dbError(err, map[string]interface{}{"order_id": o.ID})
	}
	return nil
}

func (r *orderRepository) TransitionStatus(ctx context.Context, id string, expected, next types.OrderStatus, note string) (*order.Order, error) {
	var updated *order.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional on the stage still being the one the caller saw;
		// zero rows means another writer advanced the order first.
		res := tx.Model(&order.Order{}).
			Where("id = ? AND tenant_id = ? AND order_status = ?", id, types.GetTenantID(ctx), expected).
			Update("order_status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ierr.NewError("order status changed concurrently").
				WithHint("Status pesanan sudah berubah, muat ulang halaman").
				WithReportableDetails(map[string]interface{}{
					"order_id": id,
					"expected": expected,
				}).
				Mark(ierr.ErrAlreadyExists)
		}

		var o order.Order
		if err := tx.Preload("Items").Where("id = ?", id).First(&o).Error; err != nil {
			return err
		}
		updated = &o

		return tx.Create(order.NewHistoryEntry(o.TenantID, o.ID, expected, next, note)).Error
	})
	if err != nil {
		if ierr.IsAlreadyExists(err) {
			return nil, err
		}
		return nil, dbError(err, map[string]interface{}{"order_id": id})
	}
	return updated, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.LineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&order.StatusHistory{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND tenant_id = ?", id, types.GetTenantID(ctx)).Delete(&order.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return notFound(err, "order not found", "Pesanan tidak ditemukan",
			map[string]interface{}{"id": id})
	}
	return nil
}

func (r *orderRepository) ListHistory(ctx context.Context, orderID string) ([]*order.StatusHistory, error) {
	var entries []*order.StatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("changed_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, dbError(err, map[string]interface{}{"order_id": orderID})
	}
	return entries, nil
}
