package repository

import (
	"context"
	"strings"

	"github.com/lordbyaku/lbpos/internal/domain/voucher"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/types"
	"gorm.io/gorm"
)

type voucherRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewVoucherRepository creates a postgres-backed voucher repository
func NewVoucherRepository(db *gorm.DB, log *logger.Logger) voucher.Repository {
	return &voucherRepository{db: db, log: log}
}

func (r *voucherRepository) Create(ctx context.Context, v *voucher.Voucher) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return dbError(err, map[string]interface{}{"code": v.Code})
	}
	return nil
}

func (r *voucherRepository) Get(ctx context.Context, id string) (*voucher.Voucher, error) {
	var v voucher.Voucher
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, types.GetTenantID(ctx)).
		First(&v).Error
	if err != nil {
		return nil, notFound(err, "voucher not found", "Voucher tidak ditemukan",
			map[string]interface{}{"id": id})
	}
	return &v, nil
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	var v voucher.Voucher
	err := r.db.WithContext(ctx).
		Where("code = ? AND tenant_id = ?", strings.ToUpper(code), types.GetTenantID(ctx)).
		First(&v).Error
	if err != nil {
		return nil, notFound(err, "voucher not found", "Voucher tidak ditemukan",
			map[string]interface{}{"code": code})
	}
	return &v, nil
}

func (r *voucherRepository) Update(ctx context.Context, v *voucher.Voucher) error {
	err := r.db.WithContext(ctx).
		Model(&voucher.Voucher{}).
		Where("id = ? AND tenant_id = ?", v.ID, v.TenantID).
		Select("is_active", "value", "min_order_idr", "max_redemptions", "expires_at", "updated_at", "updated_by").
		Updates(v).Error
	if err != nil {
		return dbError(err, map[string]interface{}{"voucher_id": v.ID})
	}
	return nil
}

func (r *voucherRepository) List(ctx context.Context) ([]*voucher.Voucher, error) {
	var vouchers []*voucher.Voucher
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", types.GetTenantID(ctx)).
		Order("created_at DESC").
		Find(&vouchers).Error
	if err != nil {
		return nil, dbError(err, nil)
	}
	return vouchers, nil
}

func (r *voucherRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, types.GetTenantID(ctx)).
		Delete(&voucher.Voucher{})
	if res.Error != nil {
		return dbError(res.Error, map[string]interface{}{"voucher_id": id})
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "voucher not found", "Voucher tidak ditemukan",
			map[string]interface{}{"id": id})
	}
	return nil
}
