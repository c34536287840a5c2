package repository

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/domain/payment"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/types"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPaymentRepository creates a postgres-backed renewal payment repository
func NewPaymentRepository(db *gorm.DB, log *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, log: log}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return dbError(err, map[string]interface{}{"payment_id": p.ID})
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, notFound(err, "payment not found", "Pengajuan pembayaran tidak ditemukan",
			map[string]interface{}{"id": id})
	}
	return &p, nil
}

func (r *paymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, dbError(err, map[string]interface{}{"tenant_id": tenantID})
	}
	return payments, nil
}

func (r *paymentRepository) ListByStatus(ctx context.Context, status types.RenewalStatus) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	err := r.db.WithContext(ctx).
		Where("renewal_status = ?", status).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, dbError(err, map[string]interface{}{"status": status})
	}
	return payments, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, p *payment.Payment) error {
	// Conditional on the row still being pending: approval and rejection
	// are both terminal, whichever lands first wins.
	res := r.db.WithContext(ctx).
		Model(&payment.Payment{}).
		Where("id = ? AND renewal_status = ?", p.ID, types.RenewalStatusPending).
		Select("renewal_status", "notes", "paid_at", "updated_at", "updated_by").
		Updates(p)
	if res.Error != nil {
		return dbError(res.Error, map[string]interface{}{"payment_id": p.ID})
	}
	if res.RowsAffected == 0 {
		return ierr.NewError("payment already verified").
			WithHint("Pengajuan sudah diproses").
			WithReportableDetails(map[string]interface{}{"payment_id": p.ID}).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}
