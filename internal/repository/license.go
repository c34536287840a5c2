package repository

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/domain/license"
	"github.com/lordbyaku/lbpos/internal/logger"
	"gorm.io/gorm"
)

type licenseRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewLicenseRepository creates a postgres-backed license repository
func NewLicenseRepository(db *gorm.DB, log *logger.Logger) license.Repository {
	return &licenseRepository{db: db, log: log}
}

func (r *licenseRepository) Create(ctx context.Context, l *license.License) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return dbError(err, map[string]interface{}{"license_id": l.ID})
	}
	return nil
}

func (r *licenseRepository) GetCurrentActive(ctx context.Context, tenantID string) (*license.License, error) {
	var l license.License
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("end_at DESC").
		First(&l).Error
	if err != nil {
		return nil, notFound(err, "no active license", "Tenant belum memiliki lisensi aktif",
			map[string]interface{}{"tenant_id": tenantID})
	}
	return &l, nil
}

func (r *licenseRepository) ListByTenant(ctx context.Context, tenantID string) ([]*license.License, error) {
	var licenses []*license.License
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&licenses).Error
	if err != nil {
		return nil, dbError(err, map[string]interface{}{"tenant_id": tenantID})
	}
	return licenses, nil
}

func (r *licenseRepository) Supersede(ctx context.Context, tenantID string, replacement *license.License) error {
	// One transaction: a concurrent entitlement read sees either the old
	// active row or the new one, never a window with none.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&license.License{}).
			Where("tenant_id = ? AND is_active = ?", tenantID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		replacement.IsActive = true
		return tx.Create(replacement).Error
	})
	if err != nil {
		return dbError(err, map[string]interface{}{
			"tenant_id":  tenantID,
			"license_id": replacement.ID,
		})
	}
	return nil
}
