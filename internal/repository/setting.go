package repository

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/domain/tenant"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewSettingRepository creates a postgres-backed tenant settings repository
func NewSettingRepository(db *gorm.DB, log *logger.Logger) tenant.SettingRepository {
	return &settingRepository{db: db, log: log}
}

func (r *settingRepository) GetSetting(ctx context.Context, key string) (*tenant.Setting, error) {
	var s tenant.Setting
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND key = ?", types.GetTenantID(ctx), key).
		First(&s).Error
	if err != nil {
		return nil, notFound(err, "setting not found", "Pengaturan tidak ditemukan",
			map[string]interface{}{"key": key})
	}
	return &s, nil
}

func (r *settingRepository) SetSetting(ctx context.Context, s *tenant.Setting) error {
	if s.TenantID == "" {
		s.TenantID = types.GetTenantID(ctx)
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "updated_by"}),
		}).
		Create(s).Error
	if err != nil {
		return dbError(err, map[string]interface{}{"key": s.Key})
	}
	return nil
}
