package repository

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/domain/auditlog"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/types"
	"gorm.io/gorm"
)

type auditlogRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewAuditLogRepository creates a postgres-backed audit log repository
func NewAuditLogRepository(db *gorm.DB, log *logger.Logger) auditlog.Repository {
	return &auditlogRepository{db: db, log: log}
}

func (r *auditlogRepository) Append(ctx context.Context, e *auditlog.Entry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return dbError(err, map[string]interface{}{
			"action":    e.Action,
			"entity_id": e.EntityID,
		})
	}
	return nil
}

func (r *auditlogRepository) ListByEntity(ctx context.Context, entity string, entityID string) ([]*auditlog.Entry, error) {
	var entries []*auditlog.Entry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity = ? AND entity_id = ?", types.GetTenantID(ctx), entity, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, dbError(err, map[string]interface{}{"entity_id": entityID})
	}
	return entries, nil
}

func (r *auditlogRepository) List(ctx context.Context) ([]*auditlog.Entry, error) {
	var entries []*auditlog.Entry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", types.GetTenantID(ctx)).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, dbError(err, nil)
	}
	return entries, nil
}
