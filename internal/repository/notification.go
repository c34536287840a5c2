package repository

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/domain/notification"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/types"
	"gorm.io/gorm"
)

type notificationLogRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewNotificationLogRepository creates a postgres-backed delivery log repository
func NewNotificationLogRepository(db *gorm.DB, log *logger.Logger) notification.LogRepository {
	return &notificationLogRepository{db: db, log: log}
}

func (r *notificationLogRepository) Append(ctx context.Context, l *notification.Log) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return dbError(err, map[string]interface{}{"order_id": l.OrderID})
	}
	return nil
}

func (r *notificationLogRepository) List(ctx context.Context) ([]*notification.Log, error) {
	var logs []*notification.Log
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", types.GetTenantID(ctx)).
		Order("sent_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, dbError(err, nil)
	}
	return logs, nil
}
