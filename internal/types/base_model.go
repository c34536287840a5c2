package types

import (
	"context"
	"time"
)

// Status is the lifecycle status common to most rows.
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
	StatusArchived  Status = "archived"
)

// BaseModel holds the fields shared by every persisted entity. Embed it in
// domain models so tenant scoping and audit columns stay uniform.
type BaseModel struct {
	TenantID  string    `json:"tenant_id" gorm:"column:tenant_id;index;not null"`
	Status    Status    `json:"status" gorm:"column:status;type:varchar(20);default:'published'"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	CreatedBy string    `json:"created_by" gorm:"column:created_by"`
	UpdatedBy string    `json:"updated_by" gorm:"column:updated_by"`
}

// GetDefaultBaseModel returns a BaseModel populated from the context.
func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		TenantID:  GetTenantID(ctx),
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: GetUserID(ctx),
		UpdatedBy: GetUserID(ctx),
	}
}
