// Package auditlog holds the append-only audit trail written alongside
// order creation/deletion and license approval decisions.
package auditlog

import (
	"encoding/json"
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
)

// Entry is one audit record. Entries are append-only.
type Entry struct {
	ID       string            `json:"id" gorm:"column:id;primaryKey"`
	UserID   string            `json:"user_id" gorm:"column:user_id;index"`
	Action   types.AuditAction `json:"action" gorm:"column:action;type:varchar(30);index"`
	Entity   types.AuditEntity `json:"entity" gorm:"column:entity;type:varchar(30)"`
	EntityID string            `json:"entity_id" gorm:"column:entity_id;index"`
	OldData  json.RawMessage   `json:"old_data,omitempty" gorm:"column:old_data;type:jsonb"`
	NewData  json.RawMessage   `json:"new_data,omitempty" gorm:"column:new_data;type:jsonb"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (Entry) TableName() string {
	return "audit_logs"
}

// NewEntry constructs an audit record for the acting user in context.
func NewEntry(tenantID, userID string, action types.AuditAction, entity types.AuditEntity, entityID string) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:       types.GenerateUUIDWithPrefix(types.UUIDPrefixAuditLog),
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithOldData attaches the before snapshot.
func (e *Entry) WithOldData(v interface{}) *Entry {
	if raw, err := json.Marshal(v); err == nil {
		e.OldData = raw
	}
	return e
}

// WithNewData attaches the after snapshot.
func (e *Entry) WithNewData(v interface{}) *Entry {
	if raw, err := json.Marshal(v); err == nil {
		e.NewData = raw
	}
	return e
}
