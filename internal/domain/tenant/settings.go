// Package tenant holds the per-tenant settings store: notification message
// templates and feature toggles keyed by well-known setting names.
package tenant

import (
	"encoding/json"
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
)

// Well-known setting keys.
const (
	SettingWATemplates    = "wa_templates"
	SettingFeatureWA      = "feature_wa"
	SettingFeatureVoucher = "feature_voucher"
)

// Setting is one (tenant, key) -> JSON value row.
type Setting struct {
	ID    string          `json:"id" gorm:"column:id;primaryKey"`
	Key   string          `json:"key" gorm:"column:key;index"`
	Value json.RawMessage `json:"value" gorm:"column:value;type:jsonb"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (Setting) TableName() string {
	return "tenant_settings"
}

// NewSetting constructs a setting row for a tenant.
func NewSetting(tenantID, key string, value json.RawMessage) *Setting {
	now := time.Now().UTC()
	return &Setting{
		ID:    types.GenerateUUIDWithPrefix(types.UUIDPrefixSetting),
		Key:   key,
		Value: value,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// BoolValue interprets the setting as a boolean toggle. Missing or malformed
// values fall back to the provided default.
func (s *Setting) BoolValue(def bool) bool {
	if s == nil || len(s.Value) == 0 {
		return def
	}
	var b bool
	if err := json.Unmarshal(s.Value, &b); err != nil {
		return def
	}
	return b
}

// TemplateMap interprets the setting as a status -> template mapping.
func (s *Setting) TemplateMap() map[string]string {
	if s == nil || len(s.Value) == 0 {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(s.Value, &m); err != nil {
		return nil
	}
	return m
}
