package tenant

import (
	"context"
)

// SettingRepository defines the interface for tenant settings persistence
type SettingRepository interface {
	// GetSetting retrieves the setting for the tenant in context. Returns
	// ErrNotFound when the tenant has not customized the key.
	GetSetting(ctx context.Context, key string) (*Setting, error)

	// SetSetting inserts or replaces the setting for the tenant in context
	SetSetting(ctx context.Context, s *Setting) error
}
