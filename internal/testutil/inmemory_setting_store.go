package testutil

import (
	"context"
	"sync"

	"github.com/lordbyaku/lbpos/internal/domain/tenant"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// InMemorySettingStore implements tenant.SettingRepository
type InMemorySettingStore struct {
	mu       sync.RWMutex
	settings map[string]*tenant.Setting
}

// NewInMemorySettingStore creates a new in-memory tenant settings store
func NewInMemorySettingStore() *InMemorySettingStore {
	return &InMemorySettingStore{
		settings: make(map[string]*tenant.Setting),
	}
}

func settingKey(tenantID, key string) string {
	return tenantID + "/" + key
}

func (s *InMemorySettingStore) GetSetting(ctx context.Context, key string) (*tenant.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	setting, ok := s.settings[settingKey(types.GetTenantID(ctx), key)]
	if !ok {
		return nil, ierr.NewError("setting not found").
			WithReportableDetails(map[string]interface{}{"key": key}).
			Mark(ierr.ErrNotFound)
	}
	copied := *setting
	return &copied, nil
}

func (s *InMemorySettingStore) SetSetting(ctx context.Context, setting *tenant.Setting) error {
	if setting == nil {
		return ierr.NewError("setting cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *setting
	if copied.TenantID == "" {
		copied.TenantID = types.GetTenantID(ctx)
	}
	s.settings[settingKey(copied.TenantID, copied.Key)] = &copied
	return nil
}

// Clear removes all settings
func (s *InMemorySettingStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = make(map[string]*tenant.Setting)
}
