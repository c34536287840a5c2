package service

import (
	"context"
	"time"

	"github.com/lordbyaku/lbpos/internal/domain/license"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// EntitlementService computes the tenant's entitlement verdict from its
// current active license. The computation is a pure read: it never mutates
// state and it fails closed: absence of a license or a lookup error always
// yields expired, never access.
type EntitlementService interface {
	// Evaluate returns the tenant's verdict. The result may come from a
	// short-lived advisory cache; callers must not gate consequential
	// writes on it.
	Evaluate(ctx context.Context, tenantID string) types.Verdict

	// Authorize re-evaluates fresh (cache bypassed) and returns an
	// entitlement denied error unless the verdict permits writes.
	Authorize(ctx context.Context, tenantID string) error

	// CurrentLicense returns the tenant's active license row for display
	// (the license banner, the admin panel).
	CurrentLicense(ctx context.Context, tenantID string) (*license.License, error)
}

type entitlementService struct {
	ServiceParams
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(params ServiceParams) EntitlementService {
	return &entitlementService{ServiceParams: params}
}

func verdictCacheKey(tenantID string) string {
	return "entitlement:" + tenantID
}

func (s *entitlementService) Evaluate(ctx context.Context, tenantID string) types.Verdict {
	if s.VerdictCache != nil {
		if v, found := s.VerdictCache.Get(verdictCacheKey(tenantID)); found {
			if verdict, ok := v.(types.Verdict); ok {
				return verdict
			}
		}
	}
	return s.evaluateFresh(ctx, tenantID)
}

// evaluateFresh computes the verdict from the repository and refreshes the
// advisory cache.
func (s *entitlementService) evaluateFresh(ctx context.Context, tenantID string) types.Verdict {
	verdict := s.compute(ctx, tenantID)
	if s.VerdictCache != nil {
		ttl := time.Duration(s.Config.Cache.EntitlementTTLSeconds) * time.Second
		s.VerdictCache.Set(verdictCacheKey(tenantID), verdict, ttl)
	}
	return verdict
}

func (s *entitlementService) compute(ctx context.Context, tenantID string) types.Verdict {
	if tenantID == "" {
		return types.VerdictExpired
	}

	lic, err := s.LicenseRepo.GetCurrentActive(ctx, tenantID)
	if err != nil {
		// Fail closed: a missing row and an unreachable store both deny.
		if !ierr.IsNotFound(err) {
			s.Logger.WithContext(ctx).Errorw("license lookup failed, denying entitlement",
				"tenant_id", tenantID,
				"error", err)
		}
		return types.VerdictExpired
	}

	return lic.VerdictAt(time.Now().UTC())
}

func (s *entitlementService) Authorize(ctx context.Context, tenantID string) error {
	verdict := s.evaluateFresh(ctx, tenantID)
	if verdict.CanWrite() {
		return nil
	}

	return ierr.NewError("license does not permit writes").
		WithHintf("Lisensi berstatus %s. Perpanjang lisensi untuk melanjutkan.", verdict.Label()).
		WithReportableDetails(map[string]interface{}{
			"tenant_id": tenantID,
			"verdict":   verdict.String(),
		}).
		Mark(ierr.ErrEntitlementDenied)
}

func (s *entitlementService) CurrentLicense(ctx context.Context, tenantID string) (*license.License, error) {
	return s.LicenseRepo.GetCurrentActive(ctx, tenantID)
}

// invalidateVerdict drops the cached verdict after a license mutation.
func (s *ServiceParams) invalidateVerdict(tenantID string) {
	if s.VerdictCache != nil {
		s.VerdictCache.Delete(verdictCacheKey(tenantID))
	}
}
