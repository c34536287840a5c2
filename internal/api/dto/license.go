package dto

import (
	"time"

	"github.com/lordbyaku/lbpos/internal/domain/license"
	"github.com/lordbyaku/lbpos/internal/types"
)

// EntitlementResponse is the computed entitlement verdict for a tenant.
type EntitlementResponse struct {
	Verdict  types.Verdict `json:"verdict"`
	Label    string        `json:"label"`
	CanWrite bool          `json:"can_write"`
	CanRead  bool          `json:"can_read"`

	// License is the active license backing the verdict; nil when expired
	// because no active row exists.
	License *LicenseResponse `json:"license,omitempty"`
}

// NewEntitlementResponse builds the verdict payload.
func NewEntitlementResponse(verdict types.Verdict, lic *license.License) *EntitlementResponse {
	resp := &EntitlementResponse{
		Verdict:  verdict,
		Label:    verdict.Label(),
		CanWrite: verdict.CanWrite(),
		CanRead:  verdict.CanRead(),
	}
	if lic != nil {
		resp.License = NewLicenseResponse(lic)
	}
	return resp
}

// LicenseResponse is a license row in API responses.
type LicenseResponse struct {
	ID         string            `json:"id"`
	Package    types.PackageKind `json:"package"`
	StartAt    time.Time         `json:"start_at"`
	EndAt      time.Time         `json:"end_at"`
	GraceDays  int               `json:"grace_days"`
	GraceEndAt time.Time         `json:"grace_end_at"`
	IsActive   bool              `json:"is_active"`
}

// NewLicenseResponse maps a domain license.
func NewLicenseResponse(l *license.License) *LicenseResponse {
	return &LicenseResponse{
		ID:         l.ID,
		Package:    l.Package,
		StartAt:    l.StartAt,
		EndAt:      l.EndAt,
		GraceDays:  l.GraceDays,
		GraceEndAt: l.GraceEndAt(),
		IsActive:   l.IsActive,
	}
}
