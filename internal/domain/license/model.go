// Package license holds the license domain model. A tenant's entitlement is
// derived from its single active license row; superseded rows are kept
// deactivated for history and never mutated again.
package license

import (
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
)

// License is one validity period granted to a tenant. At most one row per
// tenant has IsActive=true at any moment; renewals deactivate all prior rows
// before inserting the replacement.
type License struct {
	// ID uniquely identifies this license row
	ID string `json:"id" gorm:"column:id;primaryKey"`

	// Package is the kind bought on the renewal that produced this row
	Package types.PackageKind `json:"package" gorm:"column:package;type:varchar(20)"`

	// StartAt is when the validity period begins. On a stacked renewal this
	// is the previous license's EndAt, not the approval time.
	StartAt time.Time `json:"start_at" gorm:"column:start_at"`

	// EndAt is when the validity period ends
	EndAt time.Time `json:"end_at" gorm:"column:end_at"`

	// GraceDays is the read-only window length after EndAt
	GraceDays int `json:"grace_days" gorm:"column:grace_days"`

	// IsActive marks the tenant's current license row
	IsActive bool `json:"is_active" gorm:"column:is_active;index"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (License) TableName() string {
	return "licenses"
}

// GraceEndAt returns the instant the grace window closes.
func (l *License) GraceEndAt() time.Time {
	return l.EndAt.Add(time.Duration(l.GraceDays) * 24 * time.Hour)
}

// VerdictAt computes the entitlement verdict for this license at the given
// instant. Callers that found no active license must use VerdictExpired
// directly; absence never grants access.
func (l *License) VerdictAt(now time.Time) types.Verdict {
	if !now.After(l.EndAt) {
		return types.VerdictActive
	}
	if !now.After(l.GraceEndAt()) {
		return types.VerdictGrace
	}
	return types.VerdictExpired
}

// New constructs a license row for a tenant covering [startAt, endAt).
func New(tenantID string, pkg types.PackageKind, startAt, endAt time.Time) *License {
	return &License{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixLicense),
		Package:   pkg,
		StartAt:   startAt,
		EndAt:     endAt,
		GraceDays: types.DefaultGraceDays,
		IsActive:  true,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		},
	}
}
