// Package payment holds the license renewal request model. A tenant asks to
// renew by creating a pending payment row; an admin verifies the transfer
// and either approves (which also stacks the new license) or rejects it.
package payment

import (
	"strings"
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
)

// Payment is one license renewal request. Once the status leaves pending
// verification the row is terminal; a later renewal creates a new row.
type Payment struct {
	// ID uniquely identifies this payment row
	ID string `json:"id" gorm:"column:id;primaryKey"`

	// AmountIDR is the package price the tenant claims to have transferred
	AmountIDR decimal.Decimal `json:"amount_idr" gorm:"column:amount_idr;type:numeric(14,0)"`

	// Method is how the tenant paid
	Method types.PaymentMethod `json:"method" gorm:"column:method;type:varchar(20)"`

	// Package is the structured package selection. Older rows created before
	// the field existed leave it empty; see PackageKind.
	Package types.PackageKind `json:"package" gorm:"column:package;type:varchar(20)"`

	// RenewalStatus is the verification state
	RenewalStatus types.RenewalStatus `json:"renewal_status" gorm:"column:renewal_status;type:varchar(30);index"`

	// Notes is free text entered by the tenant with the request
	Notes string `json:"notes,omitempty" gorm:"column:notes;type:text"`

	// PaidAt is set when an admin approves the payment
	PaidAt *time.Time `json:"paid_at,omitempty" gorm:"column:paid_at"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (Payment) TableName() string {
	return "payments"
}

// PackageKind resolves the package this payment buys. The structured field
// wins; for rows without one the legacy note-substring heuristic decides,
// defaulting to monthly.
func (p *Payment) PackageKind() types.PackageKind {
	if p.Package.IsValid() {
		return p.Package
	}
	if strings.Contains(strings.ToLower(p.Notes), string(types.PackageYearly)) {
		return types.PackageYearly
	}
	return types.PackageMonthly
}

// New constructs a pending renewal request.
func New(tenantID string, pkg types.PackageKind, amount decimal.Decimal, method types.PaymentMethod, notes string) *Payment {
	now := time.Now().UTC()
	return &Payment{
		ID:            types.GenerateUUIDWithPrefix(types.UUIDPrefixPayment),
		AmountIDR:     amount,
		Method:        method,
		Package:       pkg,
		RenewalStatus: types.RenewalStatusPending,
		Notes:         notes,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
