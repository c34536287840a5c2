package dto

import (
	"strings"
	"time"

	"github.com/lordbyaku/lbpos/internal/domain/voucher"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
)

// CreateVoucherRequest creates a discount voucher.
type CreateVoucherRequest struct {
	Code           string            `json:"code" validate:"required"`
	Type           types.VoucherType `json:"type" validate:"required"`
	Value          decimal.Decimal   `json:"value" validate:"required"`
	MinOrderIDR    decimal.Decimal   `json:"min_order_idr"`
	MaxRedemptions *int              `json:"max_redemptions,omitempty"`
	ExpiresAt      *time.Time        `json:"expires_at,omitempty"`
}

// Validate checks the voucher payload.
func (r CreateVoucherRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return ierr.NewError("voucher code is required").
			WithHint("Kode voucher wajib diisi").
			Mark(ierr.ErrValidation)
	}
	if !r.Type.IsValid() {
		return ierr.NewError("invalid voucher type").
			WithHint("Tipe potongan harus tetap atau persen").
			Mark(ierr.ErrValidation)
	}
	if r.Value.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("voucher value must be positive").
			WithHint("Nilai voucher tidak valid").
			Mark(ierr.ErrValidation)
	}
	if r.Type == types.VoucherTypePercent && r.Value.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("percentage voucher cannot exceed 100").
			WithHint("Persen potongan maksimal 100").
			Mark(ierr.ErrValidation)
	}
	if r.MinOrderIDR.IsNegative() {
		return ierr.NewError("min order must not be negative").
			WithHint("Minimal order tidak valid").
			Mark(ierr.ErrValidation)
	}
	if r.MaxRedemptions != nil && *r.MaxRedemptions < 1 {
		return ierr.NewError("max redemptions must be positive").
			WithHint("Kuota voucher tidak valid").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToVoucher builds the domain voucher.
func (r CreateVoucherRequest) ToVoucher(tenantID string) *voucher.Voucher {
	now := time.Now().UTC()
	return &voucher.Voucher{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixVoucher),
		Code:           strings.ToUpper(strings.TrimSpace(r.Code)),
		Type:           r.Type,
		Value:          r.Value,
		MinOrderIDR:    r.MinOrderIDR.Round(0),
		MaxRedemptions: r.MaxRedemptions,
		ExpiresAt:      r.ExpiresAt,
		IsActive:       true,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateVoucherRequest edits a voucher.
type UpdateVoucherRequest struct {
	IsActive       *bool            `json:"is_active,omitempty"`
	Value          *decimal.Decimal `json:"value,omitempty"`
	MinOrderIDR    *decimal.Decimal `json:"min_order_idr,omitempty"`
	MaxRedemptions *int             `json:"max_redemptions,omitempty"`
	ExpiresAt      *time.Time       `json:"expires_at,omitempty"`
}

// CheckVoucherRequest validates a voucher against a cart subtotal before
// checkout.
type CheckVoucherRequest struct {
	Code        string          `json:"code" validate:"required"`
	SubtotalIDR decimal.Decimal `json:"subtotal_idr" validate:"required"`
}

// DiscountResponse is the computed discount for a valid voucher.
type DiscountResponse struct {
	Code       string          `json:"code"`
	Discount   decimal.Decimal `json:"discount"`
	FinalTotal decimal.Decimal `json:"final_total"`
}

// VoucherResponse is a voucher in API responses.
type VoucherResponse struct {
	*voucher.Voucher
}

// NewVoucherResponse wraps a domain voucher.
func NewVoucherResponse(v *voucher.Voucher) *VoucherResponse {
	return &VoucherResponse{Voucher: v}
}

// ListVouchersResponse is the envelope for voucher listings.
type ListVouchersResponse struct {
	Items []*VoucherResponse `json:"items"`
	Total int                `json:"total"`
}
