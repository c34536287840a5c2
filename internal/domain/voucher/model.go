// Package voucher holds the discount voucher domain model and the discount
// computation applied at checkout.
package voucher

import (
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
)

// Voucher is a tenant-scoped discount code.
type Voucher struct {
	// ID uniquely identifies this voucher
	ID string `json:"id" gorm:"column:id;primaryKey"`

	// Code is the uppercase code entered at the counter
	Code string `json:"code" gorm:"column:code;index"`

	// Type decides whether Value is a fixed IDR amount or a percentage
	Type types.VoucherType `json:"type" gorm:"column:type;type:varchar(10)"`

	// Value is the fixed amount or the percentage, per Type
	Value decimal.Decimal `json:"value" gorm:"column:value;type:numeric(14,2)"`

	// MinOrderIDR is the cart subtotal threshold for the voucher to apply
	MinOrderIDR decimal.Decimal `json:"min_order_idr" gorm:"column:min_order_idr;type:numeric(14,0)"`

	// MaxRedemptions caps total uses; nil means unlimited
	MaxRedemptions *int `json:"max_redemptions,omitempty" gorm:"column:max_redemptions"`

	// TotalRedemptions counts successful uses
	TotalRedemptions int `json:"total_redemptions" gorm:"column:total_redemptions;default:0"`

	// ExpiresAt is the optional expiry instant
	ExpiresAt *time.Time `json:"expires_at,omitempty" gorm:"column:expires_at"`

	// IsActive allows disabling a voucher without deleting it
	IsActive bool `json:"is_active" gorm:"column:is_active"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (Voucher) TableName() string {
	return "vouchers"
}

// DiscountResult is the outcome of applying a voucher to a cart subtotal.
type DiscountResult struct {
	Discount   decimal.Decimal
	FinalTotal decimal.Decimal
}

// IsRedeemableAt reports whether the voucher can still be redeemed at the
// given instant: active, not expired, quota remaining.
func (v *Voucher) IsRedeemableAt(now time.Time) bool {
	if !v.IsActive {
		return false
	}
	if v.ExpiresAt != nil && now.After(*v.ExpiresAt) {
		return false
	}
	if v.MaxRedemptions != nil && v.TotalRedemptions >= *v.MaxRedemptions {
		return false
	}
	return true
}

// MeetsMinOrder reports whether the cart subtotal reaches the voucher's
// minimum order threshold.
func (v *Voucher) MeetsMinOrder(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(v.MinOrderIDR)
}

// ApplyDiscount computes the discount for a cart subtotal. Percentage
// discounts are rounded to whole rupiah at the source; the discount never
// exceeds the subtotal.
func (v *Voucher) ApplyDiscount(subtotal decimal.Decimal) DiscountResult {
	var discount decimal.Decimal
	switch v.Type {
	case types.VoucherTypePercent:
		discount = subtotal.Mul(v.Value).Div(decimal.NewFromInt(100)).Round(0)
	default:
		discount = v.Value.Round(0)
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return DiscountResult{
		Discount:   discount,
		FinalTotal: subtotal.Sub(discount),
	}
}
