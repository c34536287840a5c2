package voucher

import (
	"testing"
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name       string
		vtype      types.VoucherType
		value      int64
		subtotal   int64
		discount   int64
		finalTotal int64
	}{
		{
			name:       "fixed amount",
			vtype:      types.VoucherTypeFixed,
			value:      10000,
			subtotal:   50000,
			discount:   10000,
			finalTotal: 40000,
		},
		{
			name:       "fixed capped at subtotal",
			vtype:      types.VoucherTypeFixed,
			value:      100000,
			subtotal:   20000,
			discount:   20000,
			finalTotal: 0,
		},
		{
			name:       "percent of round subtotal",
			vtype:      types.VoucherTypePercent,
			value:      10,
			subtotal:   50000,
			discount:   5000,
			finalTotal: 45000,
		},
		{
			name:       "percent rounds to whole rupiah",
			vtype:      types.VoucherTypePercent,
			value:      15,
			subtotal:   33333,
			discount:   5000,
			finalTotal: 28333,
		},
		{
			name:       "hundred percent",
			vtype:      types.VoucherTypePercent,
			value:      100,
			subtotal:   25000,
			discount:   25000,
			finalTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Voucher{Type: tt.vtype, Value: decimal.NewFromInt(tt.value)}
			result := v.ApplyDiscount(decimal.NewFromInt(tt.subtotal))
			assert.True(t, result.Discount.Equal(decimal.NewFromInt(tt.discount)),
				"discount: got %s", result.Discount)
			assert.True(t, result.FinalTotal.Equal(decimal.NewFromInt(tt.finalTotal)),
				"final total: got %s", result.FinalTotal)
		})
	}
}

func TestIsRedeemableAt(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	one := 1

	assert.True(t, (&Voucher{IsActive: true}).IsRedeemableAt(now))
	assert.True(t, (&Voucher{IsActive: true, ExpiresAt: &future}).IsRedeemableAt(now))
	assert.False(t, (&Voucher{IsActive: false}).IsRedeemableAt(now))
	assert.False(t, (&Voucher{IsActive: true, ExpiresAt: &past}).IsRedeemableAt(now))
	assert.False(t, (&Voucher{IsActive: true, MaxRedemptions: &one, TotalRedemptions: 1}).IsRedeemableAt(now))
}

func TestMeetsMinOrder(t *testing.T) {
	v := &Voucher{MinOrderIDR: decimal.NewFromInt(50000)}
	assert.False(t, v.MeetsMinOrder(decimal.NewFromInt(49999)))
	assert.True(t, v.MeetsMinOrder(decimal.NewFromInt(50000)))
	assert.True(t, v.MeetsMinOrder(decimal.NewFromInt(50001)))
}
