// Package order holds the order domain model: the order row itself, its
// line items and the append-only status history.
package order

import (
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
)

// Order is one laundry order. Its status only ever advances forward through
// the fixed stage sequence; administrative edits of payment fields bypass
// the stage machine.
type Order struct {
	// ID uniquely identifies this order
	ID string `json:"id" gorm:"column:id;primaryKey"`

	// Code is the human readable order code, also the barcode value
	Code string `json:"code" gorm:"column:code;index"`

	// CustomerID references the customer the order belongs to
	CustomerID string `json:"customer_id" gorm:"column:customer_id;index"`

	// TotalIDR is the computed total: line item subtotals minus voucher discount
	TotalIDR decimal.Decimal `json:"total_idr" gorm:"column:total_idr;type:numeric(14,0)"`

	// OrderStatus is the current processing stage
	OrderStatus types.OrderStatus `json:"order_status" gorm:"column:order_status;type:varchar(20);index"`

	// PaymentState tracks how much of the total has been settled
	PaymentState types.PaymentState `json:"payment_state" gorm:"column:payment_state;type:varchar(20)"`

	// PaymentMethod is how the order was (or will be) paid
	PaymentMethod types.PaymentMethod `json:"payment_method" gorm:"column:payment_method;type:varchar(20)"`

	// PaidIDR is the amount received so far
	PaidIDR decimal.Decimal `json:"paid_idr" gorm:"column:paid_idr;type:numeric(14,0)"`

	// DownPaymentIDR is the advance payment taken at checkout
	DownPaymentIDR decimal.Decimal `json:"down_payment_idr" gorm:"column:down_payment_idr;type:numeric(14,0)"`

	// VoucherCode records the voucher applied at checkout, if any
	VoucherCode string `json:"voucher_code,omitempty" gorm:"column:voucher_code"`

	// DiscountIDR is the voucher discount applied to the subtotal
	DiscountIDR decimal.Decimal `json:"discount_idr" gorm:"column:discount_idr;type:numeric(14,0)"`

	// Note is free text entered at the counter
	Note string `json:"note,omitempty" gorm:"column:note;type:text"`

	Items []*LineItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (Order) TableName() string {
	return "orders"
}

// LineItem is one service line in an order's cart.
type LineItem struct {
	ID        string          `json:"id" gorm:"column:id;primaryKey"`
	OrderID   string          `json:"order_id" gorm:"column:order_id;index"`
	ServiceID string          `json:"service_id" gorm:"column:service_id"`
	Name      string          `json:"name" gorm:"column:name"`
	UnitIDR   decimal.Decimal `json:"unit_idr" gorm:"column:unit_idr;type:numeric(14,0)"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"column:quantity;type:numeric(10,2)"`
	Unit      string          `json:"unit" gorm:"column:unit"`
	SubtotalIDR decimal.Decimal `json:"subtotal_idr" gorm:"column:subtotal_idr;type:numeric(14,0)"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (LineItem) TableName() string {
	return "order_items"
}

// Subtotal sums the line item subtotals before any discount.
func Subtotal(items []*LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.SubtotalIDR)
	}
	return total
}

// New constructs an order at the initial stage.
func New(tenantID, customerID string) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixOrder),
		Code:           types.GenerateOrderCode(),
		CustomerID:     customerID,
		OrderStatus:    types.OrderStatusReceived,
		PaymentState:   types.PaymentStateUnpaid,
		TotalIDR:       decimal.Zero,
		PaidIDR:        decimal.Zero,
		DownPaymentIDR: decimal.Zero,
		DiscountIDR:    decimal.Zero,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
