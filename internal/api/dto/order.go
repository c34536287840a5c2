package dto

import (
	"github.com/lordbyaku/lbpos/internal/domain/order"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
)

// CreateOrderItem is one cart line at checkout.
type CreateOrderItem struct {
	ServiceID string          `json:"service_id"`
	Name      string          `json:"name" validate:"required"`
	UnitIDR   decimal.Decimal `json:"unit_idr" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Unit      string          `json:"unit"`
}

// Subtotal computes the line subtotal in whole rupiah.
func (i CreateOrderItem) Subtotal() decimal.Decimal {
	return i.UnitIDR.Mul(i.Quantity).Round(0)
}

// CreateOrderRequest is the checkout payload. Either CustomerID or
// NewCustomer must be set.
type CreateOrderRequest struct {
	CustomerID  string                 `json:"customer_id,omitempty"`
	NewCustomer *CreateCustomerRequest `json:"new_customer,omitempty"`

	Items []CreateOrderItem `json:"items" validate:"required,min=1"`

	VoucherCode string `json:"voucher_code,omitempty"`

	PaymentState   types.PaymentState  `json:"payment_state"`
	PaymentMethod  types.PaymentMethod `json:"payment_method"`
	DownPaymentIDR decimal.Decimal     `json:"down_payment_idr"`
	Note           string              `json:"note,omitempty"`
}

// Validate checks the checkout payload.
func (r CreateOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return ierr.NewError("cart is empty").
			WithHint("Keranjang masih kosong").
			Mark(ierr.ErrValidation)
	}
	if r.CustomerID == "" && r.NewCustomer == nil {
		return ierr.NewError("customer is required").
			WithHint("Pilih pelanggan").
			Mark(ierr.ErrValidation)
	}
	if r.NewCustomer != nil {
		if err := r.NewCustomer.Validate(); err != nil {
			return err
		}
	}
	for _, it := range r.Items {
		if it.Name == "" {
			return ierr.NewError("item name is required").
				WithHint("Setiap item harus punya nama").
				Mark(ierr.ErrValidation)
		}
		if it.Quantity.LessThanOrEqual(decimal.Zero) {
			return ierr.NewError("item quantity must be positive").
				WithHint("Jumlah item tidak valid").
				WithReportableDetails(map[string]interface{}{"item": it.Name}).
				Mark(ierr.ErrValidation)
		}
		if it.UnitIDR.IsNegative() {
			return ierr.NewError("item unit price must not be negative").
				WithHint("Harga satuan tidak valid").
				WithReportableDetails(map[string]interface{}{"item": it.Name}).
				Mark(ierr.ErrValidation)
		}
	}
	if r.PaymentState != "" && !r.PaymentState.IsValid() {
		return ierr.NewError("invalid payment state").
			WithHint("Status pembayaran tidak dikenal").
			Mark(ierr.ErrValidation)
	}
	if r.DownPaymentIDR.IsNegative() {
		return ierr.NewError("down payment must not be negative").
			WithHint("Uang muka tidak valid").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TransitionOrderRequest asks for a stage transition to an explicit target.
type TransitionOrderRequest struct {
	TargetStatus types.OrderStatus `json:"target_status" validate:"required"`
	Note         string            `json:"note,omitempty"`
}

// Validate checks the transition payload.
func (r TransitionOrderRequest) Validate() error {
	if !r.TargetStatus.IsValid() {
		return ierr.NewError("invalid target status").
			WithHint("Status tujuan tidak dikenal").
			WithReportableDetails(map[string]interface{}{"target_status": r.TargetStatus}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// UpdateOrderRequest is the administrative edit path for payment and note
// fields. It bypasses the stage machine entirely.
type UpdateOrderRequest struct {
	PaymentState  *types.PaymentState  `json:"payment_state,omitempty"`
	PaymentMethod *types.PaymentMethod `json:"payment_method,omitempty"`
	PaidIDR       *decimal.Decimal     `json:"paid_idr,omitempty"`
	Note          *string              `json:"note,omitempty"`
}

// Validate checks the administrative edit payload.
func (r UpdateOrderRequest) Validate() error {
	if r.PaymentState != nil && !r.PaymentState.IsValid() {
		return ierr.NewError("invalid payment state").
			WithHint("Status pembayaran tidak dikenal").
			Mark(ierr.ErrValidation)
	}
	if r.PaidIDR != nil && r.PaidIDR.IsNegative() {
		return ierr.NewError("paid amount must not be negative").
			WithHint("Nominal dibayar tidak valid").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OrderResponse is an order in API responses.
type OrderResponse struct {
	*order.Order
	// AwardedPoints is only set on creation responses
	AwardedPoints int64 `json:"awarded_points,omitempty"`
}

// NewOrderResponse wraps a domain order.
func NewOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{Order: o}
}

// ScanAdvanceResponse reports the outcome of a scan-driven auto-advance.
type ScanAdvanceResponse struct {
	Order *order.Order `json:"order"`
	// Advanced is false when the order was already at the terminal stage;
	// that case is a no-op success, not an error.
	Advanced bool `json:"advanced"`
}

// ListOrdersResponse is the envelope for order listings.
type ListOrdersResponse = types.ListResponse[*OrderResponse]

// OrderHistoryResponse is the order's transition history.
type OrderHistoryResponse struct {
	Items []*order.StatusHistory `json:"items"`
}
