package types

// OrderStatus is one of the four fixed processing stages an order moves
// through. The progression is strictly forward and never skips a stage.
type OrderStatus string

const (
	// OrderStatusReceived is the initial stage set at checkout.
	OrderStatusReceived OrderStatus = "pesanan_masuk"
	// OrderStatusWashing means the order is being processed.
	OrderStatusWashing OrderStatus = "sedang_dicuci"
	// OrderStatusReady means the order is finished and awaiting pickup.
	OrderStatusReady OrderStatus = "selesai_dicuci"
	// OrderStatusPickedUp is the terminal stage.
	OrderStatusPickedUp OrderStatus = "sudah_diambil"
)

// orderStatusSuccessor is the closed successor map for the stage machine.
var orderStatusSuccessor = map[OrderStatus]OrderStatus{
	OrderStatusReceived: OrderStatusWashing,
	OrderStatusWashing:  OrderStatusReady,
	OrderStatusReady:    OrderStatusPickedUp,
}

// orderStatusLabels are the display labels rendered into notifications.
var orderStatusLabels = map[OrderStatus]string{
	OrderStatusReceived: "Pesanan Masuk",
	OrderStatusWashing:  "Sedang Dicuci",
	OrderStatusReady:    "Selesai Dicuci",
	OrderStatusPickedUp: "Sudah Diambil",
}

// IsValid checks if the status is one of the defined stages.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusWashing, OrderStatusReady, OrderStatusPickedUp:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// Next returns the immediate successor stage. ok is false when the status is
// terminal or unknown.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := orderStatusSuccessor[s]
	return next, ok
}

// IsTerminal reports whether no further stage transitions are valid.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPickedUp
}

// Label returns the human readable display label for the status.
func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// PaymentState is the payment status of an order.
type PaymentState string

const (
	PaymentStatePaid    PaymentState = "lunas"
	PaymentStateUnpaid  PaymentState = "belum_lunas"
	PaymentStatePartial PaymentState = "dp"
)

// IsValid checks if the payment state is one of the defined constants.
func (p PaymentState) IsValid() bool {
	switch p {
	case PaymentStatePaid, PaymentStateUnpaid, PaymentStatePartial:
		return true
	}
	return false
}

// Label returns the display label rendered into notifications.
func (p PaymentState) Label() string {
	switch p {
	case PaymentStatePaid:
		return "Lunas"
	case PaymentStateUnpaid:
		return "Belum Bayar"
	case PaymentStatePartial:
		return "DP"
	default:
		return string(p)
	}
}

// PaymentMethod is how an order (or renewal) was paid.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "tunai"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodQRIS     PaymentMethod = "qris"
)
