package types

// VoucherType is how a voucher's value is interpreted.
type VoucherType string

const (
	// VoucherTypeFixed subtracts a fixed IDR amount.
	VoucherTypeFixed VoucherType = "tetap"
	// VoucherTypePercent subtracts a percentage of the cart subtotal.
	VoucherTypePercent VoucherType = "persen"
)

// IsValid checks if the voucher type is one of the defined constants.
func (t VoucherType) IsValid() bool {
	return t == VoucherTypeFixed || t == VoucherTypePercent
}

// String returns the string representation of the voucher type.
func (t VoucherType) String() string {
	return string(t)
}
