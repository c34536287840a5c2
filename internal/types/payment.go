package types

// RenewalStatus is the verification state of a license renewal payment.
// Once it leaves pending verification the row is terminal; a new renewal
// always creates a new payment row.
type RenewalStatus string

const (
	RenewalStatusPending  RenewalStatus = "menunggu_verifikasi"
	RenewalStatusPaid     RenewalStatus = "lunas"
	RenewalStatusRejected RenewalStatus = "ditolak"
)

// IsValid checks if the renewal status is one of the defined constants.
func (s RenewalStatus) IsValid() bool {
	switch s {
	case RenewalStatusPending, RenewalStatusPaid, RenewalStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the row can no longer change state.
func (s RenewalStatus) IsTerminal() bool {
	return s == RenewalStatusPaid || s == RenewalStatusRejected
}
