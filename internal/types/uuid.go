package types

import (
	"crypto/rand"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// Prefixes for generated identifiers, one per entity kind.
const (
	UUIDPrefixLicense         = "lic"
	UUIDPrefixOrder           = "ord"
	UUIDPrefixOrderItem       = "item"
	UUIDPrefixOrderHistory    = "hist"
	UUIDPrefixPayment         = "pay"
	UUIDPrefixCustomer        = "cust"
	UUIDPrefixVoucher         = "vouch"
	UUIDPrefixAuditLog        = "audit"
	UUIDPrefixNotificationLog = "notif"
	UUIDPrefixSetting         = "setting"
)

// OrderCodePrefix is the human readable prefix printed on receipts and
// encoded into order barcodes.
const OrderCodePrefix = "LND"

// GenerateUUID returns a lowercase ULID.
func GenerateUUID() string {
	return strings.ToLower(ulid.MustNew(ulid.Now(), rand.Reader).String())
}

// GenerateUUIDWithPrefix returns a prefixed lowercase ULID, e.g. "ord_01h...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}

// GenerateOrderCode returns a short human readable order code such as
// "LND-PPBqWA9". The code doubles as the order's barcode value.
func GenerateOrderCode() string {
	id, err := shortid.Generate()
	if err != nil {
		// shortid only fails on a broken entropy source; fall back to a ULID
		// suffix so order creation never blocks on code generation.
		id = GenerateUUID()[:9]
	}
	return OrderCodePrefix + "-" + strings.ToUpper(id)
}
