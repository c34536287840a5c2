package types

import "time"

// Verdict is the computed entitlement level for a tenant. It is derived from
// the tenant's most recent active license and is never stored.
type Verdict string

const (
	// VerdictActive grants full read/write access.
	VerdictActive Verdict = "aktif"
	// VerdictGrace grants read-only access during the grace window.
	VerdictGrace Verdict = "masa_tenggang"
	// VerdictExpired denies all licensed writes. It is also the fail-closed
	// result when no active license exists or the lookup fails.
	VerdictExpired Verdict = "kedaluwarsa"
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	return string(v)
}

// CanWrite reports whether licensed mutations are permitted. Grace mode is
// read-only throughout the system.
func (v Verdict) CanWrite() bool {
	return v == VerdictActive
}

// CanRead reports whether tenant data may still be read.
func (v Verdict) CanRead() bool {
	return v == VerdictActive || v == VerdictGrace
}

// Label returns the uppercase display label shown on the license banner.
func (v Verdict) Label() string {
	switch v {
	case VerdictActive:
		return "AKTIF"
	case VerdictGrace:
		return "MASA TENGGANG"
	case VerdictExpired:
		return "KEDALUWARSA"
	default:
		return "Tidak Diketahui"
	}
}

// PackageKind is the license package bought on renewal.
type PackageKind string

const (
	PackageMonthly PackageKind = "bulanan"
	PackageYearly  PackageKind = "tahunan"
)

// IsValid checks if the package kind is one of the defined constants.
func (p PackageKind) IsValid() bool {
	return p == PackageMonthly || p == PackageYearly
}

// Duration returns the validity period the package grants.
func (p PackageKind) Duration() time.Duration {
	if p == PackageYearly {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// DefaultGraceDays is the fixed grace window length written onto every new
// license row.
const DefaultGraceDays = 3
