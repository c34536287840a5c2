package dto

import (
	"github.com/lordbyaku/lbpos/internal/domain/payment"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
)

// RequestRenewalRequest asks to renew the tenant's license. Licensing
// requests stay writable even when the license is expired.
type RequestRenewalRequest struct {
	Package types.PackageKind   `json:"package" validate:"required"`
	Method  types.PaymentMethod `json:"method"`
	Notes   string              `json:"notes,omitempty"`
}

// Validate checks the renewal payload.
func (r RequestRenewalRequest) Validate() error {
	if !r.Package.IsValid() {
		return ierr.NewError("invalid package").
			WithHint("Pilih paket bulanan atau tahunan").
			WithReportableDetails(map[string]interface{}{"package": r.Package}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RejectRenewalRequest carries the admin's rejection reason.
type RejectRenewalRequest struct {
	Reason string `json:"reason,omitempty"`
}

// PaymentResponse is a renewal payment in API responses.
type PaymentResponse struct {
	*payment.Payment
}

// NewPaymentResponse wraps a domain payment.
func NewPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{Payment: p}
}

// ListPaymentsResponse is the envelope for renewal payment listings.
type ListPaymentsResponse struct {
	Items []*PaymentResponse `json:"items"`
	Total int                `json:"total"`
}

// ApproveRenewalResponse is the outcome of an approval: the terminal
// payment row plus the freshly stacked license.
type ApproveRenewalResponse struct {
	Payment *PaymentResponse `json:"payment"`
	License *LicenseResponse `json:"license"`
}
