package dto

import (
	"github.com/lordbyaku/lbpos/internal/domain/customer"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
)

// CreateCustomerRequest registers (or upserts by phone) a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address,omitempty"`
}

// Validate checks the customer payload.
func (r CreateCustomerRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("customer name is required").
			WithHint("Nama pelanggan wajib diisi").
			Mark(ierr.ErrValidation)
	}
	if r.Phone == "" {
		return ierr.NewError("customer phone is required").
			WithHint("Nomor telepon pelanggan wajib diisi").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CustomerResponse is a customer in API responses.
type CustomerResponse struct {
	*customer.Customer
}

// NewCustomerResponse wraps a domain customer.
func NewCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{Customer: c}
}

// ListCustomersResponse is the envelope for customer listings.
type ListCustomersResponse struct {
	Items []*CustomerResponse `json:"items"`
	Total int                 `json:"total"`
}
