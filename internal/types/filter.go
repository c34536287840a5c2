package types

import (
	ierr "github.com/lordbyaku/lbpos/internal/errors"
)

const (
	filterDefaultLimit = 50
	filterMaxLimit     = 200
)

// QueryFilter contains pagination and ordering parameters shared by list
// endpoints.
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit"`
	Offset *int    `json:"offset,omitempty" form:"offset"`
	Sort   *string `json:"sort,omitempty" form:"sort"`
	Order  *string `json:"order,omitempty" form:"order"`
}

// NewDefaultQueryFilter returns a filter with default pagination.
func NewDefaultQueryFilter() *QueryFilter {
	limit := filterDefaultLimit
	offset := 0
	return &QueryFilter{
		Limit:  &limit,
		Offset: &offset,
	}
}

// Validate checks the pagination bounds.
func (f *QueryFilter) Validate() error {
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > filterMaxLimit) {
		return ierr.NewError("limit out of range").
			WithHintf("Limit must be between 1 and %d", filterMaxLimit).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset out of range").
			WithHint("Offset must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit returns the effective limit.
func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return filterDefaultLimit
	}
	return *f.Limit
}

// GetOffset returns the effective offset.
func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// GetOrder returns the effective sort direction, defaulting to descending.
func (f *QueryFilter) GetOrder() string {
	if f == nil || f.Order == nil {
		return "desc"
	}
	return *f.Order
}

// ListResponse is the generic envelope for list endpoints.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewListResponse builds a list envelope.
func NewListResponse[T any](items []T, total, limit, offset int) ListResponse[T] {
	return ListResponse[T]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
