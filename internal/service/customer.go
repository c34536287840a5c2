package service

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/customer"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/samber/lo"
)

// CustomerService owns customer records. Customers are keyed by
// (tenant, phone); checkout upserts so a returning customer keeps their
// point balance.
type CustomerService interface {
	UpsertCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context) (*dto.ListCustomersResponse, error)
}

type customerService struct {
	ServiceParams
	entitlement EntitlementService
}

// NewCustomerService creates a new customer service
func NewCustomerService(params ServiceParams, entitlement EntitlementService) CustomerService {
	return &customerService{
		ServiceParams: params,
		entitlement:   entitlement,
	}
}

func (s *customerService) UpsertCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.entitlement.Authorize(ctx, types.GetTenantID(ctx)); err != nil {
		return nil, err
	}

	c := customer.New(types.GetTenantID(ctx), req.Name, req.Phone, req.Address)
	c.CreatedBy = types.GetUserID(ctx)
	c.UpdatedBy = types.GetUserID(ctx)

	saved, err := s.CustomerRepo.UpsertByPhone(ctx, c)
	if err != nil {
		return nil, err
	}

	return dto.NewCustomerResponse(saved), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) ListCustomers(ctx context.Context) (*dto.ListCustomersResponse, error) {
	customers, err := s.CustomerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerResponse {
		return dto.NewCustomerResponse(c)
	})
	return &dto.ListCustomersResponse{Items: items, Total: len(items)}, nil
}
