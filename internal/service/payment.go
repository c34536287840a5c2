package service

import (
	"context"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/payment"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PaymentService owns renewal payment requests. Requesting a renewal is the
// one mutation that stays open to expired tenants; without it they could
// never recover.
type PaymentService interface {
	// RequestRenewal creates a pending-verification payment for the chosen
	// package at the configured price.
	RequestRenewal(ctx context.Context, req dto.RequestRenewalRequest) (*dto.PaymentResponse, error)

	// ListRenewals returns the tenant's renewal requests, newest first.
	ListRenewals(ctx context.Context) (*dto.ListPaymentsResponse, error)

	// ListPendingRenewals returns the cross-tenant admin verification queue.
	ListPendingRenewals(ctx context.Context) (*dto.ListPaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

// NewPaymentService creates a new payment service
func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

func (s *paymentService) RequestRenewal(ctx context.Context, req dto.RequestRenewalRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	amount := decimal.NewFromInt(s.Config.Billing.MonthlyPriceIDR)
	if req.Package == types.PackageYearly {
		amount = decimal.NewFromInt(s.Config.Billing.YearlyPriceIDR)
	}

	method := req.Method
	if method == "" {
		method = types.PaymentMethodTransfer
	}

	p := payment.New(types.GetTenantID(ctx), req.Package, amount, method, req.Notes)
	p.CreatedBy = types.GetUserID(ctx)
	p.UpdatedBy = types.GetUserID(ctx)
	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("renewal requested",
		"payment_id", p.ID,
		"package", req.Package,
		"amount_idr", amount)

	return dto.NewPaymentResponse(p), nil
}

func (s *paymentService) ListRenewals(ctx context.Context) (*dto.ListPaymentsResponse, error) {
	payments, err := s.PaymentRepo.ListByTenant(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}
	return newListPaymentsResponse(payments), nil
}

func (s *paymentService) ListPendingRenewals(ctx context.Context) (*dto.ListPaymentsResponse, error) {
	payments, err := s.PaymentRepo.ListByStatus(ctx, types.RenewalStatusPending)
	if err != nil {
		return nil, err
	}
	return newListPaymentsResponse(payments), nil
}

func newListPaymentsResponse(payments []*payment.Payment) *dto.ListPaymentsResponse {
	items := lo.Map(payments, func(p *payment.Payment, _ int) *dto.PaymentResponse {
		return dto.NewPaymentResponse(p)
	})
	return &dto.ListPaymentsResponse{Items: items, Total: len(items)}
}
