package service

import (
	"context"
	"strings"
	"time"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/tenant"
	"github.com/lordbyaku/lbpos/internal/domain/voucher"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// VoucherService owns discount vouchers and the pre-checkout validation of
// a code against a cart subtotal.
type VoucherService interface {
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest) (*dto.VoucherResponse, error)
	GetVoucher(ctx context.Context, id string) (*dto.VoucherResponse, error)
	UpdateVoucher(ctx context.Context, id string, req dto.UpdateVoucherRequest) (*dto.VoucherResponse, error)
	DeleteVoucher(ctx context.Context, id string) error
	ListVouchers(ctx context.Context) (*dto.ListVouchersResponse, error)

	// CheckVoucher validates a code against a subtotal and returns the
	// computed discount. Rejections (inactive, expired, below min order,
	// quota exhausted) are validation errors; the caller keeps discount 0.
	CheckVoucher(ctx context.Context, req dto.CheckVoucherRequest) (*dto.DiscountResponse, error)
}

type voucherService struct {
	ServiceParams
	entitlement EntitlementService
}

// NewVoucherService creates a new voucher service
func NewVoucherService(params ServiceParams, entitlement EntitlementService) VoucherService {
	return &voucherService{
		ServiceParams: params,
		entitlement:   entitlement,
	}
}

func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest) (*dto.VoucherResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.entitlement.Authorize(ctx, types.GetTenantID(ctx)); err != nil {
		return nil, err
	}

	v := req.ToVoucher(types.GetTenantID(ctx))
	v.CreatedBy = types.GetUserID(ctx)
	v.UpdatedBy = types.GetUserID(ctx)
	if err := s.VoucherRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	return dto.NewVoucherResponse(v), nil
}

func (s *voucherService) GetVoucher(ctx context.Context, id string) (*dto.VoucherResponse, error) {
	v, err := s.VoucherRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewVoucherResponse(v), nil
}

func (s *voucherService) UpdateVoucher(ctx context.Context, id string, req dto.UpdateVoucherRequest) (*dto.VoucherResponse, error) {
	if err := s.entitlement.Authorize(ctx, types.GetTenantID(ctx)); err != nil {
		return nil, err
	}

	v, err := s.VoucherRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if req.Value != nil {
		v.Value = *req.Value
	}
	if req.MinOrderIDR != nil {
		v.MinOrderIDR = req.MinOrderIDR.Round(0)
	}
	if req.MaxRedemptions != nil {
		v.MaxRedemptions = req.MaxRedemptions
	}
	if req.ExpiresAt != nil {
		v.ExpiresAt = req.ExpiresAt
	}
	v.UpdatedAt = time.Now().UTC()
	v.UpdatedBy = types.GetUserID(ctx)

	if err := s.VoucherRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	return dto.NewVoucherResponse(v), nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, id string) error {
	if err := s.entitlement.Authorize(ctx, types.GetTenantID(ctx)); err != nil {
		return err
	}
	return s.VoucherRepo.Delete(ctx, id)
}

func (s *voucherService) ListVouchers(ctx context.Context) (*dto.ListVouchersResponse, error) {
	vouchers, err := s.VoucherRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(vouchers, func(v *voucher.Voucher, _ int) *dto.VoucherResponse {
		return dto.NewVoucherResponse(v)
	})
	return &dto.ListVouchersResponse{Items: items, Total: len(items)}, nil
}

func (s *voucherService) CheckVoucher(ctx context.Context, req dto.CheckVoucherRequest) (*dto.DiscountResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, ierr.NewError("voucher code is required").
			WithHint("Masukkan kode voucher").
			Mark(ierr.ErrValidation)
	}

	if !s.vouchersEnabled(ctx) {
		return nil, ierr.NewError("voucher feature is disabled").
			WithHint("Fitur voucher dinonaktifkan oleh admin").
			Mark(ierr.ErrValidation)
	}

	v, err := s.VoucherRepo.GetByCode(ctx, code)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("voucher not found").
				WithHint("Voucher tidak valid").
				WithReportableDetails(map[string]interface{}{"code": code}).
				Mark(ierr.ErrValidation)
		}
		return nil, err
	}

	result, err := s.applyVoucher(v, req.SubtotalIDR)
	if err != nil {
		return nil, err
	}

	return &dto.DiscountResponse{
		Code:       v.Code,
		Discount:   result.Discount,
		FinalTotal: result.FinalTotal,
	}, nil
}

// applyVoucher runs the full redemption checks and computes the discount.
// Shared by the pre-checkout check and the order creation re-validation.
func (s *voucherService) applyVoucher(v *voucher.Voucher, subtotal decimal.Decimal) (*voucher.DiscountResult, error) {
	if !v.IsRedeemableAt(time.Now().UTC()) {
		return nil, ierr.NewError("voucher is not redeemable").
			WithHint("Voucher tidak aktif, kedaluwarsa, atau kuota habis").
			WithReportableDetails(map[string]interface{}{
				"code":              v.Code,
				"is_active":         v.IsActive,
				"expires_at":        v.ExpiresAt,
				"total_redemptions": v.TotalRedemptions,
				"max_redemptions":   v.MaxRedemptions,
			}).
			Mark(ierr.ErrValidation)
	}

	if !v.MeetsMinOrder(subtotal) {
		return nil, ierr.NewError("subtotal below voucher minimum").
			WithHintf("Minimal order %s", formatRupiah(v.MinOrderIDR)).
			WithReportableDetails(map[string]interface{}{
				"code":      v.Code,
				"min_order": v.MinOrderIDR,
				"subtotal":  subtotal,
			}).
			Mark(ierr.ErrValidation)
	}

	result := v.ApplyDiscount(subtotal)
	return &result, nil
}

func (s *voucherService) vouchersEnabled(ctx context.Context) bool {
	setting, err := s.SettingRepo.GetSetting(ctx, tenant.SettingFeatureVoucher)
	if err != nil {
		// Missing setting means the feature was never turned off.
		return true
	}
	return setting.BoolValue(true)
}
