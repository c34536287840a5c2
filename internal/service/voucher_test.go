package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/license"
	"github.com/lordbyaku/lbpos/internal/domain/tenant"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/testutil"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type VoucherServiceSuite struct {
	testutil.BaseServiceTestSuite
	service VoucherService
	params  ServiceParams
}

func TestVoucherService(t *testing.T) {
	suite.Run(t, new(VoucherServiceSuite))
}

func (s *VoucherServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		LicenseRepo:  s.GetStores().LicenseRepo,
		OrderRepo:    s.GetStores().OrderRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
		CustomerRepo: s.GetStores().CustomerRepo,
		VoucherRepo:  s.GetStores().VoucherRepo,
		SettingRepo:  s.GetStores().SettingRepo,
		AuditRepo:    s.GetStores().AuditRepo,
		WALogRepo:    s.GetStores().WALogRepo,
		Sender:       s.GetSender(),
		VerdictCache: s.GetCache(),
	}
	entitlement := NewEntitlementService(s.params)
	s.service = NewVoucherService(s.params, entitlement)

	now := time.Now().UTC()
	l := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-24*time.Hour), now.Add(29*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), l))
}

func (s *VoucherServiceSuite) createVoucher(req dto.CreateVoucherRequest) *dto.VoucherResponse {
	resp, err := s.service.CreateVoucher(s.GetContext(), req)
	s.NoError(err)
	return resp
}

func (s *VoucherServiceSuite) TestCreateVoucherUppercasesCode() {
	resp := s.createVoucher(dto.CreateVoucherRequest{
		Code:  "hemat10",
		Type:  types.VoucherTypeFixed,
		Value: decimal.NewFromInt(10000),
	})
	s.Equal("HEMAT10", resp.Code)
	s.True(resp.IsActive)
}

func (s *VoucherServiceSuite) TestCreateVoucherPercentOver100Rejected() {
	_, err := s.service.CreateVoucher(s.GetContext(), dto.CreateVoucherRequest{
		Code:  "GEDE",
		Type:  types.VoucherTypePercent,
		Value: decimal.NewFromInt(150),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *VoucherServiceSuite) TestCheckVoucherFixedDiscount() {
	s.createVoucher(dto.CreateVoucherRequest{
		Code:  "HEMAT10",
		Type:  types.VoucherTypeFixed,
		Value: decimal.NewFromInt(10000),
	})

	resp, err := s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "hemat10",
		SubtotalIDR: decimal.NewFromInt(50000),
	})
	s.NoError(err)
	s.True(resp.Discount.Equal(decimal.NewFromInt(10000)))
	s.True(resp.FinalTotal.Equal(decimal.NewFromInt(40000)))
}

func (s *VoucherServiceSuite) TestCheckVoucherPercentRoundsToWholeRupiah() {
	s.createVoucher(dto.CreateVoucherRequest{
		Code:  "DISKON15",
		Type:  types.VoucherTypePercent,
		Value: decimal.NewFromInt(15),
	})

	// 15% of 33.333 is 4.999,95; rounds to 5.000.
	resp, err := s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "DISKON15",
		SubtotalIDR: decimal.NewFromInt(33333),
	})
	s.NoError(err)
	s.True(resp.Discount.Equal(decimal.NewFromInt(5000)))
	s.True(resp.FinalTotal.Equal(decimal.NewFromInt(28333)))
}

func (s *VoucherServiceSuite) TestCheckVoucherFixedCappedAtSubtotal() {
	s.createVoucher(dto.CreateVoucherRequest{
		Code:  "JUMBO",
		Type:  types.VoucherTypeFixed,
		Value: decimal.NewFromInt(100000),
	})

	resp, err := s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "JUMBO",
		SubtotalIDR: decimal.NewFromInt(20000),
	})
	s.NoError(err)
	s.True(resp.Discount.Equal(decimal.NewFromInt(20000)))
	s.True(resp.FinalTotal.IsZero())
}

func (s *VoucherServiceSuite) TestCheckVoucherBelowMinOrder() {
	s.createVoucher(dto.CreateVoucherRequest{
		Code:        "HEMAT10",
		Type:        types.VoucherTypeFixed,
		Value:       decimal.NewFromInt(10000),
		MinOrderIDR: decimal.NewFromInt(50000),
	})

	_, err := s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "HEMAT10",
		SubtotalIDR: decimal.NewFromInt(30000),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *VoucherServiceSuite) TestCheckVoucherExactlyAtMinOrder() {
	s.createVoucher(dto.CreateVoucherRequest{
		Code:        "HEMAT10",
		Type:        types.VoucherTypeFixed,
		Value:       decimal.NewFromInt(10000),
		MinOrderIDR: decimal.NewFromInt(50000),
	})

	resp, err := s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "HEMAT10",
		SubtotalIDR: decimal.NewFromInt(50000),
	})
	s.NoError(err)
	s.True(resp.Discount.Equal(decimal.NewFromInt(10000)))
}

func (s *VoucherServiceSuite) TestCheckVoucherExpired() {
	past := time.Now().UTC().Add(-time.Hour)
	s.createVoucher(dto.CreateVoucherRequest{
		Code:      "LAMA",
		Type:      types.VoucherTypeFixed,
		Value:     decimal.NewFromInt(10000),
		ExpiresAt: &past,
	})

	_, err := s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "LAMA",
		SubtotalIDR: decimal.NewFromInt(50000),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *VoucherServiceSuite) TestCheckVoucherInactive() {
	created := s.createVoucher(dto.CreateVoucherRequest{
		Code:  "MATI",
		Type:  types.VoucherTypeFixed,
		Value: decimal.NewFromInt(10000),
	})

	inactive := false
	_, err := s.service.UpdateVoucher(s.GetContext(), created.ID, dto.UpdateVoucherRequest{IsActive: &inactive})
	s.NoError(err)

	_, err = s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "MATI",
		SubtotalIDR: decimal.NewFromInt(50000),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *VoucherServiceSuite) TestCheckVoucherUnknownCode() {
	_, err := s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "TIDAKADA",
		SubtotalIDR: decimal.NewFromInt(50000),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *VoucherServiceSuite) TestCheckVoucherFeatureDisabled() {
	s.createVoucher(dto.CreateVoucherRequest{
		Code:  "HEMAT10",
		Type:  types.VoucherTypeFixed,
		Value: decimal.NewFromInt(10000),
	})
	s.NoError(s.GetStores().SettingRepo.SetSetting(s.GetContext(),
		tenant.NewSetting(types.DefaultTenantID, tenant.SettingFeatureVoucher, json.RawMessage("false"))))

	_, err := s.service.CheckVoucher(s.GetContext(), dto.CheckVoucherRequest{
		Code:        "HEMAT10",
		SubtotalIDR: decimal.NewFromInt(50000),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *VoucherServiceSuite) TestCreateVoucherDeniedWithoutLicense() {
	// Replace the active license with a long expired one.
	now := time.Now().UTC()
	ended := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-90*24*time.Hour), now.Add(-60*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Supersede(s.GetContext(), types.DefaultTenantID, ended))

	_, err := s.service.CreateVoucher(s.GetContext(), dto.CreateVoucherRequest{
		Code:  "BARU",
		Type:  types.VoucherTypeFixed,
		Value: decimal.NewFromInt(5000),
	})
	s.Error(err)
	s.True(ierr.IsEntitlementDenied(err))
}

func (s *VoucherServiceSuite) TestListVouchers() {
	s.createVoucher(dto.CreateVoucherRequest{
		Code:  "SATU",
		Type:  types.VoucherTypeFixed,
		Value: decimal.NewFromInt(5000),
	})
	s.createVoucher(dto.CreateVoucherRequest{
		Code:  "DUA",
		Type:  types.VoucherTypePercent,
		Value: decimal.NewFromInt(10),
	})

	resp, err := s.service.ListVouchers(s.GetContext())
	s.NoError(err)
	s.Equal(2, resp.Total)
}
