package service

import (
	"testing"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/testutil"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PaymentService
	params  ServiceParams
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
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
	s.service = NewPaymentService(s.params)
}

func (s *PaymentServiceSuite) TestRequestRenewalMonthly() {
	resp, err := s.service.RequestRenewal(s.GetContext(), dto.RequestRenewalRequest{
		Package: types.PackageMonthly,
	})
	s.NoError(err)
	s.Equal(types.RenewalStatusPending, resp.RenewalStatus)
	s.True(resp.AmountIDR.Equal(decimal.NewFromInt(50000)))
	s.Equal(types.PaymentMethodTransfer, resp.Method)
}

func (s *PaymentServiceSuite) TestRequestRenewalYearly() {
	resp, err := s.service.RequestRenewal(s.GetContext(), dto.RequestRenewalRequest{
		Package: types.PackageYearly,
		Method:  types.PaymentMethodQRIS,
	})
	s.NoError(err)
	s.True(resp.AmountIDR.Equal(decimal.NewFromInt(500000)))
	s.Equal(types.PaymentMethodQRIS, resp.Method)
}

func (s *PaymentServiceSuite) TestRequestRenewalInvalidPackage() {
	_, err := s.service.RequestRenewal(s.GetContext(), dto.RequestRenewalRequest{
		Package: types.PackageKind("mingguan"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestRequestRenewalOpenToExpiredTenant() {
	// No license at all: the renewal path must still accept the request,
	// otherwise an expired tenant could never recover.
	resp, err := s.service.RequestRenewal(s.GetContext(), dto.RequestRenewalRequest{
		Package: types.PackageMonthly,
	})
	s.NoError(err)
	s.NotNil(resp)
}

func (s *PaymentServiceSuite) TestListRenewals() {
	_, err := s.service.RequestRenewal(s.GetContext(), dto.RequestRenewalRequest{Package: types.PackageMonthly})
	s.NoError(err)
	_, err = s.service.RequestRenewal(s.GetContext(), dto.RequestRenewalRequest{Package: types.PackageYearly})
	s.NoError(err)

	resp, err := s.service.ListRenewals(s.GetContext())
	s.NoError(err)
	s.Equal(2, resp.Total)
}

func (s *PaymentServiceSuite) TestListPendingRenewals() {
	created, err := s.service.RequestRenewal(s.GetContext(), dto.RequestRenewalRequest{Package: types.PackageMonthly})
	s.NoError(err)

	licenses := NewLicenseService(s.params)
	_, err = licenses.ApproveRenewal(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.RequestRenewal(s.GetContext(), dto.RequestRenewalRequest{Package: types.PackageMonthly})
	s.NoError(err)

	resp, err := s.service.ListPendingRenewals(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(types.RenewalStatusPending, resp.Items[0].RenewalStatus)
}
