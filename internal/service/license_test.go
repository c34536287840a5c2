package service

import (
	"testing"
	"time"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/license"
	"github.com/lordbyaku/lbpos/internal/domain/payment"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/testutil"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LicenseServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     LicenseService
	entitlement EntitlementService
	params      ServiceParams
}

func TestLicenseService(t *testing.T) {
	suite.Run(t, new(LicenseServiceSuite))
}

func (s *LicenseServiceSuite) SetupTest() {
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
	s.entitlement = NewEntitlementService(s.params)
	s.service = NewLicenseService(s.params)
}

func (s *LicenseServiceSuite) seedPendingPayment(pkg types.PackageKind) *payment.Payment {
	p := payment.New(types.DefaultTenantID, pkg, decimal.NewFromInt(50000), types.PaymentMethodTransfer, "")
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), p))
	return p
}

func (s *LicenseServiceSuite) TestApproveRenewalNoPriorLicense() {
	p := s.seedPendingPayment(types.PackageMonthly)

	before := time.Now().UTC()
	resp, err := s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.NoError(err)
	s.Equal(types.RenewalStatusPaid, resp.Payment.RenewalStatus)
	s.NotNil(resp.Payment.PaidAt)

	// Period starts at approval time, not at some past anchor.
	s.False(resp.License.StartAt.Before(before))
	s.Equal(30*24*time.Hour, resp.License.EndAt.Sub(resp.License.StartAt))
}

func (s *LicenseServiceSuite) TestApproveRenewalStacksOnRemainingValidity() {
	// Current license still has twenty days left; the renewal must extend
	// from its end, not from today.
	now := time.Now().UTC()
	current := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-10*24*time.Hour), now.Add(20*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), current))

	p := s.seedPendingPayment(types.PackageMonthly)
	resp, err := s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.NoError(err)

	s.True(resp.License.StartAt.Equal(current.EndAt))
	s.True(resp.License.EndAt.Equal(current.EndAt.Add(30 * 24 * time.Hour)))
}

func (s *LicenseServiceSuite) TestApproveRenewalYearlyDuration() {
	p := s.seedPendingPayment(types.PackageYearly)

	resp, err := s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.NoError(err)
	s.Equal(365*24*time.Hour, resp.License.EndAt.Sub(resp.License.StartAt))
}

func (s *LicenseServiceSuite) TestApproveRenewalLeavesExactlyOneActive() {
	now := time.Now().UTC()
	current := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-10*24*time.Hour), now.Add(20*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), current))

	p := s.seedPendingPayment(types.PackageMonthly)
	_, err := s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.NoError(err)

	rows, err := s.GetStores().LicenseRepo.ListByTenant(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Len(rows, 2)

	active := 0
	for _, l := range rows {
		if l.IsActive {
			active++
		}
	}
	s.Equal(1, active)
}

func (s *LicenseServiceSuite) TestApproveRenewalTwiceRejected() {
	p := s.seedPendingPayment(types.PackageMonthly)

	_, err := s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.NoError(err)

	_, err = s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *LicenseServiceSuite) TestApproveRenewalRefreshesVerdict() {
	// Tenant starts expired; approval must flip the write gate open.
	s.Equal(types.VerdictExpired, s.entitlement.Evaluate(s.GetContext(), types.DefaultTenantID))

	p := s.seedPendingPayment(types.PackageMonthly)
	_, err := s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.NoError(err)

	s.Equal(types.VerdictActive, s.entitlement.Evaluate(s.GetContext(), types.DefaultTenantID))
	s.NoError(s.entitlement.Authorize(s.GetContext(), types.DefaultTenantID))
}

func (s *LicenseServiceSuite) TestApproveRenewalWritesAuditEntry() {
	p := s.seedPendingPayment(types.PackageMonthly)
	_, err := s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.NoError(err)

	entries, err := s.GetStores().AuditRepo.ListByEntity(s.GetContext(), string(types.AuditEntityPayment), p.ID)
	s.NoError(err)
	s.Len(entries, 1)
	s.Equal(types.AuditActionApproveRenewal, entries[0].Action)
}

func (s *LicenseServiceSuite) TestRejectRenewal() {
	p := s.seedPendingPayment(types.PackageMonthly)

	resp, err := s.service.RejectRenewal(s.GetContext(), p.ID, dto.RejectRenewalRequest{Reason: "Bukti transfer tidak terbaca"})
	s.NoError(err)
	s.Equal(types.RenewalStatusRejected, resp.RenewalStatus)
	s.Equal("Bukti transfer tidak terbaca", resp.Notes)

	// No license row was created.
	rows, err := s.GetStores().LicenseRepo.ListByTenant(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Empty(rows)
}

func (s *LicenseServiceSuite) TestRejectAfterApproveRejected() {
	p := s.seedPendingPayment(types.PackageMonthly)

	_, err := s.service.ApproveRenewal(s.GetContext(), p.ID)
	s.NoError(err)

	_, err = s.service.RejectRenewal(s.GetContext(), p.ID, dto.RejectRenewalRequest{})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *LicenseServiceSuite) TestGetEntitlementWithoutLicense() {
	resp, err := s.service.GetEntitlement(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Equal(types.VerdictExpired, resp.Verdict)
	s.Nil(resp.License)
}

func (s *LicenseServiceSuite) TestGetEntitlementWithLicense() {
	now := time.Now().UTC()
	l := license.New(types.DefaultTenantID, types.PackageMonthly, now, now.Add(30*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), l))

	resp, err := s.service.GetEntitlement(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Equal(types.VerdictActive, resp.Verdict)
	s.NotNil(resp.License)
	s.Equal(l.ID, resp.License.ID)
}

func (s *LicenseServiceSuite) TestGetEntitlementVerdictMatchesReturnedLicense() {
	now := time.Now().UTC()
	l := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-24*time.Hour), now.Add(30*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), l))

	// Warm the advisory verdict cache with the active license.
	s.Equal(types.VerdictActive, s.entitlement.Evaluate(s.GetContext(), types.DefaultTenantID))

	// The license lapses out from under the cache.
	lapsed := license.New(types.DefaultTenantID, types.PackageMonthly,
		now.Add(-40*24*time.Hour), now.Add(-24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Supersede(s.GetContext(), types.DefaultTenantID, lapsed))

	// The banner verdict follows the row it is shown beside, never the
	// cached evaluation.
	resp, err := s.service.GetEntitlement(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Equal(types.VerdictGrace, resp.Verdict)
	s.NotNil(resp.License)
	s.Equal(lapsed.ID, resp.License.ID)
}
