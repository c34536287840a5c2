package service

import (
	"testing"
	"time"

	"github.com/lordbyaku/lbpos/internal/domain/license"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/testutil"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/stretchr/testify/suite"
)

type EntitlementServiceSuite struct {
	testutil.BaseServiceTestSuite
	service EntitlementService
	params  ServiceParams
}

func TestEntitlementService(t *testing.T) {
	suite.Run(t, new(EntitlementServiceSuite))
}

func (s *EntitlementServiceSuite) SetupTest() {
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
	s.service = NewEntitlementService(s.params)
}

// seedLicense inserts an active license whose validity ends at the given
// offset from now.
func (s *EntitlementServiceSuite) seedLicense(endsIn time.Duration) *license.License {
	now := time.Now().UTC()
	l := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(endsIn-30*24*time.Hour), now.Add(endsIn))
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), l))
	return l
}

func (s *EntitlementServiceSuite) TestEvaluateActiveLicense() {
	s.seedLicense(10 * 24 * time.Hour)

	verdict := s.service.Evaluate(s.GetContext(), types.DefaultTenantID)
	s.Equal(types.VerdictActive, verdict)
	s.True(verdict.CanWrite())
	s.True(verdict.CanRead())
}

func (s *EntitlementServiceSuite) TestEvaluateWithinGraceWindow() {
	// Ended yesterday, grace runs three days past the end.
	s.seedLicense(-24 * time.Hour)

	verdict := s.service.Evaluate(s.GetContext(), types.DefaultTenantID)
	s.Equal(types.VerdictGrace, verdict)
	s.False(verdict.CanWrite())
	s.True(verdict.CanRead())
}

func (s *EntitlementServiceSuite) TestEvaluatePastGraceWindow() {
	// Ended four days ago, one day beyond the three day grace window.
	s.seedLicense(-4 * 24 * time.Hour)

	verdict := s.service.Evaluate(s.GetContext(), types.DefaultTenantID)
	s.Equal(types.VerdictExpired, verdict)
	s.False(verdict.CanRead())
}

func (s *EntitlementServiceSuite) TestEvaluateExactlyAtGraceEnd() {
	// The boundary instant itself still reads as grace; only strictly
	// after it the verdict flips to expired.
	now := time.Now().UTC()
	l := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-33*24*time.Hour), now.Add(-3*24*time.Hour))
	s.Equal(types.VerdictGrace, l.VerdictAt(l.GraceEndAt()))
	s.Equal(types.VerdictExpired, l.VerdictAt(l.GraceEndAt().Add(time.Second)))
}

func (s *EntitlementServiceSuite) TestEvaluateNoLicenseFailsClosed() {
	verdict := s.service.Evaluate(s.GetContext(), types.DefaultTenantID)
	s.Equal(types.VerdictExpired, verdict)
}

func (s *EntitlementServiceSuite) TestEvaluateEmptyTenantFailsClosed() {
	verdict := s.service.Evaluate(s.GetContext(), "")
	s.Equal(types.VerdictExpired, verdict)
}

func (s *EntitlementServiceSuite) TestEvaluateIgnoresInactiveLicenses() {
	now := time.Now().UTC()
	l := license.New(types.DefaultTenantID, types.PackageMonthly, now, now.Add(30*24*time.Hour))
	l.IsActive = false
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), l))

	verdict := s.service.Evaluate(s.GetContext(), types.DefaultTenantID)
	s.Equal(types.VerdictExpired, verdict)
}

func (s *EntitlementServiceSuite) TestAuthorizeActive() {
	s.seedLicense(10 * 24 * time.Hour)
	s.NoError(s.service.Authorize(s.GetContext(), types.DefaultTenantID))
}

func (s *EntitlementServiceSuite) TestAuthorizeGraceDenied() {
	s.seedLicense(-24 * time.Hour)

	err := s.service.Authorize(s.GetContext(), types.DefaultTenantID)
	s.Error(err)
	s.True(ierr.IsEntitlementDenied(err))
}

func (s *EntitlementServiceSuite) TestAuthorizeExpiredDenied() {
	err := s.service.Authorize(s.GetContext(), types.DefaultTenantID)
	s.Error(err)
	s.True(ierr.IsEntitlementDenied(err))
}

func (s *EntitlementServiceSuite) TestAuthorizeBypassesStaleCache() {
	s.seedLicense(10 * 24 * time.Hour)

	// Warm the cache with an active verdict, then expire the tenant by
	// superseding with an already ended license.
	s.Equal(types.VerdictActive, s.service.Evaluate(s.GetContext(), types.DefaultTenantID))

	now := time.Now().UTC()
	ended := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-40*24*time.Hour), now.Add(-10*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Supersede(s.GetContext(), types.DefaultTenantID, ended))

	// The advisory read may still say active; the write gate must not.
	err := s.service.Authorize(s.GetContext(), types.DefaultTenantID)
	s.Error(err)
	s.True(ierr.IsEntitlementDenied(err))
}

func (s *EntitlementServiceSuite) TestCurrentLicense() {
	seeded := s.seedLicense(10 * 24 * time.Hour)

	lic, err := s.service.CurrentLicense(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Equal(seeded.ID, lic.ID)
}
