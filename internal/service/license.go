package service

import (
	"context"
	"time"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/auditlog"
	"github.com/lordbyaku/lbpos/internal/domain/license"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/samber/lo"
)

// LicenseService owns license rows and the renewal approval flow, including
// the period stacking rule: a renewal extends from the current license's end
// date, never discarding remaining validity.
type LicenseService interface {
	// ApproveRenewal marks the payment paid and stacks the new license.
	// The deactivate-all plus insert pair runs as one transactional unit so
	// a concurrent entitlement evaluation never observes zero active rows.
	ApproveRenewal(ctx context.Context, paymentID string) (*dto.ApproveRenewalResponse, error)

	// RejectRenewal marks a pending payment rejected. Terminal, like
	// approval; a later renewal needs a new payment row.
	RejectRenewal(ctx context.Context, paymentID string, req dto.RejectRenewalRequest) (*dto.PaymentResponse, error)

	// GetEntitlement returns the tenant's verdict plus the backing license
	// for the banner.
	GetEntitlement(ctx context.Context, tenantID string) (*dto.EntitlementResponse, error)

	// ListLicenses returns all license rows of the tenant, newest first.
	ListLicenses(ctx context.Context, tenantID string) ([]*dto.LicenseResponse, error)
}

type licenseService struct {
	ServiceParams
}

// NewLicenseService creates a new license service
func NewLicenseService(params ServiceParams) LicenseService {
	return &licenseService{ServiceParams: params}
}

func (s *licenseService) ApproveRenewal(ctx context.Context, paymentID string) (*dto.ApproveRenewalResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if p.RenewalStatus.IsTerminal() {
		return nil, ierr.NewError("renewal payment already processed").
			WithHint("Pembayaran ini sudah diverifikasi sebelumnya").
			WithReportableDetails(map[string]interface{}{
				"payment_id":     p.ID,
				"renewal_status": p.RenewalStatus,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	now := time.Now().UTC()
	pkg := p.PackageKind()

	// Stack on top of remaining validity: the new period starts at the
	// current license's end when that is still in the future.
	start := now
	current, err := s.LicenseRepo.GetCurrentActive(ctx, p.TenantID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if current != nil && current.EndAt.After(start) {
		start = current.EndAt
	}
	end := start.Add(pkg.Duration())

	paidAt := now
	p.RenewalStatus = types.RenewalStatusPaid
	p.PaidAt = &paidAt
	p.UpdatedAt = now
	p.UpdatedBy = types.GetUserID(ctx)
	if err := s.PaymentRepo.UpdateStatus(ctx, p); err != nil {
		return nil, err
	}

	newLicense := license.New(p.TenantID, pkg, start, end)
	newLicense.CreatedBy = types.GetUserID(ctx)
	newLicense.UpdatedBy = types.GetUserID(ctx)
	if err := s.LicenseRepo.Supersede(ctx, p.TenantID, newLicense); err != nil {
		// The payment row is already terminal but the license swap failed:
		// a recoverable integrity gap, logged distinctly for reconciliation.
		s.Logger.WithContext(ctx).Errorw("license supersede failed after payment marked paid",
			"payment_id", p.ID,
			"tenant_id", p.TenantID,
			"error", err)
		return nil, ierr.WithError(err).
			WithHint("Pembayaran tercatat lunas tetapi lisensi baru gagal dibuat").
			WithReportableDetails(map[string]interface{}{
				"payment_id": p.ID,
				"tenant_id":  p.TenantID,
			}).
			Mark(ierr.ErrPartialWrite)
	}

	s.invalidateVerdict(p.TenantID)

	entry := auditlog.NewEntry(p.TenantID, types.GetUserID(ctx),
		types.AuditActionApproveRenewal, types.AuditEntityPayment, p.ID).
		WithNewData(newLicense)
	if err := s.AuditRepo.Append(ctx, entry); err != nil {
		s.Logger.WithContext(ctx).Errorw("audit append failed for renewal approval",
			"payment_id", p.ID,
			"error", err)
	}

	s.Logger.WithContext(ctx).Infow("renewal approved",
		"payment_id", p.ID,
		"tenant_id", p.TenantID,
		"package", pkg,
		"start_at", start,
		"end_at", end)

	return &dto.ApproveRenewalResponse{
		Payment: dto.NewPaymentResponse(p),
		License: dto.NewLicenseResponse(newLicense),
	}, nil
}

func (s *licenseService) RejectRenewal(ctx context.Context, paymentID string, req dto.RejectRenewalRequest) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if p.RenewalStatus.IsTerminal() {
		return nil, ierr.NewError("renewal payment already processed").
			WithHint("Pembayaran ini sudah diverifikasi sebelumnya").
			WithReportableDetails(map[string]interface{}{
				"payment_id":     p.ID,
				"renewal_status": p.RenewalStatus,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	p.RenewalStatus = types.RenewalStatusRejected
	if req.Reason != "" {
		p.Notes = req.Reason
	}
	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)
	if err := s.PaymentRepo.UpdateStatus(ctx, p); err != nil {
		return nil, err
	}

	entry := auditlog.NewEntry(p.TenantID, types.GetUserID(ctx),
		types.AuditActionRejectRenewal, types.AuditEntityPayment, p.ID).
		WithNewData(p)
	if err := s.AuditRepo.Append(ctx, entry); err != nil {
		s.Logger.WithContext(ctx).Errorw("audit append failed for renewal rejection",
			"payment_id", p.ID,
			"error", err)
	}

	return dto.NewPaymentResponse(p), nil
}

func (s *licenseService) GetEntitlement(ctx context.Context, tenantID string) (*dto.EntitlementResponse, error) {
	lic, err := s.LicenseRepo.GetCurrentActive(ctx, tenantID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return dto.NewEntitlementResponse(types.VerdictExpired, nil), nil
		}
		return nil, err
	}

	// The verdict is derived from the row shown beside it so the banner
	// never pairs a cached verdict with fresher dates.
	return dto.NewEntitlementResponse(lic.VerdictAt(time.Now().UTC()), lic), nil
}

func (s *licenseService) ListLicenses(ctx context.Context, tenantID string) ([]*dto.LicenseResponse, error) {
	licenses, err := s.LicenseRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := lo.Map(licenses, func(l *license.License, _ int) *dto.LicenseResponse {
		return dto.NewLicenseResponse(l)
	})
	return out, nil
}
