package service

import (
	"github.com/lordbyaku/lbpos/internal/config"
	"github.com/lordbyaku/lbpos/internal/domain/auditlog"
	"github.com/lordbyaku/lbpos/internal/domain/customer"
	"github.com/lordbyaku/lbpos/internal/domain/license"
	"github.com/lordbyaku/lbpos/internal/domain/notification"
	"github.com/lordbyaku/lbpos/internal/domain/order"
	"github.com/lordbyaku/lbpos/internal/domain/payment"
	"github.com/lordbyaku/lbpos/internal/domain/tenant"
	"github.com/lordbyaku/lbpos/internal/domain/voucher"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/wanotify"
	gocache "github.com/patrickmn/go-cache"
)

// ServiceParams bundles the dependencies shared by all services. Each
// service embeds it and picks what it needs.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	LicenseRepo  license.Repository
	OrderRepo    order.Repository
	PaymentRepo  payment.Repository
	CustomerRepo customer.Repository
	VoucherRepo  voucher.Repository
	SettingRepo  tenant.SettingRepository
	AuditRepo    auditlog.Repository
	WALogRepo    notification.LogRepository

	Sender wanotify.Sender

	// VerdictCache holds short-lived advisory entitlement verdicts. Writes
	// bypass it and re-evaluate.
	VerdictCache *gocache.Cache
}
