package testutil

import (
	"context"
	"time"

	"github.com/lordbyaku/lbpos/internal/config"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/types"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/suite"
)

// Stores bundles all in-memory repository implementations.
type Stores struct {
	LicenseRepo  *InMemoryLicenseStore
	OrderRepo    *InMemoryOrderStore
	PaymentRepo  *InMemoryPaymentStore
	CustomerRepo *InMemoryCustomerStore
	VoucherRepo  *InMemoryVoucherStore
	SettingRepo  *InMemorySettingStore
	AuditRepo    *InMemoryAuditStore
	WALogRepo    *InMemoryNotificationLogStore
}

// NewStores creates a fresh set of in-memory stores. The order store holds
// the voucher store so a voucher redemption shares the order insert's
// transactional unit.
func NewStores() Stores {
	vouchers := NewInMemoryVoucherStore()
	return Stores{
		LicenseRepo:  NewInMemoryLicenseStore(),
		OrderRepo:    NewInMemoryOrderStore(vouchers),
		PaymentRepo:  NewInMemoryPaymentStore(),
		CustomerRepo: NewInMemoryCustomerStore(),
		VoucherRepo:  vouchers,
		SettingRepo:  NewInMemorySettingStore(),
		AuditRepo:    NewInMemoryAuditStore(),
		WALogRepo:    NewInMemoryNotificationLogStore(),
	}
}

// BaseServiceTestSuite provides common setup for service tests: a tenant
// scoped context, fresh in-memory stores, a recording sender and a verdict
// cache per test.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	sender *FakeSender
	cache  *gocache.Cache
	logger *logger.Logger
	config *config.Configuration
}

// SetupTest initializes fresh state for each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupConfig()
	s.stores = NewStores()
	s.sender = NewFakeSender()
	s.cache = gocache.New(30*time.Second, time.Minute)
}

// TearDownTest drops per-test state
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
	s.sender.Reset()
	s.cache.Flush()
}

func (s *BaseServiceTestSuite) setupContext() {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, "user_test")
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) setupConfig() {
	s.config = config.GetDefaultConfig()
	log, err := logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.logger = log
}

// GetContext returns the tenant scoped test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the in-memory stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetSender returns the recording sender
func (s *BaseServiceTestSuite) GetSender() *FakeSender {
	return s.sender
}

// GetCache returns the verdict cache
func (s *BaseServiceTestSuite) GetCache() *gocache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// ClearStores resets every store
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.LicenseRepo.Clear()
	s.stores.OrderRepo.Clear()
	s.stores.PaymentRepo.Clear()
	s.stores.CustomerRepo.Clear()
	s.stores.VoucherRepo.Clear()
	s.stores.SettingRepo.Clear()
	s.stores.AuditRepo.Clear()
	s.stores.WALogRepo.Clear()
}
