package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/license"
	"github.com/lordbyaku/lbpos/internal/domain/notification"
	"github.com/lordbyaku/lbpos/internal/domain/order"
	"github.com/lordbyaku/lbpos/internal/domain/tenant"
	"github.com/lordbyaku/lbpos/internal/domain/voucher"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/testutil"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     OrderService
	entitlement EntitlementService
	params      ServiceParams
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
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
	s.service = NewOrderService(s.params, s.entitlement)
}

func (s *OrderServiceSuite) seedActiveLicense() {
	now := time.Now().UTC()
	l := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-24*time.Hour), now.Add(29*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), l))
}

func (s *OrderServiceSuite) seedGraceLicense() {
	now := time.Now().UTC()
	l := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-31*24*time.Hour), now.Add(-24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Create(s.GetContext(), l))
}

func (s *OrderServiceSuite) newOrderRequest(unitIDR int64, qty int64) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		NewCustomer: &dto.CreateCustomerRequest{
			Name:  "Budi Santoso",
			Phone: "081234567890",
		},
		Items: []dto.CreateOrderItem{
			{Name: "Cuci Kering", UnitIDR: decimal.NewFromInt(unitIDR), Quantity: decimal.NewFromInt(qty), Unit: "kg"},
		},
		PaymentState:  types.PaymentStateUnpaid,
		PaymentMethod: types.PaymentMethodCash,
	}
}

func (s *OrderServiceSuite) seedVoucher(v *voucher.Voucher) *voucher.Voucher {
	if v.ID == "" {
		v.ID = types.GenerateUUIDWithPrefix(types.UUIDPrefixVoucher)
	}
	v.BaseModel = types.BaseModel{
		TenantID:  types.DefaultTenantID,
		Status:    types.StatusPublished,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.NoError(s.GetStores().VoucherRepo.Create(s.GetContext(), v))
	return v
}

func (s *OrderServiceSuite) TestCreateOrder() {
	s.seedActiveLicense()

	resp, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(types.OrderStatusReceived, resp.OrderStatus)
	s.True(resp.TotalIDR.Equal(decimal.NewFromInt(35000)))
	s.NotEmpty(resp.Code)
	s.Len(resp.Items, 1)
}

func (s *OrderServiceSuite) TestCreateOrderAwardsPoints() {
	s.seedActiveLicense()

	// 35.000 at 10.000 per point floors to 3.
	resp, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)
	s.Equal(int64(3), resp.AwardedPoints)

	cust, err := s.GetStores().CustomerRepo.Get(s.GetContext(), resp.CustomerID)
	s.NoError(err)
	s.Equal(int64(3), cust.PointBalance)
}

func (s *OrderServiceSuite) TestCreateOrderWritesAuditEntry() {
	s.seedActiveLicense()

	resp, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	entries, err := s.GetStores().AuditRepo.ListByEntity(s.GetContext(), string(types.AuditEntityOrder), resp.ID)
	s.NoError(err)
	s.Len(entries, 1)
	s.Equal(types.AuditActionCreateOrder, entries[0].Action)
}

func (s *OrderServiceSuite) TestCreateOrderSendsNotification() {
	s.seedActiveLicense()

	resp, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	messages := s.GetSender().Messages()
	s.Len(messages, 1)
	s.Contains(messages[0].Message, "Budi Santoso")
	s.Contains(messages[0].Message, resp.Code)

	logs, err := s.GetStores().WALogRepo.List(s.GetContext())
	s.NoError(err)
	s.Len(logs, 1)
	s.Equal(notification.DeliverySent, logs[0].DeliveryStatus)
}

func (s *OrderServiceSuite) TestCreateOrderSenderFailureDoesNotFailOrder() {
	s.seedActiveLicense()
	s.GetSender().Err = ierr.NewError("gateway down").Mark(ierr.ErrHTTPClient)

	resp, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)
	s.NotNil(resp)

	logs, err := s.GetStores().WALogRepo.List(s.GetContext())
	s.NoError(err)
	s.Len(logs, 1)
	s.Equal(notification.DeliveryFailed, logs[0].DeliveryStatus)
	s.NotEmpty(logs[0].Error)
}

func (s *OrderServiceSuite) TestCreateOrderFeatureWADisabled() {
	s.seedActiveLicense()
	s.NoError(s.GetStores().SettingRepo.SetSetting(s.GetContext(),
		tenant.NewSetting(types.DefaultTenantID, tenant.SettingFeatureWA, json.RawMessage("false"))))

	_, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)
	s.Empty(s.GetSender().Messages())
}

func (s *OrderServiceSuite) TestCreateOrderReusesCustomerByPhone() {
	s.seedActiveLicense()

	first, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)
	second, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(5000, 2))
	s.NoError(err)

	s.Equal(first.CustomerID, second.CustomerID)
}

func (s *OrderServiceSuite) TestCreateOrderPaidInFull() {
	s.seedActiveLicense()

	req := s.newOrderRequest(7000, 5)
	req.PaymentState = types.PaymentStatePaid
	resp, err := s.service.CreateOrder(s.GetContext(), req)
	s.NoError(err)
	s.True(resp.PaidIDR.Equal(resp.TotalIDR))
}

func (s *OrderServiceSuite) TestCreateOrderDeniedInGrace() {
	s.seedGraceLicense()

	_, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.Error(err)
	s.True(ierr.IsEntitlementDenied(err))
}

func (s *OrderServiceSuite) TestCreateOrderDeniedWithoutLicense() {
	_, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.Error(err)
	s.True(ierr.IsEntitlementDenied(err))
}

func (s *OrderServiceSuite) TestCreateOrderEmptyCartRejected() {
	s.seedActiveLicense()

	_, err := s.service.CreateOrder(s.GetContext(), dto.CreateOrderRequest{
		NewCustomer: &dto.CreateCustomerRequest{Name: "Budi", Phone: "0812"},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OrderServiceSuite) TestCreateOrderWithFixedVoucher() {
	s.seedActiveLicense()
	s.seedVoucher(&voucher.Voucher{
		Code:        "HEMAT10",
		Type:        types.VoucherTypeFixed,
		Value:       decimal.NewFromInt(10000),
		MinOrderIDR: decimal.NewFromInt(30000),
		IsActive:    true,
	})

	req := s.newOrderRequest(7000, 5)
	req.VoucherCode = "HEMAT10"
	resp, err := s.service.CreateOrder(s.GetContext(), req)
	s.NoError(err)

	s.True(resp.DiscountIDR.Equal(decimal.NewFromInt(10000)))
	s.True(resp.TotalIDR.Equal(decimal.NewFromInt(25000)))
	s.Equal("HEMAT10", resp.VoucherCode)

	// Points follow the discounted total: 25.000 -> 2.
	s.Equal(int64(2), resp.AwardedPoints)
}

func (s *OrderServiceSuite) TestCreateOrderVoucherBelowMinOrder() {
	s.seedActiveLicense()
	s.seedVoucher(&voucher.Voucher{
		Code:        "HEMAT10",
		Type:        types.VoucherTypeFixed,
		Value:       decimal.NewFromInt(10000),
		MinOrderIDR: decimal.NewFromInt(50000),
		IsActive:    true,
	})

	// Subtotal 30.000 under the 50.000 threshold.
	req := s.newOrderRequest(15000, 2)
	req.VoucherCode = "HEMAT10"
	_, err := s.service.CreateOrder(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OrderServiceSuite) TestCreateOrderVoucherRedemptionCounted() {
	s.seedActiveLicense()
	max := 5
	v := s.seedVoucher(&voucher.Voucher{
		Code:           "HEMAT10",
		Type:           types.VoucherTypeFixed,
		Value:          decimal.NewFromInt(10000),
		MaxRedemptions: &max,
		IsActive:       true,
	})

	req := s.newOrderRequest(7000, 5)
	req.VoucherCode = "HEMAT10"
	_, err := s.service.CreateOrder(s.GetContext(), req)
	s.NoError(err)

	stored, err := s.GetStores().VoucherRepo.Get(s.GetContext(), v.ID)
	s.NoError(err)
	s.Equal(1, stored.TotalRedemptions)
}

// failingCreateOrderStore fails every insert while delegating the rest of
// the repository surface.
type failingCreateOrderStore struct {
	order.Repository
}

func (f *failingCreateOrderStore) CreateWithItems(ctx context.Context, o *order.Order, items []*order.LineItem, voucherID string) error {
	return ierr.NewError("order insert failed").
		WithHint("Operasi database gagal").
		Mark(ierr.ErrDatabase)
}

func (s *OrderServiceSuite) TestCreateOrderInsertFailureKeepsVoucherQuota() {
	s.seedActiveLicense()
	max := 5
	v := s.seedVoucher(&voucher.Voucher{
		Code:           "HEMAT10",
		Type:           types.VoucherTypeFixed,
		Value:          decimal.NewFromInt(10000),
		MaxRedemptions: &max,
		IsActive:       true,
	})

	params := s.params
	params.OrderRepo = &failingCreateOrderStore{Repository: s.GetStores().OrderRepo}
	svc := NewOrderService(params, s.entitlement)

	req := s.newOrderRequest(7000, 5)
	req.VoucherCode = "HEMAT10"
	_, err := svc.CreateOrder(s.GetContext(), req)
	s.Error(err)

	// No order landed, so no redemption may be consumed.
	stored, err := s.GetStores().VoucherRepo.Get(s.GetContext(), v.ID)
	s.NoError(err)
	s.Zero(stored.TotalRedemptions)
}

func (s *OrderServiceSuite) TestCreateWithItemsRollsBackRedemptionOnInsertFailure() {
	max := 5
	v := s.seedVoucher(&voucher.Voucher{
		Code:           "HEMAT10",
		Type:           types.VoucherTypeFixed,
		Value:          decimal.NewFromInt(10000),
		MaxRedemptions: &max,
		IsActive:       true,
	})

	o := order.New(types.DefaultTenantID, "cust_test")
	s.NoError(s.GetStores().OrderRepo.CreateWithItems(s.GetContext(), o, nil, v.ID))

	// Reinserting the same ID fails after the quota bump; the bump must be
	// rolled back with the rest of the unit.
	err := s.GetStores().OrderRepo.CreateWithItems(s.GetContext(), o, nil, v.ID)
	s.Error(err)

	stored, err := s.GetStores().VoucherRepo.Get(s.GetContext(), v.ID)
	s.NoError(err)
	s.Equal(1, stored.TotalRedemptions)
}

func (s *OrderServiceSuite) TestCreateOrderVoucherQuotaExhausted() {
	s.seedActiveLicense()
	max := 1
	s.seedVoucher(&voucher.Voucher{
		Code:             "HEMAT10",
		Type:             types.VoucherTypeFixed,
		Value:            decimal.NewFromInt(10000),
		MaxRedemptions:   &max,
		TotalRedemptions: 1,
		IsActive:         true,
	})

	req := s.newOrderRequest(7000, 5)
	req.VoucherCode = "HEMAT10"
	_, err := s.service.CreateOrder(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OrderServiceSuite) TestTransitionAdvancesOneStage() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	resp, err := s.service.Transition(s.GetContext(), created.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusWashing,
	})
	s.NoError(err)
	s.Equal(types.OrderStatusWashing, resp.OrderStatus)

	history, err := s.service.ListHistory(s.GetContext(), created.ID)
	s.NoError(err)
	s.Len(history.Items, 1)
	s.Equal(types.OrderStatusReceived, history.Items[0].FromStatus)
	s.Equal(types.OrderStatusWashing, history.Items[0].ToStatus)
}

func (s *OrderServiceSuite) TestTransitionSkipRejected() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	_, err = s.service.Transition(s.GetContext(), created.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusReady,
	})
	s.Error(err)
	s.True(ierr.IsInvalidTransition(err))
}

func (s *OrderServiceSuite) TestTransitionSameStatusIsNoOp() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	resp, err := s.service.Transition(s.GetContext(), created.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusReceived,
	})
	s.NoError(err)
	s.Equal(types.OrderStatusReceived, resp.OrderStatus)

	history, err := s.service.ListHistory(s.GetContext(), created.ID)
	s.NoError(err)
	s.Empty(history.Items)
}

func (s *OrderServiceSuite) TestTransitionBackwardRejected() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	_, err = s.service.Transition(s.GetContext(), created.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusWashing,
	})
	s.NoError(err)

	_, err = s.service.Transition(s.GetContext(), created.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusReceived,
	})
	s.Error(err)
	s.True(ierr.IsInvalidTransition(err))
}

func (s *OrderServiceSuite) TestTransitionDeniedInGrace() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	// License lapses into grace after the order exists.
	now := time.Now().UTC()
	lapsed := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-31*24*time.Hour), now.Add(-24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Supersede(s.GetContext(), types.DefaultTenantID, lapsed))

	_, err = s.service.Transition(s.GetContext(), created.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusWashing,
	})
	s.Error(err)
	s.True(ierr.IsEntitlementDenied(err))
}

func (s *OrderServiceSuite) TestTransitionNotifiesCustomer() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	_, err = s.service.Transition(s.GetContext(), created.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusWashing,
	})
	s.NoError(err)

	// One message at creation, one at the transition.
	s.Len(s.GetSender().Messages(), 2)
}

func (s *OrderServiceSuite) TestTransitionUsesCustomTemplate() {
	s.seedActiveLicense()
	templates, err := json.Marshal(map[string]string{
		types.OrderStatusWashing.String(): "Pesanan {{kode}} sedang dicuci ya!",
	})
	s.NoError(err)
	s.NoError(s.GetStores().SettingRepo.SetSetting(s.GetContext(),
		tenant.NewSetting(types.DefaultTenantID, tenant.SettingWATemplates, templates)))

	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	_, err = s.service.Transition(s.GetContext(), created.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusWashing,
	})
	s.NoError(err)

	messages := s.GetSender().Messages()
	s.Len(messages, 2)
	s.Equal("Pesanan "+created.Code+" sedang dicuci ya!", messages[1].Message)
}

func (s *OrderServiceSuite) TestScanAdvance() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	resp, err := s.service.ScanAdvance(s.GetContext(), created.Code)
	s.NoError(err)
	s.True(resp.Advanced)
	s.Equal(types.OrderStatusWashing, resp.Order.OrderStatus)
}

func (s *OrderServiceSuite) TestScanAdvanceAtTerminalIsNoOp() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	// Walk to the terminal stage.
	for i := 0; i < 3; i++ {
		_, err = s.service.ScanAdvance(s.GetContext(), created.Code)
		s.NoError(err)
	}

	resp, err := s.service.ScanAdvance(s.GetContext(), created.Code)
	s.NoError(err)
	s.False(resp.Advanced)
	s.Equal(types.OrderStatusPickedUp, resp.Order.OrderStatus)

	// The no-op scan writes no history entry.
	history, err := s.service.ListHistory(s.GetContext(), created.ID)
	s.NoError(err)
	s.Len(history.Items, 3)
}

func (s *OrderServiceSuite) TestScanAdvanceUnknownCode() {
	s.seedActiveLicense()

	_, err := s.service.ScanAdvance(s.GetContext(), "LND-TIDAKADA")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *OrderServiceSuite) TestConcurrentTransitionLosesRace() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	repo := s.GetStores().OrderRepo
	_, err = repo.TransitionStatus(s.GetContext(), created.ID, types.OrderStatusReceived, types.OrderStatusWashing, "")
	s.NoError(err)

	// The second writer still holds the stale expectation.
	_, err = repo.TransitionStatus(s.GetContext(), created.ID, types.OrderStatusReceived, types.OrderStatusWashing, "")
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *OrderServiceSuite) TestUpdateOrderPayment() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	paid := types.PaymentStatePaid
	resp, err := s.service.UpdateOrder(s.GetContext(), created.ID, dto.UpdateOrderRequest{
		PaymentState: &paid,
	})
	s.NoError(err)
	s.Equal(types.PaymentStatePaid, resp.PaymentState)
	s.True(resp.PaidIDR.Equal(resp.TotalIDR))
}

func (s *OrderServiceSuite) TestDeleteOrderWritesAuditWithCode() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	s.NoError(s.service.DeleteOrder(s.GetContext(), created.ID))

	_, err = s.service.GetOrder(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	entries, err := s.GetStores().AuditRepo.ListByEntity(s.GetContext(), string(types.AuditEntityOrder), created.ID)
	s.NoError(err)

	var deletes []*struct{ Code string }
	for _, e := range entries {
		if e.Action == types.AuditActionDeleteOrder {
			var old struct{ Code string }
			s.NoError(json.Unmarshal(e.OldData, &old))
			deletes = append(deletes, &old)
		}
	}
	s.Len(deletes, 1)
	s.Equal(created.Code, deletes[0].Code)
}

func (s *OrderServiceSuite) TestDeleteOrderWorksWhenExpired() {
	s.seedActiveLicense()
	created, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)

	// Deletion is not an entitlement gated write.
	now := time.Now().UTC()
	ended := license.New(types.DefaultTenantID, types.PackageMonthly, now.Add(-60*24*time.Hour), now.Add(-30*24*time.Hour))
	s.NoError(s.GetStores().LicenseRepo.Supersede(s.GetContext(), types.DefaultTenantID, ended))

	s.NoError(s.service.DeleteOrder(s.GetContext(), created.ID))
}

func (s *OrderServiceSuite) TestListOrdersFiltersByStatus() {
	s.seedActiveLicense()

	first, err := s.service.CreateOrder(s.GetContext(), s.newOrderRequest(7000, 5))
	s.NoError(err)
	_, err = s.service.CreateOrder(s.GetContext(), s.newOrderRequest(5000, 2))
	s.NoError(err)

	_, err = s.service.Transition(s.GetContext(), first.ID, dto.TransitionOrderRequest{
		TargetStatus: types.OrderStatusWashing,
	})
	s.NoError(err)

	resp, err := s.service.ListOrders(s.GetContext(), &order.Filter{OrderStatus: types.OrderStatusWashing})
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Len(resp.Items, 1)
	s.Equal(first.ID, resp.Items[0].ID)
}
