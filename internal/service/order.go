package service

import (
	"context"
	"time"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/auditlog"
	"github.com/lordbyaku/lbpos/internal/domain/customer"
	"github.com/lordbyaku/lbpos/internal/domain/notification"
	"github.com/lordbyaku/lbpos/internal/domain/order"
	"github.com/lordbyaku/lbpos/internal/domain/tenant"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/lordbyaku/lbpos/internal/wanotify"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// OrderService owns the order lifecycle: creation at the first stage,
// forward-only transitions with an append-only history, scan-driven
// auto-advance, administrative edits and deletion. Every mutation except
// deletion is gated on a fresh entitlement verdict.
type OrderService interface {
	// CreateOrder inserts an order at the received stage with its line
	// items, re-validates and redeems any voucher, awards loyalty points
	// and writes the audit entry.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)

	// GetOrder retrieves an order by ID
	GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error)

	// GetOrderByCode retrieves an order by its code / barcode value
	GetOrderByCode(ctx context.Context, code string) (*dto.OrderResponse, error)

	// ListOrders lists the tenant's orders
	ListOrders(ctx context.Context, filter *order.Filter) (*dto.ListOrdersResponse, error)

	// Transition advances the order to the requested target stage. The
	// target must be the immediate successor; requesting the current stage
	// is a no-op success (a user cancel, not an error).
	Transition(ctx context.Context, id string, req dto.TransitionOrderRequest) (*dto.OrderResponse, error)

	// ScanAdvance locates an order by code and advances it one stage. An
	// order already at the terminal stage is reported as a no-op success.
	ScanAdvance(ctx context.Context, code string) (*dto.ScanAdvanceResponse, error)

	// UpdateOrder is the administrative edit path for payment and note
	// fields; it bypasses the stage machine.
	UpdateOrder(ctx context.Context, id string, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)

	// DeleteOrder removes an order after writing the audit entry that
	// captures its code. It does not check entitlement state.
	DeleteOrder(ctx context.Context, id string) error

	// ListHistory returns the order's transition history, oldest first
	ListHistory(ctx context.Context, id string) (*dto.OrderHistoryResponse, error)
}

type orderService struct {
	ServiceParams
	entitlement EntitlementService
	vouchers    *voucherService
}

// NewOrderService creates a new order service
func NewOrderService(params ServiceParams, entitlement EntitlementService) OrderService {
	return &orderService{
		ServiceParams: params,
		entitlement:   entitlement,
		vouchers:      &voucherService{ServiceParams: params, entitlement: entitlement},
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tenantID := types.GetTenantID(ctx)
	if err := s.entitlement.Authorize(ctx, tenantID); err != nil {
		return nil, err
	}

	cust, err := s.resolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	o := order.New(tenantID, cust.ID)
	o.CreatedBy = types.GetUserID(ctx)
	o.UpdatedBy = types.GetUserID(ctx)
	o.Note = req.Note
	o.PaymentMethod = req.PaymentMethod
	o.DownPaymentIDR = req.DownPaymentIDR.Round(0)

	items := make([]*order.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = &order.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixOrderItem),
			OrderID:     o.ID,
			ServiceID:   it.ServiceID,
			Name:        it.Name,
			UnitIDR:     it.UnitIDR.Round(0),
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			SubtotalIDR: it.Subtotal(),
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}
	}

	subtotal := order.Subtotal(items)
	total := subtotal

	// Voucher is re-validated here, not trusted from the client. The quota
	// itself is consumed inside the insert's transactional unit below, so a
	// failed insert never burns a redemption.
	var voucherID string
	if req.VoucherCode != "" {
		discount, id, err := s.applyVoucher(ctx, req.VoucherCode, subtotal)
		if err != nil {
			return nil, err
		}
		voucherID = id
		o.VoucherCode = discount.Code
		o.DiscountIDR = discount.Discount
		total = discount.FinalTotal
	}
	o.TotalIDR = total

	o.PaymentState = req.PaymentState
	if o.PaymentState == "" {
		o.PaymentState = types.PaymentStateUnpaid
	}
	switch o.PaymentState {
	case types.PaymentStatePaid:
		o.PaidIDR = total
	default:
		o.PaidIDR = o.DownPaymentIDR
	}

	if err := s.OrderRepo.CreateWithItems(ctx, o, items, voucherID); err != nil {
		return nil, err
	}
	o.Items = items

	// Loyalty: one point per whole point unit of the final total.
	points := total.Div(s.Config.Billing.PointUnit()).Floor().IntPart()
	if points > 0 {
		if err := s.CustomerRepo.AddPoints(ctx, cust.ID, points); err != nil {
			s.Logger.WithContext(ctx).Errorw("point accrual failed",
				"order_id", o.ID,
				"customer_id", cust.ID,
				"points", points,
				"error", err)
			points = 0
		}
	}

	entry := auditlog.NewEntry(tenantID, types.GetUserID(ctx),
		types.AuditActionCreateOrder, types.AuditEntityOrder, o.ID).
		WithNewData(o)
	if err := s.AuditRepo.Append(ctx, entry); err != nil {
		s.Logger.WithContext(ctx).Errorw("audit append failed for order creation",
			"order_id", o.ID,
			"error", err)
	}

	s.notifyStatus(ctx, o, cust)

	resp := dto.NewOrderResponse(o)
	resp.AwardedPoints = points
	return resp, nil
}

func (s *orderService) resolveCustomer(ctx context.Context, req dto.CreateOrderRequest) (*customer.Customer, error) {
	if req.NewCustomer != nil {
		c := customer.New(types.GetTenantID(ctx), req.NewCustomer.Name, req.NewCustomer.Phone, req.NewCustomer.Address)
		c.CreatedBy = types.GetUserID(ctx)
		c.UpdatedBy = types.GetUserID(ctx)
		return s.CustomerRepo.UpsertByPhone(ctx, c)
	}
	return s.CustomerRepo.Get(ctx, req.CustomerID)
}

// applyVoucher re-validates the code against the subtotal and resolves the
// voucher ID. The redemption itself happens inside CreateWithItems, where a
// conditional increment keeps two racing checkouts from sharing the last
// slot.
func (s *orderService) applyVoucher(ctx context.Context, code string, subtotal decimal.Decimal) (*dto.DiscountResponse, string, error) {
	discount, err := s.vouchers.CheckVoucher(ctx, dto.CheckVoucherRequest{Code: code, SubtotalIDR: subtotal})
	if err != nil {
		return nil, "", err
	}

	v, err := s.VoucherRepo.GetByCode(ctx, discount.Code)
	if err != nil {
		return nil, "", err
	}

	return discount, v.ID, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(o), nil
}

func (s *orderService) GetOrderByCode(ctx context.Context, code string) (*dto.OrderResponse, error) {
	o, err := s.OrderRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(o), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter *order.Filter) (*dto.ListOrdersResponse, error) {
	if filter == nil {
		filter = &order.Filter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	orders, err := s.OrderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.OrderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(orders, func(o *order.Order, _ int) *dto.OrderResponse {
		return dto.NewOrderResponse(o)
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter.GetLimit(), filter.QueryFilter.GetOffset())
	return &resp, nil
}

func (s *orderService) Transition(ctx context.Context, id string, req dto.TransitionOrderRequest) (*dto.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Requesting the current stage is a user cancel, not an error.
	if req.TargetStatus == o.OrderStatus {
		return dto.NewOrderResponse(o), nil
	}

	updated, err := s.advance(ctx, o, req.TargetStatus, req.Note)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(updated), nil
}

func (s *orderService) ScanAdvance(ctx context.Context, code string) (*dto.ScanAdvanceResponse, error) {
	o, err := s.OrderRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	next, ok := o.OrderStatus.Next()
	if !ok {
		// Already picked up: report success with no status change.
		return &dto.ScanAdvanceResponse{Order: o, Advanced: false}, nil
	}

	updated, err := s.advance(ctx, o, next, "")
	if err != nil {
		return nil, err
	}
	return &dto.ScanAdvanceResponse{Order: updated, Advanced: true}, nil
}

// advance gates on a fresh entitlement verdict, validates the successor rule
// and applies the transition as one transactional unit (status update plus
// history append). The notification afterwards is best-effort.
func (s *orderService) advance(ctx context.Context, o *order.Order, target types.OrderStatus, note string) (*order.Order, error) {
	if err := s.entitlement.Authorize(ctx, o.TenantID); err != nil {
		return nil, err
	}

	next, ok := o.OrderStatus.Next()
	if !ok || target != next {
		return nil, ierr.NewError("invalid status transition").
			WithHintf("Status hanya bisa maju satu tahap dari %s", o.OrderStatus.Label()).
			WithReportableDetails(map[string]interface{}{
				"order_id":       o.ID,
				"current_status": o.OrderStatus,
				"target_status":  target,
			}).
			Mark(ierr.ErrInvalidTransition)
	}

	updated, err := s.OrderRepo.TransitionStatus(ctx, o.ID, o.OrderStatus, target, note)
	if err != nil {
		return nil, err
	}

	cust, custErr := s.CustomerRepo.Get(ctx, updated.CustomerID)
	if custErr != nil {
		s.Logger.WithContext(ctx).Warnw("customer lookup failed, skipping notification",
			"order_id", updated.ID,
			"customer_id", updated.CustomerID,
			"error", custErr)
		return updated, nil
	}
	s.notifyStatus(ctx, updated, cust)

	return updated, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id string, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.entitlement.Authorize(ctx, o.TenantID); err != nil {
		return nil, err
	}

	if req.PaymentState != nil {
		o.PaymentState = *req.PaymentState
		if o.PaymentState == types.PaymentStatePaid {
			o.PaidIDR = o.TotalIDR
		}
	}
	if req.PaymentMethod != nil {
		o.PaymentMethod = *req.PaymentMethod
	}
	if req.PaidIDR != nil {
		o.PaidIDR = req.PaidIDR.Round(0)
	}
	if req.Note != nil {
		o.Note = *req.Note
	}
	o.UpdatedAt = time.Now().UTC()
	o.UpdatedBy = types.GetUserID(ctx)

	if err := s.OrderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(o), nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	// The audit entry capturing the code is written before the row goes
	// away; if it cannot be written the deletion does not happen.
	entry := auditlog.NewEntry(o.TenantID, types.GetUserID(ctx),
		types.AuditActionDeleteOrder, types.AuditEntityOrder, o.ID).
		WithOldData(map[string]interface{}{"code": o.Code})
	if err := s.AuditRepo.Append(ctx, entry); err != nil {
		return ierr.WithError(err).
			WithHint("Gagal menulis jejak audit, pesanan tidak dihapus").
			Mark(ierr.ErrDatabase)
	}

	if err := s.OrderRepo.Delete(ctx, id); err != nil {
		s.Logger.WithContext(ctx).Errorw("order delete failed after audit entry written",
			"order_id", o.ID,
			"order_code", o.Code,
			"error", err)
		return err
	}

	s.Logger.WithContext(ctx).Infow("order deleted",
		"order_id", o.ID,
		"order_code", o.Code)
	return nil
}

func (s *orderService) ListHistory(ctx context.Context, id string) (*dto.OrderHistoryResponse, error) {
	if _, err := s.OrderRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	entries, err := s.OrderRepo.ListHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.OrderHistoryResponse{Items: entries}, nil
}

// notifyStatus sends the customer a WhatsApp message for the order's
// current stage. Failures are logged and recorded in the delivery log;
// they never fail the primary operation.
func (s *orderService) notifyStatus(ctx context.Context, o *order.Order, cust *customer.Customer) {
	if !s.waEnabled(ctx) {
		return
	}
	if cust == nil || cust.Phone == "" {
		s.Logger.WithContext(ctx).Debugw("customer has no phone, skipping notification",
			"order_id", o.ID)
		return
	}

	message := wanotify.RenderTemplate(s.templateFor(ctx, o.OrderStatus), wanotify.TemplateVars{
		Name:         cust.Name,
		Code:         o.Code,
		StatusLabel:  o.OrderStatus.Label(),
		PaymentLabel: o.PaymentState.Label(),
		Nominal:      formatRupiah(o.TotalIDR),
	})

	sendErr := s.Sender.Send(ctx, cust.Phone, message)
	status := notification.DeliverySent
	if sendErr != nil {
		status = notification.DeliveryFailed
		s.Logger.WithContext(ctx).Warnw("wa notification failed",
			"order_id", o.ID,
			"order_code", o.Code,
			"error", sendErr)
	}

	logEntry := notification.NewLog(o.TenantID, o.ID, wanotify.NormalizePhone(cust.Phone), message, status, sendErr)
	if err := s.WALogRepo.Append(ctx, logEntry); err != nil {
		s.Logger.WithContext(ctx).Warnw("notification log append failed",
			"order_id", o.ID,
			"error", err)
	}
}

// waEnabled honors the per-tenant notification toggle; missing setting
// means enabled.
func (s *orderService) waEnabled(ctx context.Context) bool {
	setting, err := s.SettingRepo.GetSetting(ctx, tenant.SettingFeatureWA)
	if err != nil {
		return true
	}
	return setting.BoolValue(true)
}

// templateFor returns the tenant's custom template for the stage, falling
// back to the built-in default.
func (s *orderService) templateFor(ctx context.Context, status types.OrderStatus) string {
	setting, err := s.SettingRepo.GetSetting(ctx, tenant.SettingWATemplates)
	if err == nil {
		if m := setting.TemplateMap(); m != nil {
			if t, ok := m[status.String()]; ok && t != "" {
				return t
			}
		}
	}
	return wanotify.DefaultTemplate(status)
}

func formatRupiah(d decimal.Decimal) string {
	return wanotify.FormatRupiah(d.Round(0).IntPart())
}
