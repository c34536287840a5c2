package v1

import (
	"net/http"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	"github.com/lordbyaku/lbpos/internal/domain/order"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/service"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service service.OrderService
	log     *logger.Logger
}

func NewOrderHandler(service service.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{service: service, log: log}
}

// @Summary Create a new order
// @Description Create an order at the received stage with its line items
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order payload"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an order by ID
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	resp, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get an order by its code
// @Tags Orders
// @Produce json
// @Param code path string true "Order code"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/code/{code} [get]
func (h *OrderHandler) GetOrderByCode(c *gin.Context) {
	resp, err := h.service.GetOrderByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List orders
// @Tags Orders
// @Produce json
// @Param order_status query string false "Filter by stage"
// @Param payment_state query string false "Filter by payment state"
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} dto.ListOrdersResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var filter order.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	filter.QueryFilter = types.NewDefaultQueryFilter()
	if err := c.ShouldBindQuery(filter.QueryFilter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid pagination parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListOrders(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Advance an order to a target stage
// @Description The target must be the immediate successor; requesting the
// current stage is a no-op success
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param transition body dto.TransitionOrderRequest true "Target stage"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /orders/{id}/transition [post]
func (h *OrderHandler) Transition(c *gin.Context) {
	var req dto.TransitionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Transition(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Scan an order code and advance it one stage
// @Description An order already picked up is reported unchanged
// @Tags Orders
// @Produce json
// @Param code path string true "Order code"
// @Success 200 {object} dto.ScanAdvanceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/scan/{code} [post]
func (h *OrderHandler) ScanAdvance(c *gin.Context) {
	resp, err := h.service.ScanAdvance(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Edit an order's payment fields
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body dto.UpdateOrderRequest true "Fields to update"
// @Success 200 {object} dto.OrderResponse
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an order
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get an order's transition history
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderHistoryResponse
// @Router /orders/{id}/history [get]
func (h *OrderHandler) ListHistory(c *gin.Context) {
	resp, err := h.service.ListHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
