package v1

import (
	"net/http"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/service"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, log: log}
}

// @Summary Request a subscription renewal
// @Description Creates a pending-verification payment for the chosen
// package. Open to expired tenants, it is the recovery path.
// @Tags Payments
// @Accept json
// @Produce json
// @Param renewal body dto.RequestRenewalRequest true "Renewal payload"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /payments/renewals [post]
func (h *PaymentHandler) RequestRenewal(c *gin.Context) {
	var req dto.RequestRenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RequestRenewal(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary List the tenant's renewal requests
// @Tags Payments
// @Produce json
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /payments/renewals [get]
func (h *PaymentHandler) ListRenewals(c *gin.Context) {
	resp, err := h.service.ListRenewals(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List pending renewals awaiting verification
// @Description Cross-tenant admin queue, oldest submissions first
// @Tags Payments
// @Produce json
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /payments/renewals/pending [get]
func (h *PaymentHandler) ListPendingRenewals(c *gin.Context) {
	resp, err := h.service.ListPendingRenewals(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
