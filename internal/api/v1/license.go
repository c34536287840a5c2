package v1

import (
	"net/http"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/service"
	"github.com/lordbyaku/lbpos/internal/types"
	"github.com/gin-gonic/gin"
)

type LicenseHandler struct {
	service service.LicenseService
	log     *logger.Logger
}

func NewLicenseHandler(service service.LicenseService, log *logger.Logger) *LicenseHandler {
	return &LicenseHandler{service: service, log: log}
}

// @Summary Get the tenant's entitlement verdict
// @Description Returns the verdict (aktif, masa_tenggang, kedaluwarsa) and
// the backing license for the banner
// @Tags Licenses
// @Produce json
// @Success 200 {object} dto.EntitlementResponse
// @Router /licenses/entitlement [get]
func (h *LicenseHandler) GetEntitlement(c *gin.Context) {
	resp, err := h.service.GetEntitlement(c.Request.Context(), types.GetTenantID(c.Request.Context()))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List the tenant's license rows
// @Tags Licenses
// @Produce json
// @Success 200 {array} dto.LicenseResponse
// @Router /licenses [get]
func (h *LicenseHandler) ListLicenses(c *gin.Context) {
	resp, err := h.service.ListLicenses(c.Request.Context(), types.GetTenantID(c.Request.Context()))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Approve a pending renewal payment
// @Description Marks the payment paid and stacks a new license onto the
// current expiry
// @Tags Licenses
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.ApproveRenewalResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /licenses/renewals/{id}/approve [post]
func (h *LicenseHandler) ApproveRenewal(c *gin.Context) {
	resp, err := h.service.ApproveRenewal(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Reject a pending renewal payment
// @Tags Licenses
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param rejection body dto.RejectRenewalRequest true "Rejection notes"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /licenses/renewals/{id}/reject [post]
func (h *LicenseHandler) RejectRenewal(c *gin.Context) {
	var req dto.RejectRenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RejectRenewal(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
