package v1

import (
	"net/http"

	"github.com/lordbyaku/lbpos/internal/api/dto"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/service"
	"github.com/gin-gonic/gin"
)

type VoucherHandler struct {
	service service.VoucherService
	log     *logger.Logger
}

func NewVoucherHandler(service service.VoucherService, log *logger.Logger) *VoucherHandler {
	return &VoucherHandler{service: service, log: log}
}

// @Summary Create a voucher
// @Tags Vouchers
// @Accept json
// @Produce json
// @Param voucher body dto.CreateVoucherRequest true "Voucher payload"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /vouchers [post]
func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateVoucher(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a voucher by ID
// @Tags Vouchers
// @Produce json
// @Param id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	resp, err := h.service.GetVoucher(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update a voucher
// @Tags Vouchers
// @Accept json
// @Produce json
// @Param id path string true "Voucher ID"
// @Param voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Router /vouchers/{id} [put]
func (h *VoucherHandler) UpdateVoucher(c *gin.Context) {
	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateVoucher(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a voucher
// @Tags Vouchers
// @Param id path string true "Voucher ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /vouchers/{id} [delete]
func (h *VoucherHandler) DeleteVoucher(c *gin.Context) {
	if err := h.service.DeleteVoucher(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List the tenant's vouchers
// @Tags Vouchers
// @Produce json
// @Success 200 {object} dto.ListVouchersResponse
// @Router /vouchers [get]
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	resp, err := h.service.ListVouchers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Check a voucher code against a subtotal
// @Description Returns the computed discount for a draft cart. Advisory
// only, the discount is recomputed server side at order creation.
// @Tags Vouchers
// @Accept json
// @Produce json
// @Param check body dto.CheckVoucherRequest true "Code and subtotal"
// @Success 200 {object} dto.DiscountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /vouchers/check [post]
func (h *VoucherHandler) CheckVoucher(c *gin.Context) {
	var req dto.CheckVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CheckVoucher(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
