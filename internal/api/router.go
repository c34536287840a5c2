package api

import (
	"net/http"

	v1 "github.com/lordbyaku/lbpos/internal/api/v1"
	"github.com/lordbyaku/lbpos/internal/config"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Order    *v1.OrderHandler
	License  *v1.LicenseHandler
	Payment  *v1.PaymentHandler
	Voucher  *v1.VoucherHandler
	Customer *v1.CustomerHandler
}

// NewRouter builds the gin engine with the middleware chain and all
// versioned routes.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ContextMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := router.Group("/v1")

	orders := root.Group("/orders")
	{
		orders.POST("", handlers.Order.CreateOrder)
		orders.GET("", handlers.Order.ListOrders)
		orders.GET("/code/:code", handlers.Order.GetOrderByCode)
		orders.POST("/scan/:code", handlers.Order.ScanAdvance)
		orders.GET("/:id", handlers.Order.GetOrder)
		orders.PUT("/:id", handlers.Order.UpdateOrder)
		orders.DELETE("/:id", handlers.Order.DeleteOrder)
		orders.POST("/:id/transition", handlers.Order.Transition)
		orders.GET("/:id/history", handlers.Order.ListHistory)
	}

	licenses := root.Group("/licenses")
	{
		licenses.GET("", handlers.License.ListLicenses)
		licenses.GET("/entitlement", handlers.License.GetEntitlement)
		licenses.POST("/renewals/:id/approve", handlers.License.ApproveRenewal)
		licenses.POST("/renewals/:id/reject", handlers.License.RejectRenewal)
	}

	payments := root.Group("/payments")
	{
		payments.POST("/renewals", handlers.Payment.RequestRenewal)
		payments.GET("/renewals", handlers.Payment.ListRenewals)
		payments.GET("/renewals/pending", handlers.Payment.ListPendingRenewals)
	}

	vouchers := root.Group("/vouchers")
	{
		vouchers.POST("", handlers.Voucher.CreateVoucher)
		vouchers.GET("", handlers.Voucher.ListVouchers)
		vouchers.POST("/check", handlers.Voucher.CheckVoucher)
		vouchers.GET("/:id", handlers.Voucher.GetVoucher)
		vouchers.PUT("/:id", handlers.Voucher.UpdateVoucher)
		vouchers.DELETE("/:id", handlers.Voucher.DeleteVoucher)
	}

	customers := root.Group("/customers")
	{
		customers.POST("", handlers.Customer.UpsertCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
	}

	return router
}
