package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"

	"github.com/lordbyaku/lbpos/internal/api"
	v1 "github.com/lordbyaku/lbpos/internal/api/v1"
	"github.com/lordbyaku/lbpos/internal/config"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/postgres"
	"github.com/lordbyaku/lbpos/internal/repository"
	"github.com/lordbyaku/lbpos/internal/service"
	"github.com/lordbyaku/lbpos/internal/wanotify"
)

func main() {
	opts := []fx.Option{
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			postgres.NewDB,
		),
		fx.Provide(
			wanotify.NewSender,
			provideVerdictCache,
			provideServiceParams,
		),
		fx.Provide(
			service.NewEntitlementService,
			service.NewLicenseService,
			service.NewOrderService,
			service.NewPaymentService,
			service.NewVoucherService,
			service.NewCustomerService,
		),
		fx.Provide(
			v1.NewOrderHandler,
			v1.NewLicenseHandler,
			v1.NewPaymentHandler,
			v1.NewVoucherHandler,
			v1.NewCustomerHandler,
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
		fxLogger,
	}

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	fx.New(opts...).Run()
}

var fxLogger = fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
	return fxevent.NopLogger
})

func provideVerdictCache(cfg *config.Configuration) *gocache.Cache {
	ttl := time.Duration(cfg.Cache.EntitlementTTLSeconds) * time.Second
	return gocache.New(ttl, 2*ttl)
}

func provideServiceParams(
	cfg *config.Configuration,
	l *logger.Logger,
	db *gorm.DB,
	cache *gocache.Cache,
	sender wanotify.Sender,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:       l,
		Config:       cfg,
		LicenseRepo:  repository.NewLicenseRepository(db, l),
		OrderRepo:    repository.NewOrderRepository(db, l),
		PaymentRepo:  repository.NewPaymentRepository(db, l),
		CustomerRepo: repository.NewCustomerRepository(db, l),
		VoucherRepo:  repository.NewVoucherRepository(db, l),
		SettingRepo:  repository.NewSettingRepository(db, l),
		AuditRepo:    repository.NewAuditLogRepository(db, l),
		WALogRepo:    repository.NewNotificationLogRepository(db, l),
		Sender:       sender,
		VerdictCache: cache,
	}
}

func provideHandlers(
	order *v1.OrderHandler,
	license *v1.LicenseHandler,
	payment *v1.PaymentHandler,
	voucher *v1.VoucherHandler,
	customer *v1.CustomerHandler,
) api.Handlers {
	return api.Handlers{
		Order:    order,
		License:  license,
		Payment:  payment,
		Voucher:  voucher,
		Customer: customer,
	}
}

func startServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Configuration, l *logger.Logger) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			l.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					l.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Infow("shutting down server")
			return srv.Shutdown(ctx)
		},
	})
}
