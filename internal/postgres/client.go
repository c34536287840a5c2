// Package postgres owns the database handle used by the gorm repositories.
package postgres

import (
	"fmt"
	"time"

	"github.com/lordbyaku/lbpos/internal/config"
	"github.com/lordbyaku/lbpos/internal/domain/auditlog"
	"github.com/lordbyaku/lbpos/internal/domain/customer"
	"github.com/lordbyaku/lbpos/internal/domain/license"
	"github.com/lordbyaku/lbpos/internal/domain/notification"
	"github.com/lordbyaku/lbpos/internal/domain/order"
	"github.com/lordbyaku/lbpos/internal/domain/payment"
	"github.com/lordbyaku/lbpos/internal/domain/tenant"
	"github.com/lordbyaku/lbpos/internal/domain/voucher"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens the postgres connection and configures the pool.
func NewDB(cfg *config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	gormLevel := gormlogger.Warn
	if cfg.Logging.Level == "debug" {
		gormLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			WithReportableDetails(map[string]interface{}{
				"host":   cfg.Postgres.Host,
				"dbname": cfg.Postgres.DBName,
			}).
			Mark(ierr.ErrDatabase)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to access underlying sql.DB").
			Mark(ierr.ErrDatabase)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if cfg.Postgres.AutoMigrate {
		log.Infow("running schema auto migration")
		if err := migrate(db); err != nil {
			return nil, err
		}
	}

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"dbname", cfg.Postgres.DBName)
	return db, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&license.License{},
		&order.Order{},
		&order.LineItem{},
		&order.StatusHistory{},
		&payment.Payment{},
		&customer.Customer{},
		&voucher.Voucher{},
		&tenant.Setting{},
		&auditlog.Entry{},
		&notification.Log{},
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Schema migration failed").
			Mark(ierr.ErrDatabase)
	}

	// Composite tenant-scoped unique indexes; the upsert paths rely on them.
	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_tenant_phone ON customers (tenant_id, phone)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_tenant_code ON orders (tenant_id, code)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_vouchers_tenant_code ON vouchers (tenant_id, code)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tenant_settings_tenant_key ON tenant_settings (tenant_id, key)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return ierr.WithError(err).
				WithHint("Index creation failed").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}
