package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration is the root of all runtime configuration. Values come from
// config/config.yaml overridden by LBPOS_* environment variables; a local
// .env file is loaded first when present.
type Configuration struct {
	Deployment   DeploymentConfig   `mapstructure:"deployment"`
	Server       ServerConfig       `mapstructure:"server"`
	Postgres     PostgresConfig     `mapstructure:"postgres"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Notification NotificationConfig `mapstructure:"notification"`
	Billing      BillingConfig      `mapstructure:"billing"`
}

type DeploymentConfig struct {
	Mode string `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type CacheConfig struct {
	// EntitlementTTLSeconds bounds how long an entitlement verdict may be
	// served from cache. The cache is advisory only; consequential writes
	// always re-evaluate.
	EntitlementTTLSeconds int `mapstructure:"entitlement_ttl_seconds"`
}

type NotificationConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	GatewayURL string `mapstructure:"gateway_url"`
	APIKey     string `mapstructure:"api_key"`
	OwnerEmail string `mapstructure:"owner_email"`
	// TimeoutSeconds bounds a single delivery attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	MaxRetries     int `mapstructure:"max_retries"`
}

type BillingConfig struct {
	// PointUnitIDR is the order total per loyalty point, floor division.
	PointUnitIDR int64 `mapstructure:"point_unit_idr"`
	// MonthlyPriceIDR and YearlyPriceIDR are the renewal package prices.
	MonthlyPriceIDR int64 `mapstructure:"monthly_price_idr"`
	YearlyPriceIDR  int64 `mapstructure:"yearly_price_idr"`
}

// PointUnit returns the loyalty point unit as a decimal.
func (b BillingConfig) PointUnit() decimal.Decimal {
	return decimal.NewFromInt(b.PointUnitIDR)
}

// NewConfig loads the configuration from file and environment.
func NewConfig() (*Configuration, error) {
	// .env is optional, used for local development only.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("LBPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and value bounds.
func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", "api")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.dbname", "lbpos")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.auto_migrate", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("cache.entitlement_ttl_seconds", 30)
	v.SetDefault("notification.enabled", true)
	v.SetDefault("notification.timeout_seconds", 10)
	v.SetDefault("notification.max_retries", 2)
	v.SetDefault("billing.point_unit_idr", 10000)
	v.SetDefault("billing.monthly_price_idr", 50000)
	v.SetDefault("billing.yearly_price_idr", 500000)
}

// GetDefaultConfig returns a configuration suitable for tests and scripts
// that run without a config file.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: "local"},
		Server:     ServerConfig{Address: ":8080"},
		Postgres:   PostgresConfig{Host: "localhost", Port: 5432, User: "postgres", DBName: "lbpos", SSLMode: "disable"},
		Logging:    LoggingConfig{Level: "debug"},
		Cache:      CacheConfig{EntitlementTTLSeconds: 30},
		Notification: NotificationConfig{
			Enabled:        false,
			TimeoutSeconds: 10,
			MaxRetries:     2,
		},
		Billing: BillingConfig{
			PointUnitIDR:    10000,
			MonthlyPriceIDR: 50000,
			YearlyPriceIDR:  500000,
		},
	}
}
