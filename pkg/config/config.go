package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the gateway reads.
const EnvPrefix = "VERILOCAL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Platform PlatformConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Checkout CheckoutConfig
	Pricing  PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"VERILOCAL_APP_ENV" required:"true"`
	Port         string   `envconfig:"VERILOCAL_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"VERILOCAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"VERILOCAL_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"VERILOCAL_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PlatformConfig points the gateway at the upstream platform backend that
// owns all persistence, payments, and geographic reference data.
type PlatformConfig struct {
	BaseURL string        `envconfig:"VERILOCAL_PLATFORM_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"VERILOCAL_PLATFORM_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"VERILOCAL_PLATFORM_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VERILOCAL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VERILOCAL_REDIS_ADDR"`
	Password     string        `envconfig:"VERILOCAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"VERILOCAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VERILOCAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VERILOCAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VERILOCAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VERILOCAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VERILOCAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies admin bearer tokens minted by the external auth service.
type JWTConfig struct {
	Secret string `envconfig:"VERILOCAL_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"VERILOCAL_JWT_ISSUER" required:"true"`
}

type CheckoutConfig struct {
	SessionTTLMinutes int `envconfig:"VERILOCAL_CHECKOUT_SESSION_TTL_MINUTES" default:"120"`
}

// SessionTTL returns the checkout session TTL configured in minutes.
func (c CheckoutConfig) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

type PricingConfig struct {
	DefaultVerificationFee string `envconfig:"VERILOCAL_PRICING_DEFAULT_VERIFICATION_FEE" default:"5000"`
}
