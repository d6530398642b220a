package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTP     HTTPConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	CRM      CRMConfig
	Orders   OrdersConfig
}

type HTTPConfig struct {
	Addr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
}

type CatalogConfig struct {
	// Path to a YAML pricing schedule. Empty means the built-in catalog.
	Path string `env:"CATALOG_PATH"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"2m"`
}

type TelegramConfig struct {
	Token     string `env:"TELEGRAM_TOKEN"`
	ChannelID int64  `env:"TELEGRAM_CHANNEL_ID"`
}

// CRMConfig points at the CRM that receives new orders as leads.
type CRMConfig struct {
	BaseURL string        `env:"CRM_BASE_URL"`
	APIKey  string        `env:"CRM_API_KEY"`
	Timeout time.Duration `env:"CRM_TIMEOUT" envDefault:"30s"`
}

type OrdersConfig struct {
	RateLimit  int64         `env:"ORDER_RATE_LIMIT" envDefault:"5"`
	RateWindow time.Duration `env:"ORDER_RATE_WINDOW" envDefault:"10m"`
	ReportsDir string        `env:"REPORTS_DIR" envDefault:"reports"`
}

// Enabled reports whether a database host was configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (outside production) and then the process environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Database.Enabled() && cfg.Database.Name == "" {
		return nil, fmt.Errorf("DB_NAME is required when DB_HOST is set")
	}
	if cfg.Telegram.Token != "" && cfg.Telegram.ChannelID == 0 {
		return nil, fmt.Errorf("TELEGRAM_CHANNEL_ID is required when TELEGRAM_TOKEN is set")
	}
	if cfg.CRM.BaseURL != "" && cfg.CRM.APIKey == "" {
		return nil, fmt.Errorf("CRM_API_KEY is required when CRM_BASE_URL is set")
	}
	if cfg.Orders.RateLimit < 0 {
		return nil, fmt.Errorf("ORDER_RATE_LIMIT must not be negative")
	}

	return &cfg, nil
}
