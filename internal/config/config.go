package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osa911/apexdrive/internal/logging"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development" validate:"oneof=development production test"`
	Port           string   `env:"API_PORT" envDefault:"8080" validate:"required,numeric"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	StaticDir      string   `env:"STATIC_DIR"`
	// TrustedProxies lists the proxy IPs/CIDRs whose forwarding headers are
	// believed. Empty means the peer address is always the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," validate:"dive,cidr|ip"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"10" validate:"gt=0"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"20" validate:"gt=0"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Contact form
	// Recipient is only checked for presence here; its format is reported
	// per request as a localized configuration error.
	Recipient             string `env:"CONTACT_RECIPIENT" validate:"required"`
	Sender                string `env:"CONTACT_SENDER" envDefault:"noreply@apexdrive.ru" validate:"required,email"`
	CooldownSeconds       int    `env:"CONTACT_COOLDOWN_SECONDS" envDefault:"60" validate:"gte=0"`
	ClientCooldownSeconds *int   `env:"CLIENT_COOLDOWN_SECONDS"`

	// Catalog page
	USDExchangeRate float64 `env:"USD_EXCHANGE_RATE" envDefault:"95" validate:"gt=0"`

	// Mail transport
	MailTransport string     `env:"MAIL_TRANSPORT" envDefault:"smtp" validate:"oneof=smtp log"`
	SMTP          SMTPConfig `envPrefix:"SMTP_"`

	// Session storage
	SessionStore string        `env:"SESSION_STORE" envDefault:"memory" validate:"oneof=memory redis postgres"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h" validate:"gt=0"`
	RedisAddr    string        `env:"REDIS_ADDR" validate:"required_if=SessionStore redis"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`
	DatabaseURL  string        `env:"DATABASE_URL" validate:"required_if=SessionStore postgres"`

	// Telegram mirror of accepted submissions
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// SMTPConfig describes the outgoing mail relay.
type SMTPConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"25" validate:"gt=0,lte=65535"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	StartTLS bool   `env:"STARTTLS" envDefault:"true"`
}

// Addr returns host:port.
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ClientCooldown is the cooldown advertised to the page script. It mirrors
// the server cooldown unless CLIENT_COOLDOWN_SECONDS is set.
func (c *Config) ClientCooldown() int {
	if c.ClientCooldownSeconds != nil && *c.ClientCooldownSeconds >= 0 {
		return *c.ClientCooldownSeconds
	}
	return c.CooldownSeconds
}

// Cooldown returns the server cooldown window.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks field constraints. Sessions must outlive the cooldown,
// otherwise an expired session would silently shorten it.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", logging.ErrInvalidConfig, err)
	}
	if c.SessionTTL < c.Cooldown() {
		return fmt.Errorf("%w: SESSION_TTL %s is shorter than CONTACT_COOLDOWN_SECONDS %d",
			logging.ErrInvalidConfig, c.SessionTTL, c.CooldownSeconds)
	}
	return nil
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables only. Used by tests.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("%w: %w", logging.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
