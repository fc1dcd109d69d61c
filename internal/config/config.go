package config

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	dotenv "github.com/osa911/contactrelay/internal/config/env"

	"github.com/caarlos0/env/v10"
)

// Mail providers understood by MAIL_PROVIDER
const (
	ProviderHTTP   = "http"
	ProviderSES    = "ses"
	ProviderResend = "resend"
	ProviderLog    = "log"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment     string        `env:"ENV" envDefault:"development"`
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:":8080"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE" envDefault:"./logs/contactrelay.log"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogRequests   bool   `env:"LOG_REQUESTS" envDefault:"true"`

	Mail      MailConfig
	RateLimit RateLimitConfig

	// Contact form payload bound, checked before decoding
	MaxBodyBytes int64 `env:"CONTACT_MAX_BODY_BYTES" envDefault:"8192"`

	// Telemetry Configuration
	SentryDSN    string `env:"SENTRY_DSN"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// MailConfig configures the outbound mail API. From and To are never taken
// from the request.
type MailConfig struct {
	From       string        `env:"MAIL_FROM"`
	To         string        `env:"MAIL_TO"`
	Provider   string        `env:"MAIL_PROVIDER" envDefault:"http"`
	APIURL     string        `env:"MAIL_API_URL"`
	APIKey     string        `env:"MAIL_API_KEY"`
	AWSRegion  string        `env:"AWS_REGION"`
	Timeout    time.Duration `env:"MAIL_TIMEOUT" envDefault:"5s"`
	RetryDelay time.Duration `env:"MAIL_RETRY_DELAY" envDefault:"250ms"`
}

// RateLimitConfig configures the per-caller token bucket. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"100"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Provisioned API keys that get their own bucket
	APIKeys []string `env:"API_KEYS" envSeparator:","`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	if _, err := dotenv.LoadEnv(); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))
	if cfg.LogFile == "-" {
		cfg.LogFile = ""
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks the configuration for values the service cannot start without
func (c *Config) Validate() error {
	var errs []error

	if err := validateAddress("MAIL_FROM", c.Mail.From); err != nil {
		errs = append(errs, err)
	}
	if err := validateAddress("MAIL_TO", c.Mail.To); err != nil {
		errs = append(errs, err)
	}

	switch c.Mail.Provider {
	case ProviderHTTP:
		if c.Mail.APIURL == "" {
			errs = append(errs, errors.New("MAIL_API_URL is required for the http provider"))
		}
	case ProviderSES:
		if c.Mail.AWSRegion == "" {
			errs = append(errs, errors.New("AWS_REGION is required for the ses provider"))
		}
	case ProviderResend:
		if c.Mail.APIKey == "" {
			errs = append(errs, errors.New("MAIL_API_KEY is required for the resend provider"))
		}
	case ProviderLog:
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider))
	}

	if c.Mail.Timeout <= 0 {
		errs = append(errs, errors.New("MAIL_TIMEOUT must be positive"))
	}
	if c.Mail.RetryDelay < 0 {
		errs = append(errs, errors.New("MAIL_RETRY_DELAY must be non-negative"))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate limit values must be non-negative"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when the limiter is enabled"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("CONTACT_MAX_BODY_BYTES must be positive"))
	}

	return errors.Join(errs...)
}

func validateAddress(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid address: %w", name, err)
	}
	if addr.Name != "" || addr.Address != value {
		return fmt.Errorf("%s must be a bare address", name)
	}
	return nil
}
