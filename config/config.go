package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Email provider names accepted in EMAIL_PROVIDER.
const (
	ProviderMailgun = "mailgun"
	ProviderResend  = "resend"
)

// Config holds all configuration for the relay. It is built once at startup
// and passed around as a read-only value.
type Config struct {
	// Server
	BindAddress string `env:"BIND_ADDRESS" envDefault:"0.0.0.0"`
	Port        string `env:"PORT" envDefault:"8088"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
	LogFile   string `env:"LOG_FILE"` // empty = stdout only

	// Email provider selection
	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"mailgun" validate:"oneof=mailgun resend"`

	// Mailgun (required when EMAIL_PROVIDER=mailgun)
	MailgunAPIKey  string `env:"MAILGUN_API_KEY"`
	MailgunDomain  string `env:"MAILGUN_DOMAIN"`
	MailgunAPIBase string `env:"MAILGUN_API_BASE" envDefault:"https://api.mailgun.net/v3" validate:"url"`

	// Resend (required when EMAIL_PROVIDER=resend)
	ResendAPIKey string `env:"RESEND_API_KEY"`

	// Destination mailbox for every submission.
	ContactEmailTo string `env:"CONTACT_EMAIL_TO" validate:"required,email"`
	// Fixed sender address. When empty the submitter's own address is used as
	// the From address (the submitter stays reachable via Reply-To either way).
	ContactEmailFrom string `env:"CONTACT_EMAIL_FROM" validate:"omitempty,email"`

	// Where the browser is sent after processing.
	RedirectURL string `env:"REDIRECT_URL" validate:"required,url"`

	// Upper bound on one outbound send, including connection setup.
	SendTimeout time.Duration `env:"SEND_TIMEOUT" envDefault:"10s"`

	// Origins allowed to POST the form via fetch/XHR. Plain HTML form posts
	// are not subject to CORS and work regardless.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

var validate = validator.New()

// LoadConfig reads the environment into a validated Config. A local .env file
// is honored when present and silently ignored otherwise.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required values and cross-field rules. Messages name the
// environment variable so startup failures are actionable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.EmailProvider {
	case ProviderMailgun:
		if c.MailgunAPIKey == "" {
			return fmt.Errorf("MAILGUN_API_KEY must be set when EMAIL_PROVIDER=%s", ProviderMailgun)
		}
		if c.MailgunDomain == "" {
			return fmt.Errorf("MAILGUN_DOMAIN must be set when EMAIL_PROVIDER=%s", ProviderMailgun)
		}
	case ProviderResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY must be set when EMAIL_PROVIDER=%s", ProviderResend)
		}
	}

	u, err := url.Parse(c.RedirectURL)
	if err != nil {
		return fmt.Errorf("REDIRECT_URL is not a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("REDIRECT_URL must be an absolute http(s) URL")
	}
	// The relay appends its own ?status=... query; a base URL carrying one
	// would produce a malformed Location.
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("REDIRECT_URL must not contain a query string or fragment")
	}

	if c.SendTimeout <= 0 {
		return fmt.Errorf("SEND_TIMEOUT must be a positive duration")
	}

	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.BindAddress, c.Port)
}

// describeFieldError turns a validator error into a message that names the
// offending environment variable rather than the Go struct field.
func describeFieldError(fe validator.FieldError) string {
	name := envVarName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must be set", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}

// envVarName resolves a Config field name to the environment variable it is
// bound to via its env tag.
func envVarName(field string) string {
	f, ok := reflect.TypeOf(Config{}).FieldByName(field)
	if !ok {
		return field
	}
	tag := f.Tag.Get("env")
	if tag == "" {
		return field
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
