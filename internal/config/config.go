// Package config loads the process-wide settings for the contact relay.
// Values come from the environment (and an optional .env file) and are
// read once at start.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Mail providers understood by MAIL_PROVIDER.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderLog    = "log"
)

const (
	DefaultPort     = 5001
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
)

var ErrUnknownProvider = errors.New("unknown mail provider")

// Mail holds the mail account credentials and provider selection.
// User is also the fixed recipient of every submission.
type Mail struct {
	User         string
	Pass         string
	Provider     string
	SMTPHost     string
	SMTPPort     int
	ResendAPIKey string
}

// Configured reports whether the selected provider has the credentials it needs.
func (m Mail) Configured() bool {
	switch m.Provider {
	case ProviderResend:
		return m.User != "" && m.ResendAPIKey != ""
	case ProviderLog:
		return true
	default:
		return m.User != "" && m.Pass != ""
	}
}

type Sentry struct {
	DSN         string
	Environment string
}

type Config struct {
	Port         int
	GinMode      string
	AllowOrigins []string
	Mail         Mail
	Sentry       Sentry
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv loads .env (if present) into the process environment and then
// reads the configuration from it. Variables already set win over .env.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: loading .env: %w", err)
	}
	return Load(os.LookupEnv)
}

// Load builds a Config from the given lookup.
func Load(lookup LookupFunc) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	port, err := parsePort("PORT", get("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return Config{}, err
	}
	smtpPort, err := parsePort("SMTP_PORT", get("SMTP_PORT", strconv.Itoa(DefaultSMTPPort)))
	if err != nil {
		return Config{}, err
	}

	provider := strings.ToLower(get("MAIL_PROVIDER", ProviderSMTP))
	switch provider {
	case ProviderSMTP, ProviderResend, ProviderLog:
	default:
		return Config{}, fmt.Errorf("config: MAIL_PROVIDER %q: %w", provider, ErrUnknownProvider)
	}

	ginMode := get("GIN_MODE", "release")
	switch ginMode {
	case "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("config: GIN_MODE must be debug, release or test, got %q", ginMode)
	}

	cfg := Config{
		Port:         port,
		GinMode:      ginMode,
		AllowOrigins: splitList(get("CORS_ALLOW_ORIGINS", "*")),
		Mail: Mail{
			User:         get("EMAIL_USER", ""),
			Pass:         get("EMAIL_PASS", ""),
			Provider:     provider,
			SMTPHost:     get("SMTP_HOST", DefaultSMTPHost),
			SMTPPort:     smtpPort,
			ResendAPIKey: get("RESEND_API_KEY", ""),
		},
		Sentry: Sentry{
			DSN:         get("SENTRY_DSN", ""),
			Environment: get("SENTRY_ENVIRONMENT", "production"),
		},
	}
	return cfg, nil
}

func parsePort(key, raw string) (int, error) {
	p, err := strconv.Atoi(raw)
	if err != nil || p <= 0 || p > 65535 {
		return 0, fmt.Errorf("config: %s must be a port number, got %q", key, raw)
	}
	return p, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
