package config

import (
	"os"
	"strings"
)

// Config holds all application configuration values
type Config struct {
	Env  string
	Port string

	TwilioAccountSID      string
	TwilioAuthToken       string
	TwilioVerifyServiceID string
	TwilioFromNumber      string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	// Recipients for lead notification side effects
	NotificationEmails []string
	NotificationPhones []string

	DatabaseURL string
	RedisAddr   string
	BlogFeedURL string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Env:  os.Getenv("APP_ENV"),
		Port: os.Getenv("PORT"),

		TwilioAccountSID:      os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:       os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioVerifyServiceID: os.Getenv("TWILIO_VERIFY_SERVICE_SID"),
		TwilioFromNumber:      os.Getenv("TWILIO_FROM_NUMBER"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		NotificationEmails: splitList(os.Getenv("NOTIFICATION_EMAILS")),
		NotificationPhones: splitList(os.Getenv("NOTIFICATION_PHONES")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		BlogFeedURL: os.Getenv("BLOG_FEED_URL"),
	}
}

// IsProduction reports whether the app is running with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TwilioConfigured reports whether live OTP verification can be used.
// When false the verification gateway runs in demo mode.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioVerifyServiceID != ""
}

// SMTPConfigured reports whether live email notifications can be sent
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

// DatabaseConfigured reports whether leads can be persisted to Postgres
func (c *Config) DatabaseConfigured() bool {
	return c.DatabaseURL != ""
}

// RedisConfigured reports whether the rate limiter has a Redis backend
func (c *Config) RedisConfigured() bool {
	return c.RedisAddr != ""
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
