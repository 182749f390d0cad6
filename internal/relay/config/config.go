// Package config reads the relay's deployment-time configuration from the
// environment. The mail credentials are a deployment invariant: when they
// are absent every request fails fast with a server error.
package config

import (
	"os"
	"strconv"
)

// Config holds everything the relay needs to accept and dispatch inquiries.
type Config struct {
	Addr        string
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	SupportTo   string
	SupportFrom string
	CORS        bool
}

// FromEnv builds the config with the original deployment's defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("RELAY_ADDR", ":8787"),
		SMTPHost:    envOr("SMTP_HOST", "smtp.office365.com"),
		SMTPPort:    587,
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		SupportTo:   envOr("SUPPORT_TO", "support@tiertechtools.com"),
		SupportFrom: os.Getenv("SUPPORT_FROM"),
		CORS:        true,
	}
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			cfg.SMTPPort = port
		}
	}
	if raw := os.Getenv("RELAY_CORS"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.CORS = v
		}
	}
	return cfg
}

// Configured reports whether the mail credentials are present.
func (c Config) Configured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// Sender returns the envelope-from identity: the configured override, else
// the SMTP account itself (safest with providers that reject spoofed from
// addresses).
func (c Config) Sender() string {
	if c.SupportFrom != "" {
		return c.SupportFrom
	}
	return c.SMTPUser
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
