package types

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Placeholder credentials shipped in the sample .env file. When the SMTP user or
// password is empty or still equal to these values the mail relay runs in demo mode.
const (
	PlaceholderSMTPUser = "your-email@gmail.com"
	PlaceholderSMTPPass = "your-app-password"
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server" toml:"server"`
	SMTP    SMTPConfig    `json:"smtp" yaml:"smtp" toml:"smtp"`
	Demo    DemoConfig    `json:"demo" yaml:"demo" toml:"demo"`
	Archive ArchiveConfig `json:"archive" yaml:"archive" toml:"archive"`
	Sample  SampleConfig  `json:"sample" yaml:"sample" toml:"sample"`

	Currency     string `json:"currency" yaml:"currency" toml:"currency"`
	MailRelayURL string `json:"mail_relay_url" yaml:"mail_relay_url" toml:"mail_relay_url"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string `json:"host" yaml:"host" toml:"host"`
	Port            string `json:"port" yaml:"port" toml:"port"`
	ShutdownTimeout string `json:"shutdown_timeout" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	SessionTTL      string `json:"session_ttl" yaml:"session_ttl" toml:"session_ttl"`
}

// SMTPConfig configures the live mail transport of the relay endpoint.
type SMTPConfig struct {
	Host       string `json:"host" yaml:"host" toml:"host"`
	Port       int    `json:"port" yaml:"port" toml:"port"`
	User       string `json:"user" yaml:"user" toml:"user"`
	Pass       string `json:"pass" yaml:"pass" toml:"pass"`
	From       string `json:"from" yaml:"from" toml:"from"`
	TLSPolicy  string `json:"tls_policy" yaml:"tls_policy" toml:"tls_policy"`
	SkipVerify bool   `json:"skip_verify" yaml:"skip_verify" toml:"skip_verify"`
	DemoDelay  string `json:"demo_delay" yaml:"demo_delay" toml:"demo_delay"`
}

// DemoConfig holds the hard-coded demo login.
type DemoConfig struct {
	Email    string `json:"email" yaml:"email" toml:"email"`
	Password string `json:"password" yaml:"password" toml:"password"`
}

// ArchiveConfig enables the S3 report archive when Bucket is set.
type ArchiveConfig struct {
	Bucket  string `json:"bucket" yaml:"bucket" toml:"bucket"`
	Prefix  string `json:"prefix" yaml:"prefix" toml:"prefix"`
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
	Region  string `json:"region" yaml:"region" toml:"region"`
}

// SampleConfig tunes the synthetic data generator.
type SampleConfig struct {
	Seed         uint64 `json:"seed" yaml:"seed" toml:"seed"`
	Transactions int    `json:"transactions" yaml:"transactions" toml:"transactions"`
	Customers    int    `json:"customers" yaml:"customers" toml:"customers"`
	Withdrawals  int    `json:"withdrawals" yaml:"withdrawals" toml:"withdrawals"`
}

// DefaultConfig returns the configuration used when nothing else is provided.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ShutdownTimeout: "10s",
			SessionTTL:      "12h",
		},
		SMTP: SMTPConfig{
			Host:      "smtp.gmail.com",
			Port:      587,
			From:      "noreply@payethio.com",
			TLSPolicy: "mandatory",
			DemoDelay: "1200ms",
		},
		Demo: DemoConfig{
			Email:    "henokt@payethio.com",
			Password: "tdashuluqa",
		},
		Archive: ArchiveConfig{
			Prefix: "reports/",
		},
		Sample: SampleConfig{
			Seed:         20240501,
			Transactions: 2500,
			Customers:    400,
			Withdrawals:  120,
		},
		Currency:     "ETB",
		MailRelayURL: "",
		LogLevel:     "info",
	}
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// DemoMode reports whether the mail relay must simulate delivery.
func (c SMTPConfig) DemoMode() bool {
	return c.User == "" || c.Pass == "" ||
		c.User == PlaceholderSMTPUser || c.Pass == PlaceholderSMTPPass
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port '%s': must be a number between 1 and 65535", c.Server.Port)
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("invalid SMTP port %d", c.SMTP.Port)
	}
	for name, value := range map[string]string{
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"server.session_ttl":      c.Server.SessionTTL,
		"smtp.demo_delay":         c.SMTP.DemoDelay,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", name, err)
		}
	}
	if c.Currency == "" {
		return fmt.Errorf("currency cannot be empty")
	}
	return nil
}

// Duration parses one of the duration fields, falling back to def when unparsable.
func Duration(value string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return def
}
