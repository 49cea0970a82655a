package config

import (
	"strconv"
	"strings"

	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// ApplyEnv sobrescreve a configuração com as variáveis de ambiente presentes.
func ApplyEnv(cfg *types.Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				*dst = i
			}
		}
	}

	str("SERVER_HOST", &cfg.Server.Host)
	str("SERVER_PORT", &cfg.Server.Port)
	str("SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	str("SESSION_TTL", &cfg.Server.SessionTTL)

	str("SMTP_HOST", &cfg.SMTP.Host)
	integer("SMTP_PORT", &cfg.SMTP.Port)
	str("SMTP_USER", &cfg.SMTP.User)
	str("SMTP_PASS", &cfg.SMTP.Pass)
	str("SMTP_FROM", &cfg.SMTP.From)
	str("SMTP_TLS_POLICY", &cfg.SMTP.TLSPolicy)
	str("DEMO_DELAY", &cfg.SMTP.DemoDelay)
	if v, ok := lookup("SMTP_SKIP_VERIFY"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SMTP.SkipVerify = b
		}
	}

	str("DEMO_EMAIL", &cfg.Demo.Email)
	str("DEMO_PASSWORD", &cfg.Demo.Password)

	str("ARCHIVE_BUCKET", &cfg.Archive.Bucket)
	str("ARCHIVE_PREFIX", &cfg.Archive.Prefix)
	str("AWS_PROFILE", &cfg.Archive.Profile)
	str("AWS_REGION", &cfg.Archive.Region)

	if v, ok := lookup("SAMPLE_SEED"); ok && v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Sample.Seed = seed
		}
	}
	integer("SAMPLE_TRANSACTIONS", &cfg.Sample.Transactions)

	str("CURRENCY", &cfg.Currency)
	cfg.Currency = strings.ToUpper(cfg.Currency)
	str("MAIL_RELAY_URL", &cfg.MailRelayURL)
	str("LOG_LEVEL", &cfg.LogLevel)
}
