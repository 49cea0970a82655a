package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadConfigFile_Formats(t *testing.T) {
	repo := NewConfigRepository()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "payethio.toml",
			content: `
currency = "USD"
[smtp]
host = "smtp.example.com"
port = 2525
[archive]
bucket = "reports"
`,
		},
		{
			name: "yaml",
			file: "payethio.yaml",
			content: `
currency: USD
smtp:
  host: smtp.example.com
  port: 2525
archive:
  bucket: reports
`,
		},
		{
			name:    "json",
			file:    "payethio.json",
			content: `{"currency":"USD","smtp":{"host":"smtp.example.com","port":2525},"archive":{"bucket":"reports"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "USD", cfg.Currency)
			assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
			assert.Equal(t, 2525, cfg.SMTP.Port)
			assert.Equal(t, "reports", cfg.Archive.Bucket)
		})
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "cfg.ini", "a=b"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(writeFile(t, "cfg.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "payethio.yaml", `
server:
  port: "9090"
smtp:
  user: file-user@payethio.com
  pass: file-pass
currency: usd
`)

	cfg, err := Load(NewConfigRepository(), path, envMap(map[string]string{
		"SMTP_PASS":        "env-pass",
		"SMTP_SKIP_VERIFY": "true",
		"SAMPLE_SEED":      "99",
		"CURRENCY":         "etb",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "file-user@payethio.com", cfg.SMTP.User)
	assert.Equal(t, "env-pass", cfg.SMTP.Pass)
	assert.True(t, cfg.SMTP.SkipVerify)
	assert.Equal(t, uint64(99), cfg.Sample.Seed)
	assert.Equal(t, "ETB", cfg.Currency)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.False(t, cfg.SMTP.DemoMode())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(NewConfigRepository(), "", envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, types.DefaultConfig(), cfg)
	assert.True(t, cfg.SMTP.DemoMode())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(NewConfigRepository(), "", envMap(map[string]string{"SERVER_PORT": "http"}))
	assert.ErrorContains(t, err, "invalid server port")

	_, err = Load(NewConfigRepository(), "", envMap(map[string]string{"SESSION_TTL": "forever"}))
	assert.ErrorContains(t, err, "server.session_ttl")
}

func TestDemoMode_Placeholders(t *testing.T) {
	cfg := types.SMTPConfig{User: types.PlaceholderSMTPUser, Pass: "real"}
	assert.True(t, cfg.DemoMode())

	cfg = types.SMTPConfig{User: "real@payethio.com", Pass: types.PlaceholderSMTPPass}
	assert.True(t, cfg.DemoMode())
}
