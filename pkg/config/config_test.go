package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "storage_dir: /tmp/lexdesk\njwt_secret_key: s3cret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lexdesk", cfg.StorageDir)
	assert.Equal(t, DefaultDBDriver, cfg.DBDriver)
	assert.Equal(t, DefaultAPIPort, cfg.APIPort)
	assert.Equal(t, DefaultJWTAlgorithm, cfg.JWTAlgorithm)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, DefaultSignedURLTTL, cfg.SignedURLTTL)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, path, cfg.ConfigPath)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "storage_dir: /tmp/lexdesk\njwt_secret_key: s3cret\napi_port: 9000\n")
	t.Setenv("LEXDESK_API_PORT", "9100")
	t.Setenv("LEXDESK_COURT_LOOKUP_TIMEOUT", "5s")
	t.Setenv("LEXDESK_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.APIPort)
	assert.Equal(t, 5*time.Second, cfg.CourtLookupTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			StorageDir:     "/tmp/lexdesk",
			JWTSecretKey:   "s3cret",
			DBDriver:       "sqlite",
			DBDSN:          ":memory:",
			JWTAlgorithm:   "HS256",
			Timezone:       "America/Sao_Paulo",
			MaxUploadBytes: DefaultMaxUploadBytes,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing storage dir", func(c *Config) { c.StorageDir = "" }, "storage_dir is required"},
		{"missing secret", func(c *Config) { c.JWTSecretKey = "" }, "jwt_secret_key is required"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "db_driver"},
		{"unknown algorithm", func(c *Config) { c.JWTAlgorithm = "RS256" }, "jwt_algorithm"},
		{"unknown timezone", func(c *Config) { c.Timezone = "Nowhere/Land" }, "invalid timezone"},
		{"half ssl pair", func(c *Config) { c.SSLCert = "/tmp/cert.pem" }, "both ssl_cert and ssl_key"},
		{"negative rate limit", func(c *Config) { c.LoginRateLimit = -1 }, "login_rate_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
