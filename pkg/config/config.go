package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/martijn/lexdesk/pkg/civildate"
	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	StorageDir   string `mapstructure:"storage_dir"`
	JWTSecretKey string `mapstructure:"jwt_secret_key"`

	// Database settings
	DBDriver string `mapstructure:"db_driver"` // "sqlite" or "postgres"
	DBDSN    string `mapstructure:"db_dsn"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogEnv   string `mapstructure:"log_env"` // "dev" or "prod"
	LogLevel string `mapstructure:"log_level"`

	// Optional JWT settings
	JWTAlgorithm string `mapstructure:"jwt_algorithm"`

	// Civil timezone for date-only values
	Timezone string `mapstructure:"timezone"`

	// Court lookup webhook
	CourtLookupURL     string        `mapstructure:"court_lookup_url"`
	CourtLookupTimeout time.Duration `mapstructure:"court_lookup_timeout"`

	// Login rate limiting; redis_url empty means in-process counters
	RedisURL        string        `mapstructure:"redis_url"`
	LoginRateLimit  int           `mapstructure:"login_rate_limit"`
	LoginRateWindow time.Duration `mapstructure:"login_rate_window"`

	// Documents
	SignedURLTTL   time.Duration `mapstructure:"signed_url_ttl"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`

	// Optional surfaces
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
	SwaggerEnabled bool `mapstructure:"swagger_enabled"`

	// Static paths
	ConfigPath string
}

const (
	DefaultConfigPath         = "/etc/lexdesk/config.yml"
	DefaultEnvFile            = ".env"
	DefaultDBDriver           = "sqlite"
	DefaultDBDSN              = "/var/lib/lexdesk/lexdesk.sqlite3"
	DefaultAPIHost            = "0.0.0.0"
	DefaultAPIPort            = 8336
	DefaultLogEnv             = "prod"
	DefaultLogLevel           = "info"
	DefaultJWTAlgorithm       = "HS256"
	DefaultCourtLookupTimeout = 30 * time.Second
	DefaultLoginRateLimit     = 10
	DefaultLoginRateWindow    = time.Minute
	DefaultSignedURLTTL       = 60 * time.Second
	DefaultMaxUploadBytes     = 10 << 20

	EnvPrefix = "LEXDESK"
)

// Load reads the YAML config file, then applies LEXDESK_* environment
// overrides. A .env file in the working directory is loaded first when present.
// When no path is given and the default file is absent, configuration comes
// from the environment alone.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
	}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("storage_dir", "")
	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("db_driver", DefaultDBDriver)
	v.SetDefault("db_dsn", DefaultDBDSN)
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("ssl_cert", "")
	v.SetDefault("ssl_key", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_env", DefaultLogEnv)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("timezone", civildate.DefaultZone)
	v.SetDefault("court_lookup_url", "")
	v.SetDefault("court_lookup_timeout", DefaultCourtLookupTimeout)
	v.SetDefault("redis_url", "")
	v.SetDefault("login_rate_limit", DefaultLoginRateLimit)
	v.SetDefault("login_rate_window", DefaultLoginRateWindow)
	v.SetDefault("signed_url_ttl", DefaultSignedURLTTL)
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("swagger_enabled", true)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		_, statErr := os.Stat(configPath)
		if explicit || !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		configPath = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// CORS origins from the environment arrive as one comma-separated string
	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))

	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.StorageDir == "" {
		return fmt.Errorf("storage_dir is required")
	}

	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwt_secret_key is required")
	}

	if c.DBDriver != "sqlite" && c.DBDriver != "postgres" {
		return fmt.Errorf("db_driver must be 'sqlite' or 'postgres'")
	}

	if c.DBDSN == "" {
		return fmt.Errorf("db_dsn is required")
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	if _, err := civildate.New(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	if c.LoginRateLimit < 0 {
		return fmt.Errorf("login_rate_limit must not be negative")
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

// Calendar returns the civil calendar for the configured timezone.
func (c *Config) Calendar() (*civildate.Calendar, error) {
	return civildate.New(c.Timezone)
}

func (c *Config) IsDevMode() bool {
	return os.Getenv(EnvPrefix+"_DEV_MODE") == "1" || c.LogEnv == "dev"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
