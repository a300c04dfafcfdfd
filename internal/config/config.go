package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	Saberis SaberisConfig
	Jobber  JobberConfig
	Catalog CatalogConfig
	Email   EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for raw export document storage.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SaberisConfig holds export source API settings.
type SaberisConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	AuthToken      string        `mapstructure:"auth_token"`
	Timeout        time.Duration `mapstructure:"timeout"`
	IngestCooldown time.Duration `mapstructure:"ingest_cooldown"`
}

// JobberConfig holds target system API settings. The access token is an
// already-resolved OAuth bearer token supplied via environment; this service
// does not run the authorization flow itself.
type JobberConfig struct {
	GraphQLURL  string        `mapstructure:"graphql_url"`
	APIVersion  string        `mapstructure:"api_version"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// CatalogConfig holds catalog cache settings.
type CatalogConfig struct {
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	CacheSize int           `mapstructure:"cache_size"`
}

// EmailConfig holds alert email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	AlertTo     string `mapstructure:"alert_to"`
}

// Load reads configuration from environment variables with the S2J_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("S2J")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "s2j")
	v.SetDefault("db.password", "s2j_secret")
	v.SetDefault("db.name", "s2j_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "s2j-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.key_prefix", "exports")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Saberis defaults
	v.SetDefault("saberis.base_url", "https://api.saberis.com")
	v.SetDefault("saberis.auth_token", "")
	v.SetDefault("saberis.timeout", "30s")
	v.SetDefault("saberis.ingest_cooldown", "30s")

	// Jobber defaults
	v.SetDefault("jobber.graphql_url", "https://api.getjobber.com/api/graphql")
	v.SetDefault("jobber.api_version", "2025-01-20")
	v.SetDefault("jobber.access_token", "")
	v.SetDefault("jobber.timeout", "30s")
	v.SetDefault("jobber.max_retries", 4)
	v.SetDefault("jobber.backoff_base", "500ms")

	// Catalog defaults
	v.SetDefault("catalog.cache_ttl", "90s")
	v.SetDefault("catalog.cache_size", 1024)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "alerts@s2j.local")
	v.SetDefault("email.from_name", "S2J Sync")
	v.SetDefault("email.alert_to", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "S2J_SERVER_PORT",
		"server.read_timeout":     "S2J_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "S2J_SERVER_WRITE_TIMEOUT",
		"server.environment":      "S2J_SERVER_ENVIRONMENT",
		"db.host":                 "S2J_DB_HOST",
		"db.port":                 "S2J_DB_PORT",
		"db.user":                 "S2J_DB_USER",
		"db.password":             "S2J_DB_PASSWORD",
		"db.name":                 "S2J_DB_NAME",
		"db.sslmode":              "S2J_DB_SSLMODE",
		"db.max_open":             "S2J_DB_MAX_OPEN",
		"db.max_idle":             "S2J_DB_MAX_IDLE",
		"s3.region":               "S2J_S3_REGION",
		"s3.bucket":               "S2J_S3_BUCKET",
		"s3.endpoint":             "S2J_S3_ENDPOINT",
		"s3.access_key":           "S2J_S3_ACCESS_KEY",
		"s3.secret_key":           "S2J_S3_SECRET_KEY",
		"s3.key_prefix":           "S2J_S3_KEY_PREFIX",
		"log.level":               "S2J_LOG_LEVEL",
		"log.format":              "S2J_LOG_FORMAT",
		"saberis.base_url":        "S2J_SABERIS_BASE_URL",
		"saberis.auth_token":      "S2J_SABERIS_AUTH_TOKEN",
		"saberis.timeout":         "S2J_SABERIS_TIMEOUT",
		"saberis.ingest_cooldown": "S2J_SABERIS_INGEST_COOLDOWN",
		"jobber.graphql_url":      "S2J_JOBBER_GRAPHQL_URL",
		"jobber.api_version":      "S2J_JOBBER_API_VERSION",
		"jobber.access_token":     "S2J_JOBBER_ACCESS_TOKEN",
		"jobber.timeout":          "S2J_JOBBER_TIMEOUT",
		"jobber.max_retries":      "S2J_JOBBER_MAX_RETRIES",
		"jobber.backoff_base":     "S2J_JOBBER_BACKOFF_BASE",
		"catalog.cache_ttl":       "S2J_CATALOG_CACHE_TTL",
		"catalog.cache_size":      "S2J_CATALOG_CACHE_SIZE",
		"email.provider":          "S2J_EMAIL_PROVIDER",
		"email.region":            "S2J_EMAIL_REGION",
		"email.from_address":      "S2J_EMAIL_FROM_ADDRESS",
		"email.from_name":         "S2J_EMAIL_FROM_NAME",
		"email.alert_to":          "S2J_EMAIL_ALERT_TO",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if S2J_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("S2J_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		KeyPrefix: v.GetString("s3.key_prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Saberis = SaberisConfig{
		BaseURL:        v.GetString("saberis.base_url"),
		AuthToken:      v.GetString("saberis.auth_token"),
		Timeout:        v.GetDuration("saberis.timeout"),
		IngestCooldown: v.GetDuration("saberis.ingest_cooldown"),
	}
	cfg.Jobber = JobberConfig{
		GraphQLURL:  v.GetString("jobber.graphql_url"),
		APIVersion:  v.GetString("jobber.api_version"),
		AccessToken: v.GetString("jobber.access_token"),
		Timeout:     v.GetDuration("jobber.timeout"),
		MaxRetries:  v.GetInt("jobber.max_retries"),
		BackoffBase: v.GetDuration("jobber.backoff_base"),
	}
	cfg.Catalog = CatalogConfig{
		CacheTTL:  v.GetDuration("catalog.cache_ttl"),
		CacheSize: v.GetInt("catalog.cache_size"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		AlertTo:     v.GetString("email.alert_to"),
	}

	return cfg, nil
}
