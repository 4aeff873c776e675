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
	Storage StorageConfig
	DB      DBConfig
	S3      S3Config
	Upload  UploadConfig
	Schema  SchemaConfig
	CORS    CORSConfig
	Reports ReportsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StorageConfig selects the database backend for uploads and reports.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
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

// S3Config holds settings for archiving original uploads to S3.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// UploadConfig bounds accepted uploads.
type UploadConfig struct {
	MaxRows       int   `mapstructure:"max_rows"`
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// SchemaConfig points at an optional schema file. Empty means the embedded GETS v0.1 schema.
type SchemaConfig struct {
	Path string `mapstructure:"path"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ReportsConfig bounds the recent reports listing.
type ReportsConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// Load reads configuration from environment variables with the READINESS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("READINESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Storage defaults
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.sqlite_path", "./analyzer.db")
	v.SetDefault("storage.auto_migrate", true)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "readiness")
	v.SetDefault("db.password", "readiness_secret")
	v.SetDefault("db.name", "readiness_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "readiness-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Upload defaults
	v.SetDefault("upload.max_rows", 200)
	v.SetDefault("upload.max_file_size_mb", 10)

	v.SetDefault("schema.path", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Reports defaults
	v.SetDefault("reports.default_limit", 10)
	v.SetDefault("reports.max_limit", 100)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "READINESS_SERVER_PORT",
		"server.read_timeout":     "READINESS_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "READINESS_SERVER_WRITE_TIMEOUT",
		"server.environment":      "READINESS_SERVER_ENVIRONMENT",
		"storage.backend":         "READINESS_STORAGE_BACKEND",
		"storage.sqlite_path":     "READINESS_STORAGE_SQLITE_PATH",
		"storage.auto_migrate":    "READINESS_STORAGE_AUTO_MIGRATE",
		"db.host":                 "READINESS_DB_HOST",
		"db.port":                 "READINESS_DB_PORT",
		"db.user":                 "READINESS_DB_USER",
		"db.password":             "READINESS_DB_PASSWORD",
		"db.name":                 "READINESS_DB_NAME",
		"db.sslmode":              "READINESS_DB_SSLMODE",
		"db.max_open":             "READINESS_DB_MAX_OPEN",
		"db.max_idle":             "READINESS_DB_MAX_IDLE",
		"s3.enabled":              "READINESS_S3_ENABLED",
		"s3.region":               "READINESS_S3_REGION",
		"s3.bucket":               "READINESS_S3_BUCKET",
		"s3.endpoint":             "READINESS_S3_ENDPOINT",
		"s3.access_key":           "READINESS_S3_ACCESS_KEY",
		"s3.secret_key":           "READINESS_S3_SECRET_KEY",
		"s3.presign_expiry":       "READINESS_S3_PRESIGN_EXPIRY",
		"upload.max_rows":         "READINESS_UPLOAD_MAX_ROWS",
		"upload.max_file_size_mb": "READINESS_UPLOAD_MAX_FILE_SIZE_MB",
		"schema.path":             "READINESS_SCHEMA_PATH",
		"cors.allowed_origins":    "READINESS_CORS_ALLOWED_ORIGINS",
		"reports.default_limit":   "READINESS_REPORTS_DEFAULT_LIMIT",
		"reports.max_limit":       "READINESS_REPORTS_MAX_LIMIT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if READINESS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("READINESS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Storage = StorageConfig{
		Backend:     strings.ToLower(strings.TrimSpace(v.GetString("storage.backend"))),
		SQLitePath:  v.GetString("storage.sqlite_path"),
		AutoMigrate: v.GetBool("storage.auto_migrate"),
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
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Upload = UploadConfig{
		MaxRows:       v.GetInt("upload.max_rows"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Schema = SchemaConfig{
		Path: v.GetString("schema.path"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Reports = ReportsConfig{
		DefaultLimit: v.GetInt("reports.default_limit"),
		MaxLimit:     v.GetInt("reports.max_limit"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported storage backend %q; allowed: sqlite, postgres", c.Storage.Backend)
	}
	if c.Upload.MaxRows <= 0 {
		return fmt.Errorf("config: upload.max_rows must be positive, got %d", c.Upload.MaxRows)
	}
	if c.Reports.DefaultLimit <= 0 || c.Reports.MaxLimit < c.Reports.DefaultLimit {
		return fmt.Errorf("config: reports limits invalid (default %d, max %d)", c.Reports.DefaultLimit, c.Reports.MaxLimit)
	}
	return nil
}
