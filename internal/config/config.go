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
	Session SessionConfig
	PDF     PDFConfig
	Import  ImportConfig
	Log     LogConfig
	CORS    CORSConfig
	Archive ArchiveConfig
	DB      DBConfig
	S3      S3Config
	Email   EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// SessionConfig holds sheet session token settings.
type SessionConfig struct {
	Secret        string        `mapstructure:"secret"`
	Expiry        time.Duration `mapstructure:"expiry"`
	Issuer        string        `mapstructure:"issuer"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// PDFConfig holds attendance sheet rendering settings.
type PDFConfig struct {
	LogoPath string `mapstructure:"logo_path"`
	Compress bool   `mapstructure:"compress"`
	Author   string `mapstructure:"author"`
}

// ImportConfig holds bulk entry import settings.
type ImportConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (c ImportConfig) MaxBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ArchiveConfig controls the issued-document archive.
type ArchiveConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	AdminKeyHash  string `mapstructure:"admin_key_hash"`
	NotifyAddress string `mapstructure:"notify_address"`
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

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the ASISTENCIA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ASISTENCIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Session defaults
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.expiry", "12h")
	v.SetDefault("session.issuer", "asistencia")
	v.SetDefault("session.sweep_interval", "5m")

	// PDF defaults
	v.SetDefault("pdf.logo_path", "assets/logo.png")
	v.SetDefault("pdf.compress", true)
	v.SetDefault("pdf.author", "Goleman IPS")

	v.SetDefault("import.max_file_size_mb", 5)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.admin_key_hash", "")
	v.SetDefault("archive.notify_address", "")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "asistencia")
	v.SetDefault("db.password", "asistencia_secret")
	v.SetDefault("db.name", "asistencia_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "asistencia-sheets")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@goleman.com.co")
	v.SetDefault("email.from_name", "Goleman IPS")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "ASISTENCIA_SERVER_PORT",
		"server.read_timeout":     "ASISTENCIA_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "ASISTENCIA_SERVER_WRITE_TIMEOUT",
		"server.environment":      "ASISTENCIA_SERVER_ENVIRONMENT",
		"session.secret":          "ASISTENCIA_SESSION_SECRET",
		"session.expiry":          "ASISTENCIA_SESSION_EXPIRY",
		"session.issuer":          "ASISTENCIA_SESSION_ISSUER",
		"session.sweep_interval":  "ASISTENCIA_SESSION_SWEEP_INTERVAL",
		"pdf.logo_path":           "ASISTENCIA_PDF_LOGO_PATH",
		"pdf.compress":            "ASISTENCIA_PDF_COMPRESS",
		"pdf.author":              "ASISTENCIA_PDF_AUTHOR",
		"import.max_file_size_mb": "ASISTENCIA_IMPORT_MAX_FILE_SIZE_MB",
		"log.level":               "ASISTENCIA_LOG_LEVEL",
		"log.format":              "ASISTENCIA_LOG_FORMAT",
		"cors.allowed_origins":    "ASISTENCIA_CORS_ALLOWED_ORIGINS",
		"archive.enabled":         "ASISTENCIA_ARCHIVE_ENABLED",
		"archive.admin_key_hash":  "ASISTENCIA_ARCHIVE_ADMIN_KEY_HASH",
		"archive.notify_address":  "ASISTENCIA_ARCHIVE_NOTIFY_ADDRESS",
		"db.host":                 "ASISTENCIA_DB_HOST",
		"db.port":                 "ASISTENCIA_DB_PORT",
		"db.user":                 "ASISTENCIA_DB_USER",
		"db.password":             "ASISTENCIA_DB_PASSWORD",
		"db.name":                 "ASISTENCIA_DB_NAME",
		"db.sslmode":              "ASISTENCIA_DB_SSLMODE",
		"db.max_open":             "ASISTENCIA_DB_MAX_OPEN",
		"db.max_idle":             "ASISTENCIA_DB_MAX_IDLE",
		"s3.region":               "ASISTENCIA_S3_REGION",
		"s3.bucket":               "ASISTENCIA_S3_BUCKET",
		"s3.endpoint":             "ASISTENCIA_S3_ENDPOINT",
		"s3.access_key":           "ASISTENCIA_S3_ACCESS_KEY",
		"s3.secret_key":           "ASISTENCIA_S3_SECRET_KEY",
		"s3.presign_expiry":       "ASISTENCIA_S3_PRESIGN_EXPIRY",
		"email.provider":          "ASISTENCIA_EMAIL_PROVIDER",
		"email.region":            "ASISTENCIA_EMAIL_REGION",
		"email.from_address":      "ASISTENCIA_EMAIL_FROM_ADDRESS",
		"email.from_name":         "ASISTENCIA_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ASISTENCIA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ASISTENCIA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Session = SessionConfig{
		Secret:        v.GetString("session.secret"),
		Expiry:        v.GetDuration("session.expiry"),
		Issuer:        v.GetString("session.issuer"),
		SweepInterval: v.GetDuration("session.sweep_interval"),
	}
	cfg.PDF = PDFConfig{
		LogoPath: v.GetString("pdf.logo_path"),
		Compress: v.GetBool("pdf.compress"),
		Author:   v.GetString("pdf.author"),
	}
	cfg.Import = ImportConfig{
		MaxFileSizeMB: v.GetInt64("import.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Archive = ArchiveConfig{
		Enabled:       v.GetBool("archive.enabled"),
		AdminKeyHash:  v.GetString("archive.admin_key_hash"),
		NotifyAddress: v.GetString("archive.notify_address"),
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
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Session.Expiry <= 0 {
		return fmt.Errorf("session.expiry must be positive, got %s", c.Session.Expiry)
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive, got %s", c.Session.SweepInterval)
	}
	if c.Import.MaxFileSizeMB <= 0 {
		return fmt.Errorf("import.max_file_size_mb must be positive, got %d", c.Import.MaxFileSizeMB)
	}
	if c.Archive.Enabled && c.Archive.AdminKeyHash == "" {
		return fmt.Errorf("archive.admin_key_hash is required when the archive is enabled")
	}
	switch c.Log.Format {
	case "console", "plain":
	default:
		return fmt.Errorf("log.format must be console or plain, got %q", c.Log.Format)
	}
	switch c.Email.Provider {
	case "noop", "ses":
	default:
		return fmt.Errorf("unsupported email.provider %q", c.Email.Provider)
	}
	return nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
