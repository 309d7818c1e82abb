package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	WhatsApp WhatsAppConfig
	Storage  StorageConfig
	OCR      OCRConfig
	Admin    AdminConfig
	HTTP     HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string // debug, info, warn, error
	Format   string // json, console
	Output   string // stdout, stderr, or file path
	GormMode string // silent, error, warn, info
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver       string // sqlite or postgres
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// WhatsAppConfig holds Cloud API settings
type WhatsAppConfig struct {
	BaseURL       string
	APIVersion    string
	APIToken      string
	PhoneNumberID string
	VerifyToken   string
	Timeout       time.Duration
}

// StorageConfig holds S3-compatible object storage settings.
// Empty AccessKey/SecretKey fall back to the default AWS credential chain.
type StorageConfig struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// OCRConfig holds Textract settings
type OCRConfig struct {
	Region string
}

// AdminConfig holds credentials for the read-only admin API.
// The API is disabled when JWTSecret is empty.
type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt hash
	JWTSecret    string
	TokenTTL     time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

// Enabled reports whether the admin API should be mounted.
func (a AdminConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// Load loads configuration from an optional .env file and environment variables.
// Keys map to upper-cased env vars with dots replaced by underscores
// (e.g. whatsapp.api_token -> WHATSAPP_API_TOKEN).
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// legacy names from the Lambda deployment
	_ = v.BindEnv("storage.bucket", "STORAGE_BUCKET", "S3_BUCKET_NAME")
	_ = v.BindEnv("whatsapp.phone_number_id", "WHATSAPP_PHONE_NUMBER_ID", "PHONE_NUMBER_ID")

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:    v.GetString("log.level"),
			Format:   v.GetString("log.format"),
			Output:   v.GetString("log.output"),
			GormMode: v.GetString("log.gorm_mode"),
		},
		Database: DatabaseConfig{
			Driver:       v.GetString("database.driver"),
			DSN:          v.GetString("database.dsn"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
			MaxIdleConns: v.GetInt("database.max_idle_conns"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:       v.GetString("whatsapp.base_url"),
			APIVersion:    v.GetString("whatsapp.api_version"),
			APIToken:      v.GetString("whatsapp.api_token"),
			PhoneNumberID: v.GetString("whatsapp.phone_number_id"),
			VerifyToken:   v.GetString("whatsapp.verify_token"),
			Timeout:       v.GetDuration("whatsapp.timeout"),
		},
		Storage: StorageConfig{
			Bucket:       v.GetString("storage.bucket"),
			Region:       v.GetString("storage.region"),
			Endpoint:     v.GetString("storage.endpoint"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
		},
		OCR: OCRConfig{
			Region: v.GetString("ocr.region"),
		},
		Admin: AdminConfig{
			Username:     v.GetString("admin.username"),
			PasswordHash: v.GetString("admin.password_hash"),
			JWTSecret:    v.GetString("admin.jwt_secret"),
			TokenTTL:     v.GetDuration("admin.token_ttl"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "invoice-extract")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.gorm_mode", "warn")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "invoice-extract.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("whatsapp.base_url", "https://graph.facebook.com")
	v.SetDefault("whatsapp.api_version", "v19.0")
	v.SetDefault("whatsapp.timeout", 30*time.Second)

	v.SetDefault("storage.region", "us-east-2")
	v.SetDefault("ocr.region", "us-east-2")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.token_ttl", 24*time.Hour)

	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 60*time.Second)
	v.SetDefault("http.cors_allow_origins", []string{"*"})
}

// Validate checks that the settings the webhook cannot run without are present.
func (c *Config) Validate() error {
	var errs []error
	if c.WhatsApp.APIToken == "" {
		errs = append(errs, errors.New("WHATSAPP_API_TOKEN is required"))
	}
	if c.WhatsApp.PhoneNumberID == "" {
		errs = append(errs, errors.New("WHATSAPP_PHONE_NUMBER_ID is required"))
	}
	if c.Storage.Bucket == "" {
		errs = append(errs, errors.New("STORAGE_BUCKET is required"))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Admin.Enabled() && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH is required when ADMIN_JWT_SECRET is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
