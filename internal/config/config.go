package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// DefaultEnvFile is loaded outside production.
const DefaultEnvFile = "env.local"

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Admin    AdminConfig
	Services ServicesConfig
	Storage  StorageConfig
	Redis    RedisConfig
	OTP      OTPConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string `envconfig:"DB_HOST" required:"true"`
	Username     string `envconfig:"DB_USERNAME" required:"true"`
	Password     string `envconfig:"DB_PASSWORD" required:"true"`
	Name         string `envconfig:"DB_NAME" required:"true"`
	SSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	AutoMigrate  bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// AdminConfig holds the shared secret guarding the admin API
type AdminConfig struct {
	Secret      string `envconfig:"ADMIN_SECRET" required:"true"`
	ActorHeader string `envconfig:"ADMIN_ACTOR_HEADER" default:"X-Admin-Actor"`
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	WebAppURI          string `envconfig:"WEBAPP_URI" required:"true"`
	ResendAPIKey       string `envconfig:"RESEND_API_KEY"`
	DefaultEmailSender string `envconfig:"DEFAULT_EMAIL_SENDER_ADDRESS" default:"waitlist@localhost"`
	TurnstileSecretKey string `envconfig:"TURNSTILE_SECRET_KEY"`
}

// StorageConfig holds the object store used for vendor certificates.
// Uploads are disabled when Endpoint is empty.
type StorageConfig struct {
	Endpoint       string `envconfig:"S3_ENDPOINT"`
	AccessKey      string `envconfig:"S3_ACCESS_KEY"`
	SecretKey      string `envconfig:"S3_SECRET_KEY"`
	Bucket         string `envconfig:"S3_BUCKET" default:"waitlist-certificates"`
	UseSSL         bool   `envconfig:"S3_USE_SSL" default:"true"`
	PublicBaseURL  string `envconfig:"S3_PUBLIC_BASE_URL"`
	MaxUploadBytes int64  `envconfig:"S3_MAX_UPLOAD_BYTES" default:"10485760"`
}

// RedisConfig holds the optional Redis connection used for rate limiting
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// OTPConfig controls one-time code lifetime and throttling
type OTPConfig struct {
	TTL           time.Duration `envconfig:"OTP_TTL" default:"10m"`
	MaxAttempts   int           `envconfig:"OTP_MAX_ATTEMPTS" default:"5"`
	MaxRequests   int           `envconfig:"OTP_MAX_REQUESTS" default:"5"`
	RequestWindow time.Duration `envconfig:"OTP_REQUEST_WINDOW" default:"15m"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port               int      `envconfig:"SERVER_PORT" default:"8080"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Load reads and validates all environment variables. Outside production the
// given env file (DefaultEnvFile when empty) is loaded first if it exists.
func Load(envFile string) (*Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		if envFile == "" {
			envFile = DefaultEnvFile
		}
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}

	// Each group is processed without a prefix so the tags are the exact
	// variable names.
	groups := []interface{}{
		&cfg.Database,
		&cfg.Admin,
		&cfg.Services,
		&cfg.Storage,
		&cfg.Redis,
		&cfg.OTP,
		&cfg.Server,
	}
	for _, group := range groups {
		if err := envconfig.Process("", group); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"DB_HOST":      c.Database.Host,
		"DB_USERNAME":  c.Database.Username,
		"DB_NAME":      c.Database.Name,
		"ADMIN_SECRET": c.Admin.Secret,
		"WEBAPP_URI":   c.Services.WebAppURI,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
		}
	}
	if c.OTP.MaxAttempts < 1 {
		return fmt.Errorf("OTP_MAX_ATTEMPTS must be at least 1")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("S3_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Name, c.SSLMode)
}

// UploadsEnabled reports whether certificate uploads have somewhere to go.
func (c *StorageConfig) UploadsEnabled() bool {
	return c.Endpoint != ""
}
