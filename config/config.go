package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const devJWTSecret = "your-secret-key-change-this-in-production"

type Config struct {
	Port string `env:"PORT" envDefault:"5000"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret    string `env:"JWT_SECRET"`
	JWTExpiresIn string `env:"JWT_EXPIRES_IN" envDefault:"7d"`

	CORSOrigins []string `env:"CORS_ORIGIN" envSeparator:"," envDefault:"http://localhost:5173"`

	RateLimitWindowMS int `env:"RATE_LIMIT_WINDOW_MS" envDefault:"900000"`
	RateLimitMax      int `env:"RATE_LIMIT_MAX" envDefault:"100"`
	LoginRateLimitMax int `env:"LOGIN_RATE_LIMIT_MAX" envDefault:"10"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
	NotifyEmail  string `env:"NOTIFY_EMAIL"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"ipss"`

	MaxFileSize int64  `env:"MAX_FILE_SIZE" envDefault:"10485760"`
	UploadDir   string `env:"UPLOAD_DIR" envDefault:"uploads"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"LOG_DEV"`
	LogFile  string `env:"LOG_FILE"`

	SeedAdminName     string `env:"SEED_ADMIN_NOME" envDefault:"Administrador"`
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD"`

	SnowflakeNode       int64         `env:"SNOWFLAKE_NODE" envDefault:"1"`
	ContactDedupeWindow time.Duration `env:"CONTACT_DEDUPE_WINDOW" envDefault:"60s"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if _, err := ParseExpiry(cfg.JWTExpiresIn); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" && cfg.DBDriver != "sqlite" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// JWTExpiry returns the token lifetime, 7 days when unset or malformed.
func (c *Config) JWTExpiry() time.Duration {
	d, err := ParseExpiry(c.JWTExpiresIn)
	if err != nil || d <= 0 {
		return 7 * 24 * time.Hour
	}
	return d
}

// RateLimitWindow converts RATE_LIMIT_WINDOW_MS into a duration.
func (c *Config) RateLimitWindow() time.Duration {
	if c.RateLimitWindowMS <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.RateLimitWindowMS) * time.Millisecond
}

// ParseExpiry accepts "7d", "12h", "30m", plain seconds or any Go duration.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 7 * 24 * time.Hour, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q", s)
	}
	return d, nil
}
