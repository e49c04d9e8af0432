package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret подставляется, когда JWT_SECRET не задан. Только для локальной разработки.
const DevJWTSecret = "dev-secret-mapify"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Port string
	Env  string // dev|prod

	StorageBackend string // memory|postgres
	DatabaseURL    string

	JWTSecret string

	Log      string
	LogLevel string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	FrontendURL         string
	PasswordResetTTLMin string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	smtpUser := os.Getenv("SMTP_USER")

	cfg := &Config{
		Port: def(os.Getenv("PORT"), "3001"),
		Env:  strings.ToLower(def(os.Getenv("ENV"), "dev")),

		StorageBackend: strings.ToLower(def(os.Getenv("STORAGE_BACKEND"), StorageMemory)),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),

		SMTPHost:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:     def(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser:     smtpUser,
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     def(os.Getenv("SMTP_FROM"), smtpUser),

		FrontendURL:         strings.TrimRight(def(os.Getenv("FRONTEND_URL"), "http://localhost:5173"), "/"),
		PasswordResetTTLMin: def(os.Getenv("PASSWORD_RESET_TTL_MIN"), "30"),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	switch c.StorageBackend {
	case StorageMemory:
		if c.DatabaseURL != "" {
			warnings = append(warnings, "DATABASE_URL is set but STORAGE_BACKEND=memory, database is not used")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.JWTSecret == "" {
		if c.Env == "prod" {
			return nil, fmt.Errorf("JWT_SECRET is required in prod")
		}
		warnings = append(warnings, "JWT_SECRET is empty, falling back to the development secret")
	}

	if _, err := c.ResetTokenTTL(); err != nil {
		return nil, err
	}

	if !c.MailConfigured() {
		warnings = append(warnings, "SMTP is not fully configured, password reset is disabled")
	}

	return warnings, nil
}

// SigningSecret — секрет для подписи JWT с учётом dev-фолбэка.
func (c *Config) SigningSecret() string {
	if c.JWTSecret == "" {
		return DevJWTSecret
	}
	return c.JWTSecret
}

func (c *Config) ResetTokenTTL() (time.Duration, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(c.PasswordResetTTLMin))
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("invalid PASSWORD_RESET_TTL_MIN %q", c.PasswordResetTTLMin)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	i := strings.Index(c.DatabaseURL, "@")
	j := strings.Index(c.DatabaseURL, "://")
	if i < 0 || j < 0 || j+3 > i {
		return c.DatabaseURL
	}
	creds := c.DatabaseURL[j+3 : i]
	if k := strings.Index(creds, ":"); k >= 0 {
		creds = creds[:k] + ":***"
	}
	return c.DatabaseURL[:j+3] + creds + c.DatabaseURL[i:]
}
