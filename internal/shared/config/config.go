package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"scholarship-intake/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string

	RecordStore   string
	RecordCSVPath string
	SQLitePath    string
	DatabaseURL   string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	Notifier      string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	NotifyFrom    string
	NotifyTimeout time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

var defaults = map[string]any{
	"PORT":               "8080",
	"ENV":                "dev",
	"CORS_ALLOW_ORIGINS": "http://localhost:5173",
	"LOG_LEVEL":          "info",
	"RECORD_STORE":       "csv",
	"RECORD_CSV_PATH":    "applications.csv",
	"SQLITE_PATH":        "applications.db",
	"DATABASE_URL":       "",
	"OBJECT_STORE":       "local",
	"LOCAL_STORE_DIR":    "./data",
	"AWS_REGION":         "",
	"S3_BUCKET":          "",
	"S3_PREFIX":          "",
	"SSE_KMS_KEY_ID":     "",
	"NOTIFIER":           "none",
	"SMTP_HOST":          "smtp.gmail.com",
	"SMTP_PORT":          587,
	"SMTP_USERNAME":      "",
	"SMTP_PASSWORD":      "",
	"SMTP_PASSWORD_FILE": "",
	"NOTIFY_FROM":        "",
	"NOTIFY_TIMEOUT":     "10s",
	"RATE_LIMIT_RPS":     1.0,
	"RATE_LIMIT_BURST":   10,
}

// Load reads configuration from .env files, an optional scholarship.yaml and
// environment variables, in increasing order of precedence.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetConfigName("scholarship")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			telemetry.Warn("config.file_unreadable", map[string]any{"file": "scholarship.yaml", "error": err})
		}
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	timeout := v.GetDuration("NOTIFY_TIMEOUT")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	password := v.GetString("SMTP_PASSWORD")
	if password == "" {
		if path := strings.TrimSpace(v.GetString("SMTP_PASSWORD_FILE")); path != "" {
			secret, err := readSecretFile(path)
			if err != nil {
				telemetry.Warn("config.secret_file_unreadable", map[string]any{"key": "SMTP_PASSWORD_FILE", "error": err})
			} else {
				password = secret
			}
		}
	}

	return Config{
		Port:            v.GetString("PORT"),
		Env:             normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin: splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		LogLevel:        v.GetString("LOG_LEVEL"),
		RecordStore:     normalizeRecordStore(v.GetString("RECORD_STORE")),
		RecordCSVPath:   v.GetString("RECORD_CSV_PATH"),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		ObjectStoreType: normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:   v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:       v.GetString("AWS_REGION"),
		S3Bucket:        v.GetString("S3_BUCKET"),
		S3Prefix:        v.GetString("S3_PREFIX"),
		SSEKMSKeyID:     v.GetString("SSE_KMS_KEY_ID"),
		Notifier:        normalizeNotifier(v.GetString("NOTIFIER")),
		SMTPHost:        v.GetString("SMTP_HOST"),
		SMTPPort:        v.GetInt("SMTP_PORT"),
		SMTPUsername:    v.GetString("SMTP_USERNAME"),
		SMTPPassword:    password,
		NotifyFrom:      v.GetString("NOTIFY_FROM"),
		NotifyTimeout:   timeout,
		RateLimitRPS:    v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
	}
}

// Validate reports configuration combinations that cannot work.
func (c Config) Validate() error {
	switch c.RecordStore {
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("RECORD_STORE=postgres requires DATABASE_URL")
		}
	case "csv":
		if strings.TrimSpace(c.RecordCSVPath) == "" {
			return errors.New("RECORD_STORE=csv requires RECORD_CSV_PATH")
		}
	}
	switch c.Notifier {
	case "smtp":
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return errors.New("NOTIFIER=smtp requires SMTP_HOST, SMTP_USERNAME and SMTP_PASSWORD or SMTP_PASSWORD_FILE")
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return fmt.Errorf("SMTP_PORT out of range: %d", c.SMTPPort)
		}
	case "ses":
		if strings.TrimSpace(c.NotifyFrom) == "" {
			return errors.New("NOTIFIER=ses requires NOTIFY_FROM")
		}
	}
	if c.ObjectStoreType == "s3" && strings.TrimSpace(c.S3Bucket) == "" {
		return errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
	}
	return nil
}

// Sender returns the From address used for notifications.
func (c Config) Sender() string {
	if from := strings.TrimSpace(c.NotifyFrom); from != "" {
		return from
	}
	return c.SMTPUsername
}

func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeRecordStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sqlite":
		return "sqlite"
	case "postgres", "postgresql", "pg":
		return "postgres"
	case "memory":
		return "memory"
	default:
		return "csv"
	}
}

func normalizeNotifier(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "smtp", "email":
		return "smtp"
	case "ses":
		return "ses"
	default:
		return "none"
	}
}
