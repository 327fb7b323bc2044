package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Port         string
	LogLevel     string
	ForecastFile string
	DBConn       string
	FeedURL      string

	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
	AlertEmail     string
	AlertThreshold string
	AlertSchedule  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		ForecastFile:   getEnv("FORECAST_FILE", ""),
		DBConn:         getEnv("DB_CONN", ""),
		FeedURL:        getEnv("FEED_URL", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", ""),
		AlertEmail:     getEnv("ALERT_EMAIL", ""),
		AlertThreshold: getEnv("ALERT_THRESHOLD", "0"),
		AlertSchedule:  getEnv("ALERT_SCHEDULE", "0 8 * * *"),
	}

	if cfg.AlertEmail != "" {
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is required when ALERT_EMAIL is set")
		}
		if cfg.SenderEmail == "" {
			return nil, fmt.Errorf("SENDER_EMAIL is required when ALERT_EMAIL is set")
		}
	}
	if _, err := decimal.NewFromString(cfg.AlertThreshold); err != nil {
		return nil, fmt.Errorf("ALERT_THRESHOLD must be a decimal amount: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
