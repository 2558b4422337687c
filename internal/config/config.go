package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Development bool
	// API configuration
	APIPort int
	// Postgres configuration
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string

	// SMTP configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSender   string

	// Direct-message provider configuration
	ProviderURL string

	// Job schedules (cron descriptors)
	ReminderSchedule          string
	OverdueSchedule           string
	RecurringSchedule         string
	OverdueStatusSchedule     string
	ScheduledMessagesSchedule string
	ChannelSyncSchedule       string
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Development:      getEnvAsBool("DEVELOPMENT", false),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvAsInt("POSTGRES_PORT", 5432),
		PostgresDB:       getEnv("POSTGRES_DB", "monere"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.example.com"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPSender:   getEnv("SMTP_SENDER", ""),

		ProviderURL: getEnv("PROVIDER_URL", ""),

		ReminderSchedule:          getEnv("REMINDER_SCHEDULE", "@hourly"),
		OverdueSchedule:           getEnv("OVERDUE_SCHEDULE", "@daily"),
		RecurringSchedule:         getEnv("RECURRING_SCHEDULE", "@daily"),
		OverdueStatusSchedule:     getEnv("OVERDUE_STATUS_SCHEDULE", "@hourly"),
		ScheduledMessagesSchedule: getEnv("SCHEDULED_MESSAGES_SCHEDULE", "@every 1m"),
		ChannelSyncSchedule:       getEnv("CHANNEL_SYNC_SCHEDULE", "@every 30s"),

		APIPort: getEnvAsInt("API_PORT", 6570),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are properly set
func (c *Config) Validate() error {
	if c.ProviderURL == "" {
		return fmt.Errorf("PROVIDER_URL is required")
	}

	if c.PostgresDB == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}

	return nil
}

// Helper functions to read environment variables
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
