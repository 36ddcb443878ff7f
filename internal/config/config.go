package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the canonizer. It is constructed once
// at process start and passed by parameter into every component.
type Config struct {
	// Server configuration (serve mode)
	Port  string
	Debug bool

	// Schedule configuration (serve mode)
	IngestSchedule string // "daily" or "hourly"
	TimeZone       string

	// Supabase configuration
	SupabaseURL      string
	SupabaseAnonKey  string
	SupabaseEmail    string
	SupabasePassword string
	MomentsTable     string

	// Siphon content configuration
	ContentDir string

	// Upsert batching
	BatchSize            int
	UpsertTimeoutSeconds int

	// Run report archive
	ReportsDir string

	// Auth session cache
	SessionFile string

	// Notification configuration
	WebhookURL        string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          getBoolEnv("DEBUG", false),
		IngestSchedule: getEnv("INGEST_SCHEDULE", "daily"),
		TimeZone:       getEnv("TIMEZONE", "UTC"),

		SupabaseURL:      getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:  getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseEmail:    getEnv("SUPABASE_EMAIL", ""),
		SupabasePassword: getEnv("SUPABASE_PASSWORD", ""),
		MomentsTable:     getEnv("MOMENTS_TABLE", "moments"),

		ContentDir: getEnv("CONTENT_DIR", "./content"),

		BatchSize:            getIntEnv("BATCH_SIZE", 100),
		UpsertTimeoutSeconds: getIntEnv("UPSERT_TIMEOUT_SECONDS", 30),

		ReportsDir:  getEnv("REPORTS_DIR", "./reports"),
		SessionFile: getEnv("SESSION_FILE", ".voyo-session.json"),

		WebhookURL:        getEnv("WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RequireSupabase checks the credentials needed for catalog writes. Dry runs
// never reach the store, so this is enforced at ingest setup, not in Load.
func (c *Config) RequireSupabase() error {
	if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required for catalog writes")
	}
	return nil
}

func (c *Config) validate() error {
	if c.IngestSchedule != "daily" && c.IngestSchedule != "hourly" {
		return fmt.Errorf("INGEST_SCHEDULE must be 'daily' or 'hourly'")
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// PlatformDir returns the content tree for one platform.
func (c *Config) PlatformDir(platform string) string {
	return strings.TrimRight(c.ContentDir, "/") + "/" + platform
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
