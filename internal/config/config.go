// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	DataDir      string // Base directory for local databases (always absolute)
	LogLevel     string
	Port         int
	DevMode      bool
	MockDataPath string // Fixture file replacing the embedded demo dataset; empty = embedded
	Market       MarketDBConfig
	Schedules    ScheduleConfig
	R2           R2Config
}

// MarketDBConfig selects the database behind the market-data routes
type MarketDBConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string // explicit DSN; built from the PG* variables or DataDir when empty

	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// ScheduleConfig holds cron expressions for background jobs.
// Empty disables a job; the environment disables one with "off".
type ScheduleConfig struct {
	CueReload   string
	Archive     string
	Maintenance string
}

// R2Config holds Cloudflare R2 credentials for snapshot archiving
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	RetentionDays   int // 0 keeps every archive
}

// Enabled reports whether every credential needed for uploads is present
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

// Load reads configuration from environment variables (and .env, when present)
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("WORKBENCH_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:      absDataDir,
		Port:         getEnvAsInt("PORT", 8080),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		MockDataPath: getEnv("MOCK_DATA_PATH", ""),
		Market: MarketDBConfig{
			Driver:   strings.ToLower(getEnv("MARKET_DB_DRIVER", "sqlite")),
			DSN:      getEnv("MARKET_DB_DSN", ""),
			Host:     getEnv("PGHOST", "localhost"),
			Port:     getEnvAsInt("PGPORT", 5432),
			User:     getEnv("PGUSER", "postgres"),
			Password: getEnv("PGPASSWORD", ""),
			Database: getEnv("PGDATABASE", "market"),
			SSLMode:  getEnv("PGSSLMODE", "disable"),
		},
		Schedules: ScheduleConfig{
			CueReload:   getSchedule("CUE_RELOAD_SCHEDULE", "0 */15 * * * *"),
			Archive:     getSchedule("ARCHIVE_SCHEDULE", "0 0 * * * *"),
			Maintenance: getSchedule("MAINTENANCE_SCHEDULE", "0 0 3 * * *"),
		},
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			RetentionDays:   getEnvAsInt("R2_RETENTION_DAYS", 30),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	if c.R2.RetentionDays < 0 {
		return fmt.Errorf("invalid R2_RETENTION_DAYS %d", c.R2.RetentionDays)
	}

	switch c.Market.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid MARKET_DB_DRIVER %q (want sqlite or postgres)", c.Market.Driver)
	}

	for name, spec := range map[string]string{
		"CUE_RELOAD_SCHEDULE":  c.Schedules.CueReload,
		"ARCHIVE_SCHEDULE":     c.Schedules.Archive,
		"MAINTENANCE_SCHEDULE": c.Schedules.Maintenance,
	} {
		if spec == "" {
			continue
		}
		if _, err := ScheduleParser.Parse(spec); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, spec, err)
		}
	}

	if c.MockDataPath != "" {
		if _, err := os.Stat(c.MockDataPath); err != nil {
			return fmt.Errorf("MOCK_DATA_PATH: %w", err)
		}
	}

	return nil
}

// ScheduleParser accepts standard five-field expressions, six-field expressions
// with a leading seconds field, and descriptors such as "@hourly" or "@every 30s"
var ScheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// MarketDSN returns the driver name and data source for the market database
func (c *Config) MarketDSN() (driver, dsn string) {
	m := c.Market
	if m.DSN != "" {
		return m.Driver, m.DSN
	}

	if m.Driver == "postgres" {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(m.User, m.Password),
			Host:     fmt.Sprintf("%s:%d", m.Host, m.Port),
			Path:     "/" + m.Database,
			RawQuery: url.Values{"sslmode": {m.SSLMode}}.Encode(),
		}
		return m.Driver, u.String()
	}

	return m.Driver, filepath.Join(c.DataDir, "market.db")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getSchedule(key, defaultValue string) string {
	value := strings.TrimSpace(getEnv(key, defaultValue))
	if strings.EqualFold(value, "off") {
		return ""
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
