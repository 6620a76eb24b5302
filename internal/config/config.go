package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Seed     bool
}

// PolicyConfig names every attendance and leave policy knob that used to
// be implicit. All durations are minutes.
type PolicyConfig struct {
	GracePeriodMinutes      int
	EarlyBufferMinutes      int
	MinimumWorkMinutes      int
	DefaultShiftMinutes     int
	FinancialYearStartMonth int
	DefaultCompanyID        string
}

func Load() (*Config, error) {
	// Missing .env is fine; env vars may come from the environment itself.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Seed:     getEnv("APP_SEED", "true") == "true",
	}

	policy, err := loadPolicy()
	if err != nil {
		return nil, err
	}
	config.Policy = policy

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPolicy() (PolicyConfig, error) {
	policy := PolicyConfig{
		DefaultCompanyID: getEnv("POLICY_DEFAULT_COMPANY_ID", ""),
	}

	fields := []struct {
		dst      *int
		env      string
		fallback string
	}{
		{&policy.GracePeriodMinutes, "POLICY_GRACE_PERIOD_MINUTES", "15"},
		{&policy.EarlyBufferMinutes, "POLICY_EARLY_BUFFER_MINUTES", "30"},
		{&policy.MinimumWorkMinutes, "POLICY_MINIMUM_WORK_MINUTES", "240"},
		{&policy.DefaultShiftMinutes, "POLICY_DEFAULT_SHIFT_MINUTES", "480"},
		{&policy.FinancialYearStartMonth, "POLICY_FINANCIAL_YEAR_START_MONTH", "1"},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(getEnv(f.env, f.fallback))
		if err != nil {
			return PolicyConfig{}, fmt.Errorf("invalid %s: %w", f.env, err)
		}
		*f.dst = v
	}

	return policy, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Policy.GracePeriodMinutes < 0 {
		return fmt.Errorf("POLICY_GRACE_PERIOD_MINUTES must not be negative")
	}
	if c.Policy.EarlyBufferMinutes < 0 {
		return fmt.Errorf("POLICY_EARLY_BUFFER_MINUTES must not be negative")
	}
	if c.Policy.MinimumWorkMinutes < 0 {
		return fmt.Errorf("POLICY_MINIMUM_WORK_MINUTES must not be negative")
	}
	if c.Policy.DefaultShiftMinutes <= 0 {
		return fmt.Errorf("POLICY_DEFAULT_SHIFT_MINUTES must be positive")
	}
	if c.Policy.FinancialYearStartMonth < 1 || c.Policy.FinancialYearStartMonth > 12 {
		return fmt.Errorf("POLICY_FINANCIAL_YEAR_START_MONTH must be between 1 and 12")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
