package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Policy    PolicyConfig    `yaml:"policy"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// PolicyConfig contains rental policy settings
type PolicyConfig struct {
	// DailyLateFeeCents is the late-fee rate applied by the overdue sweep.
	DailyLateFeeCents int64 `yaml:"daily_late_fee_cents"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkOverdueRentals string `yaml:"mark_overdue_rentals"`
	ExpireReservations string `yaml:"expire_reservations"`
	ScanMaintenanceDue string `yaml:"scan_maintenance_due"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied, for callers
// that run without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.overrideWithEnv()
	if err := cfg.Validate(); err != nil {
		// Defaults always validate; a failure here is a programming error.
		panic(err)
	}
	return cfg
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DAILY_LATE_FEE_CENTS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Policy.DailyLateFeeCents)
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid and applies defaults
func (c *Config) Validate() error {
	if c.Policy.DailyLateFeeCents < 0 {
		return fmt.Errorf("daily late fee cannot be negative: %d", c.Policy.DailyLateFeeCents)
	}
	if c.Policy.DailyLateFeeCents == 0 {
		c.Policy.DailyLateFeeCents = 1000 // Default $10.00/day
	}

	// Scheduler defaults
	if c.Scheduler.MarkOverdueRentals == "" {
		c.Scheduler.MarkOverdueRentals = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.ExpireReservations == "" {
		c.Scheduler.ExpireReservations = "0 15 2 * * *" // 2:15 AM UTC
	}
	if c.Scheduler.ScanMaintenanceDue == "" {
		c.Scheduler.ScanMaintenanceDue = "0 30 2 * * *" // 2:30 AM UTC
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return nil
}
