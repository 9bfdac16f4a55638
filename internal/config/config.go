package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Policy   PolicyConfig   `mapstructure:"policy"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Export   ExportConfig   `mapstructure:"export"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// StorageConfig selects and locates the persistent store backend
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "json" or "sqlite"
	Path    string `mapstructure:"path"`
}

// PolicyConfig holds the advisory duration thresholds. These produce
// warnings the user can override, not hard limits.
type PolicyConfig struct {
	HalfDayMaxHours float64 `mapstructure:"half_day_max_hours"`
	FullDayMaxHours float64 `mapstructure:"full_day_max_hours"`
	MinBreakMinutes int     `mapstructure:"min_break_minutes"`
}

// DefaultsConfig holds form defaults for new home-office entries
type DefaultsConfig struct {
	Begin        string `mapstructure:"begin"`
	End          string `mapstructure:"end"`
	BreakMinutes int    `mapstructure:"break_minutes"`
}

// ExportConfig holds export and backup output settings
type ExportConfig struct {
	Dir       string `mapstructure:"dir"`
	BackupDir string `mapstructure:"backup_dir"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file with environment overrides. When no
// config file exists the built-in defaults apply, so the tool runs
// without any setup.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.zeiterfassung")
	}

	v.SetEnvPrefix("ZEITERFASSUNG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configPath != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	dataDir := defaultDataDir()

	v.SetDefault("storage.backend", "json")
	v.SetDefault("storage.path", filepath.Join(dataDir, "zeiterfassung.json"))

	v.SetDefault("policy.half_day_max_hours", 3.5)
	v.SetDefault("policy.full_day_max_hours", 7.0)
	v.SetDefault("policy.min_break_minutes", 30)

	v.SetDefault("defaults.begin", "08:30")
	v.SetDefault("defaults.end", "16:00")
	v.SetDefault("defaults.break_minutes", 30)

	v.SetDefault("export.dir", ".")
	v.SetDefault("export.backup_dir", filepath.Join(dataDir, "backup"))

	v.SetDefault("logging.file", "")
	v.SetDefault("logging.level", "info")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".zeiterfassung")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be 'json' or 'sqlite', got '%s'", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}

	if c.Policy.HalfDayMaxHours <= 0 {
		return fmt.Errorf("policy.half_day_max_hours must be positive")
	}
	if c.Policy.FullDayMaxHours <= 0 {
		return fmt.Errorf("policy.full_day_max_hours must be positive")
	}
	if c.Policy.MinBreakMinutes < 0 {
		return fmt.Errorf("policy.min_break_minutes must not be negative")
	}

	return nil
}
