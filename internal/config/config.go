package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DatabasePath        string `mapstructure:"database_path"`
	AgencyName          string `mapstructure:"agency_name"`
	InterviewTime       string `mapstructure:"interview_time"`
	CountryCode         string `mapstructure:"country_code"`
	ShortlistWindowDays int    `mapstructure:"shortlist_window_days"` // dashboard age-out windows, in days
	ExitWindowDays      int    `mapstructure:"exit_window_days"`
	PipelineWindowDays  int    `mapstructure:"pipeline_window_days"`
	SessionHours        int    `mapstructure:"session_hours"`
	ReminderSchedule    string `mapstructure:"reminder_schedule"`
	LogLevel            string `mapstructure:"log_level"`
	LogFormat           string `mapstructure:"log_format"`
}

// Keys lists the settings that may be changed with `config set`
var Keys = []string{
	"database_path", "agency_name", "interview_time", "country_code",
	"shortlist_window_days", "exit_window_days", "pipeline_window_days",
	"session_hours", "reminder_schedule", "log_level", "log_format",
}

var AppConfig *Config

// Dir returns ~/.takecare
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".takecare"), nil
}

// Initialize loads or creates the configuration file
func Initialize() error {
	configDir, err := Dir()
	if err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	// .env in the working directory is optional
	_ = godotenv.Load()

	cfg, err := Load(viper.GetViper(), configFile, configDir)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load reads configFile into v with defaults and TAKECARE_ env overrides
func Load(v *viper.Viper, configFile, configDir string) (*Config, error) {
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("takecare")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("database_path", filepath.Join(configDir, "takecare.db"))
	v.SetDefault("agency_name", "Takecare Manpower")
	v.SetDefault("interview_time", "10.30 AM")
	v.SetDefault("country_code", "91")
	v.SetDefault("shortlist_window_days", 7)
	v.SetDefault("exit_window_days", 3)
	v.SetDefault("pipeline_window_days", 30)
	v.SetDefault("session_hours", 12)
	v.SetDefault("reminder_schedule", "0 0 9 * * *")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Validate rejects settings the tracker cannot run with
func (c *Config) Validate() error {
	if c.ShortlistWindowDays < 0 || c.ExitWindowDays < 0 || c.PipelineWindowDays < 0 {
		return fmt.Errorf("window days must not be negative")
	}
	if c.SessionHours <= 0 {
		return fmt.Errorf("session_hours must be positive")
	}
	for _, r := range c.CountryCode {
		if r < '0' || r > '9' {
			return fmt.Errorf("country_code must be digits only, got %q", c.CountryCode)
		}
	}
	if _, err := scheduleParser.Parse(c.ReminderSchedule); err != nil {
		return fmt.Errorf("reminder_schedule: %w", err)
	}
	return nil
}

// scheduleParser accepts the six-field spec the reminder scheduler runs with
var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Takecare ATS Configuration
agency_name: Takecare Manpower
interview_time: 10.30 AM
country_code: "91"

# Days before records drop off the dashboard
shortlist_window_days: 7
exit_window_days: 3
pipeline_window_days: 30

session_hours: 12

# SR follow-up check (seconds minutes hours dom month dow)
reminder_schedule: "0 0 9 * * *"

log_level: info
log_format: text
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value. The change is checked against the rest
// of the loaded settings first, so an invalid value never reaches the file.
func Set(key, value string) error {
	return set(viper.GetViper(), key, value)
}

func set(v *viper.Viper, key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	scratch := viper.New()
	for k, val := range v.AllSettings() {
		scratch.Set(k, val)
	}
	scratch.Set(key, value)

	cfg := &Config{}
	if err := scratch.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	v.Set(key, value)
	return v.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	dir, _ := Dir()
	return filepath.Join(dir, "config.yaml")
}

// IsKey reports whether key may be set
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
