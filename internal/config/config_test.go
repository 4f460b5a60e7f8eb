package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, createDefaultConfig(file))

	cfg, err := Load(viper.New(), file, dir)
	require.NoError(t, err)

	assert.Equal(t, "Takecare Manpower", cfg.AgencyName)
	assert.Equal(t, "91", cfg.CountryCode)
	assert.Equal(t, 7, cfg.ShortlistWindowDays)
	assert.Equal(t, 3, cfg.ExitWindowDays)
	assert.Equal(t, 30, cfg.PipelineWindowDays)
	assert.Equal(t, filepath.Join(dir, "takecare.db"), cfg.DatabasePath)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, createDefaultConfig(file))
	t.Setenv("TAKECARE_EXIT_WINDOW_DAYS", "5")

	cfg, err := Load(viper.New(), file, dir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.ExitWindowDays)
}

func TestLoadRejectsBadCountryCode(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("country_code: \"+91\"\n"), 0600))

	_, err := Load(viper.New(), file, dir)
	assert.ErrorContains(t, err, "country_code")
}

func TestIsKey(t *testing.T) {
	assert.True(t, IsKey("agency_name"))
	assert.False(t, IsKey("password"))
}

func TestSetValidatesBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, createDefaultConfig(file))
	v := viper.New()
	_, err := Load(v, file, dir)
	require.NoError(t, err)

	before, err := os.ReadFile(file)
	require.NoError(t, err)

	tests := []struct {
		key, value, wantErr string
	}{
		{"exit_window_days", "-1", "window days"},
		{"session_hours", "abc", "session_hours"},
		{"session_hours", "0", "session_hours"},
		{"reminder_schedule", "every morning", "reminder_schedule"},
		{"reminder_schedule", "0 9 * * *", "reminder_schedule"},
		{"country_code", "+91", "country_code"},
		{"password", "x", "unknown config key"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorContains(t, set(v, tt.key, tt.value), tt.wantErr)
		})
	}

	after, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	require.NoError(t, set(v, "pipeline_window_days", "45"))
	cfg, err := Load(viper.New(), file, dir)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.PipelineWindowDays)
	assert.Equal(t, 3, cfg.ExitWindowDays)
}

func TestValidateReminderSchedule(t *testing.T) {
	cfg := &Config{SessionHours: 12, ReminderSchedule: "0 30 8 * * 1-6"}
	assert.NoError(t, cfg.Validate())

	cfg.ReminderSchedule = "@daily"
	assert.NoError(t, cfg.Validate())

	cfg.ReminderSchedule = ""
	assert.Error(t, cfg.Validate())
}
