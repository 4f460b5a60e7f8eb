package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/takecare-ats/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
	// Replaces the root hook: config must stay usable when the file no
	// longer validates, so no database or session is opened here.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			cmd.PrintErrf("%s %v\n", errorStyle.Render("Warning:"), err)
		}
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.AppConfig
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}

		cmd.Println(titleStyle.Render("Configuration"))
		cmd.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		cmd.Printf("%s %s\n", labelStyle.Render("Database:"), cfg.DatabasePath)
		cmd.Printf("%s %s\n", labelStyle.Render("Agency:"), cfg.AgencyName)
		cmd.Printf("%s %s\n", labelStyle.Render("Interview Time:"), cfg.InterviewTime)
		cmd.Printf("%s +%s\n", labelStyle.Render("Country Code:"), cfg.CountryCode)
		cmd.Printf("%s shortlisted %dd, left/not joined %dd, pipeline %dd\n",
			labelStyle.Render("Dashboard Windows:"), cfg.ShortlistWindowDays, cfg.ExitWindowDays, cfg.PipelineWindowDays)
		cmd.Printf("%s %dh\n", labelStyle.Render("Session Length:"), cfg.SessionHours)
		cmd.Printf("%s %s\n", labelStyle.Render("SR Reminder Schedule:"), cfg.ReminderSchedule)
		cmd.Printf("%s %s (%s)\n", labelStyle.Render("Logging:"), cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  takecare config set --key agency_name --value "Takecare Manpower Services"
  takecare config set --key interview_time --value "10:30 AM"
  takecare config set --key pipeline_window_days --value 45
  takecare config set --key reminder_schedule --value "0 30 8 * * 1-6"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}
		if !config.IsKey(key) {
			return fmt.Errorf("invalid key, must be one of: %s", strings.Join(config.Keys, ", "))
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("config not changed: %w", err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)

		if err := config.Initialize(); err != nil {
			cmd.PrintErrf("Warning: Could not reload config: %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
