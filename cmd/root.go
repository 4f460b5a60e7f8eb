package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khrees2412/takecare-ats/internal/app"
	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "takecare",
	Short: "Applicant tracking for Takecare Manpower recruiters",
	Long: `Takecare is a CLI applicant tracker for staffing recruiters.
It records candidate shortlists against client openings, builds WhatsApp
interview invites, tracks status changes and schedules SR follow-ups.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application := app.GetAppFromContext(cmd.Context()); application != nil {
			return application.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cmd.Print* default to stderr
	rootCmd.SetOut(os.Stdout)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, labelStyle.Render("Hint:"), hint)
		}
		stop()
		os.Exit(1)
	}
}

// errorHint suggests a next step for the failures users hit most
func errorHint(err error) string {
	switch {
	case errors.Is(err, app.ErrMissingSRConfig):
		return "Add the opening with 'takecare client add --sr-days N', then retry."
	case errors.Is(err, app.ErrForbidden):
		return "This needs an ADMIN account."
	case errors.Is(err, app.ErrNotFound):
		return "Nothing matched. 'takecare dashboard --all' lists every reference ID you can see."
	case errors.Is(err, app.ErrAlreadyExists):
		return "That email or username is already taken."
	case errors.Is(err, app.ErrInvalidArgument):
		return "Check the flags with --help."
	}
	return ""
}

// session returns the App and the logged-in user for cmd
func session(cmd *cobra.Command) (*app.App, *models.User, error) {
	application := app.GetAppFromContext(cmd.Context())
	if application == nil {
		return nil, nil, fmt.Errorf("application not initialized")
	}
	if user := app.UserFromContext(cmd.Context()); user != nil {
		return application, user, nil
	}
	user, err := application.CurrentUser(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	cmd.SetContext(app.WithUser(cmd.Context(), user))
	return application, user, nil
}

// dateFlag reads a DD-MM-YYYY flag; empty yields nil
func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}
