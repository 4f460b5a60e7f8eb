package cmd

import (
	"time"

	"github.com/khrees2412/takecare-ats/internal/logger"
	"github.com/khrees2412/takecare-ats/internal/reminder"
	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/spf13/cobra"
)

var srCmd = &cobra.Command{
	Use:   "sr",
	Short: "Track SR follow-ups for onboarded candidates",
}

var dueSRCmd = &cobra.Command{
	Use:     "due",
	Short:   "List SR follow-ups that are due",
	Example: `  takecare sr due --within 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}
		within, _ := cmd.Flags().GetInt("within")

		due, err := application.Tracker.DueReminders(cmd.Context(), user, within)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("SR Follow-ups"))
		if len(due) == 0 {
			cmd.Printf("Nothing due in the next %d days.\n", within)
			return nil
		}
		cmd.Println(renderTable(candidateHeaders, candidateRows(due)))
		return nil
	},
}

var watchSRCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check SR follow-ups on the configured schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}
		within, _ := cmd.Flags().GetInt("within")
		ctx := cmd.Context()

		check := func() {
			due, err := application.Tracker.DueReminders(ctx, user, within)
			if err != nil {
				logger.Error("SR check failed", "error", err)
				return
			}
			logger.InfoContext(ctx, "SR check complete", "due", len(due))
			for _, rec := range due {
				cmd.Printf("%s SR due %s for %s (%s, %s)\n",
					labelStyle.Render(rec.ReferenceID),
					models.FormatDate(rec.SRDate),
					rec.CandidateName,
					rec.ClientName,
					rec.HRName)
			}
		}

		sched, err := reminder.NewScheduler(application.Config.ReminderSchedule, time.Local, check)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		cmd.Printf("Watching SR follow-ups, next check %s. Press Ctrl+C to stop.\n",
			sched.Next().Format("02-01-2006 15:04:05"))
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(srCmd)
	srCmd.AddCommand(dueSRCmd)
	srCmd.AddCommand(watchSRCmd)

	dueSRCmd.Flags().Int("within", 0, "Also include follow-ups due in this many days")
	watchSRCmd.Flags().Int("within", 0, "Also include follow-ups due in this many days")
}
