package cmd

import (
	"fmt"

	"github.com/khrees2412/takecare-ats/internal/lifecycle"
	"github.com/khrees2412/takecare-ats/internal/tracker"
	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View candidates grouped by status",
	Long:  "View and manage candidate statuses",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		filterStatus, _ := cmd.Flags().GetString("filter")
		all, _ := cmd.Flags().GetBool("all")

		var filter models.Status
		if filterStatus != "" {
			s, ok := models.ParseStatus(filterStatus)
			if !ok {
				return fmt.Errorf("invalid status %q, must be one of: %v", filterStatus, models.Statuses)
			}
			filter = s
		}

		records, err := application.Tracker.Dashboard(cmd.Context(), user, tracker.DashboardQuery{ShowHidden: all})
		if err != nil {
			return err
		}

		groups := map[models.Status][]models.CandidateRecord{}
		total := 0
		for _, rec := range records {
			if filter != "" && rec.Status != filter {
				continue
			}
			groups[rec.Status] = append(groups[rec.Status], rec)
			total++
		}

		if total == 0 {
			if filter != "" {
				cmd.Printf("No candidates with status '%s'\n", filter)
			} else {
				cmd.Println("No candidates yet. Add one with 'takecare shortlist add'")
			}
			return nil
		}

		cmd.Println(titleStyle.Render("Candidates"))

		for _, status := range models.Statuses {
			recs := groups[status]
			if len(recs) == 0 {
				continue
			}

			cmd.Printf("\n%s (%d)\n", statusLabel(status), len(recs))
			for _, rec := range recs {
				cmd.Printf("  • %s for %s at %s\n", rec.CandidateName, rec.Position, rec.ClientName)
				cmd.Printf("    %s %s | Shortlisted: %s",
					labelStyle.Render("Ref:"),
					rec.ReferenceID,
					rec.ShortlistedDate.Format(models.DateLayout))
				if rec.SRDate != nil {
					cmd.Printf(" | SR: %s", models.FormatDate(rec.SRDate))
				}
				cmd.Println()
				if rec.Feedback != "" {
					cmd.Printf("    %s %s\n", labelStyle.Render("Feedback:"), rec.Feedback)
				}
			}
		}

		cmd.Printf("\n%s %d\n", labelStyle.Render("Total Candidates:"), total)
		return nil
	},
}

var updateStatusCmd = &cobra.Command{
	Use:   "update <ref-id>",
	Short: "Move a candidate to a new status",
	Args:  cobra.ExactArgs(1),
	Example: `  takecare status update E00012 --status Interviewed --date 14-10-2026
  takecare status update E00012 --status Onboarded --date 01-11-2026
  takecare status update E00012 --status Rejected --feedback "Salary mismatch"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetString("status")
		if raw == "" {
			return fmt.Errorf("status is required, use --status")
		}
		status, ok := models.ParseStatus(raw)
		if !ok {
			return fmt.Errorf("invalid status %q, must be one of: %v", raw, models.Statuses)
		}

		date, err := dateFlag(cmd, "date")
		if err != nil {
			return err
		}

		tr := lifecycle.Transition{Status: status, Date: date}
		if cmd.Flags().Changed("feedback") {
			feedback, _ := cmd.Flags().GetString("feedback")
			tr.Feedback = &feedback
		}

		rec, err := application.Tracker.UpdateStatus(cmd.Context(), user, args[0], tr)
		if err != nil {
			return err
		}

		cmd.Printf("✓ %s is now %s\n", rec.ReferenceID, statusLabel(rec.Status))
		if rec.Status == models.StatusOnboarded {
			cmd.Printf("  %s %s\n", labelStyle.Render("Onboarded:"), models.FormatDate(rec.JoiningDate))
			cmd.Printf("  %s %s\n", labelStyle.Render("SR Date:"), models.FormatDate(rec.SRDate))
		}
		if tr.Feedback != nil && *tr.Feedback != "" {
			cmd.Printf("  %s %s\n", labelStyle.Render("Feedback:"), *tr.Feedback)
		}
		return nil
	},
}

var showStatusCmd = &cobra.Command{
	Use:   "show <ref-id>",
	Short: "Show one candidate record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		rec, err := application.Tracker.Get(cmd.Context(), user, args[0])
		if err != nil {
			return err
		}
		printCandidate(cmd, rec)
		return nil
	},
}

func printCandidate(cmd *cobra.Command, rec *models.CandidateRecord) {
	cmd.Println(titleStyle.Render(fmt.Sprintf("%s  %s", rec.ReferenceID, rec.CandidateName)))
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		cmd.Printf("%s %s\n", labelStyle.Render(label), valueStyle.Render(value))
	}
	field("Shortlisted:", rec.ShortlistedDate.Format(models.DateLayout))
	field("Contact:", rec.ContactNumber)
	field("Client:", rec.ClientName)
	field("Job Title:", rec.Position)
	field("Interview:", models.FormatDate(rec.InterviewDate))
	cmd.Printf("%s %s\n", labelStyle.Render("Status:"), statusLabel(rec.Status))
	field("Onboarded:", models.FormatDate(rec.JoiningDate))
	field("SR Date:", models.FormatDate(rec.SRDate))
	field("HR:", rec.HRName)
	field("Feedback:", rec.Feedback)
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.AddCommand(updateStatusCmd)
	statusCmd.AddCommand(showStatusCmd)

	statusCmd.Flags().String("filter", "", "Only show candidates with this status")
	statusCmd.Flags().Bool("all", false, "Include records aged off the dashboard")

	updateStatusCmd.Flags().String("status", "", "New status (Interviewed, Selected, Onboarded, ...)")
	updateStatusCmd.Flags().String("date", "", "Interview or onboarding date, DD-MM-YYYY")
	updateStatusCmd.Flags().String("feedback", "", "Feedback note")
}
