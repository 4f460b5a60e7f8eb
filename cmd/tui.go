package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/khrees2412/takecare-ats/internal/app"
	"github.com/khrees2412/takecare-ats/internal/lifecycle"
	"github.com/khrees2412/takecare-ats/internal/tracker"
	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive dashboard",
	Long:  "Browse dashboard candidates, update their status and build invites interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}
		return runTUI(cmd, application, user)
	},
}

func runTUI(cmd *cobra.Command, application *app.App, user *models.User) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	query := tracker.DashboardQuery{}

	for {
		records, err := application.Tracker.Dashboard(cmd.Context(), user, query)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Candidate Dashboard"))
		cmd.Println("Press 'q' to quit, '/' to search, or enter a row number to view details")
		cmd.Println()

		if len(records) == 0 {
			cmd.Println("No candidates on the dashboard.")
		}
		for i, rec := range records {
			cmd.Printf("%d. %s %s for %s at %s [%s]\n",
				i+1, rec.ReferenceID, rec.CandidateName, rec.Position, rec.ClientName, statusLabel(rec.Status))
		}

		cmd.Print("\n> ")
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if err != nil && input == "" {
			return nil
		}

		switch {
		case input == "q" || input == "Q":
			return nil
		case strings.HasPrefix(input, "/"):
			query.Search = strings.TrimSpace(strings.TrimPrefix(input, "/"))
			continue
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(records) {
			cmd.Println("Invalid selection")
			continue
		}

		rec := records[n-1]
		displayCandidate(cmd, application, user, &rec, reader)
	}
}

func displayCandidate(cmd *cobra.Command, application *app.App, user *models.User, rec *models.CandidateRecord, reader *bufio.Reader) {
	for {
		cmd.Println("\n" + strings.Repeat("=", 60))
		printCandidate(cmd, rec)

		cmd.Println("\nOptions:")
		cmd.Println("  [u] Update status")
		cmd.Println("  [i] Build WhatsApp invite")
		cmd.Println("  [b] Back to list")
		cmd.Print("\n> ")

		choice := strings.ToLower(readLine(reader))

		switch choice {
		case "u":
			updated, err := promptTransition(cmd, application, user, rec, reader)
			if err != nil {
				cmd.Printf("%s %v\n", errorStyle.Render("Error:"), err)
				continue
			}
			rec = updated
			cmd.Println("✓ Status updated")
		case "i":
			inv, err := application.Tracker.Invite(cmd.Context(), user, rec.ReferenceID)
			if err != nil {
				cmd.Printf("%s %v\n", errorStyle.Render("Error:"), err)
				continue
			}
			printInvitation(cmd, inv)
		case "b", "":
			return
		default:
			cmd.Println("Invalid choice")
		}
	}
}

func promptTransition(cmd *cobra.Command, application *app.App, user *models.User, rec *models.CandidateRecord, reader *bufio.Reader) (*models.CandidateRecord, error) {
	for i, s := range models.Statuses {
		cmd.Printf("  %d. %s\n", i+1, statusLabel(s))
	}
	cmd.Print("Status: ")
	raw := readLine(reader)

	status, ok := models.ParseStatus(raw)
	if !ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > len(models.Statuses) {
			return nil, fmt.Errorf("%w: unknown status %q", app.ErrInvalidArgument, raw)
		}
		status = models.Statuses[n-1]
	}

	tr := lifecycle.Transition{Status: status}
	if lifecycle.RequiresDate(status) {
		cmd.Print("Date (DD-MM-YYYY): ")
		d, err := models.ParseDate(readLine(reader))
		if err != nil {
			return nil, err
		}
		tr.Date = d
	}

	cmd.Print("Feedback (blank to keep): ")
	if fb := readLine(reader); fb != "" {
		tr.Feedback = &fb
	}

	return application.Tracker.UpdateStatus(cmd.Context(), user, rec.ReferenceID, tr)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
