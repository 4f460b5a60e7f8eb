package cmd

import (
	"github.com/khrees2412/takecare-ats/internal/tracker"
	"github.com/spf13/cobra"
)

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Shortlist candidates against client openings",
}

var addShortlistCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a newly shortlisted candidate",
	Example: `  takecare shortlist add --name "ravi kumar" --contact 9876543210 --client Acme --position Welder
  takecare shortlist add --name "anita s" --contact 9123456780 --client Acme --position Fitter --date 20-10-2026 --invite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		contact, _ := cmd.Flags().GetString("contact")
		client, _ := cmd.Flags().GetString("client")
		position, _ := cmd.Flags().GetString("position")
		feedback, _ := cmd.Flags().GetString("feedback")
		sendInvite, _ := cmd.Flags().GetBool("invite")

		date, err := dateFlag(cmd, "date")
		if err != nil {
			return err
		}

		rec, err := application.Tracker.Shortlist(cmd.Context(), user, tracker.ShortlistInput{
			CandidateName:  name,
			ContactNumber:  contact,
			ClientName:     client,
			Position:       position,
			CommitmentDate: date,
			Feedback:       feedback,
		})
		if err != nil {
			return err
		}

		cmd.Printf("✓ Shortlisted %s as %s\n", rec.CandidateName, labelStyle.Render(rec.ReferenceID))

		if sendInvite {
			inv, err := application.Tracker.BuildInvite(cmd.Context(), rec)
			if err != nil {
				return err
			}
			printInvitation(cmd, inv)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shortlistCmd)
	shortlistCmd.AddCommand(addShortlistCmd)

	addShortlistCmd.Flags().String("name", "", "Candidate name")
	addShortlistCmd.Flags().String("contact", "", "Candidate contact number")
	addShortlistCmd.Flags().String("client", "", "Client name from the client master")
	addShortlistCmd.Flags().String("position", "", "Job title from the client master")
	addShortlistCmd.Flags().String("date", "", "Interview commitment date, DD-MM-YYYY (default today)")
	addShortlistCmd.Flags().String("feedback", "", "Feedback note")
	addShortlistCmd.Flags().Bool("invite", false, "Print the WhatsApp interview invite")
}
