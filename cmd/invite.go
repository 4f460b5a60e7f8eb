package cmd

import (
	"github.com/khrees2412/takecare-ats/internal/tracker"
	"github.com/spf13/cobra"
)

var inviteCmd = &cobra.Command{
	Use:     "invite <ref-id>",
	Short:   "Build the WhatsApp interview invite for a candidate",
	Args:    cobra.ExactArgs(1),
	Example: `  takecare invite E00012`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}
		inv, err := application.Tracker.Invite(cmd.Context(), user, args[0])
		if err != nil {
			return err
		}
		printInvitation(cmd, inv)
		return nil
	},
}

func printInvitation(cmd *cobra.Command, inv *tracker.Invitation) {
	cmd.Println(titleStyle.Render("Interview Invite"))
	cmd.Println(inv.Message)
	cmd.Printf("\n%s %s\n", labelStyle.Render("Open in WhatsApp:"), inv.Link)
}

func init() {
	rootCmd.AddCommand(inviteCmd)
}
