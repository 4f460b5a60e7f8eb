package cmd

import (
	"strconv"

	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/spf13/cobra"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage the client master",
}

var addClientCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a client opening (admin only)",
	Example: `  takecare client add --client Acme --position Welder --sr-days 90 \
    --address "Plot 4, MIDC Bhosari" --map https://maps.app.goo.gl/abc --contact-person "Mr. Patil"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		var o models.ClientOpening
		o.ClientName, _ = cmd.Flags().GetString("client")
		o.Position, _ = cmd.Flags().GetString("position")
		o.SRDays, _ = cmd.Flags().GetInt("sr-days")
		o.Address, _ = cmd.Flags().GetString("address")
		o.MapLink, _ = cmd.Flags().GetString("map")
		o.ContactPerson, _ = cmd.Flags().GetString("contact-person")

		if err := application.Tracker.SaveClientOpening(cmd.Context(), user, o); err != nil {
			return err
		}
		cmd.Printf("✓ Saved %s / %s (SR %d days)\n", o.ClientName, o.Position, o.SRDays)
		return nil
	},
}

var listClientCmd = &cobra.Command{
	Use:   "list",
	Short: "List client openings",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, _, err := session(cmd)
		if err != nil {
			return err
		}
		openings, err := application.Tracker.ClientOpenings(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Client Master"))
		if len(openings) == 0 {
			cmd.Println("No client openings yet. Add one with 'takecare client add'")
			return nil
		}

		rows := [][]string{}
		for _, o := range openings {
			rows = append(rows, []string{
				o.ClientName, o.Position, strconv.Itoa(o.SRDays), o.Address, o.ContactPerson,
			})
		}
		cmd.Println(renderTable([]string{"Client", "Job Title", "SR Days", "Address", "Contact Person"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(addClientCmd)
	clientCmd.AddCommand(listClientCmd)

	addClientCmd.Flags().String("client", "", "Client name")
	addClientCmd.Flags().String("position", "", "Job title")
	addClientCmd.Flags().Int("sr-days", 0, "Days after onboarding until the SR follow-up")
	addClientCmd.Flags().String("address", "", "Interview address")
	addClientCmd.Flags().String("map", "", "Map link for the interview address")
	addClientCmd.Flags().String("contact-person", "", "Person the candidate should ask for")
}
