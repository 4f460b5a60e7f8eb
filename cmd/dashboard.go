package cmd

import (
	"github.com/khrees2412/takecare-ats/internal/tracker"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ls"},
	Short:   "List active candidate records",
	Long: `List the candidate records you can see. Records drop off the dashboard
once they go stale: shortlisted ones after a week, left or not-joined ones
after three days, and pipeline ones a month after their interview date.`,
	Example: `  takecare dashboard
  takecare dashboard --search acme
  takecare dashboard --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		all, _ := cmd.Flags().GetBool("all")

		records, err := application.Tracker.Dashboard(cmd.Context(), user, tracker.DashboardQuery{
			Search:     search,
			ShowHidden: all,
		})
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Candidate Dashboard"))
		if len(records) == 0 {
			cmd.Println("No candidates to show.")
			return nil
		}
		cmd.Println(renderTable(candidateHeaders, candidateRows(records)))
		cmd.Printf("\n%s %d\n", labelStyle.Render("Showing:"), len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().StringP("search", "s", "", "Match any column, case-insensitive")
	dashboardCmd.Flags().Bool("all", false, "Include records aged off the dashboard")
}
