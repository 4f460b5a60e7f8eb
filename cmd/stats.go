package cmd

import (
	"strconv"

	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View candidate counts by status",
	Long:  "Display how many of your candidates sit in each lifecycle status, alongside the daily target",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}

		counts, err := application.Tracker.Stats(cmd.Context(), user)
		if err != nil {
			return err
		}

		total := 0
		for _, n := range counts {
			total += n
		}

		cmd.Println(targetStyle.Render("Target for Today: 80+ Telescreening Calls / 3-5 Interview / 1+ Joining"))
		cmd.Println(titleStyle.Render("Candidate Statistics"))

		if total == 0 {
			cmd.Println("No candidates yet. Add one with 'takecare shortlist add'")
			return nil
		}

		rows := [][]string{}
		for _, status := range models.Statuses {
			n := counts[status]
			rows = append(rows, []string{
				statusLabel(status),
				strconv.Itoa(n),
				percent(n, total),
			})
		}
		cmd.Println(renderTable([]string{"Status", "Count", "Share"}, rows))
		cmd.Printf("\n%s %d\n", labelStyle.Render("Total Candidates:"), total)

		// Onboarded, Left and Project Success all passed through joining
		joined := counts[models.StatusOnboarded] + counts[models.StatusLeft] + counts[models.StatusProjectSuccess]
		cmd.Printf("%s %s\n", labelStyle.Render("Joining Rate:"), percent(joined, total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
