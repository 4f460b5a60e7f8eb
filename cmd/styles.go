package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/khrees2412/takecare-ats/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	targetStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Padding(0, 1)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

var statusColors = map[models.Status]lipgloss.Color{
	models.StatusShortlisted:    lipgloss.Color("7"),
	models.StatusInterviewed:    lipgloss.Color("14"),
	models.StatusSelected:       lipgloss.Color("10"),
	models.StatusHold:           lipgloss.Color("11"),
	models.StatusRejected:       lipgloss.Color("9"),
	models.StatusOnboarded:      lipgloss.Color("12"),
	models.StatusLeft:           lipgloss.Color("8"),
	models.StatusNotJoined:      lipgloss.Color("8"),
	models.StatusProjectSuccess: lipgloss.Color("13"),
}

func statusLabel(s models.Status) string {
	c, ok := statusColors[s]
	if !ok {
		return string(s)
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(s))
}

// renderTable draws rows under headers with the shared border style
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func candidateRows(records []models.CandidateRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.ReferenceID,
			rec.CandidateName,
			rec.ContactNumber,
			rec.ClientName,
			rec.Position,
			models.FormatDate(rec.InterviewDate),
			statusLabel(rec.Status),
			models.FormatDate(rec.JoiningDate),
			models.FormatDate(rec.SRDate),
			rec.HRName,
		})
	}
	return rows
}

var candidateHeaders = []string{
	"Ref ID", "Candidate", "Contact", "Client", "Job Title", "Int. Date", "Status", "Onboard", "SR Date", "HR",
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
