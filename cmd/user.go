package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/takecare-ats/internal/app"
	"github.com/khrees2412/takecare-ats/internal/tracker"
	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with your email and password",
	Example: `  takecare login --email priya@takecare.in
  takecare login --email priya@takecare.in --password ****`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.GetAppFromContext(cmd.Context())
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		reader := bufio.NewReader(cmd.InOrStdin())
		if email == "" {
			cmd.Print(labelStyle.Render("Email ID: "))
			email = readLine(reader)
		}
		if password == "" {
			cmd.Print(labelStyle.Render("Password: "))
			password = readLine(reader)
		}

		sess, user, err := application.Tracker.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if err := application.SaveSession(sess.Token); err != nil {
			return fmt.Errorf("save session: %w", err)
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("Welcome back, %s!", user.Username)))
		cmd.Println(targetStyle.Render("Target for Today: 80+ Telescreening Calls / 3-5 Interview / 1+ Joining"))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.GetAppFromContext(cmd.Context())
		if application == nil {
			return fmt.Errorf("application not initialized")
		}
		token, err := application.ClearSession()
		if err != nil {
			return err
		}
		if token == "" {
			cmd.Println("Not logged in.")
			return nil
		}
		if err := application.Tracker.Logout(cmd.Context(), token); err != nil {
			return err
		}
		cmd.Println("✓ Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, user, err := session(cmd)
		if err != nil {
			return err
		}
		printUser(cmd, user)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage HR staff accounts",
}

var addUserCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a staff account (admin only; the first account becomes admin)",
	Example: `  takecare user add --email admin@takecare.in --username admin --password ****
  takecare user add --email priya@takecare.in --username priya --role RECRUITER --report-to meena`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.GetAppFromContext(cmd.Context())
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		// The bootstrap account is created before anyone can log in
		actor, err := application.CurrentUser(cmd.Context())
		if err != nil && !errors.Is(err, app.ErrUnauthorized) {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")
		reportTo, _ := cmd.Flags().GetString("report-to")

		user, err := application.Tracker.AddUser(cmd.Context(), actor, tracker.NewUser{
			Email:    email,
			Password: password,
			Username: username,
			Role:     models.Role(role),
			ReportTo: reportTo,
		})
		if err != nil {
			return err
		}

		cmd.Printf("✓ User created: %s (%s)\n", user.Username, user.Role)
		return nil
	},
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff accounts (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, user, err := session(cmd)
		if err != nil {
			return err
		}
		users, err := application.Tracker.ListUsers(cmd.Context(), user)
		if err != nil {
			return err
		}

		rows := [][]string{}
		for _, u := range users {
			rows = append(rows, []string{u.Username, u.Email, string(u.Role), u.ReportTo})
		}
		cmd.Println(titleStyle.Render("Staff"))
		cmd.Println(renderTable([]string{"Username", "Email", "Role", "Reports To"}, rows))
		return nil
	},
}

func printUser(cmd *cobra.Command, user *models.User) {
	cmd.Printf("%s %s\n", labelStyle.Render("Username:"), valueStyle.Render(user.Username))
	cmd.Printf("%s %s\n", labelStyle.Render("Email:"), valueStyle.Render(user.Email))
	cmd.Printf("%s %s\n", labelStyle.Render("Role:"), valueStyle.Render(string(user.Role)))
	if user.ReportTo != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Reports To:"), valueStyle.Render(user.ReportTo))
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(addUserCmd)
	userCmd.AddCommand(listUsersCmd)

	loginCmd.Flags().String("email", "", "Email ID")
	loginCmd.Flags().String("password", "", "Password (prompted when omitted)")

	addUserCmd.Flags().String("email", "", "Email ID")
	addUserCmd.Flags().String("username", "", "Display name used as HR Name on records")
	addUserCmd.Flags().String("password", "", "Initial password")
	addUserCmd.Flags().String("role", string(models.RoleRecruiter), "ADMIN, TL or RECRUITER")
	addUserCmd.Flags().String("report-to", "", "Username of the team lead")
}
