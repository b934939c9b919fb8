// ABOUTME: Authentication commands: login, register, logout and whoami
// ABOUTME: Prompts for missing credentials with huh and validates before sending

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/markalston/projecthub-cli/internal/validation"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string

	registerName     string
	registerEmail    string
	registerPassword string
	registerConfirm  string

	whoamiRemote bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long: `Log in with email and password. Missing values are prompted for.

Exit codes:
  0 - Logged in
  1 - Rejected credentials or invalid input
  2 - Backend or connectivity error`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		creds := models.Credentials{Email: loginEmail, Password: loginPassword}
		if creds.Email == "" || creds.Password == "" {
			if err := promptCredentials(&creds); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitUser)
			}
		}

		exitCode := runLogin(ctx, newServices(), os.Stdout, creds)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session",
	Long: `Create an account. Input is checked locally before anything is sent:
name of at least 3 characters, a valid email, a password of at least 6
characters, and a matching confirmation.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		reg := validation.Registration{
			Name:            registerName,
			Email:           registerEmail,
			Password:        registerPassword,
			ConfirmPassword: registerConfirm,
		}
		if reg.Name == "" || reg.Email == "" || reg.Password == "" {
			if err := promptRegistration(&reg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitUser)
			}
		} else if !cmd.Flags().Changed("confirm-password") {
			reg.ConfirmPassword = reg.Password
		}

		exitCode := runRegister(ctx, newServices(), os.Stdout, reg)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(newServices(), os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Long:  `Show the user stored with the session. With --remote, fetch the profile and statistics from the backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exitCode := runWhoami(ctx, newServices(), os.Stdout, whoamiRemote)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm-password", "", "Repeat the password (defaults to --password)")

	whoamiCmd.Flags().BoolVar(&whoamiRemote, "remote", false, "Fetch profile and statistics from the backend")
}

// runLogin authenticates and returns exit code
func runLogin(ctx context.Context, svc *service.Services, w io.Writer, creds models.Credentials) int {
	if err := validation.Required("email", creds.Email); err != nil {
		return reportError(w, err)
	}
	if err := validation.Required("password", creds.Password); err != nil {
		return reportError(w, err)
	}

	result, err := svc.Auth.Login(ctx, creds)
	if err != nil {
		return reportAuthError(w, err)
	}
	return reportAuthResult(w, result, "login failed")
}

// runRegister validates locally, then creates the account
func runRegister(ctx context.Context, svc *service.Services, w io.Writer, reg validation.Registration) int {
	if err := reg.Validate(); err != nil {
		return reportError(w, err)
	}

	result, err := svc.Auth.Register(ctx, reg.Input())
	if err != nil {
		return reportAuthError(w, err)
	}
	return reportAuthResult(w, result, "registration failed")
}

// reportAuthError treats rejected credentials as user error rather than an expired session
func reportAuthError(w io.Writer, err error) int {
	code := reportError(w, err)
	if status := client.StatusCode(err); status >= 400 && status < 500 {
		return exitUser
	}
	return code
}

// reportAuthResult prints the outcome of login/register
func reportAuthResult(w io.Writer, result *models.AuthResult, fallback string) int {
	if IsJSONOutput() {
		printJSON(w, result)
	}
	if !result.Success || result.Data.Token == "" {
		if !IsJSONOutput() {
			fmt.Fprintf(w, "Error: %s\n", authFailure(result, fallback))
		}
		return exitUser
	}
	if !IsJSONOutput() {
		fmt.Fprintln(w, formatLoggedIn(result.Data.User))
	}
	return exitOK
}

// runLogout clears the session. Safe without one.
func runLogout(svc *service.Services, w io.Writer) int {
	if err := svc.Auth.Logout(); err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, map[string]bool{"success": true})
	} else {
		fmt.Fprintln(w, "Logged out.")
	}
	return exitOK
}

// runWhoami prints the stored user, or the backend profile when remote is set
func runWhoami(ctx context.Context, svc *service.Services, w io.Writer, remote bool) int {
	if !requireSession(svc, w) {
		return exitAuth
	}

	if !remote {
		user := svc.Auth.CurrentUser()
		if IsJSONOutput() {
			printJSON(w, map[string]any{"user": user})
		} else {
			fmt.Fprintln(w, formatUser(user))
		}
		return exitOK
	}

	defer watchSession(svc, w)()
	profile, err := svc.Auth.Profile(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, profile)
		return exitOK
	}

	user := profile.User
	if user == nil {
		user = svc.Auth.CurrentUser()
	}
	fmt.Fprintln(w, formatUser(user))
	if profile.Statistics != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatStatistics(*profile.Statistics))
	}
	return exitOK
}

// formatLoggedIn formats the success line after login/register
func formatLoggedIn(user *models.User) string {
	if user == nil || user.Name == "" {
		return "Logged in."
	}
	return fmt.Sprintf("Logged in as %s <%s>.", user.Name, user.Email)
}

// formatUser formats the stored user record
func formatUser(user *models.User) string {
	if user == nil {
		return "Logged in (user details unavailable)"
	}
	return fmt.Sprintf(`Name:   %s
Email:  %s
ID:     %s`, user.Name, user.Email, user.ID)
}

// promptCredentials asks for whatever login values are missing
func promptCredentials(creds *models.Credentials) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&creds.Email).
				Validate(validation.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(func(s string) error { return validation.Required("password", s) }),
		),
	).Run()
}

// promptRegistration asks for every registration field not given as a flag
func promptRegistration(reg *validation.Registration) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&reg.Name),
			huh.NewInput().Title("Email").Value(&reg.Email).Validate(validation.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&reg.Password),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&reg.ConfirmPassword),
		),
	).Run()
}
