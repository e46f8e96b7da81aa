package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gastrack-dev/gastrack/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a GasTrack server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password, serverAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set GASTRACK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set GASTRACK_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	return cmd
}

func runLogin(email, password, serverAlias string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("GASTRACK_EMAIL")
	}
	if password == "" {
		password = os.Getenv("GASTRACK_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or GASTRACK_EMAIL env var)")
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or GASTRACK_PASSWORD env var)")
		}
	}

	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	// Login/register pages are public: an already-authenticated session is
	// bounced to the dashboard instead of logging in twice.
	a.session.Start()
	if !a.session.Guard(session.PublicGuard) {
		fmt.Fprintln(output, "Already logged in. Run 'gastrack logout' first to switch accounts.")
		return nil
	}

	fmt.Fprintf(output, "Logging in to %s...\n", a.client.BaseURL())

	if err := a.session.Login(email, password); err != nil {
		return fmt.Errorf("login failed: %s", a.session.Snapshot().Err)
	}

	user := a.session.Snapshot().User
	fmt.Fprintln(output, "✓ Login successful!")
	fmt.Fprintf(output, "  User: %s (%s)\n", user.FullName, user.Email)
	fmt.Fprintf(output, "  Role: %s\n", user.Role)

	return nil
}
