package commands

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/session"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var req api.RegisterRequest
	var password, serverAlias string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Password = password
			return runRegister(req, serverAlias)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Address, "address", "", "Address")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	return cmd
}

func runRegister(req api.RegisterRequest, serverAlias string) error {
	if req.Email == "" {
		return fmt.Errorf("email is required (use --email flag)")
	}
	if req.FullName == "" {
		return fmt.Errorf("full name is required (use --full-name flag)")
	}

	if req.Password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			req.Password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag)")
		}
	}

	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	a.session.Start()
	if !a.session.Guard(session.PublicGuard) {
		fmt.Fprintln(output, "Already logged in. Run 'gastrack logout' before registering a new account.")
		return nil
	}

	if err := a.session.Register(req); err != nil {
		return fmt.Errorf("registration failed: %s", a.session.Snapshot().Err)
	}

	fmt.Fprintln(output, "✓ Registration successful!")
	fmt.Fprintln(output, "  Run 'gastrack login' to sign in.")

	return nil
}
