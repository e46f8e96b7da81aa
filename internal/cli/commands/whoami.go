package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	return cmd
}

func runWhoami(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	user := a.session.Snapshot().User
	fmt.Fprintf(output, "%s\n", user)
	if user.PhoneNumber != "" {
		fmt.Fprintf(output, "  Phone: %s\n", user.PhoneNumber)
	}
	if user.Address != "" {
		fmt.Fprintf(output, "  Address: %s\n", user.Address)
	}

	return nil
}
