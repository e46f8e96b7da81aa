package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/nav"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored credential and end the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	return cmd
}

func runLogout(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}

	a.session.Logout()

	if a.navigator.Current() == nav.RouteLogin {
		fmt.Fprintln(output, "✓ Logged out.")
	} else {
		fmt.Fprintln(output, "Not logged in.")
	}

	return nil
}
