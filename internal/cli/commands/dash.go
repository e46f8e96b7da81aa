package commands

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/cli/serverselect"
)

// NewDashCmd creates the dash command
func NewDashCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the web dashboard in browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDash(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	return cmd
}

func runDash(serverAlias string) error {
	server, err := serverselect.ResolveServerOrDefault(serverAlias)
	if err != nil {
		return err
	}

	// The web dashboard is served from the API origin, without the /api/v1 path.
	parsed, err := url.Parse(server.URL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", server.URL, err)
	}
	dashboardURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)

	fmt.Fprintf(output, "Opening dashboard for %s (%s)...\n", server.Alias, dashboardURL)

	if err := openBrowser(dashboardURL); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, dashboardURL)
	}

	return nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
