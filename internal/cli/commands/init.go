package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <api-url>",
		Short: "Register an API server in gastrack.json",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	apiURL := args[0]

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Fprintln(output, "Found existing gastrack.json")
	} else {
		cfg = &config.Config{
			Servers: []config.Server{},
		}
		isNewConfig = true
	}

	serverExists := false
	for _, server := range cfg.Servers {
		if server.URL == apiURL {
			serverExists = true
			break
		}
	}

	if serverExists {
		fmt.Fprintf(output, "Server %s already exists in gastrack.json\n", apiURL)
		return nil
	}

	alias := "production"
	if len(cfg.Servers) > 0 {
		alias = fmt.Sprintf("server-%d", len(cfg.Servers)+1)
	}

	cfg.Servers = append(cfg.Servers, config.Server{
		URL:   apiURL,
		Alias: alias,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Fprintf(output, "✓ Created ./gastrack.json with server %s (%s)\n", apiURL, alias)
	} else {
		fmt.Fprintf(output, "✓ Added server %s (%s) to ./gastrack.json\n", apiURL, alias)
	}

	fmt.Fprintln(output, "\nNext steps:")
	fmt.Fprintln(output, "  1. Run 'gastrack register' to create an account, or")
	fmt.Fprintln(output, "  2. Run 'gastrack login' to authenticate")

	return nil
}
