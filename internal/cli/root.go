package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/cli/commands"
	"github.com/gastrack-dev/gastrack/internal/config"
	"github.com/gastrack-dev/gastrack/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "gastrack",
	Short: "GasTrack - Gas cylinder tracking from the terminal",
	Long: `GasTrack CLI - Manage cylinders, customers, deliveries and maintenance.

GasTrack talks to a GasTrack API server. Run 'gastrack init' to register a
server, 'gastrack login' to authenticate, then any of the resource commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			logger.Init("warn", "console")
			return
		}
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	},
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gastrack version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewMenuCmd())
	rootCmd.AddCommand(commands.NewCylindersCmd())
	rootCmd.AddCommand(commands.NewCustomersCmd())
	rootCmd.AddCommand(commands.NewMovementsCmd())
	rootCmd.AddCommand(commands.NewMaintenanceCmd())
	rootCmd.AddCommand(commands.NewAnalyticsCmd())
	rootCmd.AddCommand(commands.NewBulkCmd())
	rootCmd.AddCommand(commands.NewDashCmd())
	rootCmd.AddCommand(commands.NewSelectServerCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
