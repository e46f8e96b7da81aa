package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// NewBulkCmd creates the bulk upload command group
func NewBulkCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Import customers or cylinders from CSV files",
	}
	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	cmd.AddCommand(&cobra.Command{
		Use:   "customers <file.csv>",
		Short: "Bulk import customers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulkUpload(serverAlias, args[0], "customers")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cylinders <file.csv>",
		Short: "Bulk import cylinders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulkUpload(serverAlias, args[0], "cylinders")
		},
	})

	return cmd
}

func runBulkUpload(serverAlias, path, kind string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	filename := filepath.Base(path)
	var result *models.BulkUploadResult
	switch kind {
	case "customers":
		result, err = a.client.BulkUploadCustomers(filename, f)
	case "cylinders":
		result, err = a.client.BulkUploadCylinders(filename, f)
	default:
		return fmt.Errorf("unknown bulk upload kind %q", kind)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ %s: %d created, %d skipped\n", result.Filename, result.Created, result.Skipped)
	for _, e := range result.Errors {
		fmt.Fprintf(output, "  ! %s\n", e)
	}
	return nil
}
