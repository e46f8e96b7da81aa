package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/models"
)

// NewCylindersCmd creates the cylinders command group
func NewCylindersCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "cylinders",
		Short: "Manage gas cylinders",
	}
	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all cylinders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCylindersList(serverAlias)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a cylinder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCylindersGet(serverAlias, args[0])
		},
	})

	create := &cobra.Command{
		Use:   "create",
		Short: "Register a new cylinder",
	}
	var createReq api.CreateCylinderRequest
	var gasType string
	create.Flags().StringVar(&createReq.SerialNumber, "serial", "", "Serial number")
	create.Flags().StringVar(&gasType, "type", "", "Gas type (oxygen|nitrogen|argon|co2|acetylene|helium)")
	create.Flags().Float64Var(&createReq.Capacity, "capacity", 0, "Capacity in liters")
	create.Flags().Float64Var(&createReq.PressureRating, "pressure", 0, "Pressure rating in PSI")
	create.Flags().Float64Var(&createReq.TareWeight, "tare-weight", 0, "Tare weight in kg")
	create.RunE = func(cmd *cobra.Command, args []string) error {
		createReq.Type = models.CylinderType(gasType)
		return runCylindersCreate(serverAlias, createReq)
	}
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a cylinder's status or inspection dates",
		Args:  cobra.ExactArgs(1),
	}
	var status string
	var lastInspection, nextInspection string
	update.Flags().StringVar(&status, "status", "", "New status (available|in_use|maintenance|lost|scrapped)")
	update.Flags().StringVar(&lastInspection, "last-inspection", "", "Last inspection date (YYYY-MM-DD)")
	update.Flags().StringVar(&nextInspection, "next-inspection", "", "Next inspection date (YYYY-MM-DD)")
	update.RunE = func(cmd *cobra.Command, args []string) error {
		req, err := buildCylinderUpdate(status, lastInspection, nextInspection)
		if err != nil {
			return err
		}
		return runCylindersUpdate(serverAlias, args[0], req)
	}
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cylinder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCylindersDelete(serverAlias, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <identifier>",
		Short: "Find a cylinder by serial number or barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCylindersSearch(serverAlias, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "qr <id>",
		Short: "Fetch the QR code of a cylinder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCylindersQR(serverAlias, args[0])
		},
	})

	return cmd
}

func buildCylinderUpdate(status, lastInspection, nextInspection string) (api.UpdateCylinderRequest, error) {
	var req api.UpdateCylinderRequest
	if status != "" {
		s := models.CylinderStatus(status)
		req.Status = &s
	}
	if lastInspection != "" {
		t, err := time.Parse("2006-01-02", lastInspection)
		if err != nil {
			return req, fmt.Errorf("invalid --last-inspection date: %w", err)
		}
		req.LastInspection = &t
	}
	if nextInspection != "" {
		t, err := time.Parse("2006-01-02", nextInspection)
		if err != nil {
			return req, fmt.Errorf("invalid --next-inspection date: %w", err)
		}
		req.NextInspection = &t
	}
	return req, nil
}

func runCylindersList(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	cylinders, err := a.client.ListCylinders()
	if err != nil {
		return err
	}

	if len(cylinders) == 0 {
		fmt.Fprintln(output, "No cylinders found.")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSERIAL\tTYPE\tSTATUS\tCAPACITY\tNEXT INSPECTION")
	for _, c := range cylinders {
		next := "-"
		if c.NextInspection != nil {
			next = c.NextInspection.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1fL\t%s\n",
			c.ID, c.SerialNumber, c.Type, c.Status, c.Capacity, next)
	}
	return w.Flush()
}

func runCylindersGet(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	c, err := a.client.GetCylinder(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Cylinder %s\n", c.ID)
	fmt.Fprintf(output, "  Serial:   %s\n", c.SerialNumber)
	fmt.Fprintf(output, "  Type:     %s\n", c.Type)
	fmt.Fprintf(output, "  Status:   %s\n", c.Status)
	fmt.Fprintf(output, "  Capacity: %.1fL @ %.0f PSI, tare %.1fkg\n", c.Capacity, c.PressureRating, c.TareWeight)
	if c.NextInspection != nil {
		fmt.Fprintf(output, "  Next inspection: %s\n", c.NextInspection.Format("2006-01-02"))
	}
	return nil
}

func runCylindersCreate(serverAlias string, req api.CreateCylinderRequest) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	c, err := a.client.CreateCylinder(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Created cylinder %s (serial %s)\n", c.ID, c.SerialNumber)
	return nil
}

func runCylindersUpdate(serverAlias, id string, req api.UpdateCylinderRequest) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	c, err := a.client.UpdateCylinder(id, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Updated cylinder %s (status %s)\n", c.ID, c.Status)
	return nil
}

func runCylindersDelete(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	if err := a.client.DeleteCylinder(id); err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Deleted cylinder %s\n", id)
	return nil
}

func runCylindersSearch(serverAlias, identifier string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	c, err := a.client.SearchCylinder(identifier)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\t%s\t%s\t%s\n", c.ID, c.SerialNumber, c.Type, c.Status)
	return nil
}

func runCylindersQR(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	qr, err := a.client.CylinderQRCode(id)
	if err != nil {
		return err
	}

	fmt.Fprintln(output, qr.QRCode)
	return nil
}
