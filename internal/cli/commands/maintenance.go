package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/models"
)

// NewMaintenanceCmd creates the maintenance command group
func NewMaintenanceCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Manage cylinder maintenance records and schedules",
	}
	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List maintenance records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenanceList(serverAlias)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a maintenance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenanceGet(serverAlias, args[0])
		},
	})

	create := &cobra.Command{
		Use:   "create",
		Short: "Schedule maintenance for a cylinder",
	}
	var createReq api.CreateMaintenanceRequest
	var maintenanceType, scheduledDate string
	var createCost float64
	create.Flags().StringVar(&createReq.CylinderID, "cylinder", "", "Cylinder ID")
	create.Flags().StringVar(&maintenanceType, "type", "", "Maintenance type (inspection|hydrostatic_test|repair|replacement|cleaning)")
	create.Flags().StringVar(&scheduledDate, "date", "", "Scheduled date (YYYY-MM-DD)")
	create.Flags().StringVar(&createReq.Notes, "notes", "", "Notes")
	create.Flags().Float64Var(&createCost, "cost", 0, "Estimated cost")
	create.RunE = func(cmd *cobra.Command, args []string) error {
		createReq.MaintenanceType = models.MaintenanceType(maintenanceType)
		if scheduledDate != "" {
			t, err := time.Parse("2006-01-02", scheduledDate)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			createReq.ScheduledDate = t
		}
		if createCost > 0 {
			createReq.Cost = &createCost
		}
		return runMaintenanceCreate(serverAlias, createReq)
	}
	cmd.AddCommand(create)

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a maintenance record as completed",
		Args:  cobra.ExactArgs(1),
	}
	var notes string
	var cost float64
	complete.Flags().StringVar(&notes, "notes", "", "Completion notes")
	complete.Flags().Float64Var(&cost, "cost", 0, "Final cost")
	complete.RunE = func(cmd *cobra.Command, args []string) error {
		return runMaintenanceComplete(serverAlias, args[0], notes, cost)
	}
	cmd.AddCommand(complete)

	cmd.AddCommand(&cobra.Command{
		Use:   "cylinder <cylinder-id>",
		Short: "Show maintenance history for a cylinder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenanceByCylinder(serverAlias, args[0])
		},
	})

	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "List maintenance due within a window",
	}
	var days int
	upcoming.Flags().IntVar(&days, "days", 30, "Window in days")
	upcoming.RunE = func(cmd *cobra.Command, args []string) error {
		return runMaintenanceUpcoming(serverAlias, days)
	}
	cmd.AddCommand(upcoming)

	cmd.AddCommand(&cobra.Command{
		Use:   "overdue",
		Short: "List overdue maintenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenanceOverdue(serverAlias)
		},
	})

	schedule := &cobra.Command{
		Use:   "schedule <cylinder-id>",
		Short: "Put a cylinder on a recurring maintenance schedule",
		Args:  cobra.ExactArgs(1),
	}
	var schedType string
	var frequencyDays int
	schedule.Flags().StringVar(&schedType, "type", "", "Maintenance type (inspection|hydrostatic_test|repair|replacement|cleaning)")
	schedule.Flags().IntVar(&frequencyDays, "every", 365, "Frequency in days")
	schedule.RunE = func(cmd *cobra.Command, args []string) error {
		req := api.CreateScheduleRequest{
			MaintenanceType: models.MaintenanceType(schedType),
			FrequencyDays:   frequencyDays,
		}
		return runMaintenanceSchedule(serverAlias, args[0], req)
	}
	cmd.AddCommand(schedule)

	return cmd
}

func printMaintenanceTable(records []models.MaintenanceRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(output, "No maintenance records found.")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCYLINDER\tTYPE\tSTATUS\tSCHEDULED\tCOST")
	for _, r := range records {
		cost := "-"
		if r.Cost != nil {
			cost = fmt.Sprintf("%.2f", *r.Cost)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.CylinderID, r.MaintenanceType, r.Status,
			r.ScheduledDate.Format("2006-01-02"), cost)
	}
	return w.Flush()
}

func runMaintenanceList(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	records, err := a.client.ListMaintenance()
	if err != nil {
		return err
	}
	return printMaintenanceTable(records)
}

func runMaintenanceGet(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	r, err := a.client.GetMaintenance(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Maintenance %s\n", r.ID)
	fmt.Fprintf(output, "  Cylinder:  %s\n", r.CylinderID)
	fmt.Fprintf(output, "  Type:      %s (%s)\n", r.MaintenanceType, r.Status)
	fmt.Fprintf(output, "  Scheduled: %s\n", r.ScheduledDate.Format("2006-01-02"))
	if r.CompletedDate != nil {
		fmt.Fprintf(output, "  Completed: %s by %s\n", r.CompletedDate.Format("2006-01-02"), r.PerformedBy)
	}
	if r.Cost != nil {
		fmt.Fprintf(output, "  Cost:      %.2f\n", *r.Cost)
	}
	if r.Notes != "" {
		fmt.Fprintf(output, "  Notes:     %s\n", r.Notes)
	}
	return nil
}

func runMaintenanceCreate(serverAlias string, req api.CreateMaintenanceRequest) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	r, err := a.client.CreateMaintenance(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Scheduled %s for cylinder %s on %s\n",
		r.MaintenanceType, r.CylinderID, r.ScheduledDate.Format("2006-01-02"))
	return nil
}

func runMaintenanceComplete(serverAlias, id, notes string, cost float64) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	status := models.MaintenanceCompleted
	now := time.Now().UTC()
	req := api.UpdateMaintenanceRequest{
		Status:        &status,
		CompletedDate: &now,
	}
	if notes != "" {
		req.Notes = &notes
	}
	if cost > 0 {
		req.Cost = &cost
	}

	r, err := a.client.UpdateMaintenance(id, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Maintenance %s completed\n", r.ID)
	return nil
}

func runMaintenanceByCylinder(serverAlias, cylinderID string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	records, err := a.client.MaintenanceByCylinder(cylinderID)
	if err != nil {
		return err
	}
	return printMaintenanceTable(records)
}

func runMaintenanceUpcoming(serverAlias string, days int) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	records, err := a.client.UpcomingMaintenance(days)
	if err != nil {
		return err
	}
	return printMaintenanceTable(records)
}

func runMaintenanceOverdue(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	records, err := a.client.OverdueMaintenance()
	if err != nil {
		return err
	}
	return printMaintenanceTable(records)
}

func runMaintenanceSchedule(serverAlias, cylinderID string, req api.CreateScheduleRequest) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	s, err := a.client.CreateMaintenanceSchedule(cylinderID, req)
	if err != nil {
		return err
	}

	next := "-"
	if s.NextMaintenance != nil {
		next = s.NextMaintenance.Format("2006-01-02")
	}
	fmt.Fprintf(output, "✓ Cylinder %s scheduled for %s every %d days (next due %s)\n",
		s.CylinderID, s.MaintenanceType, s.FrequencyDays, next)
	return nil
}
