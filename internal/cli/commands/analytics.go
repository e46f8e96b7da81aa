package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// NewAnalyticsCmd creates the analytics command group
func NewAnalyticsCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "View dashboard metrics and trends",
	}
	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	cmd.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show headline dashboard metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyticsDashboard(serverAlias)
		},
	})

	usage := &cobra.Command{
		Use:   "usage",
		Short: "Show cylinder movement trends",
	}
	var usageRange string
	usage.Flags().StringVar(&usageRange, "range", "30d", "Time range (7d|30d|90d)")
	usage.RunE = func(cmd *cobra.Command, args []string) error {
		return runAnalyticsUsage(serverAlias, usageRange)
	}
	cmd.AddCommand(usage)

	cmd.AddCommand(&cobra.Command{
		Use:   "customers",
		Short: "Show customer distribution by business type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyticsCustomers(serverAlias)
		},
	})

	maint := &cobra.Command{
		Use:   "maintenance",
		Short: "Show maintenance trends",
	}
	var maintRange string
	maint.Flags().StringVar(&maintRange, "range", "30d", "Time range (7d|30d|90d)")
	maint.RunE = func(cmd *cobra.Command, args []string) error {
		return runAnalyticsMaintenance(serverAlias, maintRange)
	}
	cmd.AddCommand(maint)

	return cmd
}

func runAnalyticsDashboard(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	m, err := a.client.DashboardMetrics()
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Cylinders: %d\n", m.TotalCylinders)
	statuses := make([]string, 0, len(m.CylindersByStatus))
	for status := range m.CylindersByStatus {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(output, "  %-12s %d\n", status, m.CylindersByStatus[models.CylinderStatus(status)])
	}
	fmt.Fprintf(output, "Customers: %d\n", m.TotalCustomers)

	if len(m.RecentTransactions) > 0 {
		fmt.Fprintf(output, "Recent transactions (%d):\n", len(m.RecentTransactions))
		for _, t := range m.RecentTransactions {
			fmt.Fprintf(output, "  %s %s %s %.2f\n", t.ID, t.TransactionType, t.Status, t.TotalAmount)
		}
	}
	if len(m.UpcomingMaintenance) > 0 {
		fmt.Fprintf(output, "Upcoming maintenance (%d):\n", len(m.UpcomingMaintenance))
		for _, r := range m.UpcomingMaintenance {
			fmt.Fprintf(output, "  %s %s due %s\n", r.CylinderID, r.MaintenanceType, r.ScheduledDate.Format("2006-01-02"))
		}
	}
	return nil
}

func runAnalyticsUsage(serverAlias, timeRange string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	trends, err := a.client.UsageTrends(timeRange)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Movement trends over %s\n", trends.Range)
	types := make([]string, 0, len(trends.Movements))
	for t := range trends.Movements {
		types = append(types, string(t))
	}
	sort.Strings(types)

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tPERIOD\tCOUNT")
	for _, t := range types {
		for _, point := range trends.Movements[models.MovementType(t)] {
			fmt.Fprintf(w, "%s\t%s\t%d\n", t, point.Period, point.Count)
		}
	}
	return w.Flush()
}

func runAnalyticsCustomers(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	dist, err := a.client.CustomerDistribution()
	if err != nil {
		return err
	}

	if len(dist) == 0 {
		fmt.Fprintln(output, "No customers yet.")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BUSINESS TYPE\tCOUNT")
	for _, d := range dist {
		fmt.Fprintf(w, "%s\t%d\n", d.BusinessType, d.Count)
	}
	return w.Flush()
}

func runAnalyticsMaintenance(serverAlias, timeRange string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	trends, err := a.client.MaintenanceTrends(timeRange)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Maintenance over %s (completion rate %.0f%%)\n", trends.Range, trends.CompletionRate*100)
	types := make([]string, 0, len(trends.ByType))
	for t := range trends.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(output, "  %-18s %d\n", t, trends.ByType[models.MaintenanceType(t)])
	}
	return nil
}
