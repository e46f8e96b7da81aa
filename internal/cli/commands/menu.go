package commands

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/nav"
)

// NewMenuCmd creates the interactive menu command
func NewMenuCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Browse the dashboard interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	return cmd
}

func runMenu(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	user := a.session.Snapshot().User
	fmt.Fprintf(output, "Signed in as %s\n", user)

	pages := nav.AuthorizedPages(user.Role)
	pages = append(pages,
		nav.Page{Title: "Profile", Path: nav.RouteProfile},
		nav.Page{Title: "Logout", Path: nav.RouteLogin},
	)

	for {
		labels := make([]string, len(pages)+1)
		for i, p := range pages {
			labels[i] = p.Title
		}
		labels[len(pages)] = "Quit"

		prompt := promptui.Select{
			Label: "Where to?",
			Items: labels,
			Size:  len(labels),
		}

		index, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("menu cancelled: %w", err)
		}
		if index == len(pages) {
			return nil
		}

		page := pages[index]
		if page.Title == "Logout" {
			a.session.Logout()
			fmt.Fprintln(output, "✓ Logged out.")
			return nil
		}

		a.navigator.Navigate(page.Path)
		if err := showPage(a, page.Path); err != nil {
			fmt.Fprintf(output, "! %v\n", err)
		}
		fmt.Fprintln(output)
	}
}

// showPage renders the terminal equivalent of a dashboard page.
func showPage(a *app, path string) error {
	switch path {
	case nav.RouteRoot, nav.RouteDashboard:
		m, err := a.client.DashboardMetrics()
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "Cylinders: %d  Customers: %d\n", m.TotalCylinders, m.TotalCustomers)
		return nil
	case nav.RouteCylinders, nav.RouteInventory:
		cylinders, err := a.client.ListCylinders()
		if err != nil {
			return err
		}
		for _, c := range cylinders {
			fmt.Fprintf(output, "%s  %s  %s\n", c.SerialNumber, c.Type, c.Status)
		}
		return nil
	case nav.RouteCustomers:
		customers, err := a.client.ListCustomers()
		if err != nil {
			return err
		}
		for _, c := range customers {
			fmt.Fprintf(output, "%s  %s\n", c.Name, c.City)
		}
		return nil
	case nav.RouteDeliveries, nav.RoutePlanning:
		transactions, err := a.client.ListTransactions()
		if err != nil {
			return err
		}
		for _, t := range transactions {
			fmt.Fprintf(output, "%s  %s  %s\n", t.ID, t.TransactionType, t.Status)
		}
		return nil
	case nav.RouteMaintenance, nav.RouteInspections:
		records, err := a.client.UpcomingMaintenance(30)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Fprintf(output, "%s  %s  due %s\n", r.CylinderID, r.MaintenanceType, r.ScheduledDate.Format("2006-01-02"))
		}
		return nil
	case nav.RouteReports, nav.RouteAnalytics:
		trends, err := a.client.MaintenanceTrends("30d")
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "Maintenance completion rate: %.0f%%\n", trends.CompletionRate*100)
		return nil
	case nav.RouteProfile:
		user := a.session.Snapshot().User
		fmt.Fprintf(output, "%s\n", user)
		return nil
	}
	return fmt.Errorf("nothing to show for %s", path)
}
