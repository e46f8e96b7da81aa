package nav

import (
	"testing"

	"github.com/gastrack-dev/gastrack/internal/models"
)

func pagePaths(pages []Page) []string {
	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.Path
	}
	return paths
}

func TestAuthorizedPages(t *testing.T) {
	tests := []struct {
		role models.Role
		want []string
	}{
		{models.RoleUser, []string{RouteRoot, RouteCylinders}},
		{models.RoleCustomer, []string{RouteRoot, RouteCylinders}},
		{models.RoleManager, []string{RouteRoot, RouteCylinders, RouteCustomers, RouteInventory, RouteReports}},
		{models.RoleAdmin, []string{RouteRoot, RouteCylinders, RouteCustomers, RouteInventory, RouteReports}},
		{models.RoleDriver, []string{RouteRoot, RouteCylinders, RouteDeliveries, RoutePlanning}},
		{models.RoleTechnician, []string{RouteRoot, RouteCylinders, RouteMaintenance, RouteInspections}},
		// Unknown roles fall back to the base page set.
		{models.Role("ghost"), []string{RouteRoot, RouteCylinders}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := pagePaths(AuthorizedPages(tt.role))
			if len(got) != len(tt.want) {
				t.Fatalf("pages = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("pages = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestAuthorizedPagesReturnsFreshSlice(t *testing.T) {
	first := AuthorizedPages(models.RoleManager)
	first[0].Title = "mutated"

	second := AuthorizedPages(models.RoleManager)
	if second[0].Title == "mutated" {
		t.Error("page sets share backing storage across calls")
	}
}

func TestRecorderNavigateAndReplace(t *testing.T) {
	r := NewRecorder()

	if got := r.Current(); got != "" {
		t.Errorf("empty recorder Current = %q", got)
	}

	r.Navigate(RouteLogin)
	r.Navigate(RouteDashboard)
	if got := r.Current(); got != RouteDashboard {
		t.Errorf("Current = %q, want %q", got, RouteDashboard)
	}

	// Replace swaps the top entry instead of pushing.
	r.Replace(RouteCylinders)
	if got := r.Current(); got != RouteCylinders {
		t.Errorf("Current = %q, want %q", got, RouteCylinders)
	}
	if got := len(r.History()); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}

	// Replace on an empty history seeds it.
	empty := NewRecorder()
	empty.Replace(RouteLogin)
	if got := empty.Current(); got != RouteLogin {
		t.Errorf("Current = %q, want %q", got, RouteLogin)
	}
}
