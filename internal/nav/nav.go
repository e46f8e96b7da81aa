// Package nav holds the client-side route table, the Navigator abstraction
// used by the session layer, and the role-indexed page sets shown in menus.
package nav

import (
	"sync"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// Client-side routes.
const (
	RouteRoot         = "/"
	RouteLogin        = "/login"
	RouteRegister     = "/register"
	RouteDashboard    = "/dashboard"
	RouteCustomers    = "/customers"
	RouteCylinders    = "/cylinders"
	RouteInventory    = "/inventory"
	RouteReports      = "/reports"
	RouteDeliveries   = "/deliveries"
	RoutePlanning     = "/routes"
	RouteMaintenance  = "/maintenance"
	RouteInspections  = "/inspections"
	RouteAnalytics    = "/analytics"
	RouteBulkUpload   = "/bulk-upload"
	RouteProfile      = "/profile"
	RouteSettings     = "/settings"
	RouteUnauthorized = "/unauthorized"
)

// Navigator abstracts navigation so the session layer can force redirects
// without knowing how the client renders pages.
type Navigator interface {
	// Navigate moves to the given route, pushing a history entry.
	Navigate(path string)
	// Replace moves to the given route, replacing the current history entry
	// so back-navigation cannot return to the page being left.
	Replace(path string)
}

// Recorder is a Navigator that tracks history. It backs the interactive menu
// and doubles as a test double.
type Recorder struct {
	mu      sync.Mutex
	history []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, path)
}

func (r *Recorder) Replace(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		r.history = []string{path}
		return
	}
	r.history[len(r.history)-1] = path
}

// Current returns the route on top of the history, or "" if empty.
func (r *Recorder) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return ""
	}
	return r.history[len(r.history)-1]
}

// History returns a copy of the navigation history.
func (r *Recorder) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}

// Page is a navigable page descriptor.
type Page struct {
	Title string
	Path  string
}

var basePages = []Page{
	{Title: "Dashboard", Path: RouteRoot},
	{Title: "My Cylinders", Path: RouteCylinders},
}

var managerPages = []Page{
	{Title: "Customers", Path: RouteCustomers},
	{Title: "Inventory", Path: RouteInventory},
	{Title: "Reports", Path: RouteReports},
}

var driverPages = []Page{
	{Title: "Deliveries", Path: RouteDeliveries},
	{Title: "Route Planning", Path: RoutePlanning},
}

var technicianPages = []Page{
	{Title: "Maintenance", Path: RouteMaintenance},
	{Title: "Inspections", Path: RouteInspections},
}

// AuthorizedPages returns the page set navigable by the given role.
// The result is recomputed on every call; callers must not mutate shared
// state through it.
func AuthorizedPages(role models.Role) []Page {
	pages := make([]Page, 0, len(basePages)+3)
	pages = append(pages, basePages...)

	switch role {
	case models.RoleManager, models.RoleAdmin:
		pages = append(pages, managerPages...)
	case models.RoleDriver:
		pages = append(pages, driverPages...)
	case models.RoleTechnician:
		pages = append(pages, technicianPages...)
	case models.RoleUser, models.RoleCustomer:
		// Base pages only.
	}

	return pages
}
