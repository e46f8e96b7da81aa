package session

import "github.com/gastrack-dev/gastrack/internal/nav"

// Decision is a guard's verdict on rendering a subtree.
type Decision int

const (
	// Wait means session state is still loading; the guard must neither
	// render nor redirect, avoiding a flash-redirect to /login while a
	// stored token is being verified.
	Wait Decision = iota
	// Render means the guarded subtree may be shown.
	Render
	// Redirect means navigation must move to the returned target,
	// replacing the current history entry.
	Redirect
)

// PrivateGuard gates authenticated-only pages: anonymous visitors are sent
// to /login.
func PrivateGuard(snap Snapshot) (Decision, string) {
	switch snap.State() {
	case Loading:
		return Wait, ""
	case Authenticated:
		return Render, ""
	default:
		return Redirect, nav.RouteLogin
	}
}

// PublicGuard gates login/register pages: authenticated users are sent to
// the dashboard instead.
func PublicGuard(snap Snapshot) (Decision, string) {
	switch snap.State() {
	case Loading:
		return Wait, ""
	case Authenticated:
		return Redirect, nav.RouteDashboard
	default:
		return Render, ""
	}
}

// Guard evaluates a guard against the current session state and performs
// the redirect through the navigator when required. It reports whether the
// guarded content may render.
func (s *Session) Guard(guard func(Snapshot) (Decision, string)) bool {
	decision, target := guard(s.Snapshot())
	if decision == Redirect {
		s.navigator.Replace(target)
	}
	return decision == Render
}
