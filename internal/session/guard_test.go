package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gastrack-dev/gastrack/internal/models"
	"github.com/gastrack-dev/gastrack/internal/nav"
)

func TestPrivateGuard(t *testing.T) {
	user := &models.User{ID: "u1", Role: models.RoleUser}

	tests := []struct {
		name       string
		snap       Snapshot
		want       Decision
		wantTarget string
	}{
		{"loading waits", Snapshot{Loading: true}, Wait, ""},
		{"loading with user still waits", Snapshot{User: user, Loading: true}, Wait, ""},
		{"authenticated renders", Snapshot{User: user}, Render, ""},
		{"anonymous redirects to login", Snapshot{}, Redirect, nav.RouteLogin},
		{"error stays anonymous", Snapshot{Err: "Incorrect email or password"}, Redirect, nav.RouteLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, target := PrivateGuard(tt.snap)
			if got != tt.want || target != tt.wantTarget {
				t.Errorf("PrivateGuard = (%v, %q), want (%v, %q)", got, target, tt.want, tt.wantTarget)
			}
		})
	}
}

func TestPublicGuard(t *testing.T) {
	user := &models.User{ID: "u1", Role: models.RoleUser}

	tests := []struct {
		name       string
		snap       Snapshot
		want       Decision
		wantTarget string
	}{
		{"loading waits", Snapshot{Loading: true}, Wait, ""},
		{"authenticated redirects to dashboard", Snapshot{User: user}, Redirect, nav.RouteDashboard},
		{"anonymous renders", Snapshot{}, Render, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, target := PublicGuard(tt.snap)
			if got != tt.want || target != tt.wantTarget {
				t.Errorf("PublicGuard = (%v, %q), want (%v, %q)", got, target, tt.want, tt.wantTarget)
			}
		})
	}
}

func TestGuardPerformsRedirectThroughNavigator(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer ts.Close()

	sess, _, navigator, _ := newTestSession(ts.URL)

	if sess.Guard(PrivateGuard) {
		t.Error("anonymous session allowed to render private content")
	}
	if got := navigator.Current(); got != nav.RouteLogin {
		t.Errorf("navigator at %q, want %q", got, nav.RouteLogin)
	}

	// Redirect replaces the current entry, so the history does not grow.
	if got := len(navigator.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}
