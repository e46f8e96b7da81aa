package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/cli/auth"
	"github.com/gastrack-dev/gastrack/internal/models"
	"github.com/gastrack-dev/gastrack/internal/nav"
)

// authServer is a minimal login/profile backend: one valid credential pair,
// one token, one user.
func authServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			if err := r.ParseForm(); err != nil {
				t.Fatalf("ParseForm: %v", err)
			}
			if r.PostForm.Get("username") != "a@b.com" || r.PostForm.Get("password") != "secret123" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"detail": "Incorrect email or password"}`))
				return
			}
			json.NewEncoder(w).Encode(api.TokenResponse{AccessToken: "tok1", TokenType: "bearer"})
		case "/users/me":
			if r.Header.Get("Authorization") != "Bearer tok1" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail": "Could not validate credentials"}`))
				return
			}
			json.NewEncoder(w).Encode(models.User{
				ID:       "u1",
				Email:    "a@b.com",
				FullName: "Alice Brand",
				Role:     models.RoleManager,
				IsActive: true,
			})
		case "/auth/register":
			var req api.RegisterRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusUnprocessableEntity)
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.User{ID: "u2", Email: req.Email, FullName: req.FullName, Role: models.RoleUser})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestSession(baseURL string) (*Session, *auth.MemoryTokenStore, *nav.Recorder, *api.Client) {
	tokens := auth.NewMemoryTokenStore()
	navigator := nav.NewRecorder()
	client := api.New(baseURL)
	client.UseBearerAuth(tokens)
	sess := New(client, tokens, navigator, zerolog.Nop())
	return sess, tokens, navigator, client
}

func TestLoginStoresTokenAndNavigatesToDashboard(t *testing.T) {
	ts := authServer(t)
	defer ts.Close()

	sess, tokens, navigator, _ := newTestSession(ts.URL)

	if err := sess.Login("a@b.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if got := sess.State(); got != Authenticated {
		t.Errorf("state = %v, want Authenticated", got)
	}
	snap := sess.Snapshot()
	if snap.User == nil || snap.User.Email != "a@b.com" {
		t.Errorf("user = %+v, want a@b.com", snap.User)
	}
	if snap.User != nil && snap.User.Role != models.RoleManager {
		t.Errorf("role = %q, want manager", snap.User.Role)
	}

	token, err := tokens.LoadToken()
	if err != nil || token != "tok1" {
		t.Errorf("stored token = %q, %v; want tok1", token, err)
	}
	if got := navigator.Current(); got != nav.RouteDashboard {
		t.Errorf("navigator at %q, want %q", got, nav.RouteDashboard)
	}
}

func TestLoginFailureRecordsServerDetail(t *testing.T) {
	ts := authServer(t)
	defer ts.Close()

	sess, tokens, navigator, _ := newTestSession(ts.URL)

	if err := sess.Login("a@b.com", "wrongpass"); err == nil {
		t.Fatal("expected login failure")
	}

	if got := sess.State(); got != Anonymous {
		t.Errorf("state = %v, want Anonymous", got)
	}
	if snap := sess.Snapshot(); snap.Err != "Incorrect email or password" {
		t.Errorf("err = %q, want server detail", snap.Err)
	}
	if _, err := tokens.LoadToken(); err == nil {
		t.Error("token stored despite failed login")
	}
	if got := navigator.Current(); got != "" {
		t.Errorf("navigator moved to %q on failed login", got)
	}
}

func TestStartWithoutTokenStaysOffline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s with no stored token", r.URL.Path)
	}))
	defer ts.Close()

	sess, _, _, _ := newTestSession(ts.URL)

	sess.Start()

	if got := sess.State(); got != Anonymous {
		t.Errorf("state = %v, want Anonymous", got)
	}
}

func TestStartWithValidTokenRestoresUser(t *testing.T) {
	ts := authServer(t)
	defer ts.Close()

	sess, tokens, _, _ := newTestSession(ts.URL)
	tokens.SaveToken("tok1")

	sess.Start()

	if got := sess.State(); got != Authenticated {
		t.Errorf("state = %v, want Authenticated", got)
	}
	if snap := sess.Snapshot(); snap.User == nil || snap.User.ID != "u1" {
		t.Errorf("user = %+v, want u1", snap.User)
	}
}

func TestStartWithStaleTokenFallsBackToAnonymous(t *testing.T) {
	ts := authServer(t)
	defer ts.Close()

	sess, tokens, _, _ := newTestSession(ts.URL)
	tokens.SaveToken("expired")

	sess.Start()

	if got := sess.State(); got != Anonymous {
		t.Errorf("state = %v, want Anonymous", got)
	}
	if _, err := tokens.LoadToken(); err == nil {
		t.Error("stale token not cleared")
	}
}

func TestUnauthorizedMidSessionResetsEverything(t *testing.T) {
	valid := true
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !valid {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Could not validate credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: "u1", Email: "a@b.com", Role: models.RoleManager})
	}))
	defer ts.Close()

	sess, tokens, navigator, client := newTestSession(ts.URL)
	tokens.SaveToken("tok1")
	sess.Start()
	if sess.State() != Authenticated {
		t.Fatal("precondition: session not authenticated")
	}

	// Token invalidated server-side; the next call through the client must
	// terminate the session globally.
	valid = false
	if _, err := client.CurrentUser(); err == nil {
		t.Fatal("expected 401 error")
	}

	if got := sess.State(); got != Anonymous {
		t.Errorf("state = %v, want Anonymous after 401", got)
	}
	if _, err := tokens.LoadToken(); err == nil {
		t.Error("token survived the 401")
	}
	if got := navigator.Current(); got != nav.RouteLogin {
		t.Errorf("navigator at %q, want %q", got, nav.RouteLogin)
	}
}

func TestLogoutClearsStateAndNavigates(t *testing.T) {
	ts := authServer(t)
	defer ts.Close()

	sess, tokens, navigator, _ := newTestSession(ts.URL)
	if err := sess.Login("a@b.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	sess.Logout()

	if got := sess.State(); got != Anonymous {
		t.Errorf("state = %v, want Anonymous", got)
	}
	if _, err := tokens.LoadToken(); err == nil {
		t.Error("token survived logout")
	}
	if got := navigator.Current(); got != nav.RouteLogin {
		t.Errorf("navigator at %q, want %q", got, nav.RouteLogin)
	}
}

func TestLogoutWhenAnonymousIsNoop(t *testing.T) {
	ts := authServer(t)
	defer ts.Close()

	sess, _, navigator, _ := newTestSession(ts.URL)

	sess.Logout()

	if got := len(navigator.History()); got != 0 {
		t.Errorf("navigator history length = %d, want 0", got)
	}
}

func TestRegisterNavigatesToLoginWithoutAuthenticating(t *testing.T) {
	ts := authServer(t)
	defer ts.Close()

	sess, tokens, navigator, _ := newTestSession(ts.URL)

	err := sess.Register(api.RegisterRequest{
		Email:    "new@b.com",
		Password: "secret123",
		FullName: "New User",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := sess.State(); got != Anonymous {
		t.Errorf("state = %v, want Anonymous (no auto-login)", got)
	}
	if _, err := tokens.LoadToken(); err == nil {
		t.Error("token stored by registration")
	}
	if got := navigator.Current(); got != nav.RouteLogin {
		t.Errorf("navigator at %q, want %q", got, nav.RouteLogin)
	}
}

func TestSubscribeReceivesStateChanges(t *testing.T) {
	ts := authServer(t)
	defer ts.Close()

	sess, _, _, _ := newTestSession(ts.URL)
	ch := sess.Subscribe()

	if err := sess.Login("a@b.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// First notification is the loading transition, then the authenticated one.
	first := <-ch
	if first.State() != Loading {
		t.Errorf("first snapshot state = %v, want Loading", first.State())
	}
	second := <-ch
	if second.State() != Authenticated {
		t.Errorf("second snapshot state = %v, want Authenticated", second.State())
	}
}
