package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gastrack-dev/gastrack/internal/cli/auth"
	"github.com/gastrack-dev/gastrack/internal/models"
	"github.com/gastrack-dev/gastrack/internal/nav"
)

func TestUseBearerAuthAttachesStoredToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{ID: "u1", Email: "a@b.com"})
	}))
	defer ts.Close()

	tokens := auth.NewMemoryTokenStore()
	if err := tokens.SaveToken("tok1"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	client := New(ts.URL)
	client.UseBearerAuth(tokens)

	if _, err := client.CurrentUser(); err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}

	if gotAuth != "Bearer tok1" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer tok1")
	}
}

func TestUseBearerAuthSkipsAnonymousRequests(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok1", TokenType: "bearer"})
	}))
	defer ts.Close()

	client := New(ts.URL)
	client.UseBearerAuth(auth.NewMemoryTokenStore())

	if _, err := client.Login("a@b.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("anonymous request carried Authorization header %q", gotAuth)
	}
}

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if r.PostForm.Get("username") != "a@b.com" || r.PostForm.Get("password") != "secret123" {
			t.Errorf("unexpected form values: %v", r.PostForm)
		}
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok1", TokenType: "bearer"})
	}))
	defer ts.Close()

	client := New(ts.URL)
	token, err := client.Login("a@b.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token.AccessToken != "tok1" {
		t.Errorf("AccessToken = %q, want tok1", token.AccessToken)
	}
}

func TestUnauthorizedLogoutRunsBeforeCallerSeesError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Could not validate credentials"}`))
	}))
	defer ts.Close()

	tokens := auth.NewMemoryTokenStore()
	tokens.SaveToken("stale")
	navigator := nav.NewRecorder()

	var callbackRan bool
	client := New(ts.URL)
	client.UseBearerAuth(tokens)
	client.UseUnauthorizedLogout(tokens, navigator, func() {
		callbackRan = true
	})

	_, err := client.CurrentUser()
	if err == nil {
		t.Fatal("expected error from 401 response")
	}

	// By the time the caller observes the failure, the logout has completed.
	if _, loadErr := tokens.LoadToken(); loadErr == nil {
		t.Error("token still stored after 401")
	}
	if !callbackRan {
		t.Error("logout callback did not run")
	}
	if got := navigator.Current(); got != nav.RouteLogin {
		t.Errorf("navigator at %q, want %q", got, nav.RouteLogin)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T, want *Error", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Detail != "Could not validate credentials" {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
}

func TestUnauthorizedLogoutIgnoresOtherStatuses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Cylinder not found"}`))
	}))
	defer ts.Close()

	tokens := auth.NewMemoryTokenStore()
	tokens.SaveToken("tok1")
	navigator := nav.NewRecorder()

	client := New(ts.URL)
	client.UseBearerAuth(tokens)
	client.UseUnauthorizedLogout(tokens, navigator)

	if _, err := client.GetCylinder("nope"); err == nil {
		t.Fatal("expected error from 404 response")
	}

	if _, err := tokens.LoadToken(); err != nil {
		t.Error("token cleared by non-401 response")
	}
	if got := navigator.Current(); got != "" {
		t.Errorf("navigator moved to %q on non-401", got)
	}
}

func TestRequestHooksRunInOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Cylinder{})
	}))
	defer ts.Close()

	var order []string
	client := New(ts.URL)
	client.OnRequest(func(*http.Request) { order = append(order, "first") })
	client.OnRequest(func(*http.Request) { order = append(order, "second") })
	client.OnResponse(func(*http.Response) { order = append(order, "third") })

	if _, err := client.ListCylinders(); err != nil {
		t.Fatalf("ListCylinders: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("hook order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("hook order = %v, want %v", order, want)
		}
	}
}

func TestErrorDetailEnvelopes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"fastapi detail", `{"detail": "Incorrect email or password"}`, 400, "Incorrect email or password"},
		{"plain error", `{"error": "Admin access required"}`, 403, "Admin access required"},
		{"unparseable body", `<html>bad gateway</html>`, 502, "<html>bad gateway</html>"},
		{"empty body", ``, 500, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newError(tt.status, []byte(tt.body))
			if err.Detail != tt.want {
				t.Errorf("Detail = %q, want %q", err.Detail, tt.want)
			}
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
		})
	}
}

func TestDetailFallsBackOnTransportErrors(t *testing.T) {
	if got := Detail(errors.New("connection refused"), "Login failed"); got != "Login failed" {
		t.Errorf("Detail = %q, want fallback", got)
	}
	wrapped := &Error{StatusCode: 400, Detail: "Incorrect email or password"}
	if got := Detail(wrapped, "Login failed"); got != "Incorrect email or password" {
		t.Errorf("Detail = %q, want server detail", got)
	}
}

func TestSendJSONValidatesPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid payload reached the server")
	}))
	defer ts.Close()

	client := New(ts.URL)
	_, err := client.Register(RegisterRequest{Email: "not-an-email", Password: "short", FullName: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
