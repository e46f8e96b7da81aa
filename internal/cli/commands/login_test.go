package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/cli/auth"
	"github.com/gastrack-dev/gastrack/internal/cli/config"
	"github.com/gastrack-dev/gastrack/internal/models"
)

// setupTestEnvironment writes a gastrack.json into a temp dir, switches to it
// and swaps the package-level token store and output for the duration of the
// test.
func setupTestEnvironment(t *testing.T, serverURL string) (*auth.MemoryTokenStore, *bytes.Buffer) {
	t.Helper()

	tempDir := t.TempDir()
	cfg := &config.Config{
		Servers: []config.Server{{URL: serverURL, Alias: "test"}},
	}
	if err := config.Save(filepath.Join(tempDir, config.ConfigFileName), cfg); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	tokens := auth.NewMemoryTokenStore()
	buf := &bytes.Buffer{}

	originalStore := tokenStore
	originalOutput := output
	tokenStore = tokens
	output = buf

	t.Cleanup(func() {
		tokenStore = originalStore
		output = originalOutput
		os.Chdir(originalDir)
	})

	return tokens, buf
}

// gasTrackServer mimics the API surface the auth commands touch.
func gasTrackServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			r.ParseForm()
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
				ID: "u1", Email: "a@b.com", FullName: "Alice Brand", Role: models.RoleManager, IsActive: true,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Not found"}`))
		}
	}))
}

func TestRunLoginSuccess(t *testing.T) {
	ts := gasTrackServer(t)
	defer ts.Close()

	tokens, buf := setupTestEnvironment(t, ts.URL)

	if err := runLogin("a@b.com", "secret123", "test"); err != nil {
		t.Fatalf("runLogin: %v", err)
	}

	token, err := tokens.LoadToken()
	if err != nil || token != "tok1" {
		t.Errorf("stored token = %q, %v; want tok1", token, err)
	}

	out := buf.String()
	if !strings.Contains(out, "✓ Login successful!") {
		t.Errorf("output missing success marker:\n%s", out)
	}
	if !strings.Contains(out, "Alice Brand (a@b.com)") {
		t.Errorf("output missing user line:\n%s", out)
	}
	if !strings.Contains(out, "Role: manager") {
		t.Errorf("output missing role line:\n%s", out)
	}
}

func TestRunLoginBadCredentials(t *testing.T) {
	ts := gasTrackServer(t)
	defer ts.Close()

	tokens, _ := setupTestEnvironment(t, ts.URL)

	err := runLogin("a@b.com", "wrongpass", "test")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if !strings.Contains(err.Error(), "Incorrect email or password") {
		t.Errorf("error = %q, want server detail", err)
	}
	if _, loadErr := tokens.LoadToken(); loadErr == nil {
		t.Error("token stored despite failed login")
	}
}

func TestRunLoginAlreadyAuthenticated(t *testing.T) {
	ts := gasTrackServer(t)
	defer ts.Close()

	tokens, buf := setupTestEnvironment(t, ts.URL)
	tokens.SaveToken("tok1")

	if err := runLogin("a@b.com", "secret123", "test"); err != nil {
		t.Fatalf("runLogin: %v", err)
	}

	if !strings.Contains(buf.String(), "Already logged in.") {
		t.Errorf("output = %q, want already-logged-in notice", buf.String())
	}
}

func TestRunLoginRequiresEmail(t *testing.T) {
	ts := gasTrackServer(t)
	defer ts.Close()

	setupTestEnvironment(t, ts.URL)
	t.Setenv("GASTRACK_EMAIL", "")
	t.Setenv("GASTRACK_PASSWORD", "")

	if err := runLogin("", "secret123", "test"); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestRunLogout(t *testing.T) {
	ts := gasTrackServer(t)
	defer ts.Close()

	tokens, buf := setupTestEnvironment(t, ts.URL)
	tokens.SaveToken("tok1")

	if err := runLogout("test"); err != nil {
		t.Fatalf("runLogout: %v", err)
	}

	if _, err := tokens.LoadToken(); err == nil {
		t.Error("token survived logout")
	}
	if !strings.Contains(buf.String(), "✓ Logged out.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunLogoutWhenAnonymous(t *testing.T) {
	ts := gasTrackServer(t)
	defer ts.Close()

	_, buf := setupTestEnvironment(t, ts.URL)

	if err := runLogout("test"); err != nil {
		t.Fatalf("runLogout: %v", err)
	}

	if !strings.Contains(buf.String(), "Not logged in.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunWhoamiRequiresAuthentication(t *testing.T) {
	ts := gasTrackServer(t)
	defer ts.Close()

	setupTestEnvironment(t, ts.URL)

	err := runWhoami("test")
	if err == nil {
		t.Fatal("expected not-authenticated error")
	}
	if err != auth.ErrNotAuthenticated {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
}

func TestRunWhoamiPrintsUser(t *testing.T) {
	ts := gasTrackServer(t)
	defer ts.Close()

	tokens, buf := setupTestEnvironment(t, ts.URL)
	tokens.SaveToken("tok1")

	if err := runWhoami("test"); err != nil {
		t.Fatalf("runWhoami: %v", err)
	}

	if !strings.Contains(buf.String(), "Alice Brand <a@b.com> (manager)") {
		t.Errorf("output = %q", buf.String())
	}
}
