package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/cli/auth"
	"github.com/gastrack-dev/gastrack/internal/cli/serverselect"
	"github.com/gastrack-dev/gastrack/internal/logger"
	"github.com/gastrack-dev/gastrack/internal/nav"
	"github.com/gastrack-dev/gastrack/internal/session"
)

// tokenStore is the credential storage used by all commands. Tests swap in
// an in-memory store.
var tokenStore auth.TokenStore = auth.Default

// output is where command results are printed. Tests capture it.
var output io.Writer = os.Stdout

// app bundles the per-invocation wiring: the configured API client, the one
// session instance and the navigator it redirects through.
type app struct {
	client    *api.Client
	session   *session.Session
	navigator *nav.Recorder
}

// newApp resolves the API server and constructs the client/session pair.
// The bearer-attach hook is installed before the session so the 401 hook
// runs after it in the response phase.
func newApp(serverAlias string) (*app, error) {
	server, err := serverselect.ResolveServerOrDefault(serverAlias)
	if err != nil {
		return nil, err
	}

	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit gastrack.json and add a valid API URL")
	}

	client := api.New(server.URL)
	client.UseBearerAuth(tokenStore)

	navigator := nav.NewRecorder()
	sess := session.New(client, tokenStore, navigator, logger.GetLogger())

	return &app{
		client:    client,
		session:   sess,
		navigator: navigator,
	}, nil
}

// requireAuthenticated resolves the initial session state and applies the
// private guard. Anonymous invocations are redirected to /login, which for
// a terminal client means an error pointing at the login command.
func (a *app) requireAuthenticated() error {
	a.session.Start()
	if !a.session.Guard(session.PrivateGuard) {
		return auth.ErrNotAuthenticated
	}
	return nil
}
