// Package session owns the authentication state of the client: the current
// user profile, the loading flag and the last operation error. Exactly one
// Session exists per process; it is constructed explicitly and handed to the
// code that needs it. Pages and guards observe state through snapshots and
// subscriptions, never by mutating it directly.
package session

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/cli/auth"
	"github.com/gastrack-dev/gastrack/internal/models"
	"github.com/gastrack-dev/gastrack/internal/nav"
)

// State is the tri-state guards decide on. Error is not a separate state
// here: a failed operation leaves the user where it was and records a
// message in the snapshot.
type State int

const (
	Anonymous State = iota
	Loading
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of session state.
type Snapshot struct {
	User    *models.User
	Loading bool
	Err     string
}

// State derives the tri-state from the snapshot.
func (s Snapshot) State() State {
	if s.Loading {
		return Loading
	}
	if s.User != nil {
		return Authenticated
	}
	return Anonymous
}

// Session holds authentication state and exposes the login/logout/register
// lifecycle. All mutation goes through its operations.
type Session struct {
	client    *api.Client
	tokens    auth.TokenStore
	navigator nav.Navigator
	log       zerolog.Logger

	mu      sync.Mutex
	user    *models.User
	loading bool
	errMsg  string
	subs    []chan Snapshot
}

// New wires a session to the API client. It installs the global 401 hook on
// the client so that any unauthorized response clears the stored token,
// resets this session and redirects to /login before the originating caller
// sees the failure.
func New(client *api.Client, tokens auth.TokenStore, navigator nav.Navigator, log zerolog.Logger) *Session {
	s := &Session{
		client:    client,
		tokens:    tokens,
		navigator: navigator,
		log:       log,
	}
	client.UseUnauthorizedLogout(tokens, navigator, s.reset)
	return s
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{User: s.user, Loading: s.loading, Err: s.errMsg}
}

// State returns the current tri-state.
func (s *Session) State() State {
	return s.Snapshot().State()
}

// Subscribe returns a channel receiving a snapshot after every state change.
// Slow subscribers miss intermediate snapshots rather than blocking the
// session.
func (s *Session) Subscribe() <-chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Snapshot, 16)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Session) set(user *models.User, loading bool, errMsg string) {
	s.mu.Lock()
	s.user = user
	s.loading = loading
	s.errMsg = errMsg
	snap := Snapshot{User: user, Loading: loading, Err: errMsg}
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// reset drops the in-memory user. Invoked by the client's 401 hook; the
// token and navigation are handled by the hook itself.
func (s *Session) reset() {
	s.set(nil, false, "")
}

// Start resolves the initial state. With no stored token it settles on
// anonymous without touching the network; with one it enters loading and
// attempts the current-user fetch, clearing the token and falling back to
// anonymous if the credential turns out to be stale. It always leaves
// loading.
func (s *Session) Start() {
	if _, err := s.tokens.LoadToken(); err != nil {
		s.set(nil, false, "")
		return
	}

	s.set(nil, true, "")

	user, err := s.client.CurrentUser()
	if err != nil {
		s.log.Debug().Err(err).Msg("stored token rejected, falling back to anonymous")
		_ = s.tokens.DeleteToken()
		s.set(nil, false, "")
		return
	}

	s.set(user, false, "")
}

// Login exchanges credentials for a token, stores it, fetches the profile
// and navigates to the dashboard. On failure the session records the server
// detail (or a generic fallback) and the error is returned so the calling
// page can react as well.
func (s *Session) Login(email, password string) error {
	s.set(s.currentUser(), true, "")

	token, err := s.client.Login(email, password)
	if err != nil {
		s.set(s.currentUser(), false, api.Detail(err, "Login failed"))
		return err
	}

	if err := s.tokens.SaveToken(token.AccessToken); err != nil {
		s.set(s.currentUser(), false, "Login failed")
		return err
	}

	// The fetch must follow the store unconditionally so a stored token is
	// never left unverified.
	user, err := s.client.CurrentUser()
	if err != nil {
		s.set(s.currentUser(), false, api.Detail(err, "Login failed"))
		return err
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("logged in")
	s.set(user, false, "")
	s.navigator.Navigate(nav.RouteDashboard)
	return nil
}

// Logout clears the credential and the user and navigates to the login
// route. Calling it while already anonymous is a no-op.
func (s *Session) Logout() {
	_, tokenErr := s.tokens.LoadToken()
	if s.currentUser() == nil && tokenErr != nil {
		return
	}

	_ = s.tokens.DeleteToken()
	s.set(nil, false, "")
	s.navigator.Navigate(nav.RouteLogin)
}

// Register submits a registration and navigates to /login on success. The
// new user is not auto-authenticated and no token is stored.
func (s *Session) Register(req api.RegisterRequest) error {
	s.set(s.currentUser(), true, "")

	if _, err := s.client.Register(req); err != nil {
		s.set(s.currentUser(), false, api.Detail(err, "Registration failed"))
		return err
	}

	s.set(s.currentUser(), false, "")
	s.navigator.Navigate(nav.RouteLogin)
	return nil
}

func (s *Session) currentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}
