package session

import (
	"errors"
	"log"
	"strings"
	"sync"

	"planner/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// User is the single persisted session record. There is exactly one; this
// gate is a placeholder mechanism, not a security boundary.
type User struct {
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// Authenticator verifies a credential pair. Call sites only ever see this
// interface, so the single-user placeholder can be swapped out later.
type Authenticator interface {
	Authenticate(username, password string) bool
}

// Static accepts exactly one hardcoded credential pair.
type Static struct {
	Username string
	Password string
}

func (s Static) Authenticate(username, password string) bool {
	return username == s.Username && password == s.Password
}

// DefaultAuthenticator is the original placeholder pair.
func DefaultAuthenticator() Authenticator {
	return Static{Username: "admin", Password: "admin"}
}

// Gate owns the session record: init from the store, mutate on
// login/logout, no teardown. Repositories are only exposed to callers that
// pass RequireAPI.
type Gate struct {
	mu     sync.RWMutex
	store  *storage.Store
	auth   Authenticator
	logger *log.Logger
	user   User
}

func NewGate(store *storage.Store, auth Authenticator, logger *log.Logger) *Gate {
	if auth == nil {
		auth = DefaultAuthenticator()
	}
	if logger == nil {
		logger = log.Default()
	}
	g := &Gate{store: store, auth: auth, logger: logger}
	var loaded User
	if store.Load(storage.KeyUser, &loaded) {
		g.user = loaded
	}
	return g
}

// Login checks the credential pair and persists the logged-in record.
// Credential mismatch is the one failure this system reports to the user.
func (g *Gate) Login(username, password string) error {
	username = strings.TrimSpace(username)
	if !g.auth.Authenticate(username, password) {
		return ErrInvalidCredentials
	}

	g.mu.Lock()
	g.user = User{Username: username, IsLoggedIn: true}
	g.store.Save(storage.KeyUser, g.user)
	g.mu.Unlock()

	g.logger.Printf("[session] %s logged in", username)
	return nil
}

// Logout persists a cleared record. Always succeeds.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.user = User{}
	g.store.Save(storage.KeyUser, g.user)
	g.mu.Unlock()
}

func (g *Gate) Current() User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

func (g *Gate) LoggedIn() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user.IsLoggedIn
}
