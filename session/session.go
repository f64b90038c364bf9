package session

import "sync"

// Session is the in-memory representation of the current user. It is derived
// from the durable store at boot and updated on every login/logout
// transition; the two must never disagree after a transition completes.
type Session struct {
	mu       sync.Mutex
	username string
	loggedIn bool
}

// FromStore boots a Session from the durable store. A stored projection
// means logged-in; anything else (absent, unreadable) means logged-out.
func FromStore(store Store) (*Session, error) {
	s := &Session{}
	u, err := store.Load()
	if err != nil {
		return s, err
	}
	if u != nil {
		s.username = u.Username
		s.loggedIn = true
	}
	return s, nil
}

// Username returns the current user's name, empty when logged out.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// LoggedIn reports whether a user is currently authenticated.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// OnLoginSuccess records a successful authentication. It does not touch the
// durable store; the auth service already persisted the projection.
func (s *Session) OnLoginSuccess(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.loggedIn = true
}

// OnLogout unconditionally resets the in-memory state. The durable store is
// cleared by the auth service's logout, which never blocks on the network.
func (s *Session) OnLogout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.loggedIn = false
}
