package session

import (
	"fmt"
	"sync"

	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/jrsteele09/project-sync-web/users"
)

// Snapshot is an immutable copy of the session at one instant.
type Snapshot struct {
	User     *users.User `json:"user"`
	Role     users.Role  `json:"role"`
	LoggedIn bool        `json:"isLoggedIn"`
	Loading  bool        `json:"loading"`
}

// Store holds the single session of this client process. Readers use
// Snapshot; mutation goes exclusively through the Writer returned by New.
type Store struct {
	mu       sync.RWMutex
	user     *users.User
	role     users.Role
	loggedIn bool
	loading  bool
	inFlight bool
}

// Writer is the mutation capability for a Store. Only the auth gateway holds one.
type Writer struct {
	store *Store
}

// New creates an empty session in the loading state, as it is at application start.
func New() (*Store, *Writer) {
	s := &Store{loading: true}
	return s, &Writer{store: s}
}

// Snapshot returns a copy of the current session state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Role:     s.role,
		LoggedIn: s.loggedIn,
		Loading:  s.loading,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Begin claims the in-flight slot and raises the loading flag. A second
// Begin before End fails with ErrOperationInFlight and changes nothing.
func (w *Writer) Begin() error {
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return apperrors.ErrOperationInFlight
	}
	s.inFlight = true
	s.loading = true
	return nil
}

// End releases the in-flight slot and clears the loading flag.
func (w *Writer) End() {
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	s.loading = false
}

// Establish records a logged in user. The role must be known and the user
// must identify someone, otherwise the session is left untouched.
func (w *Writer) Establish(user *users.User, role users.Role) error {
	if !role.Known() {
		return fmt.Errorf("[session.Establish] %w: %s", apperrors.ErrUnknownRole, role)
	}
	if !user.Valid() {
		return fmt.Errorf("[session.Establish] %w: empty user record", apperrors.ErrInvalidResponse)
	}

	u := *user
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &u
	s.role = role
	s.loggedIn = true
	return nil
}

// Reset returns the session to the logged out state. The loading flag and
// in-flight slot are left to End.
func (w *Writer) Reset() {
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.role = users.RoleUnknown
	s.loggedIn = false
}

// Snapshot lets the writer read back what it wrote
func (w *Writer) Snapshot() Snapshot {
	return w.store.Snapshot()
}
