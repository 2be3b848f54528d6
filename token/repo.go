package token

// Repo persists the raw credential token returned by the backend's login
// endpoint so a later process can restore the session without logging in.
type Repo interface {
	// Load returns the cached token, or ErrNotFound when nothing is cached
	Load() (string, error)

	// Save replaces the cached token
	Save(raw string) error

	// Delete removes the cached token. Deleting an empty cache is not an error.
	Delete() error
}
