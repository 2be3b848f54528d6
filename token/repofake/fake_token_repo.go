package repofake

import (
	"sync"

	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/jrsteele09/project-sync-web/token"
)

// FakeTokenRepo is an in-memory token.Repo for tests and for runs without a cache file
type FakeTokenRepo struct {
	mu      sync.Mutex
	raw     string
	deleted int
}

var _ token.Repo = (*FakeTokenRepo)(nil)

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{}
}

func (r *FakeTokenRepo) Load() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raw == "" {
		return "", apperrors.ErrNotFound
	}
	return r.raw, nil
}

func (r *FakeTokenRepo) Save(raw string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = raw
	return nil
}

func (r *FakeTokenRepo) Delete() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = ""
	r.deleted++
	return nil
}

// Deletes returns how many times Delete was called
func (r *FakeTokenRepo) Deletes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleted
}
