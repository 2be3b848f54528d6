package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	saltLength  = 16
	nonceLength = 24
	keyLength   = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 2
)

var ErrCorruptCache = errors.New("token cache is corrupt or was written with a different secret")

// FileRepo stores the token on disk sealed with NaCl secretbox. The key is
// derived from a configured secret with Argon2id and a per-file salt.
// File layout: salt(16) | nonce(24) | box.
type FileRepo struct {
	path   string
	secret []byte
}

var _ Repo = (*FileRepo)(nil)

// NewFileRepo creates a file-backed token cache at path
func NewFileRepo(path, secret string) (*FileRepo, error) {
	if path == "" {
		return nil, errors.New("[token.NewFileRepo] path is required")
	}
	if secret == "" {
		return nil, errors.New("[token.NewFileRepo] secret is required")
	}
	return &FileRepo{path: path, secret: []byte(secret)}, nil
}

func (r *FileRepo) Load() (string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("[FileRepo.Load] %w", err)
	}
	if len(data) < saltLength+nonceLength+secretbox.Overhead {
		return "", ErrCorruptCache
	}

	var nonce [nonceLength]byte
	salt := data[:saltLength]
	copy(nonce[:], data[saltLength:saltLength+nonceLength])
	key := r.deriveKey(salt)

	plain, ok := secretbox.Open(nil, data[saltLength+nonceLength:], &nonce, key)
	if !ok {
		return "", ErrCorruptCache
	}
	return string(plain), nil
}

func (r *FileRepo) Save(raw string) error {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("[FileRepo.Save] salt: %w", err)
	}
	var nonce [nonceLength]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("[FileRepo.Save] nonce: %w", err)
	}

	out := make([]byte, 0, saltLength+nonceLength+len(raw)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, []byte(raw), &nonce, r.deriveKey(salt))

	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("[FileRepo.Save] %w", err)
	}

	// Write to a sibling temp file and rename so a crash never leaves half a token behind
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o600); err != nil {
		return fmt.Errorf("[FileRepo.Save] %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("[FileRepo.Save] %w", err)
	}
	return nil
}

func (r *FileRepo) Delete() error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("[FileRepo.Delete] %w", err)
	}
	return nil
}

func (r *FileRepo) deriveKey(salt []byte) *[keyLength]byte {
	var key [keyLength]byte
	copy(key[:], argon2.IDKey(r.secret, salt, argonTime, argonMemory, argonThreads, keyLength))
	return &key
}
