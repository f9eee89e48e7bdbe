package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned when a destroyed String is used
var ErrDestroyed = errors.New("secure value already destroyed")

// String holds a sensitive string encrypted at rest in memory.
// The zero value is not usable; use NewString.
type String struct {
	mu        sync.RWMutex
	enclave   *memguard.Enclave
	empty     bool
	destroyed bool
}

// NewString seals value into a memguard enclave. memguard refuses empty
// enclaves, so the empty string is tracked with a flag instead.
func NewString(value string) *String {
	if value == "" {
		return &String{empty: true}
	}
	// NewEnclave wipes its input, so hand it a private copy
	return &String{enclave: memguard.NewEnclave([]byte(value))}
}

// IsEmpty reports whether the sealed value is the empty string
func (s *String) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.empty
}

// Use decrypts the value, passes it to fn and wipes the plaintext buffer
// when fn returns. fn must not retain the string.
func (s *String) Use(fn func(plain string) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed {
		return ErrDestroyed
	}
	if s.empty {
		return fn("")
	}

	locked, err := s.enclave.Open()
	if err != nil {
		return err
	}
	defer locked.Destroy()

	return fn(locked.String())
}

// Reveal returns a plaintext copy. Prefer Use where the caller can scope
// the plaintext.
func (s *String) Reveal() (string, error) {
	var out string
	err := s.Use(func(plain string) error {
		out = string([]byte(plain))
		return nil
	})
	return out, err
}

// Destroy marks the value unusable. Idempotent.
func (s *String) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enclave = nil
	s.destroyed = true
}

// Purge wipes all memguard key material; call once at process exit
func Purge() {
	memguard.Purge()
}
