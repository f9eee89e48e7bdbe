package secretstore

import "sync"

// MemoryKeyring is an in-process Keyring used by tests and by callers that
// cannot reach an OS credential store
type MemoryKeyring struct {
	mu    sync.Mutex
	items map[string]map[string]string

	// Err, when set, is returned by every operation
	Err error
}

// NewMemoryKeyring creates an empty MemoryKeyring
func NewMemoryKeyring() *MemoryKeyring {
	return &MemoryKeyring{items: make(map[string]map[string]string)}
}

// Get returns the stored password or ErrNotFound
func (m *MemoryKeyring) Get(service, user string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if value, ok := m.items[service][user]; ok {
		return value, nil
	}
	return "", ErrNotFound
}

// Set stores password
func (m *MemoryKeyring) Set(service, user, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if m.items == nil {
		m.items = make(map[string]map[string]string)
	}
	if m.items[service] == nil {
		m.items[service] = make(map[string]string)
	}
	m.items[service][user] = password
	return nil
}

// Delete removes the item or returns ErrNotFound
func (m *MemoryKeyring) Delete(service, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.items[service][user]; !ok {
		return ErrNotFound
	}
	delete(m.items[service], user)
	return nil
}

// Ensure MemoryKeyring implements Keyring
var _ Keyring = (*MemoryKeyring)(nil)
