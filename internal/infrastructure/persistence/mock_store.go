package persistence

import "sync"

// MockStore is a configurable key-value store for testing. Behavior is
// overridden per operation via the Func fields; calls are tracked.
type MockStore struct {
	mu sync.Mutex

	GetFunc    func(key string) (string, bool, error)
	SetFunc    func(key, value string) error
	RemoveFunc func(key string) error

	GetCalls    []string
	SetCalls    []struct{ Key, Value string }
	RemoveCalls []string
}

// NewMockStore creates a mock backed by an in-memory map.
func NewMockStore() *MockStore {
	backing := NewMemoryStore()
	return &MockStore{
		GetFunc:    backing.Get,
		SetFunc:    backing.Set,
		RemoveFunc: backing.Remove,
	}
}

// Get implements port.KeyValueStore.
func (m *MockStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, key)
	m.mu.Unlock()
	return m.GetFunc(key)
}

// Set implements port.KeyValueStore.
func (m *MockStore) Set(key, value string) error {
	m.mu.Lock()
	m.SetCalls = append(m.SetCalls, struct{ Key, Value string }{key, value})
	m.mu.Unlock()
	return m.SetFunc(key, value)
}

// Remove implements port.KeyValueStore.
func (m *MockStore) Remove(key string) error {
	m.mu.Lock()
	m.RemoveCalls = append(m.RemoveCalls, key)
	m.mu.Unlock()
	return m.RemoveFunc(key)
}
