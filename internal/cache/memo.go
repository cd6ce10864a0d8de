package cache

import "sync"

// Memo is a lookup cache keyed by input value, populated lazily, with no
// eviction and no TTL. Entries live as long as the owning component does;
// scope an instance per process or per session, never ambient, so nothing
// leaks across tenants.
type Memo[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

var _ Cache[int] = (*Memo[int])(nil)

// NewMemo creates an empty memoization cache.
func NewMemo[T any]() *Memo[T] {
	return &Memo[T]{items: make(map[string]T)}
}

// Get retrieves a value from the cache
func (m *Memo[T]) Get(key string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.items[key]
	return data, ok
}

// Set stores a value in the cache
func (m *Memo[T]) Set(key string, data T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = data
}

// Delete removes a key from the cache
func (m *Memo[T]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
}

// Size returns the current number of items in the cache
func (m *Memo[T]) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
