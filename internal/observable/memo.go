package observable

import "sync"

// Memo is a grow-only memoization map: the factory for a key runs exactly
// once, and the stored value is returned for every later Get of that key.
// Keys compare by ==, which for pointer keys is identity. Entries are never
// evicted.
type Memo[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]V
}

// NewMemo creates an empty memo map.
func NewMemo[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{items: make(map[K]V)}
}

// Get returns the stored value for key, invoking factory to create it on
// first access. The factory runs under the map lock, so concurrent Gets of
// the same key still invoke it only once.
func (m *Memo[K, V]) Get(key K, factory func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.items[key]; ok {
		return v
	}
	v := factory()
	m.items[key] = v
	return v
}

// Len returns the number of memoized entries.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
