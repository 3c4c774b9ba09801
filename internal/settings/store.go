package settings

import "sync"

// Store is the shared settings object. It is constructed once and passed
// to every consumer; subscribers are notified after each update. There
// is deliberately no package-level instance.
//
// Store is safe for concurrent use. Subscribers are invoked synchronously
// on the updating goroutine, outside the store lock.
type Store struct {
	mu      sync.Mutex
	current Settings
	subs    []func(Settings)
}

// NewStore creates a store holding the given settings.
func NewStore(initial Settings) *Store {
	return &Store{current: initial}
}

// Get returns a snapshot of the current settings.
func (st *Store) Get() Settings {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

// Update applies the mutator to the current settings and notifies all
// subscribers with the result.
func (st *Store) Update(mutate func(*Settings)) Settings {
	st.mu.Lock()
	mutate(&st.current)
	snap := st.current
	subs := make([]func(Settings), len(st.subs))
	copy(subs, st.subs)
	st.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
	return snap
}

// Subscribe registers a callback invoked after every update.
// Subscriptions cannot be removed; subscribers live as long as the store.
func (st *Store) Subscribe(fn func(Settings)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.subs = append(st.subs, fn)
}
