// Package keymutex provides named mutual exclusion sections for
// check-then-write sequences that contend on a single key, such as one
// room id or one event id. It serializes writers per key within a
// single process; the database transaction around the write still
// provides atomicity of the write itself.
package keymutex

import "sync"

type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking until it is free.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. The entry is dropped once no
// goroutine holds or waits on it, so the map stays bounded by the
// number of concurrently contended keys.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
