package service

import "sync"

// keyedMutex serializes the capacity-check-and-increment region per
// event id, so two concurrent bookings cannot both pass the remaining-
// seats check before either commits its increment.  Entries are kept
// for the lifetime of the process; the key space is the set of live
// event ids, which stays small.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
