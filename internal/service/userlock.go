package service

import "sync"

// UserLocks serializes award-mutating flows per user. The badge and title
// award paths are check-then-append over a store with no compare-and-swap;
// without per-user serialization two uploads finishing together could
// double-award a badge or lose a title write.
//
// Locks are created on first use and never released; the set of active
// users in one process stays small enough that this does not matter.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUserLocks creates an empty lock set.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for userID and returns the matching unlock.
//
//	defer locks.Lock(userID)()
func (l *UserLocks) Lock(userID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
