package service

import (
	"sync"

	"github.com/google/uuid"
)

// userLocks serializes mutations per user. Scheduling and cascade flows are
// multi-statement read-validate-write sequences over shared stock, so every
// top-level mutation takes its owner's lock; nested cascade helpers run
// under the caller's lock and must not re-acquire it.
type userLocks struct {
	locks sync.Map
}

func newUserLocks() *userLocks {
	return &userLocks{}
}

// Lock acquires the mutex for the given user and returns its unlock func.
func (l *userLocks) Lock(userID uuid.UUID) func() {
	v, _ := l.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
