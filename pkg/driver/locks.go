package driver

import "sync"

// NameLocks hands out one mutex per package name so that two archives
// resolving to the same package run one after the other.
type NameLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewNameLocks creates an empty lock table.
func NewNameLocks() *NameLocks {
	return &NameLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until name is free and returns its unlock function.
func (n *NameLocks) Lock(name string) func() {
	n.mu.Lock()
	lock, ok := n.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		n.locks[name] = lock
	}
	n.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
