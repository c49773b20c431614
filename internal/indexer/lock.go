package indexer

import "sync"

// ProjectLocks provides non-blocking advisory locks keyed by project name,
// enforcing the single-writer rule for index runs.
type ProjectLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{held: make(map[string]struct{})}
}

// TryAcquire attempts to acquire the lock for name without blocking.
// Returns true if the lock was successfully acquired, false otherwise.
func (l *ProjectLocks) TryAcquire(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.held[name]; taken {
		return false
	}
	l.held[name] = struct{}{}
	return true
}

// Release releases the lock for name.
// Must only be called by the caller that successfully acquired it.
func (l *ProjectLocks) Release(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, name)
}
