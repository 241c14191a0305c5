package systems

import "sync"

// SyncList is an append-only list shared by step workers. Add is safe for
// concurrent use; Append skips the lock for single-threaded callers.
type SyncList[T any] struct {
	mu    sync.Mutex
	items []T
}

// Add appends v under the lock.
func (l *SyncList[T]) Add(v T) {
	l.mu.Lock()
	l.items = append(l.items, v)
	l.mu.Unlock()
}

// Append appends v without locking.
func (l *SyncList[T]) Append(v T) {
	l.items = append(l.items, v)
}

// Items returns the collected values. The slice is reused after Reset.
func (l *SyncList[T]) Items() []T {
	return l.items
}

// Len returns the number of collected values.
func (l *SyncList[T]) Len() int {
	return len(l.items)
}

// Reset empties the list, keeping its capacity.
func (l *SyncList[T]) Reset() {
	l.items = l.items[:0]
}
