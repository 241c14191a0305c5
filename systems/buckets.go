package systems

import (
	"sort"
	"sync"
)

// IntentBuckets groups intents by destination cell. Add is safe for
// concurrent use; Append is the unsynchronized single-threaded variant.
// Reads (Destinations, Bucket) must not overlap with writers.
type IntentBuckets struct {
	mu      sync.Mutex
	cells   [][]Intent
	touched []int
	cols    int
}

// NewIntentBuckets creates buckets for a rows x cols grid.
func NewIntentBuckets(rows, cols int) *IntentBuckets {
	return &IntentBuckets{
		cells:   make([][]Intent, rows*cols),
		touched: make([]int, 0, 64),
		cols:    cols,
	}
}

// Reset empties the buckets touched since the last reset.
func (b *IntentBuckets) Reset() {
	for _, idx := range b.touched {
		b.cells[idx] = b.cells[idx][:0]
	}
	b.touched = b.touched[:0]
}

// Add inserts an intent under the lock.
func (b *IntentBuckets) Add(in Intent) {
	b.mu.Lock()
	b.Append(in)
	b.mu.Unlock()
}

// Append inserts an intent without locking.
func (b *IntentBuckets) Append(in Intent) {
	idx := in.To.Row*b.cols + in.To.Col
	if len(b.cells[idx]) == 0 {
		b.touched = append(b.touched, idx)
	}
	b.cells[idx] = append(b.cells[idx], in)
}

// Destinations returns the touched cell indices in ascending order.
func (b *IntentBuckets) Destinations() []int {
	sort.Ints(b.touched)
	return b.touched
}

// Bucket returns the intents targeting the cell at idx.
func (b *IntentBuckets) Bucket(idx int) []Intent {
	return b.cells[idx]
}

// Len returns the number of intents across all buckets.
func (b *IntentBuckets) Len() int {
	n := 0
	for _, idx := range b.touched {
		n += len(b.cells[idx])
	}
	return n
}
