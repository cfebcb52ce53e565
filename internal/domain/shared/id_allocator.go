package shared

import "sync"

// IDAllocator hands out monotonically increasing integer identifiers.
// One allocator is owned by each world session and passed to whatever needs to mint ids,
// so two sessions in the same process never share a counter.
type IDAllocator struct {
	mu   sync.Mutex
	next int
}

// NewIDAllocator creates an allocator whose first id is start
func NewIDAllocator(start int) *IDAllocator {
	return &IDAllocator{next: start}
}

// Next returns a fresh identifier
func (a *IDAllocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.next
	a.next++
	return id
}

// Reserve marks id as used so later calls to Next never return it.
// Used when restoring persisted definitions.
func (a *IDAllocator) Reserve(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id >= a.next {
		a.next = id + 1
	}
}

// Peek returns the id the next call to Next would return
func (a *IDAllocator) Peek() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}
