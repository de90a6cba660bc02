package resource

import "sync"

// Handle indexes a Table. Zero is never a valid handle.
type Handle uint32

type tableEntry[V any] struct {
	value V
	valid bool
}

// Table maps small integer handles to Go values. Freed handles are reused.
// It is safe for concurrent use, which lets native callbacks running on
// foreign threads look up their Go counterpart.
type Table[V any] struct {
	mu       sync.RWMutex
	entries  []tableEntry[V]
	freeList []Handle
	live     int
}

// NewTable returns an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{
		entries:  make([]tableEntry[V], 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

// Insert stores v and returns its handle.
func (t *Table[V]) Insert(v V) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.live++
	e := tableEntry[V]{value: v, valid: true}
	if n := len(t.freeList); n > 0 {
		h := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[h-1] = e
		return h
	}
	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// Get returns the value stored under h.
func (t *Table[V]) Get(h Handle) (V, bool) {
	var zero V
	if h == 0 {
		return zero, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(h) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return zero, false
	}
	return t.entries[idx].value, true
}

// Remove deletes h and returns the value it held.
func (t *Table[V]) Remove(h Handle) (V, bool) {
	var zero V
	if h == 0 {
		return zero, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(h) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return zero, false
	}
	v := t.entries[idx].value
	t.entries[idx] = tableEntry[V]{}
	t.freeList = append(t.freeList, h)
	t.live--
	return v, true
}

// Len returns the number of live entries.
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Each calls fn for every live entry in handle order until fn returns false.
// fn must not modify the table.
func (t *Table[V]) Each(fn func(Handle, V) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i, e := range t.entries {
		if e.valid && !fn(Handle(i+1), e.value) {
			return
		}
	}
}

// Drain removes every entry and returns the values in handle order.
func (t *Table[V]) Drain() []V {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []V
	for _, e := range t.entries {
		if e.valid {
			out = append(out, e.value)
		}
	}
	t.entries = t.entries[:0]
	t.freeList = t.freeList[:0]
	t.live = 0
	return out
}
