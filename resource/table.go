package resource

import (
	"sync"
)

// A handle packs a slot number (low bits) and the slot's generation (high
// bits). Removing a value bumps the generation, so a stale handle does not
// resolve to the value stored later in the same slot until the 8-bit
// generation wraps.
const (
	slotBits = 24
	slotMask = 1<<slotBits - 1
	maxSlots = slotMask
)

func makeHandle(slot uint32, gen uint8) Handle {
	return Handle(uint32(gen)<<slotBits | slot)
}

func (h Handle) slot() uint32 { return uint32(h) & slotMask }
func (h Handle) gen() uint8   { return uint8(uint32(h) >> slotBits) }

// Table is a thread-safe handle table with free-list reuse.
type Table[V any] struct {
	entries   []entry[V]
	freeList  []uint32
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry[V any] struct {
	value V
	gen   uint8
	valid bool
}

// NewTable creates an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{
		entries:  make([]entry[V], 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

// Insert stores a value and returns its handle.
func (t *Table[V]) Insert(value V) (Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, ErrClosed
	}

	var slot uint32
	if n := len(t.freeList); n > 0 {
		slot = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
	} else {
		if len(t.entries) >= maxSlots {
			t.mu.Unlock()
			return 0, ErrFull
		}
		t.entries = append(t.entries, entry[V]{})
		slot = uint32(len(t.entries))
	}
	e := &t.entries[slot-1]
	e.value = value
	e.valid = true
	handle := makeHandle(slot, e.gen)
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: handle, Value: value})
	return handle, nil
}

// lookup returns the live entry for handle. Callers hold mu.
func (t *Table[V]) lookup(handle Handle) *entry[V] {
	slot := handle.slot()
	if slot == 0 || int(slot) > len(t.entries) {
		return nil
	}
	e := &t.entries[slot-1]
	if !e.valid || e.gen != handle.gen() {
		return nil
	}
	return e
}

// Get retrieves a value by handle.
func (t *Table[V]) Get(handle Handle) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(handle)
	if e == nil {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Remove drops a handle and returns (value, true) if it was live.
// The slot is reused under a new generation.
func (t *Table[V]) Remove(handle Handle) (V, bool) {
	var zero V

	t.mu.Lock()
	e := t.lookup(handle)
	if e == nil {
		t.mu.Unlock()
		return zero, false
	}
	value := e.value
	e.value = zero
	e.valid = false
	e.gen++
	t.freeList = append(t.freeList, handle.slot())
	t.mu.Unlock()

	t.notify(Event{Type: EventDropped, Handle: handle, Value: value})
	return value, true
}

// Len returns the number of live handles.
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.freeList)
}

// Each iterates over live handles until fn returns false.
// fn must not modify the table.
func (t *Table[V]) Each(fn func(Handle, V) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e.valid {
			if !fn(makeHandle(uint32(i+1), e.gen), e.value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[V]) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Close drops every live handle and stops accepting inserts.
// It returns the values that were still live. Closing twice returns nil.
func (t *Table[V]) Close() []V {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var live []V
	for _, e := range t.entries {
		if e.valid {
			live = append(live, e.value)
		}
	}
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	return live
}

func (t *Table[V]) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
