package staging

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("staging table closed")

// Handle is an opaque reference to an owned file in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Dropper is implemented by table entries that need cleanup on removal.
type Dropper interface {
	Drop()
}

// Table tracks owned entries by handle. Freed handles are reused.
type Table struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value Dropper
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

// Insert stores a value and returns its handle.
func (t *Table) Insert(value Dropper) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrClosed
	}

	e := entry{value: value, valid: true}

	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
		return handle, nil
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries)), nil
}

// Remove drops an entry, calling its Drop method, and returns it.
func (t *Table) Remove(handle Handle) (Dropper, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.Lock()
	idx := handle - 1
	if int(idx) >= len(t.entries) || !t.entries[idx].valid {
		t.mu.Unlock()
		return nil, false
	}
	value := t.entries[idx].value
	t.entries[idx] = entry{}
	t.freeList = append(t.freeList, handle)
	t.mu.Unlock()

	value.Drop()
	return value, true
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.freeList)
}

// Close drops every live entry and stops accepting inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	live := make([]Dropper, 0, len(t.entries))
	for i := range t.entries {
		if t.entries[i].valid {
			live = append(live, t.entries[i].value)
		}
	}
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	for _, v := range live {
		v.Drop()
	}
	return nil
}
