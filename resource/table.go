package resource

import (
	"sync"
)

// UnifiedTable implements the Table interface using a Backend for storage.
type UnifiedTable struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates a new unified table with a LocalBackend.
func NewTable() *UnifiedTable {
	return &UnifiedTable{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value and returns its handle.
func (t *UnifiedTable) Insert(typeID uint32, value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	handle, err := t.backend.Create(typeID, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:     EventCreated,
		Handle:   handle,
		TypeID:   typeID,
		Value:    value,
		RefCount: 1,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *UnifiedTable) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *UnifiedTable) GetTyped(handle Handle, typeID uint32) (any, bool) {
	actualTypeID, ok := t.backend.TypeID(handle)
	if !ok || actualTypeID != typeID {
		return nil, false
	}
	return t.backend.Get(handle)
}

// Retain adds a reference to a live resource.
func (t *UnifiedTable) Retain(handle Handle) bool {
	count, ok := t.backend.Retain(handle)
	if !ok {
		return false
	}
	typeID, _ := t.backend.TypeID(handle)
	t.notify(Event{
		Type:     EventRetained,
		Handle:   handle,
		TypeID:   typeID,
		RefCount: count,
	})
	return true
}

// Release drops one reference. The value is returned, and its Drop method
// called, only when the last reference goes away.
func (t *UnifiedTable) Release(handle Handle) (any, bool) {
	typeID, _ := t.backend.TypeID(handle)
	value, count, ok := t.backend.Release(handle)
	if !ok {
		return nil, false
	}

	t.notify(Event{
		Type:     EventReleased,
		Handle:   handle,
		TypeID:   typeID,
		RefCount: count,
	})
	if count > 0 {
		return nil, false
	}

	t.dropped(handle, typeID, value)
	return value, true
}

// Remove drops a resource and returns (value, true) if found.
func (t *UnifiedTable) Remove(handle Handle) (any, bool) {
	typeID, _ := t.backend.TypeID(handle)
	value, ok := t.backend.Drop(handle)
	if !ok {
		return nil, false
	}

	t.dropped(handle, typeID, value)
	return value, true
}

func (t *UnifiedTable) dropped(handle Handle, typeID uint32, value any) {
	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})
}

// RefCount returns the reference count of a live resource.
func (t *UnifiedTable) RefCount(handle Handle) (uint32, bool) {
	return t.backend.RefCount(handle)
}

// Subscribe adds an observer for lifecycle events.
func (t *UnifiedTable) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *UnifiedTable) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of active resources.
func (t *UnifiedTable) Len() int {
	return t.backend.Len()
}

// Clear drops all resources.
func (t *UnifiedTable) Clear() {
	// Collect handles first to avoid holding lock during Remove
	var handles []Handle
	t.backend.Each(func(h Handle, typeID uint32, value any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close releases all resources and stops accepting operations.
func (t *UnifiedTable) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.Close()
}

func (t *UnifiedTable) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

// Typed is a TypedTable view over a UnifiedTable for one type ID.
// Several views with distinct type IDs may share a table.
type Typed[T any] struct {
	table  *UnifiedTable
	typeID uint32
}

// NewTyped creates a typed view. A nil table gets a fresh one.
func NewTyped[T any](table *UnifiedTable, typeID uint32) *Typed[T] {
	if table == nil {
		table = NewTable()
	}
	return &Typed[T]{table: table, typeID: typeID}
}

// Table returns the shared table.
func (t *Typed[T]) Table() *UnifiedTable {
	return t.table
}

// Insert adds a value and returns its handle.
func (t *Typed[T]) Insert(value T) Handle {
	return t.table.Insert(t.typeID, value)
}

// Get retrieves a value of this view's type.
func (t *Typed[T]) Get(handle Handle) (T, bool) {
	v, ok := t.table.GetTyped(handle, t.typeID)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Retain adds a reference if the handle holds this view's type.
func (t *Typed[T]) Retain(handle Handle) bool {
	if _, ok := t.table.GetTyped(handle, t.typeID); !ok {
		return false
	}
	return t.table.Retain(handle)
}

// Release drops a reference and returns (value, true) when it was the last.
func (t *Typed[T]) Release(handle Handle) (T, bool) {
	var zero T
	if _, ok := t.table.GetTyped(handle, t.typeID); !ok {
		return zero, false
	}
	v, ok := t.table.Release(handle)
	if !ok {
		return zero, false
	}
	typed, _ := v.(T)
	return typed, true
}

// Remove drops a resource of this view's type.
func (t *Typed[T]) Remove(handle Handle) (T, bool) {
	var zero T
	if _, ok := t.table.GetTyped(handle, t.typeID); !ok {
		return zero, false
	}
	v, ok := t.table.Remove(handle)
	if !ok {
		return zero, false
	}
	typed, _ := v.(T)
	return typed, true
}

// RefCount returns the reference count of a resource of this view's type.
func (t *Typed[T]) RefCount(handle Handle) (uint32, bool) {
	if _, ok := t.table.GetTyped(handle, t.typeID); !ok {
		return 0, false
	}
	return t.table.RefCount(handle)
}

// Len returns the number of live resources of this view's type.
func (t *Typed[T]) Len() int {
	n := 0
	t.table.backend.Each(func(_ Handle, typeID uint32, _ any) bool {
		if typeID == t.typeID {
			n++
		}
		return true
	})
	return n
}

// Each iterates over live resources of this view's type.
func (t *Typed[T]) Each(fn func(Handle, T) bool) {
	type item struct {
		h Handle
		v T
	}
	// Snapshot so fn may call back into the table.
	var items []item
	t.table.backend.Each(func(h Handle, typeID uint32, value any) bool {
		if typeID == t.typeID {
			if v, ok := value.(T); ok {
				items = append(items, item{h, v})
			}
		}
		return true
	})
	for _, it := range items {
		if !fn(it.h, it.v) {
			return
		}
	}
}
