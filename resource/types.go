package resource

// Handle is an opaque reference to a resource in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventRetained
	EventReleased
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventRetained:
		return "retained"
	case EventReleased:
		return "released"
	case EventDropped:
		return "dropped"
	}
	return "unknown"
}

// Event represents a resource lifecycle event.
// RefCount is the count after the operation.
type Event struct {
	Value    any
	Handle   Handle
	TypeID   uint32
	RefCount uint32
	Type     EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Backend provides the underlying storage mechanism for resources.
type Backend interface {
	// Create stores a value with a reference count of one and returns a handle.
	Create(typeID uint32, value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Retain increments the reference count. Returns the new count.
	Retain(handle Handle) (uint32, bool)

	// Release decrements the reference count. When the count reaches zero the
	// entry is removed and (value, 0, true) is returned.
	Release(handle Handle) (any, uint32, bool)

	// Drop removes a resource regardless of its reference count.
	Drop(handle Handle) (any, bool)

	// RefCount returns the current reference count.
	RefCount(handle Handle) (uint32, bool)

	// Close releases all resources held by the backend.
	Close() error
}

// Table manages resources with type information and observer support.
type Table interface {
	// Insert adds a value and returns its handle.
	Insert(typeID uint32, value any) Handle

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// GetTyped retrieves a value only if it matches the expected type.
	GetTyped(handle Handle, typeID uint32) (any, bool)

	// Retain adds a reference to a live resource.
	Retain(handle Handle) bool

	// Release drops a reference; the resource is removed with its last one.
	// Returns (value, true) only when the resource was removed.
	Release(handle Handle) (any, bool)

	// Remove drops a resource regardless of outstanding references.
	Remove(handle Handle) (any, bool)

	// RefCount returns the reference count of a live resource.
	RefCount(handle Handle) (uint32, bool)

	// Subscribe adds an observer for lifecycle events.
	Subscribe(Observer)

	// Unsubscribe removes an observer.
	Unsubscribe(Observer)

	// Len returns the number of active resources.
	Len() int

	// Clear drops all resources.
	Clear()

	// Close releases all resources and stops accepting operations.
	Close() error
}

// TypedTable provides type-safe access to resources of a specific type.
type TypedTable[T any] interface {
	// Insert adds a value and returns its handle.
	Insert(value T) Handle

	// Get retrieves a value by handle.
	Get(handle Handle) (T, bool)

	// Retain adds a reference to a live resource.
	Retain(handle Handle) bool

	// Release drops a reference and returns (value, true) when it was the last.
	Release(handle Handle) (T, bool)

	// Remove drops a resource and returns (value, true) if found.
	Remove(handle Handle) (T, bool)

	// Len returns the number of active resources.
	Len() int

	// Each iterates over all active resources.
	Each(func(Handle, T) bool)
}

// Dropper is optionally implemented by resource values that need cleanup.
type Dropper interface {
	Drop()
}
