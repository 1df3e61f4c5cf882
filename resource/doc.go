// Package resource provides reference-counted handle tables.
//
// A handle is a small integer that stands in for a Go value wherever the
// value itself cannot travel: through an engine's opaque private-data word,
// or as the identity of an engine object in the pure-Go backend.
//
// # Handle Table
//
// The UnifiedTable maps integer handles to Go values:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle with one reference
//	handle := table.Insert(typeID, myValue)
//
//	// Retrieve value by handle
//	value, ok := table.Get(handle)
//
//	// Share and give back references
//	table.Retain(handle)
//	table.Release(handle)          // still alive
//	value, ok = table.Release(handle) // last reference, value returned
//
// Remove drops an entry regardless of its count.
//
// # Type Safety
//
// Each resource kind gets a type ID; Typed gives a generic view over one ID:
//
//	callbacks := resource.NewTyped[*callback](nil, 1)
//	h := callbacks.Insert(cb)
//	cb, ok := callbacks.Get(h)
//
// Several views may share one table, in which case handles are unique
// across kinds.
//
// # Observers
//
// Register observers to track resource lifecycle events:
//
//	table.Subscribe(observer)
//
// EventCreated, EventRetained, EventReleased and EventDropped carry the
// handle, type ID and the reference count after the operation.
//
// # Memory Management
//
// Values implementing Dropper get Drop called when their entry is removed.
// Handles are recycled after removal, so a stale handle may later name a
// different value.
package resource
