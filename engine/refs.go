package engine

import "fmt"

// GroupRef is an engine context group, the root allocation domain.
// Reference counted: ContextGroupRetain/ContextGroupRelease.
type GroupRef uintptr

// IsNull reports whether the reference is null (zero).
func (r GroupRef) IsNull() bool { return r == 0 }

func (r GroupRef) String() string { return fmt.Sprintf("GroupRef(0x%x)", uintptr(r)) }

// ContextRef is an execution context. It is not reference counted; the
// engine hands it out borrowed, e.g. to native callbacks.
type ContextRef uintptr

// IsNull reports whether the reference is null (zero).
func (r ContextRef) IsNull() bool { return r == 0 }

func (r ContextRef) String() string { return fmt.Sprintf("ContextRef(0x%x)", uintptr(r)) }

// GlobalContextRef is a retained, top-level execution context.
// Reference counted: GlobalContextRetain/GlobalContextRelease.
type GlobalContextRef uintptr

// IsNull reports whether the reference is null (zero).
func (r GlobalContextRef) IsNull() bool { return r == 0 }

// Context returns the same context as a plain ContextRef.
func (r GlobalContextRef) Context() ContextRef { return ContextRef(r) }

func (r GlobalContextRef) String() string { return fmt.Sprintf("GlobalContextRef(0x%x)", uintptr(r)) }

// ValueRef is any script value. Values are owned by the engine's garbage
// collector and are only meaningful inside the context that produced them.
type ValueRef uintptr

// IsNull reports whether the reference is null (zero).
func (r ValueRef) IsNull() bool { return r == 0 }

// Object reinterprets the value as an object reference. Unchecked: callers
// must have seen TagObject for this value.
func (r ValueRef) Object() ObjectRef { return ObjectRef(r) }

func (r ValueRef) String() string { return fmt.Sprintf("ValueRef(0x%x)", uintptr(r)) }

// ObjectRef is a script object. Every ObjectRef is also a valid ValueRef.
type ObjectRef uintptr

// IsNull reports whether the reference is null (zero).
func (r ObjectRef) IsNull() bool { return r == 0 }

// Value returns the object as a ValueRef.
func (r ObjectRef) Value() ValueRef { return ValueRef(r) }

func (r ObjectRef) String() string { return fmt.Sprintf("ObjectRef(0x%x)", uintptr(r)) }

// StringRef is an engine-native string, distinct from Go strings.
// Reference counted: StringRetain/StringRelease.
type StringRef uintptr

// IsNull reports whether the reference is null (zero).
func (r StringRef) IsNull() bool { return r == 0 }

func (r StringRef) String() string { return fmt.Sprintf("StringRef(0x%x)", uintptr(r)) }

// ClassRef is a native class created from a ClassDefinition.
type ClassRef uintptr

// IsNull reports whether the reference is null (zero).
func (r ClassRef) IsNull() bool { return r == 0 }

func (r ClassRef) String() string { return fmt.Sprintf("ClassRef(0x%x)", uintptr(r)) }

// PropertyNameArrayRef is a snapshot of an object's enumerable property names.
type PropertyNameArrayRef uintptr

// IsNull reports whether the reference is null (zero).
func (r PropertyNameArrayRef) IsNull() bool { return r == 0 }

func (r PropertyNameArrayRef) String() string {
	return fmt.Sprintf("PropertyNameArrayRef(0x%x)", uintptr(r))
}
