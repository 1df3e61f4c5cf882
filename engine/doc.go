// Package engine defines the boundary between the runtime and a JavaScript
// engine with a JavaScriptCore-style C API.
//
// Nothing in this package evaluates scripts. It names the opaque references
// the engine hands out, the raw type tags it reports, and the API interface
// whose methods map one-to-one onto the engine's entry points. Backends
// implement API and register themselves by name:
//
//	engine/jsc   - JavaScriptCore through cgo (darwin, or -tags jsc)
//	engine/gojs  - pure Go, backed by goja; always available
//
// # References
//
// Every reference type is a uintptr with zero as the null sentinel:
//
//	GroupRef          refcounted   ContextGroupRetain / ContextGroupRelease
//	GlobalContextRef  refcounted   GlobalContextRetain / GlobalContextRelease
//	StringRef         refcounted   StringRetain / StringRelease
//	ContextRef        borrowed
//	ValueRef          garbage collected (ValueProtect pins)
//	ObjectRef         garbage collected, also a ValueRef
//	ClassRef          released with ClassRelease
//
// # Exceptions
//
// Fallible entry points take an exception *ValueRef. The engine stores the
// thrown value there and returns a null result; callers detect failure by
// checking the slot, never the return value.
//
// # Native Functions
//
// A ClassDefinition with CallAsFunction produces callable objects. The engine
// invokes the callback with the borrowed context, the function object, this,
// and the arguments; the object's private word (ObjectMake) is the only
// per-function state that reaches the callback.
//
// # Selecting a Backend
//
//	api, err := engine.New(engine.Default())
//
// Backends are linked in by importing them, usually for side effects:
//
//	import _ "github.com/wippyai/js-runtime/engine/gojs"
package engine
