// Package jsc implements engine.API over the system JavaScriptCore library
// through cgo.
//
// The backend is compiled on darwin, where it links the JavaScriptCore
// framework, and elsewhere with the jsc build tag, where it resolves
// javascriptcoregtk-4.1 through pkg-config:
//
//	go build -tags jsc ./...
//
// Without cgo or outside those builds the package is empty and the engine
// registry simply has no "jsc" entry.
//
// Every class is created with the same C trampolines for calls and
// finalization. The private word of each object holds a runtime/cgo handle
// to a record of the class definition and the caller's private value, so a
// call can be routed back to the Go definition that made the object.
package jsc
