// Package jsruntime embeds JavaScript engines in Go behind one set of
// engine entry points.
//
// The library mirrors the JavaScriptCore C API: context groups, global
// contexts, engine strings, values, objects and classes with native
// callbacks. Two backends implement it, JavaScriptCore itself through cgo
// and a pure-Go backend built on goja.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	jsruntime/           Root package (documentation only)
//	├── runtime/         Safe API: handles, values, exceptions, native functions
//	├── engine/          Engine entry points, reference types and backend factory
//	│   ├── jsc/         JavaScriptCore backend (cgo)
//	│   └── gojs/        Pure-Go backend on goja
//	├── resource/        Handle table used for engine references and callbacks
//	├── errors/          Structured error types for debugging
//	├── cmd/run/         Script runner and interactive REPL
//	└── examples/basic/  Minimal embedding example
//
// # Quick Start
//
//	import (
//	    _ "github.com/wippyai/js-runtime/engine/gojs"
//	    "github.com/wippyai/js-runtime/runtime"
//	)
//
//	group, err := runtime.Open(runtime.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer group.Release()
//
//	ctx := group.CreateContext()
//	defer ctx.Release()
//
//	ctx.Register("add", func(a, b float64) float64 { return a + b })
//	v, err := ctx.Evaluate("add(1, 2)")
//
// # Backends
//
// Backends register themselves with package engine when imported. The jsc
// backend is built on macOS with cgo, or elsewhere with the jsc build tag and
// javascriptcoregtk-4.1 installed. The gojs backend is always available and
// counts references, which makes it the backend the tests run on.
//
// # Error Handling
//
// Library failures are *errors.Error values with a Phase and a Kind. Values
// thrown by script code are *runtime.Exception.
package jsruntime
