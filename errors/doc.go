// Package errors provides structured error types for the js-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: property path, Go/JS type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindInvalidConversion).
//		Path("config", "port").
//		GoType("float64").
//		JSType("String").
//		Detail("cannot read string as number").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.EmbeddedNUL(errors.PhaseString, s)
//	err := errors.ContextMismatch(errors.PhaseProperty, "answer")
//
// Script exceptions are not represented here; they surface as
// *runtime.Exception so the thrown value stays inspectable.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
