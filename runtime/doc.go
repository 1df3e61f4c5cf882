// Package runtime embeds a JavaScript engine through the entry points in
// package engine.
//
// # Quick Start
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
//	v, err := ctx.Evaluate("1 + 2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(v) // 3
//
// # Ownership
//
// Group, Context and String wrap engine resources with explicit reference
// counts. Each value of these types owns one reference: Clone takes another,
// Release gives it back, and a second Release is a harmless no-op. Using a
// resource after Release panics.
//
// Values and Objects are owned by the engine's garbage collector and are
// only valid while their Context is alive. Each one remembers its Context;
// passing it to another context fails with errors.KindContextMismatch.
//
// # Values
//
// A Value's type is read once, when it is made. Typed conversions check it
// and never coerce:
//
//	Type        Conversion
//	─────────────────────────────
//	String      ToString, ToEngineString
//	Number      ToFloat64
//	Boolean     ToBool
//	Object      ToObject
//
// On mismatch the error has kind errors.KindInvalidConversion and
// ConversionType recovers the actual type. Value.String renders any value
// for humans and never fails.
//
// # Exceptions
//
// A value thrown by script code is returned as *Exception. Anything can be
// thrown, so Message, Stack and Name return errors instead of assuming an
// Error object.
//
// # Native Functions
//
// AddFunction installs a Func on the global object:
//
//	ctx.AddFunction("echo", func(ctx *runtime.Context, this *runtime.Object, args []runtime.Value) (runtime.Value, error) {
//	    if len(args) == 0 {
//	        return ctx.Undefined(), nil
//	    }
//	    return args[0], nil
//	})
//
// A Func may close over any state. Returning an error throws it into the
// script; a panic is recovered, logged and thrown as well. Register binds
// plain Go functions by reflection:
//
//	ctx.Register("add", func(a, b float64) float64 { return a + b })
//
// HostRegistry groups functions by namespace and installs them into any
// number of contexts.
//
// # Thread Safety
//
// Nothing here adds locking around the engine. A Context and everything
// made from it must be used from one goroutine at a time. The function
// registry is safe for concurrent use.
package runtime
