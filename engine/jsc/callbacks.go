//go:build cgo && (darwin || jsc)

package jsc

/*
#include "jsc.h"
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
)

// CGO exports for the class trampolines

//export goCallAsFunction
func goCallAsFunction(ctx, function, this uintptr, argc C.size_t, argv *C.uintptr_t, exception *C.uintptr_t) (ret uintptr) {
	c := engine.ContextRef(ctx)
	defer func() {
		if r := recover(); r != nil {
			engine.Logger().Error("jsc: panic in native call", zap.Any("panic", r))
			throwString(c, exception, fmt.Sprint("native call panicked: ", r))
			ret = uintptr(unsafe.Pointer(C.JSValueMakeUndefined(cContext(c))))
		}
	}()

	rec := lookup(uintptr(C.jsr_object_get_private(cObject(engine.ObjectRef(function)))))
	if rec == nil || rec.def.CallAsFunction == nil {
		return uintptr(unsafe.Pointer(C.JSValueMakeUndefined(cContext(c))))
	}

	var args []engine.ValueRef
	if argc > 0 {
		raw := unsafe.Slice(argv, int(argc))
		args = make([]engine.ValueRef, len(raw))
		for i, a := range raw {
			args[i] = engine.ValueRef(a)
		}
	}

	var exc engine.ValueRef
	v := rec.def.CallAsFunction(c, engine.ObjectRef(function), engine.ObjectRef(this), args, &exc)
	if !exc.IsNull() && exception != nil {
		*exception = C.uintptr_t(exc)
	}
	if v.IsNull() {
		return uintptr(unsafe.Pointer(C.JSValueMakeUndefined(cContext(c))))
	}
	return uintptr(v)
}

//export goFinalize
func goFinalize(object uintptr) {
	h := uintptr(C.jsr_object_get_private(cObject(engine.ObjectRef(object))))
	rec := lookup(h)
	if rec == nil {
		return
	}
	defer cgo.Handle(h).Delete()
	defer func() {
		if r := recover(); r != nil {
			engine.Logger().Error("jsc: panic in finalizer", zap.Any("panic", r))
		}
	}()
	if rec.def.Finalize != nil {
		rec.def.Finalize(engine.ObjectRef(object))
	}
}

func throwString(ctx engine.ContextRef, exception *C.uintptr_t, msg string) {
	if exception == nil {
		return
	}
	cs := C.CString(msg)
	defer C.free(unsafe.Pointer(cs))
	s := C.JSStringCreateWithUTF8CString(cs)
	defer C.JSStringRelease(s)
	*exception = C.uintptr_t(uintptr(unsafe.Pointer(C.JSValueMakeString(cContext(ctx), s))))
}
