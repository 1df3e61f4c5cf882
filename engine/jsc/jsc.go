//go:build cgo && (darwin || jsc)

package jsc

/*
#cgo darwin LDFLAGS: -framework JavaScriptCore
#cgo !darwin pkg-config: javascriptcoregtk-4.1
#include "jsc.h"
*/
import "C"

import (
	"runtime/cgo"
	"sync"
	"unsafe"

	"github.com/wippyai/js-runtime/engine"
)

// Name is the name the backend registers under.
const Name = "jsc"

func init() {
	engine.Register(Name, func() engine.API { return New() })
}

// record is what an object's private word points at.
type record struct {
	def  *engine.ClassDefinition
	data uintptr
}

// Backend calls straight into JavaScriptCore. It keeps only the class
// definitions, keyed by the engine's class reference.
type Backend struct {
	mu      sync.RWMutex
	classes map[engine.ClassRef]*engine.ClassDefinition
}

var _ engine.API = (*Backend)(nil)

// New creates a backend. All backends share the process's JavaScriptCore.
func New() *Backend {
	return &Backend{classes: make(map[engine.ClassRef]*engine.ClassDefinition)}
}

func (b *Backend) Name() string { return Name }

func cGroup(r engine.GroupRef) C.JSContextGroupRef {
	return C.JSContextGroupRef(unsafe.Pointer(uintptr(r)))
}

func cContext(r engine.ContextRef) C.JSContextRef {
	return C.JSContextRef(unsafe.Pointer(uintptr(r)))
}

func cGlobal(r engine.GlobalContextRef) C.JSGlobalContextRef {
	return C.JSGlobalContextRef(unsafe.Pointer(uintptr(r)))
}

func cValue(r engine.ValueRef) C.JSValueRef {
	return C.JSValueRef(unsafe.Pointer(uintptr(r)))
}

func cObject(r engine.ObjectRef) C.JSObjectRef {
	return C.JSObjectRef(unsafe.Pointer(uintptr(r)))
}

func cString(r engine.StringRef) C.JSStringRef {
	return C.JSStringRef(unsafe.Pointer(uintptr(r)))
}

func cClass(r engine.ClassRef) C.JSClassRef {
	return C.JSClassRef(unsafe.Pointer(uintptr(r)))
}

func cNames(r engine.PropertyNameArrayRef) C.JSPropertyNameArrayRef {
	return C.JSPropertyNameArrayRef(unsafe.Pointer(uintptr(r)))
}

func goValue(v C.JSValueRef) engine.ValueRef {
	return engine.ValueRef(uintptr(unsafe.Pointer(v)))
}

func goObject(o C.JSObjectRef) engine.ObjectRef {
	return engine.ObjectRef(uintptr(unsafe.Pointer(o)))
}

func goString(s C.JSStringRef) engine.StringRef {
	return engine.StringRef(uintptr(unsafe.Pointer(s)))
}

// exceptionSlot adapts the caller's slot. The engine writes into a C-typed
// local which is copied back afterwards.
type exceptionSlot struct {
	out *engine.ValueRef
	c   C.JSValueRef
}

func (s *exceptionSlot) ptr() *C.JSValueRef {
	if s.out == nil {
		return nil
	}
	return &s.c
}

func (s *exceptionSlot) done() {
	if s.out != nil && s.c != nil {
		*s.out = goValue(s.c)
	}
}

func (b *Backend) ContextGroupCreate() engine.GroupRef {
	return engine.GroupRef(uintptr(unsafe.Pointer(C.JSContextGroupCreate())))
}

func (b *Backend) ContextGroupRetain(g engine.GroupRef) engine.GroupRef {
	return engine.GroupRef(uintptr(unsafe.Pointer(C.JSContextGroupRetain(cGroup(g)))))
}

func (b *Backend) ContextGroupRelease(g engine.GroupRef) {
	C.JSContextGroupRelease(cGroup(g))
}

func (b *Backend) GlobalContextCreateInGroup(g engine.GroupRef, globalClass engine.ClassRef) engine.GlobalContextRef {
	ctx := C.JSGlobalContextCreateInGroup(cGroup(g), cClass(globalClass))
	return engine.GlobalContextRef(uintptr(unsafe.Pointer(ctx)))
}

func (b *Backend) GlobalContextRetain(ctx engine.GlobalContextRef) engine.GlobalContextRef {
	return engine.GlobalContextRef(uintptr(unsafe.Pointer(C.JSGlobalContextRetain(cGlobal(ctx)))))
}

func (b *Backend) GlobalContextRelease(ctx engine.GlobalContextRef) {
	C.JSGlobalContextRelease(cGlobal(ctx))
}

func (b *Backend) ContextGetGlobalObject(ctx engine.ContextRef) engine.ObjectRef {
	return goObject(C.JSContextGetGlobalObject(cContext(ctx)))
}

func (b *Backend) ContextGetGlobalContext(ctx engine.ContextRef) engine.GlobalContextRef {
	return engine.GlobalContextRef(uintptr(unsafe.Pointer(C.JSContextGetGlobalContext(cContext(ctx)))))
}

func (b *Backend) ContextGetGroup(ctx engine.ContextRef) engine.GroupRef {
	return engine.GroupRef(uintptr(unsafe.Pointer(C.JSContextGetGroup(cContext(ctx)))))
}

func (b *Backend) EvaluateScript(ctx engine.ContextRef, script engine.StringRef, this engine.ObjectRef, sourceURL engine.StringRef, startingLine int, exception *engine.ValueRef) engine.ValueRef {
	slot := exceptionSlot{out: exception}
	v := C.JSEvaluateScript(cContext(ctx), cString(script), cObject(this), cString(sourceURL), C.int(startingLine), slot.ptr())
	slot.done()
	return goValue(v)
}

func (b *Backend) CheckScriptSyntax(ctx engine.ContextRef, script engine.StringRef, sourceURL engine.StringRef, startingLine int, exception *engine.ValueRef) bool {
	slot := exceptionSlot{out: exception}
	ok := C.JSCheckScriptSyntax(cContext(ctx), cString(script), cString(sourceURL), C.int(startingLine), slot.ptr())
	slot.done()
	return bool(ok)
}

func (b *Backend) GarbageCollect(ctx engine.ContextRef) {
	C.JSGarbageCollect(cContext(ctx))
}

func (b *Backend) StringCreateWithUTF8CString(s string) engine.StringRef {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return goString(C.JSStringCreateWithUTF8CString(cs))
}

func (b *Backend) StringRetain(s engine.StringRef) engine.StringRef {
	return goString(C.JSStringRetain(cString(s)))
}

func (b *Backend) StringRelease(s engine.StringRef) {
	C.JSStringRelease(cString(s))
}

func (b *Backend) StringGetMaximumUTF8CStringSize(s engine.StringRef) int {
	return int(C.JSStringGetMaximumUTF8CStringSize(cString(s)))
}

func (b *Backend) StringGetUTF8CString(s engine.StringRef, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	n := C.JSStringGetUTF8CString(cString(s), (*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)))
	return int(n)
}

func (b *Backend) StringIsEqual(a, c engine.StringRef) bool {
	return bool(C.JSStringIsEqual(cString(a), cString(c)))
}

func (b *Backend) ValueGetType(ctx engine.ContextRef, v engine.ValueRef) engine.TypeTag {
	return engine.TypeTag(C.JSValueGetType(cContext(ctx), cValue(v)))
}

func (b *Backend) ValueMakeUndefined(ctx engine.ContextRef) engine.ValueRef {
	return goValue(C.JSValueMakeUndefined(cContext(ctx)))
}

func (b *Backend) ValueMakeNull(ctx engine.ContextRef) engine.ValueRef {
	return goValue(C.JSValueMakeNull(cContext(ctx)))
}

func (b *Backend) ValueMakeBoolean(ctx engine.ContextRef, v bool) engine.ValueRef {
	return goValue(C.JSValueMakeBoolean(cContext(ctx), C.bool(v)))
}

func (b *Backend) ValueMakeNumber(ctx engine.ContextRef, n float64) engine.ValueRef {
	return goValue(C.JSValueMakeNumber(cContext(ctx), C.double(n)))
}

func (b *Backend) ValueMakeString(ctx engine.ContextRef, s engine.StringRef) engine.ValueRef {
	return goValue(C.JSValueMakeString(cContext(ctx), cString(s)))
}

func (b *Backend) ValueToBoolean(ctx engine.ContextRef, v engine.ValueRef) bool {
	return bool(C.JSValueToBoolean(cContext(ctx), cValue(v)))
}

func (b *Backend) ValueToNumber(ctx engine.ContextRef, v engine.ValueRef, exception *engine.ValueRef) float64 {
	slot := exceptionSlot{out: exception}
	n := C.JSValueToNumber(cContext(ctx), cValue(v), slot.ptr())
	slot.done()
	return float64(n)
}

func (b *Backend) ValueToStringCopy(ctx engine.ContextRef, v engine.ValueRef, exception *engine.ValueRef) engine.StringRef {
	slot := exceptionSlot{out: exception}
	s := C.JSValueToStringCopy(cContext(ctx), cValue(v), slot.ptr())
	slot.done()
	return goString(s)
}

func (b *Backend) ValueToObject(ctx engine.ContextRef, v engine.ValueRef, exception *engine.ValueRef) engine.ObjectRef {
	slot := exceptionSlot{out: exception}
	o := C.JSValueToObject(cContext(ctx), cValue(v), slot.ptr())
	slot.done()
	return goObject(o)
}

func (b *Backend) ValueIsStrictEqual(ctx engine.ContextRef, a, c engine.ValueRef) bool {
	return bool(C.JSValueIsStrictEqual(cContext(ctx), cValue(a), cValue(c)))
}

func (b *Backend) ValueProtect(ctx engine.ContextRef, v engine.ValueRef) {
	C.JSValueProtect(cContext(ctx), cValue(v))
}

func (b *Backend) ValueUnprotect(ctx engine.ContextRef, v engine.ValueRef) {
	C.JSValueUnprotect(cContext(ctx), cValue(v))
}

// ClassCreate creates an engine class wired to the shared trampolines. The
// definition is copied; later changes to def have no effect.
func (b *Backend) ClassCreate(def *engine.ClassDefinition) engine.ClassRef {
	d := *def
	name := C.CString(d.ClassName)
	defer C.free(unsafe.Pointer(name))

	callable := C.int(0)
	if d.CallAsFunction != nil {
		callable = 1
	}
	ref := engine.ClassRef(uintptr(unsafe.Pointer(C.jsr_class_create(name, callable))))

	b.mu.Lock()
	b.classes[ref] = &d
	b.mu.Unlock()
	return ref
}

func (b *Backend) ClassRelease(class engine.ClassRef) {
	b.mu.Lock()
	delete(b.classes, class)
	b.mu.Unlock()
	C.JSClassRelease(cClass(class))
}

// ObjectMake allocates a record for objects of a known class; the record is
// freed by the finalize trampoline.
func (b *Backend) ObjectMake(ctx engine.ContextRef, class engine.ClassRef, private uintptr) engine.ObjectRef {
	if class.IsNull() {
		return goObject(C.jsr_object_make(cContext(ctx), nil, 0))
	}
	b.mu.RLock()
	def, ok := b.classes[class]
	b.mu.RUnlock()
	if !ok {
		panic("jsc: unknown class " + class.String())
	}
	h := cgo.NewHandle(&record{def: def, data: private})
	return goObject(C.jsr_object_make(cContext(ctx), cClass(class), C.uintptr_t(h)))
}

func (b *Backend) ObjectMakeError(ctx engine.ContextRef, args []engine.ValueRef, exception *engine.ValueRef) engine.ObjectRef {
	slot := exceptionSlot{out: exception}
	var argv *C.JSValueRef
	if len(args) > 0 {
		cargs := make([]C.JSValueRef, len(args))
		for i, a := range args {
			cargs[i] = cValue(a)
		}
		argv = &cargs[0]
	}
	o := C.JSObjectMakeError(cContext(ctx), C.size_t(len(args)), argv, slot.ptr())
	slot.done()
	return goObject(o)
}

// ObjectGetPrivate returns the value passed to ObjectMake.
func (b *Backend) ObjectGetPrivate(object engine.ObjectRef) uintptr {
	rec := lookup(uintptr(C.jsr_object_get_private(cObject(object))))
	if rec == nil {
		return 0
	}
	return rec.data
}

func lookup(h uintptr) *record {
	if h == 0 {
		return nil
	}
	rec, _ := cgo.Handle(h).Value().(*record)
	return rec
}

func (b *Backend) ObjectIsFunction(ctx engine.ContextRef, object engine.ObjectRef) bool {
	return bool(C.JSObjectIsFunction(cContext(ctx), cObject(object)))
}

func (b *Backend) ObjectHasProperty(ctx engine.ContextRef, object engine.ObjectRef, name engine.StringRef) bool {
	return bool(C.JSObjectHasProperty(cContext(ctx), cObject(object), cString(name)))
}

func (b *Backend) ObjectGetProperty(ctx engine.ContextRef, object engine.ObjectRef, name engine.StringRef, exception *engine.ValueRef) engine.ValueRef {
	slot := exceptionSlot{out: exception}
	v := C.JSObjectGetProperty(cContext(ctx), cObject(object), cString(name), slot.ptr())
	slot.done()
	return goValue(v)
}

func (b *Backend) ObjectSetProperty(ctx engine.ContextRef, object engine.ObjectRef, name engine.StringRef, value engine.ValueRef, attrs engine.PropertyAttributes, exception *engine.ValueRef) {
	slot := exceptionSlot{out: exception}
	C.JSObjectSetProperty(cContext(ctx), cObject(object), cString(name), cValue(value), C.JSPropertyAttributes(attrs), slot.ptr())
	slot.done()
}

func (b *Backend) ObjectDeleteProperty(ctx engine.ContextRef, object engine.ObjectRef, name engine.StringRef, exception *engine.ValueRef) bool {
	slot := exceptionSlot{out: exception}
	ok := C.JSObjectDeleteProperty(cContext(ctx), cObject(object), cString(name), slot.ptr())
	slot.done()
	return bool(ok)
}

func (b *Backend) ObjectCopyPropertyNames(ctx engine.ContextRef, object engine.ObjectRef) engine.PropertyNameArrayRef {
	names := C.JSObjectCopyPropertyNames(cContext(ctx), cObject(object))
	return engine.PropertyNameArrayRef(uintptr(unsafe.Pointer(names)))
}

func (b *Backend) PropertyNameArrayGetCount(names engine.PropertyNameArrayRef) int {
	return int(C.JSPropertyNameArrayGetCount(cNames(names)))
}

func (b *Backend) PropertyNameArrayGetNameAtIndex(names engine.PropertyNameArrayRef, index int) engine.StringRef {
	return goString(C.JSPropertyNameArrayGetNameAtIndex(cNames(names), C.size_t(index)))
}

func (b *Backend) PropertyNameArrayRelease(names engine.PropertyNameArrayRef) {
	C.JSPropertyNameArrayRelease(cNames(names))
}
