package gojs

import (
	"reflect"

	"github.com/dop251/goja"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/resource"
)

// wrap records v in the context's arena and returns its reference.
func (b *Backend) wrap(gc *globalContext, v goja.Value) engine.ValueRef {
	if v == nil {
		v = goja.Undefined()
	}
	h := b.values.Insert(&value{v: v, ctx: gc})
	gc.arena = append(gc.arena, h)
	return engine.ValueRef(h)
}

func (b *Backend) value(ref engine.ValueRef) *value {
	v, ok := b.values.Get(resource.Handle(ref))
	if !ok {
		panic("gojs: invalid value " + ref.String())
	}
	return v
}

func (b *Backend) object(ref engine.ObjectRef) (*value, *goja.Object) {
	v := b.value(ref.Value())
	obj, ok := v.v.(*goja.Object)
	if !ok {
		panic("gojs: not an object " + ref.String())
	}
	return v, obj
}

// throw stores a thrown value into the caller's exception slot.
func (b *Backend) throw(gc *globalContext, exception *engine.ValueRef, v goja.Value) {
	if exception != nil {
		*exception = b.wrap(gc, v)
	}
}

// try runs f and routes a script exception into the exception slot.
func (b *Backend) try(gc *globalContext, exception *engine.ValueRef, f func()) bool {
	if ex := gc.rt.Try(f); ex != nil {
		b.throw(gc, exception, ex.Value())
		return false
	}
	return true
}

func (b *Backend) typeError(gc *globalContext, msg string) goja.Value {
	return gc.rt.NewTypeError(msg)
}

func (b *Backend) StringCreateWithUTF8CString(s string) engine.StringRef {
	return engine.StringRef(b.strings.Insert(&jsString{s: s}))
}

func (b *Backend) StringRetain(s engine.StringRef) engine.StringRef {
	if !b.strings.Retain(resource.Handle(s)) {
		return 0
	}
	return s
}

func (b *Backend) StringRelease(s engine.StringRef) {
	b.strings.Release(resource.Handle(s))
}

func (b *Backend) str(s engine.StringRef) string {
	js, ok := b.strings.Get(resource.Handle(s))
	if !ok {
		panic("gojs: invalid string " + s.String())
	}
	return js.s
}

func (b *Backend) StringGetMaximumUTF8CStringSize(s engine.StringRef) int {
	return len(b.str(s)) + 1
}

func (b *Backend) StringGetUTF8CString(s engine.StringRef, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	n := copy(buf[:len(buf)-1], b.str(s))
	buf[n] = 0
	return n + 1
}

func (b *Backend) StringIsEqual(a, c engine.StringRef) bool {
	return b.str(a) == b.str(c)
}

func (b *Backend) ValueGetType(ctx engine.ContextRef, ref engine.ValueRef) engine.TypeTag {
	v := b.value(ref).v
	switch {
	case goja.IsUndefined(v):
		return engine.TagUndefined
	case goja.IsNull(v):
		return engine.TagNull
	}
	switch v.(type) {
	case *goja.Object:
		return engine.TagObject
	case *goja.Symbol:
		return engine.TagSymbol
	}
	switch v.ExportType().Kind() {
	case reflect.Bool:
		return engine.TagBoolean
	case reflect.String:
		return engine.TagString
	default:
		return engine.TagNumber
	}
}

func (b *Backend) ValueMakeUndefined(ctx engine.ContextRef) engine.ValueRef {
	return b.wrap(b.context(ctx), goja.Undefined())
}

func (b *Backend) ValueMakeNull(ctx engine.ContextRef) engine.ValueRef {
	return b.wrap(b.context(ctx), goja.Null())
}

func (b *Backend) ValueMakeBoolean(ctx engine.ContextRef, v bool) engine.ValueRef {
	gc := b.context(ctx)
	return b.wrap(gc, gc.rt.ToValue(v))
}

func (b *Backend) ValueMakeNumber(ctx engine.ContextRef, n float64) engine.ValueRef {
	gc := b.context(ctx)
	return b.wrap(gc, gc.rt.ToValue(n))
}

func (b *Backend) ValueMakeString(ctx engine.ContextRef, s engine.StringRef) engine.ValueRef {
	gc := b.context(ctx)
	return b.wrap(gc, gc.rt.ToValue(b.str(s)))
}

func (b *Backend) ValueToBoolean(ctx engine.ContextRef, ref engine.ValueRef) bool {
	return b.value(ref).v.ToBoolean()
}

func (b *Backend) ValueToNumber(ctx engine.ContextRef, ref engine.ValueRef, exception *engine.ValueRef) float64 {
	gc := b.context(ctx)
	v := b.value(ref).v
	var n float64
	if !b.try(gc, exception, func() { n = v.ToFloat() }) {
		return 0
	}
	return n
}

// ValueToStringCopy follows String(v) except that symbols throw, as the
// engine's string conversion does.
func (b *Backend) ValueToStringCopy(ctx engine.ContextRef, ref engine.ValueRef, exception *engine.ValueRef) engine.StringRef {
	gc := b.context(ctx)
	v := b.value(ref).v
	if _, ok := v.(*goja.Symbol); ok {
		b.throw(gc, exception, b.typeError(gc, "Cannot convert a Symbol value to a string"))
		return 0
	}
	var s string
	if !b.try(gc, exception, func() { s = v.ToString().String() }) {
		return 0
	}
	return b.StringCreateWithUTF8CString(s)
}

func (b *Backend) ValueToObject(ctx engine.ContextRef, ref engine.ValueRef, exception *engine.ValueRef) engine.ObjectRef {
	gc := b.context(ctx)
	v := b.value(ref).v
	if _, ok := v.(*goja.Object); ok {
		return ref.Object()
	}
	var obj *goja.Object
	if !b.try(gc, exception, func() { obj = v.ToObject(gc.rt) }) {
		return 0
	}
	return b.wrap(gc, obj).Object()
}

func (b *Backend) ValueIsStrictEqual(ctx engine.ContextRef, a, c engine.ValueRef) bool {
	return b.value(a).v.StrictEquals(b.value(c).v)
}

func (b *Backend) ValueProtect(ctx engine.ContextRef, ref engine.ValueRef) {
	b.value(ref).protected++
}

func (b *Backend) ValueUnprotect(ctx engine.ContextRef, ref engine.ValueRef) {
	if v := b.value(ref); v.protected > 0 {
		v.protected--
	}
}
