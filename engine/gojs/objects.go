package gojs

import (
	"errors"

	"github.com/dop251/goja"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/resource"
)

// fail routes a Go-side error from goja into the exception slot.
func (b *Backend) fail(gc *globalContext, exception *engine.ValueRef, err error) {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		b.throw(gc, exception, ex.Value())
		return
	}
	b.throw(gc, exception, gc.rt.ToValue(err.Error()))
}

func (b *Backend) ClassCreate(def *engine.ClassDefinition) engine.ClassRef {
	return engine.ClassRef(b.classes.Insert(&class{def: *def}))
}

// ClassRelease drops the class reference. Objects already made from the
// class keep using its definition.
func (b *Backend) ClassRelease(c engine.ClassRef) {
	b.classes.Release(resource.Handle(c))
}

// ObjectMake creates an object of the class. A class with CallAsFunction
// yields a goja function whose body dispatches to the definition.
func (b *Backend) ObjectMake(ctx engine.ContextRef, classRef engine.ClassRef, private uintptr) engine.ObjectRef {
	gc := b.context(ctx)
	if classRef.IsNull() {
		return b.wrap(gc, gc.rt.NewObject()).Object()
	}
	cls, ok := b.classes.Get(resource.Handle(classRef))
	if !ok {
		panic("gojs: invalid class " + classRef.String())
	}

	var obj *goja.Object
	var self engine.ObjectRef
	if call := cls.def.CallAsFunction; call != nil {
		obj = gc.rt.ToValue(func(fc goja.FunctionCall) goja.Value {
			return b.call(gc, call, self, fc)
		}).(*goja.Object)
		if cls.def.ClassName != "" {
			_ = obj.DefineDataProperty("name", gc.rt.ToValue(cls.def.ClassName), goja.FLAG_FALSE, goja.FLAG_TRUE, goja.FLAG_FALSE)
		}
	} else {
		obj = gc.rt.NewObject()
	}

	self = b.wrap(gc, obj).Object()
	b.value(self.Value()).pinned = true
	gc.private[obj] = private
	gc.owned = append(gc.owned, classObject{ref: self, class: cls})
	return self
}

// call adapts a goja native call to the CallAsFunction convention. A value
// stored in the exception slot is thrown by panicking with it, which goja
// turns into a script exception. Values created during the call are
// released when it returns unless they were protected.
func (b *Backend) call(gc *globalContext, fn engine.CallAsFunction, self engine.ObjectRef, fc goja.FunctionCall) goja.Value {
	defer b.trim(gc, len(gc.arena))

	var this engine.ObjectRef
	if obj, ok := fc.This.(*goja.Object); ok {
		this = b.wrap(gc, obj).Object()
	}
	args := make([]engine.ValueRef, len(fc.Arguments))
	for i, a := range fc.Arguments {
		args[i] = b.wrap(gc, a)
	}

	var exception engine.ValueRef
	ret := fn(gc.ref.Context(), self, this, args, &exception)
	if !exception.IsNull() {
		panic(b.value(exception).v)
	}
	if ret.IsNull() {
		return goja.Undefined()
	}
	return b.value(ret).v
}

// trim frees the arena handles from mark on that are neither protected nor
// pinned.
func (b *Backend) trim(gc *globalContext, mark int) {
	if mark > len(gc.arena) {
		return
	}
	kept := gc.arena[:mark]
	for _, h := range gc.arena[mark:] {
		if v, ok := b.values.Get(h); ok && (v.pinned || v.protected > 0) {
			kept = append(kept, h)
			continue
		}
		b.values.Remove(h)
	}
	gc.arena = kept
}

func (b *Backend) ObjectMakeError(ctx engine.ContextRef, args []engine.ValueRef, exception *engine.ValueRef) engine.ObjectRef {
	gc := b.context(ctx)
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = b.value(a).v
	}
	obj, err := gc.rt.New(gc.rt.Get("Error"), vals...)
	if err != nil {
		b.fail(gc, exception, err)
		return 0
	}
	return b.wrap(gc, obj).Object()
}

func (b *Backend) ObjectGetPrivate(object engine.ObjectRef) uintptr {
	v, obj := b.object(object)
	return v.ctx.private[obj]
}

func (b *Backend) ObjectIsFunction(ctx engine.ContextRef, object engine.ObjectRef) bool {
	_, obj := b.object(object)
	_, ok := goja.AssertFunction(obj)
	return ok
}

func (b *Backend) ObjectHasProperty(ctx engine.ContextRef, object engine.ObjectRef, name engine.StringRef) bool {
	gc := b.context(ctx)
	_, obj := b.object(object)
	if gc.hasProp == nil {
		return obj.Get(b.str(name)) != nil
	}
	res, err := gc.hasProp(goja.Undefined(), obj, gc.rt.ToValue(b.str(name)))
	return err == nil && res.ToBoolean()
}

func (b *Backend) ObjectGetProperty(ctx engine.ContextRef, object engine.ObjectRef, name engine.StringRef, exception *engine.ValueRef) engine.ValueRef {
	gc := b.context(ctx)
	_, obj := b.object(object)
	key := b.str(name)
	var v goja.Value
	if !b.try(gc, exception, func() { v = obj.Get(key) }) {
		return 0
	}
	return b.wrap(gc, v)
}

func flag(set bool) goja.Flag {
	if set {
		return goja.FLAG_TRUE
	}
	return goja.FLAG_FALSE
}

func (b *Backend) ObjectSetProperty(ctx engine.ContextRef, object engine.ObjectRef, name engine.StringRef, val engine.ValueRef, attrs engine.PropertyAttributes, exception *engine.ValueRef) {
	gc := b.context(ctx)
	_, obj := b.object(object)
	key := b.str(name)
	v := b.value(val).v

	var err error
	if attrs == engine.PropertyNone {
		err = obj.Set(key, v)
	} else {
		err = obj.DefineDataProperty(key, v,
			flag(attrs&engine.PropertyReadOnly == 0),
			flag(attrs&engine.PropertyDontDelete == 0),
			flag(attrs&engine.PropertyDontEnum == 0))
	}
	if err != nil {
		b.fail(gc, exception, err)
	}
}

func (b *Backend) ObjectDeleteProperty(ctx engine.ContextRef, object engine.ObjectRef, name engine.StringRef, exception *engine.ValueRef) bool {
	gc := b.context(ctx)
	_, obj := b.object(object)
	if err := obj.Delete(b.str(name)); err != nil {
		b.fail(gc, exception, err)
		return false
	}
	return true
}

// ObjectCopyPropertyNames snapshots the own enumerable string keys.
func (b *Backend) ObjectCopyPropertyNames(ctx engine.ContextRef, object engine.ObjectRef) engine.PropertyNameArrayRef {
	gc := b.context(ctx)
	_, obj := b.object(object)
	var keys []string
	gc.rt.Try(func() { keys = obj.Keys() })

	arr := &nameArray{names: make([]engine.StringRef, len(keys))}
	for i, k := range keys {
		arr.names[i] = b.StringCreateWithUTF8CString(k)
	}
	return engine.PropertyNameArrayRef(b.names.Insert(arr))
}

func (b *Backend) PropertyNameArrayGetCount(names engine.PropertyNameArrayRef) int {
	arr, ok := b.names.Get(resource.Handle(names))
	if !ok {
		return 0
	}
	return len(arr.names)
}

func (b *Backend) PropertyNameArrayGetNameAtIndex(names engine.PropertyNameArrayRef, index int) engine.StringRef {
	arr, ok := b.names.Get(resource.Handle(names))
	if !ok || index < 0 || index >= len(arr.names) {
		return 0
	}
	return arr.names[index]
}

func (b *Backend) PropertyNameArrayRelease(names engine.PropertyNameArrayRef) {
	arr, ok := b.names.Release(resource.Handle(names))
	if !ok {
		return
	}
	for _, s := range arr.names {
		b.StringRelease(s)
	}
}
