package runtime

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
	"github.com/wippyai/js-runtime/resource"
)

// Func is the signature of every native function. this is nil when the
// script called the function without a receiver. Returning an *Exception
// rethrows it unchanged; any other error is thrown as an Error object with
// the error's text as message.
type Func func(ctx *Context, this *Object, args []Value) (Value, error)

// callback is the registry entry an engine function object points at.
type callback struct {
	name string
	fn   Func
	opts *options
}

const callbackTypeID = 1

// callbacks holds every live native function. Only the handle is stored in
// the engine object's private word; the entry is removed when the engine
// finalizes the object.
var callbacks = resource.NewTyped[*callback](nil, callbackTypeID)

// MakeFunction creates a function object that runs fn when called. The
// object is not installed anywhere.
func (c *Context) MakeFunction(name string, fn Func) (*Object, error) {
	if fn == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, "function is nil")
	}
	if strings.IndexByte(name, 0) >= 0 {
		return nil, errors.EmbeddedNUL(errors.PhaseRegister, name)
	}

	h := callbacks.Insert(&callback{name: name, fn: fn, opts: c.opts})
	if h == 0 {
		return nil, errors.Registration(name, resource.ErrClosed)
	}
	class := c.api.ClassCreate(&engine.ClassDefinition{
		ClassName:      name,
		CallAsFunction: trampoline(c.api),
		Finalize:       finalizer(c.api),
	})
	obj := c.api.ObjectMake(c.ref, class, uintptr(h))
	c.api.ClassRelease(class)
	return &Object{ctx: c, ref: obj}, nil
}

// finalizer drops the registry entry of a collected function object.
func finalizer(api engine.API) engine.Finalize {
	return func(obj engine.ObjectRef) {
		h := resource.Handle(api.ObjectGetPrivate(obj))
		if cb, ok := callbacks.Remove(h); ok {
			cb.opts.log().Debug("native function finalized", zap.String("name", cb.name))
		}
	}
}

// trampoline adapts the engine calling convention to Func. Nothing may
// unwind out of it: errors and panics become script exceptions.
func trampoline(api engine.API) engine.CallAsFunction {
	return func(ctxRef engine.ContextRef, function, this engine.ObjectRef, args []engine.ValueRef, exception *engine.ValueRef) (ret engine.ValueRef) {
		cb, ok := callbacks.Get(resource.Handle(api.ObjectGetPrivate(function)))
		if !ok {
			ctx := borrowContext(api, ctxRef, nil)
			*exception = ctx.throwable("native function is no longer registered")
			return api.ValueMakeUndefined(ctxRef)
		}
		ctx := borrowContext(api, ctxRef, cb.opts)

		defer func() {
			if r := recover(); r != nil {
				cb.opts.log().Error("native function panicked",
					zap.String("name", cb.name),
					zap.Any("panic", r))
				*exception = ctx.throwable(fmt.Sprintf("%s: panic: %v", cb.name, r))
				ret = api.ValueMakeUndefined(ctxRef)
			}
		}()

		var thisObj *Object
		if !this.IsNull() {
			thisObj = &Object{ctx: ctx, ref: this}
		}
		vals := make([]Value, len(args))
		for i, a := range args {
			vals[i] = newValue(ctx, a)
		}

		v, err := cb.fn(ctx, thisObj, vals)
		if err != nil {
			*exception = ctx.thrown(err)
			return api.ValueMakeUndefined(ctxRef)
		}
		ref, err := ctx.own(v, errors.PhaseCallback, cb.name, "return")
		if err != nil {
			*exception = ctx.throwable(err.Error())
			return api.ValueMakeUndefined(ctxRef)
		}
		return ref
	}
}

// thrown picks the value to throw for err.
func (c *Context) thrown(err error) engine.ValueRef {
	var ex *Exception
	if errors.As(err, &ex) && ex.value.ctx != nil && c.sameContext(ex.value.ctx) {
		return ex.value.ref
	}
	return c.throwable(err.Error())
}

// throwable makes an Error object carrying msg, or a plain string if the
// engine refuses to build one.
func (c *Context) throwable(msg string) engine.ValueRef {
	msg = strings.ReplaceAll(msg, "\x00", "\uFFFD")
	s := c.api.StringCreateWithUTF8CString(msg)
	defer c.api.StringRelease(s)
	str := c.api.ValueMakeString(c.ref, s)

	var exc engine.ValueRef
	obj := c.api.ObjectMakeError(c.ref, []engine.ValueRef{str}, &exc)
	if !exc.IsNull() || obj.IsNull() {
		return str
	}
	return obj.Value()
}
