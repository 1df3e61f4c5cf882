package runtime

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
)

// Object is a script object in a context.
type Object struct {
	ctx *Context
	ref engine.ObjectRef
}

// Context returns the context the object belongs to.
func (o *Object) Context() *Context { return o.ctx }

// Raw returns the engine reference.
func (o *Object) Raw() engine.ObjectRef { return o.ref }

// Value returns the object as a Value.
func (o *Object) Value() Value {
	return Value{ctx: o.ctx, ref: o.ref.Value(), typ: TypeObject}
}

// IsFunction reports whether the object can be called.
func (o *Object) IsFunction() bool {
	return o.ctx.api.ObjectIsFunction(o.ctx.ref, o.ref)
}

// GetProperty reads a property. A getter that throws yields an *Exception
// holding the thrown value; a missing property is undefined.
func (o *Object) GetProperty(name string) (Value, error) {
	var v engine.ValueRef
	var exc engine.ValueRef
	err := withString(o.ctx.api, errors.PhaseProperty, name, func(key engine.StringRef) {
		v = o.ctx.api.ObjectGetProperty(o.ctx.ref, o.ref, key, &exc)
	})
	if err != nil {
		return Value{}, err
	}
	if !exc.IsNull() {
		return Value{}, newException(o.ctx, exc)
	}
	return newValue(o.ctx, v), nil
}

// SetProperty assigns a property. An exception thrown by the engine, such as
// from a setter, is returned as *Exception.
func (o *Object) SetProperty(name string, v Value) error {
	return o.SetPropertyWithAttributes(name, v, engine.PropertyNone)
}

// SetPropertyWithAttributes defines or assigns a property with the given
// attributes.
func (o *Object) SetPropertyWithAttributes(name string, v Value, attrs engine.PropertyAttributes) error {
	ref, err := o.ctx.own(v, errors.PhaseProperty, name)
	if err != nil {
		return err
	}
	var exc engine.ValueRef
	err = withString(o.ctx.api, errors.PhaseProperty, name, func(key engine.StringRef) {
		o.ctx.api.ObjectSetProperty(o.ctx.ref, o.ref, key, ref, attrs, &exc)
	})
	if err != nil {
		return err
	}
	if !exc.IsNull() {
		return newException(o.ctx, exc)
	}
	return nil
}

// DeleteProperty removes a property and reports whether it is gone.
func (o *Object) DeleteProperty(name string) (bool, error) {
	var ok bool
	var exc engine.ValueRef
	err := withString(o.ctx.api, errors.PhaseProperty, name, func(key engine.StringRef) {
		ok = o.ctx.api.ObjectDeleteProperty(o.ctx.ref, o.ref, key, &exc)
	})
	if err != nil {
		return false, err
	}
	if !exc.IsNull() {
		return false, newException(o.ctx, exc)
	}
	return ok, nil
}

// HasProperty reports whether the object or its prototype chain has name.
// A name containing NUL cannot exist on any object and reports false.
func (o *Object) HasProperty(name string) bool {
	var ok bool
	_ = withString(o.ctx.api, errors.PhaseProperty, name, func(key engine.StringRef) {
		ok = o.ctx.api.ObjectHasProperty(o.ctx.ref, o.ref, key)
	})
	return ok
}

// PropertyNames lists the enumerable property names in engine order.
func (o *Object) PropertyNames() ([]string, error) {
	api := o.ctx.api
	arr := api.ObjectCopyPropertyNames(o.ctx.ref, o.ref)
	defer api.PropertyNameArrayRelease(arr)

	n := api.PropertyNameArrayGetCount(arr)
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		buf := readString(api, api.PropertyNameArrayGetNameAtIndex(arr, i))
		if !utf8.Valid(buf) {
			return nil, errors.InvalidUTF8(errors.PhaseProperty, buf)
		}
		names = append(names, string(buf))
	}
	return names, nil
}

// String renders the object's enumerable properties.
func (o *Object) String() string {
	var sb strings.Builder
	o.display(&sb, o.ctx.opts.displayDepth())
	return sb.String()
}

func (o *Object) display(sb *strings.Builder, depth int) {
	if depth <= 0 {
		sb.WriteString("{...}")
		return
	}
	names, err := o.PropertyNames()
	if err != nil {
		o.Value().displayError(sb, "object", err)
		return
	}
	if len(names) == 0 && o.IsFunction() {
		sb.WriteString("[Function]")
		return
	}

	sb.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		v, err := o.GetProperty(name)
		if err != nil {
			o.Value().displayError(sb, name, err)
			continue
		}
		v.display(sb, depth-1, true)
	}
	sb.WriteByte('}')
}
