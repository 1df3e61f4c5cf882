package runtime

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
)

// Context is an execution context: a global object and everything
// reachable from it. A Context made by Group.CreateContext owns a reference
// and must be released. Contexts handed to a Func are borrowed from the
// engine for the duration of the call; releasing them does nothing.
//
// A Context is not safe for concurrent use.
type Context struct {
	api    engine.API
	ref    engine.ContextRef
	global engine.GlobalContextRef
	handle *Handle[engine.GlobalContextRef]
	group  *Group
	opts   *options
}

// EvalOptions carries the optional arguments of EvaluateScript.
type EvalOptions struct {
	// SourceURL names the script in stack traces and error messages.
	SourceURL string
	// StartingLine is the line number of the first source line; values
	// below 1 mean 1.
	StartingLine int
	// This is the this value; nil means the global object.
	This *Object
}

// borrowContext wraps a context the engine passed into a callback.
func borrowContext(api engine.API, ref engine.ContextRef, opts *options) *Context {
	return &Context{
		api:    api,
		ref:    ref,
		global: api.ContextGetGlobalContext(ref),
		opts:   opts,
	}
}

// API returns the backend the context runs on.
func (c *Context) API() engine.API { return c.api }

// Raw returns the engine reference.
func (c *Context) Raw() engine.ContextRef { return c.ref }

// Owned reports whether this Context holds a reference of its own.
func (c *Context) Owned() bool { return c.handle != nil }

// Group returns the group the context was created from, or nil for a
// borrowed context.
func (c *Context) Group() *Group { return c.group }

// Release drops the context's reference. It is a no-op for borrowed
// contexts and on repeated calls.
func (c *Context) Release() {
	if c.handle == nil {
		return
	}
	if !c.handle.Released() {
		c.opts.log().Debug("context released", zap.Stringer("ref", c.global))
	}
	c.handle.Release()
}

// sameContext reports whether both refer to one engine global context.
// Refs are only unique within a backend, so the backends must match too.
func (c *Context) sameContext(other *Context) bool {
	return c == other || (c.api == other.api && c.global == other.global)
}

// own returns the engine ref for v after checking it belongs to c. The zero
// Value is undefined.
func (c *Context) own(v Value, phase errors.Phase, path ...string) (engine.ValueRef, error) {
	if v.ctx == nil {
		return c.api.ValueMakeUndefined(c.ref), nil
	}
	if !c.sameContext(v.ctx) {
		return 0, errors.ContextMismatch(phase, path...)
	}
	return v.ref, nil
}

// GlobalObject returns the context's global object.
func (c *Context) GlobalObject() *Object {
	return &Object{ctx: c, ref: c.api.ContextGetGlobalObject(c.ref)}
}

// Evaluate runs source as a script and returns its completion value. A
// thrown value is returned as *Exception.
func (c *Context) Evaluate(source string) (Value, error) {
	return c.EvaluateScript(source, EvalOptions{})
}

// EvaluateContext checks ctx once and then evaluates source to completion.
// Evaluation itself cannot be interrupted.
func (c *Context) EvaluateContext(ctx context.Context, source string) (Value, error) {
	if err := ctx.Err(); err != nil {
		return Value{}, err
	}
	return c.Evaluate(source)
}

// EvaluateScript runs source with the given options.
func (c *Context) EvaluateScript(source string, opts EvalOptions) (Value, error) {
	if strings.IndexByte(source, 0) >= 0 {
		return Value{}, errors.EmbeddedNUL(errors.PhaseEval, source)
	}
	if strings.IndexByte(opts.SourceURL, 0) >= 0 {
		return Value{}, errors.EmbeddedNUL(errors.PhaseEval, opts.SourceURL)
	}
	var this engine.ObjectRef
	if opts.This != nil {
		if !c.sameContext(opts.This.ctx) {
			return Value{}, errors.ContextMismatch(errors.PhaseEval, "this")
		}
		this = opts.This.ref
	}
	line := opts.StartingLine
	if line < 1 {
		line = 1
	}

	script := c.api.StringCreateWithUTF8CString(source)
	defer c.api.StringRelease(script)
	var url engine.StringRef
	if opts.SourceURL != "" {
		url = c.api.StringCreateWithUTF8CString(opts.SourceURL)
		defer c.api.StringRelease(url)
	}

	var exc engine.ValueRef
	v := c.api.EvaluateScript(c.ref, script, this, url, line, &exc)
	if !exc.IsNull() {
		return Value{}, newException(c, exc)
	}
	return newValue(c, v), nil
}

// CheckSyntax parses source without running it. A syntax error is returned
// as *Exception.
func (c *Context) CheckSyntax(source string) error {
	var exc engine.ValueRef
	var ok bool
	err := withString(c.api, errors.PhaseEval, source, func(script engine.StringRef) {
		ok = c.api.CheckScriptSyntax(c.ref, script, 0, 1, &exc)
	})
	if err != nil {
		return err
	}
	if !exc.IsNull() {
		return newException(c, exc)
	}
	if !ok {
		return errors.InvalidInput(errors.PhaseEval, "syntax check failed")
	}
	return nil
}

// GarbageCollect hints the engine to collect unreachable values.
func (c *Context) GarbageCollect() {
	c.api.GarbageCollect(c.ref)
}

func (c *Context) Undefined() Value {
	return Value{ctx: c, ref: c.api.ValueMakeUndefined(c.ref), typ: TypeUndefined}
}

func (c *Context) Null() Value {
	return Value{ctx: c, ref: c.api.ValueMakeNull(c.ref), typ: TypeNull}
}

func (c *Context) Boolean(b bool) Value {
	return Value{ctx: c, ref: c.api.ValueMakeBoolean(c.ref, b), typ: TypeBoolean}
}

func (c *Context) Number(f float64) Value {
	return Value{ctx: c, ref: c.api.ValueMakeNumber(c.ref, f), typ: TypeNumber}
}

// String makes a string value. s must not contain NUL bytes.
func (c *Context) String(s string) (Value, error) {
	var v engine.ValueRef
	err := withString(c.api, errors.PhaseString, s, func(ref engine.StringRef) {
		v = c.api.ValueMakeString(c.ref, ref)
	})
	if err != nil {
		return Value{}, err
	}
	return Value{ctx: c, ref: v, typ: TypeString}, nil
}

// NewObject makes an empty plain object.
func (c *Context) NewObject() *Object {
	return &Object{ctx: c, ref: c.api.ObjectMake(c.ref, 0, 0)}
}

// NewError makes an Error object with the given message.
func (c *Context) NewError(message string) (*Object, error) {
	msg, err := c.String(message)
	if err != nil {
		return nil, err
	}
	var exc engine.ValueRef
	obj := c.api.ObjectMakeError(c.ref, []engine.ValueRef{msg.ref}, &exc)
	if !exc.IsNull() {
		return nil, newException(c, exc)
	}
	return &Object{ctx: c, ref: obj}, nil
}

// AddFunction installs fn on the global object under name. The property is
// not enumerable.
func (c *Context) AddFunction(name string, fn Func) error {
	obj, err := c.MakeFunction(name, fn)
	if err != nil {
		return err
	}
	return c.GlobalObject().SetPropertyWithAttributes(name, obj.Value(), engine.PropertyDontEnum)
}

// Register binds an ordinary Go function under name. See Bind for the
// accepted signatures.
func (c *Context) Register(name string, fn any) error {
	f, err := Bind(fn)
	if err != nil {
		return errors.Registration(name, err)
	}
	return c.AddFunction(name, f)
}
