package runtime

import (
	stderrors "errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/js-runtime/errors"
	"github.com/wippyai/js-runtime/resource"
)

func echo(ctx *Context, this *Object, args []Value) (Value, error) {
	if len(args) == 0 {
		return ctx.Undefined(), nil
	}
	return args[0], nil
}

func TestCallback_Echo(t *testing.T) {
	_, ctx := newTestContext(t)
	if err := ctx.AddFunction("echo", echo); err != nil {
		t.Fatalf("AddFunction: %v", err)
	}

	tests := []struct {
		src  string
		want string
	}{
		{"echo(42)", "42"},
		{"echo('hi')", "hi"},
		{"echo()", "undefined"},
		{"echo({a: 1}).a", "1"},
		{"typeof echo", "function"},
		{"echo.name", "echo"},
	}
	for _, tt := range tests {
		if got := mustEval(t, ctx, tt.src).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.src, got, tt.want)
		}
	}

	n, err := mustEval(t, ctx, "echo(42)").ToFloat64()
	if err != nil || n != 42.0 {
		t.Errorf("echo(42) = %v, %v; want the number 42", n, err)
	}

	names, err := ctx.GlobalObject().PropertyNames()
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range names {
		if n == "echo" {
			t.Error("installed function should not be enumerable")
		}
	}
}

func TestCallback_ArgumentCount(t *testing.T) {
	_, ctx := newTestContext(t)
	_ = ctx.AddFunction("count", func(ctx *Context, this *Object, args []Value) (Value, error) {
		return ctx.Number(float64(len(args))), nil
	})
	tests := []struct {
		src  string
		want string
	}{
		{"count()", "0"},
		{"count(1)", "1"},
		{"count(1, 'a', null, {})", "4"},
		{"count(undefined, undefined)", "2"},
	}
	for _, tt := range tests {
		if got := mustEval(t, ctx, tt.src).String(); got != tt.want {
			t.Errorf("%s = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestCallback_ErrorBecomesException(t *testing.T) {
	_, ctx := newTestContext(t)
	_ = ctx.AddFunction("fail", func(ctx *Context, this *Object, args []Value) (Value, error) {
		return Value{}, stderrors.New("boom")
	})

	_, err := ctx.Evaluate("fail()")
	ex := asException(t, err)
	if msg, _ := ex.Message(); msg != "boom" {
		t.Errorf("message = %q, want boom", msg)
	}
	if name, _ := ex.Name(); name != "Error" {
		t.Errorf("name = %q, want Error", name)
	}

	got := mustEval(t, ctx, "try { fail(); 'no' } catch (e) { 'caught ' + e.message }").String()
	if got != "caught boom" {
		t.Errorf("got %q", got)
	}
}

func TestCallback_RethrowException(t *testing.T) {
	_, ctx := newTestContext(t)
	_ = ctx.AddFunction("inner", func(ctx *Context, this *Object, args []Value) (Value, error) {
		return ctx.Evaluate("throw new RangeError('deep')")
	})

	got := mustEval(t, ctx, "try { inner() } catch (e) { e.name + ': ' + e.message }").String()
	if got != "RangeError: deep" {
		t.Errorf("got %q", got)
	}
}

func TestCallback_Closure(t *testing.T) {
	_, ctx := newTestContext(t)
	calls := 0
	_ = ctx.AddFunction("tick", func(ctx *Context, this *Object, args []Value) (Value, error) {
		calls++
		return ctx.Number(float64(calls)), nil
	})
	if got := mustEval(t, ctx, "tick(); tick(); tick()").String(); got != "3" {
		t.Errorf("tick() = %s", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d", calls)
	}
}

func TestCallback_This(t *testing.T) {
	_, ctx := newTestContext(t)
	_ = ctx.AddFunction("label", func(ctx *Context, this *Object, args []Value) (Value, error) {
		if this == nil {
			return ctx.String("none")
		}
		return this.GetProperty("label")
	})
	got := mustEval(t, ctx, "var o = {label: 'mine', m: label}; o.m()").String()
	if got != "mine" {
		t.Errorf("o.m() = %q", got)
	}
}

func TestCallback_Panic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	_, ctx := newTestContext(t, WithLogger(zap.New(core)))
	_ = ctx.AddFunction("explode", func(ctx *Context, this *Object, args []Value) (Value, error) {
		panic("kaboom")
	})

	_, err := ctx.Evaluate("explode()")
	ex := asException(t, err)
	if msg, _ := ex.Message(); msg != "explode: panic: kaboom" {
		t.Errorf("message = %q", msg)
	}

	entries := logs.FilterMessage("native function panicked").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d panic entries, want 1", len(entries))
	}
	if name := entries[0].ContextMap()["name"]; name != "explode" {
		t.Errorf("logged name = %v", name)
	}

	// The context stays usable.
	if got := mustEval(t, ctx, "1 + 1").String(); got != "2" {
		t.Errorf("after panic: %s", got)
	}
}

func TestCallback_ForeignReturnValue(t *testing.T) {
	_, ctx := newTestContext(t)
	_, other := newTestContext(t)
	_ = ctx.AddFunction("leak", func(_ *Context, this *Object, args []Value) (Value, error) {
		return other.Number(1), nil
	})
	_, err := ctx.Evaluate("leak()")
	ex := asException(t, err)
	msg, _ := ex.Message()
	if !strings.Contains(msg, string(errors.KindContextMismatch)) {
		t.Errorf("message %q does not report the mismatch", msg)
	}
}

func TestCallback_ZeroValueIsUndefined(t *testing.T) {
	_, ctx := newTestContext(t)
	_ = ctx.AddFunction("nothing", func(ctx *Context, this *Object, args []Value) (Value, error) {
		return Value{}, nil
	})
	if got := mustEval(t, ctx, "typeof nothing()").String(); got != "undefined" {
		t.Errorf("typeof nothing() = %s", got)
	}
}

func TestCallback_RegistryReleased(t *testing.T) {
	before := callbacks.Len()

	api, ctx := newTestContext(t)
	for _, name := range []string{"a", "b", "c"} {
		if err := ctx.AddFunction(name, echo); err != nil {
			t.Fatal(err)
		}
	}
	if n := callbacks.Len(); n != before+3 {
		t.Fatalf("registry size = %d, want %d", n, before+3)
	}

	ctx.Release()
	if n := callbacks.Len(); n != before {
		t.Errorf("registry size after release = %d, want %d", n, before)
	}
	if n := api.Live(); n != 1 {
		t.Errorf("live resources = %d, want only the group", n)
	}
}

func TestCallback_Unregistered(t *testing.T) {
	api, ctx := newTestContext(t)
	fn, err := ctx.MakeFunction("gone", echo)
	if err != nil {
		t.Fatal(err)
	}
	callbacks.Remove(resource.Handle(api.ObjectGetPrivate(fn.Raw())))

	_ = ctx.GlobalObject().SetProperty("gone", fn.Value())
	_, err = ctx.Evaluate("gone()")
	ex := asException(t, err)
	if msg, _ := ex.Message(); msg != "native function is no longer registered" {
		t.Errorf("message = %q", msg)
	}
}

func TestCallback_InvalidRegistration(t *testing.T) {
	_, ctx := newTestContext(t)
	_, err := ctx.MakeFunction("nil", nil)
	assertKind(t, err, errors.KindInvalidInput)

	_, err = ctx.MakeFunction("bad\x00name", echo)
	assertKind(t, err, errors.KindEmbeddedNUL)
}
