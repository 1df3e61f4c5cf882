package runtime

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/js-runtime/errors"
)

func TestBind_Signatures(t *testing.T) {
	_, ctx := newTestContext(t)

	register := func(name string, fn any) {
		t.Helper()
		if err := ctx.Register(name, fn); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}
	register("add", func(a, b float64) float64 { return a + b })
	register("greet", func(name string) string { return "hello " + name })
	register("not", func(b bool) bool { return !b })
	register("square", func(n int) int { return n * n })
	register("big", func(n int64) int64 { return n * 2 })
	register("noop", func() {})
	register("check", func(s string) error {
		if s == "" {
			return stderrors.New("empty")
		}
		return nil
	})
	register("parse", func(s string) (float64, error) {
		if s == "bad" {
			return 0, stderrors.New("cannot parse " + s)
		}
		return float64(len(s)), nil
	})
	register("keys", func(o *Object) (int, error) {
		names, err := o.PropertyNames()
		return len(names), err
	})
	register("wrap", func(ctx *Context, v Value) *Object {
		obj := ctx.NewObject()
		_ = obj.SetProperty("inner", v)
		return obj
	})
	register("none", func() *Object { return nil })
	register("join", func(sep string, rest ...Value) string {
		parts := make([]string, len(rest))
		for i, v := range rest {
			parts[i] = v.String()
		}
		return strings.Join(parts, sep)
	})

	tests := []struct {
		src  string
		want string
	}{
		{"add(2, 3)", "5"},
		{"greet('world')", "hello world"},
		{"not(false)", "true"},
		{"square(7)", "49"},
		{"big(2 ** 40)", "2199023255552"},
		{"typeof noop()", "undefined"},
		{"typeof check('x')", "undefined"},
		{"parse('four')", "4"},
		{"keys({a: 1, b: 2})", "2"},
		{"wrap(5).inner", "5"},
		{"none()", "null"},
		{"join('-', 1, 'b', true)", "1-b-true"},
		{"join(',')", ""},
	}
	for _, tt := range tests {
		if got := mustEval(t, ctx, tt.src).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.src, got, tt.want)
		}
	}

	errTests := []struct {
		src  string
		want string
	}{
		{"check('')", "empty"},
		{"parse('bad')", "cannot parse bad"},
	}
	for _, tt := range errTests {
		_, err := ctx.Evaluate(tt.src)
		ex := asException(t, err)
		if msg, _ := ex.Message(); msg != tt.want {
			t.Errorf("%s threw %q, want %q", tt.src, msg, tt.want)
		}
	}
}

func TestBind_ArgumentMismatch(t *testing.T) {
	_, ctx := newTestContext(t)
	_ = ctx.Register("greet", func(name string) string { return name })
	_ = ctx.Register("square", func(n int) int { return n * n })
	_ = ctx.Register("keys", func(o *Object) int { return 0 })

	tests := []struct {
		src  string
		want errors.Kind
	}{
		{"greet(42)", errors.KindTypeMismatch},
		{"greet()", errors.KindTypeMismatch},
		{"square('3')", errors.KindTypeMismatch},
		{"square(1.5)", errors.KindInvalidInput},
		{"keys(1)", errors.KindTypeMismatch},
	}
	for _, tt := range tests {
		_, err := ctx.Evaluate(tt.src)
		ex := asException(t, err)
		msg, _ := ex.Message()
		if !strings.Contains(msg, string(tt.want)) || !strings.Contains(msg, "arg[0]") {
			t.Errorf("%s threw %q, want %s at arg[0]", tt.src, msg, tt.want)
		}
	}
}

func TestBind_InvalidFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		want errors.Kind
	}{
		{"not a function", 42, errors.KindTypeMismatch},
		{"nil function", (func())(nil), errors.KindTypeMismatch},
		{"map parameter", func(map[string]int) {}, errors.KindUnsupported},
		{"variadic strings", func(...string) {}, errors.KindUnsupported},
		{"two results", func() (int, int) { return 0, 0 }, errors.KindUnsupported},
		{"slice result", func() []int { return nil }, errors.KindUnsupported},
		{"context not first", func(int, *Context) {}, errors.KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(tt.fn)
			assertKind(t, err, tt.want)
		})
	}
}

func TestBind_RegisterWrapsError(t *testing.T) {
	_, ctx := newTestContext(t)
	err := ctx.Register("broken", "not a function")
	assertKind(t, err, errors.KindRegistration)
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not name the function", err)
	}
	if ctx.GlobalObject().HasProperty("broken") {
		t.Error("failed registration installed a property")
	}
}
