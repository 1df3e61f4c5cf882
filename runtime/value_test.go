package runtime

import (
	"testing"

	"github.com/wippyai/js-runtime/errors"
)

func TestValue_TypeTags(t *testing.T) {
	_, ctx := newTestContext(t)
	tests := []struct {
		src  string
		want Type
	}{
		{"undefined", TypeUndefined},
		{"null", TypeNull},
		{"false", TypeBoolean},
		{"42", TypeNumber},
		{"NaN", TypeNumber},
		{"'s'", TypeString},
		{"({})", TypeObject},
		{"(function () {})", TypeObject},
		{"Symbol('x')", TypeSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v := mustEval(t, ctx, tt.src)
			if v.Type() != tt.want {
				t.Errorf("type = %s, want %s", v.Type(), tt.want)
			}
		})
	}
}

func TestValue_Conversions(t *testing.T) {
	_, ctx := newTestContext(t)

	s, err := mustEval(t, ctx, "'text'").ToString()
	if err != nil || s != "text" {
		t.Errorf("ToString = %q, %v", s, err)
	}
	f, err := mustEval(t, ctx, "2.5").ToFloat64()
	if err != nil || f != 2.5 {
		t.Errorf("ToFloat64 = %v, %v", f, err)
	}
	b, err := mustEval(t, ctx, "true").ToBool()
	if err != nil || !b {
		t.Errorf("ToBool = %v, %v", b, err)
	}
	obj, err := mustEval(t, ctx, "({k: 1})").ToObject()
	if err != nil || !obj.HasProperty("k") {
		t.Errorf("ToObject = %v, %v", obj, err)
	}
	es, err := mustEval(t, ctx, "'engine'").ToEngineString()
	if err != nil {
		t.Fatalf("ToEngineString: %v", err)
	}
	if es.String() != "engine" {
		t.Errorf("engine string = %q", es.String())
	}
	es.Release()
}

func TestValue_ConversionRejected(t *testing.T) {
	_, ctx := newTestContext(t)
	tests := []struct {
		name    string
		src     string
		convert func(Value) error
		actual  Type
	}{
		{"number as string", "42", func(v Value) error { _, err := v.ToString(); return err }, TypeNumber},
		{"string as number", "'42'", func(v Value) error { _, err := v.ToFloat64(); return err }, TypeString},
		{"number as bool", "1", func(v Value) error { _, err := v.ToBool(); return err }, TypeNumber},
		{"null as object", "null", func(v Value) error { _, err := v.ToObject(); return err }, TypeNull},
		{"symbol as string", "Symbol()", func(v Value) error { _, err := v.ToString(); return err }, TypeSymbol},
		{"object as engine string", "({})", func(v Value) error { _, err := v.ToEngineString(); return err }, TypeObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.convert(mustEval(t, ctx, tt.src))
			assertKind(t, err, errors.KindInvalidConversion)
			actual, ok := ConversionType(err)
			if !ok || actual != tt.actual {
				t.Errorf("ConversionType = %s, %v; want %s", actual, ok, tt.actual)
			}
		})
	}

	if _, ok := ConversionType(errors.InvalidInput(errors.PhaseEval, "x")); ok {
		t.Error("ConversionType matched an unrelated error")
	}
}

func TestValue_Display(t *testing.T) {
	_, ctx := newTestContext(t)
	tests := []struct {
		src  string
		want string
	}{
		{"undefined", "undefined"},
		{"null", "null"},
		{"true", "true"},
		{"1 + 2", "3"},
		{"1.5", "1.5"},
		{"0.1 + 0.2", "0.30000000000000004"},
		{"-0.25", "-0.25"},
		{"1e6", "1000000"},
		{"-0", "0"},
		{"NaN", "NaN"},
		{"-1 / 0", "-Infinity"},
		{"1e21", "1e+21"},
		{"'plain'", "plain"},
		{"Symbol('tag')", "Symbol(tag)"},
		{"Symbol()", "Symbol()"},
		{"({})", "{}"},
		{"({a: 1, b: 'two', c: null})", `{a: 1, b: "two", c: null}`},
		{"[1, 2]", "{0: 1, 1: 2}"},
		{"({a: {b: {c: {d: 1}}}})", "{a: {b: {c: {...}}}}"},
		{"(function () {})", "[Function]"},
		{"({get bad() { throw new Error('x') }, ok: 1})", "{bad: <error>, ok: 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustEval(t, ctx, tt.src).String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Constructors(t *testing.T) {
	_, ctx := newTestContext(t)
	s, err := ctx.String("made")
	if err != nil {
		t.Fatal(err)
	}
	values := []struct {
		v    Value
		want Type
		str  string
	}{
		{ctx.Undefined(), TypeUndefined, "undefined"},
		{ctx.Null(), TypeNull, "null"},
		{ctx.Boolean(true), TypeBoolean, "true"},
		{ctx.Number(7), TypeNumber, "7"},
		{s, TypeString, "made"},
	}
	for _, tt := range values {
		if tt.v.Type() != tt.want || tt.v.String() != tt.str {
			t.Errorf("%s value: type %s, display %q", tt.want, tt.v.Type(), tt.v.String())
		}
		if Classify(ctx, tt.v.Raw()) != tt.want {
			t.Errorf("%s value classifies as %s", tt.want, Classify(ctx, tt.v.Raw()))
		}
	}

	_, err = ctx.String("bad\x00")
	assertKind(t, err, errors.KindEmbeddedNUL)
}

func TestValue_StrictEquals(t *testing.T) {
	_, ctx := newTestContext(t)
	obj := mustEval(t, ctx, "globalThis.o = {}; o")
	same := mustEval(t, ctx, "o")
	other := mustEval(t, ctx, "({})")

	if !obj.StrictEquals(same) {
		t.Error("same object should be strictly equal")
	}
	if obj.StrictEquals(other) {
		t.Error("distinct objects should differ")
	}
	if !ctx.Number(1).StrictEquals(mustEval(t, ctx, "1")) {
		t.Error("equal numbers should be strictly equal")
	}

	_, ctx2 := newTestContext(t)
	if ctx.Number(1).StrictEquals(ctx2.Number(1)) {
		t.Error("values from different contexts are never equal")
	}
}

func TestValue_Protect(t *testing.T) {
	_, ctx := newTestContext(t)
	v := mustEval(t, ctx, "({})")
	v.Protect()
	v.Unprotect()
	if v.Type() != TypeObject {
		t.Error("type changed")
	}
}
