package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
)

// Type is the dynamic type of a script value.
type Type int

const (
	TypeUndefined Type = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
	TypeSymbol
)

func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "Undefined"
	case TypeNull:
		return "Null"
	case TypeBoolean:
		return "Boolean"
	case TypeNumber:
		return "Number"
	case TypeString:
		return "String"
	case TypeObject:
		return "Object"
	case TypeSymbol:
		return "Symbol"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Classify asks the engine for the type of raw. A tag outside the
// documented set is an engine contract violation and panics.
func Classify(ctx *Context, raw engine.ValueRef) Type {
	switch tag := ctx.api.ValueGetType(ctx.ref, raw); tag {
	case engine.TagUndefined:
		return TypeUndefined
	case engine.TagNull:
		return TypeNull
	case engine.TagBoolean:
		return TypeBoolean
	case engine.TagNumber:
		return TypeNumber
	case engine.TagString:
		return TypeString
	case engine.TagObject:
		return TypeObject
	case engine.TagSymbol:
		return TypeSymbol
	default:
		panic(fmt.Sprintf("runtime: engine returned undocumented type tag %d", int(tag)))
	}
}

// Value is a script value bound to the context that produced it. The type
// is read once, when the Value is made. Values are only valid while their
// context is alive. The zero Value stands for undefined when returned from
// a Func.
type Value struct {
	ctx *Context
	ref engine.ValueRef
	typ Type
}

func newValue(ctx *Context, ref engine.ValueRef) Value {
	return Value{ctx: ctx, ref: ref, typ: Classify(ctx, ref)}
}

// Type returns the value's type.
func (v Value) Type() Type { return v.typ }

// Context returns the context the value belongs to.
func (v Value) Context() *Context { return v.ctx }

// Raw returns the engine reference.
func (v Value) Raw() engine.ValueRef { return v.ref }

func (v Value) IsUndefined() bool { return v.typ == TypeUndefined }

func (v Value) IsNull() bool { return v.typ == TypeNull }

// ToString returns the contents of a string value. Other types are rejected,
// not coerced.
func (v Value) ToString() (string, error) {
	s, err := v.ToEngineString()
	if err != nil {
		return "", err
	}
	defer s.Release()
	return s.GoString()
}

// ToEngineString returns a new engine string with the contents of a string
// value.
func (v Value) ToEngineString() (*String, error) {
	if v.typ != TypeString {
		return nil, errors.InvalidConversion("string", v.typ)
	}
	var exc engine.ValueRef
	ref := v.ctx.api.ValueToStringCopy(v.ctx.ref, v.ref, &exc)
	if !exc.IsNull() {
		return nil, newException(v.ctx, exc)
	}
	return adoptString(v.ctx.api, ref), nil
}

// ToFloat64 returns the number held by a number value.
func (v Value) ToFloat64() (float64, error) {
	if v.typ != TypeNumber {
		return 0, errors.InvalidConversion("float64", v.typ)
	}
	return v.ctx.api.ValueToNumber(v.ctx.ref, v.ref, nil), nil
}

// ToBool returns the boolean held by a boolean value.
func (v Value) ToBool() (bool, error) {
	if v.typ != TypeBoolean {
		return false, errors.InvalidConversion("bool", v.typ)
	}
	return v.ctx.api.ValueToBoolean(v.ctx.ref, v.ref), nil
}

// ToObject returns an object value as an Object.
func (v Value) ToObject() (*Object, error) {
	if v.typ != TypeObject {
		return nil, errors.InvalidConversion("object", v.typ)
	}
	return &Object{ctx: v.ctx, ref: v.ref.Object()}, nil
}

// ConversionType extracts the actual value type from a failed conversion.
func ConversionType(err error) (Type, bool) {
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindInvalidConversion {
		return 0, false
	}
	t, ok := e.Value.(Type)
	return t, ok
}

// StrictEquals compares with === semantics. Values from different contexts
// are never equal.
func (v Value) StrictEquals(other Value) bool {
	if v.ctx == nil || other.ctx == nil {
		return v.ctx == other.ctx && v.typ == TypeUndefined && other.typ == TypeUndefined
	}
	if !v.ctx.sameContext(other.ctx) {
		return false
	}
	return v.ctx.api.ValueIsStrictEqual(v.ctx.ref, v.ref, other.ref)
}

// Protect keeps the value from being collected until Unprotect. Calls nest.
func (v Value) Protect() {
	v.ctx.api.ValueProtect(v.ctx.ref, v.ref)
}

// Unprotect undoes one Protect.
func (v Value) Unprotect() {
	v.ctx.api.ValueUnprotect(v.ctx.ref, v.ref)
}

// String renders the value for humans. It never fails; parts that cannot
// be read print as <error>.
func (v Value) String() string {
	if v.ctx == nil {
		return "undefined"
	}
	var sb strings.Builder
	v.display(&sb, v.ctx.opts.displayDepth(), false)
	return sb.String()
}

func (v Value) display(sb *strings.Builder, depth int, quote bool) {
	switch v.typ {
	case TypeUndefined:
		sb.WriteString("undefined")
	case TypeNull:
		sb.WriteString("null")
	case TypeBoolean:
		b, _ := v.ToBool()
		sb.WriteString(strconv.FormatBool(b))
	case TypeNumber:
		f, _ := v.ToFloat64()
		sb.WriteString(formatNumber(f))
	case TypeString:
		s, err := v.ToString()
		switch {
		case err != nil:
			v.displayError(sb, "string", err)
		case quote:
			sb.WriteString(strconv.Quote(s))
		default:
			sb.WriteString(s)
		}
	case TypeSymbol:
		v.displaySymbol(sb)
	case TypeObject:
		obj, _ := v.ToObject()
		obj.display(sb, depth)
	}
}

func (v Value) displaySymbol(sb *strings.Builder) {
	var exc engine.ValueRef
	obj := v.ctx.api.ValueToObject(v.ctx.ref, v.ref, &exc)
	if !exc.IsNull() {
		v.displayError(sb, "symbol", newException(v.ctx, exc))
		return
	}
	desc, err := (&Object{ctx: v.ctx, ref: obj}).GetProperty("description")
	if err != nil {
		v.displayError(sb, "symbol", err)
		return
	}
	sb.WriteString("Symbol(")
	if s, err := desc.ToString(); err == nil {
		sb.WriteString(s)
	}
	sb.WriteString(")")
}

func (v Value) displayError(sb *strings.Builder, what string, err error) {
	v.ctx.opts.log().Debug("display failed", zap.String("value", what), zap.Error(err))
	sb.WriteString("<error>")
}

// formatNumber prints f the way script code would see it: integral values
// without an exponent up to 1e21.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
