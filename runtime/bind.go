package runtime

import (
	"fmt"
	"math"
	"reflect"

	"github.com/wippyai/js-runtime/errors"
)

var (
	contextType = reflect.TypeOf((*Context)(nil))
	objectType  = reflect.TypeOf((*Object)(nil))
	valueType   = reflect.TypeOf(Value{})
	valuesType  = reflect.TypeOf([]Value(nil))
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Bind wraps an ordinary Go function as a Func.
//
// Parameters may start with *Context and continue with any of Value,
// *Object, string, bool, float64, int and int64; a final ...Value collects
// the remaining arguments. Missing arguments are undefined. Arguments are
// converted without coercion, so passing a number where a string is
// expected throws.
//
// Results may be empty, a single value of the parameter types, an error, or
// a value followed by an error.
func Bind(fn any) (Func, error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, errors.New(errors.PhaseRegister, errors.KindTypeMismatch).
			GoType(fmt.Sprintf("%T", fn)).
			Detail("handler must be a function").
			Build()
	}
	ft := rv.Type()

	first := 0
	if ft.NumIn() > 0 && ft.In(0) == contextType {
		first = 1
	}
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if ft.In(fixed) != valuesType {
			return nil, errors.New(errors.PhaseRegister, errors.KindUnsupported).
				GoType(ft.In(fixed).String()).
				Detail("variadic parameter must be ...Value").
				Build()
		}
	}
	for i := first; i < fixed; i++ {
		if !supported(ft.In(i)) {
			return nil, errors.New(errors.PhaseRegister, errors.KindUnsupported).
				Path(fmt.Sprintf("param[%d]", i)).
				GoType(ft.In(i).String()).
				Detail("unsupported parameter type").
				Build()
		}
	}

	withErr := ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == errorType
	results := ft.NumOut()
	if withErr {
		results--
	}
	if results > 1 || (results == 1 && !supported(ft.Out(0))) {
		return nil, errors.New(errors.PhaseRegister, errors.KindUnsupported).
			GoType(ft.String()).
			Detail("results must be (), (T), (error) or (T, error)").
			Build()
	}

	return func(ctx *Context, this *Object, args []Value) (Value, error) {
		in := make([]reflect.Value, 0, ft.NumIn())
		if first == 1 {
			in = append(in, reflect.ValueOf(ctx))
		}
		for i := first; i < fixed; i++ {
			idx := i - first
			arg := ctx.Undefined()
			if idx < len(args) {
				arg = args[idx]
			}
			v, err := fromValue(arg, ft.In(i), idx)
			if err != nil {
				return Value{}, err
			}
			in = append(in, v)
		}
		if ft.IsVariadic() {
			rest := []Value{}
			if n := fixed - first; n < len(args) {
				rest = args[n:]
			}
			in = append(in, reflect.ValueOf(rest))
		}

		var out []reflect.Value
		if ft.IsVariadic() {
			out = rv.CallSlice(in)
		} else {
			out = rv.Call(in)
		}

		if withErr {
			if e := out[len(out)-1]; !e.IsNil() {
				return Value{}, e.Interface().(error)
			}
		}
		if results == 0 {
			return ctx.Undefined(), nil
		}
		return toValue(ctx, out[0])
	}, nil
}

func supported(t reflect.Type) bool {
	switch t {
	case valueType, objectType:
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool, reflect.Float64, reflect.Int, reflect.Int64:
		return true
	}
	return false
}

func fromValue(v Value, t reflect.Type, idx int) (reflect.Value, error) {
	path := fmt.Sprintf("arg[%d]", idx)
	mismatch := func() error {
		return errors.TypeMismatch(errors.PhaseCallback, []string{path}, t.String(), v.Type().String())
	}

	switch t {
	case valueType:
		return reflect.ValueOf(v), nil
	case objectType:
		obj, err := v.ToObject()
		if err != nil {
			return reflect.Value{}, mismatch()
		}
		return reflect.ValueOf(obj), nil
	}

	switch t.Kind() {
	case reflect.String:
		s, err := v.ToString()
		if err != nil {
			return reflect.Value{}, mismatch()
		}
		return reflect.ValueOf(s).Convert(t), nil
	case reflect.Bool:
		b, err := v.ToBool()
		if err != nil {
			return reflect.Value{}, mismatch()
		}
		return reflect.ValueOf(b).Convert(t), nil
	case reflect.Float64:
		f, err := v.ToFloat64()
		if err != nil {
			return reflect.Value{}, mismatch()
		}
		return reflect.ValueOf(f).Convert(t), nil
	case reflect.Int, reflect.Int64:
		f, err := v.ToFloat64()
		if err != nil {
			return reflect.Value{}, mismatch()
		}
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return reflect.Value{}, errors.New(errors.PhaseCallback, errors.KindInvalidInput).
				Path(path).
				GoType(t.String()).
				Detail("%v is not an integer", f).
				Build()
		}
		return reflect.ValueOf(int64(f)).Convert(t), nil
	}
	return reflect.Value{}, mismatch()
}

func toValue(ctx *Context, rv reflect.Value) (Value, error) {
	switch rv.Type() {
	case valueType:
		return rv.Interface().(Value), nil
	case objectType:
		if rv.IsNil() {
			return ctx.Null(), nil
		}
		return rv.Interface().(*Object).Value(), nil
	}

	switch rv.Kind() {
	case reflect.String:
		return ctx.String(rv.String())
	case reflect.Bool:
		return ctx.Boolean(rv.Bool()), nil
	case reflect.Float64:
		return ctx.Number(rv.Float()), nil
	case reflect.Int, reflect.Int64:
		return ctx.Number(float64(rv.Int())), nil
	}
	return Value{}, errors.Unsupported(errors.PhaseCallback, "result type "+rv.Type().String())
}
