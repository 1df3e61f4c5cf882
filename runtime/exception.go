package runtime

import (
	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
)

// Exception is a value thrown by script code. Anything can be thrown, so
// the value is not necessarily an Error object.
type Exception struct {
	value Value
}

func newException(ctx *Context, raw engine.ValueRef) *Exception {
	return &Exception{value: newValue(ctx, raw)}
}

// Value returns the thrown value.
func (e *Exception) Value() Value { return e.value }

// Object returns the thrown value as an object. Thrown primitives fail with
// an invalid conversion.
func (e *Exception) Object() (*Object, error) {
	return e.value.ToObject()
}

// Message returns the message property of the thrown object.
func (e *Exception) Message() (string, error) {
	return e.field("message")
}

// Stack returns the stack property of the thrown object.
func (e *Exception) Stack() (string, error) {
	return e.field("stack")
}

// Name returns the name property, e.g. "TypeError".
func (e *Exception) Name() (string, error) {
	return e.field("name")
}

func (e *Exception) field(name string) (string, error) {
	obj, err := e.Object()
	if err != nil {
		return "", err
	}
	v, err := obj.GetProperty(name)
	if err != nil {
		return "", err
	}
	if v.IsUndefined() {
		return "", errors.FieldMissing(errors.PhaseProperty, []string{"exception"}, name)
	}
	return v.ToString()
}

// Error returns the message when there is one and the display form of the
// thrown value otherwise.
func (e *Exception) Error() string {
	if msg, err := e.Message(); err == nil && msg != "" {
		return msg
	}
	return e.value.String()
}
