package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type testType string

func (t testType) String() string { return string(t) }

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseConvert,
				Kind:   KindInvalidConversion,
				Path:   []string{"config", "server", "port"},
				GoType: "float64",
				JSType: "String",
				Detail: "cannot convert",
			},
			contains: []string{"[convert]", "invalid_conversion", "config.server.port", "float64", "String", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEval,
				Kind:  KindEmbeddedNUL,
			},
			contains: []string{"[eval]", "embedded_nul"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRegister,
				Kind:   KindRegistration,
				Detail: "register log",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[register]", "registration", "register log", "caused by", "underlying error"},
		},
		{
			name: "js type only",
			err: &Error{
				Phase:  PhaseConvert,
				Kind:   KindInvalidConversion,
				JSType: "Symbol",
			},
			contains: []string{"JS type Symbol"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEval,
		Kind:  KindException,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindInvalidConversion,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseConvert, Kind: KindInvalidConversion}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseString, Kind: KindInvalidConversion}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseConvert, Kind: KindInvalidUTF8}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseConvert, Kind: KindInvalidConversion}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseProperty, KindTypeMismatch).
		Path("user", "name").
		GoType("string").
		JSType("Number").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "string", "number").
		Build()

	if err.Phase != PhaseProperty {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseProperty)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "user" || err.Path[1] != "name" {
		t.Errorf("Path = %v, want [user name]", err.Path)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.JSType != "Number" {
		t.Errorf("JSType = %v, want 'Number'", err.JSType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected string, got number" {
		t.Errorf("Detail = %v, want 'expected string, got number'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidConversion", func(t *testing.T) {
		err := InvalidConversion("float64", testType("String"))
		if err.Kind != KindInvalidConversion {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidConversion)
		}
		if err.JSType != "String" || err.GoType != "float64" {
			t.Errorf("GoType=%v JSType=%v", err.GoType, err.JSType)
		}
		if err.Value != testType("String") {
			t.Errorf("Value = %v, want the actual type", err.Value)
		}
		if !strings.Contains(err.Error(), "InvalidConversion(String)") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("EmbeddedNUL", func(t *testing.T) {
		err := EmbeddedNUL(PhaseString, "ab\x00cd")
		if err.Kind != KindEmbeddedNUL {
			t.Errorf("Kind = %v, want %v", err.Kind, KindEmbeddedNUL)
		}
		if !strings.Contains(err.Detail, "offset 2") {
			t.Errorf("Detail = %v, should contain the NUL offset", err.Detail)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		err := InvalidUTF8(PhaseString, []byte{0xff, 0xfe})
		if err.Kind != KindInvalidUTF8 {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidUTF8)
		}
	})

	t.Run("ContextMismatch", func(t *testing.T) {
		err := ContextMismatch(PhaseProperty, "answer")
		if err.Kind != KindContextMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindContextMismatch)
		}
		if len(err.Path) != 1 || err.Path[0] != "answer" {
			t.Errorf("Path = %v", err.Path)
		}
	})

	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseProperty, []string{"exception"}, "message")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseRegister, "channel parameters")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("Released", func(t *testing.T) {
		err := Released("context")
		if err.Phase != PhaseLifecycle || err.Kind != KindReleased {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseEngine, "engine", "v8")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, `"v8"`) {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		cause := InvalidInput(PhaseRegister, "empty name")
		err := Registration("log", cause)
		if !errors.Is(err, &Error{Phase: PhaseRegister, Kind: KindInvalidInput}) {
			t.Error("errors.Is should find the wrapped cause")
		}
	})
}

func TestKindOf(t *testing.T) {
	inner := NotFound(PhaseEngine, "engine", "v8")
	wrapped := fmt.Errorf("open: %w", inner)

	kind, ok := KindOf(wrapped)
	if !ok || kind != KindNotFound {
		t.Errorf("KindOf = %q, %v", kind, ok)
	}
	if _, ok := KindOf(fmt.Errorf("plain")); ok {
		t.Error("KindOf matched a plain error")
	}

	var target *Error
	if !As(wrapped, &target) || target != inner {
		t.Error("As did not find the structured error")
	}
}
