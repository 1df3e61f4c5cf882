package runtime

import (
	"strings"
	"testing"

	"github.com/wippyai/js-runtime/engine/gojs"
	"github.com/wippyai/js-runtime/errors"
)

func TestString_RoundTrip(t *testing.T) {
	api := gojs.New()
	tests := []string{
		"",
		"hello",
		"héllo wörld",
		"日本語のテキスト",
		"emoji 🎉 and more",
		"tab\tnew\nline",
		strings.Repeat("long ", 1000),
	}
	for _, in := range tests {
		s, err := NewString(api, in)
		if err != nil {
			t.Fatalf("NewString(%q): %v", in, err)
		}
		out, err := s.GoString()
		if err != nil {
			t.Fatalf("GoString(%q): %v", in, err)
		}
		if out != in {
			t.Errorf("round trip: got %q, want %q", out, in)
		}
		s.Release()
	}
	if n := api.Live(); n != 0 {
		t.Errorf("live resources = %d, want 0", n)
	}
}

func TestString_EmbeddedNUL(t *testing.T) {
	api := gojs.New()
	_, err := NewString(api, "a\x00b")
	assertKind(t, err, errors.KindEmbeddedNUL)
	if n := api.Live(); n != 0 {
		t.Errorf("engine string created for rejected input")
	}
}

func TestString_CloneEqual(t *testing.T) {
	api := gojs.New()
	a, _ := NewString(api, "same")
	b, _ := NewString(api, "same")
	c, _ := NewString(api, "other")
	defer a.Release()
	defer b.Release()
	defer c.Release()

	if !a.Equal(b) || a.Equal(c) {
		t.Error("Equal compares contents")
	}

	clone := a.Clone()
	if n := api.RefCount(uintptr(a.Raw())); n != 2 {
		t.Errorf("refcount after clone = %d, want 2", n)
	}
	clone.Release()
	if n := api.RefCount(uintptr(a.Raw())); n != 1 {
		t.Errorf("refcount after clone release = %d, want 1", n)
	}
	if a.String() != "same" {
		t.Errorf("String() = %q", a.String())
	}
}
