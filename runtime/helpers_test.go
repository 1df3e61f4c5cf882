package runtime

import (
	"testing"

	"github.com/wippyai/js-runtime/engine/gojs"
	"github.com/wippyai/js-runtime/errors"
)

// newTestContext returns a context on a fresh goja backend. Both the
// context and its group are released when the test ends.
func newTestContext(t *testing.T, opts ...Option) (*gojs.Backend, *Context) {
	t.Helper()
	api := gojs.New()
	g := NewGroup(api, opts...)
	ctx := g.CreateContext()
	t.Cleanup(func() {
		ctx.Release()
		g.Release()
	})
	return api, ctx
}

func mustEval(t *testing.T, ctx *Context, src string) Value {
	t.Helper()
	v, err := ctx.Evaluate(src)
	if err != nil {
		t.Fatalf("evaluate %q: %v", src, err)
	}
	return v
}

func assertKind(t *testing.T, err error, want errors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	kind, ok := errors.KindOf(err)
	if !ok || kind != want {
		t.Fatalf("expected %s error, got %v", want, err)
	}
}

func asException(t *testing.T, err error) *Exception {
	t.Helper()
	var ex *Exception
	if !errors.As(err, &ex) {
		t.Fatalf("expected *Exception, got %T: %v", err, err)
	}
	return ex
}
