package runtime

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/js-runtime/engine/gojs"
	"github.com/wippyai/js-runtime/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Engine == "" {
		t.Error("no default engine with gojs linked in")
	}
	if cfg.DisplayDepth != DefaultDisplayDepth {
		t.Errorf("DisplayDepth = %d", cfg.DisplayDepth)
	}
}

func TestOpen(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g, err := Open(Config{Engine: gojs.Name, Logger: zap.New(core), DisplayDepth: 1})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer g.Release()
	if g.API().Name() != gojs.Name {
		t.Errorf("engine = %s", g.API().Name())
	}

	ctx := g.CreateContext()
	defer ctx.Release()
	if got := mustEval(t, ctx, "({a: {b: 1}})").String(); got != "{a: {...}}" {
		t.Errorf("depth 1 display = %q", got)
	}
	if logs.FilterMessage("context created").Len() != 1 {
		t.Error("configured logger not used")
	}
}

func TestOpen_UnknownEngine(t *testing.T) {
	_, err := Open(Config{Engine: "spidermonkey"})
	assertKind(t, err, errors.KindNotFound)
}

func TestOptions_NilSafe(t *testing.T) {
	var o *options
	if o.log() == nil {
		t.Error("nil options should fall back to the package logger")
	}
	if o.displayDepth() != DefaultDisplayDepth {
		t.Error("nil options should use the default depth")
	}
	if (&options{depth: -1}).displayDepth() != DefaultDisplayDepth {
		t.Error("non-positive depth should use the default")
	}
}
