package gojs

import (
	"errors"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
)

// compile parses the script. Line numbers are shifted by padding the source
// so that positions in stacks and messages start at startingLine.
func (b *Backend) compile(gc *globalContext, script, sourceURL engine.StringRef, startingLine int, exception *engine.ValueRef) *goja.Program {
	src := b.str(script)
	if startingLine > 1 {
		src = strings.Repeat("\n", startingLine-1) + src
	}
	name := ""
	if !sourceURL.IsNull() {
		name = b.str(sourceURL)
	}

	prg, err := goja.Compile(name, src, false)
	if err != nil {
		b.throw(gc, exception, b.syntaxError(gc, err))
		return nil
	}
	return prg
}

func (b *Backend) syntaxError(gc *globalContext, err error) goja.Value {
	msg := err.Error()
	var se *goja.CompilerSyntaxError
	if errors.As(err, &se) && se.Message != "" {
		msg = se.Message
	}
	obj, nerr := gc.rt.New(gc.rt.Get("SyntaxError"), gc.rt.ToValue(msg))
	if nerr != nil {
		return gc.rt.ToValue(msg)
	}
	return obj
}

// EvaluateScript runs the script in the context. A non-null this is not
// supported by goja's program runner; such scripts run with the global
// object as this.
func (b *Backend) EvaluateScript(ctx engine.ContextRef, script engine.StringRef, this engine.ObjectRef, sourceURL engine.StringRef, startingLine int, exception *engine.ValueRef) engine.ValueRef {
	gc := b.context(ctx)
	prg := b.compile(gc, script, sourceURL, startingLine, exception)
	if prg == nil {
		return 0
	}
	if !this.IsNull() {
		engine.Logger().Debug("gojs: this binding ignored", zap.Stringer("this", this))
	}

	v, err := gc.rt.RunProgram(prg)
	if err != nil {
		b.fail(gc, exception, err)
		return 0
	}
	return b.wrap(gc, v)
}

func (b *Backend) CheckScriptSyntax(ctx engine.ContextRef, script engine.StringRef, sourceURL engine.StringRef, startingLine int, exception *engine.ValueRef) bool {
	return b.compile(b.context(ctx), script, sourceURL, startingLine, exception) != nil
}
