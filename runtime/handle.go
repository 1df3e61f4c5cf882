package runtime

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
)

// refcounted lists the engine references with explicit retain and release.
type refcounted interface {
	engine.GroupRef | engine.GlobalContextRef | engine.StringRef
}

// retainRelease names the engine entry points that manage one kind of
// reference.
type retainRelease[R refcounted] struct {
	kind    string
	retain  func(engine.API, R) R
	release func(engine.API, R)
}

var (
	groupOps = &retainRelease[engine.GroupRef]{
		kind:    "group",
		retain:  func(api engine.API, r engine.GroupRef) engine.GroupRef { return api.ContextGroupRetain(r) },
		release: func(api engine.API, r engine.GroupRef) { api.ContextGroupRelease(r) },
	}
	contextOps = &retainRelease[engine.GlobalContextRef]{
		kind:    "context",
		retain:  func(api engine.API, r engine.GlobalContextRef) engine.GlobalContextRef { return api.GlobalContextRetain(r) },
		release: func(api engine.API, r engine.GlobalContextRef) { api.GlobalContextRelease(r) },
	}
	stringOps = &retainRelease[engine.StringRef]{
		kind:    "string",
		retain:  func(api engine.API, r engine.StringRef) engine.StringRef { return api.StringRetain(r) },
		release: func(api engine.API, r engine.StringRef) { api.StringRelease(r) },
	}
)

// Handle owns one retain credit on a reference-counted engine resource.
// Clones share the engine object but each holds its own credit, so every
// Handle must be released on its own. A Handle may move between goroutines.
type Handle[R refcounted] struct {
	api      engine.API
	ops      *retainRelease[R]
	ref      R
	released atomic.Bool
}

// newHandle takes over a reference the caller has already retained.
func newHandle[R refcounted](api engine.API, ops *retainRelease[R], ref R) *Handle[R] {
	return &Handle[R]{api: api, ops: ops, ref: ref}
}

// Raw returns the engine reference. It panics after Release.
func (h *Handle[R]) Raw() R {
	if h.released.Load() {
		panic(errors.Released(h.ops.kind))
	}
	return h.ref
}

// Clone retains the resource again and returns an independent Handle.
func (h *Handle[R]) Clone() *Handle[R] {
	ref := h.ops.retain(h.api, h.Raw())
	return newHandle(h.api, h.ops, ref)
}

// Release gives up this Handle's credit. Only the first call reaches the
// engine.
func (h *Handle[R]) Release() {
	if !h.released.CompareAndSwap(false, true) {
		Logger().Debug("handle already released", zap.String("kind", h.ops.kind))
		return
	}
	h.ops.release(h.api, h.ref)
}

// Released reports whether Release has been called.
func (h *Handle[R]) Released() bool {
	return h.released.Load()
}

func (h *Handle[R]) String() string {
	state := "live"
	if h.released.Load() {
		state = "released"
	}
	return fmt.Sprintf("%s handle 0x%x (%s)", h.ops.kind, uintptr(h.ref), state)
}
