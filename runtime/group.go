package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
)

// Group is an engine context group: the allocation domain contexts are
// created in. Contexts keep their group alive on the engine side, so a
// Group may be released while its contexts are still in use.
type Group struct {
	api    engine.API
	handle *Handle[engine.GroupRef]
	opts   *options
}

// NewGroup creates a group on api.
func NewGroup(api engine.API, opts ...Option) *Group {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	ref := api.ContextGroupCreate()
	o.log().Debug("group created", zap.String("engine", api.Name()), zap.Stringer("ref", ref))
	return &Group{
		api:    api,
		handle: newHandle(api, groupOps, ref),
		opts:   o,
	}
}

// API returns the backend the group was created on.
func (g *Group) API() engine.API {
	return g.api
}

// Raw returns the engine reference. It panics after Release.
func (g *Group) Raw() engine.GroupRef {
	return g.handle.Raw()
}

// CreateContext creates a new global context in the group.
func (g *Group) CreateContext() *Context {
	ref := g.api.GlobalContextCreateInGroup(g.handle.Raw(), 0)
	g.opts.log().Debug("context created", zap.Stringer("ref", ref))
	return &Context{
		api:    g.api,
		ref:    ref.Context(),
		global: ref,
		handle: newHandle(g.api, contextOps, ref),
		group:  g,
		opts:   g.opts,
	}
}

// Clone returns a second owner of the same engine group.
func (g *Group) Clone() *Group {
	return &Group{api: g.api, handle: g.handle.Clone(), opts: g.opts}
}

// Release drops this owner's reference. Further calls are no-ops.
func (g *Group) Release() {
	g.handle.Release()
}
