package gojs

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/resource"
)

// Name is the name the backend registers under.
const Name = "gojs"

func init() {
	engine.Register(Name, func() engine.API { return New() })
}

// Resource type IDs in the backend's handle table.
const (
	typeGroup uint32 = iota + 1
	typeContext
	typeString
	typeValue
	typeClass
	typeNames
)

type group struct{}

type globalContext struct {
	rt    *goja.Runtime
	ref   engine.GlobalContextRef
	group engine.GroupRef

	// arena holds the value handles created in this context. Handles made
	// during a native call are trimmed when it returns; the rest are freed
	// together when the context goes away.
	arena   []resource.Handle
	private map[*goja.Object]uintptr
	owned   []classObject
	hasProp goja.Callable
}

type classObject struct {
	ref   engine.ObjectRef
	class *class
}

type value struct {
	v         goja.Value
	ctx       *globalContext
	protected int
	// pinned values belong to the context itself, such as class objects.
	pinned bool
}

type jsString struct {
	s string
}

type class struct {
	def engine.ClassDefinition
}

type nameArray struct {
	names []engine.StringRef
}

// Backend implements engine.API on top of goja. Every reference it hands
// out is a handle in one resource table, so reference counts are real and
// observable through RefCount and Live.
type Backend struct {
	table    *resource.UnifiedTable
	groups   *resource.Typed[*group]
	contexts *resource.Typed[*globalContext]
	strings  *resource.Typed[*jsString]
	values   *resource.Typed[*value]
	classes  *resource.Typed[*class]
	names    *resource.Typed[*nameArray]
}

var _ engine.API = (*Backend)(nil)

// New creates an empty backend.
func New() *Backend {
	table := resource.NewTable()
	return &Backend{
		table:    table,
		groups:   resource.NewTyped[*group](table, typeGroup),
		contexts: resource.NewTyped[*globalContext](table, typeContext),
		strings:  resource.NewTyped[*jsString](table, typeString),
		values:   resource.NewTyped[*value](table, typeValue),
		classes:  resource.NewTyped[*class](table, typeClass),
		names:    resource.NewTyped[*nameArray](table, typeNames),
	}
}

func (b *Backend) Name() string { return Name }

// RefCount returns the current reference count of a group, global context or
// string reference, and 0 once it has been freed.
func (b *Backend) RefCount(ref uintptr) uint32 {
	n, _ := b.table.RefCount(resource.Handle(ref))
	return n
}

// Live returns the number of live refcounted resources: groups, contexts,
// strings, classes and property name arrays. Values are not counted; they
// belong to their context.
func (b *Backend) Live() int {
	return b.table.Len() - b.values.Len()
}

// Subscribe forwards resource lifecycle events to o.
func (b *Backend) Subscribe(o resource.Observer) {
	b.table.Subscribe(o)
}

func (b *Backend) ContextGroupCreate() engine.GroupRef {
	return engine.GroupRef(b.groups.Insert(&group{}))
}

func (b *Backend) ContextGroupRetain(g engine.GroupRef) engine.GroupRef {
	if !b.groups.Retain(resource.Handle(g)) {
		return 0
	}
	return g
}

func (b *Backend) ContextGroupRelease(g engine.GroupRef) {
	b.groups.Release(resource.Handle(g))
}

// GlobalContextCreateInGroup creates a context with its own goja runtime. A
// null group gets a private one. globalClass is accepted for signature
// compatibility; the global object is always a plain object.
func (b *Backend) GlobalContextCreateInGroup(g engine.GroupRef, globalClass engine.ClassRef) engine.GlobalContextRef {
	if g.IsNull() {
		g = b.ContextGroupCreate()
	} else if b.ContextGroupRetain(g).IsNull() {
		return 0
	}

	rt := goja.New()
	gc := &globalContext{
		rt:      rt,
		group:   g,
		private: make(map[*goja.Object]uintptr),
	}
	if fn, err := rt.RunString("(function (o, k) { return k in o; })"); err == nil {
		gc.hasProp, _ = goja.AssertFunction(fn)
	}
	if !globalClass.IsNull() {
		engine.Logger().Debug("gojs: global class ignored", zap.Stringer("class", globalClass))
	}
	gc.ref = engine.GlobalContextRef(b.contexts.Insert(gc))
	return gc.ref
}

func (b *Backend) GlobalContextRetain(ctx engine.GlobalContextRef) engine.GlobalContextRef {
	if !b.contexts.Retain(resource.Handle(ctx)) {
		return 0
	}
	return ctx
}

func (b *Backend) GlobalContextRelease(ctx engine.GlobalContextRef) {
	gc, ok := b.contexts.Release(resource.Handle(ctx))
	if !ok {
		return
	}
	b.destroy(gc)
}

// destroy finalizes class objects while their private data is still
// readable, then frees the value arena and the group reference.
func (b *Backend) destroy(gc *globalContext) {
	for _, co := range gc.owned {
		if co.class.def.Finalize != nil {
			co.class.def.Finalize(co.ref)
		}
	}
	for _, h := range gc.arena {
		b.values.Remove(h)
	}
	engine.Logger().Debug("gojs: context destroyed",
		zap.Int("values", len(gc.arena)),
		zap.Int("finalized", len(gc.owned)))
	gc.arena = nil
	gc.owned = nil
	gc.private = nil
	b.ContextGroupRelease(gc.group)
}

func (b *Backend) context(ctx engine.ContextRef) *globalContext {
	gc, ok := b.contexts.Get(resource.Handle(ctx))
	if !ok {
		panic("gojs: invalid context " + ctx.String())
	}
	return gc
}

func (b *Backend) ContextGetGlobalObject(ctx engine.ContextRef) engine.ObjectRef {
	gc := b.context(ctx)
	return b.wrap(gc, gc.rt.GlobalObject()).Object()
}

func (b *Backend) ContextGetGlobalContext(ctx engine.ContextRef) engine.GlobalContextRef {
	if _, ok := b.contexts.Get(resource.Handle(ctx)); !ok {
		return 0
	}
	return engine.GlobalContextRef(ctx)
}

func (b *Backend) ContextGetGroup(ctx engine.ContextRef) engine.GroupRef {
	return b.context(ctx).group
}

// GarbageCollect is a no-op: goja objects are reclaimed by the Go collector
// once their context is released.
func (b *Backend) GarbageCollect(ctx engine.ContextRef) {}
