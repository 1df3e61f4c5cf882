package runtime

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/wippyai/js-runtime/errors"
)

// Host is the interface for struct-based host modules. All exported
// methods (except Namespace) are bound as functions on a global object
// named by Namespace.
type Host interface {
	// Namespace returns the global name the functions are installed under,
	// e.g. "console". Empty installs them directly on the global object.
	Namespace() string
}

// ExplicitRegistrar lets a host provide exact function names when the
// automatic PascalCase-to-camelCase conversion does not fit.
type ExplicitRegistrar interface {
	Register() map[string]any
}

// HostRegistry collects host functions so they can be installed into any
// number of contexts.
type HostRegistry struct {
	funcs map[string]map[string]Func
	mu    sync.RWMutex
}

func NewHostRegistry() *HostRegistry {
	return &HostRegistry{
		funcs: make(map[string]map[string]Func),
	}
}

// RegisterHost binds the methods of h under its namespace.
func (r *HostRegistry) RegisterHost(h Host) error {
	ns := h.Namespace()

	handlers := make(map[string]any)
	if er, ok := h.(ExplicitRegistrar); ok {
		for name, fn := range er.Register() {
			handlers[name] = fn
		}
	} else {
		rv := reflect.ValueOf(h)
		rt := rv.Type()
		for i := 0; i < rt.NumMethod(); i++ {
			method := rt.Method(i)
			if !method.IsExported() || method.Name == "Namespace" {
				continue
			}
			handlers[toCamelCase(method.Name)] = rv.Method(i).Interface()
		}
	}

	for name, handler := range handlers {
		if err := r.RegisterFunc(ns, name, handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterFunc adds one function. fn is either a Func or a function
// accepted by Bind.
func (r *HostRegistry) RegisterFunc(namespace, name string, fn any) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseRegister, "function name cannot be empty")
	}

	f, ok := fn.(Func)
	if !ok {
		if raw, isRaw := fn.(func(*Context, *Object, []Value) (Value, error)); isRaw {
			f = raw
		} else {
			bound, err := Bind(fn)
			if err != nil {
				return errors.Registration(qualified(namespace, name), err)
			}
			f = bound
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs[namespace] == nil {
		r.funcs[namespace] = make(map[string]Func)
	}
	r.funcs[namespace][name] = f
	return nil
}

// Names lists the registered functions as namespace.name, sorted.
func (r *HostRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for ns, funcs := range r.funcs {
		for name := range funcs {
			names = append(names, qualified(ns, name))
		}
	}
	sort.Strings(names)
	return names
}

// Install creates the registered functions in ctx. Namespace objects that
// already exist on the global object are extended rather than replaced.
func (r *HostRegistry) Install(ctx *Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	global := ctx.GlobalObject()
	for ns, funcs := range r.funcs {
		target := global
		if ns != "" {
			obj, err := namespaceObject(ctx, global, ns)
			if err != nil {
				return errors.Registration(ns, err)
			}
			target = obj
		}
		for name, f := range funcs {
			fn, err := ctx.MakeFunction(name, f)
			if err != nil {
				return errors.Registration(qualified(ns, name), err)
			}
			if err := target.SetProperty(name, fn.Value()); err != nil {
				return errors.Registration(qualified(ns, name), err)
			}
		}
	}
	return nil
}

func namespaceObject(ctx *Context, global *Object, ns string) (*Object, error) {
	existing, err := global.GetProperty(ns)
	if err != nil {
		return nil, err
	}
	if existing.Type() == TypeObject {
		return existing.ToObject()
	}
	obj := ctx.NewObject()
	if err := global.SetProperty(ns, obj.Value()); err != nil {
		return nil, err
	}
	return obj, nil
}

func qualified(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "." + name
}

// toCamelCase converts PascalCase to camelCase.
// Handles leading acronyms: HTTPGet -> httpGet, URL -> url
func toCamelCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return s
	}

	end := 1
	for end < len(runes) && unicode.IsUpper(runes[end]) {
		end++
	}
	// Last uppercase before lowercase starts the next word
	if end > 1 && end < len(runes) && unicode.IsLower(runes[end]) {
		end--
	}

	var b strings.Builder
	for i, r := range runes {
		if i < end {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
