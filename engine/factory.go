package engine

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
)

// Constructor creates a ready-to-use backend.
type Constructor func() API

// preference orders backends for Default: native engines first.
var preference = []string{"jsc", "gojs"}

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

// Register makes a backend available under name. Backends call it from init;
// registering a name twice replaces the earlier constructor.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// New creates the backend registered under name.
func New(name string) (API, error) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()
	if !ok || ctor == nil {
		return nil, errors.NotFound(errors.PhaseEngine, "engine", name)
	}
	Logger().Debug("engine created", zap.String("engine", name))
	return ctor(), nil
}

// Names lists registered backends in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the name of the preferred registered backend, or "" when
// none is linked in.
func Default() string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, name := range preference {
		if _, ok := registry[name]; ok {
			return name
		}
	}
	for name := range registry {
		return name
	}
	return ""
}
