package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
)

// DefaultDisplayDepth bounds how many object levels Value.String prints.
const DefaultDisplayDepth = 3

// Config selects a backend and the ambient settings for Open.
type Config struct {
	// Engine is a registered backend name. Empty selects engine.Default().
	Engine string
	// Logger receives runtime diagnostics. Nil uses the package logger.
	Logger *zap.Logger
	// DisplayDepth bounds nested object printing. Zero uses the default.
	DisplayDepth int
}

// DefaultConfig returns the configuration Open uses when nothing is set.
func DefaultConfig() Config {
	return Config{
		Engine:       engine.Default(),
		DisplayDepth: DefaultDisplayDepth,
	}
}

// Option adjusts a Group and every context created from it.
type Option func(*options)

type options struct {
	logger *zap.Logger
	depth  int
}

func defaultOptions() *options {
	return &options{depth: DefaultDisplayDepth}
}

func (o *options) log() *zap.Logger {
	if o == nil || o.logger == nil {
		return Logger()
	}
	return o.logger
}

func (o *options) displayDepth() int {
	if o == nil || o.depth <= 0 {
		return DefaultDisplayDepth
	}
	return o.depth
}

// WithLogger sends diagnostics for the group's contexts to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDisplayDepth sets how many object levels Value.String prints before
// eliding with {...}.
func WithDisplayDepth(depth int) Option {
	return func(o *options) { o.depth = depth }
}

// Open resolves the configured backend and creates a group on it.
func Open(cfg Config) (*Group, error) {
	name := cfg.Engine
	if name == "" {
		name = engine.Default()
	}
	if name == "" {
		return nil, errors.New(errors.PhaseEngine, errors.KindNotFound).
			Detail("no engine backend linked in").
			Build()
	}

	api, err := engine.New(name)
	if err != nil {
		return nil, err
	}

	var opts []Option
	if cfg.Logger != nil {
		opts = append(opts, WithLogger(cfg.Logger))
	}
	if cfg.DisplayDepth > 0 {
		opts = append(opts, WithDisplayDepth(cfg.DisplayDepth))
	}
	return NewGroup(api, opts...), nil
}
