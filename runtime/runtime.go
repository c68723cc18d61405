package runtime

import (
	"context"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	icubridge "github.com/wippyai/icu-bridge"
	"github.com/wippyai/icu-bridge/binding"
	"github.com/wippyai/icu-bridge/engine"
	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/native"
	"github.com/wippyai/icu-bridge/resource"
)

// Option customizes New.
type Option func(*options)

type options struct {
	core      icubridge.Core
	reclaimer resource.Reclaimer
	logger    *zap.Logger
}

// WithCore runs the runtime on an already loaded core instead of the
// configured backend. The runtime takes ownership of it.
func WithCore(c icubridge.Core) Option {
	return func(o *options) { o.core = c }
}

// WithReclaimer overrides the configured reclamation mode.
func WithReclaimer(r resource.Reclaimer) Option {
	return func(o *options) { o.reclaimer = r }
}

// WithLogger overrides the logger built from Config.LogLevel.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Runtime owns a core, the tracker of the objects it hands out, and the
// logging of both.
type Runtime struct {
	cfg     Config
	core    icubridge.Core
	module  *Module
	tracker *resource.Tracker
	log     *zap.Logger
	closed  atomic.Bool
}

// New validates cfg, loads the configured core and prepares a tracker.
func New(ctx context.Context, cfg Config, opts ...Option) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		var err error
		if log, err = newLogger(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	SetLogger(log)
	engine.SetLogger(log.Named("engine"))
	native.SetLogger(log.Named("native"))
	binding.SetLogger(log.Named("binding"))

	r := &Runtime{cfg: cfg, core: o.core, log: log}
	if r.core == nil {
		if err := r.load(ctx); err != nil {
			return nil, err
		}
	}

	reclaimer := o.reclaimer
	if reclaimer == nil && cfg.Reclaim == ReclaimManual {
		reclaimer = resource.NewManualReclaimer()
	}
	r.tracker = resource.NewTracker(reclaimer)
	r.tracker.Subscribe(&lifecycleLogger{log: log.Named("resource")})

	log.Info("runtime ready",
		zap.String("backend", string(cfg.Backend)),
		zap.String("reclaim", string(cfg.Reclaim)),
		zap.Bool("custom_core", o.core != nil))
	return r, nil
}

func (r *Runtime) load(ctx context.Context) error {
	switch r.cfg.Backend {
	case BackendWazero:
		mod, err := LoadModuleFile(ctx, r.cfg.ModulePath, r.cfg.MemoryLimitPages)
		if err != nil {
			return err
		}
		core, err := mod.Instantiate(ctx)
		if err != nil {
			_ = mod.Close(ctx)
			return err
		}
		r.module, r.core = mod, core
	default:
		r.core = native.New(native.WithMemoryLimit(r.cfg.MemoryLimitPages))
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Config("log level", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.Encoding = "console"
	zc.Sampling = nil
	log, err := zc.Build()
	if err != nil {
		return nil, errors.Config("build logger", err)
	}
	return log, nil
}

// Config returns the configuration the runtime was created with.
func (r *Runtime) Config() Config { return r.cfg }

// Core returns the loaded core.
func (r *Runtime) Core() icubridge.Core { return r.core }

// Tracker returns the tracker of every object created through Bind.
func (r *Runtime) Tracker() *resource.Tracker { return r.tracker }

// Manual returns the manual reclaimer, or nil when reclamation follows
// the garbage collector.
func (r *Runtime) Manual() *resource.ManualReclaimer {
	m, _ := r.tracker.Reclaimer().(*resource.ManualReclaimer)
	return m
}

// Bind checks that the core exports every symbol catalog needs and returns
// an invoker sharing the runtime's tracker.
func (r *Runtime) Bind(catalog *binding.Catalog) (*binding.Invoker, error) {
	if r.closed.Load() {
		return nil, errors.NotInitialized(errors.PhaseLoad, "runtime")
	}
	inv, err := binding.NewInvoker(r.core, r.tracker, catalog,
		binding.WithWriteableCapacity(r.cfg.WriteableCapacity))
	if err != nil {
		r.log.Warn("bind failed", zap.Error(err))
		return nil, err
	}
	r.log.Debug("catalog bound",
		zap.Int("methods", len(catalog.Methods())),
		zap.Strings("classes", catalog.Classes()))
	return inv, nil
}

// Close stops reclamation and releases the core. Objects still alive are
// abandoned with the core's memory.
func (r *Runtime) Close(ctx context.Context) error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	stats := r.tracker.Stats()
	r.log.Debug("runtime closing",
		zap.Int("live", r.tracker.Len()),
		zap.Uint64("registered", stats.Registered),
		zap.Uint64("released", stats.Released))

	err := multierr.Combine(
		r.tracker.Close(),
		r.core.Close(ctx),
	)
	if r.module != nil {
		err = multierr.Append(err, r.module.Close(ctx))
	}
	_ = r.log.Sync()
	return err
}
