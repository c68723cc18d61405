package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	icubridge "github.com/wippyai/icu-bridge"
	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/schema"
)

// WazeroEngine hosts WebAssembly builds of the native core.
type WazeroEngine struct {
	runtime    wazero.Runtime
	hostInitMu sync.Mutex
	wasiReady  atomic.Bool
	envReady   atomic.Bool
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32
}

// NewWazeroEngine creates a new wazero-based engine
func NewWazeroEngine(ctx context.Context) (*WazeroEngine, error) {
	return NewWazeroEngineWithConfig(ctx, nil)
}

// NewWazeroEngineWithConfig creates a new engine with custom configuration
func NewWazeroEngineWithConfig(ctx context.Context, cfg *Config) (*WazeroEngine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &WazeroEngine{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}, nil
}

// LoadModule compiles a core module.
func (e *WazeroEngine) LoadModule(ctx context.Context, wasmBytes []byte) (*WazeroModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile core module", err)
	}
	return &WazeroModule{engine: e, compiled: compiled}, nil
}

func (e *WazeroEngine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// InitWASI instantiates the WASI singleton for this engine's runtime.
// Safe for concurrent calls from multiple modules sharing the same engine.
func (e *WazeroEngine) InitWASI(ctx context.Context) error {
	return e.initHost(&e.wasiReady, wasiModule, func() error {
		_, err := InstantiateWASI(ctx, e.runtime)
		return err
	})
}

// InitEnv instantiates the env host module once per runtime.
func (e *WazeroEngine) InitEnv(ctx context.Context) error {
	return e.initHost(&e.envReady, envModule, func() error {
		_, err := InstantiateEnv(ctx, e.runtime)
		return err
	})
}

func (e *WazeroEngine) initHost(done *atomic.Bool, name string, init func() error) error {
	if done.Load() {
		return nil
	}

	e.hostInitMu.Lock()
	defer e.hostInitMu.Unlock()

	if done.Load() {
		return nil
	}
	if e.runtime.Module(name) == nil {
		if err := init(); err != nil && e.runtime.Module(name) == nil {
			return errors.Instantiation(fmt.Errorf("instantiate %s: %w", name, err))
		}
	}
	done.Store(true)
	return nil
}

// WazeroModule is a compiled core module
type WazeroModule struct {
	engine   *WazeroEngine
	compiled wazero.CompiledModule
}

// Imports returns the module names the core imports from.
func (m *WazeroModule) Imports() []string {
	seen := make(map[string]bool)
	var out []string
	for _, def := range m.compiled.ImportedFunctions() {
		mod, _, ok := def.Import()
		if ok && !seen[mod] {
			seen[mod] = true
			out = append(out, mod)
		}
	}
	return out
}

// ExportNames returns the names of the exported functions.
func (m *WazeroModule) ExportNames() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	return names
}

func (m *WazeroModule) initHostModules(ctx context.Context) error {
	for _, mod := range m.Imports() {
		var err error
		switch mod {
		case wasiModule:
			err = m.engine.InitWASI(ctx)
		case envModule:
			err = m.engine.InitEnv(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// InstanceConfig holds configuration for module instantiation
type InstanceConfig struct {
	Name string
}

// Instantiate creates a core instance.
func (m *WazeroModule) Instantiate(ctx context.Context) (*WazeroCore, error) {
	return m.InstantiateWithConfig(ctx, nil)
}

// InstantiateWithConfig creates a core instance with custom configuration.
// The instance must export memory, diplomat_alloc and diplomat_free.
func (m *WazeroModule) InstantiateWithConfig(ctx context.Context, cfg *InstanceConfig) (*WazeroCore, error) {
	if err := m.initHostModules(ctx); err != nil {
		return nil, err
	}

	modConfig := wazero.NewModuleConfig()
	if cfg != nil && cfg.Name != "" {
		modConfig = modConfig.WithName(cfg.Name)
	} else {
		modConfig = modConfig.WithName("") // anonymous for parallel instantiation
	}

	instance, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, modConfig)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	var missing []string
	allocFn := instance.ExportedFunction(schema.Alloc)
	if allocFn == nil {
		missing = append(missing, schema.Alloc)
	}
	freeFn := instance.ExportedFunction(schema.Free)
	if freeFn == nil {
		missing = append(missing, schema.Free)
	}
	mem := instance.Memory()
	if mem == nil {
		missing = append(missing, "memory")
	}
	if len(missing) > 0 {
		_ = instance.Close(ctx)
		return nil, errors.NewMissingSymbolsError(missing)
	}

	c := &WazeroCore{
		instance:  instance,
		memory:    &WazeroMemory{mem: mem},
		funcCache: make(map[string]api.Function),
		stackBuf:  make([]uint64, 16),
	}
	c.alloc = &wazeroAllocator{core: c, allocFn: allocFn, freeFn: freeFn}
	return c, nil
}

// WazeroCore is an instantiated core. Calls and allocator use are
// serialized on one mutex; the guest is single-threaded.
type WazeroCore struct {
	instance  api.Module
	memory    *WazeroMemory
	alloc     *wazeroAllocator
	funcCache map[string]api.Function
	stackBuf  []uint64
	mu        sync.Mutex
}

func (c *WazeroCore) Memory() icubridge.Memory {
	return c.memory
}

func (c *WazeroCore) Allocator() icubridge.Allocator {
	return c.alloc
}

// Has reports whether the instance exports a function named symbol.
func (c *WazeroCore) Has(symbol string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.function(symbol) != nil
}

func (c *WazeroCore) function(name string) api.Function {
	if c.instance == nil {
		return nil
	}
	if fn, ok := c.funcCache[name]; ok {
		return fn
	}
	fn := c.instance.ExportedFunction(name)
	if fn != nil {
		c.funcCache[name] = fn
	}
	return fn
}

// Call invokes an exported function with flat arguments.
func (c *WazeroCore) Call(ctx context.Context, symbol string, args ...uint64) ([]uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn := c.function(symbol)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseCall, "export", symbol)
	}
	def := fn.Definition()
	params, results := len(def.ParamTypes()), len(def.ResultTypes())
	if len(args) != params {
		return nil, errors.InvalidInput(errors.PhaseCall,
			fmt.Sprintf("%s takes %d arguments, got %d", symbol, params, len(args)))
	}

	stack := c.stackBuf
	if n := max(params, results); n > len(stack) {
		stack = make([]uint64, n)
	}
	copy(stack, args)

	if err := fn.CallWithStack(ctx, stack); err != nil {
		return nil, err
	}
	if results == 0 {
		return nil, nil
	}
	return append([]uint64(nil), stack[:results]...), nil
}

// Close closes the instance.
func (c *WazeroCore) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.instance == nil {
		return nil
	}
	err := c.instance.Close(ctx)
	c.instance = nil
	c.funcCache = nil
	return err
}

// wazeroAllocator implements icubridge.Allocator over diplomat_alloc and
// diplomat_free.
type wazeroAllocator struct {
	core    *WazeroCore
	allocFn api.Function
	freeFn  api.Function
	stack   [3]uint64
}

func (a *wazeroAllocator) Alloc(size, align uint32) (uint32, error) {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	if a.core.instance == nil {
		return 0, errors.NotInitialized(errors.PhaseEncode, "core instance")
	}

	a.stack[0] = uint64(size)
	a.stack[1] = uint64(align)
	if err := a.allocFn.CallWithStack(context.Background(), a.stack[:2]); err != nil {
		return 0, err
	}
	return uint32(a.stack[0]), nil
}

func (a *wazeroAllocator) Free(ptr, size, align uint32) {
	if ptr == 0 {
		return
	}
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	if a.core.instance == nil {
		return
	}

	a.stack[0] = uint64(ptr)
	a.stack[1] = uint64(size)
	a.stack[2] = uint64(align)
	if err := a.freeFn.CallWithStack(context.Background(), a.stack[:3]); err != nil {
		Logger().Warn("diplomat_free failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}

// WazeroMemory wraps wazero memory to implement icubridge.Memory
type WazeroMemory struct {
	mem api.Memory
}

func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

func (m *WazeroMemory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU16(offset uint32) (uint16, error) {
	v, ok := m.mem.ReadUint16Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return v, nil
}

func (m *WazeroMemory) WriteU8(offset uint32, value uint8) error {
	if !m.mem.WriteByte(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m *WazeroMemory) WriteU16(offset uint32, value uint16) error {
	if !m.mem.WriteUint16Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m *WazeroMemory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m *WazeroMemory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m *WazeroMemory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

// Compile-time checks
var (
	_ icubridge.Memory      = (*WazeroMemory)(nil)
	_ icubridge.MemorySizer = (*WazeroMemory)(nil)
	_ icubridge.Allocator   = (*wazeroAllocator)(nil)
	_ icubridge.Core        = (*WazeroCore)(nil)
)
