package runtime

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/icu-bridge/engine"
	"github.com/wippyai/icu-bridge/errors"
)

// Module is a compiled wasm build of the core together with the engine
// that hosts it.
type Module struct {
	engine *engine.WazeroEngine
	module *engine.WazeroModule
}

// LoadModule compiles a wasm build of the core. memoryLimitPages caps the
// instance's linear memory; 0 keeps the engine default.
func LoadModule(ctx context.Context, wasm []byte, memoryLimitPages uint32) (*Module, error) {
	eng, err := engine.NewWazeroEngineWithConfig(ctx, &engine.Config{MemoryLimitPages: memoryLimitPages})
	if err != nil {
		return nil, errors.Load("create engine", err)
	}
	mod, err := eng.LoadModule(ctx, wasm)
	if err != nil {
		_ = eng.Close(ctx)
		return nil, err
	}
	Logger().Debug("core module compiled",
		zap.Strings("imports", mod.Imports()),
		zap.Int("exports", len(mod.ExportNames())))
	return &Module{engine: eng, module: mod}, nil
}

// LoadModuleFile reads and compiles a wasm build of the core.
func LoadModuleFile(ctx context.Context, path string, memoryLimitPages uint32) (*Module, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return LoadModule(ctx, wasm, memoryLimitPages)
}

// Exports lists the functions the module exports.
func (m *Module) Exports() []string {
	return m.module.ExportNames()
}

// Instantiate creates a core instance. Host modules the core imports are
// provided by the engine.
func (m *Module) Instantiate(ctx context.Context) (*engine.WazeroCore, error) {
	return m.module.InstantiateWithConfig(ctx, &engine.InstanceConfig{})
}

// Close releases the engine and every instance created from it.
func (m *Module) Close(ctx context.Context) error {
	return m.engine.Close(ctx)
}
