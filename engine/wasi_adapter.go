package engine

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	wasiModule = "wasi_snapshot_preview1"
	envModule  = "env"
)

// InstantiateWASI instantiates WASI preview1, which Rust builds of the core
// import for the allocator and panics.
func InstantiateWASI(ctx context.Context, r wazero.Runtime) (api.Closer, error) {
	return wasi_snapshot_preview1.Instantiate(ctx, r)
}

var consoleLevels = []struct {
	name  string
	level zapcore.Level
}{
	{"diplomat_console_debug_js", zapcore.DebugLevel},
	{"diplomat_console_info_js", zapcore.InfoLevel},
	{"diplomat_console_log_js", zapcore.InfoLevel},
	{"diplomat_console_warn_js", zapcore.WarnLevel},
	{"diplomat_console_error_js", zapcore.ErrorLevel},
}

// InstantiateEnv instantiates the env host module: the console imports log
// through the engine logger, and diplomat_throw_error_js aborts the call.
func InstantiateEnv(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(envModule)
	params := []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}

	for _, c := range consoleLevels {
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
				msg := readGuestString(mod, stack)
				if ce := Logger().Check(c.level, "core console"); ce != nil {
					ce.Write(zap.String("import", c.name), zap.String("message", msg))
				}
			}), params, nil).
			Export(c.name)
	}

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			msg := readGuestString(mod, stack)
			Logger().Warn("core threw", zap.String("message", msg))
			panic(fmt.Errorf("core error: %s", msg))
		}), params, nil).
		Export("diplomat_throw_error_js")

	return builder.Instantiate(ctx)
}

func readGuestString(mod api.Module, stack []uint64) string {
	mem := mod.Memory()
	if mem == nil {
		return ""
	}
	b, ok := mem.Read(api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	if !ok {
		return "<out of bounds>"
	}
	return string(b)
}
