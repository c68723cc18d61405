package runtime

import (
	"context"
	"os"
	"path/filepath"
	goruntime "runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/icu4x"
	"github.com/wippyai/icu-bridge/native"
	"github.com/wippyai/icu-bridge/schema"
)

// testCore exports memory, diplomat_alloc, diplomat_free and add(i32, i32),
// and imports env.diplomat_console_log_js. It is the engine package's test
// module.
var testCore = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x15, 0x04, 0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f, 0x60, 0x03, 0x7f,
	0x7f, 0x7f, 0x00, 0x60, 0x02, 0x7f, 0x7f, 0x00, 0x60, 0x00, 0x00,
	0x02, 0x1f, 0x01, 0x03, 0x65, 0x6e, 0x76, 0x17, 0x64, 0x69, 0x70, 0x6c,
	0x6f, 0x6d, 0x61, 0x74, 0x5f, 0x63, 0x6f, 0x6e, 0x73, 0x6f, 0x6c, 0x65,
	0x5f, 0x6c, 0x6f, 0x67, 0x5f, 0x6a, 0x73, 0x00, 0x02,
	0x03, 0x06, 0x05, 0x00, 0x01, 0x00, 0x03, 0x03,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x06, 0x07, 0x01, 0x7f, 0x01, 0x41, 0x80, 0x08, 0x0b,
	0x07, 0x40, 0x06, 0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00,
	0x0e, 0x64, 0x69, 0x70, 0x6c, 0x6f, 0x6d, 0x61, 0x74, 0x5f, 0x61, 0x6c,
	0x6c, 0x6f, 0x63, 0x00, 0x01, 0x0d, 0x64, 0x69, 0x70, 0x6c, 0x6f, 0x6d,
	0x61, 0x74, 0x5f, 0x66, 0x72, 0x65, 0x65, 0x00, 0x02, 0x03, 0x61, 0x64,
	0x64, 0x00, 0x03, 0x05, 0x68, 0x65, 0x6c, 0x6c, 0x6f, 0x00, 0x04, 0x04,
	0x62, 0x6f, 0x6f, 0x6d, 0x00, 0x05,
	0x0a, 0x35, 0x05, 0x1b, 0x01, 0x01, 0x7f, 0x23, 0x00, 0x20, 0x01, 0x6a,
	0x41, 0x01, 0x6b, 0x41, 0x00, 0x20, 0x01, 0x6b, 0x71, 0x22, 0x02, 0x20,
	0x00, 0x6a, 0x24, 0x00, 0x20, 0x02, 0x0b, 0x02, 0x00, 0x0b, 0x07, 0x00,
	0x20, 0x00, 0x20, 0x01, 0x6a, 0x0b, 0x08, 0x00, 0x41, 0x10, 0x41, 0x02,
	0x10, 0x00, 0x0b, 0x03, 0x00, 0x00, 0x0b,
	0x0b, 0x08, 0x01, 0x00, 0x41, 0x10, 0x0b, 0x02, 0x68, 0x69,
}

var configErr = &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendNative, cfg.Backend)
	assert.Equal(t, ReclaimGC, cfg.Reclaim)
	assert.Equal(t, uint32(64), cfg.WriteableCapacity)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
backend: native
reclaim: manual
writeable_capacity: 16
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, ReclaimManual, cfg.Reclaim)
	assert.Equal(t, uint32(16), cfg.WriteableCapacity)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint32(0), cfg.MemoryLimitPages)

	empty, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), empty)

	tests := map[string]string{
		"unknown key":         "backend: native\nthreads: 4\n",
		"unknown backend":     "backend: wasmtime\n",
		"wazero without path": "backend: wazero\n",
		"bad reclaim":         "reclaim: never\n",
		"zero capacity":       "writeable_capacity: 0\n",
		"bad log level":       "log_level: chatty\n",
		"too many pages":      "memory_limit_pages: 70000\n",
		"not yaml":            "backend: [native\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.ErrorIs(t, err, configErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: wazero\nmodule_path: core.wasm\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendWazero, cfg.Backend)
	assert.Equal(t, "core.wasm", cfg.ModulePath)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, configErr)
}

func newRuntime(t *testing.T, cfg Config, opts ...Option) (*Runtime, *observer.ObservedLogs) {
	t.Helper()
	zc, logs := observer.New(zap.DebugLevel)
	opts = append([]Option{WithLogger(zap.New(zc))}, opts...)
	rt, err := New(context.Background(), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(context.Background()) })
	return rt, logs
}

func TestRuntimeNative(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Reclaim = ReclaimManual
	rt, logs := newRuntime(t, cfg)
	require.NotNil(t, rt.Manual())

	lib, err := icu4x.New(rt)
	require.NoError(t, err)

	loc, err := lib.LocaleFromString(ctx, "de")
	require.NoError(t, err)
	f, err := lib.DecimalFormatterWithGroupingStrategy(ctx, loc, icu4x.GroupingAuto)
	require.NoError(t, err)
	d, err := lib.DecimalFromInt64(ctx, -1234567)
	require.NoError(t, err)
	s, err := f.Format(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "-1.234.567", s)
	assert.Equal(t, 3, rt.Tracker().Len())

	require.NoError(t, f.Destroy())
	require.NoError(t, d.Destroy())
	assert.Equal(t, 1, rt.Manual().Pending(), "only the locale is left")
	assert.Equal(t, 1, rt.Tracker().Len())
	assert.Equal(t, 1, rt.Manual().Flush())
	assert.Equal(t, 0, rt.Tracker().Len())
	assert.Empty(t, rt.Core().(*native.Core).LiveObjects())

	assert.NotZero(t, logs.FilterMessage("object registered").FilterField(zap.String("class", "Locale")).Len())
	assert.NotZero(t, logs.FilterMessage("object reclaimed").Len())
	assert.Equal(t, 1, logs.FilterMessage("runtime ready").Len())

	require.NoError(t, rt.Close(ctx))
	require.NoError(t, rt.Close(ctx), "close is idempotent")
	_, err = rt.Bind(nil)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotInitialized})
}

func TestRuntimeGarbageCollected(t *testing.T) {
	ctx := context.Background()
	rt, _ := newRuntime(t, DefaultConfig())
	assert.Nil(t, rt.Manual())

	lib, err := icu4x.New(rt)
	require.NoError(t, err)

	func() {
		seg, err := lib.WordSegmenterAuto(ctx)
		require.NoError(t, err)
		it, err := seg.SegmentUTF8(ctx, "garbage collected words")
		require.NoError(t, err)
		b, err := it.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(0), b)
	}()

	core := rt.Core().(*native.Core)
	require.Eventually(t, func() bool {
		goruntime.GC()
		return rt.Tracker().Len() == 0 && len(core.LiveObjects()) == 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.Empty(t, core.Faults())
	assert.NotZero(t, rt.Tracker().Stats().Reclaimed)
}

func TestRuntimeWithCore(t *testing.T) {
	ctx := context.Background()
	core := native.New(native.WithWriteableLimit(4))
	cfg := DefaultConfig()
	cfg.WriteableCapacity = 2
	rt, _ := newRuntime(t, cfg, WithCore(core))
	assert.Same(t, core, rt.Core())

	lib, err := icu4x.New(rt)
	require.NoError(t, err)
	_, err = lib.NormalizeLocale(ctx, "en-latn-us")
	assert.Equal(t, icu4x.ErrWriteable, err)
	s, err := lib.NormalizeLocale(ctx, "de")
	require.NoError(t, err)
	assert.Equal(t, "de", s)

	require.NoError(t, rt.Close(ctx))
	_, err = core.Call(ctx, schema.LocaleUnknown)
	assert.Error(t, err, "the runtime owns the core")
}

func TestRuntimeWazero(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "core.wasm")
	require.NoError(t, os.WriteFile(path, testCore, 0o600))

	cfg := DefaultConfig()
	cfg.Backend = BackendWazero
	cfg.ModulePath = path
	cfg.MemoryLimitPages = 16
	rt, logs := newRuntime(t, cfg)

	assert.True(t, rt.Core().Has("add"))
	res, err := rt.Core().Call(ctx, "add", 40, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{42}, res)

	_, err = icu4x.New(rt)
	var missing *errors.MissingSymbolsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Symbols, schema.LocaleFromString)
	assert.NotContains(t, missing.Symbols, schema.Alloc)
	assert.Equal(t, 1, logs.FilterMessage("bind failed").Len())

	require.NoError(t, rt.Close(ctx))
}

func TestRuntimeLoadFailures(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.wasm")
	require.NoError(t, os.WriteFile(garbage, []byte("not wasm"), 0o600))

	tests := map[string]string{
		"missing file": filepath.Join(dir, "missing.wasm"),
		"not wasm":     garbage,
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Backend = BackendWazero
			cfg.ModulePath = path
			_, err := New(ctx, cfg, WithLogger(zap.NewNop()))
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindInvalidData})
		})
	}

	_, err := New(ctx, Config{Backend: BackendNative})
	assert.ErrorIs(t, err, configErr)
}
