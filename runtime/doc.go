// Package runtime assembles a core, a tracker and logging into one handle
// that the typed surface binds against.
//
// # Quick Start
//
//	ctx := context.Background()
//	rt, err := runtime.New(ctx, runtime.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	lib, err := icu4x.New(rt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Backends
//
// The native backend is the in-process reference core. The wazero backend
// loads a wasm build of the core from Config.ModulePath; every entry point
// the bound catalog names must be exported, or Bind fails with a
// MissingSymbolsError listing them.
//
// # Configuration
//
// Config is usually read from YAML:
//
//	backend: wazero
//	module_path: ./icu4x.wasm
//	reclaim: gc
//	memory_limit_pages: 512
//	writeable_capacity: 64
//	log_level: info
//
// Fields left out keep their DefaultConfig values.
//
// # Reclamation
//
// With reclaim set to gc, objects that become unreachable are released from
// Go runtime cleanups. With manual, releases queue on the reclaimer
// returned by Manual until the caller collects or flushes them; tests use it
// to force reclamation in a chosen order.
//
// # Thread Safety
//
// Runtime is safe for concurrent use. Every native call, including
// destructors run by the garbage collector, is serialized by the invoker.
//
// # Shutdown
//
// Close disarms pending reclamation before it releases the core. Objects
// still alive at that point are abandoned together with the core's memory.
package runtime
