// Package engine runs WebAssembly builds of the native core on wazero.
//
// # Architecture
//
//	WazeroEngine - owns the wazero runtime and its host modules
//	WazeroModule - a compiled core module
//	WazeroCore   - an instance implementing icubridge.Core
//
// # Instantiation Flow
//
//  1. WazeroEngine.LoadModule() compiles the module
//  2. WazeroModule.Instantiate() instantiates the host modules the core
//     imports (wasi_snapshot_preview1, env) and then the core itself
//  3. WazeroCore.Call() invokes exports with flat i32/i64/f64 arguments
//
// The core must export memory, diplomat_alloc(size, align) and
// diplomat_free(ptr, size, align); the bridge allocates receive buffers and
// string arguments through them.
//
// # Host Imports
//
// The env module provides diplomat_console_{debug,info,log,warn,error}_js,
// which log through Logger(), and diplomat_throw_error_js, which aborts the
// current call with an error.
//
// # Thread Safety
//
// WazeroEngine and WazeroModule are safe for concurrent use. A WazeroCore
// serializes calls and allocator use on one mutex.
//
// Most users should use the runtime package, which selects a backend from
// configuration.
package engine
