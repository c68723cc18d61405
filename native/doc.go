// Package native is an in-process native core speaking the same flat ABI as
// the WebAssembly build.
//
// Objects are allocated in an emulated linear memory, so handles are
// addresses and every argument is checked against live allocations: a
// borrowed buffer freed too early, a receive buffer that was never
// allocated, or a destroyed handle each trap the call and are recorded as a
// Fault instead of corrupting the host. Tests use LiveObjects,
// LiveAllocations and Faults to assert that the bridge releases everything
// it creates.
//
// Locale data covers decimal symbols for en, de, fr, es, hi and ja.
package native
