// Package transcoder moves values across the native ABI boundary.
//
// It covers the three codecs the bindings compose:
//
//   - Scalars: Go primitives to and from wasm32 core values (Flatten, Lift)
//     and linear memory (Load), keyed by WIT primitive types.
//   - Result envelopes: the caller-owned receive buffer of a fallible call.
//     The payload sits at offset 0 and the is_ok tag byte follows it.
//   - Slices and writeables: strings become (ptr, len) pairs in linear
//     memory, UTF-8 as a single copy and UTF-16 through a transcoded buffer;
//     output text is written by the core into a native writeable that the
//     host creates before the call, reads once, and destroys.
//
// Receive buffer layouts:
//
//	result<handle, error>   payload u32 @0, tag u8 @4, size 5, align 4
//	result<f64, unit>       payload f64 @0, tag u8 @8, size 9, align 8
//	result<unit, unit>      tag u8 @0, size 1, align 1
//
// Scratch allocations are tracked in an AllocationList and freed on every
// exit path. An allocation the result borrows is detached from the list and
// handed to the caller to own.
package transcoder
