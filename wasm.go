package icubridge

import "context"

// Memory represents the native core's linear memory
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU16(offset uint32, value uint16) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
}

// MemorySizer provides the current size of linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates memory in linear memory through diplomat_alloc/diplomat_free.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}

// Core is a loaded native core exposing the flat C-style ABI.
//
// Arguments and results use the wasm32 value encoding: i32 values occupy the
// low 32 bits of a uint64, floats are passed as their IEEE-754 bit patterns.
// A Core is not safe for concurrent calls; callers serialize access.
type Core interface {
	Memory() Memory
	Allocator() Allocator
	Has(symbol string) bool
	Call(ctx context.Context, symbol string, args ...uint64) ([]uint64, error)
	Close(ctx context.Context) error
}
