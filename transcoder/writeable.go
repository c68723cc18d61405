package transcoder

import (
	"context"

	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/schema"
)

// Caller invokes native entry points.
type Caller interface {
	Call(ctx context.Context, symbol string, args ...uint64) ([]uint64, error)
}

// DefaultWriteableCapacity is the capacity hint passed on create.
const DefaultWriteableCapacity = 64

// ErrWriteableGrow is returned when the core could not grow a writeable
// while writing output.
var ErrWriteableGrow = &errors.Error{
	Phase:  errors.PhaseDecode,
	Kind:   errors.KindAllocation,
	Detail: "native writeable could not grow",
}

// Writeable is a native output buffer created by the host before a call.
// The core grows it as needed during the call; the host reads it once
// afterwards and destroys it.
type Writeable struct {
	caller Caller
	mem    Memory
	handle uint32
}

// NewWriteable creates a native writeable with the given capacity hint.
func NewWriteable(ctx context.Context, c Caller, mem Memory, capacity uint32) (*Writeable, error) {
	res, err := c.Call(ctx, schema.WriteableCreate, uint64(capacity))
	if err != nil {
		return nil, errors.Trap(schema.WriteableCreate, err)
	}
	if len(res) == 0 || uint32(res[0]) == 0 {
		return nil, errors.AllocationFailed(errors.PhaseEncode, capacity, 1)
	}
	return &Writeable{caller: c, mem: mem, handle: uint32(res[0])}, nil
}

// Arg returns the core argument that passes the writeable to a call.
func (w *Writeable) Arg() uint64 {
	return uint64(w.handle)
}

// String reads the text written into the writeable.
func (w *Writeable) String(ctx context.Context) (string, error) {
	res, err := w.caller.Call(ctx, schema.WriteableGetBytes, uint64(w.handle))
	if err != nil {
		return "", errors.Trap(schema.WriteableGetBytes, err)
	}
	if len(res) == 0 || uint32(res[0]) == 0 {
		return "", ErrWriteableGrow
	}
	ptr := uint32(res[0])

	res, err = w.caller.Call(ctx, schema.WriteableLen, uint64(w.handle))
	if err != nil {
		return "", errors.Trap(schema.WriteableLen, err)
	}
	if len(res) == 0 {
		return "", errors.InvalidData(errors.PhaseDecode, nil, "writeable length missing")
	}
	return DecodeString(w.mem, Slice{Ptr: ptr, Len: uint32(res[0])}, nil)
}

// Destroy releases the native buffer. It is safe to call more than once.
func (w *Writeable) Destroy(ctx context.Context) error {
	if w.handle == 0 {
		return nil
	}
	h := w.handle
	w.handle = 0
	if _, err := w.caller.Call(ctx, schema.WriteableDestroy, uint64(h)); err != nil {
		return errors.Trap(schema.WriteableDestroy, err)
	}
	return nil
}
