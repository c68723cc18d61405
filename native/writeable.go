package native

import (
	"go.uber.org/zap"
)

const classWriteable = "Writeable"

// writeable is a growable output buffer in linear memory.
type writeable struct {
	ptr    uint32
	cap    uint32
	len    uint32
	failed bool
}

func (c *Core) writeableCreate(sym string, args []uint64) ([]uint64, error) {
	capacity := max(u32(args[0]), 1)
	if capacity > c.writeableLimit {
		capacity = max(c.writeableLimit, 1)
	}
	ptr, err := c.heap.alloc(capacity, 1)
	if err != nil {
		return ret32(0), nil
	}
	h, err := c.newObject(classWriteable, &writeable{ptr: ptr, cap: capacity})
	if err != nil {
		c.heap.dealloc(ptr, capacity)
		return ret32(0), nil
	}
	return ret32(h), nil
}

func (c *Core) writeableGetBytes(sym string, args []uint64) ([]uint64, error) {
	v, err := c.lookup(sym, u32(args[0]), classWriteable)
	if err != nil {
		return nil, err
	}
	w := v.(*writeable)
	if w.failed {
		return ret32(0), nil
	}
	return ret32(w.ptr), nil
}

func (c *Core) writeableLen(sym string, args []uint64) ([]uint64, error) {
	v, err := c.lookup(sym, u32(args[0]), classWriteable)
	if err != nil {
		return nil, err
	}
	return ret32(v.(*writeable).len), nil
}

func (c *Core) writeableDestroy(sym string, args []uint64) ([]uint64, error) {
	h := u32(args[0])
	v, err := c.lookup(sym, h, classWriteable)
	if err != nil {
		return nil, err
	}
	c.heap.dealloc(v.(*writeable).ptr, v.(*writeable).cap)
	return none(c.destroy(sym, h, classWriteable))
}

// write appends s to the writeable at h, doubling its buffer as needed.
// Growth beyond the limit marks the writeable failed; the call itself
// still completes.
func (c *Core) write(sym string, h uint32, s string) error {
	v, err := c.lookup(sym, h, classWriteable)
	if err != nil {
		return err
	}
	w := v.(*writeable)
	if w.failed {
		return nil
	}
	need := uint64(w.len) + uint64(len(s))
	if need > uint64(w.cap) {
		newCap := max(uint64(w.cap)*2, need)
		if newCap > uint64(c.writeableLimit) {
			newCap = need
		}
		if newCap > uint64(c.writeableLimit) {
			w.failed = true
			Logger().Debug("writeable grow refused",
				zap.Uint32("handle", h),
				zap.Uint64("need", need),
				zap.Uint32("limit", c.writeableLimit))
			return nil
		}
		ptr, err := c.heap.alloc(uint32(newCap), 1)
		if err != nil {
			w.failed = true
			return nil
		}
		copy(c.heap.data[ptr:], c.heap.data[w.ptr:w.ptr+w.len])
		c.heap.dealloc(w.ptr, w.cap)
		w.ptr = ptr
		w.cap = uint32(newCap)
	}
	copy(c.heap.data[w.ptr+w.len:], s)
	w.len = uint32(need)
	return nil
}
