package native

import (
	"encoding/binary"
	"fmt"
	"sort"

	icubridge "github.com/wippyai/icu-bridge"
)

const (
	pageSize = 64 * 1024

	// heapBase keeps low addresses unused so that 0 is never a valid pointer.
	heapBase = 16
)

type span struct {
	addr uint32
	size uint32
}

// heap is an emulated linear memory with a first-fit allocator.
type heap struct {
	data  []byte
	free  []span // sorted by addr, coalesced
	live  map[uint32]uint32
	top   uint32
	limit uint32
	fault func(kind string, addr uint32)
}

func newHeap(limit uint32, fault func(string, uint32)) *heap {
	if limit < pageSize {
		limit = pageSize
	}
	return &heap{
		data:  make([]byte, pageSize),
		live:  make(map[uint32]uint32),
		top:   heapBase,
		limit: limit,
		fault: fault,
	}
}

func alignUp(v, align uint32) uint32 {
	if align <= 1 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// alloc returns a zeroed block of size bytes. Zero-sized requests get a
// one-byte block so every live pointer is distinct.
func (h *heap) alloc(size, align uint32) (uint32, error) {
	if align == 0 || align&(align-1) != 0 {
		return 0, fmt.Errorf("invalid alignment %d", align)
	}
	if size == 0 {
		size = 1
	}

	for i, s := range h.free {
		start := alignUp(s.addr, align)
		end := uint64(start) + uint64(size)
		if end > uint64(s.addr)+uint64(s.size) {
			continue
		}
		h.free = append(h.free[:i], h.free[i+1:]...)
		if start > s.addr {
			h.release(span{addr: s.addr, size: start - s.addr})
		}
		if rest := s.addr + s.size - uint32(end); rest > 0 {
			h.release(span{addr: uint32(end), size: rest})
		}
		return h.claim(start, size), nil
	}

	start := alignUp(h.top, align)
	end := uint64(start) + uint64(size)
	if end > uint64(h.limit) {
		return 0, fmt.Errorf("out of memory: %d bytes (align %d), limit %d", size, align, h.limit)
	}
	if start > h.top {
		h.release(span{addr: h.top, size: start - h.top})
	}
	if end > uint64(len(h.data)) {
		pages := (end + pageSize - 1) / pageSize
		grown := make([]byte, pages*pageSize)
		copy(grown, h.data)
		h.data = grown
	}
	h.top = uint32(end)
	return h.claim(start, size), nil
}

func (h *heap) claim(ptr, size uint32) uint32 {
	clear(h.data[ptr : ptr+size])
	h.live[ptr] = size
	return ptr
}

// dealloc frees a block. A non-zero size must match the allocation.
// Invalid frees are recorded as faults and otherwise ignored.
func (h *heap) dealloc(ptr, size uint32) {
	got, ok := h.live[ptr]
	if !ok {
		h.fault("invalid free", ptr)
		return
	}
	if size != 0 && size != got {
		h.fault("free size mismatch", ptr)
	}
	delete(h.live, ptr)
	h.release(span{addr: ptr, size: got})
}

// release inserts s into the free list, merging neighbours.
func (h *heap) release(s span) {
	i := sort.Search(len(h.free), func(i int) bool { return h.free[i].addr >= s.addr })
	h.free = append(h.free, span{})
	copy(h.free[i+1:], h.free[i:])
	h.free[i] = s

	if i+1 < len(h.free) && h.free[i].addr+h.free[i].size == h.free[i+1].addr {
		h.free[i].size += h.free[i+1].size
		h.free = append(h.free[:i+1], h.free[i+2:]...)
	}
	if i > 0 && h.free[i-1].addr+h.free[i-1].size == h.free[i].addr {
		h.free[i-1].size += h.free[i].size
		h.free = append(h.free[:i], h.free[i+1:]...)
	}
}

// owns reports whether [ptr, ptr+size) lies inside one live allocation.
func (h *heap) owns(ptr, size uint32) bool {
	for base, n := range h.live {
		if ptr >= base && uint64(ptr)+uint64(size) <= uint64(base)+uint64(n) {
			return true
		}
	}
	return false
}

func (h *heap) liveCount() int {
	return len(h.live)
}

func (h *heap) check(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(len(h.data)) {
		return fmt.Errorf("memory access out of bounds: offset %d length %d (size %d)", offset, length, len(h.data))
	}
	return nil
}

// Memory adapts the heap to icubridge.Memory.
type Memory struct {
	h *heap
}

// Size returns the current size of linear memory in bytes.
func (m Memory) Size() uint32 {
	return uint32(len(m.h.data))
}

func (m Memory) Read(offset uint32, length uint32) ([]byte, error) {
	if err := m.h.check(offset, length); err != nil {
		return nil, err
	}
	return m.h.data[offset : offset+length], nil
}

func (m Memory) Write(offset uint32, data []byte) error {
	if err := m.h.check(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(m.h.data[offset:], data)
	return nil
}

func (m Memory) ReadU8(offset uint32) (uint8, error) {
	if err := m.h.check(offset, 1); err != nil {
		return 0, err
	}
	return m.h.data[offset], nil
}

func (m Memory) ReadU16(offset uint32) (uint16, error) {
	if err := m.h.check(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.h.data[offset:]), nil
}

func (m Memory) ReadU32(offset uint32) (uint32, error) {
	if err := m.h.check(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.h.data[offset:]), nil
}

func (m Memory) ReadU64(offset uint32) (uint64, error) {
	if err := m.h.check(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.h.data[offset:]), nil
}

func (m Memory) WriteU8(offset uint32, value uint8) error {
	if err := m.h.check(offset, 1); err != nil {
		return err
	}
	m.h.data[offset] = value
	return nil
}

func (m Memory) WriteU16(offset uint32, value uint16) error {
	if err := m.h.check(offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(m.h.data[offset:], value)
	return nil
}

func (m Memory) WriteU32(offset uint32, value uint32) error {
	if err := m.h.check(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.h.data[offset:], value)
	return nil
}

func (m Memory) WriteU64(offset uint32, value uint64) error {
	if err := m.h.check(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.h.data[offset:], value)
	return nil
}

var (
	_ icubridge.Memory      = Memory{}
	_ icubridge.MemorySizer = Memory{}
	_ icubridge.Allocator   = coreAllocator{}
)
