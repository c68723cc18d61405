package transcoder

import (
	"sync"

	icubridge "github.com/wippyai/icu-bridge"
	"github.com/wippyai/icu-bridge/errors"
)

type Memory = icubridge.Memory
type Allocator = icubridge.Allocator

// outOfBounds reports a failed access at offset. The length is the memory
// size when mem reports one, -1 otherwise.
func outOfBounds(phase errors.Phase, path []string, mem Memory, offset uint32, what string, cause error) *errors.Error {
	length := -1
	if s, ok := mem.(icubridge.MemorySizer); ok {
		length = int(s.Size())
	}
	err := errors.OutOfBounds(phase, path, int(offset), length)
	err.Detail = what + ": " + err.Detail
	err.Cause = cause
	return err
}

type Allocation struct {
	Ptr   uint32
	Size  uint32
	Align uint32
}

type AllocationList struct {
	allocations []Allocation
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{allocations: make([]Allocation, 0, 8)}
	},
}

func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 128

// Release returns to pool. Must call after Free(); list invalid after Release.
func (al *AllocationList) Release() {
	// Only pool small allocations to prevent memory bloat
	if cap(al.allocations) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

func (al *AllocationList) FreeAndRelease(allocator Allocator) {
	al.Free(allocator)
	al.Release()
}

func (al *AllocationList) Add(ptr, size, align uint32) {
	al.allocations = append(al.allocations, Allocation{
		Ptr:   ptr,
		Size:  size,
		Align: align,
	})
}

// Detach removes the allocation at ptr so Free leaves it alone; the caller
// becomes its owner.
func (al *AllocationList) Detach(ptr uint32) (Allocation, bool) {
	for i, a := range al.allocations {
		if a.Ptr == ptr {
			al.allocations = append(al.allocations[:i], al.allocations[i+1:]...)
			return a, true
		}
	}
	return Allocation{}, false
}

func (al *AllocationList) Free(allocator Allocator) {
	if allocator == nil {
		return
	}
	for _, a := range al.allocations {
		if a.Ptr != 0 {
			allocator.Free(a.Ptr, a.Size, a.Align)
		}
	}
	al.Reset()
}

func (al *AllocationList) Reset() {
	al.allocations = al.allocations[:0]
}

func (al *AllocationList) Count() int {
	return len(al.allocations)
}
