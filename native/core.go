package native

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	icubridge "github.com/wippyai/icu-bridge"
	"github.com/wippyai/icu-bridge/schema"
)

const (
	// DefaultMemoryLimit is the default linear memory limit in pages.
	DefaultMemoryLimit = 256
	// DefaultWriteableLimit caps the size of a single writeable in bytes.
	DefaultWriteableLimit = 1 << 20

	objectSize  = 16
	objectAlign = 8
)

// Fault is a misuse of the core observed at the ABI boundary.
type Fault struct {
	Kind   string
	Symbol string
	Addr   uint32
}

func (f Fault) String() string {
	return fmt.Sprintf("%s: %s at 0x%x", f.Symbol, f.Kind, f.Addr)
}

// TrapError aborts a call the way a wasm trap would.
type TrapError struct {
	Symbol string
	Reason string
}

func (e *TrapError) Error() string {
	return fmt.Sprintf("trap in %s: %s", e.Symbol, e.Reason)
}

type options struct {
	memoryPages    uint32
	writeableLimit uint32
}

// Option configures a Core.
type Option func(*options)

// WithMemoryLimit limits linear memory to the given number of 64KiB pages.
func WithMemoryLimit(pages uint32) Option {
	return func(o *options) {
		if pages > 0 {
			o.memoryPages = pages
		}
	}
}

// WithWriteableLimit caps how far a writeable may grow during a call.
func WithWriteableLimit(bytes uint32) Option {
	return func(o *options) {
		o.writeableLimit = bytes
	}
}

type object struct {
	class string
	value any
}

type handler = func(c *Core, sym string, args []uint64) ([]uint64, error)

type entry struct {
	arity int
	fn    handler
}

// Core is an in-process native core. Objects live in an emulated linear
// memory so handles are real addresses that obey the same rules as a wasm
// build: 0 is null, every object is a heap allocation, and misuse is
// recorded instead of corrupting the host.
type Core struct {
	mu             sync.Mutex
	heap           *heap
	objects        map[uint32]*object
	faults         []Fault
	symbol         string
	writeableLimit uint32
	closed         bool
}

// New creates a reference core.
func New(opts ...Option) *Core {
	o := options{memoryPages: DefaultMemoryLimit, writeableLimit: DefaultWriteableLimit}
	for _, opt := range opts {
		opt(&o)
	}
	limit := uint64(o.memoryPages) * pageSize
	if limit > math.MaxUint32 {
		limit = math.MaxUint32
	}
	c := &Core{
		objects:        make(map[uint32]*object),
		writeableLimit: o.writeableLimit,
	}
	c.heap = newHeap(uint32(limit), c.fault)
	return c
}

func (c *Core) Memory() icubridge.Memory {
	return Memory{h: c.heap}
}

func (c *Core) Allocator() icubridge.Allocator {
	return coreAllocator{c: c}
}

// Has reports whether the core exports symbol.
func (c *Core) Has(symbol string) bool {
	_, ok := entries[symbol]
	return ok
}

// Call invokes an entry point with flat arguments.
func (c *Core) Call(ctx context.Context, symbol string, args ...uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := entries[symbol]
	if !ok {
		return nil, fmt.Errorf("unknown export %q", symbol)
	}
	if len(args) != e.arity {
		return nil, &TrapError{Symbol: symbol, Reason: fmt.Sprintf("expected %d arguments, got %d", e.arity, len(args))}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("core closed")
	}
	c.symbol = symbol
	return e.fn(c, symbol, args)
}

// Close stops the core. Objects still alive are reported as leaks.
func (c *Core) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if n := len(c.objects); n > 0 {
		Logger().Debug("core closed with live objects", zap.Int("objects", n))
	}
	return nil
}

// LiveObjects returns the number of live objects per class.
func (c *Core) LiveObjects() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int)
	for _, o := range c.objects {
		out[o.class]++
	}
	return out
}

// LiveAllocations returns the number of live heap blocks, objects included.
func (c *Core) LiveAllocations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heap.liveCount()
}

// Faults returns the recorded faults in order.
func (c *Core) Faults() []Fault {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Fault(nil), c.faults...)
}

func (c *Core) fault(kind string, addr uint32) {
	f := Fault{Kind: kind, Symbol: c.symbol, Addr: addr}
	c.faults = append(c.faults, f)
	Logger().Warn("core fault",
		zap.String("kind", kind),
		zap.String("symbol", c.symbol),
		zap.Uint32("addr", addr))
}

func (c *Core) trap(sym, kind string, addr uint32) error {
	c.fault(kind, addr)
	return &TrapError{Symbol: sym, Reason: fmt.Sprintf("%s at 0x%x", kind, addr)}
}

// coreAllocator serializes direct allocator use with calls.
type coreAllocator struct {
	c *Core
}

func (a coreAllocator) Alloc(size, align uint32) (uint32, error) {
	a.c.mu.Lock()
	defer a.c.mu.Unlock()
	a.c.symbol = schema.Alloc
	return a.c.heap.alloc(size, align)
}

func (a coreAllocator) Free(ptr, size, align uint32) {
	a.c.mu.Lock()
	defer a.c.mu.Unlock()
	a.c.symbol = schema.Free
	a.c.heap.dealloc(ptr, size)
}

func (c *Core) newObject(class string, value any) (uint32, error) {
	ptr, err := c.heap.alloc(objectSize, objectAlign)
	if err != nil {
		return 0, err
	}
	c.objects[ptr] = &object{class: class, value: value}
	return ptr, nil
}

func (c *Core) lookup(sym string, addr uint32, class string) (any, error) {
	o, ok := c.objects[addr]
	if !ok || o.class != class {
		return nil, c.trap(sym, "invalid "+class+" handle", addr)
	}
	return o.value, nil
}

func (c *Core) destroy(sym string, addr uint32, class string) error {
	o, ok := c.objects[addr]
	if !ok || o.class != class {
		return c.trap(sym, "destroy of invalid "+class+" handle", addr)
	}
	delete(c.objects, addr)
	c.heap.dealloc(addr, objectSize)
	return nil
}

// putResult fills a receive buffer whose payload area is payload bytes wide.
// value is written at offset 0 when non-nil; the tag follows the payload.
func (c *Core) putResult(sym string, ret, payload uint32, ok bool, value *uint32) error {
	if !c.heap.owns(ret, payload+1) {
		return c.trap(sym, "receive buffer not allocated", ret)
	}
	mem := Memory{h: c.heap}
	if value != nil {
		if err := mem.WriteU32(ret, *value); err != nil {
			return err
		}
	}
	var tag uint8
	if ok {
		tag = 1
	}
	return mem.WriteU8(ret+payload, tag)
}

// okHandle returns a new object through ret. The object is dropped again
// when the receive buffer is invalid so a trapped call leaks nothing.
func (c *Core) okHandle(sym string, ret, handle uint32) error {
	if err := c.putResult(sym, ret, 4, true, &handle); err != nil {
		delete(c.objects, handle)
		c.heap.dealloc(handle, objectSize)
		return err
	}
	return nil
}

func (c *Core) errCode(sym string, ret uint32, code string) error {
	v := uint32(schema.ErrorSpec.MustOrdinal(code))
	return c.putResult(sym, ret, 4, false, &v)
}

// readText reads a borrowed (ptr, len) slice of code units.
func (c *Core) readText(sym string, ptr, length uint32, utf16 bool) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	size := uint64(length)
	if utf16 {
		size *= 2
	}
	if size > math.MaxUint32 || !c.heap.owns(ptr, uint32(size)) {
		return nil, c.trap(sym, "slice outside live allocation", ptr)
	}
	return Memory{h: c.heap}.Read(ptr, uint32(size))
}

func u32(a uint64) uint32 { return uint32(a) }
func i16(a uint64) int    { return int(int16(int32(uint32(a)))) }

func ret32(v uint32) []uint64 { return []uint64{uint64(v)} }
func retI32(v int32) []uint64 { return []uint64{uint64(uint32(v))} }

func retBool(b bool) []uint64 {
	if b {
		return []uint64{1}
	}
	return []uint64{0}
}

func none(err error) ([]uint64, error) {
	return nil, err
}

var _ icubridge.Core = (*Core)(nil)
