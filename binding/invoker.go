package binding

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	icubridge "github.com/wippyai/icu-bridge"
	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/resource"
	"github.com/wippyai/icu-bridge/schema"
	"github.com/wippyai/icu-bridge/transcoder"
)

// Option configures an Invoker.
type Option func(*Invoker)

// WithWriteableCapacity sets the capacity hint of output writeables.
func WithWriteableCapacity(n uint32) Option {
	return func(inv *Invoker) {
		if n > 0 {
			inv.capacity = n
		}
	}
}

// Invoker runs catalog methods against a core.
type Invoker struct {
	core     icubridge.Core
	tracker  *resource.Tracker
	catalog  *Catalog
	mu       sync.Mutex
	capacity uint32
}

// NewInvoker checks that core exports everything catalog needs.
func NewInvoker(core icubridge.Core, tracker *resource.Tracker, catalog *Catalog, opts ...Option) (*Invoker, error) {
	if core == nil {
		return nil, errors.NotInitialized(errors.PhaseLoad, "core")
	}
	if tracker == nil {
		return nil, errors.NotInitialized(errors.PhaseLoad, "tracker")
	}
	if err := catalog.Check(core); err != nil {
		return nil, err
	}
	inv := &Invoker{
		core:     core,
		tracker:  tracker,
		catalog:  catalog,
		capacity: transcoder.DefaultWriteableCapacity,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv, nil
}

// Catalog returns the method catalog.
func (inv *Invoker) Catalog() *Catalog { return inv.catalog }

// Tracker returns the tracker that owns returned objects.
func (inv *Invoker) Tracker() *resource.Tracker { return inv.tracker }

// lentBuffer is a string buffer the result keeps borrowing.
type lentBuffer struct {
	class string
	alloc transcoder.Allocation
}

// outcome is what a locked call hands to the unlocked wrapping step.
type outcome struct {
	value   any
	class   string
	lenders []*resource.Object
	buffers []lentBuffer
	handle  resource.Handle
}

// Invoke calls the method named "Class.method". self is the receiver of an
// instance method and nil otherwise. Arguments follow the declared
// parameters: Go scalars, strings, enum values and *resource.Object.
//
// Object results are returned as *resource.Object, text as string, enums as
// their Go value and scalars as the Go type of their WIT type. A native
// error is returned as the error its Failure decodes to.
func (inv *Invoker) Invoke(ctx context.Context, name string, self *resource.Object, args ...any) (any, error) {
	m, ok := inv.catalog.Lookup(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseCall, "method", name)
	}
	if len(args) != len(m.sig.Params) {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Path(name).
			Detail("expected %d arguments, got %d", len(m.sig.Params), len(args)).
			Build()
	}

	out, err := inv.call(ctx, m, self, args)
	if err != nil {
		return nil, err
	}
	if out.handle == 0 {
		return out.value, nil
	}
	return inv.wrap(out)
}

func (inv *Invoker) call(ctx context.Context, m *Method, self *resource.Object, args []any) (out outcome, err error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	mem := inv.core.Memory()
	alloc := inv.core.Allocator()
	scratch := transcoder.NewAllocationList()
	defer scratch.FreeAndRelease(alloc)

	argv := transcoder.GetArgs()
	defer transcoder.PutArgs(argv)

	var ret uint32
	if m.sig.Failure != nil {
		ret, err = m.layout.Alloc(alloc, scratch)
		if err != nil {
			return outcome{}, err
		}
		*argv = append(*argv, uint64(ret))
	}

	switch {
	case m.sig.Self:
		h, err := handleOf(self, m.class, []string{m.name, "self"})
		if err != nil {
			return outcome{}, err
		}
		*argv = append(*argv, uint64(h))
		if m.sig.SelfBorrowed {
			out.lenders = append(out.lenders, self)
		}
	case self != nil:
		return outcome{}, errors.InvalidInput(errors.PhaseEncode, m.name+" is not an instance method")
	}

	for i, p := range m.sig.Params {
		path := []string{m.name, p.Name}
		switch p.Kind {
		case Primitive:
			v, err := transcoder.Flatten(p.Type, args[i], path)
			if err != nil {
				return outcome{}, err
			}
			*argv = append(*argv, v)
		case Enum:
			o, err := p.Enum.Encode(args[i])
			if err != nil {
				return outcome{}, err
			}
			*argv = append(*argv, uint64(uint32(o)))
		case String:
			s, ok := args[i].(string)
			if !ok {
				return outcome{}, errors.TypeMismatch(errors.PhaseEncode, path, fmt.Sprintf("%T", args[i]), "string")
			}
			encode := transcoder.EncodeString
			if p.Lossy {
				encode = transcoder.EncodeStringLossy
			}
			sl, err := encode(mem, alloc, scratch, s, p.Encoding, path)
			if err != nil {
				return outcome{}, err
			}
			ptr, n := sl.Args()
			*argv = append(*argv, ptr, n)
			if p.Borrowed && sl.Ptr != 0 {
				out.buffers = append(out.buffers, lentBuffer{class: bufferClass(p.Encoding), alloc: transcoder.Allocation{Ptr: sl.Ptr}})
			}
		case Handle:
			obj, ok := args[i].(*resource.Object)
			if !ok {
				return outcome{}, errors.TypeMismatch(errors.PhaseEncode, path, fmt.Sprintf("%T", args[i]), p.Class)
			}
			h, err := handleOf(obj, p.Class, path)
			if err != nil {
				return outcome{}, err
			}
			*argv = append(*argv, uint64(h))
			if p.Borrowed {
				out.lenders = append(out.lenders, obj)
			}
		}
	}

	var w *transcoder.Writeable
	if m.sig.Return.Kind == Text {
		w, err = transcoder.NewWriteable(ctx, inv.core, mem, inv.capacity)
		if err != nil {
			return outcome{}, err
		}
		defer func() {
			if derr := w.Destroy(context.WithoutCancel(ctx)); derr != nil && err == nil {
				err = derr
			}
		}()
		*argv = append(*argv, w.Arg())
	}

	Logger().Debug("native call", zap.String("method", m.name), zap.String("symbol", m.sig.Symbol))
	res, err := inv.core.Call(ctx, m.sig.Symbol, (*argv)...)
	if err != nil {
		Logger().Debug("native call trapped", zap.String("symbol", m.sig.Symbol), zap.Error(err))
		return outcome{}, errors.Trap(m.sig.Symbol, err)
	}

	var payload any
	if m.sig.Failure != nil {
		env, err := m.layout.Decode(mem, ret)
		if err != nil {
			return outcome{}, err
		}
		if !env.Ok {
			return outcome{}, failure(m.sig.Failure, env.Value)
		}
		payload = env.Value
	} else if m.sig.Return.Kind != Void && m.sig.Return.Kind != Text {
		if len(res) == 0 {
			return outcome{}, errors.InvalidData(errors.PhaseDecode, []string{m.name}, "missing return value")
		}
		payload, err = transcoder.Lift(m.sig.okType(), res[0])
		if err != nil {
			return outcome{}, err
		}
	}

	switch m.sig.Return.Kind {
	case Scalar:
		out.value = payload
	case EnumValue:
		ord, _ := payload.(int32)
		out.value, err = m.sig.Return.Enum.Decode(ord)
		if err != nil {
			return outcome{}, err
		}
	case Text:
		out.value, err = w.String(ctx)
		if err != nil {
			return outcome{}, err
		}
	case Object:
		h, _ := payload.(uint32)
		if h == 0 {
			return outcome{}, errors.NilPointer(errors.PhaseDecode, []string{m.name}, m.sig.Return.Class)
		}
		out.handle = resource.Handle(h)
		out.class = m.sig.Return.Class
		for i := range out.buffers {
			a, ok := scratch.Detach(out.buffers[i].alloc.Ptr)
			if !ok {
				return outcome{}, errors.InvalidData(errors.PhaseDecode, []string{m.name}, "borrowed buffer is not scratch")
			}
			out.buffers[i].alloc = a
		}
	}
	return out, nil
}

// failure converts the error payload of a receive buffer into a Go error.
func failure(f *Failure, payload any) error {
	if f.Codec == nil {
		return f.Unit
	}
	ord, _ := payload.(int32)
	v, err := f.Codec.Decode(ord)
	if err != nil {
		return err
	}
	return v.(error)
}

// wrap registers a returned handle together with the buffers it borrows.
// It runs without the call mutex: a failed registration releases native
// memory through the destructors, which take the mutex.
func (inv *Invoker) wrap(out outcome) (*resource.Object, error) {
	bufs := make([]*resource.Object, 0, len(out.buffers))
	for i, b := range out.buffers {
		obj, err := inv.tracker.Own(resource.Handle(b.alloc.Ptr), b.class, inv.freer(b.alloc), nil)
		if err != nil {
			inv.destructor(out.class)(out.handle)
			for _, rest := range out.buffers[i:] {
				inv.freer(rest.alloc)(0)
			}
			destroyAll(bufs)
			return nil, err
		}
		bufs = append(bufs, obj)
	}

	edges := resource.Borrowing(append(out.lenders, bufs...)...)
	obj, err := inv.tracker.Own(out.handle, out.class, inv.destructor(out.class), edges)
	if err != nil {
		inv.destructor(out.class)(out.handle)
		destroyAll(bufs)
		return nil, err
	}
	// Only obj holds the buffers now; they are freed when it is released.
	destroyAll(bufs)
	return obj, nil
}

func destroyAll(objs []*resource.Object) {
	for _, o := range objs {
		_ = o.Destroy()
	}
}

// destructor returns the native destroy call for objects of class.
func (inv *Invoker) destructor(class string) resource.Destructor {
	sym := schema.Destructor(class)
	return func(h resource.Handle) {
		inv.mu.Lock()
		defer inv.mu.Unlock()
		if _, err := inv.core.Call(context.Background(), sym, uint64(h)); err != nil {
			Logger().Warn("native destructor failed",
				zap.String("symbol", sym),
				zap.Uint32("handle", uint32(h)),
				zap.Error(err))
		}
	}
}

// freer returns a destructor that frees a lent string buffer.
func (inv *Invoker) freer(a transcoder.Allocation) resource.Destructor {
	return func(resource.Handle) {
		inv.mu.Lock()
		defer inv.mu.Unlock()
		inv.core.Allocator().Free(a.Ptr, a.Size, a.Align)
	}
}

func handleOf(obj *resource.Object, class string, path []string) (resource.Handle, error) {
	if obj == nil {
		return 0, errors.NilPointer(errors.PhaseEncode, path, "*resource.Object")
	}
	if obj.Class() != class {
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, obj.Class(), class)
	}
	return obj.Handle()
}
