package resource

import (
	"sync"
	"sync/atomic"

	"github.com/wippyai/icu-bridge/errors"
)

// Edges lists the objects whose native data a wrapper borrows.
type Edges []*Object

// Borrowing returns the edge set of an object that borrows from each of objs:
// the objects themselves followed by their own edges, without duplicates.
// Nil entries are skipped.
func Borrowing(objs ...*Object) Edges {
	var out Edges
	return out.With(objs...)
}

// With copy-forwards objs and their edges into a new edge set.
func (e Edges) With(objs ...*Object) Edges {
	out := make(Edges, 0, len(e)+len(objs))
	seen := make(map[*Object]struct{}, cap(out))
	add := func(o *Object) {
		if o == nil {
			return
		}
		if _, ok := seen[o]; ok {
			return
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	for _, o := range e {
		add(o)
	}
	for _, o := range objs {
		if o == nil {
			continue
		}
		add(o)
		for _, edge := range o.edges {
			add(edge)
		}
	}
	return out
}

type slotState uint8

const (
	slotLive slotState = iota
	slotRetired
	slotReleased
)

// slot is the lifecycle state shared between an Object and its reclamation.
// It never references the Object so the Object can become unreachable.
type slot struct {
	tracker   *Tracker
	destroy   Destructor
	cleanup   Registration
	class     string
	lenders   []*slot
	mu        sync.Mutex
	borrowers int
	handle    Handle
	state     slotState
}

// retire requests release; the native destructor runs once no borrower remains.
func (s *slot) retire(reason EventType) {
	s.mu.Lock()
	if s.state != slotLive {
		s.mu.Unlock()
		return
	}
	s.state = slotRetired
	borrowers := s.borrowers
	s.mu.Unlock()

	s.tracker.notify(s, reason, borrowers)
	if borrowers > 0 {
		s.tracker.notify(s, EventDeferred, borrowers)
		return
	}
	s.finish()
}

// reclaim is the reclaimer callback.
func (s *slot) reclaim() {
	s.retire(EventReclaimed)
}

func (s *slot) finish() {
	s.mu.Lock()
	if s.state == slotReleased {
		s.mu.Unlock()
		return
	}
	s.state = slotReleased
	s.mu.Unlock()

	s.tracker.release(s)
	for _, l := range s.lenders {
		l.unborrow()
	}
}

func (s *slot) borrow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == slotReleased {
		return false
	}
	s.borrowers++
	return true
}

func (s *slot) unborrow() {
	s.mu.Lock()
	s.borrowers--
	ready := s.borrowers == 0 && s.state == slotRetired
	s.mu.Unlock()
	if ready {
		s.finish()
	}
}

func (s *slot) released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == slotReleased
}

// Object is the Go wrapper of one native object.
type Object struct {
	slot      *slot
	edges     Edges
	destroyed atomic.Bool
}

// Class returns the native type name.
func (o *Object) Class() string { return o.slot.class }

// Owned reports whether the wrapper owns the native object.
func (o *Object) Owned() bool { return o.slot.destroy != nil }

// Edges returns a copy of the objects this wrapper borrows from.
func (o *Object) Edges() Edges {
	return append(Edges(nil), o.edges...)
}

// Handle returns the native handle for passing to the core.
// It fails once the wrapper has been destroyed or reclaimed.
func (o *Object) Handle() (Handle, error) {
	if o == nil {
		return 0, errors.NilPointer(errors.PhaseLifecycle, nil, "*resource.Object")
	}
	if o.destroyed.Load() || o.slot.released() {
		return 0, errors.UseAfterDestroy(o.slot.class, uint32(o.slot.handle))
	}
	return o.slot.handle, nil
}

// Destroyed reports whether Destroy has been called.
func (o *Object) Destroyed() bool {
	return o.destroyed.Load()
}

// Destroy disarms the pending reclamation and releases the native object.
// The destructor is deferred while other objects borrow from this one.
// A second call returns a double_destroy error.
func (o *Object) Destroy() error {
	if !o.destroyed.CompareAndSwap(false, true) {
		return errors.DoubleDestroy(o.slot.class, uint32(o.slot.handle))
	}
	if o.slot.cleanup != nil {
		o.slot.cleanup.Unregister()
	}
	o.slot.retire(EventDisposed)
	return nil
}
