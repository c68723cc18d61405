package resource

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/wippyai/icu-bridge/errors"
)

// Tracker registers native objects with a Reclaimer and reports their lifecycle.
type Tracker struct {
	reclaimer Reclaimer
	live      map[Handle]*slot
	observers []*subscription
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    atomic.Bool

	registered atomic.Uint64
	disposed   atomic.Uint64
	reclaimed  atomic.Uint64
	deferred   atomic.Uint64
	releases   atomic.Uint64
}

// NewTracker creates a tracker that reclaims through r.
// A nil r uses GCReclaimer.
func NewTracker(r Reclaimer) *Tracker {
	if r == nil {
		r = GCReclaimer{}
	}
	return &Tracker{
		reclaimer: r,
		live:      make(map[Handle]*slot),
	}
}

// Reclaimer returns the tracker's reclaimer.
func (t *Tracker) Reclaimer() Reclaimer {
	return t.reclaimer
}

// Own wraps an owned native object. destroy runs exactly once, after an
// explicit Destroy or after reclamation, and after every object that borrows
// from this one has been released. edges lists the objects it borrows from.
func (t *Tracker) Own(h Handle, class string, destroy Destructor, edges Edges) (*Object, error) {
	if destroy == nil {
		return nil, errors.InvalidInput(errors.PhaseLifecycle, "owned object without destructor")
	}
	return t.wrap(h, class, destroy, edges)
}

// View wraps a borrowed native object. It has no destructor; it keeps edges
// alive until it is destroyed or reclaimed.
func (t *Tracker) View(h Handle, class string, edges Edges) (*Object, error) {
	return t.wrap(h, class, nil, edges)
}

func (t *Tracker) wrap(h Handle, class string, destroy Destructor, edges Edges) (*Object, error) {
	if h == 0 {
		return nil, errors.NilPointer(errors.PhaseLifecycle, []string{class}, "resource.Handle")
	}
	if t.closed.Load() {
		return nil, errors.NotInitialized(errors.PhaseLifecycle, "tracker")
	}

	s := &slot{
		tracker: t,
		class:   class,
		handle:  h,
		destroy: destroy,
	}

	if destroy != nil {
		t.mu.Lock()
		if _, dup := t.live[h]; dup {
			t.mu.Unlock()
			return nil, errors.AlreadyRegistered(class, uint32(h))
		}
		t.live[h] = s
		t.mu.Unlock()
	}

	for _, e := range edges {
		if e == nil {
			continue
		}
		if !e.slot.borrow() {
			for _, l := range s.lenders {
				l.unborrow()
			}
			t.forget(s)
			return nil, errors.UseAfterDestroy(e.slot.class, uint32(e.slot.handle))
		}
		s.lenders = append(s.lenders, e.slot)
	}

	obj := &Object{slot: s, edges: append(Edges(nil), edges...)}
	if destroy != nil || len(s.lenders) > 0 {
		s.cleanup = t.reclaimer.Register(obj, s.reclaim)
	}

	t.registered.Add(1)
	t.notify(s, EventRegistered, 0)
	return obj, nil
}

// release runs the destructor of a slot whose borrowers are gone.
func (t *Tracker) release(s *slot) {
	if s.destroy != nil && !t.closed.Load() {
		s.destroy(s.handle)
	}
	t.forget(s)
	t.notify(s, EventReleased, 0)
}

func (t *Tracker) forget(s *slot) {
	if s.destroy == nil {
		return
	}
	t.mu.Lock()
	if t.live[s.handle] == s {
		delete(t.live, s.handle)
	}
	t.mu.Unlock()
}

// Len returns the number of owned native objects not yet released.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Stats returns lifecycle counters.
func (t *Tracker) Stats() Stats {
	return Stats{
		Registered: t.registered.Load(),
		Disposed:   t.disposed.Load(),
		Reclaimed:  t.reclaimed.Load(),
		Deferred:   t.deferred.Load(),
		Released:   t.releases.Load(),
	}
}

type subscription struct{ o Observer }

// Subscribe adds an observer for lifecycle events. The returned function
// removes it.
func (t *Tracker) Subscribe(o Observer) (cancel func()) {
	sub := &subscription{o: o}
	t.obsMu.Lock()
	t.observers = append(t.observers, sub)
	t.obsMu.Unlock()
	return func() {
		t.obsMu.Lock()
		defer t.obsMu.Unlock()
		t.observers = slices.DeleteFunc(t.observers, func(s *subscription) bool { return s == sub })
	}
}

// Close disarms every pending reclamation and stops running destructors.
// It is called when the core itself is torn down and its heap discarded.
func (t *Tracker) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	t.mu.Lock()
	slots := make([]*slot, 0, len(t.live))
	for _, s := range t.live {
		slots = append(slots, s)
	}
	t.live = make(map[Handle]*slot)
	t.mu.Unlock()

	for _, s := range slots {
		if s.cleanup != nil {
			s.cleanup.Unregister()
		}
		s.mu.Lock()
		s.state = slotReleased
		s.mu.Unlock()
	}
	return nil
}

func (t *Tracker) notify(s *slot, typ EventType, borrowers int) {
	switch typ {
	case EventDisposed:
		t.disposed.Add(1)
	case EventReclaimed:
		t.reclaimed.Add(1)
	case EventDeferred:
		t.deferred.Add(1)
	case EventReleased:
		t.releases.Add(1)
	}

	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	if len(t.observers) == 0 {
		return
	}
	e := Event{
		Class:     s.class,
		Handle:    s.handle,
		Type:      typ,
		Owned:     s.destroy != nil,
		Borrowers: borrowers,
	}
	for _, sub := range t.observers {
		sub.o.OnResourceEvent(e)
	}
}
