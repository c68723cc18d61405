package resource

import (
	"runtime"
	"slices"
	"sync"
)

// GCReclaimer runs reclamation from the Go runtime's cleanup goroutine once
// an object is unreachable. There is no promptness guarantee.
type GCReclaimer struct{}

// Register implements Reclaimer.
func (GCReclaimer) Register(obj *Object, fn func()) Registration {
	c := runtime.AddCleanup(obj, func(f func()) { f() }, fn)
	return gcRegistration{cleanup: c}
}

type gcRegistration struct {
	cleanup runtime.Cleanup
}

func (r gcRegistration) Unregister() {
	r.cleanup.Stop()
}

// ManualReclaimer keeps registrations pending until they are collected.
// Collecting an object simulates it becoming unreachable; tests use it to
// force reclamation in a chosen order.
type ManualReclaimer struct {
	byObject map[*Object]uint64
	pending  map[uint64]manualEntry
	mu       sync.Mutex
	next     uint64
}

type manualEntry struct {
	fn  func()
	obj *Object
}

// NewManualReclaimer creates an empty manual reclaimer.
func NewManualReclaimer() *ManualReclaimer {
	return &ManualReclaimer{
		byObject: make(map[*Object]uint64),
		pending:  make(map[uint64]manualEntry),
	}
}

// Register implements Reclaimer.
func (m *ManualReclaimer) Register(obj *Object, fn func()) Registration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	id := m.next
	m.pending[id] = manualEntry{fn: fn, obj: obj}
	m.byObject[obj] = id
	return &manualRegistration{owner: m, id: id}
}

// Pending returns the number of registrations that have not run.
func (m *ManualReclaimer) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Collect runs the pending reclamation of obj. It reports false if obj has
// none, because it was destroyed explicitly or already collected.
func (m *ManualReclaimer) Collect(obj *Object) bool {
	m.mu.Lock()
	id, ok := m.byObject[obj]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return m.run(id)
}

// Flush runs every pending reclamation in registration order and returns
// how many ran.
func (m *ManualReclaimer) Flush() int {
	m.mu.Lock()
	ids := make([]uint64, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	slices.Sort(ids)
	n := 0
	for _, id := range ids {
		if m.run(id) {
			n++
		}
	}
	return n
}

func (m *ManualReclaimer) run(id uint64) bool {
	m.mu.Lock()
	e, ok := m.take(id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	e.fn()
	return true
}

// take removes a pending entry; m.mu must be held.
func (m *ManualReclaimer) take(id uint64) (manualEntry, bool) {
	e, ok := m.pending[id]
	if !ok {
		return manualEntry{}, false
	}
	delete(m.pending, id)
	delete(m.byObject, e.obj)
	return e, true
}

type manualRegistration struct {
	owner *ManualReclaimer
	id    uint64
}

func (r *manualRegistration) Unregister() {
	r.owner.mu.Lock()
	defer r.owner.mu.Unlock()
	r.owner.take(r.id)
}

var (
	_ Reclaimer = GCReclaimer{}
	_ Reclaimer = (*ManualReclaimer)(nil)
)
