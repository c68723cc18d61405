package resource

// Handle is the address of a native object in the core's linear memory.
// Handle 0 is null and never wraps an object.
type Handle uint32

// Destructor releases the native object behind a handle.
type Destructor func(Handle)

// EventType identifies a lifecycle transition.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventDisposed
	EventReclaimed
	EventDeferred
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventRegistered:
		return "registered"
	case EventDisposed:
		return "disposed"
	case EventReclaimed:
		return "reclaimed"
	case EventDeferred:
		return "deferred"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event represents a lifecycle event of one object.
type Event struct {
	Class     string
	Handle    Handle
	Type      EventType
	Owned     bool
	Borrowers int
}

// Observer receives notifications about lifecycle events.
// Observers may be called from the reclaimer's goroutine.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnResourceEvent implements Observer.
func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Reclaimer arranges for work to run after an Object becomes unreachable.
type Reclaimer interface {
	// Register arranges for fn to run at most once after obj is unreachable.
	// fn must not reference obj.
	Register(obj *Object, fn func()) Registration
}

// Registration is a pending reclamation.
type Registration interface {
	// Unregister cancels the reclamation if it has not run yet.
	Unregister()
}

// Stats counts lifecycle transitions seen by a Tracker.
type Stats struct {
	Registered uint64
	Disposed   uint64
	Reclaimed  uint64
	Deferred   uint64
	Released   uint64
}
