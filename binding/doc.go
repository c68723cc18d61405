// Package binding composes native calls from declarative signatures.
//
// A Signature describes one entry point: its receiver, its ordered
// parameters, what it returns, and whether it reports failure through a
// receive buffer. The Invoker interprets signatures against a Core. It
// lowers arguments, allocates and frees scratch memory, decodes the result
// envelope and wraps returned handles with their edge sets. No entry point
// has hand-written marshalling.
//
// # Borrowing
//
// A parameter marked Borrowed lends native data to the returned object. A
// borrowed handle argument joins the result's edge set along with its own
// edges. A borrowed string keeps its native buffer: the buffer is detached
// from the call's scratch list and becomes an owned object in the edge set,
// freed once the borrower is released.
//
// The borrow graph is checked when a Catalog is built: only handle results
// can borrow, only handles and strings can be lent, and every class that
// appears as a receiver or argument must have a constructor in the catalog.
//
// # Thread Safety
//
// The Invoker serializes every native call, including destructors run by
// the reclaimer, behind one mutex. Objects are wrapped after the mutex is
// released, so a destructor triggered while wrapping never waits on itself.
package binding
