// Package resource wraps native object handles for safe use from Go.
//
// A native handle is an opaque address into the core's heap. Exactly one Go
// Object owns it. The owner releases it by calling Destroy, or the Tracker's
// Reclaimer releases it after the Object becomes unreachable. Either way the
// native destructor runs exactly once.
//
// # Edges
//
// An object that borrows native data from other objects lists them in its
// Edges. Holding the lenders keeps them reachable for as long as the borrower
// is. A lender that is explicitly destroyed while borrowers are live becomes
// unusable from Go immediately, but its native destructor is deferred until
// the last borrower is released:
//
//	seg, _ := tracker.Own(segHandle, "WordSegmenter", destroySegmenter, nil)
//	buf, _ := tracker.Own(bufPtr, "Utf8Buffer", freeBuffer, nil)
//	it, _ := tracker.Own(itHandle, "WordBreakIteratorUtf8", destroyIter,
//	    resource.Borrowing(seg, buf))
//
//	seg.Destroy() // deferred: it still borrows seg
//	it.Destroy()  // destroys it, then the deferred seg
//
// # Reclamation
//
// The Reclaimer is injectable. GCReclaimer runs reclamation from the Go
// runtime's cleanup goroutine. ManualReclaimer keeps registrations pending
// until a test collects them, which makes release order deterministic.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	cancel := tracker.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s 0x%x %s", e.Class, e.Handle, e.Type)
//	}))
//	defer cancel()
package resource
