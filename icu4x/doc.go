// Package icu4x is the typed API over the native core.
//
// Every type wraps one native object and every method is one entry point of
// the catalog returned by Catalog; marshalling is done by package binding.
// Methods take a context because each call crosses into the core.
//
//	lib, _ := icu4x.New(rt)
//	seg, _ := lib.WordSegmenterAuto(ctx)
//	it, _ := seg.SegmentUTF8(ctx, "hello world")
//	seg.Destroy() // deferred until it is released
//	bounds, _ := it.Boundaries(ctx) // [0 5 6 11]
//	it.Destroy()
//
// Native failures are returned as ErrorCode values:
//
//	_, err := lib.LocaleFromString(ctx, "en-@@")
//	if errors.Is(err, icu4x.ErrLocaleParser) { ... }
package icu4x
