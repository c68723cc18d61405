// Package icubridge exposes a native, non-garbage-collected ICU core to Go
// through a flat C-style ABI.
//
// The core is reached through the Core interface: 32-bit addresses into its
// linear memory, scalar arguments, and caller-owned receive buffers for
// fallible calls. Two backends implement it: a wazero-hosted WebAssembly
// build of the core and an in-process reference core.
//
// # Architecture Overview
//
//	icubridge/         Root package with the Memory, Allocator and Core interfaces
//	├── runtime/       Config, backend selection, reclaimer and invoker wiring
//	├── icu4x/         Typed API: Locale, Decimal, DecimalFormatter, CaseMapper, WordSegmenter
//	├── binding/       Descriptor-driven call composer and borrow-graph validation
//	├── transcoder/    Result envelopes, string slices and writeable buffers
//	├── resource/      Opaque handle wrappers, edge sets and lifetime reclamation
//	├── enum/          Ordinal/name tables derived from one definition
//	├── schema/        Native enum definitions and entry point names
//	├── engine/        wazero backend
//	├── native/        In-process reference core
//	├── terminus/      Demo call chains and their parameter catalog
//	└── errors/        Structured error types for debugging
//
// # Quick Start
//
//	rt, err := runtime.New(ctx, runtime.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	lib, err := icu4x.New(rt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	loc, err := lib.LocaleFromString(ctx, "en-US")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer loc.Destroy()
//
//	f, err := lib.DecimalFormatterWithGroupingStrategy(ctx, loc, icu4x.GroupingAuto)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Destroy()
//
//	d, _ := lib.DecimalFromDoubleWithLowerMagnitude(ctx, 1234.5, -1)
//	defer d.Destroy()
//
//	s, _ := f.Format(ctx, d)
//	fmt.Println(s) // "1,234.5"
//
// # Lifetimes
//
// Every native object is owned by exactly one Go wrapper. Wrappers are
// destroyed explicitly with Destroy or reclaimed after they become
// unreachable; either way the native destructor runs once. Objects that
// borrow native data from other objects hold them in their edge set, and a
// lender's native destructor is deferred until its last borrower is gone.
package icubridge
