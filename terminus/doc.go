// Package terminus is the demo layer: a declarative catalog of call chains
// over the typed surface, each described by a function name, a display name
// and ordered parameter descriptors.
//
// A presentation layer renders each parameter by its TypeUse, collects the
// arguments as strings and hands them to Invoke:
//
//	t, _ := terminus.Lookup("DecimalFormatter.format")
//	out, err := t.Invoke(ctx, lib, "de", "Auto", "-1234.5", "-1")
//	// out == "-1.234,5"
//
// Every object a terminus builds is destroyed before Invoke returns.
package terminus
