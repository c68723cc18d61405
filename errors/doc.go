// Package errors provides structured error types for the bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the argument path, Go/WIT type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("Decimal.pad_start", "position").
//		GoType("string").
//		WitType("s16").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "s16")
//	err := errors.UseAfterDestroy("Decimal", 0x1040)
//
// These errors describe failures of the bridge itself. Error codes returned by
// the native core are not bridge failures and are decoded into their own type.
// All errors implement the standard error interface and support errors.Is/As.
package errors
