package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode    Phase = "encode"    // Go to native
	PhaseDecode    Phase = "decode"    // native to Go
	PhaseCall      Phase = "call"      // native entry point invocation
	PhaseLifecycle Phase = "lifecycle" // handle wrap/destroy/reclaim
	PhaseValidate  Phase = "validate"  // descriptor and enum table validation
	PhaseLoad      Phase = "load"      // core loading
	PhaseConfig    Phase = "config"    // configuration
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch      Kind = "type_mismatch"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindInvalidData       Kind = "invalid_data"
	KindUnsupported       Kind = "unsupported"
	KindAllocation        Kind = "allocation"
	KindInvalidUTF8       Kind = "invalid_utf8"
	KindOverflow          Kind = "overflow"
	KindNilPointer        Kind = "nil_pointer"
	KindInvalidEnum       Kind = "invalid_enum"
	KindNotFound          Kind = "not_found"
	KindNotInitialized    Kind = "not_initialized"
	KindInvalidInput      Kind = "invalid_input"
	KindInstantiation     Kind = "instantiation"
	KindUseAfterDestroy   Kind = "use_after_destroy"
	KindDoubleDestroy     Kind = "double_destroy"
	KindAlreadyRegistered Kind = "already_registered"
	KindTrap              Kind = "trap"
	KindInvalidDescriptor Kind = "invalid_descriptor"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	WitType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.WitType != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.WitType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", WIT type ")
			b.WriteString(e.WitType)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("WIT type ")
			b.WriteString(e.WitType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WitType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WitType sets the WIT type name
func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, witType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		WitType: witType,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOverflow,
		Path:    path,
		WitType: targetType,
		Detail:  fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:   value,
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindInvalidEnum,
		Path:    path,
		WitType: enumType,
		Detail:  fmt.Sprintf("invalid enum value %v for %s", value, enumType),
		Value:   value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Lifecycle constructors

// UseAfterDestroy reports a call on a wrapper whose native object is gone.
func UseAfterDestroy(class string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindUseAfterDestroy,
		GoType: class,
		Detail: fmt.Sprintf("handle 0x%x already destroyed", handle),
		Value:  handle,
	}
}

// DoubleDestroy reports a second explicit destroy of the same wrapper.
func DoubleDestroy(class string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindDoubleDestroy,
		GoType: class,
		Detail: fmt.Sprintf("handle 0x%x destroyed twice", handle),
		Value:  handle,
	}
}

// AlreadyRegistered reports a second reclaimer registration for one handle.
func AlreadyRegistered(class string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindAlreadyRegistered,
		GoType: class,
		Detail: fmt.Sprintf("handle 0x%x already registered", handle),
		Value:  handle,
	}
}

// Trap wraps a failure raised by the native core while running symbol.
func Trap(symbol string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindTrap,
		Path:   []string{symbol},
		Detail: "native call failed",
		Cause:  cause,
	}
}

// InvalidDescriptor reports a binding descriptor that fails static validation.
func InvalidDescriptor(symbol string, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidDescriptor,
		Path:   []string{symbol},
		Detail: fmt.Sprintf(detail, args...),
	}
}

// MissingSymbolsError is returned when a loaded core lacks entry points
// that the binding catalog requires.
type MissingSymbolsError struct {
	Symbols []string
}

// NewMissingSymbolsError creates an error from a list of entry point names.
func NewMissingSymbolsError(symbols []string) *MissingSymbolsError {
	s := append([]string(nil), symbols...)
	sort.Strings(s)
	return &MissingSymbolsError{Symbols: s}
}

// symbolOwner extracts the type segment of an icu4x_<Type>_<method>_mv1 name.
func symbolOwner(symbol string) string {
	rest, ok := strings.CutPrefix(symbol, "icu4x_")
	if !ok {
		return ""
	}
	owner, _, found := strings.Cut(rest, "_")
	if !found {
		return ""
	}
	return owner
}

func (e *MissingSymbolsError) Error() string {
	if len(e.Symbols) == 0 {
		return "[load] not_found: no symbols specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("missing %d native entry point(s):\n", len(e.Symbols)))

	// Group by owning type for cleaner output
	byOwner := make(map[string][]string)
	var order []string
	for _, sym := range e.Symbols {
		owner := symbolOwner(sym)
		if owner == "" {
			owner = "(runtime)"
		}
		if _, exists := byOwner[owner]; !exists {
			order = append(order, owner)
		}
		byOwner[owner] = append(byOwner[owner], sym)
	}

	for _, owner := range order {
		b.WriteString("\n  ")
		b.WriteString(owner)
		b.WriteString(":\n")
		for _, sym := range byOwner[owner] {
			b.WriteString("    - ")
			b.WriteString(sym)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *MissingSymbolsError) Is(target error) bool {
	_, ok := target.(*MissingSymbolsError)
	return ok
}

// Runtime package convenience constructors

// NotInitialized creates a not-initialized error for a missing core or runtime
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a core loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Config creates a configuration error
func Config(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
