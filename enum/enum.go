// Package enum derives bidirectional ordinal/name tables for native enumerated
// types from a single definition.
//
// A Spec is the native side's definition: the type name, its cases with their
// ordinals, and the explicit default. A Table binds a Spec to Go values and is
// checked for totality when it is derived: every native case has exactly one
// Go value and every Go value names a native case. An ordinal outside the Spec
// is a defect and decodes to an error rather than a fallback.
package enum

import (
	"fmt"
	"sort"

	"github.com/wippyai/icu-bridge/errors"
)

// Case is one native variant.
type Case struct {
	Name    string
	Ordinal int32
}

// Spec is the native definition of one enumerated type.
type Spec struct {
	Name    string
	Default string
	Cases   []Case
}

// Validate checks that names and ordinals are unique and the default exists.
func (s Spec) Validate() error {
	if s.Name == "" {
		return errors.InvalidInput(errors.PhaseValidate, "enum spec without a name")
	}
	if len(s.Cases) == 0 {
		return errors.New(errors.PhaseValidate, errors.KindInvalidEnum).
			WitType(s.Name).Detail("no cases").Build()
	}
	names := make(map[string]struct{}, len(s.Cases))
	ordinals := make(map[int32]string, len(s.Cases))
	for _, c := range s.Cases {
		if _, dup := names[c.Name]; dup {
			return errors.New(errors.PhaseValidate, errors.KindInvalidEnum).
				WitType(s.Name).Detail("duplicate case %q", c.Name).Build()
		}
		if prev, dup := ordinals[c.Ordinal]; dup {
			return errors.New(errors.PhaseValidate, errors.KindInvalidEnum).
				WitType(s.Name).Detail("cases %q and %q share ordinal %d", prev, c.Name, c.Ordinal).Build()
		}
		names[c.Name] = struct{}{}
		ordinals[c.Ordinal] = c.Name
	}
	if _, ok := names[s.Default]; !ok {
		return errors.New(errors.PhaseValidate, errors.KindInvalidEnum).
			WitType(s.Name).Detail("default %q is not a case", s.Default).Build()
	}
	return nil
}

// Ordinal returns the native ordinal of the named case.
func (s Spec) Ordinal(name string) (int32, bool) {
	for _, c := range s.Cases {
		if c.Name == name {
			return c.Ordinal, true
		}
	}
	return 0, false
}

// MustOrdinal is Ordinal for names known at compile time.
func (s Spec) MustOrdinal(name string) int32 {
	o, ok := s.Ordinal(name)
	if !ok {
		panic(fmt.Sprintf("enum %s has no case %q", s.Name, name))
	}
	return o
}

// NameOf returns the case name for a native ordinal.
func (s Spec) NameOf(ordinal int32) (string, bool) {
	for _, c := range s.Cases {
		if c.Ordinal == ordinal {
			return c.Name, true
		}
	}
	return "", false
}

// Codec is the type-erased view of a Table used by descriptor-driven callers.
type Codec interface {
	TypeName() string
	Encode(v any) (int32, error)
	Decode(ordinal int32) (any, error)
	Parse(name string) (any, error)
	Names() []string
}

// Table maps Go values of T to native ordinals and names.
type Table[T comparable] struct {
	spec        Spec
	order       []T
	toOrdinal   map[T]int32
	fromOrdinal map[int32]T
	names       map[T]string
	byName      map[string]T
	def         T
}

// Derive builds a Table from spec and the Go value of each case, keyed by case name.
// Derivation fails unless the mapping is total in both directions.
func Derive[T comparable](spec Spec, values map[string]T) (*Table[T], error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	t := &Table[T]{
		spec:        spec,
		order:       make([]T, 0, len(spec.Cases)),
		toOrdinal:   make(map[T]int32, len(spec.Cases)),
		fromOrdinal: make(map[int32]T, len(spec.Cases)),
		names:       make(map[T]string, len(spec.Cases)),
		byName:      make(map[string]T, len(spec.Cases)),
	}

	cases := append([]Case(nil), spec.Cases...)
	sort.SliceStable(cases, func(i, j int) bool { return cases[i].Ordinal < cases[j].Ordinal })

	for _, c := range cases {
		v, ok := values[c.Name]
		if !ok {
			return nil, errors.New(errors.PhaseValidate, errors.KindInvalidEnum).
				WitType(spec.Name).Detail("case %q has no Go value", c.Name).Build()
		}
		if prev, dup := t.names[v]; dup {
			return nil, errors.New(errors.PhaseValidate, errors.KindInvalidEnum).
				WitType(spec.Name).Detail("cases %q and %q share Go value %v", prev, c.Name, v).Build()
		}
		t.order = append(t.order, v)
		t.toOrdinal[v] = c.Ordinal
		t.fromOrdinal[c.Ordinal] = v
		t.names[v] = c.Name
		t.byName[c.Name] = v
	}
	if len(values) != len(spec.Cases) {
		for name := range values {
			if _, ok := t.byName[name]; !ok {
				return nil, errors.New(errors.PhaseValidate, errors.KindInvalidEnum).
					WitType(spec.Name).Detail("Go value for unknown case %q", name).Build()
			}
		}
	}
	t.def = t.byName[spec.Default]
	return t, nil
}

// MustDerive is Derive for package-level tables; it panics on a non-total mapping.
func MustDerive[T comparable](spec Spec, values map[string]T) *Table[T] {
	t, err := Derive(spec, values)
	if err != nil {
		panic(err)
	}
	return t
}

// Spec returns the native definition the table was derived from.
func (t *Table[T]) Spec() Spec { return t.spec }

// TypeName returns the native type name.
func (t *Table[T]) TypeName() string { return t.spec.Name }

// Default returns the explicit default value.
func (t *Table[T]) Default() T { return t.def }

// Values returns all Go values in ordinal order.
func (t *Table[T]) Values() []T {
	return append([]T(nil), t.order...)
}

// Names returns all case names in ordinal order.
func (t *Table[T]) Names() []string {
	out := make([]string, len(t.order))
	for i, v := range t.order {
		out[i] = t.names[v]
	}
	return out
}

// Ordinal returns the native ordinal for v.
func (t *Table[T]) Ordinal(v T) (int32, error) {
	o, ok := t.toOrdinal[v]
	if !ok {
		return 0, errors.InvalidEnum(errors.PhaseEncode, nil, v, t.spec.Name)
	}
	return o, nil
}

// Value returns the Go value for a native ordinal.
func (t *Table[T]) Value(ordinal int32) (T, error) {
	v, ok := t.fromOrdinal[ordinal]
	if !ok {
		var zero T
		return zero, errors.InvalidEnum(errors.PhaseDecode, nil, ordinal, t.spec.Name)
	}
	return v, nil
}

// Name returns the symbolic name of v, or "" if v is not a case.
func (t *Table[T]) Name(v T) string {
	return t.names[v]
}

// Lookup returns the Go value of the named case.
func (t *Table[T]) Lookup(name string) (T, bool) {
	v, ok := t.byName[name]
	return v, ok
}

// Encode implements Codec.
func (t *Table[T]) Encode(v any) (int32, error) {
	tv, ok := v.(T)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), t.spec.Name)
	}
	return t.Ordinal(tv)
}

// Decode implements Codec.
func (t *Table[T]) Decode(ordinal int32) (any, error) {
	v, err := t.Value(ordinal)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Parse implements Codec.
func (t *Table[T]) Parse(name string) (any, error) {
	v, ok := t.byName[name]
	if !ok {
		return nil, errors.InvalidEnum(errors.PhaseEncode, nil, name, t.spec.Name)
	}
	return v, nil
}

var _ Codec = (*Table[int])(nil)
