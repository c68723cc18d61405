package terminus

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/icu-bridge/enum"
	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/icu4x"
	"github.com/wippyai/icu-bridge/transcoder"
)

// TypeUse tells a presentation layer which input widget a parameter needs.
type TypeUse string

const (
	UseString     TypeUse = "string"
	UseNumber     TypeUse = "number"
	UseBoolean    TypeUse = "boolean"
	UseEnumerator TypeUse = "enumerator"
)

// Param describes one input of a terminus.
type Param struct {
	Name    string   `json:"name" jsonschema:"required"`
	Type    string   `json:"type" jsonschema:"required"`
	TypeUse TypeUse  `json:"typeUse" jsonschema:"required,enum=string,enum=number,enum=boolean,enum=enumerator"`
	Values  []string `json:"values,omitempty" jsonschema:"description=Variant names of an enumerator"`

	prim  wit.Type
	codec enum.Codec
}

// Runner executes a terminus against a bound library with parsed arguments.
type Runner func(ctx context.Context, lib *icu4x.Lib, args []any) (string, error)

// Terminus is one demo call chain: it builds every object it needs from
// flat arguments, calls one method and destroys what it built.
type Terminus struct {
	Function string  `json:"funcName" jsonschema:"required"`
	Display  string  `json:"displayName" jsonschema:"required"`
	Params   []Param `json:"parameters"`

	run Runner
}

func prim(name string, t wit.Type) Param {
	p := Param{Name: name, Type: transcoder.TypeName(t), prim: t}
	switch t.(type) {
	case wit.String:
		p.TypeUse = UseString
	case wit.Bool:
		p.TypeUse = UseBoolean
	default:
		p.TypeUse = UseNumber
	}
	return p
}

func enumerator(name string, c enum.Codec) Param {
	return Param{
		Name:    name,
		Type:    c.TypeName(),
		TypeUse: UseEnumerator,
		Values:  c.Names(),
		codec:   c,
	}
}

// Parse converts a string argument to the Go value the typed surface takes.
func (p Param) Parse(s string) (any, error) {
	if p.codec != nil {
		return p.codec.Parse(s)
	}
	var (
		v   any
		err error
	)
	switch p.prim.(type) {
	case wit.String:
		return s, nil
	case wit.Bool:
		v, err = strconv.ParseBool(s)
	case wit.U8:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 8)
		v = uint8(n)
	case wit.S16:
		var n int64
		n, err = strconv.ParseInt(s, 10, 16)
		v = int16(n)
	case wit.S32:
		var n int64
		n, err = strconv.ParseInt(s, 10, 32)
		v = int32(n)
	case wit.S64:
		v, err = strconv.ParseInt(s, 10, 64)
	case wit.F64:
		v, err = strconv.ParseFloat(s, 64)
	default:
		return nil, errors.Unsupported(errors.PhaseEncode, "terminus parameter of type "+p.Type)
	}
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Path(p.Name).
			WitType(p.Type).
			Value(s).
			Cause(err).
			Detail("cannot parse %q as %s", s, p.Type).
			Build()
	}
	return v, nil
}

// Parse converts string arguments per parameter.
func (t *Terminus) Parse(args []string) ([]any, error) {
	if len(args) != len(t.Params) {
		return nil, errors.InvalidInput(errors.PhaseEncode,
			fmt.Sprintf("%s takes %d arguments, got %d", t.Function, len(t.Params), len(args)))
	}
	out := make([]any, len(args))
	for i, p := range t.Params {
		v, err := p.Parse(args[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Invoke parses args and runs the terminus.
func (t *Terminus) Invoke(ctx context.Context, lib *icu4x.Lib, args ...string) (string, error) {
	parsed, err := t.Parse(args)
	if err != nil {
		return "", err
	}
	return t.run(ctx, lib, parsed)
}

// Signature renders the terminus as name(param: type, ...).
func (t *Terminus) Signature() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Name + ": " + p.Type
	}
	return t.Function + "(" + strings.Join(params, ", ") + ")"
}
