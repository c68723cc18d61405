package binding

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/icu-bridge/enum"
	"github.com/wippyai/icu-bridge/transcoder"
)

// ParamKind is how an argument crosses the boundary.
type ParamKind uint8

const (
	// Primitive is a scalar passed by value.
	Primitive ParamKind = iota
	// String is a (ptr, len) slice copied into native memory for the call.
	String
	// Enum is a Go enum value lowered to its native ordinal.
	Enum
	// Handle is another wrapper's native handle.
	Handle
)

func (k ParamKind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case String:
		return "string"
	case Enum:
		return "enum"
	case Handle:
		return "handle"
	default:
		return "unknown"
	}
}

// Param describes one argument.
type Param struct {
	// Type is the scalar type of a Primitive.
	Type wit.Type
	// Enum lowers Enum arguments.
	Enum enum.Codec
	Name string
	// Class is the expected class of a Handle argument.
	Class    string
	Kind     ParamKind
	Encoding transcoder.Encoding
	// Borrowed marks an argument the returned object keeps borrowing.
	Borrowed bool
	// Lossy marks a string the core accepts as ill-formed text.
	Lossy bool
}

// ReturnKind is what a call produces on success.
type ReturnKind uint8

const (
	Void ReturnKind = iota
	Scalar
	EnumValue
	Object
	Text
)

func (k ReturnKind) String() string {
	switch k {
	case Void:
		return "void"
	case Scalar:
		return "scalar"
	case EnumValue:
		return "enum"
	case Object:
		return "object"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Return describes the success value.
// Text results are written into a native writeable passed as the last argument.
type Return struct {
	Type  wit.Type
	Enum  enum.Codec
	Class string
	Kind  ReturnKind
}

// Failure describes the error variant of a fallible call.
// Codec decodes an i32 error ordinal into a Go value implementing error.
// A nil Codec is a unit error and Unit is returned instead.
type Failure struct {
	Codec enum.Codec
	Unit  error
}

// Signature is the declarative description of one native entry point.
type Signature struct {
	Failure *Failure
	Symbol  string
	Params  []Param
	Return  Return
	// Self passes the receiver's handle after the receive buffer.
	Self bool
	// SelfBorrowed marks a result that borrows from the receiver.
	SelfBorrowed bool
}

// Fallible reports whether the call takes a receive buffer.
func (s *Signature) Fallible() bool {
	return s.Failure != nil
}

// okType is the payload type of the Ok variant in the receive buffer.
func (s *Signature) okType() wit.Type {
	switch s.Return.Kind {
	case Scalar:
		return s.Return.Type
	case EnumValue:
		return wit.S32{}
	case Object:
		return wit.U32{}
	default:
		return nil
	}
}

func (s *Signature) errType() wit.Type {
	if s.Failure == nil || s.Failure.Codec == nil {
		return nil
	}
	return wit.S32{}
}

// Prim declares a scalar parameter.
func Prim(name string, t wit.Type) Param {
	return Param{Name: name, Kind: Primitive, Type: t}
}

// Str declares a UTF-8 string parameter.
func Str(name string) Param {
	return Param{Name: name, Kind: String, Encoding: transcoder.UTF8}
}

// Str16 declares a UTF-16 string parameter.
func Str16(name string) Param {
	return Param{Name: name, Kind: String, Encoding: transcoder.UTF16}
}

// EnumOf declares an enum parameter.
func EnumOf(name string, c enum.Codec) Param {
	return Param{Name: name, Kind: Enum, Enum: c}
}

// Ref declares a handle parameter of class.
func Ref(name, class string) Param {
	return Param{Name: name, Kind: Handle, Class: class}
}

// Lent marks p as borrowed by the result.
func Lent(p Param) Param {
	p.Borrowed = true
	return p
}

// Lossy lets the string parameter p carry ill-formed UTF-8.
func Lossy(p Param) Param {
	p.Lossy = true
	return p
}

// Returns a scalar.
func Returns(t wit.Type) Return { return Return{Kind: Scalar, Type: t} }

// ReturnsEnum returns an enum decoded through c.
func ReturnsEnum(c enum.Codec) Return { return Return{Kind: EnumValue, Enum: c} }

// ReturnsObject returns an owned object of class.
func ReturnsObject(class string) Return { return Return{Kind: Object, Class: class} }

// ReturnsText returns text written into a writeable.
func ReturnsText() Return { return Return{Kind: Text} }
