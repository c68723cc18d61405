package transcoder

import (
	"math"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/transcoder/internal/abi"
)

// TypeName returns the WIT spelling of a primitive type.
func TypeName(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case nil:
		return "unit"
	default:
		return abi.TypeName(t)
	}
}

// SizeAlign returns the in-memory size and alignment of a primitive.
// A nil type is the unit type and occupies no space.
func SizeAlign(t wit.Type) (size, align uint32, err error) {
	switch t.(type) {
	case nil:
		return 0, 1, nil
	case wit.Bool, wit.U8, wit.S8:
		return 1, 1, nil
	case wit.U16, wit.S16:
		return 2, 2, nil
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return 4, 4, nil
	case wit.U64, wit.S64, wit.F64:
		return 8, 8, nil
	default:
		return 0, 0, errors.Unsupported(errors.PhaseEncode, "non-primitive type "+TypeName(t))
	}
}

// Flatten converts a Go value of primitive type t into its core argument.
// Integers narrower than 64 bits travel as i32; untyped int values are
// accepted when they fit.
func Flatten(t wit.Type, value any, path []string) (uint64, error) {
	switch t.(type) {
	case wit.Bool:
		v, ok := value.(bool)
		if !ok {
			return 0, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "bool")
		}
		if v {
			return 1, nil
		}
		return 0, nil
	case wit.U8:
		v, err := integer(value, 0, math.MaxUint8, path, "u8")
		return uint64(uint32(v)), err
	case wit.S8:
		v, err := integer(value, math.MinInt8, math.MaxInt8, path, "s8")
		return uint64(uint32(int32(v))), err
	case wit.U16:
		v, err := integer(value, 0, math.MaxUint16, path, "u16")
		return uint64(uint32(v)), err
	case wit.S16:
		v, err := integer(value, math.MinInt16, math.MaxInt16, path, "s16")
		return uint64(uint32(int32(v))), err
	case wit.U32:
		v, err := integer(value, 0, math.MaxUint32, path, "u32")
		return uint64(uint32(v)), err
	case wit.S32:
		v, err := integer(value, math.MinInt32, math.MaxInt32, path, "s32")
		return uint64(uint32(int32(v))), err
	case wit.S64:
		v, err := integer(value, math.MinInt64, math.MaxInt64, path, "s64")
		return uint64(v), err
	case wit.U64:
		switch v := value.(type) {
		case uint64:
			return v, nil
		case int:
			if v < 0 {
				return 0, errors.Overflow(errors.PhaseEncode, path, v, "u64")
			}
			return uint64(v), nil
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "u64")
	case wit.F32:
		switch v := value.(type) {
		case float32:
			return uint64(math.Float32bits(v)), nil
		case float64:
			return uint64(math.Float32bits(float32(v))), nil
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "f32")
	case wit.F64:
		switch v := value.(type) {
		case float64:
			return math.Float64bits(v), nil
		case float32:
			return math.Float64bits(float64(v)), nil
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "f64")
	case wit.Char:
		r, ok := value.(rune)
		if !ok {
			return 0, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "char")
		}
		if (r >= 0xD800 && r <= 0xDFFF) || r < 0 || r >= 0x110000 {
			return 0, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Detail("invalid Unicode scalar value: 0x%X", r).
				Build()
		}
		return uint64(uint32(r)), nil
	default:
		return 0, errors.Unsupported(errors.PhaseEncode, "scalar of type "+TypeName(t))
	}
}

// integer widens the Go integer kinds to int64 and checks the target range.
func integer(value any, lo, hi int64, path []string, wt string) (int64, error) {
	var v int64
	switch x := value.(type) {
	case int8:
		v = int64(x)
	case int16:
		v = int64(x)
	case int32:
		v = int64(x)
	case int64:
		v = x
	case int:
		v = int64(x)
	case uint8:
		v = int64(x)
	case uint16:
		v = int64(x)
	case uint32:
		v = int64(x)
	default:
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), wt)
	}
	if v < lo || v > hi {
		return 0, errors.Overflow(errors.PhaseEncode, path, value, wt)
	}
	return v, nil
}

// Lift converts a core result of primitive type t into its Go value.
func Lift(t wit.Type, raw uint64) (any, error) {
	switch t.(type) {
	case wit.Bool:
		return uint32(raw) != 0, nil
	case wit.U8:
		return uint8(raw), nil
	case wit.S8:
		return int8(raw), nil
	case wit.U16:
		return uint16(raw), nil
	case wit.S16:
		return int16(raw), nil
	case wit.U32:
		return uint32(raw), nil
	case wit.S32:
		return int32(uint32(raw)), nil
	case wit.U64:
		return raw, nil
	case wit.S64:
		return int64(raw), nil
	case wit.F32:
		return math.Float32frombits(uint32(raw)), nil
	case wit.F64:
		return math.Float64frombits(raw), nil
	case wit.Char:
		return rune(uint32(raw)), nil
	default:
		return nil, errors.Unsupported(errors.PhaseDecode, "scalar of type "+TypeName(t))
	}
}

// Load reads a primitive of type t from linear memory.
func Load(mem Memory, addr uint32, t wit.Type) (any, error) {
	size, _, err := SizeAlign(t)
	if err != nil {
		return nil, err
	}
	var raw uint64
	switch size {
	case 0:
		return nil, nil
	case 1:
		v, err := mem.ReadU8(addr)
		if err != nil {
			return nil, err
		}
		raw = uint64(v)
	case 2:
		v, err := mem.ReadU16(addr)
		if err != nil {
			return nil, err
		}
		raw = uint64(v)
	case 4:
		v, err := mem.ReadU32(addr)
		if err != nil {
			return nil, err
		}
		raw = uint64(v)
	case 8:
		v, err := mem.ReadU64(addr)
		if err != nil {
			return nil, err
		}
		raw = v
	}
	if _, ok := t.(wit.Bool); ok {
		return raw != 0, nil
	}
	return Lift(t, raw)
}
