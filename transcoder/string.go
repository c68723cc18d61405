package transcoder

import (
	"strings"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/transcoder/internal/abi"
)

// Encoding of a string slice in linear memory.
type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF16
)

func (e Encoding) String() string {
	if e == UTF16 {
		return "utf16"
	}
	return "utf8"
}

// Slice describes a borrowed buffer in linear memory: Len counts code units.
type Slice struct {
	Ptr      uint32
	Len      uint32
	Encoding Encoding
}

// ByteSize returns the size of the buffer in bytes.
func (s Slice) ByteSize() uint32 {
	if s.Encoding == UTF16 {
		return s.Len * 2
	}
	return s.Len
}

// Align returns the alignment of one code unit.
func (s Slice) Align() uint32 {
	if s.Encoding == UTF16 {
		return 2
	}
	return 1
}

// Args returns the (ptr, len) core arguments.
func (s Slice) Args() (uint64, uint64) {
	return uint64(s.Ptr), uint64(s.Len)
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeString copies s into linear memory in the requested encoding and
// tracks the allocation in list. UTF-8 is written straight from the string's
// bytes; UTF-16 goes through a transcoded buffer. Empty strings allocate
// nothing and encode as (0, 0). Ill-formed UTF-8 fails with KindInvalidUTF8.
func EncodeString(mem Memory, alloc Allocator, list *AllocationList, s string, enc Encoding, path []string) (Slice, error) {
	if !utf8.ValidString(s) {
		return Slice{}, errors.InvalidUTF8(errors.PhaseEncode, path, []byte(s))
	}
	return encodeString(mem, alloc, list, s, enc, path)
}

// EncodeStringLossy is EncodeString for parameters the core accepts as
// potentially ill-formed text. UTF-8 bytes pass through unchanged, so
// offsets the core reports still index s. For UTF-16 each ill-formed
// sequence becomes U+FFFD.
func EncodeStringLossy(mem Memory, alloc Allocator, list *AllocationList, s string, enc Encoding, path []string) (Slice, error) {
	if enc == UTF16 {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return encodeString(mem, alloc, list, s, enc, path)
}

func encodeString(mem Memory, alloc Allocator, list *AllocationList, s string, enc Encoding, path []string) (Slice, error) {
	if len(s) > abi.MaxStringSize {
		return Slice{}, errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(path...).
			Detail("string size %d exceeds maximum %d", len(s), abi.MaxStringSize).
			Build()
	}
	if len(s) == 0 {
		return Slice{Encoding: enc}, nil
	}

	var data []byte
	switch enc {
	case UTF16:
		b, err := utf16le.NewEncoder().Bytes(unsafe.Slice(unsafe.StringData(s), len(s)))
		if err != nil {
			return Slice{}, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Detail("transcode to UTF-16").
				Cause(err).
				Build()
		}
		data = b
	default:
		data = unsafe.Slice(unsafe.StringData(s), len(s))
	}

	sl := Slice{Len: uint32(len(data)), Encoding: enc}
	if enc == UTF16 {
		sl.Len = uint32(len(data) / 2)
	}
	ptr, err := alloc.Alloc(uint32(len(data)), sl.Align())
	if err != nil || ptr == 0 {
		return Slice{}, errors.New(errors.PhaseEncode, errors.KindAllocation).
			Path(path...).
			Detail("failed to allocate %d bytes for string data", len(data)).
			Cause(err).
			Build()
	}
	if list != nil {
		list.Add(ptr, uint32(len(data)), sl.Align())
	}
	// Memory.Write copies; data is never retained.
	if err := mem.Write(ptr, data); err != nil {
		return Slice{}, outOfBounds(errors.PhaseEncode, path, mem, ptr, "write string data", err)
	}
	sl.Ptr = ptr
	return sl, nil
}

// DecodeString reads a slice from linear memory into a Go string.
func DecodeString(mem Memory, sl Slice, path []string) (string, error) {
	if sl.Len == 0 {
		return "", nil
	}
	size, ok := abi.SafeMulU32(sl.Len, sl.Align())
	if !ok {
		return "", errors.Overflow(errors.PhaseDecode, path, sl.Len, sl.Encoding.String())
	}
	data, err := mem.Read(sl.Ptr, size)
	if err != nil {
		return "", outOfBounds(errors.PhaseDecode, path, mem, sl.Ptr, "read string data", err)
	}

	if sl.Encoding == UTF16 {
		b, err := utf16le.NewDecoder().Bytes(data)
		if err != nil {
			return "", errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path...).
				Detail("transcode from UTF-16").
				Cause(err).
				Build()
		}
		return string(b), nil
	}

	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, path, data)
	}
	return string(data), nil
}
