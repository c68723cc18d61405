package transcoder

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/icu-bridge/errors"
)

// Tag values of the is_ok byte.
const (
	TagErr uint8 = 0
	TagOK  uint8 = 1
)

// ResultLayout is the layout of a fallible call's receive buffer.
// A nil Ok or Err type is the unit type.
type ResultLayout struct {
	Ok        wit.Type
	Err       wit.Type
	Size      uint32
	Align     uint32
	TagOffset uint32
}

// NewResultLayout computes the receive buffer layout of result<ok, err>:
// the larger payload at offset 0 followed by the tag byte.
func NewResultLayout(ok, err wit.Type) (ResultLayout, error) {
	okSize, okAlign, e := SizeAlign(ok)
	if e != nil {
		return ResultLayout{}, e
	}
	errSize, errAlign, e := SizeAlign(err)
	if e != nil {
		return ResultLayout{}, e
	}
	payload := max(okSize, errSize)
	align := max(okAlign, errAlign)
	return ResultLayout{
		Ok:        ok,
		Err:       err,
		Size:      payload + 1,
		Align:     align,
		TagOffset: payload,
	}, nil
}

// Envelope is a decoded result: the tag and its conditional payload.
// Value is nil for unit payloads.
type Envelope struct {
	Value any
	Ok    bool
}

// Alloc allocates a receive buffer and tracks it in list for release.
func (l ResultLayout) Alloc(alloc Allocator, list *AllocationList) (uint32, error) {
	ptr, err := alloc.Alloc(l.Size, l.Align)
	if err != nil {
		return 0, errors.New(errors.PhaseEncode, errors.KindAllocation).
			Detail("receive buffer of %d bytes (align %d)", l.Size, l.Align).
			Cause(err).
			Build()
	}
	if ptr == 0 {
		return 0, errors.AllocationFailed(errors.PhaseEncode, l.Size, l.Align)
	}
	if list != nil {
		list.Add(ptr, l.Size, l.Align)
	}
	return ptr, nil
}

// Decode reads the tag first and then the payload of the variant it selects.
func (l ResultLayout) Decode(mem Memory, addr uint32) (Envelope, error) {
	tag, err := mem.ReadU8(addr + l.TagOffset)
	if err != nil {
		return Envelope{}, outOfBounds(errors.PhaseDecode, nil, mem, addr+l.TagOffset, "read result tag", err)
	}

	var payload wit.Type
	switch tag {
	case TagOK:
		payload = l.Ok
	case TagErr:
		payload = l.Err
	default:
		return Envelope{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("result tag %d is neither ok nor err", tag).
			Value(tag).
			Build()
	}

	env := Envelope{Ok: tag == TagOK}
	if payload == nil {
		return env, nil
	}
	v, err := Load(mem, addr, payload)
	if err != nil {
		return Envelope{}, outOfBounds(errors.PhaseDecode, nil, mem, addr, "read result payload", err)
	}
	env.Value = v
	return env, nil
}
