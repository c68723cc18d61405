package native

import (
	"math"
)

const classDecimal = "Decimal"

func (c *Core) decimal(sym string, addr uint32) (*decimal, error) {
	v, err := c.lookup(sym, addr, classDecimal)
	if err != nil {
		return nil, err
	}
	return v.(*decimal), nil
}

func (c *Core) newDecimal(d *decimal) ([]uint64, error) {
	h, err := c.newObject(classDecimal, d)
	if err != nil {
		return nil, err
	}
	return ret32(h), nil
}

func (c *Core) decimalFromInt32(sym string, args []uint64) ([]uint64, error) {
	return c.newDecimal(decimalFromInt64(int64(int32(u32(args[0])))))
}

func (c *Core) decimalFromUint32(sym string, args []uint64) ([]uint64, error) {
	return c.newDecimal(decimalFromUint64(uint64(u32(args[0]))))
}

func (c *Core) decimalFromInt64(sym string, args []uint64) ([]uint64, error) {
	return c.newDecimal(decimalFromInt64(int64(args[0])))
}

func (c *Core) decimalFromUint64(sym string, args []uint64) ([]uint64, error) {
	return c.newDecimal(decimalFromUint64(args[0]))
}

// fromDouble builds a decimal entry whose result is result<Decimal, ()>.
func fromDouble(convert func(f float64, arg uint64) (*decimal, bool)) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		ret := u32(args[0])
		var extra uint64
		if len(args) > 2 {
			extra = args[2]
		}
		d, ok := convert(math.Float64frombits(args[1]), extra)
		if !ok {
			return none(c.putResult(sym, ret, 4, false, nil))
		}
		h, err := c.newObject(classDecimal, d)
		if err != nil {
			return nil, err
		}
		return none(c.okHandle(sym, ret, h))
	}
}

func withIntegerPrecision(f float64, _ uint64) (*decimal, bool) {
	if f != math.Trunc(f) {
		return nil, false
	}
	return decimalFromFloat(f)
}

func withLowerMagnitude(f float64, arg uint64) (*decimal, bool) {
	d, ok := decimalFromFloat(f)
	if !ok {
		return nil, false
	}
	d.round(i16(arg), roundHalfEven)
	return d, true
}

func withSignificantDigits(f float64, arg uint64) (*decimal, bool) {
	n := int(uint8(arg))
	if n == 0 {
		return nil, false
	}
	d, ok := decimalFromFloat(f)
	if !ok {
		return nil, false
	}
	d.roundDigits(d.msd()-n+1, roundHalfEven)
	d.trimEnd()
	return d, true
}

func withRoundTripPrecision(f float64, _ uint64) (*decimal, bool) {
	return decimalFromFloat(f)
}

func (c *Core) decimalFromString(sym string, args []uint64) ([]uint64, error) {
	ret := u32(args[0])
	text, err := c.readText(sym, u32(args[1]), u32(args[2]), false)
	if err != nil {
		return nil, err
	}
	d, failure := parseDecimal(string(text))
	switch failure {
	case parseSyntax:
		return none(c.errCode(sym, ret, "DecimalSyntaxError"))
	case parseLimit:
		return none(c.errCode(sym, ret, "DecimalLimitError"))
	}
	h, err := c.newObject(classDecimal, d)
	if err != nil {
		return nil, err
	}
	return none(c.okHandle(sym, ret, h))
}

// decimalQuery builds an entry returning a scalar derived from self.
func decimalQuery(q func(d *decimal, args []uint64) []uint64) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		d, err := c.decimal(sym, u32(args[0]))
		if err != nil {
			return nil, err
		}
		return q(d, args[1:]), nil
	}
}

// decimalUpdate builds an entry mutating self in place.
func decimalUpdate(u func(d *decimal, args []uint64)) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		d, err := c.decimal(sym, u32(args[0]))
		if err != nil {
			return nil, err
		}
		u(d, args[1:])
		return nil, nil
	}
}

// decimalRound builds an entry rounding self at a position with a fixed mode.
func decimalRound(mode roundingMode) handler {
	return decimalUpdate(func(d *decimal, args []uint64) {
		d.round(i16(args[0]), mode)
	})
}

func (c *Core) decimalSetSign(sym string, args []uint64) ([]uint64, error) {
	d, err := c.decimal(sym, u32(args[0]))
	if err != nil {
		return nil, err
	}
	s, err := signs.Value(int32(u32(args[1])))
	if err != nil {
		return nil, c.trap(sym, "invalid DecimalSign ordinal", u32(args[1]))
	}
	d.sign = s
	return nil, nil
}

func (c *Core) decimalApplySignDisplay(sym string, args []uint64) ([]uint64, error) {
	d, err := c.decimal(sym, u32(args[0]))
	if err != nil {
		return nil, err
	}
	sd, err := signDisplays.Value(int32(u32(args[1])))
	if err != nil {
		return nil, c.trap(sym, "invalid DecimalSignDisplay ordinal", u32(args[1]))
	}
	d.applySignDisplay(sd)
	return nil, nil
}

func (c *Core) decimalRoundWithMode(sym string, args []uint64) ([]uint64, error) {
	d, err := c.decimal(sym, u32(args[0]))
	if err != nil {
		return nil, err
	}
	mode, err := roundingModes.Value(int32(u32(args[2])))
	if err != nil {
		return nil, c.trap(sym, "invalid DecimalSignedRoundingMode ordinal", u32(args[2]))
	}
	d.round(i16(args[1]), mode)
	return nil, nil
}

func (c *Core) decimalRoundWithModeAndIncrement(sym string, args []uint64) ([]uint64, error) {
	d, err := c.decimal(sym, u32(args[0]))
	if err != nil {
		return nil, err
	}
	mode, err := roundingModes.Value(int32(u32(args[2])))
	if err != nil {
		return nil, c.trap(sym, "invalid DecimalSignedRoundingMode ordinal", u32(args[2]))
	}
	inc, err := roundingIncrements.Value(int32(u32(args[3])))
	if err != nil {
		return nil, c.trap(sym, "invalid DecimalRoundingIncrement ordinal", u32(args[3]))
	}
	d.roundIncrement(i16(args[1]), mode, inc)
	return nil, nil
}

// decimalConcatenateEnd returns result<(), ()> in a one-byte buffer.
func (c *Core) decimalConcatenateEnd(sym string, args []uint64) ([]uint64, error) {
	ret := u32(args[0])
	d, err := c.decimal(sym, u32(args[1]))
	if err != nil {
		return nil, err
	}
	other, err := c.decimal(sym, u32(args[2]))
	if err != nil {
		return nil, err
	}
	if d == other {
		other = other.clone()
	}
	ok := d.concatenateEnd(other)
	if ok {
		// The digits moved into d.
		*other = decimal{}
	}
	return none(c.putResult(sym, ret, 0, ok, nil))
}

func (c *Core) decimalToString(sym string, args []uint64) ([]uint64, error) {
	d, err := c.decimal(sym, u32(args[0]))
	if err != nil {
		return nil, err
	}
	return none(c.write(sym, u32(args[1]), d.String()))
}
