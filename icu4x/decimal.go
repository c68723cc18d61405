package icu4x

import (
	"context"

	"github.com/wippyai/icu-bridge/resource"
)

// Decimal is an arbitrary-precision decimal with explicit magnitude bounds.
type Decimal struct{ object }

func (l *Lib) decimal(o object, err error) (*Decimal, error) {
	if err != nil {
		return nil, err
	}
	return &Decimal{o}, nil
}

func (l *Lib) DecimalFromInt32(ctx context.Context, v int32) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_int32", nil, v))
}

func (l *Lib) DecimalFromUint32(ctx context.Context, v uint32) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_uint32", nil, v))
}

func (l *Lib) DecimalFromInt64(ctx context.Context, v int64) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_int64", nil, v))
}

func (l *Lib) DecimalFromUint64(ctx context.Context, v uint64) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_uint64", nil, v))
}

// DecimalFromDoubleWithIntegerPrecision converts an integer-valued f. Any
// fractional part fails with ErrDecimalLimit.
func (l *Lib) DecimalFromDoubleWithIntegerPrecision(ctx context.Context, f float64) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_double_with_integer_precision", nil, f))
}

// DecimalFromDoubleWithLowerMagnitude rounds f half-even at magnitude and
// keeps trailing zeros down to it. NaN and infinities fail with ErrDecimalLimit.
func (l *Lib) DecimalFromDoubleWithLowerMagnitude(ctx context.Context, f float64, magnitude int16) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_double_with_lower_magnitude", nil, f, magnitude))
}

// DecimalFromDoubleWithSignificantDigits keeps digits significant digits.
func (l *Lib) DecimalFromDoubleWithSignificantDigits(ctx context.Context, f float64, digits uint8) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_double_with_significant_digits", nil, f, digits))
}

// DecimalFromDoubleWithRoundTripPrecision uses the shortest representation
// that parses back to f.
func (l *Lib) DecimalFromDoubleWithRoundTripPrecision(ctx context.Context, f float64) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_double_with_round_trip_precision", nil, f))
}

// DecimalFromString parses a plain decimal literal such as "-001.50".
func (l *Lib) DecimalFromString(ctx context.Context, v string) (*Decimal, error) {
	return l.decimal(l.construct(ctx, "Decimal.from_string", nil, v))
}

// DigitAt returns the digit at magnitude, 0 outside the stored digits.
func (d *Decimal) DigitAt(ctx context.Context, magnitude int16) (uint8, error) {
	return call[uint8](ctx, d.lib, "Decimal.digit_at", d.obj, magnitude)
}

func (d *Decimal) MagnitudeStart(ctx context.Context) (int16, error) {
	return call[int16](ctx, d.lib, "Decimal.magnitude_start", d.obj)
}

func (d *Decimal) MagnitudeEnd(ctx context.Context) (int16, error) {
	return call[int16](ctx, d.lib, "Decimal.magnitude_end", d.obj)
}

// NonzeroMagnitudeStart is the magnitude of the lowest nonzero digit, 0 for zero.
func (d *Decimal) NonzeroMagnitudeStart(ctx context.Context) (int16, error) {
	return call[int16](ctx, d.lib, "Decimal.nonzero_magnitude_start", d.obj)
}

// NonzeroMagnitudeEnd is the magnitude of the highest nonzero digit, 0 for zero.
func (d *Decimal) NonzeroMagnitudeEnd(ctx context.Context) (int16, error) {
	return call[int16](ctx, d.lib, "Decimal.nonzero_magnitude_end", d.obj)
}

func (d *Decimal) IsZero(ctx context.Context) (bool, error) {
	return call[bool](ctx, d.lib, "Decimal.is_zero", d.obj)
}

// MultiplyPow10 shifts the decimal point. On overflow the value becomes zero.
func (d *Decimal) MultiplyPow10(ctx context.Context, power int16) error {
	return d.void(ctx, "Decimal.multiply_pow10", power)
}

func (d *Decimal) Sign(ctx context.Context) (Sign, error) {
	return call[Sign](ctx, d.lib, "Decimal.sign", d.obj)
}

func (d *Decimal) SetSign(ctx context.Context, s Sign) error {
	return d.void(ctx, "Decimal.set_sign", s)
}

func (d *Decimal) ApplySignDisplay(ctx context.Context, sd SignDisplay) error {
	return d.void(ctx, "Decimal.apply_sign_display", sd)
}

// TrimStart removes leading zeros.
func (d *Decimal) TrimStart(ctx context.Context) error {
	return d.void(ctx, "Decimal.trim_start")
}

// TrimEnd removes trailing zeros.
func (d *Decimal) TrimEnd(ctx context.Context) error {
	return d.void(ctx, "Decimal.trim_end")
}

// TrimEndIfInteger removes trailing zeros only when no fractional digit is
// nonzero.
func (d *Decimal) TrimEndIfInteger(ctx context.Context) error {
	return d.void(ctx, "Decimal.trim_end_if_integer")
}

// PadStart zero-pads up to position, or trims leading zeros below it.
func (d *Decimal) PadStart(ctx context.Context, position int16) error {
	return d.void(ctx, "Decimal.pad_start", position)
}

// PadEnd zero-pads down to position, or trims trailing zeros above it.
func (d *Decimal) PadEnd(ctx context.Context, position int16) error {
	return d.void(ctx, "Decimal.pad_end", position)
}

// SetMaxPosition deletes every digit at or above position, so 2022 at
// position 2 becomes 22.
func (d *Decimal) SetMaxPosition(ctx context.Context, position int16) error {
	return d.void(ctx, "Decimal.set_max_position", position)
}

// Round rounds half away from zero at position.
func (d *Decimal) Round(ctx context.Context, position int16) error {
	return d.void(ctx, "Decimal.round", position)
}

func (d *Decimal) Ceil(ctx context.Context, position int16) error {
	return d.void(ctx, "Decimal.ceil", position)
}

// Expand rounds away from zero at position.
func (d *Decimal) Expand(ctx context.Context, position int16) error {
	return d.void(ctx, "Decimal.expand", position)
}

func (d *Decimal) Floor(ctx context.Context, position int16) error {
	return d.void(ctx, "Decimal.floor", position)
}

func (d *Decimal) Trunc(ctx context.Context, position int16) error {
	return d.void(ctx, "Decimal.trunc", position)
}

func (d *Decimal) RoundWithMode(ctx context.Context, position int16, mode RoundingMode) error {
	return d.void(ctx, "Decimal.round_with_mode", position, mode)
}

// RoundWithModeAndIncrement rounds to the nearest multiple of increment
// units at position, so 1.27 at -1 with IncrementOf5 becomes 1.5.
func (d *Decimal) RoundWithModeAndIncrement(ctx context.Context, position int16, mode RoundingMode, increment RoundingIncrement) error {
	return d.void(ctx, "Decimal.round_with_mode_and_increment", position, mode, increment)
}

// ConcatenateEnd appends other's digits below d's and leaves other zero.
// It fails with ErrDecimalOverlap when the digit ranges overlap, in which
// case neither operand changes.
func (d *Decimal) ConcatenateEnd(ctx context.Context, other *Decimal) error {
	return d.void(ctx, "Decimal.concatenate_end", other.ref())
}

func (d *Decimal) ToString(ctx context.Context) (string, error) {
	return d.text(ctx, "Decimal.to_string")
}

func (d *Decimal) ref() *resource.Object {
	if d == nil {
		return nil
	}
	return d.obj
}
