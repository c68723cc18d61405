package icu4x

import (
	"context"
	stderrors "errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/icu-bridge/binding"
	"github.com/wippyai/icu-bridge/enum"
	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/native"
	"github.com/wippyai/icu-bridge/resource"
	"github.com/wippyai/icu-bridge/schema"
)

type binder struct {
	core    *native.Core
	tracker *resource.Tracker
}

func (b binder) Bind(c *binding.Catalog) (*binding.Invoker, error) {
	return binding.NewInvoker(b.core, b.tracker, c, binding.WithWriteableCapacity(8))
}

type env struct {
	lib     *Lib
	core    *native.Core
	tracker *resource.Tracker
	manual  *resource.ManualReclaimer
}

func newEnv(t *testing.T, opts ...native.Option) *env {
	t.Helper()
	core := native.New(opts...)
	manual := resource.NewManualReclaimer()
	tracker := resource.NewTracker(manual)
	lib, err := New(binder{core: core, tracker: tracker})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tracker.Close()
		_ = core.Close(context.Background())
	})
	return &env{lib: lib, core: core, tracker: tracker, manual: manual}
}

func (e *env) assertClean(t *testing.T) {
	t.Helper()
	assert.Empty(t, e.core.LiveObjects())
	assert.Empty(t, e.core.Faults())
	assert.Equal(t, 0, e.tracker.Len())
	assert.Zero(t, e.manual.Pending())
	assert.Zero(t, e.core.LiveAllocations(), "native heap")
}

func TestErrorCodesRoundTrip(t *testing.T) {
	for _, c := range schema.ErrorSpec.Cases {
		code, err := ErrorCodes.Value(c.Ordinal)
		require.NoError(t, err)
		assert.Equal(t, c.Name, code.Error())
		assert.Equal(t, c.Ordinal, code.Ordinal())
	}
	assert.Equal(t, int32(-1), ErrorCode("NoSuchError").Ordinal())

	_, err := ErrorCodes.Value(3)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidEnum})
}

func TestErrorCategories(t *testing.T) {
	tests := map[ErrorCode]Category{
		ErrLocaleParser:       CategoryMalformed,
		ErrDecimalSyntax:      CategoryMalformed,
		ErrDecimalLimit:       CategoryOutOfRange,
		ErrDataNeedsLocale:    CategoryUnsupported,
		ErrDataMissingLocale:  CategoryMissingData,
		ErrDataIo:             CategoryMissingData,
		ErrUnknown:            CategoryInternal,
		ErrWriteable:          CategoryInternal,
		ErrDataStructValidity: CategoryInternal,
	}
	for code, want := range tests {
		assert.Equal(t, want, code.Category(), string(code))
	}
	assert.True(t, CategoryOutOfRange.Argument())
	assert.False(t, CategoryMissingData.Argument())
}

func roundTrip[T comparable](t *testing.T, table *enum.Table[T]) {
	t.Helper()
	for _, v := range table.Values() {
		o, err := table.Ordinal(v)
		require.NoError(t, err)
		back, err := table.Value(o)
		require.NoError(t, err)
		assert.Equal(t, v, back)

		name := table.Name(v)
		parsed, ok := table.Lookup(name)
		require.True(t, ok)
		assert.Equal(t, v, parsed)
	}
}

func TestEnumTables(t *testing.T) {
	roundTrip(t, GroupingStrategies)
	roundTrip(t, SignDisplays)
	roundTrip(t, Signs)
	roundTrip(t, RoundingModes)
	roundTrip(t, RoundingIncrements)
	roundTrip(t, WordTypes)

	assert.Equal(t, GroupingAuto, GroupingStrategies.Default())
	assert.Equal(t, RoundHalfExpand, RoundingModes.Default())
	assert.Equal(t, IncrementOf1, RoundingIncrements.Default())
	assert.Equal(t, "MultiplesOf25", IncrementOf25.String())
	assert.Equal(t, "Min2", GroupingMin2.String())
	assert.Equal(t, "ExceptZero", SignDisplayExceptZero.String())
	assert.True(t, WordNumber.IsWordLike())
}

func TestFormatEnUS(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	loc, err := e.lib.LocaleFromString(ctx, "en-US")
	require.NoError(t, err)
	f, err := e.lib.DecimalFormatterWithGroupingStrategy(ctx, loc, GroupingAuto)
	require.NoError(t, err)
	d, err := e.lib.DecimalFromDoubleWithLowerMagnitude(ctx, 1234.5, -1)
	require.NoError(t, err)

	require.NoError(t, loc.Destroy(), "the formatter copies locale data")
	s, err := f.Format(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "1,234.5", s)

	require.NoError(t, d.Destroy())
	require.NoError(t, f.Destroy())
	e.assertClean(t)
}

func TestFormatterMissingLocale(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, id := range []string{"", "und", "sw-KE"} {
		loc, err := e.lib.LocaleFromString(ctx, id)
		require.NoError(t, err, id)

		f, err := e.lib.DecimalFormatterWithGroupingStrategy(ctx, loc, GroupingAuto)
		assert.Nil(t, f)
		assert.ErrorIs(t, err, ErrDataMissingLocale, id)
		assert.Equal(t, CategoryMissingData, err.(ErrorCode).Category())
		assert.Equal(t, 1, e.tracker.Len(), "only the locale is wrapped")
		require.NoError(t, loc.Destroy())
	}
	e.assertClean(t)
}

func TestFormatterLocales(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tests := []struct {
		locale   string
		strategy GroupingStrategy
		value    string
		want     string
	}{
		{"de-DE", GroupingAuto, "-1234.5", "-1.234,5"},
		{"es", GroupingAuto, "1234", "1234"},
		{"es", GroupingAlways, "1234", "1.234"},
		{"hi-IN", GroupingAuto, "1234567", "12,34,567"},
		{"en", GroupingNever, "1234567", "1234567"},
	}
	for _, tt := range tests {
		loc, err := e.lib.LocaleFromString(ctx, tt.locale)
		require.NoError(t, err)
		f, err := e.lib.DecimalFormatterWithGroupingStrategy(ctx, loc, tt.strategy)
		require.NoError(t, err)
		d, err := e.lib.DecimalFromString(ctx, tt.value)
		require.NoError(t, err)

		s, err := f.Format(ctx, d)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s, "%s %s", tt.locale, tt.value)

		for _, o := range []interface{ Destroy() error }{d, f, loc} {
			require.NoError(t, o.Destroy())
		}
	}
	e.assertClean(t)
}

func TestLocale(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	loc, err := e.lib.LocaleFromString(ctx, "sr-cyrl-rs")
	require.NoError(t, err)

	get := func(fn func(context.Context) (string, error)) string {
		s, err := fn(ctx)
		require.NoError(t, err)
		return s
	}
	assert.Equal(t, "sr", get(loc.Language))
	assert.Equal(t, "Cyrl", get(loc.Script))
	assert.Equal(t, "RS", get(loc.Region))
	assert.Equal(t, "sr-Cyrl-RS", get(loc.Basename))
	assert.Equal(t, "sr-Cyrl-RS", get(loc.ToString))

	clone, err := loc.Clone(ctx)
	require.NoError(t, err)
	assert.Empty(t, clone.Resource().Edges(), "clone copies")
	require.NoError(t, loc.Destroy())
	assert.Equal(t, "sr-Cyrl-RS", get(clone.Basename))
	require.NoError(t, clone.Destroy())

	und, err := e.lib.LocaleUnknown(ctx)
	require.NoError(t, err)
	assert.Equal(t, "und", get(und.ToString))
	assert.Equal(t, "", get(und.Region))
	require.NoError(t, und.Destroy())

	s, err := e.lib.NormalizeLocale(ctx, "EN-latn-us")
	require.NoError(t, err)
	assert.Equal(t, "en-Latn-US", s)

	_, err = e.lib.NormalizeLocale(ctx, "en-@@")
	assert.Equal(t, ErrLocaleParser, err)
	_, err = e.lib.LocaleFromString(ctx, "en-@@")
	assert.True(t, stderrors.Is(err, ErrLocaleParser))
	e.assertClean(t)
}

func TestDecimal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	d, err := e.lib.DecimalFromString(ctx, "-001.50")
	require.NoError(t, err)

	start, err := d.MagnitudeStart(ctx)
	require.NoError(t, err)
	end, err := d.MagnitudeEnd(ctx)
	require.NoError(t, err)
	assert.Equal(t, int16(-2), start)
	assert.Equal(t, int16(2), end)

	digit, err := d.DigitAt(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), digit)

	sign, err := d.Sign(ctx)
	require.NoError(t, err)
	assert.Equal(t, SignNegative, sign)

	str := func() string {
		s, err := d.ToString(ctx)
		require.NoError(t, err)
		return s
	}
	assert.Equal(t, "-001.50", str())

	require.NoError(t, d.TrimStart(ctx))
	require.NoError(t, d.TrimEnd(ctx))
	assert.Equal(t, "-1.5", str())

	require.NoError(t, d.PadEnd(ctx, -3))
	assert.Equal(t, "-1.500", str())

	require.NoError(t, d.SetSign(ctx, SignNone))
	require.NoError(t, d.ApplySignDisplay(ctx, SignDisplayAlways))
	assert.Equal(t, "+1.500", str())

	require.NoError(t, d.MultiplyPow10(ctx, 2))
	assert.Equal(t, "+150.0", str())

	require.NoError(t, d.RoundWithMode(ctx, 2, RoundHalfEven))
	assert.Equal(t, "+200", str())

	zero, err := d.IsZero(ctx)
	require.NoError(t, err)
	assert.False(t, zero)
	require.NoError(t, d.Destroy())

	_, err = e.lib.DecimalFromString(ctx, "1.2.3")
	assert.Equal(t, ErrDecimalSyntax, err)
	_, err = e.lib.DecimalFromString(ctx, "1"+strings.Repeat("0", 40000))
	assert.Equal(t, ErrDecimalLimit, err)
	e.assertClean(t)
}

func TestDecimalRounding(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		op   func(*Decimal) error
		want string
	}{
		{"round", func(d *Decimal) error { return d.Round(ctx, -1) }, "-1.3"},
		{"ceil", func(d *Decimal) error { return d.Ceil(ctx, -1) }, "-1.2"},
		{"floor", func(d *Decimal) error { return d.Floor(ctx, -1) }, "-1.3"},
		{"trunc", func(d *Decimal) error { return d.Trunc(ctx, -1) }, "-1.2"},
		{"half floor", func(d *Decimal) error { return d.RoundWithMode(ctx, -1, RoundHalfFloor) }, "-1.3"},
		{"pad start", func(d *Decimal) error { return d.PadStart(ctx, 3) }, "-001.25"},
		{"expand", func(d *Decimal) error { return d.Expand(ctx, -1) }, "-1.3"},
		{"max position", func(d *Decimal) error { return d.SetMaxPosition(ctx, 0) }, "-0.25"},
		{"trim if integer", func(d *Decimal) error { return d.TrimEndIfInteger(ctx) }, "-1.25"},
		{"increment", func(d *Decimal) error {
			return d.RoundWithModeAndIncrement(ctx, -1, RoundHalfExpand, IncrementOf5)
		}, "-1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := e.lib.DecimalFromString(ctx, "-1.25")
			require.NoError(t, err)
			defer d.Destroy()
			require.NoError(t, tt.op(d))
			s, err := d.ToString(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestDecimalFromNumbers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	str := func(d *Decimal, err error) string {
		t.Helper()
		require.NoError(t, err)
		defer d.Destroy()
		s, err := d.ToString(ctx)
		require.NoError(t, err)
		return s
	}
	assert.Equal(t, "-42", str(e.lib.DecimalFromInt32(ctx, -42)))
	assert.Equal(t, "9223372036854775807", str(e.lib.DecimalFromInt64(ctx, math.MaxInt64)))
	assert.Equal(t, "120", str(e.lib.DecimalFromDoubleWithSignificantDigits(ctx, 123.456, 2)))
	assert.Equal(t, "0.1", str(e.lib.DecimalFromDoubleWithRoundTripPrecision(ctx, 0.1)))
	assert.Equal(t, "4000000000", str(e.lib.DecimalFromUint32(ctx, 4000000000)))
	assert.Equal(t, "18446744073709551615", str(e.lib.DecimalFromUint64(ctx, math.MaxUint64)))
	assert.Equal(t, "1000", str(e.lib.DecimalFromDoubleWithIntegerPrecision(ctx, 1e3)))

	for _, f := range []float64{math.NaN(), math.Inf(1)} {
		d, err := e.lib.DecimalFromDoubleWithRoundTripPrecision(ctx, f)
		assert.Nil(t, d)
		assert.Equal(t, ErrDecimalLimit, err)
	}
	_, err := e.lib.DecimalFromDoubleWithSignificantDigits(ctx, 1.5, 0)
	assert.Equal(t, ErrDecimalLimit, err)
	_, err = e.lib.DecimalFromDoubleWithIntegerPrecision(ctx, 1.5)
	assert.Equal(t, ErrDecimalLimit, err)
	e.assertClean(t)
}

func TestDecimalNonzeroMagnitudes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	d, err := e.lib.DecimalFromString(ctx, "0120.50")
	require.NoError(t, err)
	get := func(f func(context.Context) (int16, error)) int16 {
		t.Helper()
		v, err := f(ctx)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, int16(-2), get(d.MagnitudeStart))
	assert.Equal(t, int16(3), get(d.MagnitudeEnd))
	assert.Equal(t, int16(-1), get(d.NonzeroMagnitudeStart))
	assert.Equal(t, int16(2), get(d.NonzeroMagnitudeEnd))
	require.NoError(t, d.Destroy())

	z, err := e.lib.DecimalFromInt32(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, get(z.NonzeroMagnitudeStart))
	assert.Zero(t, get(z.NonzeroMagnitudeEnd))
	require.NoError(t, z.Destroy())
	e.assertClean(t)
}

func TestConcatenateEnd(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a, err := e.lib.DecimalFromString(ctx, "12")
	require.NoError(t, err)
	b, err := e.lib.DecimalFromString(ctx, "0.34")
	require.NoError(t, err)
	c, err := e.lib.DecimalFromString(ctx, "5")
	require.NoError(t, err)

	require.NoError(t, a.ConcatenateEnd(ctx, b))
	s, _ := a.ToString(ctx)
	assert.Equal(t, "12.34", s)
	zero, err := b.IsZero(ctx)
	require.NoError(t, err)
	assert.True(t, zero, "the appended operand is left empty")
	s, _ = b.ToString(ctx)
	assert.Equal(t, "0", s)

	err = a.ConcatenateEnd(ctx, c)
	assert.ErrorIs(t, err, ErrDecimalOverlap)
	s, _ = a.ToString(ctx)
	assert.Equal(t, "12.34", s, "a failed call leaves its operands alone")
	s, _ = c.ToString(ctx)
	assert.Equal(t, "5", s)

	require.NoError(t, b.Destroy())
	err = a.ConcatenateEnd(ctx, b)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLifecycle, Kind: errors.KindUseAfterDestroy})

	require.NoError(t, a.Destroy())
	require.NoError(t, c.Destroy())
	e.assertClean(t)
}

func TestCaseMapper(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cm, err := e.lib.NewCaseMapper(ctx)
	require.NoError(t, err)
	tr, err := e.lib.LocaleFromString(ctx, "tr")
	require.NoError(t, err)
	en, err := e.lib.LocaleFromString(ctx, "en")
	require.NoError(t, err)

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"empty", func() (string, error) { return cm.Lowercase(ctx, "", en) }, ""},
		{"ascii", func() (string, error) { return cm.Uppercase(ctx, "hello", en) }, "HELLO"},
		{"greek", func() (string, error) { return cm.Lowercase(ctx, "ΑΒΓ", en) }, "αβγ"},
		{"turkish", func() (string, error) { return cm.Uppercase(ctx, "istanbul", tr) }, "İSTANBUL"},
		{"fold", func() (string, error) { return cm.Fold(ctx, "HeLLo") }, "hello"},
		{"grows writeable", func() (string, error) { return cm.Lowercase(ctx, strings.Repeat("AB", 100), en) }, strings.Repeat("ab", 100)},
	}
	for _, tt := range tests {
		got, err := tt.fn()
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	for _, o := range []interface{ Destroy() error }{cm, tr, en} {
		require.NoError(t, o.Destroy())
	}
	e.assertClean(t)
}

func TestWriteableGrowthFailure(t *testing.T) {
	e := newEnv(t, native.WithWriteableLimit(16))
	ctx := context.Background()
	base := e.core.LiveAllocations()

	cm, err := e.lib.NewCaseMapper(ctx)
	require.NoError(t, err)
	s, err := cm.Fold(ctx, strings.Repeat("X", 64))
	assert.Empty(t, s)
	assert.Equal(t, ErrWriteable, err)

	require.NoError(t, cm.Destroy())
	assert.Equal(t, base, e.core.LiveAllocations(), "the writeable is destroyed on the failure path")
	e.assertClean(t)
}

func TestWordSegmenter(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	seg, err := e.lib.WordSegmenterAuto(ctx)
	require.NoError(t, err)

	it, err := seg.SegmentUTF8(ctx, "Hello, world 42")
	require.NoError(t, err)
	require.NoError(t, seg.Destroy())

	var types []WordType
	var bounds []int32
	for {
		b, err := it.Next(ctx)
		require.NoError(t, err)
		if b < 0 {
			break
		}
		bounds = append(bounds, b)
		wt, err := it.WordType(ctx)
		require.NoError(t, err)
		types = append(types, wt)
	}
	assert.Equal(t, []int32{0, 5, 6, 7, 12, 13, 15}, bounds)
	assert.Equal(t, []WordType{WordNone, WordLetter, WordNone, WordNone, WordLetter, WordNone, WordNumber}, types)

	like, err := it.IsWordLike(ctx)
	require.NoError(t, err)
	assert.False(t, like, "no segment after the end")

	require.NoError(t, it.Destroy())
	e.assertClean(t)
}

func TestWordSegmenterUTF16(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	seg, err := e.lib.WordSegmenterAuto(ctx)
	require.NoError(t, err)
	it, err := seg.SegmentUTF16(ctx, "héllo 😀")
	require.NoError(t, err)

	bounds, err := it.Boundaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5, 6, 8}, bounds)

	assert.True(t, e.manual.Collect(seg.Resource()), "reclaiming the segmenter first is deferred")
	assert.Equal(t, 1, e.core.LiveObjects()[ClassWordSegmenter])
	assert.Equal(t, 1, e.manual.Flush(), "the input buffer is released with the iterator")
	e.assertClean(t)
}

func TestIllFormedInput(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	bad := string([]byte{0xff})

	_, err := e.lib.DecimalFromString(ctx, "1"+bad)
	assert.Equal(t, ErrDecimalSyntax, err, "the core rejects the bytes, not the encoder")
	_, err = e.lib.LocaleFromString(ctx, "en"+bad)
	assert.Equal(t, ErrLocaleParser, err)

	seg, err := e.lib.WordSegmenterAuto(ctx)
	require.NoError(t, err)
	input := "ab" + bad + "cd"
	it, err := seg.SegmentUTF8(ctx, input)
	require.NoError(t, err)
	bounds, err := it.Boundaries(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, bounds)
	assert.Equal(t, len(input), bounds[len(bounds)-1], "offsets index the caller's bytes")
	require.NoError(t, it.Destroy())

	it16, err := seg.SegmentUTF16(ctx, "ab"+bad+bad+"cd")
	require.NoError(t, err)
	bounds, err = it16.Boundaries(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, bounds)
	assert.Equal(t, 5, bounds[len(bounds)-1], "one replacement unit stands for the bad run")
	require.NoError(t, it16.Destroy())
	require.NoError(t, seg.Destroy())

	cm, err := e.lib.NewCaseMapper(ctx)
	require.NoError(t, err)
	_, err = cm.Fold(ctx, "A"+bad)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidUTF8}, "case mapping takes well-formed text only")
	require.NoError(t, cm.Destroy())
	e.assertClean(t)
}

func TestCallsAfterDestroy(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	d, err := e.lib.DecimalFromInt32(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, d.Destroy())

	_, err = d.ToString(ctx)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLifecycle, Kind: errors.KindUseAfterDestroy})
	assert.ErrorIs(t, d.Destroy(), &errors.Error{Phase: errors.PhaseLifecycle, Kind: errors.KindDoubleDestroy})

	cm, err := e.lib.NewCaseMapper(ctx)
	require.NoError(t, err)
	_, err = cm.Lowercase(ctx, "A", nil)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindNilPointer})
	require.NoError(t, cm.Destroy())
	e.assertClean(t)
}
