package native

import (
	"context"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/icu-bridge/schema"
)

type harness struct {
	t    *testing.T
	core *Core
	ctx  context.Context
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	c := New(opts...)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return &harness{t: t, core: c, ctx: context.Background()}
}

func (h *harness) call(sym string, args ...uint64) []uint64 {
	h.t.Helper()
	res, err := h.core.Call(h.ctx, sym, args...)
	require.NoError(h.t, err, sym)
	return res
}

func (h *harness) str(s string) (uint64, uint64) {
	h.t.Helper()
	if s == "" {
		return 0, 0
	}
	ptr, err := h.core.Allocator().Alloc(uint32(len(s)), 1)
	require.NoError(h.t, err)
	require.NoError(h.t, h.core.Memory().Write(ptr, []byte(s)))
	return uint64(ptr), uint64(len(s))
}

func (h *harness) retbuf(size, align uint32) uint32 {
	h.t.Helper()
	ptr, err := h.core.Allocator().Alloc(size, align)
	require.NoError(h.t, err)
	return ptr
}

// result reads a result<u32, u32> buffer.
func (h *harness) result(ret uint32) (uint32, bool) {
	h.t.Helper()
	tag, err := h.core.Memory().ReadU8(ret + 4)
	require.NoError(h.t, err)
	v, err := h.core.Memory().ReadU32(ret)
	require.NoError(h.t, err)
	return v, tag == 1
}

func (h *harness) writeable() uint64 {
	return h.call(schema.WriteableCreate, 8)[0]
}

func (h *harness) text(w uint64) string {
	h.t.Helper()
	ptr := uint32(h.call(schema.WriteableGetBytes, w)[0])
	require.NotZero(h.t, ptr)
	n := uint32(h.call(schema.WriteableLen, w)[0])
	b, err := h.core.Memory().Read(ptr, n)
	require.NoError(h.t, err)
	out := string(b)
	h.call(schema.WriteableDestroy, w)
	return out
}

func (h *harness) locale(id string) uint64 {
	h.t.Helper()
	ret := h.retbuf(5, 4)
	p, n := h.str(id)
	h.call(schema.LocaleFromString, uint64(ret), p, n)
	v, ok := h.result(ret)
	require.True(h.t, ok, "locale %q", id)
	return uint64(v)
}

func TestHeapAllocFree(t *testing.T) {
	var faults []string
	hp := newHeap(pageSize, func(kind string, _ uint32) { faults = append(faults, kind) })

	a, err := hp.alloc(10, 1)
	require.NoError(t, err)
	assert.NotZero(t, a)
	b, err := hp.alloc(8, 8)
	require.NoError(t, err)
	assert.Zero(t, b%8)
	assert.True(t, hp.owns(a, 10))
	assert.False(t, hp.owns(a, 11))

	hp.dealloc(a, 10)
	hp.dealloc(b, 8)
	assert.Equal(t, 0, hp.liveCount())
	assert.Len(t, hp.free, 1, "freed neighbours coalesce")

	c, err := hp.alloc(16, 4)
	require.NoError(t, err)
	assert.Equal(t, alignUp(heapBase, 4), c, "first fit reuses the freed span")

	hp.dealloc(c, 16)
	hp.dealloc(c, 16)
	hp.dealloc(12345, 1)
	assert.Equal(t, []string{"invalid free", "invalid free"}, faults)

	_, err = hp.alloc(2*pageSize, 1)
	assert.Error(t, err)
	_, err = hp.alloc(4, 3)
	assert.Error(t, err)
}

func TestHeapGrows(t *testing.T) {
	hp := newHeap(4*pageSize, func(string, uint32) {})
	ptr, err := hp.alloc(pageSize+1, 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, uint32(len(hp.data)), ptr+pageSize+1)
	assert.Zero(t, uint32(len(hp.data))%pageSize)
}

func TestUnknownExportAndArity(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.core.Has("icu4x_Nope_mv1"))
	assert.True(t, h.core.Has(schema.DecimalFormatterFormat))

	_, err := h.core.Call(h.ctx, "icu4x_Nope_mv1")
	assert.Error(t, err)

	_, err = h.core.Call(h.ctx, schema.LocaleUnknown, 1)
	var trap *TrapError
	assert.ErrorAs(t, err, &trap)
}

func TestLocaleEntries(t *testing.T) {
	h := newHarness(t)
	loc := h.locale("EN-latn-us")

	w := h.writeable()
	h.call(schema.LocaleToString, loc, w)
	assert.Equal(t, "en-Latn-US", h.text(w))

	for sym, want := range map[string]string{
		schema.LocaleBasename: "en-Latn-US",
		schema.LocaleLanguage: "en",
		schema.LocaleRegion:   "US",
		schema.LocaleScript:   "Latn",
	} {
		w := h.writeable()
		h.call(sym, loc, w)
		assert.Equal(t, want, h.text(w), sym)
	}

	clone := h.call(schema.LocaleClone, loc)[0]
	assert.NotEqual(t, loc, clone)
	h.call(schema.LocaleDestroy, loc)
	w = h.writeable()
	h.call(schema.LocaleLanguage, clone, w)
	assert.Equal(t, "en", h.text(w))
	h.call(schema.LocaleDestroy, clone)

	und := h.locale("")
	w = h.writeable()
	h.call(schema.LocaleToString, und, w)
	assert.Equal(t, "und", h.text(w))
	h.call(schema.LocaleDestroy, und)
}

func TestLocaleParserError(t *testing.T) {
	h := newHarness(t)
	ret := h.retbuf(5, 4)
	p, n := h.str("en_US!!")
	h.call(schema.LocaleFromString, uint64(ret), p, n)
	code, ok := h.result(ret)
	assert.False(t, ok)
	assert.Equal(t, uint32(schema.ErrorSpec.MustOrdinal("LocaleParserError")), code)
	assert.Empty(t, h.core.LiveObjects())
}

func TestLocaleNormalize(t *testing.T) {
	h := newHarness(t)
	ret := h.retbuf(5, 4)
	p, n := h.str("de-ch")
	w := h.writeable()
	h.call(schema.LocaleNormalize, uint64(ret), p, n, w)
	_, ok := h.result(ret)
	require.True(t, ok)
	assert.Equal(t, "de-CH", h.text(w))
}

func TestFormatterEntries(t *testing.T) {
	h := newHarness(t)
	loc := h.locale("en-US")
	ret := h.retbuf(5, 4)
	h.call(schema.DecimalFormatterCreateWithGroupingStrategy, uint64(ret), loc, 0)
	f, ok := h.result(ret)
	require.True(t, ok)

	dret := h.retbuf(5, 4)
	neg1 := signed(-1)
	h.call(schema.DecimalFromDoubleWithLowerMagnitude, uint64(dret), math64(1234.5), neg1)
	d, ok := h.result(dret)
	require.True(t, ok)

	w := h.writeable()
	h.call(schema.DecimalFormatterFormat, uint64(f), uint64(d), w)
	assert.Equal(t, "1,234.5", h.text(w))

	und := h.locale("und")
	h.call(schema.DecimalFormatterCreateWithGroupingStrategy, uint64(ret), und, 0)
	code, ok := h.result(ret)
	assert.False(t, ok)
	assert.Equal(t, uint32(schema.ErrorSpec.MustOrdinal("DataMissingLocaleError")), code)

	_, err := h.core.Call(h.ctx, schema.DecimalFormatterCreateWithGroupingStrategy, uint64(ret), loc, 9)
	assert.Error(t, err)
}

func TestDecimalIncrementEntry(t *testing.T) {
	h := newHarness(t)
	d := h.call(schema.DecimalFromUint32, 137)[0]
	h.call(schema.DecimalRoundWithModeAndIncrement, d, 1,
		uint64(schema.RoundingModeSpec.MustOrdinal("HalfExpand")),
		uint64(schema.RoundingIncrementSpec.MustOrdinal("MultiplesOf5")))
	w := h.writeable()
	h.call(schema.DecimalToString, d, w)
	assert.Equal(t, "150", h.text(w))
	assert.Equal(t, uint64(1), h.call(schema.DecimalNonzeroMagnitudeStart, d)[0])
	assert.Equal(t, uint64(2), h.call(schema.DecimalNonzeroMagnitudeEnd, d)[0])

	_, err := h.core.Call(h.ctx, schema.DecimalRoundWithModeAndIncrement, d, 0, 0, 9)
	var trap *TrapError
	assert.ErrorAs(t, err, &trap, "unknown increment ordinal")
}

func TestDecimalEntries(t *testing.T) {
	h := newHarness(t)
	d := h.call(schema.DecimalFromInt32, signed(-1205))[0]

	assert.Equal(t, uint64(2), h.call(schema.DecimalDigitAt, d, 2)[0])
	assert.Equal(t, uint64(0), h.call(schema.DecimalDigitAt, d, 1)[0])
	assert.Equal(t, uint64(0), h.call(schema.DecimalMagnitudeStart, d)[0])
	assert.Equal(t, uint64(3), h.call(schema.DecimalMagnitudeEnd, d)[0])
	assert.Equal(t, uint64(0), h.call(schema.DecimalIsZero, d)[0])
	assert.Equal(t, uint64(1), h.call(schema.DecimalSign, d)[0])

	h.call(schema.DecimalMultiplyPow10, d, signed(-2))
	h.call(schema.DecimalRoundWithMode, d, signed(-1), uint64(schema.RoundingModeSpec.MustOrdinal("HalfEven")))
	h.call(schema.DecimalSetSign, d, 2)
	w := h.writeable()
	h.call(schema.DecimalToString, d, w)
	assert.Equal(t, "+12.0", h.text(w))

	ret := h.retbuf(5, 4)
	p, n := h.str("1.2.3")
	h.call(schema.DecimalFromString, uint64(ret), p, n)
	code, ok := h.result(ret)
	assert.False(t, ok)
	assert.Equal(t, uint32(schema.ErrorSpec.MustOrdinal("DecimalSyntaxError")), code)

	h.call(schema.DecimalFromDoubleWithRoundTripPrecision, uint64(ret), math64(nan()))
	tag, err := h.core.Memory().ReadU8(ret + 4)
	require.NoError(t, err)
	assert.Zero(t, tag)

	one := h.call(schema.DecimalFromInt32, 1)[0]
	unit := h.retbuf(1, 1)
	h.call(schema.DecimalConcatenateEnd, uint64(unit), one, one)
	tag, err = h.core.Memory().ReadU8(unit)
	require.NoError(t, err)
	assert.Zero(t, tag, "overlapping digits refuse to concatenate")

	h.call(schema.DecimalDestroy, d)
	h.call(schema.DecimalDestroy, one)
	assert.Zero(t, h.core.LiveObjects()[classDecimal])
}

func TestCaseMapperEntries(t *testing.T) {
	h := newHarness(t)
	cm := h.call(schema.CaseMapperCreate)[0]
	tr := h.locale("tr")
	en := h.locale("en")

	p, n := h.str("istanbul")
	w := h.writeable()
	h.call(schema.CaseMapperUppercase, cm, p, n, tr, w)
	assert.Equal(t, "İSTANBUL", h.text(w))

	w = h.writeable()
	h.call(schema.CaseMapperUppercase, cm, p, n, en, w)
	assert.Equal(t, "ISTANBUL", h.text(w))

	p, n = h.str("HELLO Wörld")
	w = h.writeable()
	h.call(schema.CaseMapperLowercase, cm, p, n, en, w)
	assert.Equal(t, "hello wörld", h.text(w))

	p, n = h.str("HeLLo")
	w = h.writeable()
	h.call(schema.CaseMapperFold, cm, p, n, w)
	assert.Equal(t, "hello", h.text(w))
}

func TestWriteableGrowth(t *testing.T) {
	h := newHarness(t)
	loc := h.locale("en-Latn-US")

	w := h.call(schema.WriteableCreate, 1)[0]
	h.call(schema.LocaleToString, loc, w)
	assert.Equal(t, "en-Latn-US", h.text(w))

	small := newHarness(t, WithWriteableLimit(4))
	loc = small.locale("en-Latn-US")
	w = small.call(schema.WriteableCreate, 1)[0]
	small.call(schema.LocaleToString, loc, w)
	assert.Zero(t, small.call(schema.WriteableGetBytes, w)[0], "growth past the limit fails")
	small.call(schema.WriteableDestroy, w)
}

func TestSegmenterEntries(t *testing.T) {
	h := newHarness(t)
	ret := h.retbuf(5, 4)
	h.call(schema.WordSegmenterCreateAuto, uint64(ret))
	seg, ok := h.result(ret)
	require.True(t, ok)

	p, n := h.str("Hello, world 42")
	it := h.call(schema.WordSegmenterSegmentUtf8, uint64(seg), p, n)[0]
	var bounds []int32
	var wordLike []bool
	for {
		b := int32(uint32(h.call(schema.WordBreakIteratorUtf8Next, it)[0]))
		if b < 0 {
			break
		}
		bounds = append(bounds, b)
		wordLike = append(wordLike, h.call(schema.WordBreakIteratorUtf8IsWordLike, it)[0] == 1)
	}
	assert.Equal(t, []int32{0, 5, 6, 7, 12, 13, 15}, bounds)
	assert.Equal(t, []bool{false, true, false, false, true, false, true}, wordLike)
	h.call(schema.WordBreakIteratorUtf8Destroy, it)

	units := utf16.Encode([]rune("héllo 😀"))
	ptr := h.retbuf(uint32(len(units)*2), 2)
	for i, u := range units {
		require.NoError(t, h.core.Memory().WriteU16(ptr+uint32(2*i), u))
	}
	it = h.call(schema.WordSegmenterSegmentUtf16, uint64(seg), uint64(ptr), uint64(len(units)))[0]
	assert.Equal(t, uint64(0), h.call(schema.WordBreakIteratorUtf16Next, it)[0])
	assert.Equal(t, uint64(5), h.call(schema.WordBreakIteratorUtf16Next, it)[0])
	assert.Equal(t, uint64(2), h.call(schema.WordBreakIteratorUtf16WordType, it)[0])
	h.call(schema.WordBreakIteratorUtf16Destroy, it)
}

func TestIteratorDetectsFreedBorrows(t *testing.T) {
	h := newHarness(t)
	ret := h.retbuf(5, 4)
	h.call(schema.WordSegmenterCreateAuto, uint64(ret))
	seg, _ := h.result(ret)

	p, n := h.str("two words")
	it := h.call(schema.WordSegmenterSegmentUtf8, uint64(seg), p, n)[0]
	h.core.Allocator().Free(uint32(p), uint32(n), 1)

	_, err := h.core.Call(h.ctx, schema.WordBreakIteratorUtf8Next, it)
	var trap *TrapError
	require.ErrorAs(t, err, &trap)

	p, n = h.str("two words")
	it = h.call(schema.WordSegmenterSegmentUtf8, uint64(seg), p, n)[0]
	h.call(schema.WordSegmenterDestroy, uint64(seg))
	_, err = h.core.Call(h.ctx, schema.WordBreakIteratorUtf8Next, it)
	require.ErrorAs(t, err, &trap)

	kinds := make([]string, 0)
	for _, f := range h.core.Faults() {
		kinds = append(kinds, f.Kind)
	}
	assert.Equal(t, []string{"slice outside live allocation", "iterator outlived its segmenter"}, kinds)
}

func TestDestroyFaults(t *testing.T) {
	h := newHarness(t)
	d := h.call(schema.DecimalFromInt32, 7)[0]
	h.call(schema.DecimalDestroy, d)

	_, err := h.core.Call(h.ctx, schema.DecimalDestroy, d)
	assert.Error(t, err)
	_, err = h.core.Call(h.ctx, schema.DecimalIsZero, d)
	assert.Error(t, err)

	loc := h.locale("en")
	_, err = h.core.Call(h.ctx, schema.DecimalDestroy, loc)
	assert.Error(t, err, "destroying through the wrong class traps")

	faults := h.core.Faults()
	require.Len(t, faults, 3)
	assert.Equal(t, schema.DecimalDestroy, faults[0].Symbol)
	assert.Equal(t, uint32(d), faults[0].Addr)
	assert.Equal(t, 1, h.core.LiveObjects()[classLocale])
}

func TestReceiveBufferMustBeAllocated(t *testing.T) {
	h := newHarness(t)
	p, n := h.str("en")
	_, err := h.core.Call(h.ctx, schema.LocaleFromString, 0, p, n)
	var trap *TrapError
	assert.ErrorAs(t, err, &trap)
	assert.Empty(t, h.core.LiveObjects())
}

func TestCloseRejectsCalls(t *testing.T) {
	c := New()
	require.NoError(t, c.Close(context.Background()))
	_, err := c.Call(context.Background(), schema.LocaleUnknown)
	assert.Error(t, err)
}
