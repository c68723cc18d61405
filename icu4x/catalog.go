package icu4x

import (
	"sync"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/icu-bridge/binding"
	"github.com/wippyai/icu-bridge/schema"
)

// Native class names.
const (
	ClassLocale           = "Locale"
	ClassDecimal          = "Decimal"
	ClassDecimalFormatter = "DecimalFormatter"
	ClassCaseMapper       = "CaseMapper"
	ClassWordSegmenter    = "WordSegmenter"
	ClassWordIterUTF8     = "WordBreakIteratorUtf8"
	ClassWordIterUTF16    = "WordBreakIteratorUtf16"
)

var (
	fallible  = &binding.Failure{Codec: ErrorCodes}
	overLimit = &binding.Failure{Unit: ErrDecimalLimit}
	overlap   = &binding.Failure{Unit: ErrDecimalOverlap}
)

// Signatures returns the descriptors of every entry point the typed
// surface calls.
func Signatures() []binding.Signature {
	self := func(sym string, r binding.Return, params ...binding.Param) binding.Signature {
		return binding.Signature{Symbol: sym, Self: true, Params: params, Return: r}
	}
	void := binding.Return{}
	s16 := func(name string) binding.Param { return binding.Prim(name, wit.S16{}) }

	return []binding.Signature{
		// Locale
		{Symbol: schema.LocaleFromString, Params: []binding.Param{binding.Lossy(binding.Str("name"))}, Return: binding.ReturnsObject(ClassLocale), Failure: fallible},
		{Symbol: schema.LocaleUnknown, Return: binding.ReturnsObject(ClassLocale)},
		self(schema.LocaleClone, binding.ReturnsObject(ClassLocale)),
		self(schema.LocaleBasename, binding.ReturnsText()),
		self(schema.LocaleLanguage, binding.ReturnsText()),
		self(schema.LocaleRegion, binding.ReturnsText()),
		self(schema.LocaleScript, binding.ReturnsText()),
		self(schema.LocaleToString, binding.ReturnsText()),
		{Symbol: schema.LocaleNormalize, Params: []binding.Param{binding.Lossy(binding.Str("name"))}, Return: binding.ReturnsText(), Failure: fallible},

		// Decimal
		{Symbol: schema.DecimalFromInt32, Params: []binding.Param{binding.Prim("v", wit.S32{})}, Return: binding.ReturnsObject(ClassDecimal)},
		{Symbol: schema.DecimalFromUint32, Params: []binding.Param{binding.Prim("v", wit.U32{})}, Return: binding.ReturnsObject(ClassDecimal)},
		{Symbol: schema.DecimalFromInt64, Params: []binding.Param{binding.Prim("v", wit.S64{})}, Return: binding.ReturnsObject(ClassDecimal)},
		{Symbol: schema.DecimalFromUint64, Params: []binding.Param{binding.Prim("v", wit.U64{})}, Return: binding.ReturnsObject(ClassDecimal)},
		{
			Symbol:  schema.DecimalFromDoubleWithIntegerPrecision,
			Params:  []binding.Param{binding.Prim("f", wit.F64{})},
			Return:  binding.ReturnsObject(ClassDecimal),
			Failure: overLimit,
		},
		{
			Symbol:  schema.DecimalFromDoubleWithLowerMagnitude,
			Params:  []binding.Param{binding.Prim("f", wit.F64{}), s16("magnitude")},
			Return:  binding.ReturnsObject(ClassDecimal),
			Failure: overLimit,
		},
		{
			Symbol:  schema.DecimalFromDoubleWithSignificantDigits,
			Params:  []binding.Param{binding.Prim("f", wit.F64{}), binding.Prim("digits", wit.U8{})},
			Return:  binding.ReturnsObject(ClassDecimal),
			Failure: overLimit,
		},
		{
			Symbol:  schema.DecimalFromDoubleWithRoundTripPrecision,
			Params:  []binding.Param{binding.Prim("f", wit.F64{})},
			Return:  binding.ReturnsObject(ClassDecimal),
			Failure: overLimit,
		},
		{Symbol: schema.DecimalFromString, Params: []binding.Param{binding.Lossy(binding.Str("v"))}, Return: binding.ReturnsObject(ClassDecimal), Failure: fallible},
		self(schema.DecimalDigitAt, binding.Returns(wit.U8{}), s16("magnitude")),
		self(schema.DecimalMagnitudeStart, binding.Returns(wit.S16{})),
		self(schema.DecimalMagnitudeEnd, binding.Returns(wit.S16{})),
		self(schema.DecimalNonzeroMagnitudeStart, binding.Returns(wit.S16{})),
		self(schema.DecimalNonzeroMagnitudeEnd, binding.Returns(wit.S16{})),
		self(schema.DecimalIsZero, binding.Returns(wit.Bool{})),
		self(schema.DecimalMultiplyPow10, void, s16("power")),
		self(schema.DecimalSign, binding.ReturnsEnum(Signs)),
		self(schema.DecimalSetSign, void, binding.EnumOf("sign", Signs)),
		self(schema.DecimalApplySignDisplay, void, binding.EnumOf("sign_display", SignDisplays)),
		self(schema.DecimalTrimStart, void),
		self(schema.DecimalTrimEnd, void),
		self(schema.DecimalTrimEndIfInteger, void),
		self(schema.DecimalPadStart, void, s16("position")),
		self(schema.DecimalPadEnd, void, s16("position")),
		self(schema.DecimalSetMaxPosition, void, s16("position")),
		self(schema.DecimalRound, void, s16("position")),
		self(schema.DecimalCeil, void, s16("position")),
		self(schema.DecimalExpand, void, s16("position")),
		self(schema.DecimalFloor, void, s16("position")),
		self(schema.DecimalTrunc, void, s16("position")),
		self(schema.DecimalRoundWithMode, void, s16("position"), binding.EnumOf("mode", RoundingModes)),
		self(schema.DecimalRoundWithModeAndIncrement, void,
			s16("position"), binding.EnumOf("mode", RoundingModes), binding.EnumOf("increment", RoundingIncrements)),
		{
			Symbol:  schema.DecimalConcatenateEnd,
			Self:    true,
			Params:  []binding.Param{binding.Ref("other", ClassDecimal)},
			Failure: overlap,
		},
		self(schema.DecimalToString, binding.ReturnsText()),

		// DecimalFormatter
		{
			Symbol:  schema.DecimalFormatterCreateWithGroupingStrategy,
			Params:  []binding.Param{binding.Ref("locale", ClassLocale), binding.EnumOf("grouping_strategy", GroupingStrategies)},
			Return:  binding.ReturnsObject(ClassDecimalFormatter),
			Failure: fallible,
		},
		self(schema.DecimalFormatterFormat, binding.ReturnsText(), binding.Ref("value", ClassDecimal)),

		// CaseMapper
		{Symbol: schema.CaseMapperCreate, Return: binding.ReturnsObject(ClassCaseMapper)},
		self(schema.CaseMapperLowercase, binding.ReturnsText(), binding.Str("s"), binding.Ref("locale", ClassLocale)),
		self(schema.CaseMapperUppercase, binding.ReturnsText(), binding.Str("s"), binding.Ref("locale", ClassLocale)),
		self(schema.CaseMapperFold, binding.ReturnsText(), binding.Str("s")),

		// WordSegmenter
		{Symbol: schema.WordSegmenterCreateAuto, Return: binding.ReturnsObject(ClassWordSegmenter), Failure: fallible},
		{
			Symbol:       schema.WordSegmenterSegmentUtf8,
			Self:         true,
			SelfBorrowed: true,
			Params:       []binding.Param{binding.Lent(binding.Lossy(binding.Str("input")))},
			Return:       binding.ReturnsObject(ClassWordIterUTF8),
		},
		{
			Symbol:       schema.WordSegmenterSegmentUtf16,
			Self:         true,
			SelfBorrowed: true,
			Params:       []binding.Param{binding.Lent(binding.Lossy(binding.Str16("input")))},
			Return:       binding.ReturnsObject(ClassWordIterUTF16),
		},
		self(schema.WordBreakIteratorUtf8Next, binding.Returns(wit.S32{})),
		self(schema.WordBreakIteratorUtf8WordType, binding.ReturnsEnum(WordTypes)),
		self(schema.WordBreakIteratorUtf8IsWordLike, binding.Returns(wit.Bool{})),
		self(schema.WordBreakIteratorUtf16Next, binding.Returns(wit.S32{})),
		self(schema.WordBreakIteratorUtf16WordType, binding.ReturnsEnum(WordTypes)),
		self(schema.WordBreakIteratorUtf16IsWordLike, binding.Returns(wit.Bool{})),
	}
}

var catalog = sync.OnceValues(func() (*binding.Catalog, error) {
	return binding.NewCatalog(Signatures()...)
})

// Catalog returns the validated catalog of Signatures.
func Catalog() (*binding.Catalog, error) {
	return catalog()
}
