package native

import (
	"github.com/wippyai/icu-bridge/schema"
)

// entries is the export table of the core.
var entries = map[string]entry{
	schema.Alloc: {2, func(c *Core, sym string, args []uint64) ([]uint64, error) {
		ptr, err := c.heap.alloc(u32(args[0]), u32(args[1]))
		if err != nil {
			return ret32(0), nil
		}
		return ret32(ptr), nil
	}},
	schema.Free: {3, func(c *Core, sym string, args []uint64) ([]uint64, error) {
		c.heap.dealloc(u32(args[0]), u32(args[1]))
		return nil, nil
	}},

	schema.WriteableCreate:   {1, (*Core).writeableCreate},
	schema.WriteableGetBytes: {1, (*Core).writeableGetBytes},
	schema.WriteableLen:      {1, (*Core).writeableLen},
	schema.WriteableDestroy:  {1, (*Core).writeableDestroy},

	schema.LocaleFromString: {3, (*Core).localeFromString},
	schema.LocaleUnknown:    {0, (*Core).localeUnknown},
	schema.LocaleClone:      {1, (*Core).localeClone},
	schema.LocaleBasename:   {2, localeWriter(basename)},
	schema.LocaleLanguage:   {2, localeWriter(localeLanguage)},
	schema.LocaleRegion:     {2, localeWriter(localeRegion)},
	schema.LocaleScript:     {2, localeWriter(localeScript)},
	schema.LocaleToString:   {2, localeWriter(localeString)},
	schema.LocaleNormalize:  {4, (*Core).localeNormalize},
	schema.LocaleDestroy:    {1, destroyer(classLocale)},

	schema.DecimalFromInt32:                        {1, (*Core).decimalFromInt32},
	schema.DecimalFromUint32:                       {1, (*Core).decimalFromUint32},
	schema.DecimalFromInt64:                        {1, (*Core).decimalFromInt64},
	schema.DecimalFromUint64:                       {1, (*Core).decimalFromUint64},
	schema.DecimalFromDoubleWithIntegerPrecision:   {2, fromDouble(withIntegerPrecision)},
	schema.DecimalFromDoubleWithLowerMagnitude:     {3, fromDouble(withLowerMagnitude)},
	schema.DecimalFromDoubleWithSignificantDigits:  {3, fromDouble(withSignificantDigits)},
	schema.DecimalFromDoubleWithRoundTripPrecision: {2, fromDouble(withRoundTripPrecision)},
	schema.DecimalFromString:                       {3, (*Core).decimalFromString},
	schema.DecimalDigitAt: {2, decimalQuery(func(d *decimal, args []uint64) []uint64 {
		return ret32(uint32(d.digitAt(i16(args[0]))))
	})},
	schema.DecimalMagnitudeStart: {1, decimalQuery(func(d *decimal, _ []uint64) []uint64 {
		return retI32(int32(d.lower))
	})},
	schema.DecimalMagnitudeEnd: {1, decimalQuery(func(d *decimal, _ []uint64) []uint64 {
		return retI32(int32(d.upper))
	})},
	schema.DecimalNonzeroMagnitudeStart: {1, decimalQuery(func(d *decimal, _ []uint64) []uint64 {
		return retI32(int32(d.lsd()))
	})},
	schema.DecimalNonzeroMagnitudeEnd: {1, decimalQuery(func(d *decimal, _ []uint64) []uint64 {
		return retI32(int32(d.msd()))
	})},
	schema.DecimalIsZero: {1, decimalQuery(func(d *decimal, _ []uint64) []uint64 {
		return retBool(d.isZero())
	})},
	schema.DecimalSign: {1, decimalQuery(func(d *decimal, _ []uint64) []uint64 {
		ordinal, _ := signs.Ordinal(d.sign)
		return retI32(ordinal)
	})},
	schema.DecimalMultiplyPow10: {2, decimalUpdate(func(d *decimal, args []uint64) {
		d.multiplyPow10(i16(args[0]))
	})},
	schema.DecimalTrimStart:        {1, decimalUpdate(func(d *decimal, _ []uint64) { d.trimStart() })},
	schema.DecimalTrimEnd:          {1, decimalUpdate(func(d *decimal, _ []uint64) { d.trimEnd() })},
	schema.DecimalTrimEndIfInteger: {1, decimalUpdate(func(d *decimal, _ []uint64) { d.trimEndIfInteger() })},
	schema.DecimalPadStart: {2, decimalUpdate(func(d *decimal, args []uint64) {
		d.padStart(i16(args[0]))
	})},
	schema.DecimalPadEnd: {2, decimalUpdate(func(d *decimal, args []uint64) {
		d.padEnd(i16(args[0]))
	})},
	schema.DecimalSetMaxPosition: {2, decimalUpdate(func(d *decimal, args []uint64) {
		d.setMaxPosition(i16(args[0]))
	})},
	schema.DecimalSetSign:                   {2, (*Core).decimalSetSign},
	schema.DecimalApplySignDisplay:          {2, (*Core).decimalApplySignDisplay},
	schema.DecimalRound:                     {2, decimalRound(roundHalfExpand)},
	schema.DecimalCeil:                      {2, decimalRound(roundCeil)},
	schema.DecimalExpand:                    {2, decimalRound(roundExpand)},
	schema.DecimalFloor:                     {2, decimalRound(roundFloor)},
	schema.DecimalTrunc:                     {2, decimalRound(roundTrunc)},
	schema.DecimalRoundWithMode:             {3, (*Core).decimalRoundWithMode},
	schema.DecimalRoundWithModeAndIncrement: {4, (*Core).decimalRoundWithModeAndIncrement},
	schema.DecimalConcatenateEnd:            {3, (*Core).decimalConcatenateEnd},
	schema.DecimalToString:                  {2, (*Core).decimalToString},
	schema.DecimalDestroy:                   {1, destroyer(classDecimal)},

	schema.DecimalFormatterCreateWithGroupingStrategy: {3, (*Core).formatterCreateWithGroupingStrategy},
	schema.DecimalFormatterFormat:                     {3, (*Core).formatterFormat},
	schema.DecimalFormatterDestroy:                    {1, destroyer(classFormatter)},

	schema.CaseMapperCreate:    {0, (*Core).caseMapperCreate},
	schema.CaseMapperLowercase: {5, caseMapping(lower)},
	schema.CaseMapperUppercase: {5, caseMapping(upper)},
	schema.CaseMapperFold:      {4, (*Core).caseMapperFold},
	schema.CaseMapperDestroy:   {1, destroyer(classCaseMapper)},

	schema.WordSegmenterCreateAuto:   {1, (*Core).segmenterCreateAuto},
	schema.WordSegmenterSegmentUtf8:  {3, segment(false)},
	schema.WordSegmenterSegmentUtf16: {3, segment(true)},
	schema.WordSegmenterDestroy:      {1, destroyer(classSegmenter)},

	schema.WordBreakIteratorUtf8Next:       {1, iterNext(classIterUTF8)},
	schema.WordBreakIteratorUtf8WordType:   {1, iterWordType(classIterUTF8)},
	schema.WordBreakIteratorUtf8IsWordLike: {1, iterIsWordLike(classIterUTF8)},
	schema.WordBreakIteratorUtf8Destroy:    {1, destroyer(classIterUTF8)},

	schema.WordBreakIteratorUtf16Next:       {1, iterNext(classIterUTF16)},
	schema.WordBreakIteratorUtf16WordType:   {1, iterWordType(classIterUTF16)},
	schema.WordBreakIteratorUtf16IsWordLike: {1, iterIsWordLike(classIterUTF16)},
	schema.WordBreakIteratorUtf16Destroy:    {1, destroyer(classIterUTF16)},
}
