package schema

// Runtime entry points shared by every core build.
const (
	Alloc             = "diplomat_alloc"
	Free              = "diplomat_free"
	WriteableCreate   = "diplomat_buffer_write_create"
	WriteableGetBytes = "diplomat_buffer_write_get_bytes"
	WriteableLen      = "diplomat_buffer_write_len"
	WriteableDestroy  = "diplomat_buffer_write_destroy"
)

// Locale
const (
	LocaleFromString = "icu4x_Locale_from_string_mv1"
	LocaleUnknown    = "icu4x_Locale_unknown_mv1"
	LocaleClone      = "icu4x_Locale_clone_mv1"
	LocaleBasename   = "icu4x_Locale_basename_mv1"
	LocaleLanguage   = "icu4x_Locale_language_mv1"
	LocaleRegion     = "icu4x_Locale_region_mv1"
	LocaleScript     = "icu4x_Locale_script_mv1"
	LocaleToString   = "icu4x_Locale_to_string_mv1"
	LocaleNormalize  = "icu4x_Locale_normalize_mv1"
	LocaleDestroy    = "icu4x_Locale_destroy_mv1"
)

// Decimal
const (
	DecimalFromInt32                        = "icu4x_Decimal_from_int32_mv1"
	DecimalFromUint32                       = "icu4x_Decimal_from_uint32_mv1"
	DecimalFromInt64                        = "icu4x_Decimal_from_int64_mv1"
	DecimalFromUint64                       = "icu4x_Decimal_from_uint64_mv1"
	DecimalFromDoubleWithIntegerPrecision   = "icu4x_Decimal_from_double_with_integer_precision_mv1"
	DecimalFromDoubleWithLowerMagnitude     = "icu4x_Decimal_from_double_with_lower_magnitude_mv1"
	DecimalFromDoubleWithSignificantDigits  = "icu4x_Decimal_from_double_with_significant_digits_mv1"
	DecimalFromDoubleWithRoundTripPrecision = "icu4x_Decimal_from_double_with_round_trip_precision_mv1"
	DecimalFromString                       = "icu4x_Decimal_from_string_mv1"
	DecimalDigitAt                          = "icu4x_Decimal_digit_at_mv1"
	DecimalMagnitudeStart                   = "icu4x_Decimal_magnitude_start_mv1"
	DecimalMagnitudeEnd                     = "icu4x_Decimal_magnitude_end_mv1"
	DecimalNonzeroMagnitudeStart            = "icu4x_Decimal_nonzero_magnitude_start_mv1"
	DecimalNonzeroMagnitudeEnd              = "icu4x_Decimal_nonzero_magnitude_end_mv1"
	DecimalIsZero                           = "icu4x_Decimal_is_zero_mv1"
	DecimalMultiplyPow10                    = "icu4x_Decimal_multiply_pow10_mv1"
	DecimalSign                             = "icu4x_Decimal_sign_mv1"
	DecimalSetSign                          = "icu4x_Decimal_set_sign_mv1"
	DecimalApplySignDisplay                 = "icu4x_Decimal_apply_sign_display_mv1"
	DecimalTrimStart                        = "icu4x_Decimal_trim_start_mv1"
	DecimalTrimEnd                          = "icu4x_Decimal_trim_end_mv1"
	DecimalTrimEndIfInteger                 = "icu4x_Decimal_trim_end_if_integer_mv1"
	DecimalPadStart                         = "icu4x_Decimal_pad_start_mv1"
	DecimalPadEnd                           = "icu4x_Decimal_pad_end_mv1"
	DecimalSetMaxPosition                   = "icu4x_Decimal_set_max_position_mv1"
	DecimalRound                            = "icu4x_Decimal_round_mv1"
	DecimalCeil                             = "icu4x_Decimal_ceil_mv1"
	DecimalExpand                           = "icu4x_Decimal_expand_mv1"
	DecimalFloor                            = "icu4x_Decimal_floor_mv1"
	DecimalTrunc                            = "icu4x_Decimal_trunc_mv1"
	DecimalRoundWithMode                    = "icu4x_Decimal_round_with_mode_mv1"
	DecimalRoundWithModeAndIncrement        = "icu4x_Decimal_round_with_mode_and_increment_mv1"
	DecimalConcatenateEnd                   = "icu4x_Decimal_concatenate_end_mv1"
	DecimalToString                         = "icu4x_Decimal_to_string_mv1"
	DecimalDestroy                          = "icu4x_Decimal_destroy_mv1"
)

// DecimalFormatter
const (
	DecimalFormatterCreateWithGroupingStrategy = "icu4x_DecimalFormatter_create_with_grouping_strategy_mv1"
	DecimalFormatterFormat                     = "icu4x_DecimalFormatter_format_mv1"
	DecimalFormatterDestroy                    = "icu4x_DecimalFormatter_destroy_mv1"
)

// CaseMapper
const (
	CaseMapperCreate    = "icu4x_CaseMapper_create_mv1"
	CaseMapperLowercase = "icu4x_CaseMapper_lowercase_mv1"
	CaseMapperUppercase = "icu4x_CaseMapper_uppercase_mv1"
	CaseMapperFold      = "icu4x_CaseMapper_fold_mv1"
	CaseMapperDestroy   = "icu4x_CaseMapper_destroy_mv1"
)

// WordSegmenter and its iterators
const (
	WordSegmenterCreateAuto   = "icu4x_WordSegmenter_create_auto_mv1"
	WordSegmenterSegmentUtf8  = "icu4x_WordSegmenter_segment_utf8_mv1"
	WordSegmenterSegmentUtf16 = "icu4x_WordSegmenter_segment_utf16_mv1"
	WordSegmenterDestroy      = "icu4x_WordSegmenter_destroy_mv1"

	WordBreakIteratorUtf8Next       = "icu4x_WordBreakIteratorUtf8_next_mv1"
	WordBreakIteratorUtf8WordType   = "icu4x_WordBreakIteratorUtf8_word_type_mv1"
	WordBreakIteratorUtf8IsWordLike = "icu4x_WordBreakIteratorUtf8_is_word_like_mv1"
	WordBreakIteratorUtf8Destroy    = "icu4x_WordBreakIteratorUtf8_destroy_mv1"

	WordBreakIteratorUtf16Next       = "icu4x_WordBreakIteratorUtf16_next_mv1"
	WordBreakIteratorUtf16WordType   = "icu4x_WordBreakIteratorUtf16_word_type_mv1"
	WordBreakIteratorUtf16IsWordLike = "icu4x_WordBreakIteratorUtf16_is_word_like_mv1"
	WordBreakIteratorUtf16Destroy    = "icu4x_WordBreakIteratorUtf16_destroy_mv1"
)
