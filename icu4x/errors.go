package icu4x

import (
	"github.com/wippyai/icu-bridge/enum"
	"github.com/wippyai/icu-bridge/schema"
)

// ErrorCode is a native error. Its value is the symbolic name shared by
// every binding of the core, so codes compare equal with errors.Is.
type ErrorCode string

const (
	ErrUnknown                             ErrorCode = "UnknownError"
	ErrWriteable                           ErrorCode = "WriteableError"
	ErrOutOfBounds                         ErrorCode = "OutOfBoundsError"
	ErrDataMissingResourceKey              ErrorCode = "DataMissingResourceKeyError"
	ErrDataMissingVariant                  ErrorCode = "DataMissingVariantError"
	ErrDataMissingLocale                   ErrorCode = "DataMissingLocaleError"
	ErrDataMissingResourceOptions          ErrorCode = "DataMissingResourceOptionsError"
	ErrDataNeedsVariant                    ErrorCode = "DataNeedsVariantError"
	ErrDataNeedsLocale                     ErrorCode = "DataNeedsLocaleError"
	ErrDataExtraneousResourceOptions       ErrorCode = "DataExtraneousResourceOptionsError"
	ErrDataFilteredResource                ErrorCode = "DataFilteredResourceError"
	ErrDataMismatchedType                  ErrorCode = "DataMismatchedTypeError"
	ErrDataMissingPayload                  ErrorCode = "DataMissingPayloadError"
	ErrDataInvalidState                    ErrorCode = "DataInvalidStateError"
	ErrDataCustom                          ErrorCode = "DataCustomError"
	ErrDataIo                              ErrorCode = "DataIoError"
	ErrDataUnavailableBufferFormat         ErrorCode = "DataUnavailableBufferFormatError"
	ErrLocaleUndefinedSubtag               ErrorCode = "LocaleUndefinedSubtagError"
	ErrLocaleParser                        ErrorCode = "LocaleParserError"
	ErrDataStructValidity                  ErrorCode = "DataStructValidityError"
	ErrPropertyUnknownScriptId             ErrorCode = "PropertyUnknownScriptIdError"
	ErrPropertyUnknownGeneralCategoryGroup ErrorCode = "PropertyUnknownGeneralCategoryGroupError"
	ErrDecimalLimit                        ErrorCode = "DecimalLimitError"
	ErrDecimalSyntax                       ErrorCode = "DecimalSyntaxError"
	ErrPluralParser                        ErrorCode = "PluralParserError"
)

// ErrorCodes maps native error ordinals to codes.
var ErrorCodes = enum.MustDerive(schema.ErrorSpec, func() map[string]ErrorCode {
	m := make(map[string]ErrorCode, len(schema.ErrorSpec.Cases))
	for _, c := range schema.ErrorSpec.Cases {
		m[c.Name] = ErrorCode(c.Name)
	}
	return m
}())

func (e ErrorCode) Error() string { return string(e) }

// Ordinal returns the native discriminant, or -1 for an unknown code.
func (e ErrorCode) Ordinal() int32 {
	o, err := ErrorCodes.Ordinal(e)
	if err != nil {
		return -1
	}
	return o
}

// Category groups error codes by what the caller can do about them.
type Category uint8

const (
	CategoryInternal Category = iota
	CategoryMalformed
	CategoryOutOfRange
	CategoryUnsupported
	CategoryMissingData
)

func (c Category) String() string {
	switch c {
	case CategoryMalformed:
		return "malformed input"
	case CategoryOutOfRange:
		return "out of range"
	case CategoryUnsupported:
		return "unsupported option"
	case CategoryMissingData:
		return "missing data"
	default:
		return "internal"
	}
}

// Argument reports whether the category blames the call's arguments.
func (c Category) Argument() bool {
	return c == CategoryMalformed || c == CategoryOutOfRange || c == CategoryUnsupported
}

// Category classifies the code.
func (e ErrorCode) Category() Category {
	switch e {
	case ErrLocaleParser, ErrLocaleUndefinedSubtag, ErrDecimalSyntax, ErrPluralParser:
		return CategoryMalformed
	case ErrOutOfBounds, ErrDecimalLimit:
		return CategoryOutOfRange
	case ErrDataExtraneousResourceOptions, ErrDataNeedsVariant, ErrDataNeedsLocale,
		ErrPropertyUnknownScriptId, ErrPropertyUnknownGeneralCategoryGroup:
		return CategoryUnsupported
	case ErrDataMissingResourceKey, ErrDataMissingVariant, ErrDataMissingLocale,
		ErrDataMissingResourceOptions, ErrDataMissingPayload, ErrDataFilteredResource,
		ErrDataIo, ErrDataUnavailableBufferFormat:
		return CategoryMissingData
	default:
		return CategoryInternal
	}
}

// decimalOverlap is the unit failure of ConcatenateEnd.
type decimalOverlap struct{}

func (decimalOverlap) Error() string { return "decimal magnitudes overlap" }

// ErrDecimalOverlap is returned by ConcatenateEnd when the operands' digits
// would overlap. Neither operand is changed.
var ErrDecimalOverlap error = decimalOverlap{}
