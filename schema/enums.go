// Package schema holds the native core's enum definitions and entry point
// names. Both the Go bindings and the reference core derive their tables from
// these values.
package schema

import "github.com/wippyai/icu-bridge/enum"

// ErrorSpec is the flat cross-binding error set.
var ErrorSpec = enum.Spec{
	Name:    "ICU4XError",
	Default: "UnknownError",
	Cases: []enum.Case{
		{Name: "UnknownError", Ordinal: 0},
		{Name: "WriteableError", Ordinal: 1},
		{Name: "OutOfBoundsError", Ordinal: 2},
		{Name: "DataMissingResourceKeyError", Ordinal: 256},
		{Name: "DataMissingVariantError", Ordinal: 257},
		{Name: "DataMissingLocaleError", Ordinal: 258},
		{Name: "DataMissingResourceOptionsError", Ordinal: 259},
		{Name: "DataNeedsVariantError", Ordinal: 260},
		{Name: "DataNeedsLocaleError", Ordinal: 261},
		{Name: "DataExtraneousResourceOptionsError", Ordinal: 262},
		{Name: "DataFilteredResourceError", Ordinal: 263},
		{Name: "DataMismatchedTypeError", Ordinal: 264},
		{Name: "DataMissingPayloadError", Ordinal: 265},
		{Name: "DataInvalidStateError", Ordinal: 266},
		{Name: "DataCustomError", Ordinal: 267},
		{Name: "DataIoError", Ordinal: 268},
		{Name: "DataUnavailableBufferFormatError", Ordinal: 269},
		{Name: "LocaleUndefinedSubtagError", Ordinal: 512},
		{Name: "LocaleParserError", Ordinal: 513},
		{Name: "DataStructValidityError", Ordinal: 768},
		{Name: "PropertyUnknownScriptIdError", Ordinal: 1024},
		{Name: "PropertyUnknownGeneralCategoryGroupError", Ordinal: 1025},
		{Name: "DecimalLimitError", Ordinal: 1280},
		{Name: "DecimalSyntaxError", Ordinal: 1281},
		{Name: "PluralParserError", Ordinal: 1536},
	},
}

// GroupingStrategySpec selects when digit group separators are shown.
var GroupingStrategySpec = enum.Spec{
	Name:    "DecimalGroupingStrategy",
	Default: "Auto",
	Cases: []enum.Case{
		{Name: "Auto", Ordinal: 0},
		{Name: "Never", Ordinal: 1},
		{Name: "Always", Ordinal: 2},
		{Name: "Min2", Ordinal: 3},
	},
}

// SignDisplaySpec selects when a sign is rendered.
var SignDisplaySpec = enum.Spec{
	Name:    "DecimalSignDisplay",
	Default: "Auto",
	Cases: []enum.Case{
		{Name: "Auto", Ordinal: 0},
		{Name: "Never", Ordinal: 1},
		{Name: "Always", Ordinal: 2},
		{Name: "ExceptZero", Ordinal: 3},
		{Name: "Negative", Ordinal: 4},
	},
}

// SignSpec is the sign stored in a decimal.
var SignSpec = enum.Spec{
	Name:    "DecimalSign",
	Default: "None",
	Cases: []enum.Case{
		{Name: "None", Ordinal: 0},
		{Name: "Negative", Ordinal: 1},
		{Name: "Positive", Ordinal: 2},
	},
}

// RoundingModeSpec lists the signed rounding modes.
var RoundingModeSpec = enum.Spec{
	Name:    "DecimalSignedRoundingMode",
	Default: "HalfExpand",
	Cases: []enum.Case{
		{Name: "Expand", Ordinal: 0},
		{Name: "Trunc", Ordinal: 1},
		{Name: "HalfExpand", Ordinal: 2},
		{Name: "HalfTrunc", Ordinal: 3},
		{Name: "HalfEven", Ordinal: 4},
		{Name: "Ceil", Ordinal: 5},
		{Name: "Floor", Ordinal: 6},
		{Name: "HalfCeil", Ordinal: 7},
		{Name: "HalfFloor", Ordinal: 8},
	},
}

// RoundingIncrementSpec lists the multiples a rounding may snap to.
var RoundingIncrementSpec = enum.Spec{
	Name:    "DecimalRoundingIncrement",
	Default: "MultiplesOf1",
	Cases: []enum.Case{
		{Name: "MultiplesOf1", Ordinal: 0},
		{Name: "MultiplesOf2", Ordinal: 1},
		{Name: "MultiplesOf5", Ordinal: 2},
		{Name: "MultiplesOf25", Ordinal: 3},
	},
}

// WordTypeSpec classifies the segment preceding a word boundary.
var WordTypeSpec = enum.Spec{
	Name:    "SegmenterWordType",
	Default: "None",
	Cases: []enum.Case{
		{Name: "None", Ordinal: 0},
		{Name: "Number", Ordinal: 1},
		{Name: "Letter", Ordinal: 2},
	},
}

// Specs lists every enum definition of the core.
var Specs = []enum.Spec{
	ErrorSpec,
	GroupingStrategySpec,
	SignDisplaySpec,
	SignSpec,
	RoundingModeSpec,
	RoundingIncrementSpec,
	WordTypeSpec,
}
