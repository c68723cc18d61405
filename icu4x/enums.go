package icu4x

import (
	"github.com/wippyai/icu-bridge/enum"
	"github.com/wippyai/icu-bridge/schema"
)

// GroupingStrategy selects when digit group separators are shown.
type GroupingStrategy uint8

const (
	GroupingAuto GroupingStrategy = iota
	GroupingNever
	GroupingAlways
	GroupingMin2
)

var GroupingStrategies = enum.MustDerive(schema.GroupingStrategySpec, map[string]GroupingStrategy{
	"Auto":   GroupingAuto,
	"Never":  GroupingNever,
	"Always": GroupingAlways,
	"Min2":   GroupingMin2,
})

func (g GroupingStrategy) String() string { return GroupingStrategies.Name(g) }

// SignDisplay selects when a decimal renders its sign.
type SignDisplay uint8

const (
	SignDisplayAuto SignDisplay = iota
	SignDisplayNever
	SignDisplayAlways
	SignDisplayExceptZero
	SignDisplayNegative
)

var SignDisplays = enum.MustDerive(schema.SignDisplaySpec, map[string]SignDisplay{
	"Auto":       SignDisplayAuto,
	"Never":      SignDisplayNever,
	"Always":     SignDisplayAlways,
	"ExceptZero": SignDisplayExceptZero,
	"Negative":   SignDisplayNegative,
})

func (s SignDisplay) String() string { return SignDisplays.Name(s) }

// Sign is the sign stored in a decimal.
type Sign uint8

const (
	SignNone Sign = iota
	SignNegative
	SignPositive
)

var Signs = enum.MustDerive(schema.SignSpec, map[string]Sign{
	"None":     SignNone,
	"Negative": SignNegative,
	"Positive": SignPositive,
})

func (s Sign) String() string { return Signs.Name(s) }

// RoundingMode is a signed rounding mode.
type RoundingMode uint8

const (
	RoundExpand RoundingMode = iota
	RoundTrunc
	RoundHalfExpand
	RoundHalfTrunc
	RoundHalfEven
	RoundCeil
	RoundFloor
	RoundHalfCeil
	RoundHalfFloor
)

var RoundingModes = enum.MustDerive(schema.RoundingModeSpec, map[string]RoundingMode{
	"Expand":     RoundExpand,
	"Trunc":      RoundTrunc,
	"HalfExpand": RoundHalfExpand,
	"HalfTrunc":  RoundHalfTrunc,
	"HalfEven":   RoundHalfEven,
	"Ceil":       RoundCeil,
	"Floor":      RoundFloor,
	"HalfCeil":   RoundHalfCeil,
	"HalfFloor":  RoundHalfFloor,
})

func (m RoundingMode) String() string { return RoundingModes.Name(m) }

// RoundingIncrement is the multiple a rounding snaps to, in units of the
// rounding position.
type RoundingIncrement uint8

const (
	IncrementOf1 RoundingIncrement = iota
	IncrementOf2
	IncrementOf5
	IncrementOf25
)

var RoundingIncrements = enum.MustDerive(schema.RoundingIncrementSpec, map[string]RoundingIncrement{
	"MultiplesOf1":  IncrementOf1,
	"MultiplesOf2":  IncrementOf2,
	"MultiplesOf5":  IncrementOf5,
	"MultiplesOf25": IncrementOf25,
})

func (i RoundingIncrement) String() string { return RoundingIncrements.Name(i) }

// WordType classifies the segment before a word boundary.
type WordType uint8

const (
	WordNone WordType = iota
	WordNumber
	WordLetter
)

var WordTypes = enum.MustDerive(schema.WordTypeSpec, map[string]WordType{
	"None":   WordNone,
	"Number": WordNumber,
	"Letter": WordLetter,
})

func (w WordType) String() string { return WordTypes.Name(w) }

// IsWordLike reports whether the segment is a word or number.
func (w WordType) IsWordLike() bool { return w != WordNone }
