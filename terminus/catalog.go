package terminus

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.bytecodealliance.org/wit"
	"go.uber.org/multierr"

	"github.com/wippyai/icu-bridge/icu4x"
)

type destroyer interface{ Destroy() error }

// release destroys objects in reverse construction order and merges the
// errors into err.
func release(err *error, objs ...destroyer) {
	for _, o := range slices.Backward(objs) {
		*err = multierr.Append(*err, o.Destroy())
	}
}

// Termini returns the demo catalog.
func Termini() []*Terminus {
	return []*Terminus{
		{
			Function: "Locale.basename",
			Display:  "Locale basename",
			Params:   []Param{prim("locale", wit.String{})},
			run:      localeBasename,
		},
		{
			Function: "Locale.normalize",
			Display:  "Normalize locale identifier",
			Params:   []Param{prim("s", wit.String{})},
			run: func(ctx context.Context, lib *icu4x.Lib, args []any) (string, error) {
				return lib.NormalizeLocale(ctx, args[0].(string))
			},
		},
		{
			Function: "Decimal.toString",
			Display:  "Decimal to string",
			Params: []Param{
				prim("f", wit.F64{}),
				prim("magnitude", wit.S16{}),
				enumerator("signDisplay", icu4x.SignDisplays),
			},
			run: decimalToString,
		},
		{
			Function: "DecimalFormatter.format",
			Display:  "Format decimal",
			Params: []Param{
				prim("locale", wit.String{}),
				enumerator("groupingStrategy", icu4x.GroupingStrategies),
				prim("f", wit.F64{}),
				prim("magnitude", wit.S16{}),
			},
			run: formatDecimal,
		},
		{
			Function: "CaseMapper.lowercase",
			Display:  "Lowercase",
			Params:   []Param{prim("s", wit.String{}), prim("locale", wit.String{})},
			run:      caseMapping((*icu4x.CaseMapper).Lowercase),
		},
		{
			Function: "CaseMapper.uppercase",
			Display:  "Uppercase",
			Params:   []Param{prim("s", wit.String{}), prim("locale", wit.String{})},
			run:      caseMapping((*icu4x.CaseMapper).Uppercase),
		},
		{
			Function: "CaseMapper.fold",
			Display:  "Case fold",
			Params:   []Param{prim("s", wit.String{})},
			run:      fold,
		},
		{
			Function: "WordSegmenter.segment",
			Display:  "Word segments",
			Params:   []Param{prim("input", wit.String{})},
			run:      segment,
		},
	}
}

// Lookup finds a terminus by function name.
func Lookup(function string) (*Terminus, bool) {
	for _, t := range Termini() {
		if t.Function == function {
			return t, true
		}
	}
	return nil, false
}

func localeBasename(ctx context.Context, lib *icu4x.Lib, args []any) (s string, err error) {
	loc, err := lib.LocaleFromString(ctx, args[0].(string))
	if err != nil {
		return "", err
	}
	defer release(&err, loc)
	return loc.Basename(ctx)
}

func decimalToString(ctx context.Context, lib *icu4x.Lib, args []any) (s string, err error) {
	d, err := lib.DecimalFromDoubleWithLowerMagnitude(ctx, args[0].(float64), args[1].(int16))
	if err != nil {
		return "", err
	}
	defer release(&err, d)
	if err := d.ApplySignDisplay(ctx, args[2].(icu4x.SignDisplay)); err != nil {
		return "", err
	}
	return d.ToString(ctx)
}

func formatDecimal(ctx context.Context, lib *icu4x.Lib, args []any) (s string, err error) {
	loc, err := lib.LocaleFromString(ctx, args[0].(string))
	if err != nil {
		return "", err
	}
	defer release(&err, loc)

	f, err := lib.DecimalFormatterWithGroupingStrategy(ctx, loc, args[1].(icu4x.GroupingStrategy))
	if err != nil {
		return "", err
	}
	d, err := lib.DecimalFromDoubleWithLowerMagnitude(ctx, args[2].(float64), args[3].(int16))
	if err != nil {
		release(&err, f)
		return "", err
	}
	defer release(&err, f, d)
	return f.Format(ctx, d)
}

func caseMapping(fn func(*icu4x.CaseMapper, context.Context, string, *icu4x.Locale) (string, error)) Runner {
	return func(ctx context.Context, lib *icu4x.Lib, args []any) (s string, err error) {
		cm, err := lib.NewCaseMapper(ctx)
		if err != nil {
			return "", err
		}
		defer release(&err, cm)
		loc, err := lib.LocaleFromString(ctx, args[1].(string))
		if err != nil {
			return "", err
		}
		defer release(&err, loc)
		return fn(cm, ctx, args[0].(string), loc)
	}
}

func fold(ctx context.Context, lib *icu4x.Lib, args []any) (s string, err error) {
	cm, err := lib.NewCaseMapper(ctx)
	if err != nil {
		return "", err
	}
	defer release(&err, cm)
	return cm.Fold(ctx, args[0].(string))
}

// segment renders one line per segment: byte range, word type and text.
func segment(ctx context.Context, lib *icu4x.Lib, args []any) (s string, err error) {
	input := args[0].(string)
	seg, err := lib.WordSegmenterAuto(ctx)
	if err != nil {
		return "", err
	}
	defer release(&err, seg)
	it, err := seg.SegmentUTF8(ctx, input)
	if err != nil {
		return "", err
	}
	defer release(&err, it)

	var lines []string
	prev := int32(-1)
	for {
		b, err := it.Next(ctx)
		if err != nil {
			return "", err
		}
		if b < 0 {
			break
		}
		if prev >= 0 {
			wt, err := it.WordType(ctx)
			if err != nil {
				return "", err
			}
			lines = append(lines, fmt.Sprintf("%d-%d %s %q", prev, b, wt, input[prev:b]))
		}
		prev = b
	}
	return strings.Join(lines, "\n"), nil
}
