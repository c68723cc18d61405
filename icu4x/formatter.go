package icu4x

import "context"

// DecimalFormatter renders decimals with a locale's symbols and grouping.
// It copies the locale's data and does not borrow the Locale.
type DecimalFormatter struct{ object }

// DecimalFormatterWithGroupingStrategy creates a formatter for loc. Locales
// without decimal data, the root locale included, fail with
// ErrDataMissingLocale.
func (l *Lib) DecimalFormatterWithGroupingStrategy(ctx context.Context, loc *Locale, strategy GroupingStrategy) (*DecimalFormatter, error) {
	o, err := l.construct(ctx, "DecimalFormatter.create_with_grouping_strategy", nil, loc.ref(), strategy)
	if err != nil {
		return nil, err
	}
	return &DecimalFormatter{o}, nil
}

func (f *DecimalFormatter) Format(ctx context.Context, d *Decimal) (string, error) {
	return f.text(ctx, "DecimalFormatter.format", d.ref())
}
