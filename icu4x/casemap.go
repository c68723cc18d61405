package icu4x

import "context"

// CaseMapper performs locale-sensitive case mapping.
type CaseMapper struct{ object }

func (l *Lib) NewCaseMapper(ctx context.Context) (*CaseMapper, error) {
	o, err := l.construct(ctx, "CaseMapper.create", nil)
	if err != nil {
		return nil, err
	}
	return &CaseMapper{o}, nil
}

func (c *CaseMapper) Lowercase(ctx context.Context, s string, loc *Locale) (string, error) {
	return c.text(ctx, "CaseMapper.lowercase", s, loc.ref())
}

func (c *CaseMapper) Uppercase(ctx context.Context, s string, loc *Locale) (string, error) {
	return c.text(ctx, "CaseMapper.uppercase", s, loc.ref())
}

// Fold applies locale-independent case folding.
func (c *CaseMapper) Fold(ctx context.Context, s string) (string, error) {
	return c.text(ctx, "CaseMapper.fold", s)
}
