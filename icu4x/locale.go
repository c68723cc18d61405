package icu4x

import (
	"context"

	"github.com/wippyai/icu-bridge/resource"
)

// Locale is a parsed BCP-47 locale identifier.
type Locale struct{ object }

func (l *Lib) locale(o object, err error) (*Locale, error) {
	if err != nil {
		return nil, err
	}
	return &Locale{o}, nil
}

// LocaleFromString parses a locale identifier. The empty identifier is the
// root locale "und". Malformed identifiers fail with ErrLocaleParser.
func (l *Lib) LocaleFromString(ctx context.Context, name string) (*Locale, error) {
	return l.locale(l.construct(ctx, "Locale.from_string", nil, name))
}

// LocaleUnknown returns the root locale.
func (l *Lib) LocaleUnknown(ctx context.Context) (*Locale, error) {
	return l.locale(l.construct(ctx, "Locale.unknown", nil))
}

// NormalizeLocale returns the canonical form of a locale identifier.
func (l *Lib) NormalizeLocale(ctx context.Context, name string) (string, error) {
	return call[string](ctx, l, "Locale.normalize", nil, name)
}

// Clone returns an independent copy.
func (loc *Locale) Clone(ctx context.Context) (*Locale, error) {
	return loc.lib.locale(loc.lib.construct(ctx, "Locale.clone", loc.obj))
}

// Basename returns the language, script, region and variants.
func (loc *Locale) Basename(ctx context.Context) (string, error) {
	return loc.text(ctx, "Locale.basename")
}

func (loc *Locale) Language(ctx context.Context) (string, error) {
	return loc.text(ctx, "Locale.language")
}

// Region returns "" when the locale has no region.
func (loc *Locale) Region(ctx context.Context) (string, error) {
	return loc.text(ctx, "Locale.region")
}

// Script returns "" when the locale has no script.
func (loc *Locale) Script(ctx context.Context) (string, error) {
	return loc.text(ctx, "Locale.script")
}

// ToString returns the full identifier.
func (loc *Locale) ToString(ctx context.Context) (string, error) {
	return loc.text(ctx, "Locale.to_string")
}

func (loc *Locale) ref() *resource.Object {
	if loc == nil {
		return nil
	}
	return loc.obj
}
