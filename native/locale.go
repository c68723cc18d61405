package native

import (
	"strings"

	"golang.org/x/text/language"
)

const classLocale = "Locale"

// parseLocale parses a BCP-47 identifier without alias replacement.
// The empty identifier is the root locale.
func parseLocale(b []byte) (language.Tag, bool) {
	if len(b) == 0 {
		return language.Und, true
	}
	tag, err := language.Raw.Parse(string(b))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

func basename(tag language.Tag) string {
	base, script, region := tag.Raw()
	parts := []string{base.String()}
	if script != (language.Script{}) {
		parts = append(parts, script.String())
	}
	if region != (language.Region{}) {
		parts = append(parts, region.String())
	}
	for _, v := range tag.Variants() {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "-")
}

func (c *Core) locale(sym string, addr uint32) (language.Tag, error) {
	v, err := c.lookup(sym, addr, classLocale)
	if err != nil {
		return language.Und, err
	}
	return v.(language.Tag), nil
}

func (c *Core) localeFromString(sym string, args []uint64) ([]uint64, error) {
	ret := u32(args[0])
	text, err := c.readText(sym, u32(args[1]), u32(args[2]), false)
	if err != nil {
		return nil, err
	}
	tag, ok := parseLocale(text)
	if !ok {
		return none(c.errCode(sym, ret, "LocaleParserError"))
	}
	h, err := c.newObject(classLocale, tag)
	if err != nil {
		return nil, err
	}
	return none(c.okHandle(sym, ret, h))
}

func (c *Core) localeUnknown(sym string, args []uint64) ([]uint64, error) {
	h, err := c.newObject(classLocale, language.Und)
	if err != nil {
		return nil, err
	}
	return ret32(h), nil
}

func (c *Core) localeClone(sym string, args []uint64) ([]uint64, error) {
	tag, err := c.locale(sym, u32(args[0]))
	if err != nil {
		return nil, err
	}
	h, err := c.newObject(classLocale, tag)
	if err != nil {
		return nil, err
	}
	return ret32(h), nil
}

// localeWriter builds an entry that renders one part of a locale into a
// writeable.
func localeWriter(part func(language.Tag) string) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		tag, err := c.locale(sym, u32(args[0]))
		if err != nil {
			return nil, err
		}
		return none(c.write(sym, u32(args[1]), part(tag)))
	}
}

func localeString(tag language.Tag) string {
	return tag.String()
}

func localeLanguage(tag language.Tag) string {
	base, _, _ := tag.Raw()
	return base.String()
}

func localeRegion(tag language.Tag) string {
	_, _, region := tag.Raw()
	if region == (language.Region{}) {
		return ""
	}
	return region.String()
}

func localeScript(tag language.Tag) string {
	_, script, _ := tag.Raw()
	if script == (language.Script{}) {
		return ""
	}
	return script.String()
}

func (c *Core) localeNormalize(sym string, args []uint64) ([]uint64, error) {
	ret := u32(args[0])
	text, err := c.readText(sym, u32(args[1]), u32(args[2]), false)
	if err != nil {
		return nil, err
	}
	tag, ok := parseLocale(text)
	if !ok {
		return none(c.errCode(sym, ret, "LocaleParserError"))
	}
	if err := c.write(sym, u32(args[3]), tag.String()); err != nil {
		return nil, err
	}
	return none(c.putResult(sym, ret, 4, true, nil))
}
