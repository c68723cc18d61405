package native

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const classCaseMapper = "CaseMapper"

type caseMapper struct{}

func (c *Core) caseMapperCreate(sym string, args []uint64) ([]uint64, error) {
	h, err := c.newObject(classCaseMapper, caseMapper{})
	if err != nil {
		return nil, err
	}
	return ret32(h), nil
}

// caseMapping builds an entry (self, s.ptr, s.len, locale, writeable).
func caseMapping(caser func(language.Tag) cases.Caser) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		if _, err := c.lookup(sym, u32(args[0]), classCaseMapper); err != nil {
			return nil, err
		}
		text, err := c.readText(sym, u32(args[1]), u32(args[2]), false)
		if err != nil {
			return nil, err
		}
		tag, err := c.locale(sym, u32(args[3]))
		if err != nil {
			return nil, err
		}
		return none(c.write(sym, u32(args[4]), caser(tag).String(string(text))))
	}
}

func (c *Core) caseMapperFold(sym string, args []uint64) ([]uint64, error) {
	if _, err := c.lookup(sym, u32(args[0]), classCaseMapper); err != nil {
		return nil, err
	}
	text, err := c.readText(sym, u32(args[1]), u32(args[2]), false)
	if err != nil {
		return nil, err
	}
	return none(c.write(sym, u32(args[3]), cases.Fold().String(string(text))))
}

func lower(tag language.Tag) cases.Caser { return cases.Lower(tag) }
func upper(tag language.Tag) cases.Caser { return cases.Upper(tag) }
