package native

import (
	"strings"

	"github.com/wippyai/icu-bridge/enum"
	"github.com/wippyai/icu-bridge/schema"
)

const classFormatter = "DecimalFormatter"

type grouping uint8

const (
	groupingAuto grouping = iota
	groupingNever
	groupingAlways
	groupingMin2
)

var groupings = enum.MustDerive(schema.GroupingStrategySpec, map[string]grouping{
	"Auto":   groupingAuto,
	"Never":  groupingNever,
	"Always": groupingAlways,
	"Min2":   groupingMin2,
})

// symbols is the decimal formatting data of one locale.
type symbols struct {
	decimal     string
	group       string
	minus       string
	plus        string
	primary     int
	secondary   int
	minGrouping int
}

var decimalData = map[string]symbols{
	"en": {decimal: ".", group: ",", minus: "-", plus: "+", primary: 3, secondary: 3, minGrouping: 1},
	"de": {decimal: ",", group: ".", minus: "-", plus: "+", primary: 3, secondary: 3, minGrouping: 1},
	"fr": {decimal: ",", group: "\u202f", minus: "-", plus: "+", primary: 3, secondary: 3, minGrouping: 1},
	"es": {decimal: ",", group: ".", minus: "-", plus: "+", primary: 3, secondary: 3, minGrouping: 2},
	"hi": {decimal: ".", group: ",", minus: "-", plus: "+", primary: 3, secondary: 2, minGrouping: 1},
	"ja": {decimal: ".", group: ",", minus: "-", plus: "+", primary: 3, secondary: 3, minGrouping: 1},
}

type formatter struct {
	symbols  symbols
	strategy grouping
}

// separatorAfter reports whether a group separator follows the digit at
// magnitude m of a number whose highest visible magnitude is upper.
func (f *formatter) separatorAfter(upper, m int) bool {
	primary := f.symbols.primary
	if primary == 0 || m < primary {
		return false
	}
	var minGrouping int
	switch f.strategy {
	case groupingNever:
		return false
	case groupingAlways:
		minGrouping = 1
	case groupingMin2:
		minGrouping = max(2, f.symbols.minGrouping)
	default:
		minGrouping = f.symbols.minGrouping
	}
	if upper < primary+minGrouping-1 {
		return false
	}
	secondary := f.symbols.secondary
	if secondary == 0 {
		secondary = primary
	}
	return (m-primary)%secondary == 0
}

func (f *formatter) format(d *decimal) string {
	var b strings.Builder
	switch d.sign {
	case signNegative:
		b.WriteString(f.symbols.minus)
	case signPositive:
		b.WriteString(f.symbols.plus)
	}
	for m := d.upper; m >= d.lower; m-- {
		if m == -1 {
			b.WriteString(f.symbols.decimal)
		}
		b.WriteByte('0' + d.digitAt(m))
		if m > 0 && f.separatorAfter(d.upper, m) {
			b.WriteString(f.symbols.group)
		}
	}
	return b.String()
}

func (c *Core) formatterCreateWithGroupingStrategy(sym string, args []uint64) ([]uint64, error) {
	ret := u32(args[0])
	tag, err := c.locale(sym, u32(args[1]))
	if err != nil {
		return nil, err
	}
	strategy, err := groupings.Value(int32(u32(args[2])))
	if err != nil {
		return nil, c.trap(sym, "invalid DecimalGroupingStrategy ordinal", u32(args[2]))
	}
	base, _, _ := tag.Raw()
	data, ok := decimalData[base.String()]
	if !ok {
		return none(c.errCode(sym, ret, "DataMissingLocaleError"))
	}
	h, err := c.newObject(classFormatter, &formatter{symbols: data, strategy: strategy})
	if err != nil {
		return nil, err
	}
	return none(c.okHandle(sym, ret, h))
}

func (c *Core) formatterFormat(sym string, args []uint64) ([]uint64, error) {
	v, err := c.lookup(sym, u32(args[0]), classFormatter)
	if err != nil {
		return nil, err
	}
	d, err := c.decimal(sym, u32(args[1]))
	if err != nil {
		return nil, err
	}
	return none(c.write(sym, u32(args[2]), v.(*formatter).format(d)))
}
