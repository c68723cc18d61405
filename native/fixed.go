package native

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/icu-bridge/enum"
	"github.com/wippyai/icu-bridge/schema"
)

type sign uint8

const (
	signNone sign = iota
	signNegative
	signPositive
)

type signDisplay uint8

const (
	displayAuto signDisplay = iota
	displayNever
	displayAlways
	displayExceptZero
	displayNegative
)

type roundingMode uint8

const (
	roundExpand roundingMode = iota
	roundTrunc
	roundHalfExpand
	roundHalfTrunc
	roundHalfEven
	roundCeil
	roundFloor
	roundHalfCeil
	roundHalfFloor
)

type roundingIncrement uint8

const (
	incrementOf1  roundingIncrement = 1
	incrementOf2  roundingIncrement = 2
	incrementOf5  roundingIncrement = 5
	incrementOf25 roundingIncrement = 25
)

var (
	signs = enum.MustDerive(schema.SignSpec, map[string]sign{
		"None":     signNone,
		"Negative": signNegative,
		"Positive": signPositive,
	})
	signDisplays = enum.MustDerive(schema.SignDisplaySpec, map[string]signDisplay{
		"Auto":       displayAuto,
		"Never":      displayNever,
		"Always":     displayAlways,
		"ExceptZero": displayExceptZero,
		"Negative":   displayNegative,
	})
	roundingModes = enum.MustDerive(schema.RoundingModeSpec, map[string]roundingMode{
		"Expand":     roundExpand,
		"Trunc":      roundTrunc,
		"HalfExpand": roundHalfExpand,
		"HalfTrunc":  roundHalfTrunc,
		"HalfEven":   roundHalfEven,
		"Ceil":       roundCeil,
		"Floor":      roundFloor,
		"HalfCeil":   roundHalfCeil,
		"HalfFloor":  roundHalfFloor,
	})
	roundingIncrements = enum.MustDerive(schema.RoundingIncrementSpec, map[string]roundingIncrement{
		"MultiplesOf1":  incrementOf1,
		"MultiplesOf2":  incrementOf2,
		"MultiplesOf5":  incrementOf5,
		"MultiplesOf25": incrementOf25,
	})
)

const (
	minMagnitude = math.MinInt16
	maxMagnitude = math.MaxInt16
)

// decimal is a fixed-point decimal with a visible magnitude range.
//
// digits holds the nonzero span, most significant first, without leading or
// trailing zeros; mag is the magnitude of digits[0]. upper and lower bound the
// rendered range and always satisfy lower <= 0 <= upper.
type decimal struct {
	digits []byte
	mag    int
	upper  int
	lower  int
	sign   sign
}

type parseFailure uint8

const (
	parseOK parseFailure = iota
	parseSyntax
	parseLimit
)

func (d *decimal) isZero() bool {
	return len(d.digits) == 0
}

// msd is the magnitude of the most significant nonzero digit, 0 for zero.
func (d *decimal) msd() int {
	if d.isZero() {
		return 0
	}
	return d.mag
}

// lsd is the magnitude of the least significant nonzero digit, 0 for zero.
func (d *decimal) lsd() int {
	if d.isZero() {
		return 0
	}
	return d.mag - len(d.digits) + 1
}

func (d *decimal) digitAt(m int) byte {
	if d.isZero() || m > d.mag || m < d.lsd() {
		return 0
	}
	return d.digits[d.mag-m]
}

func (d *decimal) reset() {
	d.digits = nil
	d.mag = 0
	d.upper = 0
	d.lower = 0
}

// strip removes leading and trailing zeros from digits.
func (d *decimal) strip() {
	i := 0
	for i < len(d.digits) && d.digits[i] == 0 {
		i++
	}
	d.digits = d.digits[i:]
	d.mag -= i
	j := len(d.digits)
	for j > 0 && d.digits[j-1] == 0 {
		j--
	}
	d.digits = d.digits[:j]
	if len(d.digits) == 0 {
		d.digits = nil
		d.mag = 0
	}
}

func parseDecimal(s string) (*decimal, parseFailure) {
	if s == "" {
		return nil, parseSyntax
	}
	d := &decimal{}
	switch s[0] {
	case '-':
		d.sign = signNegative
		s = s[1:]
	case '+':
		d.sign = signPositive
		s = s[1:]
	}

	intPart, frac, dotted := strings.Cut(s, ".")
	if intPart == "" || (dotted && frac == "") {
		return nil, parseSyntax
	}
	for _, part := range []string{intPart, frac} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return nil, parseSyntax
			}
		}
	}

	d.upper = len(intPart) - 1
	d.lower = -len(frac)
	if d.upper > maxMagnitude || d.lower < minMagnitude {
		return nil, parseLimit
	}

	all := intPart + frac
	d.digits = make([]byte, len(all))
	for i := 0; i < len(all); i++ {
		d.digits[i] = all[i] - '0'
	}
	d.mag = d.upper
	d.strip()
	return d, parseOK
}

func decimalFromInt64(v int64) *decimal {
	d, _ := parseDecimal(strconv.FormatInt(v, 10))
	return d
}

func decimalFromUint64(v uint64) *decimal {
	d, _ := parseDecimal(strconv.FormatUint(v, 10))
	return d
}

// decimalFromFloat parses the shortest representation that round-trips f.
func decimalFromFloat(f float64) (*decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	d, failure := parseDecimal(strconv.FormatFloat(f, 'f', -1, 64))
	if failure != parseOK {
		return nil, false
	}
	return d, true
}

func (d *decimal) clone() *decimal {
	c := *d
	c.digits = append([]byte(nil), d.digits...)
	return &c
}

func (d *decimal) String() string {
	var b strings.Builder
	switch d.sign {
	case signNegative:
		b.WriteByte('-')
	case signPositive:
		b.WriteByte('+')
	}
	for m := d.upper; m >= d.lower; m-- {
		if m == -1 {
			b.WriteByte('.')
		}
		b.WriteByte('0' + d.digitAt(m))
	}
	return b.String()
}

func (d *decimal) multiplyPow10(delta int) {
	switch {
	case delta > 0:
		d.upper += delta
		d.lower = min(d.lower+delta, 0)
	case delta < 0:
		d.lower += delta
		d.upper = max(d.upper+delta, 0)
	default:
		return
	}
	if !d.isZero() {
		d.mag += delta
	}
	if d.upper > maxMagnitude || d.lower < minMagnitude {
		d.reset()
	}
}

func (d *decimal) applySignDisplay(sd signDisplay) {
	switch sd {
	case displayAuto:
		if d.sign != signNegative {
			d.sign = signNone
		}
	case displayNever:
		d.sign = signNone
	case displayAlways:
		if d.sign != signNegative {
			d.sign = signPositive
		}
	case displayExceptZero:
		switch {
		case d.isZero():
			d.sign = signNone
		case d.sign != signNegative:
			d.sign = signPositive
		}
	case displayNegative:
		if d.sign != signNegative || d.isZero() {
			d.sign = signNone
		}
	}
}

func (d *decimal) trimStart() {
	d.upper = max(d.msd(), 0)
}

func (d *decimal) trimEnd() {
	d.lower = min(d.lsd(), 0)
}

// trimEndIfInteger drops the fractional zeros of an integer value.
func (d *decimal) trimEndIfInteger() {
	if d.lsd() >= 0 {
		d.trimEnd()
	}
}

// setMaxPosition drops every digit at or above position and makes the
// visible range end just below it.
func (d *decimal) setMaxPosition(position int) {
	if cut := d.mag - position + 1; !d.isZero() && cut > 0 {
		if cut >= len(d.digits) {
			d.digits = nil
		} else {
			d.digits = d.digits[cut:]
			d.mag = position - 1
		}
		d.strip()
	}
	d.upper = max(position-1, 0)
	d.lower = min(d.lower, position)
}

func (d *decimal) padStart(position int) {
	if position <= 0 {
		return
	}
	d.upper = max(position-1, d.msd())
}

func (d *decimal) padEnd(position int) {
	if position > 0 {
		return
	}
	d.lower = min(position, d.lsd())
}

// round drops every digit below position according to mode and sets the
// lower bound of the visible range to position.
func (d *decimal) round(position int, mode roundingMode) {
	d.roundDigits(position, mode)
	d.lower = min(position, 0)
}

func (d *decimal) roundDigits(position int, mode roundingMode) {
	if d.isZero() || position <= d.lsd() {
		return
	}

	// The dropped part is never zero here: the last digit is nonzero.
	up := d.roundsUp(mode, d.dropped(position), d.digitAt(position)%2 == 1)

	keep := d.mag - position + 1
	if keep <= 0 {
		d.digits = nil
	} else {
		d.digits = d.digits[:keep]
	}

	if up {
		if len(d.digits) == 0 {
			d.digits = []byte{1}
			d.mag = position
		} else {
			i := len(d.digits) - 1
			for i >= 0 && d.digits[i] == 9 {
				d.digits[i] = 0
				i--
			}
			if i < 0 {
				d.digits = append([]byte{1}, d.digits...)
				d.mag++
			} else {
				d.digits[i]++
			}
		}
	}
	d.strip()
	if d.mag > maxMagnitude {
		d.reset()
		return
	}
	d.upper = max(d.upper, d.msd())
}

// dropped compares the digits below position with half a unit at position:
// -1 below, 0 exactly half, 1 above. The dropped part must be nonzero.
func (d *decimal) dropped(position int) int {
	switch first := d.digitAt(position - 1); {
	case first > 5:
		return 1
	case first == 5:
		if d.lsd() < position-1 {
			return 1
		}
		return 0
	default:
		return -1
	}
}

// roundsUp reports whether a rounding moves away from zero. half compares
// the remainder with half an increment; oddDown reports whether the lower
// candidate is an odd multiple of the increment.
func (d *decimal) roundsUp(mode roundingMode, half int, oddDown bool) bool {
	neg := d.sign == signNegative
	switch mode {
	case roundExpand:
		return true
	case roundHalfExpand:
		return half >= 0
	case roundHalfTrunc:
		return half > 0
	case roundHalfEven:
		return half > 0 || (half == 0 && oddDown)
	case roundCeil:
		return !neg
	case roundFloor:
		return neg
	case roundHalfCeil:
		return half > 0 || (half == 0 && !neg)
	case roundHalfFloor:
		return half > 0 || (half == 0 && neg)
	}
	return false
}

// roundIncrement rounds to a multiple of inc units at position and sets the
// lower bound of the visible range to position.
func (d *decimal) roundIncrement(position int, mode roundingMode, inc roundingIncrement) {
	n := int(inc)
	if n <= 1 {
		d.round(position, mode)
		return
	}
	defer func() { d.lower = min(position, 0) }()
	if d.isZero() {
		return
	}

	// Every increment divides 100, so the two lowest kept digits decide the
	// remainder and the parity of the lower candidate.
	low := int(d.digitAt(position+1))*10 + int(d.digitAt(position))
	k := low % n
	exact := d.lsd() >= position
	if k == 0 && exact {
		return
	}

	// Compare k plus the dropped fraction with n/2.
	var half int
	switch m := 2*k - n; {
	case m >= 1:
		half = 1
	case m <= -2:
		half = -1
	case m == 0:
		half = 0
		if !exact {
			half = 1
		}
	default:
		if exact {
			half = -1
		} else {
			half = d.dropped(position)
		}
	}
	oddDown := (low-k)%(2*n)/n == 1

	delta := -k
	if d.roundsUp(mode, half, oddDown) {
		delta += n
	}

	top := max(d.mag, position+1) + 1
	buf := make([]byte, top-position+1)
	for m := top; m >= position; m-- {
		buf[top-m] = d.digitAt(m)
	}
	carry := delta
	for i := len(buf) - 1; i >= 0 && carry != 0; i-- {
		v := int(buf[i]) + carry
		carry = v / 10
		if v%10 < 0 {
			carry--
		}
		buf[i] = byte(v - carry*10)
	}
	d.digits = buf
	d.mag = top
	d.strip()
	if d.mag > maxMagnitude {
		d.reset()
		return
	}
	d.upper = max(d.upper, d.msd())
}

// concatenateEnd appends other's digits below d's. It fails without
// changing d when the nonzero digit ranges would overlap.
func (d *decimal) concatenateEnd(other *decimal) bool {
	if !d.isZero() && !other.isZero() && d.lsd() <= other.msd() {
		return false
	}
	switch {
	case d.isZero():
		d.digits = append([]byte(nil), other.digits...)
		d.mag = other.mag
	case !other.isZero():
		gap := d.lsd() - other.msd() - 1
		d.digits = append(d.digits, make([]byte, gap)...)
		d.digits = append(d.digits, other.digits...)
	}
	d.upper = max(d.upper, other.upper)
	d.lower = min(d.lower, other.lower)
	return true
}
