package native

import (
	"unicode"
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

const (
	classSegmenter = "WordSegmenter"
	classIterUTF8  = "WordBreakIteratorUtf8"
	classIterUTF16 = "WordBreakIteratorUtf16"
)

// Ordinals of SegmenterWordType.
const (
	wordNone   int32 = 0
	wordNumber int32 = 1
	wordLetter int32 = 2
)

type wordSegmenter struct{}

// wordIterator walks word boundaries of a buffer it borrows from the host.
// The buffer and the segmenter are checked on every step.
type wordIterator struct {
	segmenter uint32
	ptr       uint32
	length    uint32 // code units
	utf16     bool

	bounds []int
	types  []int32
	next   int
	last   int32
}

// wordBreaks returns boundary offsets in code units and the type of the
// segment ending at each boundary.
func wordBreaks(text string, units16 bool) ([]int, []int32) {
	bounds := []int{0}
	types := []int32{wordNone}
	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if units16 {
			for _, r := range word {
				offset += utf16.RuneLen(r)
			}
		} else {
			offset += len(word)
		}
		bounds = append(bounds, offset)
		types = append(types, wordType(word))
	}
	return bounds, types
}

func wordType(word string) int32 {
	kind := wordNone
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			return wordLetter
		case unicode.IsNumber(r):
			kind = wordNumber
		}
	}
	return kind
}

func (c *Core) segmenterCreateAuto(sym string, args []uint64) ([]uint64, error) {
	h, err := c.newObject(classSegmenter, wordSegmenter{})
	if err != nil {
		return nil, err
	}
	return none(c.okHandle(sym, u32(args[0]), h))
}

func segment(units16 bool) handler {
	class := classIterUTF8
	if units16 {
		class = classIterUTF16
	}
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		self := u32(args[0])
		if _, err := c.lookup(sym, self, classSegmenter); err != nil {
			return nil, err
		}
		it := &wordIterator{segmenter: self, ptr: u32(args[1]), length: u32(args[2]), utf16: units16}
		if _, err := c.readText(sym, it.ptr, it.length, units16); err != nil {
			return nil, err
		}
		h, err := c.newObject(class, it)
		if err != nil {
			return nil, err
		}
		return ret32(h), nil
	}
}

// iterator resolves an iterator and verifies what it borrows is still alive.
func (c *Core) iterator(sym string, addr uint32, class string) (*wordIterator, error) {
	v, err := c.lookup(sym, addr, class)
	if err != nil {
		return nil, err
	}
	it := v.(*wordIterator)
	if o, ok := c.objects[it.segmenter]; !ok || o.class != classSegmenter {
		return nil, c.trap(sym, "iterator outlived its segmenter", it.segmenter)
	}
	text, err := c.readText(sym, it.ptr, it.length, it.utf16)
	if err != nil {
		return nil, err
	}
	if it.bounds == nil {
		it.bounds, it.types = wordBreaks(decodeText(text, it.utf16), it.utf16)
	}
	return it, nil
}

func decodeText(b []byte, units16 bool) string {
	if !units16 {
		return string(b)
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}

func iterNext(class string) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		it, err := c.iterator(sym, u32(args[0]), class)
		if err != nil {
			return nil, err
		}
		if it.next >= len(it.bounds) {
			it.last = wordNone
			return retI32(-1), nil
		}
		b := it.bounds[it.next]
		it.last = it.types[it.next]
		it.next++
		return retI32(int32(b)), nil
	}
}

func iterWordType(class string) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		it, err := c.iterator(sym, u32(args[0]), class)
		if err != nil {
			return nil, err
		}
		return retI32(it.last), nil
	}
}

func iterIsWordLike(class string) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		it, err := c.iterator(sym, u32(args[0]), class)
		if err != nil {
			return nil, err
		}
		return retBool(it.last != wordNone), nil
	}
}

func destroyer(class string) handler {
	return func(c *Core, sym string, args []uint64) ([]uint64, error) {
		return none(c.destroy(sym, u32(args[0]), class))
	}
}
