package icu4x

import "context"

// WordSegmenter finds word boundaries.
type WordSegmenter struct{ object }

// WordSegmenterAuto creates a segmenter with the default rules.
func (l *Lib) WordSegmenterAuto(ctx context.Context) (*WordSegmenter, error) {
	o, err := l.construct(ctx, "WordSegmenter.create_auto", nil)
	if err != nil {
		return nil, err
	}
	return &WordSegmenter{o}, nil
}

// SegmentUTF8 returns an iterator over the boundaries of s in bytes.
// The iterator borrows the segmenter and a native copy of s.
func (s *WordSegmenter) SegmentUTF8(ctx context.Context, input string) (*WordBreakIteratorUTF8, error) {
	o, err := s.lib.construct(ctx, "WordSegmenter.segment_utf8", s.obj, input)
	if err != nil {
		return nil, err
	}
	return &WordBreakIteratorUTF8{wordIterator{o, ClassWordIterUTF8}}, nil
}

// SegmentUTF16 returns an iterator over the boundaries of s in UTF-16
// code units.
func (s *WordSegmenter) SegmentUTF16(ctx context.Context, input string) (*WordBreakIteratorUTF16, error) {
	o, err := s.lib.construct(ctx, "WordSegmenter.segment_utf16", s.obj, input)
	if err != nil {
		return nil, err
	}
	return &WordBreakIteratorUTF16{wordIterator{o, ClassWordIterUTF16}}, nil
}

type wordIterator struct {
	object
	class string
}

// Next returns the next boundary index, or -1 after the last one.
func (it wordIterator) Next(ctx context.Context) (int32, error) {
	return call[int32](ctx, it.lib, it.class+".next", it.obj)
}

// WordType classifies the segment that ends at the last boundary returned.
func (it wordIterator) WordType(ctx context.Context) (WordType, error) {
	return call[WordType](ctx, it.lib, it.class+".word_type", it.obj)
}

func (it wordIterator) IsWordLike(ctx context.Context) (bool, error) {
	return call[bool](ctx, it.lib, it.class+".is_word_like", it.obj)
}

// Boundaries drains the iterator.
func (it wordIterator) Boundaries(ctx context.Context) ([]int, error) {
	var out []int
	for {
		b, err := it.Next(ctx)
		if err != nil {
			return out, err
		}
		if b < 0 {
			return out, nil
		}
		out = append(out, int(b))
	}
}

// WordBreakIteratorUTF8 iterates boundaries as byte offsets.
type WordBreakIteratorUTF8 struct{ wordIterator }

// WordBreakIteratorUTF16 iterates boundaries as UTF-16 code unit offsets.
type WordBreakIteratorUTF16 struct{ wordIterator }
