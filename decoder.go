package utf8stream

import (
	"io"
	"unicode/utf8"
)

// Bit patterns of the UTF-8 encoding.
const (
	tagx = 0x80 // 10xxxxxx
	tag2 = 0xC0 // 110xxxxx
	tag3 = 0xE0 // 1110xxxx
	tag4 = 0xF0 // 11110xxx

	maskx = 0x3F
	mask2 = 0x1F
	mask3 = 0x0F
	mask4 = 0x07
)

// classify inspects a lead byte.  It returns the total length of the
// sequence that the byte introduces and the payload bits the byte
// contributes, or a non-zero ErrorKind if b cannot start a sequence.
func classify(b byte) (size int, bits rune, kind ErrorKind) {
	switch {
	case b < tagx:
		return 1, rune(b), KindNone
	case b&0xC0 == tagx:
		return 0, 0, KindStrayContinuation
	case b&0xE0 == tag2:
		return 2, rune(b & mask2), KindNone
	case b&0xF0 == tag3:
		return 3, rune(b & mask3), KindNone
	case b&0xF8 == tag4:
		return 4, rune(b & mask4), KindNone
	default:
		return 0, 0, KindLeadTooLong
	}
}

// decodeOne reads exactly one sequence from src.
//
// The bytes consumed are stored in seq and their count is returned as n.  A
// malformed sequence yields utf8.RuneError together with the ErrorKind that
// describes it; a non-matching continuation byte is consumed and dropped.
// err is io.EOF only when n == 0; any other error comes straight from src.
//
func decodeOne(src io.ByteReader, seq *[utf8.UTFMax]byte) (r rune, n int, kind ErrorKind, err error) {
	b, err := src.ReadByte()
	if err != nil {
		return 0, 0, KindNone, err
	}
	seq[0] = b

	size, r, kind := classify(b)
	if kind != KindNone {
		return utf8.RuneError, 1, kind, nil
	}

	for n = 1; n < size; n++ {
		b, err = src.ReadByte()
		if err == io.EOF {
			return utf8.RuneError, n, KindTruncated, nil
		}
		if err != nil {
			return 0, n, KindNone, err
		}
		seq[n] = b
		if b&0xC0 != tagx {
			return utf8.RuneError, n + 1, KindBadContinuation, nil
		}
		r = r<<6 | rune(b&maskx)
	}

	if !utf8.ValidRune(r) {
		return utf8.RuneError, size, KindInvalidScalar, nil
	}
	return r, size, KindNone, nil
}
