package utf8stream

import (
	"fmt"
)

const tabWidth = 8

// Position locates a rune within the decoded text.
type Position struct {
	// Offset is the byte offset of the rune's first byte.
	Offset uint64

	// Line and Column are 1-based.
	Line   uint64
	Column uint64

	// SkipNextLF is set after a CR so that a following LF does not start
	// a second line.
	SkipNextLF bool
}

// MakePosition returns the Position of the first byte of a stream.
func MakePosition() Position {
	return Position{Line: 1, Column: 1}
}

// Reset rewinds pos to the first byte of a stream.
func (pos *Position) Reset() {
	*pos = MakePosition()
}

// Advance moves pos past the rune ch, which occupied size bytes.
//
// CR, LF and CRLF each end one line.  TAB moves to the next tab stop.  Any
// other rune, U+FFFD included, moves one column to the right.
//
func (pos *Position) Advance(ch rune, size int) {
	if size < 0 {
		panic("negative size")
	}
	if size == 0 {
		return
	}
	pos.Offset += uint64(size)

	skip := pos.SkipNextLF
	pos.SkipNextLF = false
	switch ch {
	case '\r':
		pos.newline()
		pos.SkipNextLF = true
	case '\n':
		if !skip {
			pos.newline()
		}
	case '\t':
		pos.Column += tabWidth - (pos.Column-1)%tabWidth
	default:
		pos.Column++
	}
}

// skip moves the offset forward without producing a rune, as happens when
// the byte source fails partway through a sequence.
func (pos *Position) skip(size int) {
	pos.Offset += uint64(size)
}

func (pos *Position) newline() {
	pos.Line++
	pos.Column = 1
}

func (pos Position) String() string {
	return fmt.Sprintf("line %d column %d (byte offset %d)", pos.Line, pos.Column, pos.Offset)
}
