package utf8stream

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every *EncodingError under errors.Is.
var ErrMalformed = errors.New("malformed utf-8 sequence")

// ErrorKind says why a sequence was replaced with U+FFFD.
type ErrorKind uint8

const (
	// KindNone means the sequence decoded cleanly.
	KindNone ErrorKind = iota

	// KindStrayContinuation is a 10xxxxxx byte found where a lead byte
	// was expected.
	KindStrayContinuation

	// KindBadContinuation is a multi-byte sequence interrupted by a byte
	// that does not match 10xxxxxx.
	KindBadContinuation

	// KindTruncated is a multi-byte sequence cut short by end of stream.
	KindTruncated

	// KindLeadTooLong is a lead byte announcing five or more bytes.
	KindLeadTooLong

	// KindInvalidScalar is a complete sequence whose value is a surrogate
	// or lies above U+10FFFF.
	KindInvalidScalar
)

var kindNames = [...]string{
	KindNone:              "none",
	KindStrayContinuation: "stray continuation byte",
	KindBadContinuation:   "invalid continuation byte",
	KindTruncated:         "truncated sequence",
	KindLeadTooLong:       "lead byte too long",
	KindInvalidScalar:     "invalid scalar value",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// EncodingError describes one malformed sequence.  The Decoder never returns
// it from ReadRune; it is handed to Options.OnMalformed and exposed by
// Decoder.Malformed.
type EncodingError struct {
	Kind  ErrorKind
	Pos   Position
	Bytes []byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: %v [% x] at %v", ErrMalformed, e.Kind, e.Bytes, e.Pos)
}

func (e *EncodingError) Unwrap() error {
	return ErrMalformed
}
