package utf8stream

import (
	"encoding/hex"
	"io"
	"iter"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Options holds configurable parameters for a Decoder.
type Options struct {
	// Logger receives a Debug entry for every malformed sequence and every
	// byte source failure.
	//
	// Default is zap.NewNop().
	//
	Logger *zap.Logger

	// OnMalformed, if non-nil, is called synchronously for every sequence
	// that was replaced with U+FFFD.
	OnMalformed func(*EncodingError)
}

// Decoder reads Unicode code points from a UTF-8 byte stream.
//
// Malformed input never stops a Decoder: each bad sequence is consumed and
// reported as utf8.RuneError.  Only a failure of the underlying byte source
// is returned as an error.  A Decoder is not safe for concurrent use.
//
type Decoder struct {
	// src is the byte source, read one byte at a time.
	src io.ByteReader

	log         *zap.Logger
	onMalformed func(*EncodingError)

	// pos is the position of the next byte to be read from src.
	pos Position

	// seq holds the bytes of the sequence being decoded.  It is scratch
	// space for a single call and carries nothing between calls.
	seq [utf8.UTFMax]byte

	// curr is the result of the last call to Advance.
	curr decodedRune
}

// decodedRune is the outcome of reading one sequence.
type decodedRune struct {
	pos   Position
	value rune
	size  int
	bad   *EncodingError
	err   error
}

var _ io.RuneReader = (*Decoder)(nil)

// New constructs a new Decoder.
//
// "New(r, o)" is exactly equivalent to allocating a zero-valued Decoder and
// calling "Init(r, o)" on it.
//
func New(r io.Reader, o Options) *Decoder {
	d := new(Decoder)
	d.Init(r, o)
	return d
}

// Init initializes this Decoder with the given io.Reader and Options.
//
// If r implements io.ByteReader it is used as is.  Otherwise bytes are pulled
// from r one at a time, without buffering, so r is never read past the end of
// the last sequence decoded.
//
func (d *Decoder) Init(r io.Reader, o Options) {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}

	d.src = asByteReader(r)
	d.log = log
	d.onMalformed = o.OnMalformed
	d.pos.Reset()
	d.curr = decodedRune{}
}

// Reset points this Decoder at a new io.Reader, keeping its Options.
func (d *Decoder) Reset(r io.Reader) {
	d.Init(r, Options{Logger: d.log, OnMalformed: d.onMalformed})
}

// ReadRune reads the next code point.
//
// size is the number of bytes consumed.  A malformed sequence yields
// utf8.RuneError with a nil error.  At end of stream ReadRune returns
// (0, 0, io.EOF).  Any other error is the byte source's own error, returned
// unchanged.
//
func (d *Decoder) ReadRune() (ch rune, size int, err error) {
	dr := d.next()
	return dr.value, dr.size, dr.err
}

// Advance moves forward in the stream, returning true if a new character is
// available or false if the stream ended or the byte source failed.
//
// Once Advance has returned false it keeps returning false.
func (d *Decoder) Advance() bool {
	if d.curr.err != nil {
		return false
	}
	d.curr = d.next()
	return d.curr.err == nil
}

// Rune returns the character at the current stream position.
func (d *Decoder) Rune() rune {
	return d.curr.value
}

// Size returns the number of bytes consumed for the current character.
func (d *Decoder) Size() int {
	return d.curr.size
}

// Position returns the position of the current character.
func (d *Decoder) Position() Position {
	return d.curr.pos
}

// Malformed returns the reason the current character was replaced with
// U+FFFD, or nil if it decoded cleanly.
func (d *Decoder) Malformed() *EncodingError {
	return d.curr.bad
}

// Err returns io.EOF once the stream has ended, or the byte source's error if
// it failed.
func (d *Decoder) Err() error {
	return d.curr.err
}

// All returns an iterator over the remaining code points.
//
// The sequence stops after end of stream.  A byte source failure is yielded
// once, as (utf8.RuneError, err), and ends the sequence.  All shares the
// Decoder's cursor, so it cannot be restarted.
//
func (d *Decoder) All() iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		for d.Advance() {
			if !yield(d.curr.value, nil) {
				return
			}
		}
		if err := d.curr.err; err != io.EOF {
			yield(utf8.RuneError, err)
		}
	}
}

func (d *Decoder) next() decodedRune {
	if d.src == nil {
		panic("Decoder used before Init")
	}

	pos := d.pos
	ch, n, kind, err := decodeOne(d.src, &d.seq)
	if err != nil {
		d.pos.skip(n)
		if err != io.EOF {
			d.log.Debug("byte source failed",
				zap.Error(err),
				zap.Uint64("offset", pos.Offset),
				zap.Int("consumed", n))
		}
		return decodedRune{pos: pos, size: n, err: err}
	}

	d.pos.Advance(ch, n)
	dr := decodedRune{pos: pos, value: ch, size: n}
	if kind != KindNone {
		dr.bad = &EncodingError{
			Kind:  kind,
			Pos:   pos,
			Bytes: append([]byte(nil), d.seq[:n]...),
		}
		d.report(dr.bad)
	}
	return dr
}

func (d *Decoder) report(e *EncodingError) {
	if ce := d.log.Check(zap.DebugLevel, "malformed utf-8 sequence"); ce != nil {
		ce.Write(
			zap.Stringer("kind", e.Kind),
			zap.Uint64("offset", e.Pos.Offset),
			zap.Uint64("line", e.Pos.Line),
			zap.Uint64("column", e.Pos.Column),
			zap.String("bytes", hex.EncodeToString(e.Bytes)))
	}
	if d.onMalformed != nil {
		d.onMalformed(e)
	}
}
