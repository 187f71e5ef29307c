package utf8stream

import (
	"io"
)

// byteReader adapts an io.Reader that lacks a ReadByte method.
//
// Exactly one byte is requested from the underlying Reader per call; there
// is no read-ahead, so bytes after the current sequence are never taken from
// the Reader early.
//
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (br *byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(br.r, br.buf[:])
	if err != nil {
		return 0, err
	}
	return br.buf[0], nil
}

// asByteReader returns r itself if it is already an io.ByteReader.
func asByteReader(r io.Reader) io.ByteReader {
	if r == nil {
		panic("nil io.Reader")
	}
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteReader{r: r}
}
