// Package zwrap takes a structure file or an http body and optionally
// wraps it so reads go through a gzip decompressor. Close shuts the
// decompressor, followed by the underlying source.
package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
)

var magic = []byte{0x1f, 0x8b}

// Reader is what we return. zrdr is nil for plain text sources.
type Reader struct {
	src  io.ReadCloser
	zrdr *gzip.Reader
}

// Gzipped says if we are decompressing.
func (r *Reader) Gzipped() bool { return r.zrdr != nil }

// Close closes the decompressor, then the underlying source.
func (r *Reader) Close() error {
	var e1 error
	if r.zrdr != nil {
		e1 = r.zrdr.Close()
	}
	e2 := r.src.Close()
	return errors.Join(e1, e2)
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (r *Reader) Read(p []byte) (int, error) {
	if r.zrdr != nil {
		return r.zrdr.Read(p)
	}
	return r.src.Read(p)
}

// Wrap insists that src is gzipped.
func Wrap(src io.ReadCloser) (*Reader, error) {
	zrdr, err := gzip.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &Reader{src: src, zrdr: zrdr}, nil
}

// IsGzip looks at the first bytes of some data.
func IsGzip(b []byte) bool { return bytes.HasPrefix(b, magic) }

// ReadSeekCloser is a file or anything else we can rewind.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe peeks at the start of src and only decompresses if it
// finds the gzip magic number. src is rewound before we return, so
// plain text comes back intact.
func WrapMaybe(src ReadSeekCloser) (*Reader, error) {
	var head [2]byte
	n, err := io.ReadFull(src, head[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if IsGzip(head[:n]) {
		return Wrap(src)
	}
	return &Reader{src: src}, nil
}
