// Package brokenio wraps an io.ReadCloser so reads fail at chosen
// rates. Typical use is in tests: take a file pointer or an http body,
// write
//
//	rdr = brokenio.NewReader(rdr)
//
// and everything works as before, but with artificial errors.
// When we introduce an error, the tail of the buffer is zeroed and an
// error is returned. When we fail on the first read, we return io.EOF
// and no data. This is what one sees on a zero length file.
package brokenio

import (
	"fmt"
	"io"
	"math/rand"
)

// A Reader is modelled on the readers in the standard library, but with
// variables controlling the frequency of errors. These are probabilities,
// so 0.05 means failure in 5% of the cases.
type Reader struct {
	orig         io.ReadCloser
	rnd          *rand.Rand
	probZeroFile float32 // Probability of looking like a zero length file
	probFail     float32
	fracFail     float32 // fraction of a buffer trashed on failure
	nCalled      int
	nByte        int
}

// NewReader returns a new Reader wrapped around rIn. Nothing fails until
// one of the probabilities is set.
func NewReader(rIn io.ReadCloser) *Reader {
	return &Reader{
		orig:     rIn,
		rnd:      rand.New(rand.NewSource(1)),
		fracFail: 0.5,
	}
}

// SetSeed makes a run reproducible, or different from the last one.
func (r *Reader) SetSeed(seed int64) { r.rnd = rand.New(rand.NewSource(seed)) }

// SetFracFail sets the fraction of the bytes which will be trashed
func (r *Reader) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. We do not check if the argument is valid.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail set the probability of a read failing.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// NByte is the amount of data that has gone through so far.
func (r *Reader) NByte() int { return r.nByte }

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the second 30 % of a slice
func trashSlice(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	err := fmt.Errorf("randomly wiped out last %d of %d", len(p)-nkeep, len(p))
	clear(p[nkeep:])
	return nkeep, err
}

// Read passes through to the original reader, counting bytes, and
// fails with probability probFail.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	n, err = r.orig.Read(p)
	r.nCalled++
	r.nByte += n
	if n > 0 && r.fracFail > 0 && r.rnd.Float32() < r.probFail {
		return trashSlice(p[:n], r.fracFail)
	}
	return n, err
}

// Close wraps the original Close method.
func (r *Reader) Close() error { return r.orig.Close() }
