// Package hash computes xxHash64 checksums of exported streams.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Digest forwards writes to an underlying writer and hashes every byte the
// writer accepts.
type Digest struct {
	w io.Writer
	h *xxhash.Digest
}

// NewDigest wraps w with a running xxHash64.
func NewDigest(w io.Writer) *Digest {
	return &Digest{w: w, h: xxhash.New()}
}

// Write writes p to the underlying writer and hashes the accepted prefix.
func (d *Digest) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	if n > 0 {
		_, _ = d.h.Write(p[:n])
	}

	return n, err
}

// Sum64 returns the checksum of all bytes accepted so far.
func (d *Digest) Sum64() uint64 {
	return d.h.Sum64()
}
