// Package s2 exposes s2-compressed streams as seekable byte sources.
//
// Seeking in a compressed stream needs an index mapping uncompressed to
// compressed offsets; streams written with s2.WriterAddIndex carry one at
// their end. Decompression happens on every read, which makes a Source a
// natural candidate for fronting with a retain.Reader.
package s2

import (
	"fmt"
	"io"

	ks2 "github.com/klauspost/compress/s2"
)

// ReadSeekerAt is the underlying stream contract: random seeking in the
// compressed stream requires io.ReaderAt in addition to io.ReadSeeker.
type ReadSeekerAt interface {
	io.ReadSeeker
	io.ReaderAt
}

// Source is a seekable view of an s2-compressed stream.
type Source struct {
	*ks2.ReadSeeker
}

var _ io.ReadSeeker = (*Source)(nil)

// NewSource wraps an s2-compressed stream whose index is stored in the
// stream itself (written with s2.WriterAddIndex). The index is located by
// seeking to the end of rs.
func NewSource(rs ReadSeekerAt) (*Source, error) {
	return newSource(rs, nil)
}

// NewSourceWithIndex wraps an s2-compressed stream using a separately
// obtained index.
func NewSourceWithIndex(rs ReadSeekerAt, index []byte) (*Source, error) {
	return newSource(rs, index)
}

func newSource(rs ReadSeekerAt, index []byte) (*Source, error) {
	sk, err := ks2.NewReader(rs).ReadSeeker(true, index)
	if err != nil {
		return nil, fmt.Errorf("s2: load index: %w", err)
	}
	return &Source{ReadSeeker: sk}, nil
}
