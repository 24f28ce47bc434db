// Package testutil provides byte sources with observable behavior for
// exercising caching readers in tests.
package testutil

import (
	"fmt"
	"io"
)

// Pattern returns n bytes where byte i has value i mod 256.
func Pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// TrackingSource wraps an io.ReadSeeker and counts the operations that
// reach it.
type TrackingSource struct {
	inner io.ReadSeeker
	reads int
	seeks int
}

// NewTrackingSource wraps inner with operation counting.
func NewTrackingSource(inner io.ReadSeeker) *TrackingSource {
	return &TrackingSource{inner: inner}
}

func (s *TrackingSource) Read(p []byte) (int, error) {
	s.reads++
	return s.inner.Read(p)
}

func (s *TrackingSource) Seek(offset int64, whence int) (int64, error) {
	s.seeks++
	return s.inner.Seek(offset, whence)
}

// Reads returns the number of Read calls that reached the source.
func (s *TrackingSource) Reads() int { return s.reads }

// Seeks returns the number of Seek calls that reached the source,
// including physical position queries.
func (s *TrackingSource) Seeks() int { return s.seeks }

// ShortSource caps every read at limit bytes, forcing callers to cope
// with short reads.
type ShortSource struct {
	inner io.ReadSeeker
	limit int
}

// NewShortSource wraps inner so no single read returns more than limit bytes.
func NewShortSource(inner io.ReadSeeker, limit int) *ShortSource {
	return &ShortSource{inner: inner, limit: limit}
}

func (s *ShortSource) Read(p []byte) (int, error) {
	if len(p) > s.limit {
		p = p[:s.limit]
	}
	return s.inner.Read(p)
}

func (s *ShortSource) Seek(offset int64, whence int) (int64, error) {
	return s.inner.Seek(offset, whence)
}

// FaultSource forwards to inner until an error is armed, after which the
// corresponding operation fails with it.
type FaultSource struct {
	Inner   io.ReadSeeker
	ReadErr error
	SeekErr error
}

func (s *FaultSource) Read(p []byte) (int, error) {
	if s.ReadErr != nil {
		return 0, s.ReadErr
	}
	return s.Inner.Read(p)
}

func (s *FaultSource) Seek(offset int64, whence int) (int64, error) {
	if s.SeekErr != nil {
		return 0, s.SeekErr
	}
	return s.Inner.Seek(offset, whence)
}

// MutableSource reads from a byte slice that tests can swap out to
// simulate a source whose content changes between fetches.
type MutableSource struct {
	Data []byte
	pos  int64
}

func (s *MutableSource) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.Data)) {
		return 0, io.EOF
	}
	n := copy(p, s.Data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *MutableSource) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(len(s.Data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	return s.pos, nil
}
