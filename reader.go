package retain

import (
	"fmt"
	"io"
)

// DefaultChunkSize is the minimum number of bytes fetched from the source
// per cache miss when no WithChunkSize option is given.
const DefaultChunkSize = 8 * 1024

// maxFetch caps a single fetch so range arithmetic cannot overflow int on
// 32-bit platforms.
const maxFetch = 1 << 30

// Reader wraps an io.ReadSeeker and memoizes every byte range it fetches.
//
// Reads are served from an in-memory set of coalesced range buffers
// whenever a single cached run fully covers the request; only misses
// touch the source. The Reader keeps its own logical cursor, so Seek
// with io.SeekStart or io.SeekCurrent never issues source I/O — the
// source's physical position is reconciled lazily, on the next fetch.
// Seeks relative to the end are forwarded to the source, since the total
// length is unknown at this layer.
//
// The cache grows without bound for the life of the Reader. Callers that
// need bounded memory should Reset or Release and start over.
//
// A Reader owns its source exclusively and is not safe for concurrent use.
type Reader struct {
	src       io.ReadSeeker
	cache     rangeCache
	pos       int64
	chunkSize int
}

// Interface compliance.
var (
	_ io.Reader     = (*Reader)(nil)
	_ io.Seeker     = (*Reader)(nil)
	_ io.ReadSeeker = (*Reader)(nil)
)

// New wraps src in a memoizing Reader. The Reader takes exclusive
// ownership of src until Release is called.
func New(src io.ReadSeeker, opts ...Option) *Reader {
	r := &Reader{
		src:       src,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Read implements io.Reader.
//
// When a single cached run covers [pos, pos+len(p)) the bytes are copied
// out with no source I/O. Otherwise the Reader reconciles the source's
// position to the logical cursor, fetches at least the chunk size, folds
// the result into the cache and serves the request from there. A request
// the exhausted source cannot fully cover returns a short read; reading
// at or past the end returns io.EOF.
func (r *Reader) Read(p []byte) (int, error) {
	if r.src == nil {
		return 0, ErrReleased
	}
	if len(p) == 0 {
		return 0, nil
	}
	want := int64(len(p))

	if s, ok := r.cache.slice(r.pos, want); ok {
		n := copy(p, s)
		r.pos += want
		return n, nil
	}

	n, err := r.fill(len(p))
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}

	// One retry: a fetch of at least len(p) bytes guarantees coverage.
	if s, ok := r.cache.slice(r.pos, want); ok {
		n := copy(p, s)
		r.pos += want
		return n, nil
	}

	// The fetch came up short of the request. Serve the contiguous run the
	// cache now holds at the cursor; the next call reports io.EOF.
	b, ok := r.cache.entryAt(r.pos)
	if !ok {
		return 0, io.EOF
	}
	_, end := b.Range()
	run := min(end-r.pos, want)
	s, _ := b.Slice(r.pos, run)
	copied := copy(p, s)
	r.pos += run
	return copied, nil
}

// Seek implements io.Seeker.
//
// Seeks from the start or the current position only move the logical
// cursor; the source is untouched until the next fetch. Seeks from the
// end are forwarded to the source and the logical cursor is synchronized
// with the resulting physical position.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	if r.src == nil {
		return 0, ErrReleased
	}
	switch whence {
	case io.SeekStart:
		if offset < 0 {
			return 0, ErrNegativePosition
		}
		r.pos = offset
	case io.SeekCurrent:
		pos, ok := addInt64(r.pos, offset)
		if !ok {
			return 0, ErrSeekOverflow
		}
		if pos < 0 {
			return 0, ErrNegativePosition
		}
		r.pos = pos
	case io.SeekEnd:
		pos, err := r.src.Seek(offset, io.SeekEnd)
		if err != nil {
			return 0, err
		}
		r.pos = pos
	default:
		return 0, fmt.Errorf("retain: invalid whence %d", whence)
	}
	return r.pos, nil
}

// Prefetch warms the cache with [off, off+length) using chunk-sized
// fetches, skipping runs that are already cached. The logical cursor is
// restored afterwards. Prefetching past the end of the source is not an
// error; the warmed range simply stops at the last available byte.
func (r *Reader) Prefetch(off, length int64) error {
	if r.src == nil {
		return ErrReleased
	}
	if off < 0 || length < 0 {
		return fmt.Errorf("retain: invalid prefetch range at %d length %d", off, length)
	}
	end, ok := addInt64(off, length)
	if !ok {
		return ErrSeekOverflow
	}

	saved := r.pos
	defer func() { r.pos = saved }()

	cur := off
	for cur < end {
		if b, ok := r.cache.entryAt(cur); ok {
			_, be := b.Range()
			cur = min(be, end)
			continue
		}
		r.pos = cur
		want := min(end-cur, maxFetch)
		n, err := r.fill(int(want))
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		cur += int64(n)
	}
	return nil
}

// Ranges returns the extents currently cached as [start, end) pairs, in
// cache order. Intended for diagnostics; the order carries no meaning.
func (r *Reader) Ranges() [][2]int64 {
	return r.cache.ranges()
}

// CachedBytes returns the total number of bytes the cache retains.
func (r *Reader) CachedBytes() int64 {
	return r.cache.size()
}

// Reset discards every cached range while keeping the source and the
// logical cursor. Long-lived callers can use it to bound memory.
func (r *Reader) Reset() {
	r.cache.reset()
}

// Release discards the cache and returns the underlying source. The
// source's physical position is wherever the last fetch or end-relative
// seek left it, which need not match the logical cursor. The Reader must
// not be used afterwards; its operations return ErrReleased.
func (r *Reader) Release() io.ReadSeeker {
	src := r.src
	r.src = nil
	r.cache.reset()
	return src
}

// fill reconciles the source's physical position to the logical cursor
// with a relative seek, reads up to max(atLeast, chunkSize) bytes in one
// call and folds whatever arrived into the cache at the cursor. A return
// of 0 with no error means the source is exhausted at the cursor.
func (r *Reader) fill(atLeast int) (int, error) {
	phys, err := r.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	if _, err := r.src.Seek(r.pos-phys, io.SeekCurrent); err != nil {
		return 0, err
	}

	buf := make([]byte, max(atLeast, r.chunkSize))
	n, err := r.src.Read(buf)
	if n > 0 {
		r.cache.insert(r.pos, buf[:n])
	}
	if err != nil && err != io.EOF {
		return n, err
	}
	return n, nil
}

// addInt64 adds b to a, reporting whether the result stayed in range.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}
