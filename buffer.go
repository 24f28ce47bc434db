package retain

import "fmt"

// Buffer is an owned, contiguous span of bytes tagged with the absolute
// range of the source it covers. The end offset is exclusive.
type Buffer struct {
	start int64
	end   int64
	data  []byte
}

// NewBuffer allocates a zero-filled buffer covering [start, end).
// It panics if the range is empty or inverted; that is a programming
// error, not a recoverable condition.
func NewBuffer(start, end int64) Buffer {
	if start >= end {
		panic(fmt.Sprintf("retain: invalid buffer range [%d, %d)", start, end))
	}
	return Buffer{start: start, end: end, data: make([]byte, end-start)}
}

// BufferFrom copies data into a buffer starting at the given offset.
// Zero-length data yields a degenerate empty buffer.
func BufferFrom(start int64, data []byte) Buffer {
	d := make([]byte, len(data))
	copy(d, data)
	return Buffer{start: start, end: start + int64(len(data)), data: d}
}

// Overlaps reports whether the two buffers intersect or touch end to end.
// Touching ranges count as overlapping so that adjacent fetches coalesce
// into one contiguous buffer instead of fragmenting the cache.
func (b Buffer) Overlaps(other Buffer) bool {
	return b.start <= other.end && other.start <= b.end
}

// Merge combines two overlapping buffers into one covering
// [min(starts), max(ends)). The result is filled with b's bytes first and
// other's bytes second, so wherever both supply data, other's bytes win.
// Merge panics if the buffers do not overlap.
func (b Buffer) Merge(other Buffer) Buffer {
	if !b.Overlaps(other) {
		panic(fmt.Sprintf("retain: merging disjoint buffers [%d, %d) and [%d, %d)",
			b.start, b.end, other.start, other.end))
	}
	merged := NewBuffer(min(b.start, other.start), max(b.end, other.end))
	copy(merged.data[b.start-merged.start:b.end-merged.start], b.data)
	copy(merged.data[other.start-merged.start:other.end-merged.start], other.data)
	return merged
}

// contains reports whether [off, off+length) lies fully inside the buffer.
func (b Buffer) contains(off, length int64) bool {
	return b.start <= off && off+length <= b.end
}

// Slice returns a zero-copy view of length bytes at the absolute offset
// off. It returns false unless the requested range is fully contained in
// the buffer; there are no partial views.
func (b Buffer) Slice(off, length int64) ([]byte, bool) {
	if length < 0 || !b.contains(off, length) {
		return nil, false
	}
	lo := off - b.start
	return b.data[lo : lo+length], true
}

// Range returns the absolute range the buffer covers. The end is exclusive.
func (b Buffer) Range() (start, end int64) {
	return b.start, b.end
}

// Len returns the number of bytes the buffer holds.
func (b Buffer) Len() int {
	return len(b.data)
}
