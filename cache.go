package retain

// rangeCache holds the buffers a Reader has accumulated. After every
// insert no two entries overlap or touch. The collection is kept in
// insertion order with no further ordering guarantee; lookups are linear
// scans that take the first entry fully covering a request.
type rangeCache struct {
	bufs []Buffer
}

// insert folds freshly fetched bytes into the cache, merging every entry
// that overlaps or touches the new range into a single buffer. The new
// data is the fold accumulator and Merge gives its second operand
// precedence, so bytes already cached overwrite the incoming bytes
// wherever they overlap.
func (c *rangeCache) insert(off int64, data []byte) {
	acc := BufferFrom(off, data)
	kept := c.bufs[:0]
	for _, b := range c.bufs {
		if b.Overlaps(acc) {
			acc = acc.Merge(b)
		} else {
			kept = append(kept, b)
		}
	}
	c.bufs = append(kept, acc)
}

// slice returns a zero-copy view of [off, off+length) from the first
// entry that fully covers it.
func (c *rangeCache) slice(off, length int64) ([]byte, bool) {
	for _, b := range c.bufs {
		if s, ok := b.Slice(off, length); ok {
			return s, true
		}
	}
	return nil, false
}

// entryAt returns the entry whose range contains pos.
func (c *rangeCache) entryAt(pos int64) (Buffer, bool) {
	for _, b := range c.bufs {
		if b.start <= pos && pos < b.end {
			return b, true
		}
	}
	return Buffer{}, false
}

// size returns the total number of bytes held across all entries.
func (c *rangeCache) size() int64 {
	var n int64
	for _, b := range c.bufs {
		n += int64(b.Len())
	}
	return n
}

// ranges returns the cached extents as [start, end) pairs in cache order.
func (c *rangeCache) ranges() [][2]int64 {
	out := make([][2]int64, len(c.bufs))
	for i, b := range c.bufs {
		out[i] = [2]int64{b.start, b.end}
	}
	return out
}

// reset drops every entry.
func (c *rangeCache) reset() {
	c.bufs = nil
}
