// Package retain wraps a random-access byte source with a cache that
// memoizes every range it has ever read.
//
// A [Reader] owns an io.ReadSeeker and keeps everything it fetches in a
// set of coalesced range buffers. Re-reading a previously visited region
// is served from memory without touching the source, which makes the
// package useful in front of expensive sources — HTTP range requests
// ([github.com/meigma/retain/http]), S3 objects
// ([github.com/meigma/retain/s3]), decompressing streams
// ([github.com/meigma/retain/s2]) — accessed with non-sequential
// patterns such as format parsers that re-seek and re-read overlapping
// windows.
//
// # Usage
//
//	src, err := retainhttp.NewSource("https://example.com/archive.bin")
//	if err != nil {
//	    return err
//	}
//	r := retain.New(src)
//	// ... seek and read; revisited ranges cost no requests.
//	_ = r.Release()
//
// # Semantics
//
// The Reader keeps a logical cursor independent of the source's physical
// position. Seeks from the start or the current position only move the
// logical cursor; the source is touched lazily, on the next cache miss.
// A miss fetches at least the configured chunk size (default
// [DefaultChunkSize]) and folds the result into the cache, merging any
// cached ranges that overlap or touch it into one contiguous buffer.
//
// A request is a cache hit only when a single cached range fully covers
// it; a partially covered request is re-fetched in full. The cache has no
// capacity bound and no eviction — use [Reader.Reset] or [Reader.Release]
// to reclaim memory. A Reader is not safe for concurrent use.
package retain
