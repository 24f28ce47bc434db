package retain

// Option configures a Reader.
type Option func(*Reader)

// WithChunkSize sets the minimum number of bytes fetched from the source
// per cache miss, regardless of how small the read is (default:
// DefaultChunkSize). It governs fetch granularity only, not cache
// capacity. Values < 1 are ignored.
func WithChunkSize(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.chunkSize = n
		}
	}
}
