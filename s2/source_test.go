package s2

import (
	"bytes"
	"io"
	"testing"

	ks2 "github.com/klauspost/compress/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/retain"
	"github.com/meigma/retain/internal/testutil"
)

// compress returns payload as an indexed s2 stream.
func compress(t *testing.T, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := ks2.NewWriter(&buf, ks2.WriterAddIndex())
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestSourceReadSeek(t *testing.T) {
	t.Parallel()

	payload := testutil.Pattern(64 << 10)
	src, err := NewSource(bytes.NewReader(compress(t, payload)))
	require.NoError(t, err)

	buf := make([]byte, 256)
	_, err = io.ReadFull(src, buf)
	require.NoError(t, err)
	assert.Equal(t, payload[:256], buf)

	// Seek backwards and deep into the stream.
	_, err = src.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, err = io.ReadFull(src, buf)
	require.NoError(t, err)
	assert.Equal(t, payload[:256], buf)

	_, err = src.Seek(48<<10, io.SeekStart)
	require.NoError(t, err)
	_, err = io.ReadFull(src, buf)
	require.NoError(t, err)
	assert.Equal(t, payload[48<<10:48<<10+256], buf)
}

func TestSourceMissingIndex(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ks2.NewWriter(&buf) // no index
	_, err := w.Write(testutil.Pattern(1024))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = NewSource(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}

func TestSourceWithCachingReader(t *testing.T) {
	t.Parallel()

	payload := testutil.Pattern(32 << 10)
	src, err := NewSource(bytes.NewReader(compress(t, payload)))
	require.NoError(t, err)

	r := retain.New(src, retain.WithChunkSize(4<<10))

	readWindow := func(off int64) []byte {
		t.Helper()
		_, err := r.Seek(off, io.SeekStart)
		require.NoError(t, err)
		buf := make([]byte, 512)
		_, err = io.ReadFull(r, buf)
		require.NoError(t, err)
		return buf
	}

	// Re-seeking and re-reading overlapping windows decompresses once.
	assert.Equal(t, payload[8192:8704], readWindow(8192))
	assert.Equal(t, payload[8192:8704], readWindow(8192))
	assert.Equal(t, payload[8448:8960], readWindow(8448))

	require.Len(t, r.Ranges(), 1)
}
