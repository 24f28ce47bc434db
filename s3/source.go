// Package s3 provides a seekable byte source backed by ranged reads of a
// single S3 object.
//
// Every Read issues one ranged GetObject call, so wrap a Source in a
// retain.Reader to keep revisited ranges out of the network. Works with
// AWS S3 and S3-compatible stores (MinIO, LocalStack, R2).
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// API is the subset of the S3 client interface used by Source.
// It enables testing with fake implementations.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Config identifies the object a Source reads.
type Config struct {
	// Bucket is the S3 bucket name. Required.
	Bucket string

	// Key is the object key. Required.
	Key string
}

// Source implements io.ReadSeeker over ranged GetObject calls. The
// object size is learned from HeadObject at construction, so seeks —
// including seeks relative to the end — resolve locally.
//
// The context passed to NewSource bounds every request the Source makes;
// io.ReadSeeker has no room for a per-call context.
type Source struct {
	ctx    context.Context
	client API
	bucket string
	key    string
	size   int64
	pos    int64
}

var _ io.ReadSeeker = (*Source)(nil)

// NewSource stats the object and returns a seekable view of it.
func NewSource(ctx context.Context, client API, cfg Config) (*Source, error) {
	if client == nil {
		return nil, errors.New("s3: client is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	if cfg.Key == "" {
		return nil, errors.New("s3: key is required")
	}

	head, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(cfg.Bucket),
		Key:    aws.String(cfg.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: head object: %w", err)
	}

	return &Source{
		ctx:    ctx,
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// Size returns the object's size in bytes.
func (s *Source) Size() int64 {
	return s.size
}

// Read fetches up to len(p) bytes at the current position with a single
// ranged GetObject call.
func (s *Source) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if s.pos >= s.size {
		return 0, io.EOF
	}

	end := s.pos + int64(len(p)) - 1
	if end >= s.size {
		end = s.size - 1
	}

	// S3 Range header format: "bytes=start-end" (inclusive).
	out, err := s.client.GetObject(s.ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", s.pos, end)),
	})
	if err != nil {
		// InvalidRange means the offset is beyond the object's end.
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidRange" {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("s3: range read: %w", err)
	}
	defer out.Body.Close()

	want := int(end - s.pos + 1)
	n, err := io.ReadFull(out.Body, p[:want])
	s.pos += int64(n)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return n, fmt.Errorf("s3: reading body: %w", err)
	}
	return n, nil
}

// Seek implements io.Seeker using the object size learned at
// construction. Seeking past the end is permitted; the next Read reports
// io.EOF.
func (s *Source) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.pos + offset
	case io.SeekEnd:
		pos = s.size + offset
	default:
		return 0, fmt.Errorf("s3: invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("s3: seek to negative position %d", pos)
	}
	s.pos = pos
	return pos, nil
}
