package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Nao-Mk2/showjobs/internal/model"
)

// ObjectStore is the part of client.S3Client used by S3.
type ObjectStore interface {
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// S3 reads job logs archived under a bucket prefix, one object per day.
type S3 struct {
	store  ObjectStore
	bucket string
	prefix string
}

// NewS3 returns a Source over the objects under prefix in bucket.
func NewS3(store ObjectStore, bucket, prefix string) *S3 {
	return &S3{store: store, bucket: bucket, prefix: prefix}
}

func (s *S3) List(ctx context.Context) ([]model.LogFile, error) {
	keys, err := s.store.ListKeys(ctx, s.bucket, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("list s3://%s/%s: %w", s.bucket, s.prefix, err)
	}
	// Only objects directly under the prefix count as daily logs.
	var direct []string
	for _, k := range keys {
		rel := strings.TrimPrefix(strings.TrimPrefix(k, s.prefix), "/")
		if !strings.Contains(rel, "/") {
			direct = append(direct, k)
		}
	}
	return collect(direct), nil
}

func (s *S3) Open(ctx context.Context, f model.LogFile) (io.ReadCloser, error) {
	body, err := s.store.Open(ctx, s.bucket, f.Path)
	if err != nil {
		return nil, err
	}
	return decompress(f, body)
}

// StreamReader is the part of client.CloudWatchClient used by CloudWatch.
type StreamReader interface {
	ListStreams(ctx context.Context, group, prefix string) ([]string, error)
	StreamLines(ctx context.Context, group, stream string) ([]string, error)
}

// CloudWatch reads job logs shipped to a log group, where each daily log is
// a stream named after the file and each event is one line.
type CloudWatch struct {
	reader StreamReader
	group  string
}

// NewCloudWatch returns a Source over the streams of group.
func NewCloudWatch(reader StreamReader, group string) *CloudWatch {
	return &CloudWatch{reader: reader, group: group}
}

func (c *CloudWatch) List(ctx context.Context) ([]model.LogFile, error) {
	streams, err := c.reader.ListStreams(ctx, c.group, "20")
	if err != nil {
		return nil, fmt.Errorf("list streams of %s: %w", c.group, err)
	}
	return collect(streams), nil
}

func (c *CloudWatch) Open(ctx context.Context, f model.LogFile) (io.ReadCloser, error) {
	lines, err := c.reader.StreamLines(ctx, c.group, f.Path)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.TrimSuffix(l, "\n"))
		b.WriteByte('\n')
	}
	return io.NopCloser(strings.NewReader(b.String())), nil
}
