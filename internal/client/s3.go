package client

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectsAPI is the subset of the S3 API used to read archived job logs.
type ObjectsAPI interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Client lists and streams job log objects from a bucket.
type S3Client struct {
	client ObjectsAPI
}

// NewS3Client loads AWS configuration for o and returns a client backed by S3.
func NewS3Client(ctx context.Context, o AuthOptions) (*S3Client, error) {
	cfg, err := LoadConfig(ctx, o)
	if err != nil {
		return nil, err
	}
	return &S3Client{client: s3.NewFromConfig(cfg)}, nil
}

// NewS3ClientFromAPI wraps an existing API implementation.
func NewS3ClientFromAPI(api ObjectsAPI) *S3Client {
	return &S3Client{client: api}
}

// ListKeys returns every object key under prefix.
func (c *S3Client) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	in := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		in.Prefix = aws.String(prefix)
	}
	var keys []string
	p := s3.NewListObjectsV2Paginator(c.client, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if key := aws.ToString(obj.Key); key != "" {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

// Open streams one object. The caller closes the returned body.
func (c *S3Client) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
