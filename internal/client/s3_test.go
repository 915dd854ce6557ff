package client_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Nao-Mk2/showjobs/internal/client"
)

// mockObjectsAPI implements client.ObjectsAPI for testing.
type mockObjectsAPI struct {
	pages   []*s3.ListObjectsV2Output
	inputs  []*s3.ListObjectsV2Input
	objects map[string]string
	err     error
}

func (m *mockObjectsAPI) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	i := len(m.inputs) - 1
	if i < len(m.pages) {
		return m.pages[i], nil
	}
	return &s3.ListObjectsV2Output{}, nil
}

func (m *mockObjectsAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := m.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func object(key string) types.Object {
	return types.Object{Key: aws.String(key)}
}

func TestListKeysPaginates(t *testing.T) {
	m := &mockObjectsAPI{pages: []*s3.ListObjectsV2Output{
		{
			Contents:              []types.Object{object("logs/20161024"), object("logs/20161025.gz")},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("t1"),
		},
		{
			Contents:    []types.Object{object("logs/20161026")},
			IsTruncated: aws.Bool(false),
		},
	}}
	c := client.NewS3ClientFromAPI(m)
	keys, err := c.ListKeys(context.Background(), "hpc-archive", "logs/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(keys, ",") != "logs/20161024,logs/20161025.gz,logs/20161026" {
		t.Fatalf("keys = %v", keys)
	}
	if len(m.inputs) != 2 {
		t.Fatalf("ListObjectsV2 calls = %d, want 2", len(m.inputs))
	}
	if aws.ToString(m.inputs[0].Bucket) != "hpc-archive" || aws.ToString(m.inputs[0].Prefix) != "logs/" {
		t.Fatalf("first input = %+v", m.inputs[0])
	}
	if aws.ToString(m.inputs[1].ContinuationToken) != "t1" {
		t.Fatalf("continuation token = %q, want t1", aws.ToString(m.inputs[1].ContinuationToken))
	}
}

func TestListKeysError(t *testing.T) {
	c := client.NewS3ClientFromAPI(&mockObjectsAPI{err: errors.New("AccessDenied")})
	if _, err := c.ListKeys(context.Background(), "b", ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpen(t *testing.T) {
	c := client.NewS3ClientFromAPI(&mockObjectsAPI{objects: map[string]string{"logs/20161026": "<Jobinfo>\n"}})
	rc, err := c.Open(context.Background(), "b", "logs/20161026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "<Jobinfo>\n" {
		t.Fatalf("body = %q", b)
	}
	if _, err := c.Open(context.Background(), "b", "missing"); err == nil {
		t.Fatalf("expected error for a missing key")
	}
}
