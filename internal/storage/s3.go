package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/types"
)

// S3API is the subset of the S3 client used by S3ImageStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3ImageStore keeps images as objects under a key prefix in one bucket.
type S3ImageStore struct {
	client S3API
	bucket string
	prefix string
}

// NewS3ImageStore creates an image store backed by the given client.
func NewS3ImageStore(client S3API, bucket, prefix string) *S3ImageStore {
	return &S3ImageStore{client: client, bucket: bucket, prefix: prefix}
}

// NewS3ImageStoreFromConfig wires the store to the configured bucket.
func NewS3ImageStoreFromConfig(s3cfg *config.S3Config) *S3ImageStore {
	return NewS3ImageStore(s3cfg.Client, s3cfg.BucketName, s3cfg.Prefix)
}

// Put uploads data, replacing any existing object with the same key.
func (s *S3ImageStore) Put(ctx context.Context, filename string, data []byte) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(filename)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentType(filename)),
	})
	if err != nil {
		return fmt.Errorf("%w: uploading %s to S3: %w", types.ErrStorage, filename, err)
	}
	return nil
}

// Get downloads the object for filename.
func (s *S3ImageStore) Get(ctx context.Context, filename string) ([]byte, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: image %s", types.ErrNotFound, filename)
		}
		return nil, fmt.Errorf("%w: downloading %s from S3: %w", types.ErrStorage, filename, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s from S3: %w", types.ErrStorage, filename, err)
	}
	return data, nil
}

// Delete removes the object. S3 treats deleting a missing key as success.
func (s *S3ImageStore) Delete(ctx context.Context, filename string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
	})
	if err != nil {
		return fmt.Errorf("%w: deleting %s from S3: %w", types.ErrStorage, filename, err)
	}
	return nil
}

func (s *S3ImageStore) key(filename string) string {
	if s.prefix == "" {
		return filename
	}
	return path.Join(s.prefix, filename)
}
