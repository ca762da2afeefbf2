package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Client captures the subset of the AWS SDK client used by S3BlobStore.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3BlobStore stores payloads in an S3-compatible bucket. publicBase is the
// bucket's public URL prefix; mediaBase is the transformation endpoint that
// renders thumbnails for media keys.
type S3BlobStore struct {
	client     S3Client
	bucket     string
	publicBase string
	mediaBase  string
	kinds      *MediaRegistry
}

// NewS3BlobStore creates a blob store backed by S3.
func NewS3BlobStore(client S3Client, bucket, publicBase, mediaBase string, kinds *MediaRegistry) *S3BlobStore {
	return &S3BlobStore{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimSuffix(publicBase, "/"),
		mediaBase:  strings.TrimSuffix(mediaBase, "/"),
		kinds:      kinds,
	}
}

// Put uploads the payload and returns its public URL. Media types get a
// thumbnail URL rendered through the transformation endpoint.
func (s *S3BlobStore) Put(ctx context.Context, key, contentType string, body []byte) (*Upload, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	// Media is delivered through the transformation endpoint; everything
	// else is served straight from the bucket
	base := s.publicBase
	if s.kinds.IsMedia(contentType) {
		base = s.mediaBase
	}
	upload := &Upload{
		URL: base + "/" + key,
	}

	if s.kinds.WantsThumbnail(contentType) {
		thumb := s.mediaBase + "/tr:n-thumb/" + key
		upload.ThumbnailURL = &thumb
	}

	return upload, nil
}

// Remove deletes the object behind a URL returned by Put, whichever base
// it was served from. URLs outside both bases are ignored: they belong to
// another store generation and there is nothing to delete here.
func (s *S3BlobStore) Remove(ctx context.Context, fileURL string) error {
	key, ok := strings.CutPrefix(fileURL, s.publicBase+"/")
	if !ok {
		key, ok = strings.CutPrefix(fileURL, s.mediaBase+"/")
	}
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}
