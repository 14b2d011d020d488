package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
	"github.com/pageturn/bookshelf-api/internal/core/ports"
)

const coverKeyPrefix = "covers/"

// S3CoverStorage stores cover images in Amazon S3 (or compatible APIs),
// one object per book under covers/<book_id>.
type S3CoverStorage struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

func NewS3CoverStorage(client *s3.Client, bucket string) *S3CoverStorage {
	return &S3CoverStorage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}
}

// NewS3Client builds an S3 client from the ambient AWS configuration. A
// non-empty endpoint targets an S3-compatible store (MinIO, localstack)
// with path-style addressing.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if strings.TrimSpace(endpoint) != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

func (s *S3CoverStorage) Put(ctx context.Context, bookID, contentType string, body io.Reader, size int64) error {
	if s.bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(bookID)),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	}
	// A negative size means a chunked upload of unknown length; the
	// uploader then streams in multipart chunks without a declared length.
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	_, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return fmt.Errorf("upload cover %s: %w", bookID, err)
	}
	return nil
}

func (s *S3CoverStorage) Get(ctx context.Context, bookID string) (*ports.CoverObject, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(bookID)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, domain.ErrCoverNotFound
		}
		return nil, fmt.Errorf("get cover %s: %w", bookID, err)
	}

	return &ports.CoverObject{
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
		Body:        out.Body,
	}, nil
}

func (s *S3CoverStorage) Delete(ctx context.Context, bookID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(bookID)),
	})
	if err != nil {
		return fmt.Errorf("delete cover %s: %w", bookID, err)
	}
	return nil
}

func (s *S3CoverStorage) key(bookID string) string {
	return coverKeyPrefix + bookID
}
