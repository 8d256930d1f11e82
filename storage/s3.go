package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/spf13/viper"
)

// Payloads above this size go through the multipart upload manager
// instead of a single PutObject call.
const multipartLimit = 100 << 20

// S3Store is the production BlobStore backed by an S3 (or S3-compatible)
// bucket. One object per file id.
type S3Store struct {
	c        *s3.Client
	uploader *manager.Uploader
	bucket   *string
}

// NewS3 builds an S3Store from the aws.* config keys and verifies that
// the bucket exists before returning.
func NewS3(ctx context.Context) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("aws.access_key"),
			viper.GetString("aws.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("aws.bucket"))

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = viper.GetString("aws.region")

		// Allows pointing at R2, minio and friends
		if ep := viper.GetString("aws.endpoint"); ep != "" {
			o.BaseEndpoint = aws.String(ep)
			o.UsePathStyle = true
		}
	})

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Store{
		c: client,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 5 << 20
		}),
		bucket: bucket,
	}, nil
}

func (s *S3Store) Store(ctx context.Context, id, filename, contentType string, r io.ReadSeeker, size int64) error {
	in := &s3.PutObjectInput{
		Bucket:             s.bucket,
		Key:                aws.String(id),
		Body:               r,
		ContentLength:      aws.Int64(size),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", filename)),
	}

	var err error
	if size > multipartLimit {
		_, err = s.uploader.Upload(ctx, in)
	} else {
		_, err = s.c.PutObject(ctx, in)
	}

	if err != nil {
		return fmt.Errorf("failed to store object %s, %w", id, err)
	}

	return nil
}

func (s *S3Store) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	out, err := s.c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: s.bucket,
		Key:    aws.String(id),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to open object %s, %w", id, err)
	}

	return out.Body, nil
}

func (s *S3Store) Delete(ctx context.Context, id string) error {
	// DeleteObject is a no-op for unknown keys, but callers rely on
	// missing ids erroring, so check existence first
	_, err := s.c.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: s.bucket,
		Key:    aws.String(id),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return ErrNotFound
		}

		return fmt.Errorf("failed to check object %s, %w", id, err)
	}

	_, err = s.c.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.bucket,
		Key:    aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s, %w", id, err)
	}

	return nil
}
