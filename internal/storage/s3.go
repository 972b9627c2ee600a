package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	a "mediakeep/media-api/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Blobs above this size go through the multipart uploader
const minMultipartSize = 12 << 20

type S3Store struct {
	c         *a.S3Client
	publicURL string
}

func NewS3Store(c *a.S3Client) *S3Store {
	return &S3Store{
		c:         c,
		publicURL: strings.TrimSuffix(viper.GetString("aws.public_url"), "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:        s.c.Bucket,
		Key:           aws.String(name),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}

	var err error
	if size > minMultipartSize {
		uploader := manager.NewUploader(s.c.C, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 6 << 20
		})

		_, err = uploader.Upload(ctx, input)
	} else {
		_, err = s.c.C.PutObject(ctx, input)
	}
	if err != nil {
		return "", fmt.Errorf("failed to upload blob to s3, %w", err)
	}

	return s.publicURL + "/" + name, nil
}

func (s *S3Store) Get(ctx context.Context, name string) (*Object, error) {
	out, err := s.c.C.GetObject(ctx, &s3.GetObjectInput{
		Bucket: s.c.Bucket,
		Key:    aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get blob from s3, %w", err)
	}

	obj := &Object{
		Body:        out.Body,
		ContentType: aws.ToString(out.ContentType),
	}
	if out.ContentLength != nil {
		obj.ContentLength = *out.ContentLength
	}

	return obj, nil
}

func (s *S3Store) Delete(ctx context.Context, name string) error {
	_, err := s.c.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.c.Bucket,
		Key:    aws.String(name),
	})
	if err != nil {
		zap.L().Error("Failed to delete blob from s3", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("failed to delete blob from s3, %w", err)
	}

	return nil
}
