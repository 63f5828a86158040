package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

// InlineBlobStore keeps the bytes base64 encoded in the images table
type InlineBlobStore struct{}

func (InlineBlobStore) Store(_ context.Context, img *domain.UploadedImage, payload []byte) error {
	img.Data = base64.StdEncoding.EncodeToString(payload)
	img.URL = "/api/images/" + img.ID
	return nil
}

func (InlineBlobStore) Remove(context.Context, *domain.UploadedImage) error {
	return nil
}

// S3Client is the subset of the S3 API used for images
type S3Client interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// S3BlobStore uploads images to a bucket and records the object key
type S3BlobStore struct {
	client    S3Client
	bucket    string
	publicURL string
}

func NewS3BlobStore(client S3Client, bucket, publicURL string) *S3BlobStore {
	return &S3BlobStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// NewS3BlobStoreFromConfig opens an AWS session for cfg. A custom endpoint
// switches to path-style addressing for S3 compatible servers.
func NewS3BlobStoreFromConfig(cfg config.S3Config) (*S3BlobStore, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return NewS3BlobStore(s3.New(sess), cfg.Bucket, publicURL), nil
}

func objectKey(img *domain.UploadedImage) string {
	return "images/" + img.ID + strings.ToLower(filepath.Ext(img.Filename))
}

func (s *S3BlobStore) Store(ctx context.Context, img *domain.UploadedImage, payload []byte) error {
	key := objectKey(img)
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(img.MimeType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	img.ObjectKey = key
	img.URL = s.publicURL + "/" + key
	return nil
}

func (s *S3BlobStore) Remove(ctx context.Context, img *domain.UploadedImage) error {
	if img.ObjectKey == "" {
		return nil
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(img.ObjectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image object: %w", err)
	}
	return nil
}
