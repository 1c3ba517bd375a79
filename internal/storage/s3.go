package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Options configures the S3-compatible blob store. Endpoint is optional
// and allows pointing at R2/MinIO style services.
type S3Options struct {
	Bucket        string
	Endpoint      string
	Region        string
	AccessKeyID   string
	AccessSecret  string
	PublicBaseURL string
	Folder        string
	MaxDimension  int
}

// S3Store uploads gallery images to an S3-compatible bucket.
type S3Store struct {
	client    *s3.Client
	bucket    string
	folder    string
	publicURL string
	maxDim    int
}

// NewS3Store builds the S3 client with static credentials and an optional
// custom endpoint.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("blob bucket is required")
	}

	region := opts.Region
	if region == "" {
		region = "auto"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.AccessSecret, ""),
		),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return &S3Store{
		client:    client,
		bucket:    opts.Bucket,
		folder:    strings.Trim(opts.Folder, "/"),
		publicURL: strings.TrimRight(opts.PublicBaseURL, "/"),
		maxDim:    opts.MaxDimension,
	}, nil
}

// Store validates and downscales the image, then uploads it under an
// extension-less key so the key can be rebuilt from the public URL.
func (s *S3Store) Store(ctx context.Context, data []byte, contentType string) (string, string, error) {
	if !AllowedImageType(contentType) {
		return "", "", ErrUnsupportedImageType
	}

	scaled, err := fitWithin(data, s.maxDim)
	if err != nil {
		return "", "", err
	}

	key := uuid.NewString()
	if s.folder != "" {
		key = s.folder + "/" + key
	}

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(scaled),
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", "", err
	}

	return s.publicURL + "/" + key, key, nil
}

// Delete removes the blob for the given key.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
