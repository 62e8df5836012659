// Package storage archives uploaded query images in S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Archive stores objects in a single bucket.
type S3Archive struct {
	client *s3.Client
	bucket string
	// publicBase prefixes returned object URLs.
	publicBase string
}

// NewS3Archive loads the AWS configuration from the environment or the
// shared config files and returns an archive writing to bucket.
func NewS3Archive(ctx context.Context, bucket, region string) (*S3Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3ArchiveWithClient(s3.NewFromConfig(awsCfg), bucket, fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)), nil
}

// NewS3ArchiveWithClient wraps an existing client.
func NewS3ArchiveWithClient(client *s3.Client, bucket, publicBase string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, publicBase: publicBase}
}

// Put uploads data under key and returns its URL.
func (a *S3Archive) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return a.publicBase + "/" + key, nil
}

// PresignedURL returns a time limited download link for key.
func (a *S3Archive) PresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	presigned, err := s3.NewPresignClient(a.client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}
