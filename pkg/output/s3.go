package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 10 * time.Second

// ErrS3NotConfigured is returned when publishing is requested without a bucket
var ErrS3NotConfigured = errors.New("S3 publishing is not configured")

// S3Config holds the connection settings for an S3-compatible store
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	CDNURL    string // Public base URL for uploaded objects, optional
}

// Enabled reports whether enough settings are present to upload
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// S3Uploader publishes rendered images to a bucket
type S3Uploader struct {
	client s3iface.S3API
	bucket string
	cdnURL string
}

// NewS3Uploader creates an uploader using static credentials and path-style addressing
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrS3NotConfigured
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), cfg.Bucket, cfg.CDNURL), nil
}

// NewS3UploaderWithClient wraps an existing S3 client
func NewS3UploaderWithClient(client s3iface.S3API, bucket, cdnURL string) *S3Uploader {
	return &S3Uploader{
		client: client,
		bucket: bucket,
		cdnURL: strings.TrimSuffix(cdnURL, "/"),
	}
}

// Upload stores data under key and returns its public URL
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return u.URL(key), nil
}

// UploadPNG encodes img and uploads it under key
func (u *S3Uploader) UploadPNG(ctx context.Context, key string, img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return u.Upload(ctx, key, data, "image/png")
}

// URL returns the public location of key
func (u *S3Uploader) URL(key string) string {
	if u.cdnURL != "" {
		return u.cdnURL + "/" + key
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key)
}
