package store

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/message"
)

// S3 stores attachments as objects in a bucket. Any S3 compatible service,
// such as MinIO, works when an endpoint is given.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 returns an S3 store using static credentials from the settings.
func NewS3(cfg config.S3Settings) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 store: no bucket configured")
	}

	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		),
	}

	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	return &S3{
		client: s3.New(opts),
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Put uploads the attachment and returns its s3:// location.
func (s *S3) Put(ctx context.Context, key string, a *message.Attachment) (string, error) {
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}

	ct := a.ContentType()
	if !strings.Contains(ct, "/") {
		ct = a.MimeType()
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(a.Content()),
		ContentLength: aws.Int64(int64(a.Size())),
		ContentType:   aws.String(ct),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	return "s3://" + s.bucket + "/" + key, nil
}
