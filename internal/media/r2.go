// Package media wraps the Cloudflare R2 bucket that holds companion images
// attached to canned messages. The admin console uploads directly through
// presigned PUT URLs and stores the resulting public URL on the message row.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/singul69/My-chat-app/internal/config"
)

type R2Client struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewR2 builds a client for the configured bucket using static credentials
// and the account-scoped R2 endpoint.
func NewR2(cfg config.R2Config) *R2Client {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{
		client:        client,
		bucket:        cfg.BucketName,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}
}

// PresignPut creates a presigned URL for uploading an object.
func (c *R2Client) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	presigner := s3.NewPresignClient(c.client)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PublicURL returns the CDN-served URL a stored object is reachable at.
func (c *R2Client) PublicURL(key string) string {
	return c.publicBaseURL + "/" + key
}
