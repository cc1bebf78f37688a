// Package storage provides the S3-backed file store and the local spool for
// multipart uploads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

// S3Config carries the settings for the S3 file store, constructed once at
// process start and injected (no module-level client state).
type S3Config struct {
	Bucket string
	Region string
	// Public selects public-bucket mode: Store returns a stable object URL
	// and RetrievalURL echoes it. Private mode issues presigned URLs.
	Public     bool
	PresignTTL time.Duration
}

// S3Store implements ports.FileStore on top of an S3 bucket.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     S3Config
}

// NewS3Store builds the S3 client from the default AWS credential chain.
// Missing bucket configuration is reported here, not at first use.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: S3_BUCKET_NAME is not configured")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 5 * time.Minute
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
	}, nil
}

// Store uploads the stream under a timestamped object key derived from the
// original filename.
func (s *S3Store) Store(ctx context.Context, r io.Reader, info ports.FileInfo) (*ports.StoredObject, error) {
	key := objectKey(info.Name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(info.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: put object: %w", err)
	}

	obj := &ports.StoredObject{Reference: key}
	if s.cfg.Public {
		obj.URL = s.publicURL(key)
	}
	return obj, nil
}

// RetrievalURL returns the public URL or, for private buckets, a presigned
// GET valid for ttl (falling back to the configured default).
func (s *S3Store) RetrievalURL(ctx context.Context, reference string, ttl time.Duration) (string, error) {
	if s.cfg.Public {
		return s.publicURL(reference), nil
	}
	if ttl <= 0 {
		ttl = s.cfg.PresignTTL
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(reference),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("storage: presign get: %w", err)
	}
	return req.URL, nil
}

func (s *S3Store) Delete(ctx context.Context, reference string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(reference),
	})
	if err != nil {
		return fmt.Errorf("storage: delete object: %w", err)
	}
	return nil
}

func (s *S3Store) publicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// objectKey builds a collision-safe key: millisecond timestamp plus the
// sanitized original name.
func objectKey(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), clean)
}
