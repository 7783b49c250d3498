// Package s3blob mirrors written articles to an S3-compatible bucket.
package s3blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// Ensure Archive implements the interface.
var _ driven.ArticleArchive = (*Archive)(nil)

// contentType is the MIME type stored with every article object.
const contentType = "text/markdown; charset=utf-8"

// Config holds the target bucket and credentials. Empty keys fall back to
// the default AWS credential chain.
type Config struct {
	// Endpoint is an S3-compatible endpoint URL. Leave empty for AWS S3.
	Endpoint string

	Region string
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	AccessKey string
	SecretKey string

	// ForcePathStyle puts the bucket in the path rather than the host.
	ForcePathStyle bool
}

// Archive uploads articles with PutObject.
type Archive struct {
	s3     *s3.Client
	bucket string
	prefix string
}

// New creates an archive client.
func New(ctx context.Context, cfg Config) (*Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket", domain.ErrNotConfigured)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: s3 region", domain.ErrNotConfigured)
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3blob: load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := normaliseEndpoint(cfg.Endpoint)
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	s3Opts = append(s3Opts, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return &Archive{
		s3:     s3.NewFromConfig(awsCfg, s3Opts...),
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Key returns the object key for an article path.
func (a *Archive) Key(articlePath string) string {
	key := strings.TrimPrefix(filepath.ToSlash(articlePath), "./")
	if a.prefix == "" {
		return key
	}
	return path.Join(a.prefix, key)
}

// Put uploads the article, replacing any object with the same key.
func (a *Archive) Put(ctx context.Context, article *domain.Article) error {
	key := a.Key(article.Path)
	_, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(article.Content),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"event-id": article.EventID},
	})
	if err != nil {
		return fmt.Errorf("s3blob: put object %s: %w", key, err)
	}
	return nil
}

// normaliseEndpoint ensures the endpoint has a scheme, defaulting to https.
func normaliseEndpoint(endpoint string) string {
	parsed, err := url.Parse(endpoint)
	if err == nil && parsed.Scheme != "" {
		return endpoint
	}
	return "https://" + endpoint
}
