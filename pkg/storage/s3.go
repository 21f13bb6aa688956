package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var archiveTracer = otel.Tracer("contentlint/storage")

// ArchiveConfig configures the S3 archive backend
type ArchiveConfig struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// s3API is the subset of the S3 client the archive uses
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Archive stores exported report bundles in object storage
type S3Archive struct {
	client s3API
	bucket string
}

// NewS3Archive creates an archive backed by S3 or an S3-compatible
// endpoint. Static credentials are used when provided; otherwise the
// default AWS credential chain applies.
func NewS3Archive(ctx context.Context, cfg ArchiveConfig) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3Archive{client: client, bucket: cfg.Bucket}, nil
}

// NewS3ArchiveWithClient creates an archive around an existing client.
// Used by tests.
func NewS3ArchiveWithClient(client s3API, bucket string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket}
}

// Upload stores a report bundle under the given key
func (a *S3Archive) Upload(ctx context.Context, key string, content []byte, contentType string) error {
	ctx, span := archiveTracer.Start(ctx, "S3Archive.Upload",
		trace.WithAttributes(
			attribute.String("s3.bucket", a.bucket),
			attribute.String("s3.key", key),
			attribute.Int("content.size", len(content)),
		),
	)
	defer span.End()

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upload to s3")
		return fmt.Errorf("failed to upload archive %s: %w", key, err)
	}

	span.SetStatus(codes.Ok, "archive uploaded")
	return nil
}

// Download retrieves a previously archived bundle
func (a *S3Archive) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ctx, span := archiveTracer.Start(ctx, "S3Archive.Download",
		trace.WithAttributes(
			attribute.String("s3.bucket", a.bucket),
			attribute.String("s3.key", key),
		),
	)
	defer span.End()

	result, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get object from s3")
		return nil, fmt.Errorf("failed to download archive %s: %w", key, err)
	}

	span.SetStatus(codes.Ok, "archive downloaded")
	return result.Body, nil
}

// HealthCheck verifies the archive bucket is reachable
func (a *S3Archive) HealthCheck(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 health check failed: %w", err)
	}
	return nil
}
