package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/debemdeboas/brandi/internal/config"
)

// S3API is the part of the S3 client the asset source needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads assets from a bucket, under an optional key prefix.
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

func NewS3SourceWithClient(client S3API, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// NewS3Source builds an S3 client from the assets configuration. Static
// credentials are used when both keys are set, otherwise the default AWS
// credential chain applies.
func NewS3Source(ctx context.Context, cfg config.AssetsConfig) (*S3Source, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	assetsLogger.Info().
		Str("bucket", cfg.Bucket).
		Str("prefix", cfg.Prefix).
		Str("endpoint", cfg.Endpoint).
		Msg("Serving static assets from S3")

	return NewS3SourceWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func (s *S3Source) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Open rejects names that would leave the prefix before asking S3.
func (s *S3Source) Open(ctx context.Context, name string) (*Object, error) {
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) || name == "." {
		return nil, ErrNotExist
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("get s3 object %s: %w", name, err)
	}

	obj := &Object{
		Body:        out.Body,
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
		ModTime:     aws.ToTime(out.LastModified),
		Size:        aws.ToInt64(out.ContentLength),
	}
	if obj.ContentType == "" {
		obj.ContentType = contentType(name)
	}
	return obj, nil
}
