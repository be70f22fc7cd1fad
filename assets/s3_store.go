package assets

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jrsteele09/go-blog-server/internal/config"
	"github.com/pkg/errors"
)

var _ Store = (*S3Store)(nil)

// S3Store uploads images to an S3-compatible bucket (AWS or MinIO via a
// custom endpoint) and returns publicly addressable URLs.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(ctx context.Context, cfg config.AssetConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.GetS3Region()),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.GetS3AccessKey(),
			cfg.GetS3SecretKey(),
			"",
		)))
	if err != nil {
		return nil, errors.Wrap(err, "[NewS3Store] LoadDefaultConfig")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.GetS3Endpoint() != "" {
			o.BaseEndpoint = aws.String(cfg.GetS3Endpoint())
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.GetS3Endpoint()
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.GetS3Bucket(), cfg.GetS3Region())
	} else {
		baseURL = strings.TrimSuffix(baseURL, "/") + "/" + cfg.GetS3Bucket()
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.GetS3Bucket(),
		baseURL: baseURL,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := StorageKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrap(err, "[S3Store.Upload] PutObject")
	}
	return s.baseURL + "/" + key, nil
}
