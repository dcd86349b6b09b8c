package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

type Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	// Endpoint is empty for AWS S3, host[:port] for any other S3-compatible store.
	Endpoint  string
	UseSSL    bool
	CDNDomain string
}

type S3 struct {
	Resolver
	client *minio.Client
	bucket string
}

func NewS3(cfg Config) (*S3, error) {
	endpoint := cfg.Endpoint
	secure := cfg.UseSSL
	if endpoint == "" {
		endpoint = fmt.Sprintf("s3.%s.amazonaws.com", cfg.Region)
		secure = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	return &S3{
		Resolver: NewResolver(BucketBases(cfg.CDNDomain, cfg.Bucket, cfg.Region, cfg.Endpoint, cfg.UseSSL)...),
		client:   client,
		bucket:   cfg.Bucket,
	}, nil
}

// Init connects to the bucket and installs it as Default.
func Init(ctx context.Context, cfg Config) error {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return errors.New("storage credentials are not configured")
	}
	s, err := NewS3(cfg)
	if err != nil {
		return err
	}

	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to reach bucket %s: %w", s.bucket, err)
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	Default = s
	return nil
}

func (s *S3) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: CacheControl,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (s *S3) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *S3) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: s.bucket, Object: srcKey},
	)
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", srcKey, dstKey, err)
	}
	return nil
}

func (s *S3) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return out, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		out = append(out, ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return out, nil
}

func (s *S3) RemovePrefix(ctx context.Context, prefix string) (int, error) {
	objects, err := s.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	if len(objects) == 0 {
		return 0, nil
	}

	ch := make(chan minio.ObjectInfo, len(objects))
	for _, o := range objects {
		ch <- minio.ObjectInfo{Key: o.Key}
	}
	close(ch)

	failed := 0
	var firstErr error
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, ch, minio.RemoveObjectsOptions{}) {
		failed++
		if firstErr == nil {
			firstErr = rErr.Err
		}
		slog.ErrorContext(ctx, "failed to delete object", "key", rErr.ObjectName, "err", rErr.Err)
	}
	if firstErr != nil {
		return len(objects) - failed, fmt.Errorf("failed to delete %d objects under %s: %w", failed, prefix, firstErr)
	}
	return len(objects), nil
}

// EnsurePrefixExpiration adds a lifecycle rule expiring objects under prefix
// after days, unless an equivalent rule is already present.
func (s *S3) EnsurePrefixExpiration(ctx context.Context, prefix string, days int) error {
	cfg, err := s.client.GetBucketLifecycle(ctx, s.bucket)
	if err != nil || cfg == nil {
		cfg = lifecycle.NewConfiguration()
	}

	for _, rule := range cfg.Rules {
		if rule.Status == "Enabled" &&
			int(rule.Expiration.Days) == days &&
			rule.RuleFilter.Prefix == prefix {
			return nil
		}
	}

	cfg.Rules = append(cfg.Rules, lifecycle.Rule{
		ID:         "expire-" + strings.Trim(prefix, "/"),
		Status:     "Enabled",
		RuleFilter: lifecycle.Filter{Prefix: prefix},
		Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(days)},
	})
	if err := s.client.SetBucketLifecycle(ctx, s.bucket, cfg); err != nil {
		return fmt.Errorf("failed to set lifecycle on %s: %w", prefix, err)
	}
	slog.Info("installed storage lifecycle rule", "prefix", prefix, "days", days)
	return nil
}
