package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/storage"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/infra/config"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const maxAvatarSize = 5 << 20 // 5 MiB

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AvatarStorage stores user avatars in an S3-compatible bucket.
type AvatarStorage struct {
	cfg    *config.Config
	client *mclient.Client
}

// New builds the client and fails fast when the bucket is missing.
func New(ctx context.Context, cfg *config.Config) (*AvatarStorage, error) {
	endpoint := cfg.S3Endpoint
	secure := strings.HasPrefix(endpoint, "https://")
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, customErrors.WrapInternal(err, "minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.S3Bucket)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "bucket check")
	}
	if !exists {
		return nil, customErrors.WrapInternal(fmt.Errorf("bucket %q does not exist", cfg.S3Bucket), "bucket check")
	}

	return &AvatarStorage{cfg: cfg, client: client}, nil
}

var _ storage.AvatarStorage = (*AvatarStorage)(nil)

// Upload overwrites the user's avatar object and returns its public URL.
// The key is stable per user so re-uploads replace the previous avatar.
func (s *AvatarStorage) Upload(ctx context.Context, username string, r io.Reader, size int64, contentType string) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", customErrors.NewInvalidArgument("unsupported avatar content type " + contentType)
	}
	if size <= 0 || size > maxAvatarSize {
		return "", customErrors.NewInvalidArgument("avatar size out of range")
	}

	key := path.Join("avatars", username+ext)
	_, err := s.client.PutObject(ctx, s.cfg.S3Bucket, key, r, size, mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", customErrors.WrapInternal(err, "put avatar")
	}

	base := strings.TrimRight(s.cfg.S3PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if strings.HasPrefix(s.cfg.S3Endpoint, "https://") {
			scheme = "https"
		}
		base = scheme + "://" + strings.TrimPrefix(strings.TrimPrefix(s.cfg.S3Endpoint, "https://"), "http://") + "/" + s.cfg.S3Bucket
	}
	return base + "/" + key, nil
}
