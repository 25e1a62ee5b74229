package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// defaultS3Region is used when neither an explicit region nor a
// region-bearing AWS endpoint is configured.
const defaultS3Region = "us-east-1"

// endpointRegionPattern extracts the region out of endpoints shaped like
// s3.us-west-2.amazonaws.com.
var endpointRegionPattern = regexp.MustCompile(`s3\.([^.]*)\.amazonaws`)

// S3Storage implements Storage against any S3-compatible backend through the
// MinIO client. Works with AWS S3, MinIO, R2 and friends; only the endpoint
// and credentials differ.
type S3Storage struct {
	client *minio.Client
	cfg    S3Config
	region string

	// endpointScheme/endpointHost are only set when an explicit endpoint is
	// configured; they feed virtual-hosted URL construction.
	endpointScheme string
	endpointHost   string
}

// NewS3Storage resolves the effective region, builds the MinIO client, and
// returns a ready adapter. Either Region or Endpoint must be set.
func NewS3Storage(cfg *S3Config) (*S3Storage, error) {
	if cfg.Region == "" && cfg.Endpoint == "" {
		return nil, errors.New("s3: either region or endpoint must be provided")
	}
	region := resolveS3Region(cfg.Region, cfg.Endpoint)

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}
	u, err := url.Parse(ensureScheme(endpoint))
	if err != nil {
		return nil, fmt.Errorf("s3: parse endpoint %q: %w", endpoint, err)
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.AccessSecretKey, ""),
		Secure: u.Scheme != "http",
		Region: region,
	}
	if cfg.ForcePathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}

	client, err := minio.New(u.Host, opts)
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}

	s := &S3Storage{client: client, cfg: *cfg, region: region}
	if cfg.Endpoint != "" {
		s.endpointScheme = u.Scheme
		s.endpointHost = u.Host
	}
	return s, nil
}

// resolveS3Region resolution order: explicit region, region parsed out of an
// AWS-shaped endpoint, fixed default.
func resolveS3Region(region, endpoint string) string {
	if region != "" {
		return region
	}
	if m := endpointRegionPattern.FindStringSubmatch(endpoint); m != nil {
		return m[1]
	}
	return defaultS3Region
}

// ensureScheme prepends https:// when the endpoint carries no scheme.
func ensureScheme(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "https://" + endpoint
}

// ObjectURL builds the publicly resolvable URL for key. A configured public
// URL always wins; with an explicit endpoint the URL is path-style
// (endpoint/bucket/key) or virtual-hosted (scheme://bucket.host/key)
// depending on ForcePathStyle; otherwise the standard AWS form is used.
func (s *S3Storage) ObjectURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key
	}
	if s.endpointHost != "" {
		if s.cfg.ForcePathStyle {
			return fmt.Sprintf("%s://%s/%s/%s", s.endpointScheme, s.endpointHost, s.cfg.Bucket, key)
		}
		return fmt.Sprintf("%s://%s.%s/%s", s.endpointScheme, s.cfg.Bucket, s.endpointHost, key)
	}
	if s.cfg.ForcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.region, key)
}

// Upload stores data under key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("s3: put object %q: %w", key, err)
	}
	return s.ObjectURL(key), nil
}

// Download fetches the object body, forwarding byteRange to the backend so
// only the requested bytes travel over the wire.
func (s *S3Storage) Download(ctx context.Context, key string, byteRange *ByteRange) (*DownloadResult, error) {
	stat, err := s.client.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, s.normalizeError("stat object", key, err)
	}

	opts, length, err := rangedGetOptions(byteRange, stat.Size)
	if err != nil {
		return nil, fmt.Errorf("s3: set range: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, opts)
	if err != nil {
		return nil, s.normalizeError("get object", key, err)
	}

	return &DownloadResult{
		Body:          obj,
		ContentLength: length,
		ContentType:   stat.ContentType,
	}, nil
}

// rangedGetOptions resolves byteRange against the object's total size into
// request options carrying an explicit closed byte range, plus the number of
// bytes the backend will return. An open-ended range (Count 0) is pinned to
// the object's last byte; SetRange would read a zero offset with a zero end
// as the closed range bytes=0-0.
func rangedGetOptions(byteRange *ByteRange, totalSize int64) (minio.GetObjectOptions, int64, error) {
	opts := minio.GetObjectOptions{}
	if byteRange == nil {
		return opts, totalSize, nil
	}

	length := byteRange.Count
	end := byteRange.Offset + byteRange.Count - 1
	if byteRange.Count == 0 {
		length = totalSize - byteRange.Offset
		end = totalSize - 1
	}
	if end < byteRange.Offset {
		// Empty object; nothing to request a range of.
		return opts, 0, nil
	}
	if err := opts.SetRange(byteRange.Offset, end); err != nil {
		return opts, 0, err
	}
	return opts, length, nil
}

// Exists reports whether key is present in the bucket.
func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		norm := s.normalizeError("stat object", key, err)
		if errors.Is(norm, ErrNotFound) {
			return false, nil
		}
		return false, norm
	}
	return true, nil
}

// Properties fetches object metadata without transferring the body.
func (s *S3Storage) Properties(ctx context.Context, key string) (*Properties, error) {
	stat, err := s.client.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, s.normalizeError("stat object", key, err)
	}
	return &Properties{ContentLength: stat.Size, ContentType: stat.ContentType}, nil
}

// Delete removes the object at key.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("s3: remove object %q: %w", key, err)
	}
	return nil
}

// List returns the keys of all objects under prefix.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("s3: list %q: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// normalizeError maps the backend's missing-object responses to ErrNotFound
// and wraps everything else with operation context.
func (s *S3Storage) normalizeError(op, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NotFound" || resp.StatusCode == 404 {
		return fmt.Errorf("s3: %s %q: %w", op, key, ErrNotFound)
	}
	return fmt.Errorf("s3: %s %q: %w", op, key, err)
}
