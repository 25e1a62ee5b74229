package assets

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/uigate/service/internal/storage"
	"github.com/uigate/service/internal/tenant"
)

const (
	// maxUploadSize caps accepted ZIP bundles at 8 MiB.
	maxUploadSize = 8 << 20

	// maxPollRetries bounds the remote-trigger poll loop: one initial check
	// plus at most this many retries.
	maxPollRetries = 5

	defaultPollInterval = 2 * time.Second

	zipObjectName      = "assets.zip"
	errorLogObjectName = "error.log"
)

// ErrNotConfigured is returned when no serving storage provider is set.
var ErrNotConfigured = errors.New("storage provider not configured")

// ErrAdminTenant is returned when the reserved admin tenant tries to upload
// custom UI assets.
var ErrAdminTenant = errors.New("custom UI assets are not allowed for the admin tenant")

// ErrUnzipTimeout is returned when the poll budget is exhausted with the
// external unzip pipeline still in progress.
var ErrUnzipTimeout = errors.New("unzip timeout: max retry count reached")

// PipelineError carries the text posted by the external unzip pipeline to
// the error-log marker. It is terminal and never retried.
type PipelineError struct {
	Detail string
}

func (e *PipelineError) Error() string {
	return "extraction pipeline failed: " + e.Detail
}

// buildStorageFunc constructs a backend adapter from a provider config;
// tests swap it for a stub.
type buildStorageFunc func(*storage.ProviderConfig) (storage.Storage, error)

// ProviderSource exposes the two configuration slots the orchestrator and
// the asset server read.
type ProviderSource interface {
	Serving() *storage.ProviderConfig
	Staging() *storage.ProviderConfig
}

// Service orchestrates custom-UI asset uploads.
type Service struct {
	providers    ProviderSource
	build        buildStorageFunc
	pollInterval time.Duration
}

// NewService creates an upload Service reading provider configuration from
// providers.
func NewService(providers ProviderSource) *Service {
	return &Service{
		providers:    providers,
		build:        storage.Build,
		pollInterval: defaultPollInterval,
	}
}

// Upload processes a validated ZIP upload for tenantID and returns the
// generated asset identifier. The processing strategy is chosen by the
// staging slot's provider tag, falling back to the serving slot when no
// staging slot is set: S3-kind backends extract locally and fan out entry
// uploads, Azure-kind backends hand the ZIP to an external unzip pipeline
// and poll for its completion markers.
func (s *Service) Upload(ctx context.Context, tenantID string, data []byte, contentType string) (string, error) {
	if tenantID == tenant.AdminTenantID {
		return "", ErrAdminTenant
	}

	serving := s.providers.Serving()
	if serving == nil {
		return "", ErrNotConfigured
	}
	staging := s.providers.Staging()
	if staging == nil {
		staging = serving
	}

	assetID, err := newAssetID()
	if err != nil {
		return "", fmt.Errorf("generate asset id: %w", err)
	}

	switch staging.Provider {
	case storage.ProviderAzure:
		err = s.remoteTriggerUpload(ctx, staging, tenantID, assetID, data, contentType)
	case storage.ProviderS3:
		err = s.localExtractUpload(ctx, serving, tenantID, assetID, data)
	default:
		return "", ErrNotConfigured
	}
	if err != nil {
		return "", err
	}
	return assetID, nil
}

// localExtractUpload unzips the archive in-process and uploads every file
// entry to the serving backend in parallel. All uploads must succeed; the
// first failure cancels the remaining ones. No compensation is attempted for
// entries already uploaded; the asset id is discarded and the caller retries
// the whole upload.
func (s *Service) localExtractUpload(ctx context.Context, cfg *storage.ProviderConfig, tenantID, assetID string, data []byte) error {
	store, err := s.build(cfg)
	if err != nil {
		return err
	}

	entries, err := ReadArchive(data)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			content, err := entry.Data()
			if err != nil {
				return err
			}
			key := ObjectKey(tenantID, assetID, entry.Name)
			if _, err := store.Upload(ctx, key, content, entry.ContentType); err != nil {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// unzipState is one observation of the external pipeline's markers.
type unzipState int

const (
	unzipInProgress unzipState = iota
	unzipSucceeded
	unzipAborted
)

// remoteTriggerUpload stores the raw ZIP on the staging backend and waits
// for the external unzip pipeline that reacts to its creation. Completion is
// observed through two markers under the asset prefix: the zip disappearing
// (success) and an error.log appearing (terminal failure whose text becomes
// the failure detail).
func (s *Service) remoteTriggerUpload(ctx context.Context, cfg *storage.ProviderConfig, tenantID, assetID string, data []byte, contentType string) error {
	store, err := s.build(cfg)
	if err != nil {
		return err
	}

	zipKey := ObjectKey(tenantID, assetID, zipObjectName)
	errorLogKey := ObjectKey(tenantID, assetID, errorLogObjectName)

	if _, err := store.Upload(ctx, zipKey, data, contentType); err != nil {
		return err
	}

	errInProgress := errors.New("unzip in progress")
	check := func() error {
		state, detail, err := s.observeUnzip(ctx, store, zipKey, errorLogKey)
		if err != nil {
			return backoff.Permanent(err)
		}
		switch state {
		case unzipSucceeded:
			return nil
		case unzipAborted:
			return backoff.Permanent(&PipelineError{Detail: detail})
		default:
			return errInProgress
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.pollInterval), maxPollRetries),
		ctx,
	)
	if err := backoff.Retry(check, policy); err != nil {
		if errors.Is(err, errInProgress) {
			return ErrUnzipTimeout
		}
		return err
	}
	return nil
}

// observeUnzip performs a single poll of the pipeline markers. The error log
// is checked first so a posted failure aborts immediately instead of burning
// the remaining retry budget while the zip lingers.
func (s *Service) observeUnzip(ctx context.Context, store storage.Storage, zipKey, errorLogKey string) (unzipState, string, error) {
	hasErrorLog, err := store.Exists(ctx, errorLogKey)
	if err != nil {
		return unzipInProgress, "", err
	}
	if hasErrorLog {
		res, err := store.Download(ctx, errorLogKey, nil)
		if err != nil {
			return unzipInProgress, "", err
		}
		defer res.Body.Close()

		text, err := io.ReadAll(res.Body)
		if err != nil {
			return unzipInProgress, "", err
		}
		detail := strings.TrimSpace(string(text))
		if detail == "" {
			detail = "unzipping failed"
		}
		return unzipAborted, detail, nil
	}

	hasZip, err := store.Exists(ctx, zipKey)
	if err != nil {
		return unzipInProgress, "", err
	}
	if hasZip {
		return unzipInProgress, "", nil
	}
	return unzipSucceeded, "", nil
}

const (
	assetIDLength   = 8
	assetIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// newAssetID returns a short random identifier for a freshly uploaded asset.
func newAssetID() (string, error) {
	id := make([]byte, assetIDLength)
	for i := range id {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(assetIDAlphabet))))
		if err != nil {
			return "", err
		}
		id[i] = assetIDAlphabet[n.Int64()]
	}
	return string(id), nil
}
