package systems

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/uigate/service/internal/storage"
)

// KV is the subset of Repository the provider store needs; tests stub it.
type KV interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Upsert(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// providerSnapshot is one immutable view of both configuration slots.
// A nil slot means "not configured".
type providerSnapshot struct {
	serving *storage.ProviderConfig
	staging *storage.ProviderConfig
}

// ProviderStore holds the active storage-provider configuration behind an
// atomic pointer. The serving hot path reads the snapshot without any I/O or
// locking; mutations persist to the systems table first and then swap in a
// freshly loaded snapshot, so concurrent readers always observe one
// consistent value.
type ProviderStore struct {
	repo    KV
	current atomic.Pointer[providerSnapshot]
}

// NewProviderStore creates a ProviderStore with an empty snapshot. Call Load
// before serving traffic.
func NewProviderStore(repo KV) *ProviderStore {
	s := &ProviderStore{repo: repo}
	s.current.Store(&providerSnapshot{})
	return s
}

// Load reads both provider slots from the systems table and swaps in a fresh
// snapshot.
func (s *ProviderStore) Load(ctx context.Context) error {
	serving, err := s.loadSlot(ctx, KeyExperienceBlobsProvider)
	if err != nil {
		return err
	}
	staging, err := s.loadSlot(ctx, KeyExperienceZipsProvider)
	if err != nil {
		return err
	}
	s.current.Store(&providerSnapshot{serving: serving, staging: staging})
	return nil
}

func (s *ProviderStore) loadSlot(ctx context.Context, key string) (*storage.ProviderConfig, error) {
	raw, err := s.repo.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cfg := &storage.ProviderConfig{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", key, err)
	}
	return cfg, nil
}

// Serving returns the serving-slot configuration, or nil when not configured.
func (s *ProviderStore) Serving() *storage.ProviderConfig {
	return s.current.Load().serving
}

// Staging returns the staging-slot configuration, or nil when not configured.
func (s *ProviderStore) Staging() *storage.ProviderConfig {
	return s.current.Load().staging
}

// Set validates and persists cfg as the serving slot. Azure configs are
// mirrored into the staging slot for the remote-trigger upload path; S3
// configs clear any staging slot left behind by a previous Azure setup.
// The in-memory snapshot is reloaded before returning.
func (s *ProviderStore) Set(ctx context.Context, cfg *storage.ProviderConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, KeyExperienceBlobsProvider, cfg); err != nil {
		return err
	}
	if cfg.Provider == storage.ProviderAzure {
		if err := s.repo.Upsert(ctx, KeyExperienceZipsProvider, cfg); err != nil {
			return err
		}
	} else {
		if err := s.repo.Delete(ctx, KeyExperienceZipsProvider); err != nil {
			return err
		}
	}
	return s.Load(ctx)
}

// Clear removes both slots and reloads the snapshot; uploads and serving
// fail with "not configured" afterwards.
func (s *ProviderStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyExperienceBlobsProvider, KeyExperienceZipsProvider); err != nil {
		return err
	}
	return s.Load(ctx)
}
