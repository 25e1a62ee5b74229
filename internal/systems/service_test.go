package systems

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/uigate/service/internal/storage"
)

// stubKV is an in-memory stand-in for the systems table.
type stubKV struct {
	rows map[string]json.RawMessage
}

func newStubKV() *stubKV {
	return &stubKV{rows: make(map[string]json.RawMessage)}
}

func (s *stubKV) Get(ctx context.Context, key string) (json.RawMessage, error) {
	v, ok := s.rows[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *stubKV) Upsert(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.rows[key] = data
	return nil
}

func (s *stubKV) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.rows, k)
	}
	return nil
}

func s3Config() *storage.ProviderConfig {
	return &storage.ProviderConfig{
		Provider: storage.ProviderS3,
		S3: &storage.S3Config{
			Bucket: "assets", AccessKeyID: "ak", AccessSecretKey: "sk", Region: "us-east-1",
		},
	}
}

func azureConfig() *storage.ProviderConfig {
	return &storage.ProviderConfig{
		Provider: storage.ProviderAzure,
		Azure: &storage.AzureConfig{
			ConnectionString: "cs", Container: "assets",
		},
	}
}

func TestProviderStore_SetS3LeavesStagingEmpty(t *testing.T) {
	store := NewProviderStore(newStubKV())

	if err := store.Set(context.Background(), s3Config()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	serving := store.Serving()
	if serving == nil || serving.Provider != storage.ProviderS3 {
		t.Fatalf("serving = %+v, want S3 config", serving)
	}
	if store.Staging() != nil {
		t.Errorf("staging = %+v, want nil for S3 config", store.Staging())
	}
}

func TestProviderStore_SetAzureMirrorsStaging(t *testing.T) {
	store := NewProviderStore(newStubKV())

	if err := store.Set(context.Background(), azureConfig()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	serving := store.Serving()
	if serving == nil || serving.Provider != storage.ProviderAzure {
		t.Fatalf("serving = %+v, want Azure config", serving)
	}
	staging := store.Staging()
	if staging == nil || staging.Provider != storage.ProviderAzure {
		t.Fatalf("staging = %+v, want Azure config", staging)
	}
	if staging.Azure.Container != "assets" {
		t.Errorf("staging container = %q, want %q", staging.Azure.Container, "assets")
	}
}

func TestProviderStore_SetS3ClearsStaleStaging(t *testing.T) {
	store := NewProviderStore(newStubKV())

	if err := store.Set(context.Background(), azureConfig()); err != nil {
		t.Fatalf("Set azure: %v", err)
	}
	if err := store.Set(context.Background(), s3Config()); err != nil {
		t.Fatalf("Set s3: %v", err)
	}

	if store.Staging() != nil {
		t.Errorf("staging = %+v, want nil after switching to S3", store.Staging())
	}
}

func TestProviderStore_SetRejectsInvalidConfig(t *testing.T) {
	store := NewProviderStore(newStubKV())

	invalid := &storage.ProviderConfig{Provider: storage.ProviderS3, S3: &storage.S3Config{Bucket: "b"}}
	if err := store.Set(context.Background(), invalid); err == nil {
		t.Fatal("expected validation error")
	}
	if store.Serving() != nil {
		t.Error("invalid config must not become the serving slot")
	}
}

func TestProviderStore_ClearRemovesBothSlots(t *testing.T) {
	store := NewProviderStore(newStubKV())

	if err := store.Set(context.Background(), azureConfig()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if store.Serving() != nil {
		t.Error("serving slot survived Clear")
	}
	if store.Staging() != nil {
		t.Error("staging slot survived Clear")
	}
}

func TestProviderStore_LoadReadsPersistedSlots(t *testing.T) {
	kv := newStubKV()
	first := NewProviderStore(kv)
	if err := first.Set(context.Background(), azureConfig()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh store over the same rows sees the persisted configuration.
	second := NewProviderStore(kv)
	if second.Serving() != nil {
		t.Fatal("snapshot populated before Load")
	}
	if err := second.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if second.Serving() == nil || second.Serving().Provider != storage.ProviderAzure {
		t.Errorf("serving = %+v, want Azure config", second.Serving())
	}
}
