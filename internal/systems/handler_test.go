package systems

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/uigate/service/internal/storage"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(NewProviderStore(newStubKV()))
}

func TestHandler_GetReturnsNullWhenUnconfigured(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetStorageProvider(rec, httptest.NewRequest(http.MethodGet, "/systems/storage-provider", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "null" {
		t.Errorf("body = %q, want null", body)
	}
}

func TestHandler_PutEchoesStoredConfig(t *testing.T) {
	h := newTestHandler(t)

	body := `{"provider":"S3Storage","bucket":"assets","accessKeyId":"ak","accessSecretKey":"sk","region":"us-east-1"}`
	rec := httptest.NewRecorder()
	h.PutStorageProvider(rec, httptest.NewRequest(http.MethodPut, "/systems/storage-provider", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var stored storage.ProviderConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stored.Provider != storage.ProviderS3 || stored.S3 == nil || stored.S3.Bucket != "assets" {
		t.Errorf("stored = %+v, want the submitted S3 config", stored)
	}
}

func TestHandler_PutRejectsInvalidConfig(t *testing.T) {
	h := newTestHandler(t)

	body := `{"provider":"S3Storage","bucket":"assets"}`
	rec := httptest.NewRecorder()
	h.PutStorageProvider(rec, httptest.NewRequest(http.MethodPut, "/systems/storage-provider", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_DeleteClearsConfiguration(t *testing.T) {
	store := NewProviderStore(newStubKV())
	if err := store.Set(context.Background(), azureConfig()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	h := NewHandler(store)

	rec := httptest.NewRecorder()
	h.DeleteStorageProvider(rec, httptest.NewRequest(http.MethodDelete, "/systems/storage-provider", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if store.Serving() != nil || store.Staging() != nil {
		t.Error("slots survived DELETE")
	}
}
