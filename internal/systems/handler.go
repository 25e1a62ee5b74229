package systems

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/uigate/service/internal/response"
	"github.com/uigate/service/internal/storage"
)

// Handler holds HTTP handlers for the storage-provider admin API.
type Handler struct {
	store *ProviderStore
}

// NewHandler creates a new systems Handler.
func NewHandler(store *ProviderStore) *Handler {
	return &Handler{store: store}
}

// GetStorageProvider godoc
//
//	@Summary		Get storage provider configuration
//	@Description	Returns the serving-slot storage provider configuration, or null when none is configured.
//	@Tags			systems
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	storage.ProviderConfig
//	@Router			/systems/storage-provider [get]
func (h *Handler) GetStorageProvider(w http.ResponseWriter, r *http.Request) {
	cfg := h.store.Serving()
	if cfg == nil {
		response.JSON(w, http.StatusOK, nil)
		return
	}
	response.JSON(w, http.StatusOK, cfg)
}

// PutStorageProvider godoc
//
//	@Summary		Replace storage provider configuration
//	@Description	Persists the given provider configuration as the serving slot (and, for Azure, the staging slot), reloads it, and echoes the stored value.
//	@Tags			systems
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			config	body		storage.ProviderConfig	true	"Provider configuration"
//	@Success		200		{object}	storage.ProviderConfig
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/systems/storage-provider [put]
func (h *Handler) PutStorageProvider(w http.ResponseWriter, r *http.Request) {
	var cfg storage.ProviderConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		response.BadRequest(w, "invalid provider config")
		return
	}
	if err := cfg.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.store.Set(r.Context(), &cfg); err != nil {
		log.Printf("systems: set storage provider: %v", err)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, h.store.Serving())
}

// DeleteStorageProvider godoc
//
//	@Summary		Clear storage provider configuration
//	@Description	Removes both provider slots; subsequent uploads and asset requests fail with a not-configured error.
//	@Tags			systems
//	@Security		BearerAuth
//	@Success		204
//	@Failure		500	{object}	response.Envelope
//	@Router			/systems/storage-provider [delete]
func (h *Handler) DeleteStorageProvider(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		log.Printf("systems: clear storage provider: %v", err)
		response.InternalError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
