package assets

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/uigate/service/internal/response"
	"github.com/uigate/service/internal/tenant"
)

// allowedZipContentTypes lists the MIME types browsers send for ZIP files;
// a .zip filename is accepted regardless of the reported type.
var allowedZipContentTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/x-zip":            true,
	"application/octet-stream":     true,
}

// UploadResponse is the success payload of the upload endpoint.
type UploadResponse struct {
	CustomUIAssetID string `json:"customUiAssetId"`
}

// Handler exposes the custom-UI asset upload endpoint.
type Handler struct {
	svc      *Service
	resolver tenant.Resolver
}

// NewHandler creates a new upload Handler.
func NewHandler(svc *Service, resolver tenant.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

// Upload godoc
//
//	@Summary		Upload a custom UI asset bundle
//	@Description	Accepts a ZIP of static web assets (max 8 MiB) and stores its contents behind the configured storage provider. Returns the generated asset identifier.
//	@Tags			custom-ui-assets
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"ZIP bundle of static assets"
//	@Success		200		{object}	UploadResponse
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Failure		501		{object}	response.Envelope
//	@Router			/sign-in-exp/default/custom-ui-assets [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	tenantID := h.resolver.Resolve(r)
	if tenantID == "" {
		response.NotFound(w, "tenant not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "missing file")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		response.BadRequest(w, "file size exceeded")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !isZipUpload(contentType, header.Filename) {
		response.BadRequest(w, "only zip files are allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		log.Printf("assets: read upload: %v", err)
		response.InternalError(w)
		return
	}
	if len(data) > maxUploadSize {
		response.BadRequest(w, "file size exceeded")
		return
	}

	assetID, err := h.svc.Upload(r.Context(), tenantID, data, contentType)
	if err != nil {
		log.Printf("assets: upload for tenant %q: %v", tenantID, err)
		switch {
		case errors.Is(err, ErrNotConfigured):
			response.Error(w, http.StatusNotImplemented, "storage provider not configured")
		case errors.Is(err, ErrAdminTenant):
			response.BadRequest(w, "not allowed for the admin tenant")
		default:
			response.Error(w, http.StatusInternalServerError, "storage upload error: "+err.Error())
		}
		return
	}

	response.JSON(w, http.StatusOK, UploadResponse{CustomUIAssetID: assetID})
}

// isZipUpload accepts the known ZIP MIME types or a .zip filename; browsers
// and operating systems disagree on which type they report.
func isZipUpload(contentType, filename string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	if allowedZipContentTypes[strings.ToLower(strings.TrimSpace(mediaType))] {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".zip")
}
