package assets

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/uigate/service/internal/response"
	"github.com/uigate/service/internal/storage"
	"github.com/uigate/service/internal/tenant"
)

const (
	// cacheControlImmutable is sent for file-asset requests; hashed asset
	// files never change under the same key.
	cacheControlImmutable = "max-age=604800, immutable"

	// cacheControlNoStore is sent for navigation requests so SPA clients
	// never hold on to a stale index.html.
	cacheControlNoStore = "no-cache, no-store, must-revalidate"
)

// Server serves stored custom-UI asset files with range, caching, and
// content-type semantics. It reads only the serving slot; every request is a
// live backend round trip.
type Server struct {
	providers ProviderSource
	resolver  tenant.Resolver
	build     buildStorageFunc
}

// NewServer creates an asset Server.
func NewServer(providers ProviderSource, resolver tenant.Resolver) *Server {
	return &Server{providers: providers, resolver: resolver, build: storage.Build}
}

// HandleAsset adapts Serve to a chi route with an assetId parameter and a
// wildcard request path.
func (s *Server) HandleAsset(w http.ResponseWriter, r *http.Request) {
	s.Serve(w, r, chi.URLParam(r, "assetId"), "/"+chi.URLParam(r, "*"))
}

// Serve handles one asset request. The request path is classified as a file
// asset (dotted final segment, long-lived caching) or SPA navigation
// (rewritten to index.html, no caching); a single-range Range header is
// honored with a 206 response.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, assetID, requestPath string) {
	tenantID := s.resolver.Resolve(r)
	if tenantID == "" {
		response.NotFound(w, "tenant not found")
		return
	}

	isFileAsset := IsFileAssetPath(requestPath)
	objectKey := resolveObjectKey(tenantID, assetID, requestPath)

	contentRange, err := ParseRange(r.Header.Get("Range"))
	if err != nil {
		response.Error(w, http.StatusRequestedRangeNotSatisfiable, "range not satisfiable")
		return
	}

	cfg := s.providers.Serving()
	if cfg == nil {
		response.Error(w, http.StatusNotImplemented, "storage provider not configured")
		return
	}
	store, err := s.build(cfg)
	if err != nil {
		log.Printf("assets: build storage: %v", err)
		response.InternalError(w)
		return
	}

	exists, err := store.Exists(r.Context(), objectKey)
	if err != nil {
		log.Printf("assets: check %q: %v", objectKey, err)
		response.InternalError(w)
		return
	}
	if !exists {
		response.NotFound(w, "asset not found")
		return
	}

	var byteRange *storage.ByteRange
	if contentRange != nil {
		byteRange = &storage.ByteRange{Offset: contentRange.Start, Count: contentRange.Count}
	}

	// Body and total size come from separate backend calls; fetch them
	// concurrently.
	var (
		res   *storage.DownloadResult
		props *storage.Properties
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		res, err = store.Download(gctx, objectKey, byteRange)
		return err
	})
	g.Go(func() error {
		var err error
		props, err = store.Properties(gctx, objectKey)
		return err
	})
	if err := g.Wait(); err != nil {
		if res != nil && res.Body != nil {
			res.Body.Close()
		}
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(w, "asset not found")
			return
		}
		log.Printf("assets: fetch %q: %v", objectKey, err)
		response.InternalError(w)
		return
	}
	defer res.Body.Close()

	contentType := res.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	cacheControl := cacheControlNoStore
	if isFileAsset {
		cacheControl = cacheControlImmutable
	}
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(res.ContentLength, 10))

	status := http.StatusOK
	if contentRange != nil {
		status = http.StatusPartialContent
		end := contentRange.End
		if end < 0 {
			end = max(props.ContentLength-1, 0)
		}
		w.Header().Set("Accept-Ranges", "bytes")
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", contentRange.Start, end, props.ContentLength))
	}
	w.WriteHeader(status)

	if _, err := io.Copy(w, res.Body); err != nil {
		log.Printf("assets: stream %q: %v", objectKey, err)
	}
}
