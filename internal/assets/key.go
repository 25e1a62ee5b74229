// Package assets implements custom-UI asset handling: archive extraction,
// the two upload-processing strategies, and the HTTP surfaces for uploading
// and serving asset files.
package assets

import "strings"

// indexDocument is the single-page-app entry point served for navigation
// requests.
const indexDocument = "index.html"

// IsFileAssetPath reports whether the final segment of a request path names
// a file, i.e. contains a dot. Extensionless paths are SPA navigation and
// resolve to index.html.
func IsFileAssetPath(path string) bool {
	segments := strings.Split(path, "/")
	return strings.Contains(segments[len(segments)-1], ".")
}

// ObjectKey maps (tenant, asset, relative path) to the flat storage key
// "tenantID/assetID/relPath".
func ObjectKey(tenantID, assetID, relPath string) string {
	return tenantID + "/" + assetID + "/" + strings.TrimPrefix(relPath, "/")
}

// resolveObjectKey turns a request path into the object key that serves it:
// the literal path for file requests, the index document otherwise.
func resolveObjectKey(tenantID, assetID, requestPath string) string {
	if IsFileAssetPath(requestPath) {
		return ObjectKey(tenantID, assetID, requestPath)
	}
	return ObjectKey(tenantID, assetID, indexDocument)
}
