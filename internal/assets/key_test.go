package assets

import "testing"

func TestIsFileAssetPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/index.html", true},
		{"/static/css/main.css", true},
		{"/favicon.ico", true},
		{"/", false},
		{"/dashboard", false},
		{"/settings/profile", false},
		{"/v1.2/download", false},
		{"/v1.2/release.notes", true},
	}

	for _, tt := range tests {
		if got := IsFileAssetPath(tt.path); got != tt.want {
			t.Errorf("IsFileAssetPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestObjectKey(t *testing.T) {
	if got := ObjectKey("t1", "a1", "/static/app.js"); got != "t1/a1/static/app.js" {
		t.Errorf("ObjectKey = %q", got)
	}
	if got := ObjectKey("t1", "a1", "assets.zip"); got != "t1/a1/assets.zip" {
		t.Errorf("ObjectKey = %q", got)
	}
}

func TestResolveObjectKey(t *testing.T) {
	// Dotted final segment: serve the literal path.
	if got := resolveObjectKey("t1", "a1", "/static/app.js"); got != "t1/a1/static/app.js" {
		t.Errorf("file request key = %q", got)
	}
	// Extensionless paths fall back to index.html at any depth.
	for _, path := range []string{"/", "/dashboard", "/deeply/nested/route"} {
		if got := resolveObjectKey("t1", "a1", path); got != "t1/a1/index.html" {
			t.Errorf("resolveObjectKey(%q) = %q, want index.html key", path, got)
		}
	}
}
