package tenant

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDomainResolver_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		baseDomain string
		host       string
		want       string
	}{
		{"subdomain maps to tenant", "assets.example.com", "acme.assets.example.com", "acme"},
		{"bare base domain is default", "assets.example.com", "assets.example.com", DefaultTenantID},
		{"port is stripped", "assets.example.com", "acme.assets.example.com:8080", "acme"},
		{"no base domain means default", "", "anything.example.com", DefaultTenantID},
		{"foreign host is unresolved", "assets.example.com", "evil.example.org", ""},
		{"nested subdomain is unresolved", "assets.example.com", "a.b.assets.example.com", ""},
		{"suffix lookalike is unresolved", "assets.example.com", "notassets.example.com", ""},
		{"admin subdomain resolves", "assets.example.com", "admin.assets.example.com", AdminTenantID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &DomainResolver{BaseDomain: tt.baseDomain}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			if got := r.Resolve(req); got != tt.want {
				t.Errorf("Resolve(host=%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}
