// Package tenant resolves which tenant an inbound request belongs to.
// The gateway treats tenant resolution as a collaborator; this is the
// minimal host-based implementation.
package tenant

import (
	"net"
	"net/http"
	"strings"
)

// AdminTenantID is the reserved tenant of the platform's own console.
// Custom UI uploads are rejected for it.
const AdminTenantID = "admin"

// DefaultTenantID is used when the request host carries no tenant subdomain.
const DefaultTenantID = "default"

// Resolver maps an inbound request to a tenant identifier. An empty result
// means the tenant could not be determined.
type Resolver interface {
	Resolve(r *http.Request) string
}

// DomainResolver resolves the tenant from the first label of the request
// host under a configured base domain: "acme.assets.example.com" with base
// "assets.example.com" yields "acme". The bare base domain, or any host when
// no base domain is configured, maps to the default tenant.
type DomainResolver struct {
	BaseDomain string
}

// Resolve implements Resolver.
func (d *DomainResolver) Resolve(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	if d.BaseDomain == "" || host == d.BaseDomain {
		return DefaultTenantID
	}

	suffix := "." + d.BaseDomain
	if !strings.HasSuffix(host, suffix) {
		return ""
	}
	sub := strings.TrimSuffix(host, suffix)
	if sub == "" || strings.Contains(sub, ".") {
		return ""
	}
	return sub
}
