// Package endpoints is the registry of backend route paths.
// All API paths are defined here to ensure consistency and prevent
// typos - one update point exists per backend route change.
package endpoints

import "net/url"

const apiPrefix = "/api/v1"

// Resource is a conventional REST collection: the collection path for
// list/create, the item path for read/update/delete.
type Resource struct {
	base string
}

// List returns the collection path.
func (r Resource) List() string {
	return r.base
}

// ByID returns the item path for id. The id is path-escaped, so
// backend-issued identifiers with reserved characters still resolve to
// one path segment.
func (r Resource) ByID(id string) string {
	return r.base + "/" + url.PathEscape(id)
}

// Platform resources
var (
	Orders         = Resource{apiPrefix + "/orders"}
	Carts          = Resource{apiPrefix + "/carts"}
	Coupons        = Resource{apiPrefix + "/coupons"}
	Platforms      = Resource{apiPrefix + "/platforms"}
	Options        = Resource{apiPrefix + "/options"}
	PaymentMethods = Resource{apiPrefix + "/payment-methods"}
	Wallets        = Resource{apiPrefix + "/wallets"}
	Favorites      = Resource{apiPrefix + "/favorites"}
)

// Auth and account routes
const (
	AuthLogin   = apiPrefix + "/auth/login"
	AuthLogout  = apiPrefix + "/auth/logout"
	AuthRefresh = apiPrefix + "/auth/refresh"
	UserProfile = apiPrefix + "/users/me"
)
