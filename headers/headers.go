// Package headers builds the request header set for commerce API calls.
// Building headers is a pure computation: the same config always produces
// the same map, nothing is read from ambient state.
package headers

// Header names used across the commerce API.
const (
	ContentType   = "Content-Type"
	Authorization = "Authorization"
	CSRFToken     = "X-CSRF-Token"
	RequestID     = "X-Request-ID"
)

const bearerPrefix = "Bearer "

// Config holds the optional inputs for building a header set.
// Zero values are valid: an empty config produces just the JSON
// content type.
type Config struct {
	AuthToken string // Bearer token, omitted from the output when empty
	CSRFToken string // CSRF defence token, omitted from the output when empty
	Extra     map[string]string
}

// Build composes the headers for an outgoing request. The result always
// contains Content-Type: application/json. Authorization and the CSRF
// header are only present when their tokens are supplied — an absent
// token means an absent header, never an empty one. Extra entries win
// on key collision.
func Build(cfg Config) map[string]string {
	h := map[string]string{
		ContentType: "application/json",
	}
	if cfg.AuthToken != "" {
		h[Authorization] = bearerPrefix + cfg.AuthToken
	}
	if cfg.CSRFToken != "" {
		h[CSRFToken] = cfg.CSRFToken
	}
	for k, v := range cfg.Extra {
		h[k] = v
	}
	return h
}
