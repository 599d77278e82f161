// Package token inspects the platform's bearer tokens on the client
// side. The backend issues JWT access tokens; the client never verifies
// signatures (it holds no keys and the server is the source of truth
// for authorization), but it can read the claims to refresh a session
// before the server starts answering 401.
package token

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/jrsteele09/go-commerce-client/internal/utils"
)

// Introspection represents the metadata read out of a bearer token.
// The 'active' field indicates whether the token looks usable - if it's
// false, other fields may not be populated.
type Introspection struct {
	Active bool    `json:"active"`           // True or false - does the token look usable
	Exp    *int64  `json:"exp,omitempty"`    // Expiration
	Iat    *int64  `json:"iat,omitempty"`    // Issued at time
	Iss    *string `json:"iss,omitempty"`    // Issuer of the token
	Sub    *string `json:"sub,omitempty"`    // Users unique ID
	Tenant string  `json:"tenant,omitempty"` // Tenant the token was issued for
}

// Inspector reads claims from bearer tokens without verifying them.
type Inspector struct {
	nowFunc func() time.Time
}

// InspectorOption defines a function type to modify the Inspector instance.
type InspectorOption func(*Inspector)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) InspectorOption {
	return func(i *Inspector) {
		i.nowFunc = now
	}
}

// NewInspector creates a new token inspector
func NewInspector(options ...InspectorOption) *Inspector {
	inspector := &Inspector{nowFunc: time.Now}
	for _, opt := range options {
		opt(inspector)
	}
	return inspector
}

// Introspect extracts claims from a bearer token. An empty or
// unparseable token introspects as inactive rather than failing, so
// callers can treat "no usable token" as one condition. Opaque
// (non-JWT) tokens also introspect as inactive with no claims; the
// request should still be attempted, the server decides.
func (i *Inspector) Introspect(rawToken string) (*Introspection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return &Introspection{Active: false}, nil
	}

	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return &Introspection{Active: false}, nil
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return &Introspection{Active: false}, errors.New("error extracting claims")
	}

	iss, _ := claims["iss"].(string)
	sub, _ := claims["sub"].(string)
	tenantClaim, _ := claims["tenant"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	iatInt := int64(iat)
	expInt := int64(exp)

	active := true
	if expInt > 0 && i.nowFunc().Unix() > expInt {
		active = false
	}

	return &Introspection{
		Active: active,
		Exp:    utils.Ptr(expInt),
		Iat:    utils.Ptr(iatInt),
		Iss:    utils.Ptr(iss),
		Sub:    utils.Ptr(sub),
		Tenant: tenantClaim,
	}, nil
}

// Expired reports whether rawToken carries an exp claim in the past.
// Tokens without a readable exp claim are never reported expired - the
// server gets the final say on those.
func (i *Inspector) Expired(rawToken string) bool {
	introspection, err := i.Introspect(rawToken)
	if err != nil {
		return false
	}
	if introspection.Active {
		return false
	}
	return utils.Value(introspection.Exp) > 0
}
