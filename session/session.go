package session

import (
	"encoding/json"
	"time"
)

// Well-known key names for the persisted session fields. Every storage
// backend files the fields under these names so that any client build
// finds the state a previous one left behind.
const (
	KeyToken        = "commerce.token"
	KeyRefreshToken = "commerce.refresh_token"
	KeyUserProfile  = "commerce.user_profile"
)

// Data is the authenticated state of one client: the bearer token sent
// on every request, the refresh token used to obtain a replacement
// pair, and the user profile blob the backend returned at login. The
// profile is opaque to this layer — it is cached for the host
// application, never interpreted.
type Data struct {
	Token        string          `json:"commerce.token"`
	RefreshToken string          `json:"commerce.refresh_token"`
	UserProfile  json.RawMessage `json:"commerce.user_profile,omitempty"`
	CreatedAt    time.Time       `json:"commerce.created_at"`
}

// Empty reports whether the session carries no credentials.
func (d Data) Empty() bool {
	return d.Token == "" && d.RefreshToken == ""
}
