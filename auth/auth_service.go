// Package auth owns the session lifecycle against the backend: a
// session is created from a successful login response, renewed from a
// refresh response, and destroyed on logout.
package auth

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-commerce-client/apiclient"
	"github.com/jrsteele09/go-commerce-client/endpoints"
	interrors "github.com/jrsteele09/go-commerce-client/internal/errors"
	"github.com/jrsteele09/go-commerce-client/session"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResult is the data payload of the login and refresh envelopes.
type loginResult struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         json.RawMessage `json:"user,omitempty"`
}

// Service drives login, logout, and token refresh, keeping the session
// store in step with what the backend issued.
type Service struct {
	client   *apiclient.Client
	sessions session.Provider
}

// NewService creates an auth service over the given dispatcher and
// session store. The dispatcher should share the same session provider
// so requests issued after Login carry the new token.
func NewService(client *apiclient.Client, sessions session.Provider) (*Service, error) {
	if client == nil {
		return nil, errors.New("[auth.NewService] client is required")
	}
	if sessions == nil {
		return nil, errors.New("[auth.NewService] sessions is required")
	}
	return &Service{client: client, sessions: sessions}, nil
}

// Login authenticates against the backend and installs the returned
// token pair and user profile as the current session. The previous
// session, if any, is only replaced once the backend has answered
// successfully.
func (s *Service) Login(ctx context.Context, creds Credentials) error {
	envelope, err := s.client.Post(ctx, endpoints.AuthLogin, creds)
	if err != nil {
		return err
	}

	result, err := decodeLoginResult(envelope)
	if err != nil {
		return err
	}

	if err := s.sessions.SetSession(result.Token, result.RefreshToken, result.User); err != nil {
		// Session is active in memory, only persistence failed
		return err
	}
	return nil
}

// Logout tells the backend to invalidate the session and clears the
// local one. The local session is cleared even when the backend call
// fails - a client that cannot reach the server must still be able to
// log out locally.
func (s *Service) Logout(ctx context.Context) error {
	_, requestErr := s.client.Post(ctx, endpoints.AuthLogout, nil)
	clearErr := s.sessions.ClearSession()
	if requestErr != nil {
		return requestErr
	}
	return clearErr
}

// Refresh exchanges the stored refresh token for a new token pair and
// installs it. Callers typically invoke this when token introspection
// reports the access token near expiry, or after a 401.
func (s *Service) Refresh(ctx context.Context) error {
	refreshToken := s.sessions.RefreshToken()
	if refreshToken == "" {
		return interrors.ErrNoSession
	}

	envelope, err := s.client.Post(ctx, endpoints.AuthRefresh, map[string]string{
		"refreshToken": refreshToken,
	})
	if err != nil {
		return err
	}

	result, err := decodeLoginResult(envelope)
	if err != nil {
		return err
	}

	profile := result.User
	if profile == nil {
		// Refresh responses may omit the profile; keep the cached one
		profile = s.sessions.UserProfile()
	}
	return s.sessions.SetSession(result.Token, result.RefreshToken, profile)
}

func decodeLoginResult(envelope *apiclient.Envelope) (*loginResult, error) {
	var result loginResult
	if err := envelope.DecodeData(&result); err != nil {
		return nil, interrors.Wrapf(interrors.ErrMalformedBody, "decode auth payload: %v", err)
	}
	if result.Token == "" {
		return nil, interrors.Wrapf(interrors.ErrInvalidToken, "auth response carried no token")
	}
	return &result, nil
}
