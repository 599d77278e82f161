package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-commerce-client/apiclient"
	"github.com/jrsteele09/go-commerce-client/endpoints"
	"github.com/jrsteele09/go-commerce-client/internal/errors"
	"github.com/jrsteele09/go-commerce-client/session"
	fakesessionrepo "github.com/jrsteele09/go-commerce-client/session/repofakes"
)

// testFixture holds the backend double and the client under test
type testFixture struct {
	server   *httptest.Server
	client   *apiclient.Client
	sessions *session.Store

	// captured holds the last request the backend double received
	captured *http.Request
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	token         string
	clientOptions []apiclient.Option
}

func withToken(token string) fixtureOption {
	return func(fc *fixtureConfig) {
		fc.token = token
	}
}

func withClientOptions(options ...apiclient.Option) fixtureOption {
	return func(fc *fixtureConfig) {
		fc.clientOptions = append(fc.clientOptions, options...)
	}
}

func setupTestFixture(t *testing.T, handler http.HandlerFunc, options ...fixtureOption) *testFixture {
	t.Helper()

	fc := &fixtureConfig{}
	for _, opt := range options {
		opt(fc)
	}

	fixture := &testFixture{}
	fixture.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured := r.Clone(r.Context())
		fixture.captured = captured
		handler(w, r)
	}))
	t.Cleanup(fixture.server.Close)

	store, err := session.NewStore(fakesessionrepo.NewFakeSessionRepo())
	require.NoError(t, err)
	if fc.token != "" {
		require.NoError(t, store.SetSession(fc.token, "refresh-1", nil))
	}
	fixture.sessions = store

	clientOptions := append([]apiclient.Option{apiclient.WithSessionProvider(store)}, fc.clientOptions...)
	client, err := apiclient.New(fixture.server.URL, clientOptions...)
	require.NoError(t, err)
	fixture.client = client

	return fixture
}

func respondJSON(t *testing.T, status int, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := apiclient.New("  ")
	require.Error(t, err)
}

func TestAuthorizationHeaderCarriesSessionToken(t *testing.T) {
	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusOK, `{"success":true,"data":[]}`),
		withToken("abc123"))

	envelope, err := fixture.client.Get(context.Background(), endpoints.Orders.List())
	require.NoError(t, err)

	require.Equal(t, "Bearer abc123", fixture.captured.Header.Get("Authorization"))
	require.Equal(t, "/api/v1/orders", fixture.captured.URL.Path)
	require.True(t, envelope.Success)
	require.JSONEq(t, `[]`, string(envelope.Data))
}

func TestAuthorizationHeaderAbsentWithoutSession(t *testing.T) {
	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusUnauthorized, `{"success":false,"message":"Unauthorized"}`))

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())

	_, present := fixture.captured.Header["Authorization"]
	require.False(t, present, "Authorization must be absent, not empty")

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Unauthorized", apiErr.Message)
	require.ErrorIs(t, err, errors.ErrAuthExpired)
}

func TestNoContentSynthesisesSuccess(t *testing.T) {
	fixture := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	envelope, err := fixture.client.Delete(context.Background(), endpoints.Favorites.ByID("fav-1"))
	require.NoError(t, err)
	require.Equal(t, &apiclient.Envelope{Success: true}, envelope)
}

func TestSuccessBodyPassesThroughUnmodified(t *testing.T) {
	body := `{"success":true,"message":"ok","data":{"id":"order-1","total":12.5},"pagination":{"page":2,"limit":10,"totalPages":5,"totalItems":42}}`
	fixture := setupTestFixture(t, respondJSON(t, http.StatusOK, body), withToken("abc123"))

	envelope, err := fixture.client.Get(context.Background(), endpoints.Orders.ByID("order-1"))
	require.NoError(t, err)

	remarshalled, marshalErr := json.Marshal(envelope)
	require.NoError(t, marshalErr)
	require.JSONEq(t, body, string(remarshalled))
	require.Equal(t, 2, envelope.Pagination.Page)
	require.Equal(t, 42, envelope.Pagination.TotalItems)
}

func TestHTTPFailureCarriesStatusAndMessage(t *testing.T) {
	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusUnprocessableEntity, `{"success":false,"message":"coupon not eligible"}`),
		withToken("abc123"))

	_, err := fixture.client.Post(context.Background(), endpoints.Coupons.List(), map[string]string{"code": "SAVE10"})

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apiclient.KindHTTP, apiErr.Kind)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Equal(t, "coupon not eligible", apiErr.Message)
	require.NotErrorIs(t, err, errors.ErrAuthExpired)
}

func TestHTTPFailureWithUnparseableBody(t *testing.T) {
	fixture := setupTestFixture(t, respondJSON(t, http.StatusBadGateway, "<html>bad gateway</html>"))

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Empty(t, apiErr.Message)
}

func TestUnauthorizedCarries401RegardlessOfBody(t *testing.T) {
	fixture := setupTestFixture(t, respondJSON(t, http.StatusUnauthorized, "not json at all"))

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.ErrorIs(t, err, errors.ErrAuthExpired)
}

func TestNetworkFailureIsDistinctFromHTTPFailure(t *testing.T) {
	fixture := setupTestFixture(t, respondJSON(t, http.StatusOK, `{"success":true}`))
	fixture.server.Close()

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apiclient.KindNetwork, apiErr.Kind)
	require.Zero(t, apiErr.Status)
	require.ErrorIs(t, err, errors.ErrNetwork)
	require.NotErrorIs(t, err, errors.ErrAuthExpired)
}

func TestMalformedSuccessBodyIsADecodeError(t *testing.T) {
	fixture := setupTestFixture(t, respondJSON(t, http.StatusOK, `{"success":`))

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apiclient.KindDecode, apiErr.Kind)
	require.ErrorIs(t, err, errors.ErrMalformedBody)
}

func TestCallerHeadersWinOnCollision(t *testing.T) {
	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusOK, `{"success":true}`),
		withToken("abc123"))

	_, err := fixture.client.Request(context.Background(), endpoints.Orders.List(), &apiclient.RequestOptions{
		Headers: map[string]string{
			"Authorization": "Bearer caller-token",
			"X-Tenant":      "tenant-1",
		},
	})
	require.NoError(t, err)

	require.Equal(t, "Bearer caller-token", fixture.captured.Header.Get("Authorization"))
	require.Equal(t, "tenant-1", fixture.captured.Header.Get("X-Tenant"))
}

func TestRequestBodyAndDefaultHeaders(t *testing.T) {
	fixture := setupTestFixture(t, respondJSON(t, http.StatusCreated, `{"success":true}`))

	_, err := fixture.client.Post(context.Background(), endpoints.Carts.List(), map[string]string{"productID": "prod-1"})
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, fixture.captured.Method)
	require.Equal(t, "application/json", fixture.captured.Header.Get("Content-Type"))
	require.NotEmpty(t, fixture.captured.Header.Get("X-Request-ID"))
}

func TestCSRFTokenProvider(t *testing.T) {
	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusOK, `{"success":true}`),
		withClientOptions(apiclient.WithCSRFTokenProvider(func() string { return "csrf-1" })))

	_, err := fixture.client.Post(context.Background(), endpoints.Carts.List(), nil)
	require.NoError(t, err)

	require.Equal(t, "csrf-1", fixture.captured.Header.Get("X-CSRF-Token"))
}

func TestDefault401PolicyKeepsSession(t *testing.T) {
	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusUnauthorized, `{"success":false,"message":"Unauthorized"}`),
		withToken("abc123"))

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())
	require.ErrorIs(t, err, errors.ErrAuthExpired)

	require.Equal(t, "abc123", fixture.sessions.Token(), "surface-only policy must not touch the session")
}

func TestClearSessionOn401Policy(t *testing.T) {
	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusUnauthorized, `{"success":false,"message":"Unauthorized"}`),
		withToken("abc123"),
		withClientOptions(apiclient.WithClearSessionOn401(true)))

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())
	require.ErrorIs(t, err, errors.ErrAuthExpired)

	require.Empty(t, fixture.sessions.Token())
}

func TestHooksObserveTheRoundTrip(t *testing.T) {
	var sawRequest, sawResponse bool
	hooks := apiclient.Hooks{
		OnRequest: func(ctx context.Context, req *http.Request) {
			sawRequest = true
		},
		OnResponse: func(ctx context.Context, resp *http.Response, duration time.Duration) {
			sawResponse = true
			require.Equal(t, http.StatusOK, resp.StatusCode)
		},
	}

	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusOK, `{"success":true}`),
		withClientOptions(apiclient.WithHooks(hooks)))

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())
	require.NoError(t, err)
	require.True(t, sawRequest)
	require.True(t, sawResponse)
}

func TestOnErrorHookSeesFailures(t *testing.T) {
	var hookErr error
	hooks := apiclient.Hooks{
		OnError: func(ctx context.Context, err error) {
			hookErr = err
		},
	}

	fixture := setupTestFixture(t,
		respondJSON(t, http.StatusInternalServerError, `{"success":false,"message":"boom"}`),
		withClientOptions(apiclient.WithHooks(hooks)))

	_, err := fixture.client.Get(context.Background(), endpoints.Orders.List())
	require.Error(t, err)
	require.Equal(t, err, hookErr)
}

func TestEmptySuccessBodySynthesisesSuccess(t *testing.T) {
	fixture := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	envelope, err := fixture.client.Get(context.Background(), endpoints.Platforms.List())
	require.NoError(t, err)
	require.True(t, envelope.Success)
}
