package apiclient

import (
	"context"
	"net/http"
	"time"
)

// Hooks provides lifecycle observers for requests. Hosts attach
// tracing or metrics here without wrapping the client. Nil functions
// are skipped.
type Hooks struct {
	// OnRequest runs after headers are built, before the call goes out.
	OnRequest func(ctx context.Context, req *http.Request)

	// OnResponse runs once an HTTP response arrives, before the body is
	// decoded. It does not run on network failure.
	OnResponse func(ctx context.Context, resp *http.Response, duration time.Duration)

	// OnError runs for every failure the dispatcher raises.
	OnError func(ctx context.Context, err error)
}

func (h Hooks) request(ctx context.Context, req *http.Request) {
	if h.OnRequest != nil {
		h.OnRequest(ctx, req)
	}
}

func (h Hooks) response(ctx context.Context, resp *http.Response, duration time.Duration) {
	if h.OnResponse != nil {
		h.OnResponse(ctx, resp, duration)
	}
}

func (h Hooks) failure(ctx context.Context, err error) {
	if h.OnError != nil {
		h.OnError(ctx, err)
	}
}
