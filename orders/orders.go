// Package orders is a typed view over the orders endpoints. It decodes
// the envelope's data payload; order validity and state transitions are
// the backend's business.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-commerce-client/apiclient"
	"github.com/jrsteele09/go-commerce-client/endpoints"
	interrors "github.com/jrsteele09/go-commerce-client/internal/errors"
)

// Order is the platform's order record as the list and item endpoints
// return it. Items stays raw: line-item shape varies per platform.
type Order struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Total     float64         `json:"total"`
	Currency  string          `json:"currency"`
	Items     json.RawMessage `json:"items,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListResult pairs a page of orders with the envelope's paging metadata.
type ListResult struct {
	Orders     []Order
	Pagination *apiclient.Pagination
}

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[orders.NewService] client is required")
	}
	return &Service{client: client}, nil
}

// List fetches one page of orders. Page numbering starts at 1; a page
// of 0 lets the backend apply its default.
func (s *Service) List(ctx context.Context, page int) (*ListResult, error) {
	path := endpoints.Orders.List()
	if page > 0 {
		path = fmt.Sprintf("%s?page=%d", path, page)
	}

	envelope, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var records []Order
	if err := envelope.DecodeData(&records); err != nil {
		return nil, interrors.Wrapf(interrors.ErrMalformedBody, "decode orders payload: %v", err)
	}

	return &ListResult{Orders: records, Pagination: envelope.Pagination}, nil
}

// Get fetches a single order by its ID.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, errors.New("[orders.Get] id is required")
	}

	envelope, err := s.client.Get(ctx, endpoints.Orders.ByID(id))
	if err != nil {
		return nil, err
	}

	var record Order
	if err := envelope.DecodeData(&record); err != nil {
		return nil, interrors.Wrapf(interrors.ErrMalformedBody, "decode order payload: %v", err)
	}
	return &record, nil
}
