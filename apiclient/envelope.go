package apiclient

import "encoding/json"

// Envelope is the uniform response shape every backend endpoint
// returns, on success and on failure alike. The dispatcher checks the
// HTTP status and hands the envelope through untouched; Data stays raw
// so the caller decodes it into whatever the endpoint returns.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination carries the paging metadata list endpoints attach to
// their envelopes.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// DecodeData unmarshals the envelope's data payload into v.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}
