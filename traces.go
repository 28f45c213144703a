package evalforge

import (
	"context"
	"fmt"
	"net/url"
)

// TracesClient handles trace ingestion and retrieval.
type TracesClient struct {
	client *Client
}

// TracesListParams represents parameters for listing traces.
type TracesListParams struct {
	// Limit is the page size. Defaults to DefaultListLimit.
	Limit int
	// Offset is the starting offset. Defaults to 0.
	Offset int
	// Name filters traces by name, when set.
	Name string
}

// List returns a lazy iterator over traces.
func (c *TracesClient) List(params *TracesListParams) (*Iterator[Trace], error) {
	limit, offset := DefaultListLimit, 0
	filters := url.Values{}
	if params != nil {
		if params.Limit != 0 {
			limit = params.Limit
		}
		offset = params.Offset
		if params.Name != "" {
			filters.Set("name", params.Name)
		}
	}

	fetch := func(ctx context.Context, limit, offset int) ([]Trace, int, error) {
		var res listResponse[Trace]
		q := mergeQuery(pageQuery(limit, offset), filters)
		if err := c.client.http.get(ctx, "/traces", q, &res); err != nil {
			return nil, 0, err
		}
		return res.Data, res.Pagination.total(), nil
	}

	return NewIterator(fetch, limit, offset)
}

// Get retrieves a trace by ID.
func (c *TracesClient) Get(ctx context.Context, traceID string) (*Trace, error) {
	if traceID == "" {
		return nil, NewValidationError("traceID", "trace ID is required")
	}

	var result Trace
	if err := c.client.http.get(ctx, fmt.Sprintf("/traces/%s", url.PathEscape(traceID)), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// submitTracesRequest is the wire shape of a batch trace submission.
type submitTracesRequest struct {
	Traces []Trace `json:"traces"`
}

// Submit posts a batch of traces in one request.
func (c *TracesClient) Submit(ctx context.Context, traces []Trace) error {
	if len(traces) == 0 {
		return NewValidationError("traces", "batch must not be empty")
	}
	return c.client.http.post(ctx, "/traces/batch", &submitTracesRequest{Traces: traces}, nil)
}
