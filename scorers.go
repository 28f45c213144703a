package evalforge

import (
	"context"
	"fmt"
	"net/url"
)

// ScorersClient handles scorer-related API operations.
type ScorersClient struct {
	client *Client
}

// ScorersListParams represents parameters for listing scorers.
type ScorersListParams struct {
	// Limit is the page size. Defaults to DefaultListLimit.
	Limit int
	// Offset is the starting offset. Defaults to 0.
	Offset int
}

// List returns a lazy iterator over the scorers available to the project.
func (c *ScorersClient) List(params *ScorersListParams) (*Iterator[Scorer], error) {
	limit, offset := DefaultListLimit, 0
	if params != nil {
		if params.Limit != 0 {
			limit = params.Limit
		}
		offset = params.Offset
	}

	fetch := func(ctx context.Context, limit, offset int) ([]Scorer, int, error) {
		var res listResponse[Scorer]
		if err := c.client.http.get(ctx, "/scorers", pageQuery(limit, offset), &res); err != nil {
			return nil, 0, err
		}
		return res.Data, res.Pagination.total(), nil
	}

	return NewIterator(fetch, limit, offset)
}

// Get retrieves a scorer by ID.
func (c *ScorersClient) Get(ctx context.Context, scorerID string) (*Scorer, error) {
	if scorerID == "" {
		return nil, NewValidationError("scorerID", "scorer ID is required")
	}

	var result Scorer
	if err := c.client.http.get(ctx, fmt.Sprintf("/scorers/%s", url.PathEscape(scorerID)), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
