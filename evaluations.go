package evalforge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// EvaluationsClient handles evaluation scoring and retrieval.
type EvaluationsClient struct {
	client *Client
}

// ScoreRequest represents a request to score one agent output against a
// dataset item.
type ScoreRequest struct {
	ItemID   string       `json:"item_id"`
	Output   string       `json:"agent_output"`
	Scorers  []ScorerSpec `json:"scorers"`
	Metadata Metadata     `json:"metadata,omitempty"`
}

func (r *ScoreRequest) validate() error {
	if r == nil {
		return ErrNilRequest
	}
	if r.ItemID == "" {
		return NewValidationError("item_id", "item ID is required")
	}
	if len(r.Scorers) == 0 {
		return NewValidationError("scorers", "at least one scorer is required")
	}
	return nil
}

// Score submits one output for evaluation and returns the server's verdict.
func (c *EvaluationsClient) Score(ctx context.Context, req *ScoreRequest) (*EvaluationResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var result EvaluationResult
	if err := c.client.http.post(ctx, "/evaluations/score", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ScoreBatchRequest represents a batch scoring request. Parallelism is a
// hint to the server; the exchange stays a single request and response.
type ScoreBatchRequest struct {
	Items       []ScoreRequest `json:"items"`
	Scorers     []ScorerSpec   `json:"scorers,omitempty"`
	Parallelism int            `json:"parallelism,omitempty"`
}

// ScoreBatch submits a batch of outputs in one request. The server may
// answer with a JSON array of results or a single result object; both are
// accepted, and results keep the server's order.
func (c *EvaluationsClient) ScoreBatch(ctx context.Context, req *ScoreBatchRequest) ([]EvaluationResult, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if len(req.Items) == 0 {
		return nil, NewValidationError("items", "batch must not be empty")
	}

	var raw json.RawMessage
	if err := c.client.http.post(ctx, "/evaluations/score/batch", req, &raw); err != nil {
		return nil, err
	}
	return parseBatchResults(raw)
}

// parseBatchResults accepts either a JSON array of results or a singleton
// object.
func parseBatchResults(raw json.RawMessage) ([]EvaluationResult, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []EvaluationResult{}, nil
	}

	if trimmed[0] == '[' {
		var results []EvaluationResult
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, fmt.Errorf("evalforge: failed to unmarshal batch results: %w", err)
		}
		return results, nil
	}

	var single EvaluationResult
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, fmt.Errorf("evalforge: failed to unmarshal batch result: %w", err)
	}
	return []EvaluationResult{single}, nil
}

// ScoreWithRetries scores one output, retrying the whole call up to
// attempts times when the failure is retryable. This loop is owned by the
// caller's budget and is separate from the transport's retries: it also
// covers rate limits and server errors, honoring the server's Retry-After
// hint when one is present.
func (c *EvaluationsClient) ScoreWithRetries(ctx context.Context, req *ScoreRequest, attempts int) (*EvaluationResult, error) {
	if attempts < 1 {
		return nil, NewValidationError("attempts", fmt.Sprintf("must be at least 1, got %d", attempts))
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			delay := RetryAfter(lastErr)
			if delay <= 0 {
				delay = c.client.config.RetryDelay
			}
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		result, err := c.Score(ctx, req)
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// ScoreEach scores many outputs concurrently from the client side, at most
// concurrency requests in flight at once. Results are returned in input
// order. The first failure cancels the remaining requests.
func (c *EvaluationsClient) ScoreEach(ctx context.Context, reqs []ScoreRequest, concurrency int) ([]EvaluationResult, error) {
	if len(reqs) == 0 {
		return nil, NewValidationError("reqs", "at least one request is required")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]EvaluationResult, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range reqs {
		i := i
		g.Go(func() error {
			result, err := c.Score(ctx, &reqs[i])
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EvaluationsListParams represents parameters for listing evaluation
// results.
type EvaluationsListParams struct {
	// Limit is the page size. Defaults to DefaultListLimit.
	Limit int
	// Offset is the starting offset. Defaults to 0.
	Offset int
	// ItemID filters results to one dataset item, when set.
	ItemID string
}

// List returns a lazy iterator over stored evaluation results.
func (c *EvaluationsClient) List(params *EvaluationsListParams) (*Iterator[EvaluationResult], error) {
	limit, offset := DefaultListLimit, 0
	filters := url.Values{}
	if params != nil {
		if params.Limit != 0 {
			limit = params.Limit
		}
		offset = params.Offset
		if params.ItemID != "" {
			filters.Set("item_id", params.ItemID)
		}
	}

	fetch := func(ctx context.Context, limit, offset int) ([]EvaluationResult, int, error) {
		var res listResponse[EvaluationResult]
		q := mergeQuery(pageQuery(limit, offset), filters)
		if err := c.client.http.get(ctx, "/evaluations", q, &res); err != nil {
			return nil, 0, err
		}
		return res.Data, res.Pagination.total(), nil
	}

	return NewIterator(fetch, limit, offset)
}

// Get retrieves a stored evaluation result by ID.
func (c *EvaluationsClient) Get(ctx context.Context, evaluationID string) (*EvaluationResult, error) {
	if evaluationID == "" {
		return nil, NewValidationError("evaluationID", "evaluation ID is required")
	}

	var result EvaluationResult
	if err := c.client.http.get(ctx, fmt.Sprintf("/evaluations/%s", url.PathEscape(evaluationID)), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
