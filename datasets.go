package evalforge

import (
	"context"
	"fmt"
	"net/url"
)

// DatasetsClient handles dataset-related API operations.
type DatasetsClient struct {
	client *Client
}

// DatasetsListParams represents parameters for listing datasets.
type DatasetsListParams struct {
	// Limit is the page size. Defaults to DefaultListLimit.
	Limit int
	// Offset is the starting offset. Defaults to 0.
	Offset int
	// Name filters datasets by name, when set.
	Name string
}

// List returns a lazy iterator over datasets. Pages are fetched on demand
// as the iterator advances.
func (c *DatasetsClient) List(params *DatasetsListParams) (*Iterator[Dataset], error) {
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

	fetch := func(ctx context.Context, limit, offset int) ([]Dataset, int, error) {
		var res listResponse[Dataset]
		q := mergeQuery(pageQuery(limit, offset), filters)
		if err := c.client.http.get(ctx, "/datasets", q, &res); err != nil {
			return nil, 0, err
		}
		return res.Data, res.Pagination.total(), nil
	}

	return NewIterator(fetch, limit, offset)
}

// Get retrieves a dataset by ID. A missing dataset surfaces as an APIError
// matching ErrNotFound.
func (c *DatasetsClient) Get(ctx context.Context, datasetID string) (*Dataset, error) {
	if datasetID == "" {
		return nil, NewValidationError("datasetID", "dataset ID is required")
	}

	var result Dataset
	if err := c.client.http.get(ctx, fmt.Sprintf("/datasets/%s", url.PathEscape(datasetID)), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateDatasetRequest represents a request to create a dataset.
type CreateDatasetRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"`
}

// Create creates a new dataset.
func (c *DatasetsClient) Create(ctx context.Context, req *CreateDatasetRequest) (*Dataset, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if req.Name == "" {
		return nil, NewValidationError("name", "dataset name is required")
	}

	var result Dataset
	if err := c.client.http.post(ctx, "/datasets", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ItemsParams represents parameters for listing dataset items.
type ItemsParams struct {
	// Limit is the page size. Defaults to DefaultItemsLimit.
	Limit int
	// Offset is the starting offset. Defaults to 0.
	Offset int
}

// Items returns a lazy iterator over the items of a dataset.
func (c *DatasetsClient) Items(datasetID string, params *ItemsParams) (*Iterator[DatasetItem], error) {
	if datasetID == "" {
		return nil, NewValidationError("datasetID", "dataset ID is required")
	}

	limit, offset := DefaultItemsLimit, 0
	if params != nil {
		if params.Limit != 0 {
			limit = params.Limit
		}
		offset = params.Offset
	}

	path := fmt.Sprintf("/datasets/%s/items", url.PathEscape(datasetID))
	fetch := func(ctx context.Context, limit, offset int) ([]DatasetItem, int, error) {
		var res listResponse[DatasetItem]
		if err := c.client.http.get(ctx, path, pageQuery(limit, offset), &res); err != nil {
			return nil, 0, err
		}
		return res.Data, res.Pagination.total(), nil
	}

	return NewIterator(fetch, limit, offset)
}

// CreateItemRequest represents a request to add an item to a dataset.
type CreateItemRequest struct {
	DatasetID string   `json:"dataset_id"`
	Input     any      `json:"input"`
	Expected  any      `json:"expected,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty"`
}

// CreateItem adds an item to a dataset.
func (c *DatasetsClient) CreateItem(ctx context.Context, req *CreateItemRequest) (*DatasetItem, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if req.DatasetID == "" {
		return nil, NewValidationError("dataset_id", "dataset ID is required")
	}
	if req.Input == nil {
		return nil, NewValidationError("input", "item input is required")
	}

	var result DatasetItem
	if err := c.client.http.post(ctx, "/dataset-items", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteItem removes a dataset item by ID.
func (c *DatasetsClient) DeleteItem(ctx context.Context, itemID string) error {
	if itemID == "" {
		return NewValidationError("itemID", "item ID is required")
	}
	return c.client.http.delete(ctx, fmt.Sprintf("/dataset-items/%s", url.PathEscape(itemID)), nil)
}
