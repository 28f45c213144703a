package evalforge

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Pagination is the pagination block of a list response.
// Total may be absent; termination then falls back to the short-page rule.
type Pagination struct {
	Total   *int  `json:"total,omitempty"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore *bool `json:"has_more,omitempty"`
}

// listResponse is the wire shape of every list endpoint.
type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// totalUnknown marks an absent total in a FetchFunc result.
const totalUnknown = -1

// total returns the reported total, or totalUnknown when absent.
func (p *Pagination) total() int {
	if p.Total == nil {
		return totalUnknown
	}
	return *p.Total
}

// FetchFunc loads one page at (limit, offset). It returns the page's items
// and the server-reported total, or totalUnknown (-1) when the server omits
// the total.
type FetchFunc[T any] func(ctx context.Context, limit, offset int) (items []T, total int, err error)

// Iterator is a single-consumer cursor over a server-paginated list.
// It fetches further pages transparently on demand and terminates when the
// server returns an empty page, a short page, or as many items as the
// reported total. Advancing a terminal iterator returns
// ErrIteratorExhausted. Concurrent use of one Iterator is undefined.
type Iterator[T any] struct {
	fetch    FetchFunc[T]
	limit    int
	offset   int
	page     []T
	pos      int
	returned int
	total    int // totalUnknown until the server reports one
	done     bool
}

// NewIterator creates an iterator over fetch starting at offset, requesting
// limit items per page.
func NewIterator[T any](fetch FetchFunc[T], limit, offset int) (*Iterator[T], error) {
	if fetch == nil {
		return nil, NewValidationError("fetch", "fetch function is required")
	}
	if limit <= 0 {
		return nil, NewValidationError("limit", fmt.Sprintf("must be positive, got %d", limit))
	}
	if offset < 0 {
		return nil, NewValidationError("offset", fmt.Sprintf("cannot be negative, got %d", offset))
	}
	return &Iterator[T]{
		fetch:  fetch,
		limit:  limit,
		offset: offset,
		total:  totalUnknown,
	}, nil
}

// Next returns the next item, fetching the next page when the in-memory
// page is exhausted. Once the iterator terminates, and after any fetch
// error, every further call returns ErrIteratorExhausted.
func (it *Iterator[T]) Next(ctx context.Context) (T, error) {
	var zero T

	if it.pos >= len(it.page) {
		if err := it.advance(ctx); err != nil {
			return zero, err
		}
	}

	item := it.page[it.pos]
	it.pos++
	it.returned++

	// A short page or a met total terminates without another fetch.
	if it.pos >= len(it.page) {
		if len(it.page) < it.limit || (it.total != totalUnknown && it.returned >= it.total) {
			it.done = true
		}
	}

	return item, nil
}

// NextPage returns the remainder of the current page, or fetches and
// returns the next whole page. Termination follows the same rules as Next.
func (it *Iterator[T]) NextPage(ctx context.Context) ([]T, error) {
	if it.pos >= len(it.page) {
		if err := it.advance(ctx); err != nil {
			return nil, err
		}
	}

	page := it.page[it.pos:]
	it.pos = len(it.page)
	it.returned += len(page)

	if len(it.page) < it.limit || (it.total != totalUnknown && it.returned >= it.total) {
		it.done = true
	}

	return page, nil
}

// All drains the iterator and returns the remaining items.
func (it *Iterator[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	for {
		page, err := it.NextPage(ctx)
		if err != nil {
			if err == ErrIteratorExhausted && items != nil {
				return items, nil
			}
			if err == ErrIteratorExhausted {
				return []T{}, nil
			}
			return nil, err
		}
		items = append(items, page...)
		if it.done {
			return items, nil
		}
	}
}

// advance loads the page at the current offset.
// A fetch error leaves the iterator terminal.
func (it *Iterator[T]) advance(ctx context.Context) error {
	if it.done {
		return ErrIteratorExhausted
	}

	items, total, err := it.fetch(ctx, it.limit, it.offset)
	if err != nil {
		it.done = true
		return err
	}

	if total != totalUnknown {
		it.total = total
	}

	if len(items) == 0 {
		it.done = true
		return ErrIteratorExhausted
	}

	it.page = items
	it.pos = 0
	it.offset += it.limit
	return nil
}

// pageQuery builds the limit/offset query parameters for one page request.
func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// mergeQuery merges multiple url.Values into one.
func mergeQuery(queries ...url.Values) url.Values {
	result := url.Values{}
	for _, q := range queries {
		for k, vs := range q {
			for _, v := range vs {
				result.Add(k, v)
			}
		}
	}
	return result
}
