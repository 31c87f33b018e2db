package api

import (
	"context"
	"strconv"
)

// ListParams control pagination and sorting of listing endpoints. Zero values
// are omitted, leaving the server defaults in effect.
type ListParams struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func (p ListParams) query() map[string]string {
	q := make(map[string]string, 4)
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.Size > 0 {
		q["size"] = strconv.Itoa(p.Size)
	}
	if p.SortBy != "" {
		q["sortBy"] = p.SortBy
	}
	if p.SortDir != "" {
		q["sortDir"] = p.SortDir
	}
	return q
}

// Medicines fetches one page of the catalog.
func (c *Client) Medicines(ctx context.Context, params ListParams) (*Page[Medicine], error) {
	var out Page[Medicine]
	resp, err := c.request().
		SetContext(ctx).
		SetQueryParams(params.query()).
		SetResult(&out).
		Get("/api/medicines")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Medicine fetches a single catalog entry by id.
func (c *Client) Medicine(ctx context.Context, id int64) (*Medicine, error) {
	var out Medicine
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/medicines/" + strconv.FormatInt(id, 10))
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchMedicines runs a server-side free-text search over the catalog.
func (c *Client) SearchMedicines(ctx context.Context, query string) ([]Medicine, error) {
	var out []Medicine
	resp, err := c.request().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetResult(&out).
		Get("/api/medicines/search")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories fetches the list of known catalog categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/medicines/categories")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}
