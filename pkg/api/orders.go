package api

import (
	"context"
	"errors"
	"strconv"
)

// CreateOrder places an order for the authenticated user.
func (c *Client) CreateOrder(ctx context.Context, order NewOrder) (*Order, error) {
	if err := c.validate.Struct(order); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	var out Order
	resp, err := c.request().
		SetContext(ctx).
		SetBody(order).
		SetResult(&out).
		Post("/api/orders")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders fetches one page of the authenticated user's order history.
func (c *Client) Orders(ctx context.Context, params ListParams) (*Page[Order], error) {
	var out Page[Order]
	resp, err := c.request().
		SetContext(ctx).
		SetQueryParams(params.query()).
		SetResult(&out).
		Get("/api/orders")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, id int64) (*Order, error) {
	var out Order
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/orders/" + strconv.FormatInt(id, 10))
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelOrder cancels an order that has not entered fulfillment.
func (c *Client) CancelOrder(ctx context.Context, id int64) error {
	resp, err := c.request().
		SetContext(ctx).
		Put("/api/orders/" + strconv.FormatInt(id, 10) + "/cancel")
	return responseError(resp, err)
}
