package api

import "context"

// Profile fetches the authenticated user's profile. The session store uses
// this both for bootstrap revalidation and the post-login refresh.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/users/profile")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial update and returns the full updated record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var out User
	resp, err := c.request().
		SetContext(ctx).
		SetBody(update).
		SetResult(&out).
		Put("/api/users/profile")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
