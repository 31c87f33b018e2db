package api

import (
	"context"
	"errors"
)

// SignIn exchanges credentials for a bearer token. Credentials are validated
// locally first; validation failures never reach the wire.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	if err := c.validate.Struct(creds); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	var out AuthResponse
	resp, err := c.request().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&out).
		Post("/api/auth/signin")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp registers a new account. Registration does not sign the user in; the
// storefront redirects to the sign-in screen afterwards.
func (c *Client) SignUp(ctx context.Context, reg Registration) (*Message, error) {
	if err := c.validate.Struct(reg); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	var out Message
	resp, err := c.request().
		SetContext(ctx).
		SetBody(reg).
		SetResult(&out).
		Post("/api/auth/signup")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut invalidates the current token server-side.
func (c *Client) SignOut(ctx context.Context) error {
	resp, err := c.request().
		SetContext(ctx).
		Post("/api/auth/signout")
	return responseError(resp, err)
}

// RefreshToken exchanges the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
		Type  string `json:"type"`
	}
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&out).
		Post("/api/auth/refresh")
	if err := responseError(resp, err); err != nil {
		return "", err
	}
	return out.Token, nil
}
