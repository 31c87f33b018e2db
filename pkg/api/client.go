package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

// Config describes the remote PharmaGo API. Fields are populated from
// environment variables through pkg/config.
type Config struct {
	BaseURL string        `env:"PHARMAGO_API_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"PHARMAGO_API_TIMEOUT" envDefault:"15s"`
}

// TokenSource supplies the current bearer token, or "" when no session is
// active. The session store installs itself here so every authenticated
// request carries the live token.
type TokenSource func() string

// Option configures the Client.
type Option func(*Client)

// WithTokenSource installs the bearer-token supplier.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = src
	}
}

// WithHTTPClient replaces the underlying http.Client, e.g. to add a custom
// transport or instrumentation.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client talks to the PharmaGo REST API. All methods return either a decoded
// response or an error; on API failures the error is an *Error carrying the
// server's message.
type Client struct {
	http        *resty.Client
	httpClient  *http.Client
	validate    *validator.Validate
	tokenSource TokenSource
}

// New creates a Client for the given API.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		validate: validator.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		c.http = resty.NewWithClient(c.httpClient)
	} else {
		c.http = resty.New()
	}

	c.http.
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			if c.tokenSource == nil {
				return nil
			}
			if token := c.tokenSource(); token != "" {
				req.SetHeader("Authorization", "Bearer "+token)
			}
			return nil
		})

	return c
}

// request returns a prepared resty request with error decoding installed.
func (c *Client) request() *resty.Request {
	return c.http.R().SetError(&Error{})
}

// responseError normalizes a resty response/error pair. Transport failures
// wrap ErrRequestFailed; HTTP failures surface the server's message.
func responseError(resp *resty.Response, err error) error {
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr, ok := resp.Error().(*Error)
	if !ok || apiErr == nil {
		apiErr = &Error{}
	}
	apiErr.StatusCode = resp.StatusCode()
	return apiErr
}
