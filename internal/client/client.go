// Package client talks to the LilURL backend over its JSON HTTP API.
// Every operation is a single best-effort round trip: no caching, no
// retries. All failures are reported as *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/vadimbarashkov/lilurl-web/internal/models"
)

// BasePath is the fixed prefix of every backend endpoint.
const BasePath = "/api/v1"

// Client is a LilURL backend client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. The given client is
// never modified.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the request timeout. Zero keeps the timeout of the
// underlying *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// New returns a Client for the backend reachable at baseURL,
// e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

type createRequest struct {
	LongURL string `json:"long_url"`
}

type createResponse struct {
	Result *models.ShortenResult `json:"result"`
}

// CreateShortURL asks the backend to shorten longURL and returns the
// "result" object of the response.
func (c *Client) CreateShortURL(ctx context.Context, longURL string) (*models.ShortenResult, error) {
	var resp createResponse

	if err := c.do(ctx, http.MethodPost, "/lilurl", createRequest{LongURL: longURL}, &resp); err != nil {
		return nil, err
	}

	if resp.Result == nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    "response has no result",
		}
	}

	return resp.Result, nil
}

// GetURLByShortCode fetches the details of the URL behind code.
func (c *Client) GetURLByShortCode(ctx context.Context, code string) (*models.ShortenResult, error) {
	return c.get(ctx, code)
}

// GetURLByID fetches the details of the URL with the given backend id.
func (c *Client) GetURLByID(ctx context.Context, id string) (*models.ShortenResult, error) {
	return c.get(ctx, id)
}

func (c *Client) get(ctx context.Context, segment string) (*models.ShortenResult, error) {
	var res models.ShortenResult

	if err := c.do(ctx, http.MethodGet, "/"+url.PathEscape(segment), nil, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	const op = "client.Client.do"

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{
				Message: fmt.Sprintf("%s: failed to encode request body: %v", op, err),
				Err:     err,
			}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+BasePath+path, reqBody)
	if err != nil {
		return &APIError{
			Message: fmt.Sprintf("%s: failed to build request: %v", op, err),
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newResponseError(resp)
	}

	if err := render.DecodeJSON(resp.Body, out); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    "invalid response body",
			Err:        err,
		}
	}

	return nil
}
