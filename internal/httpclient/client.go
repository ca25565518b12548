// Package httpclient is a small JSON client for the watchlist HTTP API.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"watchlist/internal/errors"
)

// GenericErrorMessage is used for JSON error bodies that carry no message.
const GenericErrorMessage = "an error occurred"

// TokenSource supplies the bearer token for each request. An empty token
// means the request is sent without an Authorization header.
type TokenSource interface {
	Token() (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends one request. A JSON response is decoded into out; any other
// content type is stored as text when out is a *string. A 204 leaves out
// untouched. Non-2xx responses come back as *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return errors.Wrap(err, errors.CodeUnauthenticated, "unable to read access token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeUnavailable, "server unreachable")
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, errors.CodeUnavailable, "unable to read response")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newAPIError(res.StatusCode, data)
	}

	if res.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if strings.Contains(res.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "unable to decode response")
		}
		return nil
	}

	if s, ok := out.(*string); ok {
		*s = string(data)
	}
	return nil
}
