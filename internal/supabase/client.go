// Package supabase implements the backend contract over a Supabase
// project's REST surface: GoTrue for identity, PostgREST for the
// relational tables and the storage API for buckets.
package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tunedeck/internal/backend"
	"tunedeck/internal/errors"
)

// requestTimeout is the only timeout in play; there are no retries and no
// circuit breaking. Matches the fixed transport timeout of the original
// deployment.
const requestTimeout = 10 * time.Second

// Client talks to one Supabase project. It is stateless with respect to
// individual requests and safe to share across goroutines.
type Client struct {
	baseURL   string
	key       string
	jwtSecret string
	http      *http.Client
}

var _ backend.Client = (*Client)(nil)

// New creates a client for the project at baseURL authenticated with the
// given API key. jwtSecret is optional; when set, access tokens returned
// by the identity endpoints are signature-checked.
func New(baseURL, key, jwtSecret string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		key:       key,
		jwtSecret: jwtSecret,
		http:      &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	return req, nil
}

// do executes the request and converts any non-2xx response into a
// BackendError carrying the provider's status and message.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		return nil, errors.NewBackendError(resp.StatusCode, readAPIError(resp.Body))
	}
	return resp, nil
}

// readAPIError extracts a human-readable message from an error body. The
// auth, rest and storage endpoints disagree on the field name.
func readAPIError(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var fields struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return strings.TrimSpace(string(raw))
	}
	for _, m := range []string{fields.Message, fields.Msg, fields.ErrorDescription, fields.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

func decodeBody(resp *http.Response, dest any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(dest)
}

func drainBody(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
