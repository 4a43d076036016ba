// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the shared outbound HTTP client for channel senders that talk to
// JSON REST APIs.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PostJSON marshals payload and POSTs it to url with a JSON content type plus
// any extra headers. The caller owns the response body.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.httpClient.Do(req)
}

// ReadError drains up to limit bytes of a response body for error messages.
func ReadError(resp *http.Response, limit int64) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, limit))
	return string(b)
}
