// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

// Client is the shared outbound HTTP client with a per-round-trip timeout.
// Callers build their requests with http.NewRequestWithContext, so
// cancellation rides on the request itself.
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

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
