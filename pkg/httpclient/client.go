package httpclient

import (
	"net/http"
	"time"
)

// Client is the transport the form controller posts through. The indirection
// exists so tests can substitute a canned transport.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps the standard http.Client
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient creates a new HTTP client with default settings
func NewStandardClient() Client {
	return &StandardHTTPClient{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Do executes an HTTP request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
