package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client for the outbound integrations
// (payment gateway, identity key endpoint).
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with its own connection pool and settings
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
