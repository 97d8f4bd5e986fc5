package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client used by the
// remote storage adapter. It embeds *resty.Client to expose all of its
// methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent HTTPClient with the given base URL
// and per-request timeout. A non-positive timeout leaves resty's default.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://127.0.0.1:8080", 10*time.Second)
//	resp, err := client.R().Get("/files/data/default/contents.js")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().SetBaseURL(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
