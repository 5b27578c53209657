package leadsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is used when no API base URL is configured.
const DefaultBaseURL = "http://localhost:8080"

// DefaultTimeout bounds every API call unless the HTTP client is replaced.
const DefaultTimeout = 10 * time.Second

// Client talks to the lead API. It is safe for concurrent use as long as its
// TokenStore is.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
}

// NewClient creates a client for baseURL. An empty baseURL falls back to
// DefaultBaseURL and a nil store to a fresh MemoryTokenStore.
func NewClient(baseURL string, tokens TokenStore) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		Tokens: tokens,
	}
}

// WithTokens returns a shallow copy of c that reads and writes tokens from ts.
func (c *Client) WithTokens(ts TokenStore) *Client {
	cp := *c
	cp.Tokens = ts
	return &cp
}
