package leadsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with an optional JSON body. This is for
// unauthenticated requests (no Authorization header).
func (c *Client) doRequest(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doAuthRequest performs a request carrying the stored bearer token. It
// returns ErrNotAuthenticated without touching the network when no token is
// stored.
func (c *Client) doAuthRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token, err := c.Tokens.Token(ctx)
	if errors.Is(err, ErrNoToken) || (err == nil && token == "") {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	return c.doRequest(ctx, method, path, body, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

// decodeEnvelope reads an envelope whatever the HTTP status is. A body that
// is not an envelope is an error; an envelope with status false becomes an
// *APIError; otherwise data is decoded into T.
func decodeEnvelope[T any](resp *http.Response) (Envelope[T], error) {
	defer resp.Body.Close()

	var out Envelope[T]

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return out, fmt.Errorf("failed to read response body: %w", err)
	}

	var raw rawEnvelope
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		return out, fmt.Errorf("unexpected response (http %d): %w", resp.StatusCode, err)
	}

	out.Status = raw.Status
	out.Message = raw.Message

	if !raw.Status {
		return out, &APIError{StatusCode: resp.StatusCode, Message: raw.Message}
	}

	if len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		if err := json.Unmarshal(raw.Data, &out.Data); err != nil {
			return out, fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return out, nil
}
