package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrTransport = errors.New("vendor unreachable")

// HTTPClient is the seam tests use to stand in for the vendor.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts JSON to the vendor REST API with the product secret in a header.
type Client struct {
	baseURL    string
	header     string
	httpClient HTTPClient
}

func NewClient(baseURL, header string, httpClient HTTPClient) *Client {
	if header == "" {
		header = "X-API-Key"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		header:     header,
		httpClient: httpClient,
	}
}

// Post issues a single attempt and returns the upstream status and raw body.
func (c *Client) Post(ctx context.Context, path, apiKey string, body interface{}) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(c.header, apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}
	return resp.StatusCode, raw, nil
}
