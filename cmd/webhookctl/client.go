package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"idvdemo/internal/engine/correlator"
	"idvdemo/internal/platform/models"
)

// client talks to a running server's webhook routes.
type client struct {
	baseURL    string
	adminToken string
	http       *http.Client
}

func newClient(baseURL, adminToken string) *client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
		http:       http.DefaultClient,
	}
}

func (c *client) do(ctx context.Context, method, path string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *client) list(ctx context.Context) ([]*models.WebhookRecord, error) {
	var resp struct {
		Responses []*models.WebhookRecord `json:"responses"`
		Error     string                  `json:"error"`
	}
	status, err := c.do(ctx, http.MethodGet, "/webhook-callback", &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list failed (%d): %s", status, resp.Error)
	}
	return resp.Responses, nil
}

func (c *client) clear(ctx context.Context) error {
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	status, err := c.do(ctx, http.MethodDelete, "/webhook-callback", &resp)
	if err != nil {
		return err
	}
	if status != http.StatusOK || !resp.Success {
		return fmt.Errorf("clear failed (%d): %s%s", status, resp.Error, resp.Message)
	}
	return nil
}

// lookup returns correlator.ErrNotFound while the server has nothing for token.
func (c *client) lookup(ctx context.Context, token string) (*models.WebhookRecord, error) {
	var resp struct {
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	status, err := c.do(ctx, http.MethodGet, "/webhook?token="+url.QueryEscape(token), &resp)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &models.WebhookRecord{Data: resp.Data}, nil
	case http.StatusNotFound:
		return nil, correlator.ErrNotFound
	default:
		return nil, fmt.Errorf("lookup failed (%d): %s", status, resp.Error)
	}
}
