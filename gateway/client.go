// SPDX-License-Identifier: GPL-3.0-only

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"numdash-server/commons"
	"strings"
)

var ErrNotConfigured = errors.New("upstream endpoint not configured")

func NewClient(c Config) (*Client, error) {
	if c.SendURL == "" {
		c.SendURL = commons.GetEnv("SEND_API_URL")
	}
	if c.PurchaseURL == "" {
		c.PurchaseURL = commons.GetEnv("PURCHASE_API_URL")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}

	client := &Client{HTTPClient: c.HTTPClient}
	var err error
	if client.SendURL, err = parseOptional(c.SendURL); err != nil {
		commons.Logger.Error("Failed to parse send API URL:", err)
		return nil, err
	}
	if client.PurchaseURL, err = parseOptional(c.PurchaseURL); err != nil {
		commons.Logger.Error("Failed to parse purchase API URL:", err)
		return nil, err
	}
	commons.Logger.Debugf("Gateway client initialized (send=%q purchase=%q)", c.SendURL, c.PurchaseURL)
	return client, nil
}

func parseOptional(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	return url.Parse(raw)
}

// Send posts req once. A send is never retried.
func (c *Client) Send(ctx context.Context, token string, req SendRequest) (*SendResult, error) {
	if c.SendURL == nil {
		return nil, ErrNotConfigured
	}
	var resp sendResponse
	if err := c.post(ctx, c.SendURL, token, req, &resp); err != nil {
		return nil, err
	}

	result := &SendResult{Outcome: OutcomeDelivered, Message: resp.Message}
	switch {
	case len(resp.FailedNumbers) > 0:
		result.Outcome = OutcomePartial
		result.FailedNumbers = resp.FailedNumbers
	case len(resp.OrderIDs) > 0 || resp.MessageQueued:
		result.Outcome = OutcomePending
		result.OrderIDs = resp.OrderIDs
	}
	commons.Logger.Debugf("Send to %d numbers finished: %s", len(req.Numbers), result.Outcome)
	return result, nil
}

func (c *Client) Purchase(ctx context.Context, token string, req PurchaseRequest) (*PurchaseResult, error) {
	if c.PurchaseURL == nil {
		return nil, ErrNotConfigured
	}
	var result PurchaseResult
	if err := c.post(ctx, c.PurchaseURL, token, req, &result); err != nil {
		return nil, err
	}
	commons.Logger.Debugf("Purchase of %s/%s finished: order %s", req.Variant, req.Service, result.OrderID)
	return &result, nil
}

func (c *Client) post(ctx context.Context, u *url.URL, token string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		commons.Logger.Error("Failed to create upstream HTTP request:", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		commons.Logger.Error("Upstream HTTP request failed:", err)
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.Unmarshal(data, &e)
		code := e.Message
		if code == "" {
			code = e.Error
		}
		commons.Logger.Errorf("Upstream %s answered %s: %s", u.Path, resp.Status, code)
		return &UpstreamError{Status: resp.StatusCode, Code: strings.TrimSpace(code)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed upstream response: %w", err)
	}
	return nil
}
