package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const userAgent = "terminal-portfolio/1.0"

// BridgeClient reads a feed through an RSS-to-JSON bridge such as
// rss2json.com: GET <endpoint>?rss_url=<feed> -> {status, items}.
type BridgeClient struct {
	endpoint string
	feedURL  string
	client   *http.Client
}

type bridgeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Items   []Post `json:"items"`
}

// NewBridgeClient creates a bridge client. client may be nil.
func NewBridgeClient(endpoint, feedURL string, client *http.Client) *BridgeClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &BridgeClient{endpoint: endpoint, feedURL: feedURL, client: client}
}

// URL returns the bridge request URL.
func (b *BridgeClient) URL() (string, error) {
	u, err := url.Parse(b.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse bridge endpoint: %w", err)
	}
	q := u.Query()
	q.Set("rss_url", b.feedURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch performs exactly one request. Items keep feed order.
func (b *BridgeClient) Fetch(ctx context.Context) ([]Post, error) {
	target, err := b.URL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed bridge request: %w", err)
	}
	defer resp.Body.Close()

	var body bridgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode feed bridge response (http %d): %w", resp.StatusCode, err)
	}
	if body.Status != "ok" {
		return nil, &StatusError{Status: body.Status, Message: body.Message}
	}
	return body.Items, nil
}
