// Package retriever provides Policy Retriever implementations backed by an
// external similarity index or by an in-process keyword index.
package retriever

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type searchResponse struct {
	Snippets []string `json:"snippets"`
}

// IndexClient queries a remote similarity index over HTTP:
// POST {baseURL}/search {"query","k"} -> {"snippets": [...]}.
type IndexClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewIndexClient(baseURL string, timeout time.Duration) *IndexClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &IndexClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *IndexClient) Search(ctx context.Context, query string, k int) ([]string, error) {
	body, err := json.Marshal(searchRequest{Query: query, K: k})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("policy index request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("policy index returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode policy index response: %w", err)
	}
	if len(out.Snippets) > k && k > 0 {
		out.Snippets = out.Snippets[:k]
	}
	if out.Snippets == nil {
		out.Snippets = []string{}
	}
	return out.Snippets, nil
}
