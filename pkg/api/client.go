// Package api is the HTTP client for the storefront backend: catalog
// reads, delivery city list, presigned uploads and guest order creation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"framex/internal/catalog"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("backend request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// PrintSizes lists the offered print sizes, ordered by their sort key.
func (c *Client) PrintSizes(ctx context.Context) ([]catalog.PrintSize, error) {
	var sizes []catalog.PrintSize
	if err := c.get(ctx, "/api/print-sizes", &sizes); err != nil {
		return nil, err
	}
	catalog.SortPrintSizes(sizes)
	return sizes, nil
}

// Mouldings lists the frame profiles.
func (c *Client) Mouldings(ctx context.Context) ([]catalog.Moulding, error) {
	var mouldings []catalog.Moulding
	if err := c.get(ctx, "/api/mouldings", &mouldings); err != nil {
		return nil, err
	}
	return mouldings, nil
}

// Materials lists the materials with their variants.
func (c *Client) Materials(ctx context.Context) ([]catalog.Material, error) {
	var materials []catalog.Material
	if err := c.get(ctx, "/api/materials", &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// CostFactors fetches the singleton cost-factor record.
func (c *Client) CostFactors(ctx context.Context) (*catalog.CostFactors, error) {
	var factors catalog.CostFactors
	if err := c.get(ctx, "/api/cost-factors", &factors); err != nil {
		return nil, err
	}
	return &factors, nil
}

// Cities returns the courier's operational city names, trimmed, deduped
// of blanks and sorted.
func (c *Client) Cities(ctx context.Context) ([]string, error) {
	var raw []struct {
		OperationalCityName string `json:"operationalCityName"`
	}
	if err := c.get(ctx, "/api/postex/cities", &raw); err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.OperationalCityName)
		if name != "" {
			cities = append(cities, name)
		}
	}
	sort.Strings(cities)
	return cities, nil
}

// CreateOrder posts a guest order and returns the backend's order id.
func (c *Client) CreateOrder(ctx context.Context, order any) (string, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/orders/guest-create", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OrderID string `json:"orderId"`
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &result)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if result.Message != "" {
			return "", fmt.Errorf("create order: %s", result.Message)
		}
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if result.OrderID != "" {
		return result.OrderID, nil
	}
	return result.ID, nil
}

// PresignUpload asks the backend for a presigned PUT URL for one file
// and the public URL it will be served from.
func (c *Client) PresignUpload(ctx context.Context, contentType, folder string) (string, string, error) {
	path := fmt.Sprintf("/api/s3/generate-presigned-url?fileType=%s&folder=%s",
		url.QueryEscape(contentType), url.QueryEscape(folder))

	var result struct {
		SignedURL string `json:"signedUrl"`
		PublicURL string `json:"publicUrl"`
	}
	if err := c.get(ctx, path, &result); err != nil {
		return "", "", err
	}
	if result.SignedURL == "" {
		return "", "", fmt.Errorf("backend returned no signed url")
	}
	return result.SignedURL, result.PublicURL, nil
}
