// internal/adapters/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
	"github.com/ammerola/coffeechain-sync/internal/core/ports"
)

// ErrMalformedPayload is returned when the response body is not the expected envelope
var ErrMalformedPayload = errors.New("malformed inventory payload")

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

const maxErrorBodyBytes = 512

// Config holds API client configuration
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client fetches inventory from the CoffeeChain warehouse API
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
}

// Statically assert that *Client implements the InventorySource interface.
var _ ports.InventorySource = (*Client)(nil)

// NewClient creates a new inventory API client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewClientWithHTTP creates a client around a caller-supplied http.Client
func NewClientWithHTTP(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger.With(slog.String("component", "inventory_api")),
	}
}

// wireItem mirrors one record of the response; pointers detect absent fields
type wireItem struct {
	SKU       *string `json:"sku"`
	ItemName  *string `json:"item_name"`
	Quantity  *int    `json:"quantity"`
	Warehouse *string `json:"warehouse"`
}

type envelope struct {
	Data *[]wireItem `json:"data"`
}

// Fetch performs one authenticated GET and returns the validated records
func (c *Client) Fetch(ctx context.Context) (*domain.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "inventory API responded",
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration_ms", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}

	items, err := decodeInventory(payload)
	if err != nil {
		return nil, err
	}

	return &domain.FetchResult{
		Items:   items,
		Payload: payload,
	}, nil
}

func decodeInventory(payload []byte) ([]domain.InventoryItem, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: missing data array", ErrMalformedPayload)
	}

	items := make([]domain.InventoryItem, 0, len(*env.Data))
	for i, raw := range *env.Data {
		item, err := raw.toDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (w wireItem) toDomain() (domain.InventoryItem, error) {
	var missing []string
	if w.SKU == nil {
		missing = append(missing, "sku")
	}
	if w.ItemName == nil {
		missing = append(missing, "item_name")
	}
	if w.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if w.Warehouse == nil {
		missing = append(missing, "warehouse")
	}
	if len(missing) > 0 {
		return domain.InventoryItem{}, fmt.Errorf("%w: missing %s",
			domain.ErrInvalidItem, strings.Join(missing, ", "))
	}

	item := domain.InventoryItem{
		SKU:       *w.SKU,
		ItemName:  *w.ItemName,
		Quantity:  *w.Quantity,
		Warehouse: *w.Warehouse,
	}
	if err := item.Validate(); err != nil {
		return domain.InventoryItem{}, err
	}

	return item, nil
}
