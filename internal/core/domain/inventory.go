// internal/core/domain/inventory.go
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidItem is returned when an inventory record fails boundary validation
var ErrInvalidItem = errors.New("invalid inventory item")

// InventoryItem represents a single warehouse stock record as reported by the API
type InventoryItem struct {
	SKU       string `json:"sku"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	Warehouse string `json:"warehouse"`
}

// Validate performs domain validation on the inventory item
func (i *InventoryItem) Validate() error {
	if strings.TrimSpace(i.SKU) == "" {
		return fmt.Errorf("%w: sku is required", ErrInvalidItem)
	}
	if strings.TrimSpace(i.ItemName) == "" {
		return fmt.Errorf("%w: item_name is required", ErrInvalidItem)
	}
	if strings.TrimSpace(i.Warehouse) == "" {
		return fmt.Errorf("%w: warehouse is required", ErrInvalidItem)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidItem)
	}
	return nil
}

// DedupeBySKU collapses records that share a SKU, keeping the last record seen.
// The returned slice keeps the position of each SKU's first appearance, and the
// second value is the number of records that were dropped.
func DedupeBySKU(items []InventoryItem) ([]InventoryItem, int) {
	if len(items) < 2 {
		return items, 0
	}

	index := make(map[string]int, len(items))
	out := make([]InventoryItem, 0, len(items))

	for _, item := range items {
		if pos, ok := index[item.SKU]; ok {
			out[pos] = item
			continue
		}
		index[item.SKU] = len(out)
		out = append(out, item)
	}

	return out, len(items) - len(out)
}

// FetchResult holds a decoded API response and the payload it was decoded from
type FetchResult struct {
	Items   []InventoryItem
	Payload []byte
}

// SyncStatus represents the outcome of a sync run
type SyncStatus string

const (
	SyncStatusSucceeded SyncStatus = "succeeded"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncReport summarizes one sync run
type SyncReport struct {
	RunID           string     `json:"run_id"`
	Status          SyncStatus `json:"status"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      time.Time  `json:"finished_at"`
	Duration        string     `json:"duration"`
	Fetched         int        `json:"fetched"`
	Duplicates      int        `json:"duplicates"`
	Upserted        int64      `json:"upserted"`
	ArchiveLocation string     `json:"archive_location,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// Finish stamps the report with its end time and outcome
func (r *SyncReport) Finish(err error) {
	r.FinishedAt = time.Now()
	r.Duration = r.FinishedAt.Sub(r.StartedAt).String()
	if err != nil {
		r.Status = SyncStatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = SyncStatusSucceeded
}
