package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
)

func TestInventoryItem_Validate(t *testing.T) {
	tests := []struct {
		name      string
		item      domain.InventoryItem
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_item_with_all_fields",
			item: domain.InventoryItem{
				SKU:       "C1001",
				ItemName:  "Dark Roast",
				Quantity:  12,
				Warehouse: "W1",
			},
		},
		{
			name: "zero_quantity_is_valid",
			item: domain.InventoryItem{
				SKU:       "C1001",
				ItemName:  "Dark Roast",
				Quantity:  0,
				Warehouse: "W1",
			},
		},
		{
			name: "missing_sku",
			item: domain.InventoryItem{
				ItemName:  "Dark Roast",
				Quantity:  1,
				Warehouse: "W1",
			},
			wantError: true,
			errorMsg:  "sku is required",
		},
		{
			name: "blank_sku",
			item: domain.InventoryItem{
				SKU:       "   ",
				ItemName:  "Dark Roast",
				Quantity:  1,
				Warehouse: "W1",
			},
			wantError: true,
			errorMsg:  "sku is required",
		},
		{
			name: "missing_item_name",
			item: domain.InventoryItem{
				SKU:       "C1001",
				Quantity:  1,
				Warehouse: "W1",
			},
			wantError: true,
			errorMsg:  "item_name is required",
		},
		{
			name: "missing_warehouse",
			item: domain.InventoryItem{
				SKU:      "C1001",
				ItemName: "Dark Roast",
				Quantity: 1,
			},
			wantError: true,
			errorMsg:  "warehouse is required",
		},
		{
			name: "negative_quantity",
			item: domain.InventoryItem{
				SKU:       "C1001",
				ItemName:  "Dark Roast",
				Quantity:  -5,
				Warehouse: "W1",
			},
			wantError: true,
			errorMsg:  "quantity cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()

			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidItem))
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDedupeBySKU(t *testing.T) {
	tests := []struct {
		name           string
		items          []domain.InventoryItem
		expected       []domain.InventoryItem
		wantDuplicates int
	}{
		{
			name:     "empty_input",
			items:    nil,
			expected: nil,
		},
		{
			name: "no_duplicates_keeps_order",
			items: []domain.InventoryItem{
				{SKU: "C1001", ItemName: "Dark Roast", Quantity: 1, Warehouse: "W1"},
				{SKU: "C2002", ItemName: "Latte Beans", Quantity: 2, Warehouse: "W2"},
			},
			expected: []domain.InventoryItem{
				{SKU: "C1001", ItemName: "Dark Roast", Quantity: 1, Warehouse: "W1"},
				{SKU: "C2002", ItemName: "Latte Beans", Quantity: 2, Warehouse: "W2"},
			},
		},
		{
			name: "last_record_wins",
			items: []domain.InventoryItem{
				{SKU: "C1001", ItemName: "Dark Roast", Quantity: 1, Warehouse: "W1"},
				{SKU: "C2002", ItemName: "Latte Beans", Quantity: 2, Warehouse: "W2"},
				{SKU: "C1001", ItemName: "Dark Roast v2", Quantity: 9, Warehouse: "W3"},
			},
			expected: []domain.InventoryItem{
				{SKU: "C1001", ItemName: "Dark Roast v2", Quantity: 9, Warehouse: "W3"},
				{SKU: "C2002", ItemName: "Latte Beans", Quantity: 2, Warehouse: "W2"},
			},
			wantDuplicates: 1,
		},
		{
			name: "many_copies_of_one_sku",
			items: []domain.InventoryItem{
				{SKU: "C1001", ItemName: "Dark Roast", Quantity: 1, Warehouse: "W1"},
				{SKU: "C1001", ItemName: "Dark Roast", Quantity: 2, Warehouse: "W1"},
				{SKU: "C1001", ItemName: "Dark Roast", Quantity: 3, Warehouse: "W1"},
			},
			expected: []domain.InventoryItem{
				{SKU: "C1001", ItemName: "Dark Roast", Quantity: 3, Warehouse: "W1"},
			},
			wantDuplicates: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := domain.DedupeBySKU(tt.items)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.wantDuplicates, dropped)
		})
	}
}

func TestSyncReport_Finish(t *testing.T) {
	t.Run("marks_success", func(t *testing.T) {
		report := &domain.SyncReport{StartedAt: time.Now().Add(-time.Second)}
		report.Finish(nil)

		assert.Equal(t, domain.SyncStatusSucceeded, report.Status)
		assert.Empty(t, report.Error)
		assert.False(t, report.FinishedAt.Before(report.StartedAt))
		assert.NotEmpty(t, report.Duration)
	})

	t.Run("marks_failure_with_error", func(t *testing.T) {
		report := &domain.SyncReport{StartedAt: time.Now()}
		report.Finish(errors.New("boom"))

		assert.Equal(t, domain.SyncStatusFailed, report.Status)
		assert.Equal(t, "boom", report.Error)
	})
}
