package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/coffeechain-sync/internal/adapters/api"
	"github.com/ammerola/coffeechain-sync/internal/core/domain"
	"github.com/ammerola/coffeechain-sync/test/helpers"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return api.NewClient(api.Config{
		URL:     server.URL + "/v1/inventory",
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, helpers.TestLogger())
}

func TestClient_Fetch_SendsBearerToken(t *testing.T) {
	var gotAuth, gotMethod, gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	_, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/v1/inventory", gotPath)
}

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedItems []domain.InventoryItem
		wantError     bool
		errorContains string
		checkErr      func(*testing.T, error)
	}{
		{
			name:   "single_record",
			status: http.StatusOK,
			body:   `{"data": [{"sku":"C2002","item_name":"Latte Beans","quantity":40,"warehouse":"W2"}]}`,
			expectedItems: []domain.InventoryItem{
				{SKU: "C2002", ItemName: "Latte Beans", Quantity: 40, Warehouse: "W2"},
			},
		},
		{
			name:          "empty_data_array",
			status:        http.StatusOK,
			body:          `{"data": []}`,
			expectedItems: []domain.InventoryItem{},
		},
		{
			name:   "unknown_fields_are_ignored",
			status: http.StatusOK,
			body:   `{"data": [{"sku":"C1001","item_name":"Dark Roast","quantity":3,"warehouse":"W1","branch":"north"}], "next": null}`,
			expectedItems: []domain.InventoryItem{
				{SKU: "C1001", ItemName: "Dark Roast", Quantity: 3, Warehouse: "W1"},
			},
		},
		{
			name:          "server_error_carries_status_code",
			status:        http.StatusInternalServerError,
			body:          `internal error`,
			wantError:     true,
			errorContains: "status 500",
			checkErr: func(t *testing.T, err error) {
				var statusErr *api.StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
				assert.Equal(t, "internal error", statusErr.Body)
			},
		},
		{
			name:          "unauthorized",
			status:        http.StatusUnauthorized,
			wantError:     true,
			errorContains: "status 401",
		},
		{
			name:          "missing_data_key",
			status:        http.StatusOK,
			body:          `{"items": []}`,
			wantError:     true,
			errorContains: "missing data array",
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, api.ErrMalformedPayload)
			},
		},
		{
			name:          "invalid_json",
			status:        http.StatusOK,
			body:          `{"data": [`,
			wantError:     true,
			errorContains: "malformed inventory payload",
		},
		{
			name:          "record_missing_sku",
			status:        http.StatusOK,
			body:          `{"data": [{"sku":"C1001","item_name":"Dark Roast","quantity":3,"warehouse":"W1"},{"item_name":"Espresso","quantity":1,"warehouse":"W1"}]}`,
			wantError:     true,
			errorContains: "record 1",
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidItem)
				assert.Contains(t, err.Error(), "missing sku")
			},
		},
		{
			name:          "record_missing_quantity",
			status:        http.StatusOK,
			body:          `{"data": [{"sku":"C1001","item_name":"Dark Roast","warehouse":"W1"}]}`,
			wantError:     true,
			errorContains: "missing quantity",
		},
		{
			name:          "record_negative_quantity",
			status:        http.StatusOK,
			body:          `{"data": [{"sku":"C1001","item_name":"Dark Roast","quantity":-1,"warehouse":"W1"}]}`,
			wantError:     true,
			errorContains: "quantity cannot be negative",
		},
		{
			name:          "record_fractional_quantity",
			status:        http.StatusOK,
			body:          `{"data": [{"sku":"C1001","item_name":"Dark Roast","quantity":1.5,"warehouse":"W1"}]}`,
			wantError:     true,
			errorContains: "malformed inventory payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			result, err := client.Fetch(context.Background())

			if tt.wantError {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.Contains(t, err.Error(), tt.errorContains)
				if tt.checkErr != nil {
					tt.checkErr(t, err)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedItems, result.Items)
			assert.Equal(t, tt.body, string(result.Payload))
		})
	}
}

func TestClient_Fetch_RespectsContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
