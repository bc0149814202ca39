package benchmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ammerola/coffeechain-sync/internal/adapters/api"
	"github.com/ammerola/coffeechain-sync/internal/core/domain"
	"github.com/ammerola/coffeechain-sync/test/helpers"
)

func BenchmarkDedupeBySKU(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		items := helpers.CreateTestInventoryItems(size)
		// Every tenth record repeats an earlier SKU
		for i := 10; i < len(items); i += 10 {
			items[i].SKU = items[i-5].SKU
		}

		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				domain.DedupeBySKU(items)
			}
		})
	}
}

func BenchmarkClientFetch(b *testing.B) {
	for _, size := range []int{100, 5000} {
		body, err := json.Marshal(map[string]any{"data": helpers.CreateTestInventoryItems(size)})
		if err != nil {
			b.Fatal(err)
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
		}))

		client := api.NewClient(api.Config{
			URL:     server.URL,
			APIKey:  "bench-key",
			Timeout: 10 * time.Second,
		}, helpers.TestLogger())

		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := client.Fetch(context.Background()); err != nil {
					b.Fatal(err)
				}
			}
		})

		server.Close()
	}
}
