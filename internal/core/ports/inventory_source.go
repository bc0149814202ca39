// internal/core/ports/inventory_source.go
package ports

import (
	"context"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
)

// InventorySource defines the port for the upstream inventory API.
// This interface is implemented by the API client adapter.
type InventorySource interface {
	Fetch(ctx context.Context) (*domain.FetchResult, error)
}
