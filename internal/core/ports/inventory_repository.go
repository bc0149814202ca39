// internal/core/ports/inventory_repository.go
package ports

import (
	"context"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
)

// InventoryRepository defines the persistence port for inventory.
// This interface is implemented by the database adapter.
type InventoryRepository interface {
	// Upsert inserts new SKUs and overwrites the quantity of existing ones,
	// returning the number of rows affected.
	Upsert(ctx context.Context, items []domain.InventoryItem) (int64, error)
}
