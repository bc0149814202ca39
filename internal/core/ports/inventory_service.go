// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
)

// SyncService defines the application service port for an inventory sync run.
// This interface is implemented by the application service.
type SyncService interface {
	Run(ctx context.Context) (*domain.SyncReport, error)
}
