// internal/core/ports/sync_state.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
)

// SyncStateStore guards against overlapping runs and remembers the last outcome
type SyncStateStore interface {
	AcquireLock(ctx context.Context, runID string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, runID string) error
	SaveReport(ctx context.Context, report *domain.SyncReport) error
	LastReport(ctx context.Context) (*domain.SyncReport, error)
}

// PayloadArchive stores raw API payloads for later inspection
type PayloadArchive interface {
	Archive(ctx context.Context, runID string, payload []byte) (string, error)
}
