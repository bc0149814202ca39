// internal/core/services/sync.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
	"github.com/ammerola/coffeechain-sync/internal/core/ports"
	"github.com/ammerola/coffeechain-sync/internal/pkg/logger"
)

// ErrSyncInProgress is returned when another run holds the sync lock
var ErrSyncInProgress = errors.New("another inventory sync is in progress")

// DefaultLockTTL bounds how long a crashed run can block the next one
const DefaultLockTTL = 10 * time.Minute

// SyncService runs one fetch-then-upsert cycle
type SyncService struct {
	source  ports.InventorySource
	repo    ports.InventoryRepository
	state   ports.SyncStateStore
	archive ports.PayloadArchive
	lockTTL time.Duration
	logger  *slog.Logger
}

// Statically assert that *SyncService implements the SyncService interface.
var _ ports.SyncService = (*SyncService)(nil)

// NewSyncService creates a new sync service. state and archive may be nil.
func NewSyncService(
	source ports.InventorySource,
	repo ports.InventoryRepository,
	state ports.SyncStateStore,
	archive ports.PayloadArchive,
	lockTTL time.Duration,
	logger *slog.Logger,
) *SyncService {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}

	return &SyncService{
		source:  source,
		repo:    repo,
		state:   state,
		archive: archive,
		lockTTL: lockTTL,
		logger:  logger.With(slog.String("service", "sync")),
	}
}

// Run fetches the upstream inventory and upserts it. A fetch failure aborts the
// run before the repository is touched.
func (s *SyncService) Run(ctx context.Context) (*domain.SyncReport, error) {
	report := &domain.SyncReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	// run_id is attached to every record by the logger's context handler.
	ctx = logger.WithRunID(ctx, report.RunID)
	log := s.logger

	log.InfoContext(ctx, "starting inventory sync job")

	if s.state != nil {
		acquired, err := s.state.AcquireLock(ctx, report.RunID, s.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
		}
		if !acquired {
			return nil, ErrSyncInProgress
		}
		defer s.releaseLock(ctx, log, report.RunID)
	}

	err := s.run(ctx, log, report)
	report.Finish(err)
	s.saveReport(ctx, log, report)

	if err != nil {
		return report, err
	}

	log.InfoContext(ctx, "sync complete, inventory loaded into postgres",
		slog.Int64("upserted", report.Upserted),
		slog.String("duration", report.Duration))

	return report, nil
}

func (s *SyncService) run(ctx context.Context, log *slog.Logger, report *domain.SyncReport) error {
	result, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch inventory: %w", err)
	}

	report.Fetched = len(result.Items)
	log.InfoContext(ctx, "inventory data fetched successfully",
		slog.Int("count", report.Fetched))

	if s.archive != nil && len(result.Payload) > 0 {
		location, err := s.archive.Archive(ctx, report.RunID, result.Payload)
		if err != nil {
			log.WarnContext(ctx, "failed to archive inventory payload",
				slog.String("error", err.Error()))
		} else {
			report.ArchiveLocation = location
		}
	}

	items, duplicates := domain.DedupeBySKU(result.Items)
	report.Duplicates = duplicates
	if duplicates > 0 {
		log.WarnContext(ctx, "duplicate skus in payload, keeping last record",
			slog.Int("duplicates", duplicates))
	}

	affected, err := s.repo.Upsert(ctx, items)
	if err != nil {
		return fmt.Errorf("failed to upsert inventory: %w", err)
	}

	report.Upserted = affected
	log.InfoContext(ctx, "inserted/updated inventory items",
		slog.Int("items", len(items)),
		slog.Int64("rows_affected", affected))

	return nil
}

func (s *SyncService) releaseLock(ctx context.Context, log *slog.Logger, runID string) {
	// The run's own context may already be cancelled; release must still happen.
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.state.ReleaseLock(releaseCtx, runID); err != nil {
		log.WarnContext(ctx, "failed to release sync lock",
			slog.String("error", err.Error()))
	}
}

func (s *SyncService) saveReport(ctx context.Context, log *slog.Logger, report *domain.SyncReport) {
	if s.state == nil {
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.state.SaveReport(saveCtx, report); err != nil {
		log.WarnContext(ctx, "failed to save sync report",
			slog.String("error", err.Error()))
	}
}
