// internal/adapters/redis_adapter/sync_state.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
	"github.com/ammerola/coffeechain-sync/internal/core/ports"
)

// KeyPrefix namespaces every key the sync job writes
type KeyPrefix string

const (
	PrefixSync KeyPrefix = "sync"
)

var (
	// LockKey is held by the run currently syncing
	LockKey = BuildKey(PrefixSync, "lock")
	// LastReportKey stores the JSON report of the most recent run
	LastReportKey = BuildKey(PrefixSync, "last_report")
)

// ErrReportNotFound is returned when no run has stored a report yet
var ErrReportNotFound = errors.New("no sync report found")

// releaseScript deletes the lock only while it still belongs to the caller
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SyncStateStore keeps the run lock and last report in Redis
type SyncStateStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Statically assert that *SyncStateStore implements the SyncStateStore interface.
var _ ports.SyncStateStore = (*SyncStateStore)(nil)

// NewSyncStateStore creates a new Redis backed state store
func NewSyncStateStore(client *redis.Client, logger *slog.Logger) *SyncStateStore {
	return &SyncStateStore{
		client: client,
		logger: logger.With(slog.String("component", "sync_state")),
	}
}

// AcquireLock claims the run lock for runID. It returns false when another run
// holds it.
func (s *SyncStateStore) AcquireLock(ctx context.Context, runID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, LockKey, runID, ttl).Result()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to setnx",
			slog.String("key", LockKey),
			slog.String("error", err.Error()))
		return false, &StateError{Op: "acquire", Key: LockKey, Err: err}
	}

	if !ok {
		holder, _ := s.client.Get(ctx, LockKey).Result()
		s.logger.WarnContext(ctx, "sync lock held by another run",
			slog.String("holder", holder))
		return false, nil
	}

	s.logger.DebugContext(ctx, "sync lock acquired", slog.Duration("ttl", ttl))
	return true, nil
}

// ReleaseLock deletes the lock if runID still owns it
func (s *SyncStateStore) ReleaseLock(ctx context.Context, runID string) error {
	released, err := releaseScript.Run(ctx, s.client, []string{LockKey}, runID).Int64()
	if err != nil {
		return &StateError{Op: "release", Key: LockKey, Err: err}
	}

	if released == 0 {
		s.logger.WarnContext(ctx, "sync lock expired or taken over before release")
		return nil
	}

	s.logger.DebugContext(ctx, "sync lock released")
	return nil
}

// SaveReport stores report as the most recent run
func (s *SyncStateStore) SaveReport(ctx context.Context, report *domain.SyncReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := s.client.Set(ctx, LastReportKey, data, 0).Err(); err != nil {
		return &StateError{Op: "set", Key: LastReportKey, Err: err}
	}

	s.logger.DebugContext(ctx, "sync report saved", slog.String("key", LastReportKey))
	return nil
}

// LastReport returns the most recently saved report
func (s *SyncStateStore) LastReport(ctx context.Context) (*domain.SyncReport, error) {
	data, err := s.client.Get(ctx, LastReportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrReportNotFound
		}
		return nil, &StateError{Op: "get", Key: LastReportKey, Err: err}
	}

	var report domain.SyncReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &report, nil
}

// Ping verifies Redis connectivity
func (s *SyncStateStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}

// BuildKey joins a prefix and parts with colons
func BuildKey(prefix KeyPrefix, parts ...string) string {
	return string(prefix) + ":" + strings.Join(parts, ":")
}

// StateError represents a failed Redis operation
type StateError struct {
	Op  string
	Key string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("redis %s operation failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
