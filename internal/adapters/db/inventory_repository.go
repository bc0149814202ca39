// internal/adapters/db/inventory_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/coffeechain-sync/internal/core/domain"
	"github.com/ammerola/coffeechain-sync/internal/core/ports"
)

// DefaultChunkSize keeps one statement well below PostgreSQL's 65535
// bind-parameter limit (four parameters per row).
const DefaultChunkSize = 1000

const upsertConflictClause = "ON CONFLICT (sku) DO UPDATE SET quantity = EXCLUDED.quantity"

// InventoryRepository implements ports.InventoryRepository
type InventoryRepository struct {
	db        *Database
	chunkSize int
	logger    *slog.Logger
}

// Statically assert that *InventoryRepository implements the InventoryRepository interface.
var _ ports.InventoryRepository = (*InventoryRepository)(nil)

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *Database, chunkSize int, logger *slog.Logger) *InventoryRepository {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &InventoryRepository{
		db:        db,
		chunkSize: chunkSize,
		logger:    logger.With(slog.String("repository", "inventory")),
	}
}

// Upsert writes items in one transaction. New SKUs are inserted; for existing
// SKUs only quantity is overwritten. Records sharing a SKU collapse to the last.
func (r *InventoryRepository) Upsert(ctx context.Context, items []domain.InventoryItem) (int64, error) {
	items, _ = domain.DedupeBySKU(items)
	if len(items) == 0 {
		r.logger.InfoContext(ctx, "no inventory items to upsert")
		return 0, nil
	}

	var affected int64
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(items); start += r.chunkSize {
			end := start + r.chunkSize
			if end > len(items) {
				end = len(items)
			}

			query, args, err := buildUpsert(items[start:end])
			if err != nil {
				return fmt.Errorf("failed to build upsert query: %w", err)
			}

			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("failed to upsert items %d-%d: %w", start, end, err)
			}

			n, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read rows affected: %w", err)
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.DebugContext(ctx, "inventory upserted",
		slog.Int("items", len(items)),
		slog.Int64("rows_affected", affected))

	return affected, nil
}

// SessionInventoryRepository opens a database session for each Upsert and
// closes it once the transaction ends. Nothing connects until there is data
// to write.
type SessionInventoryRepository struct {
	config    *Config
	chunkSize int
	logger    *slog.Logger
}

// Statically assert that *SessionInventoryRepository implements the InventoryRepository interface.
var _ ports.InventoryRepository = (*SessionInventoryRepository)(nil)

// NewSessionInventoryRepository creates a repository that connects on demand
func NewSessionInventoryRepository(config *Config, chunkSize int, logger *slog.Logger) *SessionInventoryRepository {
	return &SessionInventoryRepository{
		config:    config,
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// Upsert connects, writes items through InventoryRepository and disconnects
func (r *SessionInventoryRepository) Upsert(ctx context.Context, items []domain.InventoryItem) (int64, error) {
	if len(items) == 0 {
		r.logger.InfoContext(ctx, "no inventory items to upsert")
		return 0, nil
	}

	database, err := NewDatabase(ctx, r.config, r.logger)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	return NewInventoryRepository(database, r.chunkSize, r.logger).Upsert(ctx, items)
}

// buildUpsert renders one multi-row INSERT ... ON CONFLICT statement
func buildUpsert(items []domain.InventoryItem) (string, []interface{}, error) {
	qb := squirrel.Insert("inventory").
		Columns("sku", "item_name", "quantity", "warehouse").
		Suffix(upsertConflictClause).
		PlaceholderFormat(squirrel.Dollar)

	for i := range items {
		qb = qb.Values(items[i].SKU, items[i].ItemName, items[i].Quantity, items[i].Warehouse)
	}

	return qb.ToSql()
}
