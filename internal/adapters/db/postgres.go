// internal/adapters/db/postgres.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
)

// Config holds database configuration
type Config struct {
	Host               string
	Port               string
	User               string
	Password           string
	Database           string
	SSLMode            string
	ConnectTimeout     time.Duration
	EnableQueryLogging bool
}

// DefaultConfig returns default database configuration
func DefaultConfig() *Config {
	return &Config{
		Host:           "localhost",
		Port:           "5432",
		SSLMode:        "disable",
		ConnectTimeout: time.Second * 10,
	}
}

// Database wraps a database/sql handle backed by the pgx driver.
// The handle holds at most one open connection.
type Database struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDatabase opens and verifies a connection to PostgreSQL
func NewDatabase(ctx context.Context, config *Config, logger *slog.Logger) (*Database, error) {
	if config == nil {
		config = DefaultConfig()
	}

	connConfig, err := buildConnConfig(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection config: %w", err)
	}

	sqlDB := stdlib.OpenDB(*connConfig)

	database := NewDatabaseFromDB(sqlDB, logger)

	if err := database.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		slog.String("host", config.Host),
		slog.String("database", config.Database),
	)

	return database, nil
}

// NewDatabaseFromDB wraps an already opened handle
func NewDatabaseFromDB(sqlDB *sql.DB, logger *slog.Logger) *Database {
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &Database{
		db:     sqlDB,
		logger: logger,
	}
}

// buildConnConfig creates the pgx connection configuration
func buildConnConfig(config *Config, logger *slog.Logger) (*pgx.ConnConfig, error) {
	settings := []struct{ key, value string }{
		{"host", config.Host},
		{"port", config.Port},
		{"user", config.User},
		{"password", config.Password},
		{"dbname", config.Database},
		{"sslmode", config.SSLMode},
		{"connect_timeout", strconv.Itoa(int(config.ConnectTimeout.Seconds()))},
	}

	pairs := make([]string, 0, len(settings))
	for _, s := range settings {
		if s.value == "" {
			continue
		}
		pairs = append(pairs, s.key+"="+quoteDSNValue(s.value))
	}
	dsn := strings.Join(pairs, " ")

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	// Setup logging if enabled
	if config.EnableQueryLogging {
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   newPgxLogger(logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	return connConfig, nil
}

// quoteDSNValue single-quotes a keyword/value DSN value, escaping quotes and
// backslashes so spaces and '=' survive parsing.
func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// DB returns the underlying handle
func (db *Database) DB() *sql.DB {
	return db.db
}

// Close closes the database handle
func (db *Database) Close() {
	if err := db.db.Close(); err != nil {
		db.logger.Warn("failed to close database", slog.String("error", err.Error()))
		return
	}
	db.logger.Info("database connections closed")
}

// Ping verifies database connectivity
func (db *Database) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

// Transaction acquires a dedicated connection, runs fn inside a transaction on
// it and releases the connection on every exit path.
func (db *Database) Transaction(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	conn, err := db.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to release connection: %w", closeErr)
		}
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx failed: %v, rollback failed: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// pgxLogger adapts slog for pgx logging
type pgxLogger struct {
	logger *slog.Logger
}

func newPgxLogger(logger *slog.Logger) *pgxLogger {
	return &pgxLogger{
		logger: logger.With(slog.String("component", "pgx")),
	}
}

func (l *pgxLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(data))
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}

	switch level {
	case tracelog.LogLevelError:
		l.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	case tracelog.LogLevelWarn:
		l.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	case tracelog.LogLevelInfo:
		l.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
	default:
		l.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
	}
}
