package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/migrations"
)

// Dialect names the SQL backend. Values match the goose dialect names.
type Dialect string

const (
	DialectPostgres Dialect = "pgx"
	DialectSQLite   Dialect = "sqlite3"
)

const (
	defaultSQLiteFile = "dvd.db"

	retryAttempts  = 3
	retryBaseDelay = 50 * time.Millisecond
)

// ErrorClassificator decides whether a failed statement may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.DSN: postgres:// and
// postgresql:// DSNs use pgx, anything else is a SQLite file. An empty DSN
// puts the SQLite file into the video database folder.
func NewConnect(ctx context.Context, cfg config.DB, files config.Files, log *logger.Logger) (*DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if isPostgresDSN(dsn) {
		return NewConnectPostgres(ctx, dsn, log)
	}
	if dsn == "" {
		dsn = filepath.Join(files.VideoDatabaseDir, defaultSQLiteFile)
	}
	return NewConnectSQLite(ctx, dsn, log)
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// builder returns a squirrel builder with the placeholder format of the
// dialect.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// withRetry runs fn again while the classifier reports a retryable error.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryAttempts-1, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Msg("retryable database error")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (db *DB) isUniqueViolation(err error) bool {
	return isPostgresUniqueViolation(err) || isSQLiteUniqueViolation(err)
}
