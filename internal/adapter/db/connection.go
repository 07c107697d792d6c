package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"taskmanager/internal/config"
)

// Store is the shared connection pool together with the dialect it speaks.
// It is built once at process start, handed to every repository, and closed
// at shutdown.
type Store struct {
	DB      *sqlx.DB
	Dialect Dialect
	// Clock stamps created_at and updated_at. Defaults to time.Now.
	Clock func() time.Time
}

func NewStore(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{DB: db, Dialect: dialect, Clock: time.Now}
}

func ConnectDB(conf *config.Config) (*Store, error) {
	dialect, err := DialectFor(conf.DbDriver)
	if err != nil {
		return nil, err
	}

	dsn := conf.DbDSN
	if dsn == "" {
		dsn = dialect.DSN(conf)
	}

	store, err := Open(dialect, dsn)
	if err != nil {
		return nil, err
	}

	store.DB.SetMaxOpenConns(conf.DbMaxOpenConns)
	store.DB.SetMaxIdleConns(conf.DbMaxIdleConns)
	store.DB.SetConnMaxLifetime(conf.DbConnMaxLifetime)

	if !dialect.FullTextSearch() {
		zap.L().Warn("store has no full-text search, task search falls back to contains matching",
			zap.String("dialect", dialect.Name()))
	}

	return store, nil
}

func Open(dialect Dialect, dsn string) (*Store, error) {
	db, err := sqlx.Connect(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", dialect.Name(), err)
	}
	return NewStore(db, dialect), nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) PingContext(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) DialectName() string {
	return s.Dialect.Name()
}

func (s *Store) FullTextSearch() bool {
	return s.Dialect.FullTextSearch()
}

func (s *Store) now() time.Time {
	return s.Clock().UTC().Truncate(time.Microsecond)
}

// withTx runs fn inside a transaction. Any error from fn or from commit rolls
// the transaction back; the connection is returned to the pool either way.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			zap.L().Error("failed to roll back transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// insertReturningID runs an INSERT written with ? placeholders and returns the
// generated id.
func (s *Store) insertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...any) (int64, error) {
	if s.Dialect.InsertReturning() {
		var id int64
		if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func nullable[T any](value *T) any {
	if value == nil {
		return nil
	}
	return *value
}
