package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

const (
	driverName = "sqlite3"
	memoryPath = ":memory:"
)

// Connection owns the single database handle shared by every store.
// It is not safe for concurrent use.
type Connection struct {
	db   *sql.DB
	path string
}

func NewConnection() *Connection {
	return &Connection{}
}

// Open opens the database at path. When reinitialize is true any existing
// file at path is removed first.
func (c *Connection) Open(ctx context.Context, path string, reinitialize bool) (*sql.DB, error) {
	if c.db != nil {
		return nil, srvErrors.NewConnectionAlreadyOpenError(c.path)
	}

	if reinitialize && !isMemory(path) {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	db, err := NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", path, err)
	}

	c.db = db
	c.path = path
	zap.S().Named("store").Debugw("connection opened", "path", path, "reinitialize", reinitialize)

	return db, nil
}

// DB returns the open handle or a NoConnectionError.
func (c *Connection) DB() (*sql.DB, error) {
	if c.db == nil {
		return nil, srvErrors.NewNoConnectionError()
	}
	return c.db, nil
}

func (c *Connection) IsOpen() bool {
	return c.db != nil
}

// Close releases the handle. It is idempotent and never fails.
func (c *Connection) Close() error {
	if c.db == nil {
		return nil
	}
	if err := c.db.Close(); err != nil {
		zap.S().Named("store").Debugw("suppressed close error", "path", c.path, "error", err)
	}
	c.db = nil
	c.path = ""
	return nil
}

// Interceptor returns a logging query surface over the open handle.
func (c *Connection) Interceptor() (QueryInterceptor, error) {
	db, err := c.DB()
	if err != nil {
		return QueryInterceptor{}, err
	}
	return NewQueryInterceptor(db), nil
}

// RunInTx runs fn inside a transaction. The transaction is committed only if
// fn returns nil.
func (c *Connection) RunInTx(ctx context.Context, fn func(q QueryInterceptor) error) (retErr error) {
	db, err := c.DB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if retErr == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			retErr = multierror.Append(retErr, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	if err := fn(NewQueryInterceptor(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// NewDB opens a SQLite handle with foreign keys enforced. The pool is pinned
// to a single connection so that in-memory databases are shared.
func NewDB(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1"
}

func isMemory(path string) bool {
	return path == memoryPath || strings.Contains(path, "mode=memory")
}
