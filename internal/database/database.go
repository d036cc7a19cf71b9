package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sethvargo/go-retry"

	"wedding-planner/internal/config"
)

// ErrNotFound is returned when an operation targets a record id that does
// not exist.
var ErrNotFound = errors.New("record not found")

// Store owns the backend connection pool and the dialect selected at
// startup. Request handlers never touch it directly; they Acquire a Conn
// for the duration of one request.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open selects the backend (client-server when a connection string is
// configured, embedded file otherwise), opens it and verifies the
// connection with a bounded retry, then ensures the schema exists.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	var dialect Dialect
	var dsn string
	if cfg.DatabaseURL != "" {
		dialect = postgresDialect{}
		dsn = cfg.DatabaseURL
	} else {
		dialect = sqliteDialect{}
		dsn = cfg.DatabasePath
	}

	db, err := sql.Open(dialect.Driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Dialect returns the backend dialect selected at startup.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Conn is one pinned backend connection, scoped to a single request.
// Callers must Close it on every exit path.
type Conn struct {
	conn    *sql.Conn
	dialect Dialect
}

// Acquire pins a connection for the caller. It is never shared across
// concurrent requests.
func (s *Store) Acquire(ctx context.Context) (*Conn, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &Conn{conn: conn, dialect: s.dialect}, nil
}

// Close releases the connection back to the pool.
func (c *Conn) Close() error {
	return c.conn.Close()
}
