// Package persist reads and writes the relational item dictionary. The same
// schema is served from a local SQLite file or a PostgreSQL database.
package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a dictionary file does not exist.
var ErrNotFound = errors.New("item dictionary not found")

// Dialect selects SQL placeholder style and goose dialect.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

func (d Dialect) gooseName() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Store is an open item dictionary database.
type Store struct {
	DB      *sql.DB
	dialect Dialect
	pg      *DB
}

// OpenSQLite opens the dictionary at path. With create=false a missing file
// returns ErrNotFound instead of creating an empty database.
func OpenSQLite(ctx context.Context, path string, create bool) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if !create {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &Store{DB: db, dialect: DialectSQLite}, nil
}

// OpenPostgres connects to the dictionary database at dsn.
func OpenPostgres(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pg, err := NewDB(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	return &Store{DB: stdlib.OpenDBFromPool(pg.Pool), dialect: DialectPostgres, pg: pg}, nil
}

// Dialect returns the store's SQL dialect.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Migrate applies the dictionary schema.
func (s *Store) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.DB, s.dialect)
}

// Items returns the item repository of the store.
func (s *Store) Items() *ItemRepo {
	return NewItemRepo(s)
}

func (s *Store) Close() error {
	err := s.DB.Close()
	if s.pg != nil {
		s.pg.Close()
	}
	return err
}
