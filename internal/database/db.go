// Package database opens the connection pool for the configured driver and
// applies the embedded schema.  MySQL is the production store; SQLite (pure
// Go, no cgo) serves single-node deployments and tests.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
)

// Supported driver names.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Options selects and parameterizes a store connection.
type Options struct {
	Driver     string // mysql | sqlite
	User       string
	Pass       string
	Host       string
	Port       string
	Name       string
	SQLitePath string // file path or ":memory:"
}

// Open connects using opts.Driver and verifies the connection.
func Open(opts Options) (*sql.DB, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMySQL:
		return OpenMySQL(opts.User, opts.Pass, opts.Host, opts.Port, opts.Name)
	case DriverSQLite:
		return OpenSQLite(opts.SQLitePath)
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", opts.Driver)
	}
}

// OpenMySQL connects to MySQL and verifies the connection.
func OpenMySQL(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	// clientFoundRows=true -> UPDATE reports matched rows, not changed rows
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens a SQLite database at path.  SQLite allows one writer, so
// the pool is pinned to a single connection; this also keeps an in-memory
// database alive for the lifetime of the pool.
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
