// Package repository holds the persistence gateways.  Each gateway wraps a
// single table and knows nothing about the others; rules spanning several
// tables live in the service layer.  The sentinel errors below let higher
// layers tell failure scenarios apart without inspecting driver errors.
package repository

import (
    "errors"
    "strings"

    "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when no row matches the requested key.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a uniqueness constraint or
// a guarded update matches no row.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a unique-constraint violation from
// either supported driver.
func isDuplicateKey(err error) bool {
    var myErr *mysql.MySQLError
    if errors.As(err, &myErr) {
        return myErr.Number == 1062
    }
    msg := strings.ToLower(err.Error())
    return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "1062")
}
