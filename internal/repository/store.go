package repository

import (
    "context"
    "database/sql"
)

// Querier is the subset of *sql.DB and *sql.Tx used by the gateways, so
// the same gateway code runs inside or outside a transaction.
type Querier interface {
    ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
    QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
    QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...any) error
}

// Store bundles one gateway per table, all bound to the same Querier.
type Store struct {
    db *sql.DB
    tx *sql.Tx

    Users        *UserRepo
    Logins       *LoginRepo
    Trains       *TrainRepo
    Reservations *ReservationRepo
    Sessions     *SessionRepo
}

// NewStore binds every gateway to db.
func NewStore(db *sql.DB) *Store {
    return bind(db, nil, db)
}

func bind(db *sql.DB, tx *sql.Tx, q Querier) *Store {
    return &Store{
        db:           db,
        tx:           tx,
        Users:        &UserRepo{q: q},
        Logins:       &LoginRepo{q: q},
        Trains:       &TrainRepo{q: q},
        Reservations: &ReservationRepo{q: q},
        Sessions:     &SessionRepo{q: q},
    }
}

// DB exposes the underlying pool.
func (s *Store) DB() *sql.DB { return s.db }

// InTx runs fn with a Store whose gateways share one transaction.  The
// transaction commits when fn returns nil and rolls back otherwise.  Calling
// InTx on a Store that is already transactional reuses the transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
    if s.tx != nil {
        return fn(s)
    }
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(bind(s.db, tx, tx)); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
